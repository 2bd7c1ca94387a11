package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/wordhunt/internal/engine"
	"github.com/vovakirdan/wordhunt/internal/puzzle"
	"github.com/vovakirdan/wordhunt/internal/wordbank"
)

type memSession struct {
	playerID int64
	themeID  int64
	score    *int
}

// Memory is an in-process store. Safe for concurrent use.
type Memory struct {
	mu sync.RWMutex

	nextPlayer int64
	players    map[int64]engine.Player
	byName     map[string]int64

	nextTheme  int64
	themes     map[int64]wordbank.Theme
	themeNames map[string]int64

	sessions map[string]*memSession

	nextResult int64
	results    map[string]map[int]memResult
}

type memResult struct {
	id  int64
	rec engine.LevelRecord
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		players:    make(map[int64]engine.Player),
		byName:     make(map[string]int64),
		themes:     make(map[int64]wordbank.Theme),
		themeNames: make(map[string]int64),
		sessions:   make(map[string]*memSession),
		results:    make(map[string]map[int]memResult),
	}
}

// FindPlayerByName looks a player up ignoring case.
func (m *Memory) FindPlayerByName(_ context.Context, name string) (engine.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byName[nameKey(name)]
	if !ok {
		return engine.Player{}, fmt.Errorf("storage: player %q: %w", name, engine.ErrNotFound)
	}
	return m.players[id], nil
}

// FindPlayerByID looks a player up by ID.
func (m *Memory) FindPlayerByID(_ context.Context, id int64) (engine.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.players[id]
	if !ok {
		return engine.Player{}, fmt.Errorf("storage: player %d: %w", id, engine.ErrNotFound)
	}
	return p, nil
}

// CreatePlayer registers a new player. Names are unique ignoring case.
func (m *Memory) CreatePlayer(_ context.Context, name string) (engine.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name = strings.TrimSpace(name)
	key := nameKey(name)
	if _, ok := m.byName[key]; ok {
		return engine.Player{}, fmt.Errorf("storage: player %q: %w", name, engine.ErrPlayerExists)
	}

	m.nextPlayer++
	p := engine.Player{ID: m.nextPlayer, Name: name, CreatedAt: time.Now().UTC()}
	m.players[p.ID] = p
	m.byName[key] = p.ID
	return p, nil
}

// ListEligibleThemes returns themes with at least three words, by name.
func (m *Memory) ListEligibleThemes(_ context.Context) ([]engine.ThemeSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []engine.ThemeSummary
	for _, t := range m.themes {
		if len(t.Words) < wordbank.MinWords {
			continue
		}
		out = append(out, engine.ThemeSummary{ID: t.ID, Name: t.Name, WordCount: len(t.Words)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// LoadWordBank returns a copy of a theme.
func (m *Memory) LoadWordBank(_ context.Context, themeID int64) (wordbank.Theme, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.themes[themeID]
	if !ok {
		return wordbank.Theme{}, fmt.Errorf("storage: theme %d: %w", themeID, engine.ErrNotFound)
	}
	t.Words = append([]string(nil), t.Words...)
	return t, nil
}

// ImportTheme creates the theme if needed and adds any new words to it.
// Entries that are not made only of letters are skipped.
func (m *Memory) ImportTheme(_ context.Context, name string, words []string) (int64, int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, 0, errors.New("storage: theme name must not be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.themeNames[name]
	if !ok {
		m.nextTheme++
		id = m.nextTheme
		m.themeNames[name] = id
		m.themes[id] = wordbank.Theme{ID: id, Name: name}
	}

	t := m.themes[id]
	have := make(map[string]bool, len(t.Words))
	for _, w := range t.Words {
		have[w] = true
	}
	added := 0
	for _, w := range words {
		w = puzzle.Normalize(w)
		if !puzzle.IsWord(w) || have[w] {
			continue
		}
		have[w] = true
		t.Words = append(t.Words, w)
		added++
	}
	m.themes[id] = t
	return id, added, nil
}

// CreateSession records a new session and returns its ID.
func (m *Memory) CreateSession(_ context.Context, playerID, themeID int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.players[playerID]; !ok {
		return "", fmt.Errorf("storage: player %d: %w", playerID, engine.ErrNotFound)
	}
	if _, ok := m.themes[themeID]; !ok {
		return "", fmt.Errorf("storage: theme %d: %w", themeID, engine.ErrNotFound)
	}

	id := uuid.NewString()
	m.sessions[id] = &memSession{playerID: playerID, themeID: themeID}
	return id, nil
}

// SaveLevelResult stores a level result, replacing an earlier one for the
// same session and level.
func (m *Memory) SaveLevelResult(_ context.Context, rec engine.LevelRecord) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[rec.SessionID]; !ok {
		return 0, fmt.Errorf("storage: session %s: %w", rec.SessionID, engine.ErrNotFound)
	}
	levels := m.results[rec.SessionID]
	if levels == nil {
		levels = make(map[int]memResult)
		m.results[rec.SessionID] = levels
	}

	r, ok := levels[rec.Level]
	if !ok {
		m.nextResult++
		r.id = m.nextResult
	}
	r.rec = rec
	levels[rec.Level] = r
	return r.id, nil
}

// LevelResults returns the saved results of a session by level.
func (m *Memory) LevelResults(_ context.Context, sessionID string) ([]engine.LevelRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []engine.LevelRecord
	for _, r := range m.results[sessionID] {
		out = append(out, r.rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out, nil
}

// SaveSessionScore sets the final score of a session.
func (m *Memory) SaveSessionScore(_ context.Context, sessionID string, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return fmt.Errorf("storage: session %s: %w", sessionID, engine.ErrNotFound)
	}
	s.score = &score
	return nil
}

// TopScores returns each player's best finished session, highest first.
func (m *Memory) TopScores(_ context.Context, limit int) ([]engine.ScoreEntry, error) {
	if limit <= 0 {
		limit = engine.DefaultTopScores
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	best := make(map[int64]int)
	for _, s := range m.sessions {
		if s.score == nil {
			continue
		}
		if prev, ok := best[s.playerID]; !ok || *s.score > prev {
			best[s.playerID] = *s.score
		}
	}

	entries := make([]engine.ScoreEntry, 0, len(best))
	for id, score := range best {
		entries = append(entries, engine.ScoreEntry{PlayerName: m.players[id].Name, Score: score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].PlayerName < entries[j].PlayerName
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// PlayerBest returns the best finished session score of a player.
func (m *Memory) PlayerBest(_ context.Context, playerID int64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	best := 0
	for _, s := range m.sessions {
		if s.playerID == playerID && s.score != nil && *s.score > best {
			best = *s.score
		}
	}
	return best, nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}

var _ engine.Store = (*Memory)(nil)
