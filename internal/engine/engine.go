// Package engine connects game sessions to their collaborators: it logs
// players in, creates sessions, persists level results and final scores,
// and serves the leaderboard.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wordhunt/internal/config"
	"github.com/vovakirdan/wordhunt/internal/puzzle"
	"github.com/vovakirdan/wordhunt/internal/session"
	"github.com/vovakirdan/wordhunt/internal/wordbank"
)

// DefaultTopScores is the leaderboard size when no limit is given.
const DefaultTopScores = 10

// Game is a session tracked by the engine together with what has been
// persisted for it so far.
type Game struct {
	*session.Session

	mu         sync.Mutex
	saved      map[int]LevelRecord
	scoreSaved bool
}

// Engine runs sessions against a store.
type Engine struct {
	players  PlayerDirectory
	themes   ThemeCatalog
	results  ResultsStore
	cfg      config.Config
	logger   *log.Logger
	registry *Registry
}

// New creates an engine. A nil logger discards log output.
func New(store Store, cfg config.Config, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{
		players:  store,
		themes:   store,
		results:  store,
		cfg:      cfg,
		logger:   logger,
		registry: NewRegistry(),
	}
}

// Registry returns the live games.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Config returns the engine configuration.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// Login finds a player by name, registering a new one when there is none.
// created reports whether the player was just registered.
func (e *Engine) Login(ctx context.Context, name string) (p Player, created bool, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Player{}, false, ErrInvalidName
	}

	p, err = e.players.FindPlayerByName(ctx, name)
	if err == nil {
		e.logger.Info("player logged in", "player", p.Name, "id", p.ID)
		return p, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Player{}, false, fmt.Errorf("engine: find player: %w", err)
	}

	p, err = e.players.CreatePlayer(ctx, name)
	if errors.Is(err, ErrPlayerExists) {
		// Registered concurrently under the same name.
		p, err = e.players.FindPlayerByName(ctx, name)
		if err != nil {
			return Player{}, false, fmt.Errorf("engine: find player: %w", err)
		}
		return p, false, nil
	}
	if err != nil {
		return Player{}, false, fmt.Errorf("engine: create player: %w", err)
	}

	e.logger.Info("player registered", "player", p.Name, "id", p.ID)
	return p, true, nil
}

// Player returns a registered player by ID.
func (e *Engine) Player(ctx context.Context, id int64) (Player, error) {
	p, err := e.players.FindPlayerByID(ctx, id)
	if err != nil {
		return Player{}, fmt.Errorf("engine: find player: %w", err)
	}
	return p, nil
}

// Themes lists the playable themes. Word counts only include words that
// fit the largest grid, and themes left with too few of them are dropped.
func (e *Engine) Themes(ctx context.Context) ([]ThemeSummary, error) {
	themes, err := e.themes.ListEligibleThemes(ctx)
	if err != nil {
		return nil, fmt.Errorf("engine: list themes: %w", err)
	}

	out := themes[:0]
	for _, t := range themes {
		bank, err := e.themes.LoadWordBank(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("engine: load theme %d: %w", t.ID, err)
		}
		t.WordCount = len(wordbank.Eligible(bank.Words, e.cfg.Progression.MaxFieldSize))
		if t.WordCount >= wordbank.MinWords {
			out = append(out, t)
		}
	}
	return out, nil
}

// CreateSession loads the theme, records a new session and registers it.
// sink may be nil.
func (e *Engine) CreateSession(ctx context.Context, p Player, themeID int64, sink session.Sink) (*Game, error) {
	theme, err := e.themes.LoadWordBank(ctx, themeID)
	if err != nil {
		return nil, fmt.Errorf("engine: load theme %d: %w", themeID, err)
	}
	if n := len(wordbank.Eligible(theme.Words, e.cfg.Progression.MaxFieldSize)); n < wordbank.MinWords {
		return nil, &wordbank.InsufficientWordsError{Theme: theme.Name, Have: n, Need: wordbank.MinWords}
	}

	id, err := e.results.CreateSession(ctx, p.ID, themeID)
	if err != nil {
		return nil, &SessionCreationError{PlayerID: p.ID, ThemeID: themeID, Err: err}
	}

	opts := session.OptionsFromConfig(e.cfg)
	opts.ID = id
	opts.PlayerID = p.ID
	opts.PlayerName = p.Name
	opts.Theme = theme
	opts.Rand = e.newRand()
	opts.Sink = session.Sinks{sink, e.logSink()}

	g := &Game{
		Session: session.New(opts),
		saved:   make(map[int]LevelRecord),
	}
	e.registry.Register(g)

	e.logger.Info("session created", "session", id, "player", p.Name, "theme", theme.Name)
	return g, nil
}

// Game looks up a live game by session ID.
func (e *Engine) Game(id string) (*Game, error) {
	g, ok := e.registry.Get(id)
	if !ok {
		return nil, fmt.Errorf("engine: session %s: %w", id, ErrNotFound)
	}
	return g, nil
}

// StartLevel starts the first level. Later levels are started by Advance.
func (e *Engine) StartLevel(_ context.Context, g *Game) error {
	level := g.Snapshot().Level
	if err := g.Session.StartLevel(level); err != nil {
		e.logger.Warn("level start failed", "session", g.ID(), "level", level, "error", err)
		return err
	}
	return nil
}

// Submit validates a selection. When it completes the level the result is
// saved; a failed save is logged and retried by the next Advance or End.
func (e *Engine) Submit(ctx context.Context, g *Game, cells []puzzle.Coord) (puzzle.Verdict, error) {
	v, err := g.Session.Submit(cells)
	if err != nil {
		return v, err
	}
	e.saveIfComplete(ctx, g)
	return v, nil
}

// Tick advances the game clock. A level that times out is saved like in Submit.
func (e *Engine) Tick(ctx context.Context, g *Game, elapsed time.Duration) (time.Duration, error) {
	left, err := g.Session.Tick(elapsed)
	if err != nil {
		return left, err
	}
	e.saveIfComplete(ctx, g)
	return left, nil
}

func (e *Engine) saveIfComplete(ctx context.Context, g *Game) {
	if g.State() != session.StateLevelComplete {
		return
	}
	if err := e.SaveResults(ctx, g); err != nil {
		e.logger.Warn("could not save level result", "session", g.ID(), "error", err)
	}
}

// Advance moves past a completed level and persists what is unsaved. When
// the last level was played the session ends and its score is saved.
func (e *Engine) Advance(ctx context.Context, g *Game) error {
	if err := g.Session.Advance(); err != nil {
		return err
	}
	return e.SaveResults(ctx, g)
}

// End finishes the game and saves its results. The score is returned even
// when saving fails; call SaveResults to retry.
func (e *Engine) End(ctx context.Context, g *Game) (int, error) {
	score, err := g.Session.End()
	if err != nil {
		return score, err
	}
	return score, e.SaveResults(ctx, g)
}

// Abandon drops a game without ending it. Nothing more is persisted.
func (e *Engine) Abandon(g *Game) {
	e.registry.Unregister(g.ID())
	e.logger.Info("session abandoned", "session", g.ID(), "state", g.State())
}

// SaveResults writes every level result that changed since the last save
// and, once the session has ended, its final score. Safe to call repeatedly.
func (e *Engine) SaveResults(ctx context.Context, g *Game) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, r := range g.Results() {
		rec := LevelRecord{
			SessionID:  g.ID(),
			Level:      r.Level,
			WordsFound: r.Found,
			WordsTotal: r.Total,
			TimeSpent:  r.TimeSpent,
			Score:      r.Score,
		}
		if prev, ok := g.saved[r.Level]; ok && prev == rec {
			continue
		}
		if _, err := e.results.SaveLevelResult(ctx, rec); err != nil {
			return fmt.Errorf("engine: save level %d of session %s: %w", r.Level, g.ID(), err)
		}
		g.saved[r.Level] = rec
	}

	score, ended := g.FinalScore()
	if !ended || g.scoreSaved {
		return nil
	}
	if err := e.results.SaveSessionScore(ctx, g.ID(), score); err != nil {
		return fmt.Errorf("engine: save score of session %s: %w", g.ID(), err)
	}
	g.scoreSaved = true
	e.registry.Unregister(g.ID())
	e.logger.Info("session saved", "session", g.ID(), "score", score)
	return nil
}

// TopScores returns the leaderboard. A non-positive limit uses DefaultTopScores.
func (e *Engine) TopScores(ctx context.Context, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = DefaultTopScores
	}
	scores, err := e.results.TopScores(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("engine: top scores: %w", err)
	}
	return scores, nil
}

func (e *Engine) newRand() *rand.Rand {
	seed := e.cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// logSink writes session events to the engine log.
func (e *Engine) logSink() session.Sink {
	return session.SinkFunc(func(evt session.Event) {
		switch ev := evt.(type) {
		case session.LevelStartedEvent:
			e.logger.Debug("level started", "session", ev.SessionID, "level", ev.Level,
				"size", ev.FieldSize, "words", ev.Words, "limit", ev.TimeLimit)
		case session.WordFoundEvent:
			e.logger.Debug("word found", "session", ev.SessionID, "word", ev.Word,
				"found", ev.Found, "total", ev.Total)
		case session.LevelCompletedEvent:
			e.logger.Info("level complete", "session", ev.SessionID, "level", ev.Result.Level,
				"reason", ev.Reason, "found", ev.Result.Found, "total", ev.Result.Total,
				"score", ev.Result.Score)
		case session.SessionEndedEvent:
			e.logger.Info("session ended", "session", ev.SessionID, "score", ev.Score)
		}
	})
}
