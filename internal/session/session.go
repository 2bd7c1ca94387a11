// Package session implements the per-player game state machine: it starts
// levels, validates submitted selections, runs the level clock and keeps
// the score.
//
// Every mutating method runs as a single critical section under the
// session's own lock; either the whole change is applied or none of it.
package session

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/wordhunt/internal/config"
	"github.com/vovakirdan/wordhunt/internal/puzzle"
	"github.com/vovakirdan/wordhunt/internal/scoring"
	"github.com/vovakirdan/wordhunt/internal/wordbank"
)

// DefaultMaxLevels is the number of levels in a session when not configured.
const DefaultMaxLevels = 5

// growRetries is how many times a level start enlarges the grid after a
// failed layout before giving up.
const growRetries = 3

// Options configures a new session.
type Options struct {
	ID         string
	PlayerID   int64
	PlayerName string
	Theme      wordbank.Theme
	MaxLevels  int

	Progression config.ProgressionConfig
	Generator   puzzle.GenParams
	Policy      scoring.Policy

	Rand puzzle.Rand // nil seeds from the clock
	Sink Sink        // optional
}

// OptionsFromConfig fills the tuning fields of Options from cfg.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		MaxLevels:   cfg.Game.MaxLevels,
		Progression: cfg.Progression,
		Generator: puzzle.GenParams{
			MaxTrials:   cfg.Generator.MaxTrials,
			MaxRestarts: cfg.Generator.MaxRestarts,
		},
		Policy: scoring.NewPolicy(cfg.Scoring),
	}
}

// Level is the state of the level being played.
type Level struct {
	Index      int
	FieldSize  int
	TimeLimit  time.Duration
	Remaining  time.Duration
	Elapsed    time.Duration
	Targets    []string
	Found      []string
	Grid       *puzzle.Grid
	Placements []puzzle.Placement
	Reason     CompletionReason
}

// Done reports whether every target word has been found.
func (l *Level) Done() bool {
	return len(l.Found) >= len(l.Targets)
}

func (l *Level) clone() *Level {
	if l == nil {
		return nil
	}
	c := *l
	c.Targets = append([]string(nil), l.Targets...)
	c.Found = append([]string(nil), l.Found...)
	c.Placements = append([]puzzle.Placement(nil), l.Placements...)
	if l.Grid != nil {
		c.Grid = l.Grid.Clone()
	}
	return &c
}

// Session is one player's run through the levels of a theme.
type Session struct {
	mu sync.Mutex

	id         string
	playerID   int64
	playerName string
	theme      wordbank.Theme
	maxLevels  int

	gen      puzzle.GenParams
	maxSize  int
	rng      puzzle.Rand
	selector *wordbank.Selector
	tally    *scoring.Tally
	sink     Sink

	state      State
	levelIndex int
	level      *Level
	finalScore int
}

// New creates a session at level 1, waiting for its first level to start.
func New(opts Options) *Session {
	if opts.MaxLevels < 1 {
		opts.MaxLevels = DefaultMaxLevels
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Generator.MaxTrials < 1 || opts.Generator.MaxRestarts < 0 {
		def := puzzle.DefaultGenParams()
		opts.Generator.MaxTrials, opts.Generator.MaxRestarts = def.MaxTrials, def.MaxRestarts
	}
	if opts.Progression == (config.ProgressionConfig{}) {
		opts.Progression = config.Default().Progression
	}
	if opts.Policy == (scoring.Policy{}) {
		opts.Policy = scoring.DefaultPolicy()
	}

	// Filler letters come from the whole bank so every level of a theme
	// uses the same alphabet.
	gen := opts.Generator
	if len(gen.Alphabet) == 0 {
		gen.Alphabet = puzzle.AlphabetFor(wordbank.Eligible(opts.Theme.Words, 0))
	}

	return &Session{
		id:         opts.ID,
		playerID:   opts.PlayerID,
		playerName: opts.PlayerName,
		theme:      opts.Theme,
		maxLevels:  opts.MaxLevels,
		gen:        gen,
		maxSize:    opts.Progression.MaxFieldSize,
		rng:        opts.Rand,
		selector:   wordbank.NewSelector(opts.Progression, opts.Rand),
		tally:      scoring.NewTally(opts.Policy),
		sink:       opts.Sink,
		state:      StateThemeSelection,
		levelIndex: 1,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// PlayerID returns the owning player's identifier.
func (s *Session) PlayerID() int64 { return s.playerID }

// Theme returns the theme being played.
func (s *Session) Theme() wordbank.Theme { return s.theme }

// MaxLevels returns the number of levels in the session.
func (s *Session) MaxLevels() int { return s.maxLevels }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// StartLevel sets up the first level: it selects words, generates the grid
// and starts the clock. It is only legal before any level was played, and
// index must be the session's current level; later levels are started by
// Advance. On failure the session keeps its previous level and state.
func (s *Session) StartLevel(index int) error {
	var evts []Event
	defer func() { s.emit(evts) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateThemeSelection {
		return &InvalidStateError{Op: "start level", State: s.state}
	}
	if index != s.levelIndex {
		return &LevelStartError{Level: index, Err: fmt.Errorf("level %d is next", s.levelIndex)}
	}
	evt, err := s.startLevelLocked(index)
	if err != nil {
		return err
	}
	evts = append(evts, evt)
	return nil
}

func (s *Session) startLevelLocked(index int) (Event, error) {
	if index < 1 || index > s.maxLevels {
		return nil, &LevelStartError{Level: index, Err: errors.New("level out of range")}
	}

	sel, err := s.selector.Select(s.theme, index)
	if err != nil {
		return nil, &LevelStartError{Level: index, Err: err}
	}

	params := s.gen
	params.Directions = sel.Directions

	var (
		grid       *puzzle.Grid
		placements []puzzle.Placement
	)
	size := sel.FieldSize
	for retry := 0; ; retry++ {
		grid, placements, err = puzzle.Generate(sel.Words, size, s.rng, params)
		if err == nil {
			break
		}
		var genErr *puzzle.GridGenerationError
		canGrow := errors.As(err, &genErr) && retry < growRetries &&
			(s.maxSize == 0 || size < s.maxSize)
		if !canGrow {
			return nil, &LevelStartError{Level: index, Err: err}
		}
		size++
	}
	sel.FieldSize = size
	s.selector.Commit(sel)

	s.levelIndex = index
	s.level = &Level{
		Index:      index,
		FieldSize:  size,
		TimeLimit:  sel.TimeLimit,
		Remaining:  sel.TimeLimit,
		Targets:    append([]string(nil), sel.Words...),
		Found:      make([]string, 0, len(sel.Words)),
		Grid:       grid,
		Placements: placements,
	}
	s.state = StateLevelActive

	return LevelStartedEvent{
		SessionID: s.id,
		Level:     index,
		FieldSize: size,
		Words:     len(sel.Words),
		TimeLimit: sel.TimeLimit,
	}, nil
}

// Submit checks a selection of cells against the active level. A valid
// word is added to the found list; finding the last word completes the
// level. NotAWord and AlreadyFound are normal verdicts, not errors.
func (s *Session) Submit(cells []puzzle.Coord) (puzzle.Verdict, error) {
	var evts []Event
	defer func() { s.emit(evts) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLevelActive {
		return puzzle.Verdict{}, &InvalidStateError{Op: "submit", State: s.state}
	}

	l := s.level
	v := puzzle.Validate(l.Grid, cells, l.Targets, l.Found, l.Placements)
	if v.Outcome != puzzle.Valid {
		return v, nil
	}

	l.Found = append(l.Found, v.Word)
	evts = append(evts, WordFoundEvent{
		SessionID: s.id,
		Level:     l.Index,
		Word:      v.Word,
		Found:     len(l.Found),
		Total:     len(l.Targets),
	})
	if l.Done() {
		evts = append(evts, s.completeLocked(AllFound))
	}
	return v, nil
}

// Tick advances the level clock by elapsed and returns the time left.
// Negative durations count as zero. When the clock reaches zero with words
// still hidden the level completes as timed out.
func (s *Session) Tick(elapsed time.Duration) (time.Duration, error) {
	var evts []Event
	defer func() { s.emit(evts) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLevelActive {
		return 0, &InvalidStateError{Op: "tick", State: s.state}
	}

	l := s.level
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > l.Remaining {
		elapsed = l.Remaining
	}
	l.Remaining -= elapsed
	l.Elapsed += elapsed

	if l.Remaining == 0 {
		evts = append(evts, s.completeLocked(TimedOut))
	}
	return l.Remaining, nil
}

// completeLocked stops the level and records its result.
func (s *Session) completeLocked(reason CompletionReason) Event {
	l := s.level
	l.Reason = reason
	res := s.tally.Record(l.Index, len(l.Found), len(l.Targets), l.Elapsed, l.TimeLimit)
	s.state = StateLevelComplete
	return LevelCompletedEvent{SessionID: s.id, Reason: reason, Result: res}
}

// Advance moves on from a completed level: the last level ends the
// session, any other starts the next level.
func (s *Session) Advance() error {
	var evts []Event
	defer func() { s.emit(evts) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLevelComplete {
		return &InvalidStateError{Op: "advance", State: s.state}
	}
	if s.levelIndex >= s.maxLevels {
		evts = append(evts, s.endLocked())
		return nil
	}
	evt, err := s.startLevelLocked(s.levelIndex + 1)
	if err != nil {
		return err
	}
	evts = append(evts, evt)
	return nil
}

// End finishes the session and returns the final score. Ending during an
// active level records that level with what was found so far.
func (s *Session) End() (int, error) {
	var evts []Event
	defer func() { s.emit(evts) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSessionEnded {
		return s.finalScore, &InvalidStateError{Op: "end", State: s.state}
	}
	if s.state == StateLevelActive {
		evts = append(evts, s.completeLocked(Quit))
	}
	evts = append(evts, s.endLocked())
	return s.finalScore, nil
}

func (s *Session) endLocked() Event {
	s.finalScore = s.tally.Total()
	s.state = StateSessionEnded
	return SessionEndedEvent{SessionID: s.id, Score: s.finalScore}
}

// FinalScore returns the final score once the session has ended.
func (s *Session) FinalScore() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finalScore, s.state == StateSessionEnded
}

// Results returns the recorded level results in level order.
func (s *Session) Results() []scoring.LevelResult {
	return s.tally.Results()
}

// Snapshot is a consistent copy of a session's state.
type Snapshot struct {
	ID         string
	PlayerID   int64
	PlayerName string
	ThemeID    int64
	ThemeName  string
	State      State
	Level      int
	MaxLevels  int
	Current    *Level // nil before the first level
	Results    []scoring.LevelResult
	Score      int // running total
	FinalScore int
	Ended      bool
}

// Snapshot returns a copy of the session state taken under its lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		ID:         s.id,
		PlayerID:   s.playerID,
		PlayerName: s.playerName,
		ThemeID:    s.theme.ID,
		ThemeName:  s.theme.Name,
		State:      s.state,
		Level:      s.levelIndex,
		MaxLevels:  s.maxLevels,
		Current:    s.level.clone(),
		Results:    s.tally.Results(),
		Score:      s.tally.Total(),
		FinalScore: s.finalScore,
		Ended:      s.state == StateSessionEnded,
	}
}

func (s *Session) emit(evts []Event) {
	if s.sink == nil {
		return
	}
	for _, e := range evts {
		s.sink.Send(e)
	}
}
