package wordbank

import (
	"fmt"

	"github.com/vovakirdan/wordhunt/internal/config"
	"github.com/vovakirdan/wordhunt/internal/puzzle"
)

// Selector picks words for successive levels of one session.
// It remembers words already used so later levels prefer fresh ones.
// A Selector is not safe for concurrent use; the owning session serializes access.
type Selector struct {
	cfg      config.ProgressionConfig
	rng      puzzle.Rand
	used     map[string]bool
	lastSize int
}

// NewSelector creates a selector for one session.
func NewSelector(cfg config.ProgressionConfig, rng puzzle.Rand) *Selector {
	return &Selector{
		cfg:  cfg,
		rng:  rng,
		used: make(map[string]bool),
	}
}

// Select chooses the words and level shape for a level of theme.
// It does not record the choice; call Commit once the level has started.
func (s *Selector) Select(theme Theme, level int) (Selection, error) {
	if level < 1 {
		return Selection{}, fmt.Errorf("wordbank: level must be at least 1, got %d", level)
	}

	eligible := Eligible(theme.Words, s.cfg.MaxFieldSize)
	need := s.cfg.MinWords
	if need < MinWords {
		need = MinWords
	}
	if len(eligible) < need {
		return Selection{}, &InsufficientWordsError{Theme: theme.Name, Have: len(eligible), Need: need}
	}

	count := s.cfg.WordCount(level, len(eligible))
	words := s.pick(eligible, count)

	return Selection{
		Plan: Plan{
			Level:      level,
			WordCount:  len(words),
			FieldSize:  s.fieldSize(level, words),
			TimeLimit:  s.cfg.TimeLimit(len(words)),
			Directions: s.directions(level),
		},
		Words: words,
	}, nil
}

// Commit records a selection as played: its words count as used and its
// field size becomes the floor for later levels.
func (s *Selector) Commit(sel Selection) {
	for _, w := range sel.Words {
		s.used[w] = true
	}
	if sel.FieldSize > s.lastSize {
		s.lastSize = sel.FieldSize
	}
}

// Used returns how many distinct words this session has played.
func (s *Selector) Used() int {
	return len(s.used)
}

// pick takes count words, unused ones first, each group shuffled.
func (s *Selector) pick(eligible []string, count int) []string {
	var fresh, stale []string
	for _, w := range eligible {
		if s.used[w] {
			stale = append(stale, w)
		} else {
			fresh = append(fresh, w)
		}
	}
	s.shuffle(fresh)
	s.shuffle(stale)

	pool := append(fresh, stale...)
	if count > len(pool) {
		count = len(pool)
	}
	words := make([]string, count)
	copy(words, pool[:count])
	return words
}

// fieldSize grows the planned size so the longest word fits and the grid
// has room for the letters, and never shrinks below an earlier level.
func (s *Selector) fieldSize(level int, words []string) int {
	size := s.cfg.FieldSize(level)
	letters, longest := 0, 0
	for _, w := range words {
		n := len([]rune(w))
		letters += n
		if n > longest {
			longest = n
		}
	}
	if size < longest {
		size = longest
	}
	// Keep the words on at most half the cells.
	for size*size < 2*letters && (s.cfg.MaxFieldSize == 0 || size < s.cfg.MaxFieldSize) {
		size++
	}
	if size < s.lastSize {
		size = s.lastSize
	}
	return size
}

// directions returns the placement directions unlocked on a level.
func (s *Selector) directions(level int) []puzzle.Direction {
	diagonals := s.cfg.Diagonals(level)
	backwards := s.cfg.Backwards(level)

	dirs := make([]puzzle.Direction, 0, len(puzzle.AllDirections))
	for _, d := range puzzle.AllDirections {
		if d.IsDiagonal() && !diagonals {
			continue
		}
		if d.IsBackward() && !backwards {
			continue
		}
		dirs = append(dirs, d)
	}
	return dirs
}

func (s *Selector) shuffle(words []string) {
	for i := len(words) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		words[i], words[j] = words[j], words[i]
	}
}
