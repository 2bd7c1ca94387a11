// Package wordbank chooses which words to hide on each level of a session
// and how large and how long that level is.
package wordbank

import (
	"fmt"
	"time"

	"github.com/vovakirdan/wordhunt/internal/puzzle"
)

// MinWords is the smallest word bank a theme may have to be playable.
const MinWords = 3

// Theme is a named category with its word bank.
type Theme struct {
	ID    int64
	Name  string
	Words []string
}

// InsufficientWordsError reports a theme without enough usable words.
type InsufficientWordsError struct {
	Theme string
	Have  int
	Need  int
}

func (e *InsufficientWordsError) Error() string {
	return fmt.Sprintf("wordbank: theme %q has %d usable words, need at least %d", e.Theme, e.Have, e.Need)
}

// Eligible normalizes a word bank: upper-cases, drops blanks, non-letter
// entries and duplicates, and drops words longer than maxLen (when > 0).
// Input order is preserved.
func Eligible(words []string, maxLen int) []string {
	seen := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = puzzle.Normalize(w)
		if !puzzle.IsWord(w) || seen[w] {
			continue
		}
		if maxLen > 0 && len([]rune(w)) > maxLen {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

// Plan describes the shape of one level.
type Plan struct {
	Level      int
	WordCount  int
	FieldSize  int
	TimeLimit  time.Duration
	Directions []puzzle.Direction
}

// Selection is a plan together with the words chosen for it.
type Selection struct {
	Plan
	Words []string
}
