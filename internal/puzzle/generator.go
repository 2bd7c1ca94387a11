package puzzle

import (
	"fmt"
	"sort"
)

// Rand is the random source consumed by the generator.
// *math/rand.Rand satisfies it; tests inject a seeded one.
type Rand interface {
	Intn(n int) int
}

// GenParams configures grid generation.
type GenParams struct {
	MaxTrials   int         // Random (start, direction) picks per word before restarting
	MaxRestarts int         // Full-grid restarts before giving up
	Directions  []Direction // Allowed directions; empty means all eight
	Alphabet    []rune      // Filler letters; empty means derive from the words
}

// DefaultGenParams returns sensible defaults for grid generation.
func DefaultGenParams() GenParams {
	return GenParams{
		MaxTrials:   200,
		MaxRestarts: 50,
	}
}

// GridGenerationError reports that the words could not be laid out on a
// grid of the given size within the retry budget.
type GridGenerationError struct {
	Size     int
	Words    int
	Attempts int
	Word     string // Word that failed last
}

func (e *GridGenerationError) Error() string {
	if e.Attempts == 0 {
		return fmt.Sprintf("puzzle: word %q does not fit a %dx%d grid", e.Word, e.Size, e.Size)
	}
	return fmt.Sprintf("puzzle: could not place %d words on a %dx%d grid after %d attempts (stuck on %q)",
		e.Words, e.Size, e.Size, e.Attempts, e.Word)
}

// Generate lays out words on a size×size grid and fills the rest with
// random letters. Words are placed longest first; a word that cannot be
// placed within MaxTrials restarts the whole grid, up to MaxRestarts times.
//
// Returned placements follow the order of the input words.
func Generate(words []string, size int, rng Rand, p GenParams) (*Grid, []Placement, error) {
	normalized := make([]string, 0, len(words))
	for _, w := range words {
		if w = Normalize(w); w != "" {
			normalized = append(normalized, w)
		}
	}

	for _, w := range normalized {
		if size <= 0 || len([]rune(w)) > size {
			return nil, nil, &GridGenerationError{Size: size, Words: len(normalized), Word: w}
		}
	}

	dirs := p.Directions
	if len(dirs) == 0 {
		dirs = AllDirections
	}
	alphabet := p.Alphabet
	if len(alphabet) == 0 {
		alphabet = AlphabetFor(normalized)
	}
	trials := p.MaxTrials
	if trials < 1 {
		trials = 1
	}

	// Longest first; ties keep input order so a seed always yields the same grid.
	order := make([]int, len(normalized))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return len([]rune(normalized[order[a]])) > len([]rune(normalized[order[b]]))
	})

	g := NewGrid(size)
	placements := make([]Placement, len(normalized))
	attempts := 0
	stuck := ""

	for attempts <= p.MaxRestarts {
		attempts++
		g.Clear()
		ok := true
		for _, idx := range order {
			pl, placed := tryPlace(g, normalized[idx], rng, dirs, trials)
			if !placed {
				ok = false
				stuck = normalized[idx]
				break
			}
			placements[idx] = pl
		}
		if ok {
			fill(g, alphabet, rng)
			return g, placements, nil
		}
	}

	return nil, nil, &GridGenerationError{
		Size:     size,
		Words:    len(normalized),
		Attempts: attempts,
		Word:     stuck,
	}
}

// tryPlace makes up to trials random attempts to put word on g.
// On success the letters are written and the placement returned.
func tryPlace(g *Grid, word string, rng Rand, dirs []Direction, trials int) (Placement, bool) {
	letters := []rune(word)
	n := len(letters)

	for t := 0; t < trials; t++ {
		d := dirs[rng.Intn(len(dirs))]
		dr, dc := d.Delta()
		rowLo, rowHi := startRange(dr, n, g.Size)
		colLo, colHi := startRange(dc, n, g.Size)
		if rowHi < rowLo || colHi < colLo {
			continue
		}
		start := C(rowLo+rng.Intn(rowHi-rowLo+1), colLo+rng.Intn(colHi-colLo+1))

		if !fits(g, letters, start, d) {
			continue
		}
		for i, r := range letters {
			g.Set(start.Step(d, i), r)
		}
		return Placement{Word: word, Start: start, Dir: d}, true
	}
	return Placement{}, false
}

// startRange returns the inclusive range of start positions along one axis
// that keep an n-letter word inside a grid of the given size.
func startRange(delta, n, size int) (lo, hi int) {
	switch {
	case delta > 0:
		return 0, size - n
	case delta < 0:
		return n - 1, size - 1
	default:
		return 0, size - 1
	}
}

// fits checks that every letter lands in bounds on an empty cell or on a
// cell already holding the same letter.
func fits(g *Grid, letters []rune, start Coord, d Direction) bool {
	for i, r := range letters {
		c := start.Step(d, i)
		if !g.InBounds(c) {
			return false
		}
		if cur := g.At(c); cur != 0 && cur != r {
			return false
		}
	}
	return true
}

// fill writes a random alphabet letter into every empty cell.
func fill(g *Grid, alphabet []rune, rng Rand) {
	for i, r := range g.Cells {
		if r == 0 {
			g.Cells[i] = alphabet[rng.Intn(len(alphabet))]
		}
	}
}
