package puzzle

import "strings"

// Grid is a square board of letters.
// Cells are stored in row-major order: index = row*Size + col.
// A zero rune marks an empty cell during generation.
type Grid struct {
	Size  int
	Cells []rune
}

// NewGrid creates an empty size×size grid.
func NewGrid(size int) *Grid {
	if size < 0 {
		size = 0
	}
	return &Grid{
		Size:  size,
		Cells: make([]rune, size*size),
	}
}

// GridFromRows builds a grid from equal-length rows of letters.
// Returns nil if the rows do not form a square.
func GridFromRows(rows ...string) *Grid {
	g := NewGrid(len(rows))
	for r, row := range rows {
		letters := []rune(row)
		if len(letters) != g.Size {
			return nil
		}
		for c, l := range letters {
			g.Set(C(r, c), l)
		}
	}
	return g
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.Row*g.Size + c.Col
}

// InBounds returns true if the coordinate is within the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.Size && c.Col >= 0 && c.Col < g.Size
}

// At returns the letter at c, or 0 if empty or out of bounds.
func (g *Grid) At(c Coord) rune {
	if !g.InBounds(c) {
		return 0
	}
	return g.Cells[g.index(c)]
}

// Set writes a letter at c. Out-of-bounds writes are ignored.
func (g *Grid) Set(c Coord, r rune) {
	if g.InBounds(c) {
		g.Cells[g.index(c)] = r
	}
}

// Clear empties every cell.
func (g *Grid) Clear() {
	for i := range g.Cells {
		g.Cells[i] = 0
	}
}

// IsFull reports whether every cell holds a letter.
func (g *Grid) IsFull() bool {
	for _, r := range g.Cells {
		if r == 0 {
			return false
		}
	}
	return true
}

// Spell concatenates the letters at cells in order.
// Returns false if any cell is out of bounds or empty.
func (g *Grid) Spell(cells []Coord) (string, bool) {
	var b strings.Builder
	for _, c := range cells {
		r := g.At(c)
		if r == 0 {
			return "", false
		}
		b.WriteRune(r)
	}
	return b.String(), true
}

// Row returns one row of the grid as a string. Empty cells render as '.'.
func (g *Grid) Row(row int) string {
	var b strings.Builder
	for col := 0; col < g.Size; col++ {
		r := g.At(C(row, col))
		if r == 0 {
			r = '.'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Rows returns all rows, top to bottom.
func (g *Grid) Rows() []string {
	rows := make([]string, g.Size)
	for i := range rows {
		rows[i] = g.Row(i)
	}
	return rows
}

// String renders the grid one row per line.
func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]rune, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{Size: g.Size, Cells: cells}
}
