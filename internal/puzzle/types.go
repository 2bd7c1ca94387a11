// Package puzzle provides the word-search grid: generation of letter grids
// with hidden words and validation of player selections against them.
// This package is UI-agnostic and deterministic under a seeded Rand.
package puzzle

// Direction is one of the eight compass directions a word can run in.
type Direction uint8

const (
	DirN Direction = iota
	DirNE
	DirE
	DirSE
	DirS
	DirSW
	DirW
	DirNW
)

// AllDirections lists every direction in clockwise order starting north.
var AllDirections = []Direction{DirN, DirNE, DirE, DirSE, DirS, DirSW, DirW, DirNW}

// String returns the compass name of the direction.
func (d Direction) String() string {
	switch d {
	case DirN:
		return "N"
	case DirNE:
		return "NE"
	case DirE:
		return "E"
	case DirSE:
		return "SE"
	case DirS:
		return "S"
	case DirSW:
		return "SW"
	case DirW:
		return "W"
	case DirNW:
		return "NW"
	default:
		return "Unknown"
	}
}

// Delta returns the (dRow, dCol) unit step for this direction.
// North decreases Row, East increases Col.
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case DirN:
		return -1, 0
	case DirNE:
		return -1, 1
	case DirE:
		return 0, 1
	case DirSE:
		return 1, 1
	case DirS:
		return 1, 0
	case DirSW:
		return 1, -1
	case DirW:
		return 0, -1
	case DirNW:
		return -1, -1
	default:
		return 0, 0
	}
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return (d + 4) % 8
}

// IsDiagonal reports whether the direction moves along both axes.
func (d Direction) IsDiagonal() bool {
	dr, dc := d.Delta()
	return dr != 0 && dc != 0
}

// IsBackward reports whether the direction reads against the usual
// left-to-right, top-to-bottom order.
func (d Direction) IsBackward() bool {
	switch d {
	case DirN, DirNE, DirW, DirSW, DirNW:
		return true
	default:
		return false
	}
}

// Placement binds a word to the cells it occupies on a grid.
type Placement struct {
	Word  string
	Start Coord
	Dir   Direction
}

// Len returns the number of letters in the placed word.
func (p Placement) Len() int {
	return len([]rune(p.Word))
}

// Cells returns the grid cells covered by the placement, first letter first.
func (p Placement) Cells() []Coord {
	n := p.Len()
	cells := make([]Coord, n)
	for i := 0; i < n; i++ {
		cells[i] = p.Start.Step(p.Dir, i)
	}
	return cells
}

// End returns the cell holding the last letter.
func (p Placement) End() Coord {
	return p.Start.Step(p.Dir, p.Len()-1)
}

// Matches reports whether cells is exactly the placement's path,
// read forward or exactly reversed.
func (p Placement) Matches(cells []Coord) bool {
	n := p.Len()
	if len(cells) != n || n == 0 {
		return false
	}
	forward, backward := true, true
	for i := 0; i < n; i++ {
		want := p.Start.Step(p.Dir, i)
		if cells[i] != want {
			forward = false
		}
		if cells[n-1-i] != want {
			backward = false
		}
		if !forward && !backward {
			return false
		}
	}
	return true
}
