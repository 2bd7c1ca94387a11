package puzzle

import "fmt"

// Coord is a cell position on the grid.
// Row increases downward, Col increases to the right.
type Coord struct {
	Row int
	Col int
}

// C is a convenience constructor for Coord.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Step returns the coordinate n steps away in direction d.
func (c Coord) Step(d Direction, n int) Coord {
	dr, dc := d.Delta()
	return Coord{Row: c.Row + dr*n, Col: c.Col + dc*n}
}
