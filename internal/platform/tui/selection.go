package tui

import "github.com/vovakirdan/wordhunt/internal/puzzle"

// lineCells returns the cells of the straight line from start to end,
// inclusive. Lines run along a row, a column or a 45° diagonal; any other
// pair of cells yields false.
func lineCells(start, end puzzle.Coord) ([]puzzle.Coord, bool) {
	dr := sign(end.Row - start.Row)
	dc := sign(end.Col - start.Col)
	rows := abs(end.Row - start.Row)
	cols := abs(end.Col - start.Col)

	if rows != 0 && cols != 0 && rows != cols {
		return nil, false
	}

	n := max(rows, cols) + 1
	cells := make([]puzzle.Coord, n)
	for i := range cells {
		cells[i] = puzzle.C(start.Row+dr*i, start.Col+dc*i)
	}
	return cells, true
}

// cellSet indexes cells for rendering.
func cellSet(cells []puzzle.Coord) map[puzzle.Coord]bool {
	set := make(map[puzzle.Coord]bool, len(cells))
	for _, c := range cells {
		set[c] = true
	}
	return set
}

// foundCells returns every cell covered by a found word.
func foundCells(placements []puzzle.Placement, found []string) map[puzzle.Coord]bool {
	done := make(map[string]bool, len(found))
	for _, w := range found {
		done[w] = true
	}
	set := make(map[puzzle.Coord]bool)
	for _, p := range placements {
		if !done[p.Word] {
			continue
		}
		for _, c := range p.Cells() {
			set[c] = true
		}
	}
	return set
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
