package tui

import (
	"testing"

	"github.com/vovakirdan/wordhunt/internal/puzzle"
)

func TestLineCells(t *testing.T) {
	tests := []struct {
		name       string
		start, end puzzle.Coord
		want       []puzzle.Coord
		ok         bool
	}{
		{"single cell", puzzle.C(2, 2), puzzle.C(2, 2), []puzzle.Coord{puzzle.C(2, 2)}, true},
		{"east", puzzle.C(0, 0), puzzle.C(0, 2), []puzzle.Coord{puzzle.C(0, 0), puzzle.C(0, 1), puzzle.C(0, 2)}, true},
		{"west", puzzle.C(1, 3), puzzle.C(1, 1), []puzzle.Coord{puzzle.C(1, 3), puzzle.C(1, 2), puzzle.C(1, 1)}, true},
		{"south", puzzle.C(0, 4), puzzle.C(2, 4), []puzzle.Coord{puzzle.C(0, 4), puzzle.C(1, 4), puzzle.C(2, 4)}, true},
		{"north-east", puzzle.C(3, 0), puzzle.C(1, 2), []puzzle.Coord{puzzle.C(3, 0), puzzle.C(2, 1), puzzle.C(1, 2)}, true},
		{"south-west", puzzle.C(0, 3), puzzle.C(2, 1), []puzzle.Coord{puzzle.C(0, 3), puzzle.C(1, 2), puzzle.C(2, 1)}, true},
		{"knight move", puzzle.C(0, 0), puzzle.C(1, 2), nil, false},
		{"bent", puzzle.C(0, 0), puzzle.C(3, 1), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := lineCells(tt.start, tt.end)
			if ok != tt.ok {
				t.Fatalf("lineCells() ok = %v, want %v", ok, tt.ok)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("lineCells() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("cell %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFoundCells(t *testing.T) {
	placements := []puzzle.Placement{
		{Word: "CAT", Start: puzzle.C(0, 0), Dir: puzzle.DirE},
		{Word: "DOG", Start: puzzle.C(1, 0), Dir: puzzle.DirS},
	}

	set := foundCells(placements, []string{"DOG"})
	if len(set) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(set))
	}
	for _, c := range []puzzle.Coord{puzzle.C(1, 0), puzzle.C(2, 0), puzzle.C(3, 0)} {
		if !set[c] {
			t.Errorf("cell %v not marked", c)
		}
	}
	if set[puzzle.C(0, 1)] {
		t.Error("cell of an unfound word marked")
	}
}

func TestRenderGridHighlights(t *testing.T) {
	g := puzzle.GridFromRows("CAT", "DOG", "EMU")
	st := MonochromeStyles()

	plain := RenderGrid(g, gridView{cursor: puzzle.C(-1, -1)}, st)
	if plain == "" {
		t.Fatal("empty render")
	}
	for _, row := range []string{"C A T", "D O G", "E M U"} {
		if !containsPlain(plain, row) {
			t.Errorf("render %q missing row %q", plain, row)
		}
	}

	if RenderGrid(nil, gridView{}, st) != "" {
		t.Error("nil grid should render empty")
	}
}
