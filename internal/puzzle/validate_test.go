package puzzle_test

import (
	"testing"

	"github.com/vovakirdan/wordhunt/internal/puzzle"
)

// fixture returns a grid where CAT is placed along row 0 and the same
// letters also happen to run down column 0.
func fixture() (*puzzle.Grid, []puzzle.Placement) {
	g := puzzle.GridFromRows(
		"CATQ",
		"AZZZ",
		"TZZZ",
		"ZZZZ",
	)
	placements := []puzzle.Placement{
		{Word: "CAT", Start: puzzle.C(0, 0), Dir: puzzle.DirE},
	}
	return g, placements
}

func TestValidate(t *testing.T) {
	g, placements := fixture()
	targets := []string{"CAT", "DOG"}

	tests := []struct {
		name    string
		cells   []puzzle.Coord
		found   []string
		outcome puzzle.Outcome
		word    string
	}{
		{
			name:    "exact placement",
			cells:   []puzzle.Coord{puzzle.C(0, 0), puzzle.C(0, 1), puzzle.C(0, 2)},
			outcome: puzzle.Valid,
			word:    "CAT",
		},
		{
			name:    "reversed placement",
			cells:   []puzzle.Coord{puzzle.C(0, 2), puzzle.C(0, 1), puzzle.C(0, 0)},
			outcome: puzzle.Valid,
			word:    "CAT",
		},
		{
			name:    "coincidental letters on another line",
			cells:   []puzzle.Coord{puzzle.C(0, 0), puzzle.C(1, 0), puzzle.C(2, 0)},
			outcome: puzzle.NotAWord,
		},
		{
			name:    "letters match but path is not straight",
			cells:   []puzzle.Coord{puzzle.C(0, 0), puzzle.C(1, 0), puzzle.C(0, 2)},
			outcome: puzzle.NotAWord,
		},
		{
			name:    "partial placement",
			cells:   []puzzle.Coord{puzzle.C(0, 0), puzzle.C(0, 1)},
			outcome: puzzle.NotAWord,
		},
		{
			name:    "not a target",
			cells:   []puzzle.Coord{puzzle.C(1, 1), puzzle.C(1, 2), puzzle.C(1, 3)},
			outcome: puzzle.NotAWord,
		},
		{
			name:    "out of bounds",
			cells:   []puzzle.Coord{puzzle.C(0, 2), puzzle.C(0, 3), puzzle.C(0, 4)},
			outcome: puzzle.NotAWord,
		},
		{
			name:    "empty selection",
			cells:   nil,
			outcome: puzzle.NotAWord,
		},
		{
			name:    "already found",
			cells:   []puzzle.Coord{puzzle.C(0, 0), puzzle.C(0, 1), puzzle.C(0, 2)},
			found:   []string{"CAT"},
			outcome: puzzle.AlreadyFound,
			word:    "CAT",
		},
		{
			name:    "already found skips placement check",
			cells:   []puzzle.Coord{puzzle.C(0, 0), puzzle.C(1, 0), puzzle.C(2, 0)},
			found:   []string{"CAT"},
			outcome: puzzle.AlreadyFound,
			word:    "CAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := puzzle.Validate(g, tt.cells, targets, tt.found, placements)
			if v.Outcome != tt.outcome {
				t.Errorf("outcome = %v, want %v", v.Outcome, tt.outcome)
			}
			if v.Word != tt.word {
				t.Errorf("word = %q, want %q", v.Word, tt.word)
			}
		})
	}
}

func TestValidateMirroredTargets(t *testing.T) {
	// TAB runs along row 0; BAT is hidden down column 3.
	g := puzzle.GridFromRows(
		"TABB",
		"ZZZA",
		"ZZZT",
		"ZZZZ",
	)
	placements := []puzzle.Placement{
		{Word: "TAB", Start: puzzle.C(0, 0), Dir: puzzle.DirE},
		{Word: "BAT", Start: puzzle.C(0, 3), Dir: puzzle.DirS},
	}
	targets := []string{"TAB", "BAT"}
	tabBackwards := []puzzle.Coord{puzzle.C(0, 2), puzzle.C(0, 1), puzzle.C(0, 0)}

	v := puzzle.Validate(g, tabBackwards, targets, []string{"BAT"}, placements)
	if v.Outcome != puzzle.Valid || v.Word != "TAB" {
		t.Errorf("TAB selected end-to-start with BAT found = %v %q, want Valid TAB", v.Outcome, v.Word)
	}

	v = puzzle.Validate(g, tabBackwards, targets, []string{"BAT", "TAB"}, placements)
	if v.Outcome != puzzle.AlreadyFound {
		t.Errorf("both found: outcome = %v, want AlreadyFound", v.Outcome)
	}
}

func TestPlacementMatches(t *testing.T) {
	p := puzzle.Placement{Word: "DOG", Start: puzzle.C(2, 2), Dir: puzzle.DirNW}

	cells := p.Cells()
	want := []puzzle.Coord{puzzle.C(2, 2), puzzle.C(1, 1), puzzle.C(0, 0)}
	for i := range want {
		if cells[i] != want[i] {
			t.Fatalf("Cells()[%d] = %v, want %v", i, cells[i], want[i])
		}
	}
	if p.End() != puzzle.C(0, 0) {
		t.Errorf("End() = %v, want (0,0)", p.End())
	}

	if !p.Matches(want) {
		t.Error("expected forward path to match")
	}
	if !p.Matches([]puzzle.Coord{puzzle.C(0, 0), puzzle.C(1, 1), puzzle.C(2, 2)}) {
		t.Error("expected reversed path to match")
	}
	if p.Matches([]puzzle.Coord{puzzle.C(2, 2), puzzle.C(0, 0), puzzle.C(1, 1)}) {
		t.Error("shuffled path should not match")
	}
}

func TestDirectionOpposite(t *testing.T) {
	for _, d := range puzzle.AllDirections {
		dr, dc := d.Delta()
		or, oc := d.Opposite().Delta()
		if dr != -or || dc != -oc {
			t.Errorf("%v opposite %v has delta (%d,%d), want (%d,%d)", d, d.Opposite(), or, oc, -dr, -dc)
		}
	}
}
