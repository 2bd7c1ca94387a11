package puzzle

// Outcome classifies a player's candidate selection.
type Outcome int

const (
	NotAWord Outcome = iota
	AlreadyFound
	Valid
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case NotAWord:
		return "not_a_word"
	case AlreadyFound:
		return "already_found"
	case Valid:
		return "valid"
	default:
		return "unknown"
	}
}

// Verdict is the result of validating a candidate.
// Word is set for Valid and AlreadyFound.
type Verdict struct {
	Outcome Outcome
	Word    string
}

// Validate checks a candidate selection against the level's placements.
//
// The letters under cells are read in order (and in reverse, so a word
// selected end-to-start still counts). A candidate is Valid only if it
// spells a target word and its cells are exactly the path of a placement
// for that word; matching letters elsewhere on the grid are rejected.
// A reading that is an unfound target on its own placement wins; only
// then does a found reading yield AlreadyFound, without a placement check.
// The forward reading is resolved before the reversed one.
func Validate(g *Grid, cells []Coord, targets, found []string, placements []Placement) Verdict {
	if g == nil || len(cells) == 0 {
		return Verdict{Outcome: NotAWord}
	}
	spelled, ok := g.Spell(cells)
	if !ok {
		return Verdict{Outcome: NotAWord}
	}
	spelled = Normalize(spelled)
	readings := []string{spelled}
	if rev := reverse(spelled); rev != spelled {
		readings = append(readings, rev)
	}

	for _, w := range readings {
		if contains(found, w) || !contains(targets, w) {
			continue
		}
		for _, p := range placements {
			if p.Word == w && p.Matches(cells) {
				return Verdict{Outcome: Valid, Word: w}
			}
		}
	}
	for _, w := range readings {
		if contains(found, w) {
			return Verdict{Outcome: AlreadyFound, Word: w}
		}
	}
	return Verdict{Outcome: NotAWord}
}

func contains(list []string, w string) bool {
	for _, s := range list {
		if s == w {
			return true
		}
	}
	return false
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
