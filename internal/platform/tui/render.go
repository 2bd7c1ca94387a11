package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/wordhunt/internal/puzzle"
	"github.com/vovakirdan/wordhunt/internal/scoring"
	"github.com/vovakirdan/wordhunt/internal/session"
)

// lowTime is when the clock turns to the warning style.
const lowTime = 10

// gridView describes what to highlight on a grid.
type gridView struct {
	cursor   puzzle.Coord
	selected map[puzzle.Coord]bool
	found    map[puzzle.Coord]bool
}

// RenderGrid draws the letter grid. Cells are separated by a space so the
// board keeps a square look in most terminal fonts.
func RenderGrid(g *puzzle.Grid, v gridView, st Styles) string {
	if g == nil {
		return ""
	}

	var sb strings.Builder
	sb.Grow(g.Size * g.Size * 4)

	for r := 0; r < g.Size; r++ {
		if r > 0 {
			sb.WriteRune('\n')
		}
		for c := 0; c < g.Size; c++ {
			if c > 0 {
				sb.WriteRune(' ')
			}
			pos := puzzle.C(r, c)
			letter := string(g.At(pos))

			style := st.Cell
			switch {
			case pos == v.cursor:
				style = st.CellCursor
			case v.selected[pos]:
				style = st.CellSelected
			case v.found[pos]:
				style = st.CellFound
			}
			sb.WriteString(style.Render(letter))
		}
	}
	return sb.String()
}

// renderWordList lists the level's words, crossing out the found ones.
func renderWordList(lvl *session.Level, st Styles) string {
	found := make(map[string]bool, len(lvl.Found))
	for _, w := range lvl.Found {
		found[w] = true
	}

	lines := make([]string, 0, len(lvl.Targets)+2)
	lines = append(lines, st.HUDTitle.Render("WORDS"), "")
	for _, w := range lvl.Targets {
		if found[w] {
			lines = append(lines, st.WordFound.Render(w))
		} else {
			lines = append(lines, st.WordPending.Render(w))
		}
	}
	return strings.Join(lines, "\n")
}

// renderHUD renders the status line above the grid.
func renderHUD(snap session.Snapshot, st Styles) string {
	lvl := snap.Current
	sep := st.HUDSeparator.Render("  |  ")

	clock := scoring.FormatDuration(lvl.Remaining)
	clockStyle := st.HUDValue
	if lvl.Remaining.Seconds() <= lowTime {
		clockStyle = st.HUDWarning
	}

	parts := []string{
		st.HUDTitle.Render(snap.ThemeName),
		fmt.Sprintf("Level %s", st.HUDValue.Render(fmt.Sprintf("%d/%d", snap.Level, snap.MaxLevels))),
		fmt.Sprintf("Time %s", clockStyle.Render(clock)),
		fmt.Sprintf("Found %s", st.HUDValue.Render(fmt.Sprintf("%d/%d", len(lvl.Found), len(lvl.Targets)))),
		fmt.Sprintf("Score %s", st.HUDValue.Render(fmt.Sprintf("%d", snap.Score))),
	}
	return strings.Join(parts, sep)
}

// renderResults renders per-level results as aligned rows.
func renderResults(results []scoring.LevelResult, st Styles) string {
	var sb strings.Builder
	for _, r := range results {
		fmt.Fprintf(&sb, "Level %d   %d/%d words   %s   %s\n",
			r.Level, r.Found, r.Total,
			scoring.FormatDuration(r.TimeSpent),
			st.HUDValue.Render(fmt.Sprintf("%d pts", r.Score)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// placeCenter centers content in a width×height area when it fits.
func placeCenter(width, height int, content string) string {
	if width <= 0 || height <= 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
