package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/wordhunt/internal/engine"
	"github.com/vovakirdan/wordhunt/internal/puzzle"
	"github.com/vovakirdan/wordhunt/internal/scoring"
	"github.com/vovakirdan/wordhunt/internal/session"
)

// eventMsg carries a session event into the Bubble Tea loop.
type eventMsg struct {
	evt session.Event
}

// listenEvents waits for the next session event.
// Returns nil once the sink is closed.
func listenEvents(sink *session.ChannelSink) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt := <-sink.Events():
			return eventMsg{evt: evt}
		case <-sink.Done():
			return nil
		}
	}
}

// PlayModel runs one session: the levels, the summaries between them and
// the final result.
type PlayModel struct {
	ctx    context.Context
	eng    *engine.Engine
	game   *engine.Game
	sink   *session.ChannelSink
	styles Styles
	keys   PlayKeyMap
	help   help.Model
	width  int
	height int

	cursor    puzzle.Coord
	anchor    puzzle.Coord
	hasAnchor bool
	lastTick  time.Time

	status    string
	statusErr bool
	startErr  error // the level could not be started
	saveErr   error // results could not be persisted

	backToMenu     bool
	openScoreboard bool
	quitting       bool
}

// NewPlayModel creates the play screen for g and starts its first level.
// sink must be the sink g was created with.
func NewPlayModel(ctx context.Context, eng *engine.Engine, g *engine.Game, sink *session.ChannelSink, st Styles, width, height int) PlayModel {
	h := help.New()
	h.ShowAll = false

	m := PlayModel{
		ctx:      ctx,
		eng:      eng,
		game:     g,
		sink:     sink,
		styles:   st,
		keys:     DefaultPlayKeyMap(),
		help:     h,
		width:    width,
		height:   height,
		lastTick: time.Now(),
	}
	if err := eng.StartLevel(ctx, g); err != nil {
		m.startErr = err
	}
	m.resetCursor()
	return m
}

// Init starts the clock and the event listener.
func (m PlayModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.game.ID(), clockInterval), listenEvents(m.sink))
}

// Update handles messages for the play screen.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		if msg.GameID != m.game.ID() {
			return m, nil
		}
		return m.handleTick(msg.Time)

	case eventMsg:
		m.handleEvent(msg.evt)
		return m, listenEvents(m.sink)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleTick feeds wall-clock time into the level clock.
func (m PlayModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.leaving() || m.startErr != nil || m.game.State() == session.StateSessionEnded {
		return m, nil
	}

	elapsed := now.Sub(m.lastTick)
	m.lastTick = now
	if m.game.State() == session.StateLevelActive {
		if _, err := m.eng.Tick(m.ctx, m.game, elapsed); err != nil {
			m.setError(err)
		}
	}
	return m, tickCmd(m.game.ID(), clockInterval)
}

func (m *PlayModel) handleEvent(evt session.Event) {
	switch ev := evt.(type) {
	case session.WordFoundEvent:
		m.setStatus(fmt.Sprintf("Found %s! (%d/%d)", ev.Word, ev.Found, ev.Total))
	case session.LevelCompletedEvent:
		switch ev.Reason {
		case session.AllFound:
			m.setStatus("All words found!")
		case session.TimedOut:
			m.setStatus("Time's up!")
		}
	case session.LevelStartedEvent:
		m.setStatus(fmt.Sprintf("Level %d: %d words hidden in a %dx%d grid",
			ev.Level, ev.Words, ev.FieldSize, ev.FieldSize))
	}
}

// handleKey processes keyboard input for the current phase.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.abandon()
		m.quitting = true
		return m, tea.Quit
	}

	if m.startErr != nil {
		if key.Matches(msg, m.keys.Back, m.keys.Submit) {
			m.abandon()
			m.backToMenu = true
		}
		return m, nil
	}

	switch m.game.State() {
	case session.StateLevelActive:
		return m.handleLevelKey(msg)
	case session.StateLevelComplete:
		return m.handleSummaryKey(msg)
	case session.StateSessionEnded:
		return m.handleEndKey(msg)
	}
	return m, nil
}

func (m PlayModel) handleLevelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Mark):
		if m.hasAnchor && m.anchor == m.cursor {
			m.hasAnchor = false
		} else {
			m.anchor = m.cursor
			m.hasAnchor = true
		}
	case key.Matches(msg, m.keys.Submit):
		m.submit()
	case key.Matches(msg, m.keys.Clear):
		m.hasAnchor = false
	case key.Matches(msg, m.keys.Finish):
		m.finish()
	case key.Matches(msg, m.keys.Back):
		m.abandon()
		m.backToMenu = true
	}
	return m, nil
}

func (m PlayModel) handleSummaryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit), key.Matches(msg, m.keys.Mark):
		err := m.eng.Advance(m.ctx, m.game)
		if m.game.State() == session.StateSessionEnded {
			m.saveErr = err
			return m, nil
		}
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.lastTick = time.Now()
		m.hasAnchor = false
		m.resetCursor()
	case key.Matches(msg, m.keys.Finish):
		m.finish()
	case key.Matches(msg, m.keys.Back):
		m.abandon()
		m.backToMenu = true
	}
	return m, nil
}

func (m PlayModel) handleEndKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", "b":
		m.close()
		m.backToMenu = true
	case "tab":
		m.close()
		m.openScoreboard = true
	case "r":
		if m.saveErr != nil {
			m.saveErr = m.eng.SaveResults(m.ctx, m.game)
		}
	}
	return m, nil
}

// submit checks the line from the marked cell to the cursor.
func (m *PlayModel) submit() {
	if !m.hasAnchor {
		m.setStatus("Mark the first letter with space, then move to the last one.")
		return
	}
	cells, ok := lineCells(m.anchor, m.cursor)
	if !ok {
		m.setErrorText("Words run in straight lines.")
		return
	}
	m.hasAnchor = false

	v, err := m.eng.Submit(m.ctx, m.game, cells)
	if err != nil {
		m.setError(err)
		return
	}
	switch v.Outcome {
	case puzzle.AlreadyFound:
		m.setStatus(v.Word + " is already found.")
	case puzzle.NotAWord:
		m.setErrorText("Not one of the hidden words.")
	}
}

// finish ends the session early, keeping the score earned so far.
func (m *PlayModel) finish() {
	_, err := m.eng.End(m.ctx, m.game)
	m.saveErr = err
}

func (m *PlayModel) abandon() {
	if m.game.State() != session.StateSessionEnded {
		m.eng.Abandon(m.game)
	}
	m.close()
}

func (m *PlayModel) close() {
	m.sink.Close()
}

func (m *PlayModel) moveCursor(dRow, dCol int) {
	size := m.fieldSize()
	if size == 0 {
		return
	}
	m.cursor.Row = min(max(m.cursor.Row+dRow, 0), size-1)
	m.cursor.Col = min(max(m.cursor.Col+dCol, 0), size-1)
}

func (m *PlayModel) resetCursor() {
	size := m.fieldSize()
	m.cursor = puzzle.C(size/2, size/2)
}

func (m PlayModel) fieldSize() int {
	if lvl := m.game.Snapshot().Current; lvl != nil && lvl.Grid != nil {
		return lvl.Grid.Size
	}
	return 0
}

func (m *PlayModel) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *PlayModel) setErrorText(s string) {
	m.status = s
	m.statusErr = true
}

func (m *PlayModel) setError(err error) {
	m.setErrorText(err.Error())
}

func (m PlayModel) leaving() bool {
	return m.backToMenu || m.openScoreboard || m.quitting
}

// View renders the current phase.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}
	if m.startErr != nil {
		return m.viewStartError()
	}

	snap := m.game.Snapshot()
	switch snap.State {
	case session.StateLevelComplete:
		return m.viewSummary(snap)
	case session.StateSessionEnded:
		return m.viewEnded(snap)
	}
	if snap.Current == nil {
		return ""
	}
	return m.viewLevel(snap)
}

func (m PlayModel) viewLevel(snap session.Snapshot) string {
	lvl := snap.Current

	v := gridView{
		cursor: m.cursor,
		found:  foundCells(lvl.Placements, lvl.Found),
	}
	if m.hasAnchor {
		if cells, ok := lineCells(m.anchor, m.cursor); ok {
			v.selected = cellSet(cells)
		} else {
			v.selected = cellSet([]puzzle.Coord{m.anchor})
		}
	}

	board := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(RenderGrid(lvl.Grid, v, m.styles))
	words := lipgloss.NewStyle().Padding(0, 2).Render(renderWordList(lvl, m.styles))

	var b strings.Builder
	b.WriteString(renderHUD(snap, m.styles))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, board, words))
	b.WriteString("\n\n")
	if m.statusErr {
		b.WriteString(m.styles.Error.Render(m.status))
	} else {
		b.WriteString(m.styles.Status.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))

	return placeCenter(m.width, m.height, b.String())
}

func (m PlayModel) viewSummary(snap session.Snapshot) string {
	lvl := snap.Current

	title := fmt.Sprintf("Level %d complete", snap.Level)
	if lvl.Reason == session.TimedOut {
		title = fmt.Sprintf("Level %d: time's up", snap.Level)
	}

	var result scoring.LevelResult
	for _, r := range snap.Results {
		if r.Level == snap.Level {
			result = r
		}
	}

	var b strings.Builder
	b.WriteString(m.styles.OverlayTitle.Render(title))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Words found   %d / %d\n", result.Found, result.Total)
	fmt.Fprintf(&b, "Time spent    %s\n", scoring.FormatDuration(result.TimeSpent))
	fmt.Fprintf(&b, "Level score   %d\n", result.Score)
	fmt.Fprintf(&b, "Total score   %d\n\n", snap.Score)

	next := "enter: next level"
	if snap.Level >= snap.MaxLevels {
		next = "enter: see results"
	}
	b.WriteString(m.styles.Help.Render(next + "  |  f: finish  |  esc: abandon"))

	box := m.styles.OverlayBorder.Render(m.styles.OverlayText.Render(b.String()))
	return placeCenter(m.width, m.height, box)
}

func (m PlayModel) viewEnded(snap session.Snapshot) string {
	var b strings.Builder
	b.WriteString(m.styles.OverlayTitle.Render("Session over"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s, theme %s\n\n", snap.PlayerName, snap.ThemeName)
	if len(snap.Results) > 0 {
		b.WriteString(renderResults(snap.Results, m.styles))
		b.WriteString("\n\n")
	}
	b.WriteString(m.styles.HUDTitle.Render(fmt.Sprintf("Final score: %d", snap.FinalScore)))
	b.WriteString("\n\n")

	if m.saveErr != nil {
		b.WriteString(m.styles.Error.Render("Score not saved: " + m.saveErr.Error()))
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("r: retry save"))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render("enter: menu  |  tab: top players"))

	box := m.styles.OverlayBorder.Render(m.styles.OverlayText.Render(b.String()))
	return placeCenter(m.width, m.height, box)
}

func (m PlayModel) viewStartError() string {
	var b strings.Builder
	b.WriteString(m.styles.Error.Render("Could not start the level"))
	b.WriteString("\n\n")
	b.WriteString(m.startErr.Error())
	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render("enter/esc: back to menu"))
	return placeCenter(m.width, m.height, m.styles.OverlayBorder.Render(b.String()))
}

// BackToMenu returns true if the player left the session for the menu.
func (m PlayModel) BackToMenu() bool {
	return m.backToMenu
}

// WantsScoreboard returns true if the player asked for the top players.
func (m PlayModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// IsQuitting returns true if the player quit the program.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}
