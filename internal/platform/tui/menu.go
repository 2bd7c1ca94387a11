package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/wordhunt/internal/engine"
)

// MenuModel is the Bubble Tea model for the theme picker.
type MenuModel struct {
	ctx            context.Context
	eng            *engine.Engine
	greeting       string
	items          []engine.ThemeSummary
	err            error
	cursor         int
	width          int
	height         int
	styles         Styles
	keyMapper      *KeyMapper
	quitting       bool
	selected       *engine.ThemeSummary // Set when user picks a theme
	openScoreboard bool                 // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a theme menu and loads the playable themes.
func NewMenuModel(ctx context.Context, eng *engine.Engine, greeting string, st Styles, width, height int) MenuModel {
	items, err := eng.Themes(ctx)
	return MenuModel{
		ctx:       ctx,
		eng:       eng,
		greeting:  greeting,
		items:     items,
		err:       err,
		width:     width,
		height:    height,
		styles:    st,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.styles.MenuTitle.Render("  W O R D H U N T  "), m.width))
	b.WriteString("\n\n")
	if m.greeting != "" {
		b.WriteString(centerText(m.styles.Status.Render(m.greeting), m.width))
		b.WriteString("\n\n")
	}
	b.WriteString(centerText("Choose a theme", m.width))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(centerText(m.styles.Error.Render("Could not load themes: "+m.err.Error()), m.width))
		b.WriteString("\n")
	case len(m.items) == 0:
		b.WriteString(centerText(m.styles.MenuDescription.Render("No themes yet. Import some with `wordhunt import`."), m.width))
		b.WriteString("\n")
	}

	for i, item := range m.items {
		style := m.styles.MenuItemNormal
		cursor := "  "
		if i == m.cursor {
			style = m.styles.MenuItemActive
			cursor = "> "
		}
		line := style.Render(fmt.Sprintf("%s%-16s", cursor, item.Name)) +
			m.styles.MenuDescription.Render(fmt.Sprintf("%3d words", item.WordCount))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Top players  |  Q: Quit"
	b.WriteString(centerText(m.styles.Help.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected theme, or nil if none selected.
func (m MenuModel) Selected() *engine.ThemeSummary {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// withError returns the menu showing err above the theme list.
func (m MenuModel) withError(err error) MenuModel {
	m.err = err
	m.selected = nil
	return m
}
