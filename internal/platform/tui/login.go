package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/wordhunt/internal/engine"
)

// maxNameLength bounds player names typed on the login screen.
const maxNameLength = 24

// LoginModel asks for a player name and logs the player in.
type LoginModel struct {
	ctx      context.Context
	eng      *engine.Engine
	input    textinput.Model
	styles   Styles
	width    int
	height   int
	err      error
	player   engine.Player
	created  bool
	loggedIn bool
	quitting bool
}

// NewLoginModel creates a login screen. name pre-fills the input, which
// is how SSH users get their account name suggested.
func NewLoginModel(ctx context.Context, eng *engine.Engine, name string, st Styles, width, height int) LoginModel {
	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = maxNameLength
	ti.Width = maxNameLength
	ti.Prompt = "> "
	ti.SetValue(name)
	ti.Focus()

	return LoginModel{
		ctx:    ctx,
		eng:    eng,
		input:  ti,
		styles: st,
		width:  width,
		height: height,
	}
}

// Init starts the cursor blinking.
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the login screen.
func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.login()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m LoginModel) login() (tea.Model, tea.Cmd) {
	p, created, err := m.eng.Login(m.ctx, m.input.Value())
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.player = p
	m.created = created
	m.loggedIn = true
	return m, nil
}

// View renders the login screen.
func (m LoginModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.MenuTitle.Render("W O R D H U N T"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.MenuDescription.Render("Find the hidden words before time runs out."))
	b.WriteString("\n\n")
	b.WriteString("Who is playing?\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.err != nil {
		msg := "Could not log in: " + m.err.Error()
		if errors.Is(m.err, engine.ErrInvalidName) {
			msg = "Please enter a name."
		}
		b.WriteString(m.styles.Error.Render(msg))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.Help.Render("enter: continue  |  esc: quit"))
	return placeCenter(m.width, m.height, b.String())
}

// LoggedIn reports whether a player has logged in.
func (m LoginModel) LoggedIn() bool {
	return m.loggedIn
}

// Player returns the logged-in player and whether they were just registered.
func (m LoginModel) Player() (engine.Player, bool) {
	return m.player, m.created
}

// IsQuitting returns true if user requested to quit.
func (m LoginModel) IsQuitting() bool {
	return m.quitting
}
