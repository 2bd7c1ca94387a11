package tui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/wordhunt/internal/engine"
	"github.com/vovakirdan/wordhunt/internal/session"
)

// eventBuffer is the size of the per-game event channel.
const eventBuffer = 32

type screen int

const (
	screenLogin screen = iota
	screenMenu
	screenPlay
	screenScoreboard
)

// Options configures an App.
type Options struct {
	Name   string // Suggested player name
	Styles Styles
	Width  int
	Height int
}

// liveGame remembers the game a program is playing so it can be abandoned
// when the program goes away mid-session.
type liveGame struct {
	mu   sync.Mutex
	game *engine.Game
}

func (l *liveGame) set(g *engine.Game) {
	l.mu.Lock()
	l.game = g
	l.mu.Unlock()
}

func (l *liveGame) release(eng *engine.Engine) {
	l.mu.Lock()
	g := l.game
	l.game = nil
	l.mu.Unlock()

	if g != nil && g.State() != session.StateSessionEnded {
		eng.Abandon(g)
	}
}

// App is the top-level model: login -> themes -> play -> themes.
// It is used both for local play and for SSH sessions.
type App struct {
	ctx        context.Context
	eng        *engine.Engine
	styles     Styles
	width      int
	height     int
	screen     screen
	player     engine.Player
	login      LoginModel
	menu       MenuModel
	play       PlayModel
	scoreboard ScoreboardModel
	live       *liveGame
	quitting   bool
}

// NewApp creates the top-level model.
func NewApp(ctx context.Context, eng *engine.Engine, opts Options) App {
	return App{
		ctx:    ctx,
		eng:    eng,
		styles: opts.Styles,
		width:  opts.Width,
		height: opts.Height,
		screen: screenLogin,
		login:  NewLoginModel(ctx, eng, opts.Name, opts.Styles, opts.Width, opts.Height),
		live:   &liveGame{},
	}
}

// Init initializes the first screen.
func (m App) Init() tea.Cmd {
	return m.login.Init()
}

// Update routes messages to the active screen and switches screens.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenLogin:
		return m.updateLogin(msg)
	case screenMenu:
		return m.updateMenu(msg)
	case screenPlay:
		return m.updatePlay(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	}
	return m, nil
}

func (m App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.login.Update(msg)
	if lm, ok := next.(LoginModel); ok {
		m.login = lm
	}

	if m.login.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.login.LoggedIn() {
		p, created := m.login.Player()
		m.player = p
		greeting := fmt.Sprintf("Welcome back, %s!", p.Name)
		if created {
			greeting = fmt.Sprintf("Nice to meet you, %s!", p.Name)
		}
		return m.showMenu(greeting)
	}

	return m, cmd
}

func (m App) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.scoreboard = NewScoreboardModel(m.ctx, m.eng, m.player.Name, m.width, m.height)
		m.screen = screenScoreboard
		return m, m.scoreboard.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		sink := session.NewChannelSink(eventBuffer)
		g, err := m.eng.CreateSession(m.ctx, m.player, selected.ID, sink)
		if err != nil {
			m.menu = m.menu.withError(err)
			return m, nil
		}
		m.live.set(g)
		m.play = NewPlayModel(m.ctx, m.eng, g, sink, m.styles, m.width, m.height)
		m.screen = screenPlay
		return m, m.play.Init()
	}

	return m, cmd
}

func (m App) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.play.Update(msg)
	if pm, ok := next.(PlayModel); ok {
		m.play = pm
	}

	switch {
	case m.play.IsQuitting():
		m.live.set(nil)
		m.quitting = true
		return m, tea.Quit

	case m.play.WantsScoreboard():
		m.live.set(nil)
		m.scoreboard = NewScoreboardModel(m.ctx, m.eng, m.player.Name, m.width, m.height)
		m.screen = screenScoreboard
		return m, m.scoreboard.Init()

	case m.play.BackToMenu():
		m.live.set(nil)
		return m.showMenu("")
	}

	return m, cmd
}

func (m App) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sm, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sm
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		return m.showMenu("")
	}
	return m, cmd
}

func (m App) showMenu(greeting string) (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.ctx, m.eng, greeting, m.styles, m.width, m.height)
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the active screen.
func (m App) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenMenu:
		return m.menu.View()
	case screenPlay:
		return m.play.View()
	case screenScoreboard:
		return m.scoreboard.View()
	}
	return m.login.View()
}

// Close abandons a game left unfinished, e.g. when an SSH client
// disconnects mid-level.
func (m App) Close() {
	m.live.release(m.eng)
}

// Run starts a local Bubble Tea program.
func Run(ctx context.Context, eng *engine.Engine, opts Options) error {
	app := NewApp(ctx, eng, opts)
	defer app.Close()

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
