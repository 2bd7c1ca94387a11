package tui

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/wordhunt/internal/config"
	"github.com/vovakirdan/wordhunt/internal/engine"
	"github.com/vovakirdan/wordhunt/internal/session"
	"github.com/vovakirdan/wordhunt/internal/storage"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// containsPlain reports whether s contains sub once styling is removed.
func containsPlain(s, sub string) bool {
	return strings.Contains(ansi.ReplaceAllString(s, ""), sub)
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	tabKey   = tea.KeyMsg{Type: tea.KeyTab}
	upKey    = tea.KeyMsg{Type: tea.KeyUp}
	leftKey  = tea.KeyMsg{Type: tea.KeyLeft}
	spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func newTestEngine(t *testing.T, maxLevels int) *engine.Engine {
	t.Helper()
	store := storage.NewMemory()
	_, _, err := store.ImportTheme(context.Background(), "Animals", []string{
		"cat", "dog", "bird", "horse", "tiger", "zebra", "lion", "wolf",
	})
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Game.MaxLevels = maxLevels
	cfg.Game.Seed = 42
	return engine.New(store, cfg, nil)
}

func newTestApp(t *testing.T, eng *engine.Engine, name string) App {
	t.Helper()
	return NewApp(context.Background(), eng, Options{
		Name:   name,
		Styles: DefaultStyles(),
		Width:  100,
		Height: 40,
	})
}

func send(t *testing.T, m App, msgs ...tea.Msg) App {
	t.Helper()
	var model tea.Model = m
	for _, msg := range msgs {
		model, _ = model.Update(msg)
	}
	app, ok := model.(App)
	if !ok {
		t.Fatalf("Update returned %T", model)
	}
	return app
}

// startGame logs in and picks the first theme.
func startGame(t *testing.T, eng *engine.Engine) App {
	t.Helper()
	app := send(t, newTestApp(t, eng, "Ann"), enterKey)
	if app.screen != screenMenu {
		t.Fatalf("expected menu after login, got screen %d", app.screen)
	}
	app = send(t, app, enterKey)
	if app.screen != screenPlay {
		t.Fatalf("expected play screen, got %d (menu error %v)", app.screen, app.menu.err)
	}
	return app
}

func TestLoginRejectsEmptyName(t *testing.T) {
	eng := newTestEngine(t, 1)
	app := send(t, newTestApp(t, eng, ""), enterKey)

	if app.screen != screenLogin {
		t.Fatalf("expected to stay on login, got screen %d", app.screen)
	}
	if !containsPlain(app.View(), "Please enter a name.") {
		t.Errorf("missing validation message in view:\n%s", app.View())
	}

	app = send(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Bob")}, enterKey)
	if app.screen != screenMenu || app.player.Name != "Bob" {
		t.Errorf("expected Bob at the menu, got screen %d player %+v", app.screen, app.player)
	}
	if !containsPlain(app.View(), "Nice to meet you, Bob!") {
		t.Errorf("missing greeting in view:\n%s", app.View())
	}
}

func TestMenuListsThemes(t *testing.T) {
	eng := newTestEngine(t, 1)
	app := send(t, newTestApp(t, eng, "Ann"), enterKey)

	view := app.View()
	if !containsPlain(view, "Animals") || !containsPlain(view, "8 words") {
		t.Errorf("theme missing from menu:\n%s", view)
	}
}

func TestPlayFullSession(t *testing.T) {
	eng := newTestEngine(t, 1)
	app := startGame(t, eng)

	snap := app.play.game.Snapshot()
	if snap.State != session.StateLevelActive {
		t.Fatalf("expected active level, got %s", snap.State)
	}

	for _, p := range snap.Current.Placements {
		app.play.anchor = p.Start
		app.play.hasAnchor = true
		app.play.cursor = p.End()
		app = send(t, app, enterKey)
		if app.play.statusErr {
			t.Fatalf("submitting %s failed: %s", p.Word, app.play.status)
		}
	}

	if got := app.play.game.State(); got != session.StateLevelComplete {
		t.Fatalf("expected level complete, got %s", got)
	}
	if !containsPlain(app.View(), "Level 1 complete") {
		t.Errorf("missing summary:\n%s", app.View())
	}

	app = send(t, app, enterKey)
	if got := app.play.game.State(); got != session.StateSessionEnded {
		t.Fatalf("expected session ended, got %s", got)
	}
	if !containsPlain(app.View(), "Final score") {
		t.Errorf("missing final score:\n%s", app.View())
	}

	app = send(t, app, tabKey)
	if app.screen != screenScoreboard {
		t.Fatalf("expected scoreboard, got %d", app.screen)
	}
	if !containsPlain(app.View(), "Ann") {
		t.Errorf("player missing from scoreboard:\n%s", app.View())
	}

	app = send(t, app, escKey)
	if app.screen != screenMenu {
		t.Errorf("expected menu after scoreboard, got %d", app.screen)
	}
}

func TestPlayRejectsBentSelection(t *testing.T) {
	eng := newTestEngine(t, 1)
	app := startGame(t, eng)

	app = send(t, app, spaceKey, upKey, upKey, leftKey, enterKey)
	if !app.play.statusErr || !strings.Contains(app.play.status, "straight") {
		t.Errorf("expected straight-line error, got %q", app.play.status)
	}
	if app.play.hasAnchor {
		t.Error("anchor should stay set after a rejected shape")
	}
}

func TestPlayCursorStaysOnGrid(t *testing.T) {
	eng := newTestEngine(t, 1)
	app := startGame(t, eng)

	for i := 0; i < 30; i++ {
		app = send(t, app, upKey, leftKey)
	}
	if app.play.cursor.Row != 0 || app.play.cursor.Col != 0 {
		t.Errorf("cursor left the grid: %v", app.play.cursor)
	}
}

func TestPlayTimesOut(t *testing.T) {
	eng := newTestEngine(t, 2)
	app := startGame(t, eng)
	id := app.play.game.ID()

	app = send(t, app, TickMsg{GameID: id, Time: time.Now().Add(time.Hour)})
	snap := app.play.game.Snapshot()
	if snap.State != session.StateLevelComplete || snap.Current.Reason != session.TimedOut {
		t.Fatalf("expected timed out level, got %s (%s)", snap.State, snap.Current.Reason)
	}
	if !containsPlain(app.View(), "time's up") {
		t.Errorf("missing timeout summary:\n%s", app.View())
	}
}

func TestPlayIgnoresTicksOfOtherGames(t *testing.T) {
	eng := newTestEngine(t, 1)
	app := startGame(t, eng)

	before := app.play.game.Snapshot().Current.Remaining
	app = send(t, app, TickMsg{GameID: "other", Time: time.Now().Add(time.Hour)})
	if after := app.play.game.Snapshot().Current.Remaining; after != before {
		t.Errorf("foreign tick changed the clock: %v -> %v", before, after)
	}
}

func TestPlayEscAbandons(t *testing.T) {
	eng := newTestEngine(t, 3)
	app := startGame(t, eng)
	if eng.Registry().Count() != 1 {
		t.Fatalf("expected 1 live game, got %d", eng.Registry().Count())
	}

	app = send(t, app, escKey)
	if app.screen != screenMenu {
		t.Fatalf("expected menu, got %d", app.screen)
	}
	if eng.Registry().Count() != 0 {
		t.Errorf("abandoned game still registered")
	}
}

func TestAppCloseAbandonsLiveGame(t *testing.T) {
	eng := newTestEngine(t, 3)
	app := startGame(t, eng)

	app.Close()
	if eng.Registry().Count() != 0 {
		t.Errorf("live game not released on close")
	}
}

func TestPlayFinishEarly(t *testing.T) {
	eng := newTestEngine(t, 3)
	app := startGame(t, eng)

	app = send(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")})
	if got := app.play.game.State(); got != session.StateSessionEnded {
		t.Fatalf("expected ended session, got %s", got)
	}
	if app.play.saveErr != nil {
		t.Errorf("unexpected save error: %v", app.play.saveErr)
	}

	app = send(t, app, enterKey)
	if app.screen != screenMenu {
		t.Errorf("expected menu, got %d", app.screen)
	}
}
