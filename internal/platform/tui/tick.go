// Package tui provides the Bubble Tea front end for wordhunt, used both
// locally and over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// clockInterval is how often the level clock is advanced.
const clockInterval = time.Second

// TickMsg is sent to advance the level clock of one game.
type TickMsg struct {
	GameID string
	Time   time.Time
}

// tickCmd returns a Bubble Tea command that sends a tick for the game
// after interval.
func tickCmd(gameID string, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{GameID: gameID, Time: t}
	})
}
