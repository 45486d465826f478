// Package tui runs the game in a terminal with Bubble Tea: the session
// model and its tick loop, key bindings, the scoreboard screen and the SSH
// server that hands every connection its own session.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd schedules the next tick one interval from now.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
