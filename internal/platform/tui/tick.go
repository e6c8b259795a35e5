// Package tui provides the Bubble Tea front end for the snake game.
// It maps keys to engine calls, drives the clock and renders snapshots.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Session identifies the
// session that scheduled it so ticks left over from an ended session are
// dropped.
type TickMsg struct {
	Session int
	Time    time.Time
}

// tickCmd returns a Bubble Tea command that sends one tick after interval.
func tickCmd(session int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Session: session, Time: t}
	})
}
