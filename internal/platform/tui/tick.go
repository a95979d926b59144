// Package tui provides the Bubble Tea integration for the snake game.
// It handles the terminal UI loop, input mapping, and the journal browser.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is one display refresh; each one gives the scheduler a chance to step.
// Game identifies the model whose refresh loop sent it, so a loop left over
// from a finished game cannot drive the next one.
type TickMsg struct {
	Game int64
	Time time.Time
}

var lastGameID atomic.Int64

// nextGameID hands out refresh loop identifiers.
func nextGameID() int64 {
	return lastGameID.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(game int64, refreshRate int) tea.Cmd {
	if refreshRate <= 0 {
		refreshRate = 60
	}
	interval := time.Second / time.Duration(refreshRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Game: game, Time: t}
	})
}
