// Package tui provides the Bubble Tea front end for handball.
// It handles the terminal UI loop, input mapping, and score recording.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/handball/internal/scheduler"
)

// redrawMsg is sent when the scheduler raised the redraw flag.
type redrawMsg struct {
	session int
}

// stoppedMsg is sent when waiting ended without a redraw: the scheduler
// was stopped or the session context was canceled.
type stoppedMsg struct {
	session int
	err     error
}

// waitCmd blocks on the scheduler's redraw flag and reports the outcome.
// The session number lets Update drop messages from a replaced session.
func waitCmd(ctx context.Context, s *scheduler.Scheduler, session int) tea.Cmd {
	return func() tea.Msg {
		if err := s.Wait(ctx); err != nil {
			return stoppedMsg{session: session, err: err}
		}
		return redrawMsg{session: session}
	}
}
