package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rusenback/sysmon/internal/control"
	"github.com/rusenback/sysmon/internal/system"
)

// tickCmd schedules the next refresh. id lets Update drop ticks that a
// manual refresh has superseded.
func tickCmd(d time.Duration, id int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}

// sampleCmd runs one sampling cycle off the UI goroutine
func sampleCmd(ctx context.Context, s Sampler) tea.Cmd {
	return func() tea.Msg {
		cycle, err := s.Sample(ctx)
		return cycleMsg{cycle: cycle, err: err}
	}
}

// terminateCmd sends the termination request for pid
func terminateCmd(t system.Terminator, pid int) tea.Cmd {
	return func() tea.Msg {
		message, err := control.Terminate(t, pid)
		return actionMsg{pid: pid, message: message, err: err}
	}
}
