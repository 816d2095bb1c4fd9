package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rusenback/sysmon/internal/control"
	apperrors "github.com/rusenback/sysmon/internal/errors"
	"github.com/rusenback/sysmon/internal/logging"
	"github.com/rusenback/sysmon/internal/model"
)

// Update handles messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.Clear):
			m.input.SetValue("")
			return m, nil
		}

	case tickMsg:
		// Superseded by a manual refresh, or a cycle is still running
		if msg.id != m.tickID || m.sampling {
			return m, nil
		}
		m.sampling = true
		return m, sampleCmd(m.ctx, m.sampler)

	case cycleMsg:
		m.sampling = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			cycle := msg.cycle
			m.cycle = &cycle
			m.cpuHistory.push(cycle.Health.CPUPercent)
			m.healthHistory.push(cycle.Health.Health)
		}
		m.tickID++
		return m, tickCmd(m.refresh, m.tickID)

	case actionMsg:
		m.message = msg.message
		m.msgIsErr = msg.err != nil
		if msg.err != nil {
			m.log.Error("termination failed", msg.err, logging.Int("pid", msg.pid))
		} else {
			m.log.Info("process terminated", logging.Int("pid", msg.pid))
		}
		if m.observer != nil {
			m.observer.ObserveTermination(msg.err)
		}
		return m, m.refreshNow()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit parses the buffered input and dispatches the command
func (m Model) submit() (tea.Model, tea.Cmd) {
	input := m.input.Value()
	m.input.SetValue("")

	cmd, err := control.Parse(input)
	m.message, m.msgIsErr = "", false
	if err != nil {
		m.log.Debug("invalid operator input", logging.Err(err))
		m.message = "Invalid input, refreshing."
		m.msgIsErr = apperrors.IsInvalidInput(err)
	}

	switch cmd.Action {
	case control.ActionSortCPU, control.ActionSortMemory:
		m.sortMode, _ = cmd.SortMode()
		if m.sortMode == model.SortByMemory {
			m.message = "Sorting by memory."
		} else {
			m.message = "Sorting by CPU."
		}
		return m, nil

	case control.ActionTerminate:
		m.message = fmt.Sprintf("Terminating process %d...", cmd.PID)
		return m, terminateCmd(m.terminator, cmd.PID)

	default:
		return m, m.refreshNow()
	}
}

// refreshNow starts a cycle immediately unless one is already running. The
// pending tick is invalidated so cadence restarts from this cycle.
func (m *Model) refreshNow() tea.Cmd {
	if m.sampling {
		return nil
	}
	m.sampling = true
	m.tickID++
	return sampleCmd(m.ctx, m.sampler)
}
