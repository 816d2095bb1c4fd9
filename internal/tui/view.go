package tui

import (
	"strings"

	"github.com/rusenback/sysmon/internal/model"
)

const optionsLine = "[1] Sort by CPU  [2] Sort by Memory  [PID] Kill process  [0] Refresh"

// Dashboard is everything one frame shows
type Dashboard struct {
	Host  string
	Cycle *model.Cycle // nil until the first cycle succeeds
	// Err is the failure of the latest cycle. When set, no stale figures are shown.
	Err  error
	Sort model.SortMode
	TopN int

	CPUHistory    []float64
	HealthHistory []float64
	HistoryWidth  int
}

// RenderDashboard renders one frame. It writes no terminal control
// sequences; all styling comes from st.
func RenderDashboard(d Dashboard, st Styles) string {
	var s strings.Builder

	s.WriteString(st.Title.Render(banner) + "\n")
	if d.Host != "" {
		s.WriteString(st.Host.Render(d.Host) + "\n")
	}
	s.WriteString("\n")

	switch {
	case d.Err != nil:
		s.WriteString(st.Error.Render("Counters unavailable: "+d.Err.Error()) + "\n")
		s.WriteString(st.Help.Render("Retrying on the next refresh.") + "\n")
	case d.Cycle == nil:
		s.WriteString(st.Help.Render("Sampling...") + "\n")
	default:
		s.WriteString(renderHealth(d.Cycle.Health, st))
		s.WriteString(renderHistory(d.CPUHistory, d.HealthHistory, d.HistoryWidth, st))
		s.WriteString("\n")
		s.WriteString(renderProcesses(RankRecords(d.Cycle.Records, d.Sort, d.TopN), d.Sort, st))
	}

	return s.String()
}

// View renders the TUI interface
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(RenderDashboard(Dashboard{
		Host:          m.host,
		Cycle:         m.cycle,
		Err:           m.err,
		Sort:          m.sortMode,
		TopN:          m.topN,
		CPUHistory:    m.cpuHistory.values,
		HealthHistory: m.healthHistory.values,
		HistoryWidth:  historyWidth(m.width),
	}, m.styles))

	s.WriteString("\n" + m.styles.Help.Render(optionsLine) + "\n")
	if m.message != "" {
		style := m.styles.Message
		if m.msgIsErr {
			style = m.styles.Error
		}
		s.WriteString(style.Render(m.message) + "\n")
	}
	s.WriteString(m.input.View() + "\n")
	s.WriteString(m.styles.Help.Render(m.keys.help()))

	return s.String()
}
