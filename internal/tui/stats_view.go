package tui

import (
	"fmt"
	"strings"

	"github.com/rusenback/sysmon/internal/model"
)

// GaugeCells is the width of a utilization gauge, 5% per cell.
const GaugeCells = 20

const banner = "==================== SYSTEM MONITOR TOOL ===================="

// Gauge renders percent as a fixed-width bar followed by an integer label,
// e.g. "[############--------] 60%".
func Gauge(percent float64, cells int) string {
	if cells <= 0 {
		cells = GaugeCells
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / (100 / float64(cells)))
	if filled > cells {
		filled = cells
	}
	return fmt.Sprintf("[%s%s] %d%%",
		strings.Repeat("#", filled),
		strings.Repeat("-", cells-filled),
		int(percent))
}

// renderHealth renders the gauges and summary lines
func renderHealth(h model.HealthSnapshot, st Styles) string {
	var s strings.Builder

	s.WriteString(st.Label.Render("CPU Usage:    "))
	s.WriteString(st.Level(h.CPUPercent).Render(Gauge(h.CPUPercent, GaugeCells)) + "\n")

	s.WriteString(st.Label.Render("Memory Usage: "))
	s.WriteString(st.Level(h.MemoryPercent).Render(Gauge(h.MemoryPercent, GaugeCells)) + "\n")

	s.WriteString(st.Label.Render("System Uptime: "))
	s.WriteString(fmt.Sprintf("%.2f hours\n", h.UptimeHours))

	s.WriteString(st.Label.Render("System Health Index: "))
	// Health is inverted: low values are bad
	s.WriteString(st.Level(100-h.Health).Render(fmt.Sprintf("%.2f%%", h.Health)) + "\n")

	return s.String()
}
