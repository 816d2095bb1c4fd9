package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var sparkChars = []string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

// renderSparkline renders the last width points on a fixed 0-100 scale
func renderSparkline(data []float64, width int) string {
	if width <= 0 {
		return ""
	}

	// Take last 'width' points
	start := 0
	if len(data) > width {
		start = len(data) - width
	}
	displayData := data[start:]

	var result strings.Builder
	// Left pad so the newest point is always at the right edge
	result.WriteString(strings.Repeat(" ", width-len(displayData)))

	for _, value := range displayData {
		charIndex := int(value / 100 * float64(len(sparkChars)-1))
		if charIndex >= len(sparkChars) {
			charIndex = len(sparkChars) - 1
		}
		if charIndex < 0 {
			charIndex = 0
		}
		result.WriteString(sparkChars[charIndex])
	}

	return result.String()
}

// Labels around the two sparklines on one history line
const (
	cpuHistoryLabel    = "CPU history    "
	healthHistoryLabel = "   Health history "
)

// historyWidth fits both sparklines into a terminal termWidth columns wide.
// Zero means the size is not known yet.
func historyWidth(termWidth int) int {
	const minWidth = 8
	if termWidth <= 0 {
		return historyPoints
	}
	w := (termWidth - len(cpuHistoryLabel) - len(healthHistoryLabel)) / 2
	switch {
	case w > historyPoints:
		return historyPoints
	case w < minWidth:
		return minWidth
	}
	return w
}

// renderHistory renders CPU and health sparklines side by side
func renderHistory(cpu, health []float64, width int, st Styles) string {
	if len(cpu) < 2 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		st.Label.Render(cpuHistoryLabel),
		st.Graph.Render(renderSparkline(cpu, width)),
		st.Label.Render(healthHistoryLabel),
		st.Graph.Render(renderSparkline(health, width)),
	) + "\n"
}

// history is a fixed-capacity series of per-cycle values, oldest first
type history struct {
	values []float64
	max    int
}

func newHistory(max int) history {
	return history{values: make([]float64, 0, max), max: max}
}

func (h *history) push(v float64) {
	if len(h.values) == h.max {
		copy(h.values, h.values[1:])
		h.values = h.values[:h.max-1]
	}
	h.values = append(h.values, v)
}
