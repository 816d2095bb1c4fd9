package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds every style the dashboard uses. Rendering never emits
// terminal control sequences itself; styling is decided here.
type Styles struct {
	Title     lipgloss.Style
	Host      lipgloss.Style
	Label     lipgloss.Style
	Header    lipgloss.Style
	Highlight lipgloss.Style
	Row       lipgloss.Style
	Error     lipgloss.Style
	Message   lipgloss.Style
	Help      lipgloss.Style
	Graph     lipgloss.Style

	// Level picks a style for a utilization percentage
	Level func(percent float64) lipgloss.Style
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B4BEFE"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1E1E2E")).
			Background(lipgloss.Color("#CBA6F7"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1E1E2E")).
			Background(lipgloss.Color("#F38BA8"))

	rowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#CDD6F4"))

	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6ADC8"))

	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA"))
)

// DefaultStyles returns the colored palette used in the interactive UI
func DefaultStyles() Styles {
	return Styles{
		Title:     titleStyle,
		Host:      helpStyle,
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
		Header:    headerStyle,
		Highlight: selectedStyle,
		Row:       rowStyle,
		Error:     errorStyle,
		Message:   lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		Help:      helpStyle,
		Graph:     graphStyle,
		Level:     levelStyle,
	}
}

// PlainStyles returns styles that leave text untouched, for pipes and reports
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:     plain,
		Host:      plain,
		Label:     plain,
		Header:    plain,
		Highlight: plain,
		Row:       plain,
		Error:     plain,
		Message:   plain,
		Help:      plain,
		Graph:     plain,
		Level:     func(float64) lipgloss.Style { return plain },
	}
}

func levelStyle(percent float64) lipgloss.Style {
	var color string
	switch {
	case percent > 80:
		color = "#F38BA8" // red/pink
	case percent > 50:
		color = "#FAB387" // orange
	default:
		color = "#A6E3A1" // green
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
