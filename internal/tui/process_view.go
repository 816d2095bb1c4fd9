package tui

import (
	"fmt"
	"strings"

	"github.com/rusenback/sysmon/internal/model"
)

const (
	pidWidth       = 8
	nameWidth      = 25
	cpuWidth       = 12
	trendWidth     = 12
	memWidth       = 12
	containerWidth = 16
)

// renderProcesses renders the ranked process table. Rank 0 is highlighted.
func renderProcesses(records []model.DisplayRecord, mode model.SortMode, st Styles) string {
	withContainer := false
	for _, r := range records {
		if r.Container != "" {
			withContainer = true
			break
		}
	}

	var s strings.Builder

	title := "Top processes by CPU"
	if mode == model.SortByMemory {
		title = "Top processes by memory"
	}
	s.WriteString(st.Title.Render(title) + "\n")

	header := fmt.Sprintf("%-*s%-*s%-*s%-*s%-*s",
		pidWidth, "PID",
		nameWidth, "Process Name",
		cpuWidth, "CPU (Δ)",
		trendWidth, "Trend",
		memWidth, "MEM (MB)")
	if withContainer {
		header += fmt.Sprintf("%-*s", containerWidth, "Container")
	}
	s.WriteString(st.Header.Render(header) + "\n")

	rule := pidWidth + nameWidth + cpuWidth + trendWidth + memWidth + 1
	if withContainer {
		rule += containerWidth
	}
	s.WriteString(strings.Repeat("-", rule) + "\n")

	if len(records) == 0 {
		s.WriteString(st.Help.Render("No processes") + "\n")
		return s.String()
	}

	for i, r := range records {
		row := fmt.Sprintf("%-*d%-*s%-*.2f%-*s%-*.2f",
			pidWidth, r.PID,
			nameWidth, truncate(r.Name, nameWidth-1),
			cpuWidth, r.CPUDelta,
			trendWidth, r.Trend.Glyph(),
			memWidth, r.MemoryMB)
		if withContainer {
			row += fmt.Sprintf("%-*s", containerWidth, truncate(r.Container, containerWidth-1))
		}

		style := st.Row
		if i == 0 {
			style = st.Highlight
		}
		s.WriteString(style.Render(row) + "\n")
	}

	return s.String()
}
