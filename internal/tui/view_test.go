package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rusenback/sysmon/internal/model"
)

func TestGauge(t *testing.T) {
	t.Parallel()
	tests := []struct {
		percent float64
		want    string
	}{
		{60, "[############--------] 60%"},
		{75, "[###############-----] 75%"},
		{0, "[--------------------] 0%"},
		{100, "[####################] 100%"},
		{4.9, "[--------------------] 4%"},
		{99.99, "[###################-] 99%"},
		{-3, "[--------------------] 0%"},
		{250, "[####################] 100%"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.percent), func(t *testing.T) {
			if got := Gauge(tt.percent, GaugeCells); got != tt.want {
				t.Errorf("Gauge(%v) = %q, want %q", tt.percent, got, tt.want)
			}
		})
	}
}

func TestRankRecords(t *testing.T) {
	t.Parallel()
	records := []model.DisplayRecord{
		{PID: 5, CPUDelta: 10, MemoryMB: 500},
		{PID: 3, CPUDelta: 90, MemoryMB: 5},
		{PID: 4, CPUDelta: 10, MemoryMB: 50},
		{PID: 9, CPUDelta: 40, MemoryMB: 900},
	}

	byCPU := RankRecords(records, model.SortByCPU, 10)
	wantCPU := []int{3, 9, 4, 5}
	for i, pid := range wantCPU {
		if byCPU[i].PID != pid {
			t.Fatalf("by CPU order = %v, want %v", pids(byCPU), wantCPU)
		}
	}

	byMem := RankRecords(records, model.SortByMemory, 2)
	if len(byMem) != 2 || byMem[0].PID != 9 || byMem[1].PID != 5 {
		t.Errorf("by memory top 2 = %v, want [9 5]", pids(byMem))
	}

	if records[0].PID != 5 {
		t.Error("RankRecords must not reorder its input")
	}
}

func pids(recs []model.DisplayRecord) []int {
	out := make([]int, len(recs))
	for i, r := range recs {
		out[i] = r.PID
	}
	return out
}

func manyRecords(n int) []model.DisplayRecord {
	recs := make([]model.DisplayRecord, n)
	for i := range recs {
		recs[i] = model.DisplayRecord{
			PID:      100 + i,
			Name:     fmt.Sprintf("proc-%02d", i),
			CPUDelta: float64(i),
			MemoryMB: float64(n - i),
			Trend:    model.TrendRising,
		}
	}
	return recs
}

func TestRenderDashboard(t *testing.T) {
	t.Parallel()
	cycle := &model.Cycle{
		Health: model.HealthSnapshot{CPUPercent: 60, MemoryPercent: 75, UptimeHours: 1.5, Health: 31},
		Records: manyRecords(15),
	}

	out := RenderDashboard(Dashboard{Host: "box (linux 6.8)", Cycle: cycle, Sort: model.SortByCPU, TopN: 10}, PlainStyles())

	for _, want := range []string{
		banner,
		"box (linux 6.8)",
		"CPU Usage:    [############--------] 60%",
		"Memory Usage: [###############-----] 75%",
		"System Uptime: 1.50 hours",
		"System Health Index: 31.00%",
		"Process Name",
		"CPU (Δ)",
		strings.Repeat("-", 70),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard missing %q:\n%s", want, out)
		}
	}

	if strings.Contains(out, "proc-04") {
		t.Error("only the top 10 by CPU should be shown")
	}
	if !strings.Contains(out, "proc-14") || !strings.Contains(out, "↑") {
		t.Error("top process and trend glyph should be shown")
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("plain rendering must not contain escape sequences")
	}

	// Highest CPU comes first
	first := strings.Index(out, "proc-14")
	second := strings.Index(out, "proc-13")
	if first < 0 || second < 0 || first > second {
		t.Errorf("proc-14 should precede proc-13")
	}
}

func TestRenderDashboard_SortByMemory(t *testing.T) {
	t.Parallel()
	cycle := &model.Cycle{Records: manyRecords(15)}
	out := RenderDashboard(Dashboard{Cycle: cycle, Sort: model.SortByMemory, TopN: 10}, PlainStyles())

	if !strings.Contains(out, "Top processes by memory") {
		t.Error("title should name the memory ranking")
	}
	if !strings.Contains(out, "proc-00") || strings.Contains(out, "proc-14") {
		t.Errorf("memory ranking should show the low CPU / high memory processes:\n%s", out)
	}
}

func TestRenderDashboard_ErrorHidesStaleData(t *testing.T) {
	t.Parallel()
	cycle := &model.Cycle{Health: model.HealthSnapshot{CPUPercent: 60}, Records: manyRecords(3)}
	out := RenderDashboard(Dashboard{Cycle: cycle, Err: errors.New("stat: permission denied")}, PlainStyles())

	if !strings.Contains(out, "Counters unavailable: stat: permission denied") {
		t.Errorf("error banner missing:\n%s", out)
	}
	if strings.Contains(out, "CPU Usage") || strings.Contains(out, "proc-00") {
		t.Errorf("stale figures must not be shown on a failed cycle:\n%s", out)
	}
}

func TestRenderDashboard_BeforeFirstCycle(t *testing.T) {
	t.Parallel()
	out := RenderDashboard(Dashboard{}, PlainStyles())
	if !strings.Contains(out, "Sampling...") {
		t.Errorf("expected placeholder, got:\n%s", out)
	}
}

func TestRenderProcesses_ContainerColumn(t *testing.T) {
	t.Parallel()
	recs := []model.DisplayRecord{{PID: 10, Name: "nginx", Container: "web"}, {PID: 11, Name: "bash"}}

	out := renderProcesses(recs, model.SortByCPU, PlainStyles())
	if !strings.Contains(out, "Container") || !strings.Contains(out, "web") {
		t.Errorf("container column missing:\n%s", out)
	}

	out = renderProcesses(recs[1:], model.SortByCPU, PlainStyles())
	if strings.Contains(out, "Container") {
		t.Errorf("container column should be hidden without containers:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"a-very-long-process-name-here", 10, "a-very-..."},
		{"äöüäöüäöü", 5, "äö..."},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestSparklineAndHistory(t *testing.T) {
	t.Parallel()
	h := newHistory(3)
	for _, v := range []float64{0, 50, 100, 100} {
		h.push(v)
	}
	if len(h.values) != 3 || h.values[0] != 50 {
		t.Fatalf("history = %v, want last 3 values", h.values)
	}

	if got := renderSparkline(h.values, 3); got != "▄██" {
		t.Errorf("renderSparkline() = %q, want %q", got, "▄██")
	}
	if got := renderSparkline([]float64{0}, 3); got != "  ▁" {
		t.Errorf("short series should be left padded, got %q", got)
	}
	if renderHistory([]float64{1}, []float64{1}, 10, PlainStyles()) != "" {
		t.Error("history needs at least two points")
	}
}

func TestRenderProcesses_TwoDecimalColumns(t *testing.T) {
	t.Parallel()
	recs := []model.DisplayRecord{{PID: 7, Name: "worker", CPUDelta: 42, Trend: model.TrendRising, MemoryMB: 12.5}}

	out := renderProcesses(recs, model.SortByCPU, PlainStyles())
	row := fmt.Sprintf("%-8s%-25s%-12s", "7", "worker", "42.00")
	if !strings.Contains(out, row) {
		t.Errorf("row should start with %q:\n%s", row, out)
	}
	if !strings.Contains(out, "12.50") {
		t.Errorf("memory should have two decimals:\n%s", out)
	}
}
