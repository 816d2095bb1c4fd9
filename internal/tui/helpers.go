package tui

import (
	"sort"

	"github.com/rusenback/sysmon/internal/model"
)

// truncate shortens a string to a maximum number of runes
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// RankRecords returns the top n records ordered by the sort mode. The input
// is not modified. Ties are broken by PID so the order is stable across
// refreshes.
func RankRecords(records []model.DisplayRecord, mode model.SortMode, n int) []model.DisplayRecord {
	ranked := make([]model.DisplayRecord, len(records))
	copy(ranked, records)

	key := func(r model.DisplayRecord) float64 { return r.CPUDelta }
	if mode == model.SortByMemory {
		key = func(r model.DisplayRecord) float64 { return r.MemoryMB }
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		ki, kj := key(ranked[i]), key(ranked[j])
		if ki != kj {
			return ki > kj
		}
		return ranked[i].PID < ranked[j].PID
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
