package engine

import (
	"github.com/rusenback/sysmon/internal/delta"
	"github.com/rusenback/sysmon/internal/model"
)

// FirstObservationBaseline is the previous tick count assumed for a process
// seen for the first time. A first-cycle delta therefore equals the
// process's total accumulated ticks.
const FirstObservationBaseline uint64 = 0

// TrendEpsilon is the band within which a delta change counts as steady.
const TrendEpsilon = 0.05

// DefaultStaleCycles is how many cycles an entry may go unseen before it is evicted.
const DefaultStaleCycles = 3

type trendEntry struct {
	ticks      uint64
	startTicks uint64
	delta      float64
	lastSeen   uint64
}

// TrendState carries per-process counters from one cycle to the next. It is
// not safe for concurrent use; exactly one cycle runs at a time.
type TrendState struct {
	entries     map[int]trendEntry
	cycle       uint64
	staleCycles int
}

// NewTrendState returns an empty state. Negative staleCycles evict entries
// as soon as they miss a cycle.
func NewTrendState(staleCycles int) *TrendState {
	if staleCycles < 0 {
		staleCycles = 0
	}
	return &TrendState{
		entries:     make(map[int]trendEntry),
		staleCycles: staleCycles,
	}
}

// Observe folds one enumeration into the state and returns a record per
// sample, in input order.
func (s *TrendState) Observe(samples []model.ProcessSample) []model.DisplayRecord {
	s.cycle++
	records := make([]model.DisplayRecord, 0, len(samples))

	for _, p := range samples {
		prev, seen := s.entries[p.PID]
		// A changed start time or a counter that went backwards means the
		// PID now belongs to a different process.
		fresh := !seen || prev.startTicks != p.StartTicks || p.Ticks < prev.ticks

		previous := FirstObservationBaseline
		previousDelta := 0.0
		if !fresh {
			previous = prev.ticks
			previousDelta = prev.delta
		}

		cpuDelta := float64(delta.Ticks(previous, p.Ticks))
		trend := model.TrendSteady
		if !fresh {
			trend = Direction(previousDelta, cpuDelta)
		}

		s.entries[p.PID] = trendEntry{
			ticks:      p.Ticks,
			startTicks: p.StartTicks,
			delta:      cpuDelta,
			lastSeen:   s.cycle,
		}

		records = append(records, model.DisplayRecord{
			PID:           p.PID,
			Name:          p.Name,
			CPUDelta:      cpuDelta,
			PreviousTicks: previous,
			PreviousDelta: previousDelta,
			Trend:         trend,
			MemoryMB:      p.MemoryMB,
		})
	}

	return records
}

// Sweep evicts entries that have not been observed for more than the
// configured number of cycles and returns how many were removed.
func (s *TrendState) Sweep() int {
	evicted := 0
	for pid, e := range s.entries {
		if s.cycle-e.lastSeen > uint64(s.staleCycles) {
			delete(s.entries, pid)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of tracked processes.
func (s *TrendState) Len() int {
	return len(s.entries)
}

// Previous returns the last observed ticks for pid.
func (s *TrendState) Previous(pid int) (uint64, bool) {
	e, ok := s.entries[pid]
	return e.ticks, ok
}

// Direction compares this cycle's delta with the previous one.
func Direction(previous, current float64) model.Trend {
	switch {
	case current > previous+TrendEpsilon:
		return model.TrendRising
	case current < previous-TrendEpsilon:
		return model.TrendFalling
	default:
		return model.TrendSteady
	}
}
