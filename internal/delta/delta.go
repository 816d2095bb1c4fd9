// Package delta turns cumulative counters into utilization figures. Every
// function here is pure.
package delta

import "github.com/rusenback/sysmon/internal/model"

// Health index weights. Memory pressure counts for more than CPU load.
const (
	HealthCPUWeight    = 0.4
	HealthMemoryWeight = 0.6
)

// CPUUtilizationPercent returns busy time between two snapshots as a
// percentage. Idle includes iowait. A non-positive total delta (counter
// anomaly or zero-length window) yields 0.
func CPUUtilizationPercent(before, after model.CPUCounters) float64 {
	totalDelta := float64(after.Total()) - float64(before.Total())
	if totalDelta <= 0 {
		return 0
	}
	idleDelta := float64(after.IdleTotal()) - float64(before.IdleTotal())
	return clamp((1-idleDelta/totalDelta)*100, 0, 100)
}

// MemoryUtilizationPercent returns used memory as a percentage of total.
// A zero total yields 0.
func MemoryUtilizationPercent(m model.MemoryCounters) float64 {
	if m.TotalKB == 0 {
		return 0
	}
	used := float64(m.TotalKB) - float64(m.FreeKB)
	return clamp(100*used/float64(m.TotalKB), 0, 100)
}

// Health returns clamp(100 - (cpu*0.4 + mem*0.6), 0, 100).
func Health(cpuPercent, memPercent float64) float64 {
	return clamp(100-(cpuPercent*HealthCPUWeight+memPercent*HealthMemoryWeight), 0, 100)
}

// Ticks returns current minus previous, or current itself when the counter
// went backwards. A backwards counter means the PID now names a different
// process, so the previous value is not a valid baseline.
func Ticks(previous, current uint64) uint64 {
	if current < previous {
		return current
	}
	return current - previous
}

// KBToMB converts kilobytes to megabytes.
func KBToMB(kb uint64) float64 {
	return float64(kb) / 1024
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
