// internal/model/stats.go
package model

import "time"

// CPUCounters holds the cumulative system-wide CPU time buckets in clock ticks.
type CPUCounters struct {
	User    uint64
	Nice    uint64
	System  uint64
	Idle    uint64
	IOWait  uint64
	IRQ     uint64
	SoftIRQ uint64
	Steal   uint64
}

// Total returns the sum of all buckets.
func (c CPUCounters) Total() uint64 {
	return c.User + c.Nice + c.System + c.Idle + c.IOWait + c.IRQ + c.SoftIRQ + c.Steal
}

// IdleTotal returns idle time including iowait.
func (c CPUCounters) IdleTotal() uint64 {
	return c.Idle + c.IOWait
}

// MemoryCounters holds total and free memory in kilobytes.
type MemoryCounters struct {
	TotalKB uint64
	FreeKB  uint64
}

// SystemCounterSnapshot is a reading of all system-wide counters at one instant.
type SystemCounterSnapshot struct {
	CPU       CPUCounters
	Memory    MemoryCounters
	Timestamp time.Time
}

// HealthSnapshot is the system-wide part of one sampling cycle.
type HealthSnapshot struct {
	CPUPercent    float64
	MemoryPercent float64
	UptimeHours   float64
	Health        float64
	SampledAt     time.Time
}

// Cycle is everything one sampling cycle produces.
type Cycle struct {
	Health  HealthSnapshot
	Records []DisplayRecord
	Tracked int // entries held in the trend state after the sweep
	Evicted int
}
