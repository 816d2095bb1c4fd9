package model

// Trend is the direction of a process's CPU delta compared with the previous cycle.
type Trend int

const (
	TrendSteady Trend = iota
	TrendRising
	TrendFalling
)

// String returns the name used in logs and reports.
func (t Trend) String() string {
	switch t {
	case TrendRising:
		return "rising"
	case TrendFalling:
		return "falling"
	default:
		return "steady"
	}
}

// Glyph returns the arrow shown in the process table.
func (t Trend) Glyph() string {
	switch t {
	case TrendRising:
		return "↑"
	case TrendFalling:
		return "↓"
	default:
		return "→"
	}
}

// ProcessSample is one process as read from the process registry
type ProcessSample struct {
	PID         int
	Name        string
	Ticks       uint64 // utime + stime
	StartTicks  uint64 // start time since boot, used to detect PID reuse
	MemoryMB    float64
	ContainerID string // empty when the process is not in a container cgroup
}

// DisplayRecord is a process as shown for one cycle
type DisplayRecord struct {
	PID           int
	Name          string
	CPUDelta      float64
	PreviousTicks uint64
	PreviousDelta float64
	Trend         Trend
	MemoryMB      float64
	Container     string
}

// SortMode selects the ranking of the process table
type SortMode int

const (
	SortByCPU SortMode = iota
	SortByMemory
)

func (m SortMode) String() string {
	if m == SortByMemory {
		return "mem"
	}
	return "cpu"
}
