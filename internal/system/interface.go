// internal/system/interface.go
package system

//go:generate mockgen -source=interface.go -destination=mocks/mock_system.go -package=mocks

import (
	"context"
	"time"

	"github.com/rusenback/sysmon/internal/model"
)

// Source reads OS counters and the process registry. Each call is a single
// synchronous read with no retries.
type Source interface {
	CPUCounters(ctx context.Context) (model.CPUCounters, error)
	MemoryCounters(ctx context.Context) (model.MemoryCounters, error)
	Uptime(ctx context.Context) (time.Duration, error)
	Processes(ctx context.Context) ([]model.ProcessSample, error)
}

// Terminator asks the OS to stop a process gracefully.
type Terminator interface {
	Terminate(pid int) error
}

var (
	_ Source     = (*ProcSource)(nil)
	_ Terminator = SignalTerminator{}
)
