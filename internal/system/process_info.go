package system

import (
	"context"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/rusenback/sysmon/internal/delta"
	"github.com/rusenback/sysmon/internal/model"
)

// processInfo is the part of *process.Process the gopsutil source reads
type processInfo interface {
	NameWithContext(ctx context.Context) (string, error)
	TimesWithContext(ctx context.Context) (*cpu.TimesStat, error)
	MemoryInfoWithContext(ctx context.Context) (*process.MemoryInfoStat, error)
	CreateTimeWithContext(ctx context.Context) (int64, error)
}

var _ processInfo = (*process.Process)(nil)

// sampleProcess reads one process through gopsutil. Any failed read skips
// the process; without a start time a reused PID would look like the same
// process.
func sampleProcess(ctx context.Context, pid int32, p processInfo) (model.ProcessSample, error) {
	name, err := p.NameWithContext(ctx)
	if err != nil {
		return model.ProcessSample{}, err
	}
	times, err := p.TimesWithContext(ctx)
	if err != nil {
		return model.ProcessSample{}, err
	}
	mi, err := p.MemoryInfoWithContext(ctx)
	if err != nil {
		return model.ProcessSample{}, err
	}
	created, err := p.CreateTimeWithContext(ctx)
	if err != nil {
		return model.ProcessSample{}, err
	}
	return model.ProcessSample{
		PID:        int(pid),
		Name:       normalizeName(name),
		Ticks:      secondsToTicks(times.User) + secondsToTicks(times.System),
		StartTicks: uint64(created),
		MemoryMB:   delta.KBToMB(mi.RSS / 1024),
	}, nil
}
