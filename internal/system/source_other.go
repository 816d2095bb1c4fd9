//go:build !linux

package system

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/rusenback/sysmon/internal/errors"
	"github.com/rusenback/sysmon/internal/logging"
	"github.com/rusenback/sysmon/internal/model"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// ProcSource reads counters through gopsutil on platforms without procfs.
type ProcSource struct {
	log logging.Logger
}

// NewSource returns the gopsutil backed source. cfg.ProcRoot is ignored.
func NewSource(cfg Config, log logging.Logger) (*ProcSource, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &ProcSource{log: log}, nil
}

func (s *ProcSource) CPUCounters(ctx context.Context) (model.CPUCounters, error) {
	times, err := cpu.TimesWithContext(ctx, false)
	if err != nil {
		return model.CPUCounters{}, apperrors.NewSourceUnavailable("cpu", err)
	}
	if len(times) == 0 {
		return model.CPUCounters{}, apperrors.NewSourceUnavailable("cpu", errors.New("no cpu times reported"))
	}
	t := times[0]
	return model.CPUCounters{
		User:    secondsToTicks(t.User),
		Nice:    secondsToTicks(t.Nice),
		System:  secondsToTicks(t.System),
		Idle:    secondsToTicks(t.Idle),
		IOWait:  secondsToTicks(t.Iowait),
		IRQ:     secondsToTicks(t.Irq),
		SoftIRQ: secondsToTicks(t.Softirq),
		Steal:   secondsToTicks(t.Steal),
	}, nil
}

func (s *ProcSource) MemoryCounters(ctx context.Context) (model.MemoryCounters, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return model.MemoryCounters{}, apperrors.NewSourceUnavailable("memory", err)
	}
	return model.MemoryCounters{TotalKB: vm.Total / 1024, FreeKB: vm.Free / 1024}, nil
}

func (s *ProcSource) Uptime(ctx context.Context) (time.Duration, error) {
	secs, err := host.UptimeWithContext(ctx)
	if err != nil {
		return 0, apperrors.NewSourceUnavailable("uptime", err)
	}
	return time.Duration(secs) * time.Second, nil
}

func (s *ProcSource) Processes(ctx context.Context) ([]model.ProcessSample, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, apperrors.NewSourceUnavailable("process registry", err)
	}
	samples := make([]model.ProcessSample, 0, len(procs))
	for _, p := range procs {
		sample, err := sampleProcess(ctx, p.Pid, p)
		if err != nil {
			s.log.Debug("skipping unreadable process", logging.Int("pid", int(p.Pid)), logging.Err(err))
			continue
		}
		samples = append(samples, sample)
	}
	return samples, nil
}
