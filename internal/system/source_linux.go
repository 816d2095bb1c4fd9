//go:build linux

package system

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/procfs"
	"github.com/rusenback/sysmon/internal/delta"
	apperrors "github.com/rusenback/sysmon/internal/errors"
	"github.com/rusenback/sysmon/internal/logging"
	"github.com/rusenback/sysmon/internal/model"
)

// procReadFile is a test seam for files procfs does not parse.
var procReadFile = os.ReadFile

// ProcSource reads counters from a procfs mount.
type ProcSource struct {
	fs   procfs.FS
	root string
	log  logging.Logger
}

// NewSource opens the procfs mount named in cfg.
func NewSource(cfg Config, log logging.Logger) (*ProcSource, error) {
	if cfg.ProcRoot == "" {
		cfg.ProcRoot = procfs.DefaultMountPoint
	}
	fs, err := procfs.NewFS(cfg.ProcRoot)
	if err != nil {
		return nil, apperrors.NewSourceUnavailable("procfs", err)
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &ProcSource{fs: fs, root: cfg.ProcRoot, log: log}, nil
}

// CPUCounters reads the aggregate cpu line of /proc/stat.
func (s *ProcSource) CPUCounters(ctx context.Context) (model.CPUCounters, error) {
	if err := ctx.Err(); err != nil {
		return model.CPUCounters{}, err
	}
	stat, err := s.fs.Stat()
	if err != nil {
		return model.CPUCounters{}, apperrors.NewSourceUnavailable("stat", err)
	}
	c := stat.CPUTotal
	return model.CPUCounters{
		User:    secondsToTicks(c.User),
		Nice:    secondsToTicks(c.Nice),
		System:  secondsToTicks(c.System),
		Idle:    secondsToTicks(c.Idle),
		IOWait:  secondsToTicks(c.Iowait),
		IRQ:     secondsToTicks(c.IRQ),
		SoftIRQ: secondsToTicks(c.SoftIRQ),
		Steal:   secondsToTicks(c.Steal),
	}, nil
}

// MemoryCounters reads MemTotal and MemFree from /proc/meminfo.
func (s *ProcSource) MemoryCounters(ctx context.Context) (model.MemoryCounters, error) {
	if err := ctx.Err(); err != nil {
		return model.MemoryCounters{}, err
	}
	mi, err := s.fs.Meminfo()
	if err != nil {
		return model.MemoryCounters{}, apperrors.NewSourceUnavailable("meminfo", err)
	}
	if mi.MemTotal == nil || mi.MemFree == nil {
		return model.MemoryCounters{}, apperrors.NewSourceUnavailable("meminfo", errors.New("MemTotal or MemFree missing"))
	}
	return model.MemoryCounters{TotalKB: *mi.MemTotal, FreeKB: *mi.MemFree}, nil
}

// Uptime reads /proc/uptime.
func (s *ProcSource) Uptime(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	data, err := procReadFile(filepath.Join(s.root, "uptime"))
	if err != nil {
		return 0, apperrors.NewSourceUnavailable("uptime", err)
	}
	d, err := parseUptime(data)
	if err != nil {
		return 0, apperrors.NewSourceUnavailable("uptime", err)
	}
	return d, nil
}

// Processes lists every numeric entry under the mount. Processes that exit
// or deny access between listing and reading are skipped.
func (s *ProcSource) Processes(ctx context.Context) ([]model.ProcessSample, error) {
	procs, err := s.fs.AllProcs()
	if err != nil {
		return nil, apperrors.NewSourceUnavailable("process registry", err)
	}

	samples := make([]model.ProcessSample, 0, len(procs))
	skipped := 0
	for _, p := range procs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sample, err := readProcess(p)
		if err != nil {
			skipped++
			continue
		}
		samples = append(samples, sample)
	}
	if skipped > 0 {
		s.log.Debug("skipped unreadable processes", logging.Int("skipped", skipped), logging.Int("listed", len(procs)))
	}
	return samples, nil
}

func readProcess(p procfs.Proc) (model.ProcessSample, error) {
	stat, err := p.Stat()
	if err != nil {
		return model.ProcessSample{}, err
	}
	status, err := p.NewStatus()
	if err != nil {
		return model.ProcessSample{}, err
	}

	sample := model.ProcessSample{
		PID:        p.PID,
		Name:       normalizeName(stat.Comm),
		Ticks:      uint64(stat.UTime) + uint64(stat.STime),
		StartTicks: stat.Starttime,
		// VmRSS is reported in bytes by procfs
		MemoryMB: delta.KBToMB(status.VmRSS / 1024),
	}

	// Missing cgroup info only loses the container column
	if cgroups, err := p.Cgroups(); err == nil {
		paths := make([]string, 0, len(cgroups))
		for _, cg := range cgroups {
			paths = append(paths, cg.Path)
		}
		sample.ContainerID = ContainerIDFromCgroups(paths)
	}
	return sample, nil
}
