// Package engine runs one sampling cycle: system-wide utilization over a
// short window, then a process enumeration folded into the trend state.
package engine

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rusenback/sysmon/internal/delta"
	apperrors "github.com/rusenback/sysmon/internal/errors"
	"github.com/rusenback/sysmon/internal/logging"
	"github.com/rusenback/sysmon/internal/model"
	"github.com/rusenback/sysmon/internal/system"
)

// DefaultSampleWindow separates the two CPU counter snapshots.
const DefaultSampleWindow = 500 * time.Millisecond

const tracerName = "github.com/rusenback/sysmon/internal/engine"

// Observer receives the outcome of every cycle.
type Observer interface {
	ObserveCycle(cycle model.Cycle)
	ObserveFailure(err error)
}

// ContainerResolver lists running containers for process attribution.
type ContainerResolver interface {
	RunningContainers(ctx context.Context) ([]model.Container, error)
}

// Options configures a Sampler. Zero values select the defaults.
type Options struct {
	SampleWindow time.Duration
	StaleCycles  int
	Logger       logging.Logger
	Observer     Observer
	Containers   ContainerResolver
}

// Sampler owns the trend state and produces one Cycle per call.
type Sampler struct {
	source     system.Source
	state      *TrendState
	window     time.Duration
	log        logging.Logger
	observer   Observer
	containers ContainerResolver
	names      map[string]string
	tracer     trace.Tracer

	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

// New creates a Sampler reading from source.
func New(source system.Source, opts Options) *Sampler {
	if opts.SampleWindow <= 0 {
		opts.SampleWindow = DefaultSampleWindow
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNopLogger()
	}
	return &Sampler{
		source:     source,
		state:      NewTrendState(opts.StaleCycles),
		window:     opts.SampleWindow,
		log:        opts.Logger,
		observer:   opts.Observer,
		containers: opts.Containers,
		names:      make(map[string]string),
		tracer:     otel.Tracer(tracerName),
		sleep:      sleepContext,
		now:        time.Now,
	}
}

// Tracked returns the number of processes held in the trend state.
func (s *Sampler) Tracked() int {
	return s.state.Len()
}

// Sample runs one cycle. A failed system-wide read fails the cycle with a
// SourceUnavailableError and leaves the trend state untouched.
func (s *Sampler) Sample(ctx context.Context) (model.Cycle, error) {
	ctx, span := s.tracer.Start(ctx, "engine.Sample")
	defer span.End()

	cycle, err := s.sample(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if !apperrors.IsContextError(err) {
			s.log.Error("sampling cycle failed", err)
		}
		if s.observer != nil {
			s.observer.ObserveFailure(err)
		}
		return model.Cycle{}, err
	}

	span.SetAttributes(
		attribute.Float64("sysmon.cpu_percent", cycle.Health.CPUPercent),
		attribute.Float64("sysmon.memory_percent", cycle.Health.MemoryPercent),
		attribute.Float64("sysmon.health", cycle.Health.Health),
		attribute.Int("sysmon.processes", len(cycle.Records)),
		attribute.Int("sysmon.evicted", cycle.Evicted),
	)
	if cycle.Evicted > 0 {
		s.log.Debug("evicted stale trend entries",
			logging.Int("evicted", cycle.Evicted), logging.Int("tracked", cycle.Tracked))
	}
	if s.observer != nil {
		s.observer.ObserveCycle(cycle)
	}
	return cycle, nil
}

func (s *Sampler) sample(ctx context.Context) (model.Cycle, error) {
	health, err := s.sampleHealth(ctx)
	if err != nil {
		return model.Cycle{}, err
	}

	samples, err := s.source.Processes(ctx)
	if err != nil {
		return model.Cycle{}, sourceError("process registry", err)
	}

	records := s.state.Observe(samples)
	evicted := s.state.Sweep()
	s.attribute(ctx, samples, records)

	return model.Cycle{
		Health:  health,
		Records: records,
		Tracked: s.state.Len(),
		Evicted: evicted,
	}, nil
}

func (s *Sampler) sampleHealth(ctx context.Context) (model.HealthSnapshot, error) {
	cpuBefore, err := s.source.CPUCounters(ctx)
	if err != nil {
		return model.HealthSnapshot{}, sourceError("cpu", err)
	}
	before := model.SystemCounterSnapshot{CPU: cpuBefore, Timestamp: s.now()}

	if err := s.sleep(ctx, s.window); err != nil {
		return model.HealthSnapshot{}, err
	}

	after, err := s.readSnapshot(ctx)
	if err != nil {
		return model.HealthSnapshot{}, err
	}
	uptime, err := s.source.Uptime(ctx)
	if err != nil {
		return model.HealthSnapshot{}, sourceError("uptime", err)
	}
	return healthBetween(before, after, uptime), nil
}

// readSnapshot reads CPU and memory counters as one instant
func (s *Sampler) readSnapshot(ctx context.Context) (model.SystemCounterSnapshot, error) {
	cpu, err := s.source.CPUCounters(ctx)
	if err != nil {
		return model.SystemCounterSnapshot{}, sourceError("cpu", err)
	}
	mem, err := s.source.MemoryCounters(ctx)
	if err != nil {
		return model.SystemCounterSnapshot{}, sourceError("memory", err)
	}
	return model.SystemCounterSnapshot{CPU: cpu, Memory: mem, Timestamp: s.now()}, nil
}

// healthBetween derives utilization from two snapshots. Memory is taken
// from the later one.
func healthBetween(before, after model.SystemCounterSnapshot, uptime time.Duration) model.HealthSnapshot {
	cpuPct := delta.CPUUtilizationPercent(before.CPU, after.CPU)
	memPct := delta.MemoryUtilizationPercent(after.Memory)
	return model.HealthSnapshot{
		CPUPercent:    cpuPct,
		MemoryPercent: memPct,
		UptimeHours:   uptime.Hours(),
		Health:        delta.Health(cpuPct, memPct),
		SampledAt:     after.Timestamp,
	}
}

// attribute fills DisplayRecord.Container. records and samples are parallel.
// The container list is only fetched when an ID is not yet known.
func (s *Sampler) attribute(ctx context.Context, samples []model.ProcessSample, records []model.DisplayRecord) {
	if s.containers == nil {
		return
	}

	missing := false
	for _, p := range samples {
		if p.ContainerID == "" {
			continue
		}
		if _, ok := s.names[p.ContainerID]; !ok {
			missing = true
			break
		}
	}

	if missing {
		list, err := s.containers.RunningContainers(ctx)
		if err != nil {
			s.log.Debug("container lookup failed", logging.Err(err))
		} else {
			names := make(map[string]string, len(list))
			for _, c := range list {
				names[c.ID] = c.Name
			}
			s.names = names
		}
	}

	for i, p := range samples {
		if p.ContainerID == "" {
			continue
		}
		name, ok := s.names[p.ContainerID]
		if !ok {
			name = model.Container{ID: p.ContainerID}.ShortID()
		}
		records[i].Container = name
	}
}

// sourceError makes sure every system-wide read failure carries the
// SourceUnavailable classification.
func sourceError(source string, err error) error {
	if apperrors.IsContextError(err) || apperrors.IsSourceUnavailable(err) {
		return err
	}
	return apperrors.NewSourceUnavailable(source, err)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
