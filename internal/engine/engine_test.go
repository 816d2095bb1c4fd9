package engine

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	apperrors "github.com/rusenback/sysmon/internal/errors"
	"github.com/rusenback/sysmon/internal/model"
	"github.com/rusenback/sysmon/internal/system/mocks"
)

var (
	cpuBefore = model.CPUCounters{User: 150, System: 50, Idle: 700, IOWait: 100} // total 1000, idle 800
	cpuAfter  = model.CPUCounters{User: 350, System: 150, Idle: 850, IOWait: 150} // total 1500, idle 1000
	memory    = model.MemoryCounters{TotalKB: 8000000, FreeKB: 2000000}
)

type recordingObserver struct {
	cycles   []model.Cycle
	failures []error
}

func (r *recordingObserver) ObserveCycle(c model.Cycle) { r.cycles = append(r.cycles, c) }
func (r *recordingObserver) ObserveFailure(err error)   { r.failures = append(r.failures, err) }

type fakeResolver struct {
	containers []model.Container
	err        error
	calls      int
}

func (f *fakeResolver) RunningContainers(context.Context) ([]model.Container, error) {
	f.calls++
	return f.containers, f.err
}

func newTestSampler(src *mocks.MockSource, opts Options) (*Sampler, *[]time.Duration) {
	s := New(src, opts)
	var slept []time.Duration
	s.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	s.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	return s, &slept
}

func expectHealthyCounters(src *mocks.MockSource) {
	gomock.InOrder(
		src.EXPECT().CPUCounters(gomock.Any()).Return(cpuBefore, nil),
		src.EXPECT().CPUCounters(gomock.Any()).Return(cpuAfter, nil),
	)
	src.EXPECT().MemoryCounters(gomock.Any()).Return(memory, nil)
	src.EXPECT().Uptime(gomock.Any()).Return(90*time.Minute, nil)
}

func TestSampler_EndToEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockSource(ctrl)
	obs := &recordingObserver{}

	expectHealthyCounters(src)
	src.EXPECT().Processes(gomock.Any()).Return([]model.ProcessSample{
		{PID: 1, Name: "init", Ticks: 500},
		{PID: 2, Name: "worker", Ticks: 80, MemoryMB: 12.5},
	}, nil)

	s, slept := newTestSampler(src, Options{Observer: obs})
	cycle, err := s.Sample(context.Background())
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}

	h := cycle.Health
	if math.Abs(h.CPUPercent-60) > 1e-9 {
		t.Errorf("CPUPercent = %v, want 60", h.CPUPercent)
	}
	if math.Abs(h.MemoryPercent-75) > 1e-9 {
		t.Errorf("MemoryPercent = %v, want 75", h.MemoryPercent)
	}
	if math.Abs(h.Health-31) > 1e-9 {
		t.Errorf("Health = %v, want 31", h.Health)
	}
	if h.UptimeHours != 1.5 {
		t.Errorf("UptimeHours = %v, want 1.5", h.UptimeHours)
	}
	if len(*slept) != 1 || (*slept)[0] != DefaultSampleWindow {
		t.Errorf("slept %v, want one %v window", *slept, DefaultSampleWindow)
	}

	if len(cycle.Records) != 2 || cycle.Records[1].CPUDelta != 80 || cycle.Records[1].MemoryMB != 12.5 {
		t.Errorf("records = %+v", cycle.Records)
	}
	if cycle.Tracked != 2 {
		t.Errorf("Tracked = %d, want 2", cycle.Tracked)
	}
	if len(obs.cycles) != 1 || len(obs.failures) != 0 {
		t.Errorf("observer saw %d cycles and %d failures", len(obs.cycles), len(obs.failures))
	}
}

func TestSampler_TwoCycles(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockSource(ctrl)

	src.EXPECT().CPUCounters(gomock.Any()).Return(cpuBefore, nil).Times(4)
	src.EXPECT().MemoryCounters(gomock.Any()).Return(memory, nil).Times(2)
	src.EXPECT().Uptime(gomock.Any()).Return(time.Hour, nil).Times(2)
	gomock.InOrder(
		src.EXPECT().Processes(gomock.Any()).Return([]model.ProcessSample{{PID: 42, Ticks: 1000}, {PID: 43, Ticks: 5}}, nil),
		src.EXPECT().Processes(gomock.Any()).Return([]model.ProcessSample{{PID: 42, Ticks: 1300}}, nil),
	)

	s, _ := newTestSampler(src, Options{StaleCycles: -1})
	if _, err := s.Sample(context.Background()); err != nil {
		t.Fatalf("first Sample() error = %v", err)
	}
	cycle, err := s.Sample(context.Background())
	if err != nil {
		t.Fatalf("second Sample() error = %v", err)
	}

	if len(cycle.Records) != 1 {
		t.Fatalf("vanished process should be absent, records = %+v", cycle.Records)
	}
	r := cycle.Records[0]
	if r.CPUDelta != 300 || r.PreviousTicks != 1000 {
		t.Errorf("record = %+v, want delta 300 from 1000", r)
	}
	if r.Trend != model.TrendFalling {
		t.Errorf("trend = %v, want falling (300 < 1000)", r.Trend)
	}
	if cycle.Health.CPUPercent != 0 {
		t.Errorf("identical snapshots should yield 0%%, got %v", cycle.Health.CPUPercent)
	}
	if cycle.Evicted != 1 || s.Tracked() != 1 {
		t.Errorf("Evicted = %d, Tracked = %d; want 1, 1", cycle.Evicted, s.Tracked())
	}
}

func TestSampler_SourceFailures(t *testing.T) {
	readErr := errors.New("permission denied")

	tests := []struct {
		name   string
		expect func(src *mocks.MockSource)
	}{
		{
			name: "cpu unreadable",
			expect: func(src *mocks.MockSource) {
				src.EXPECT().CPUCounters(gomock.Any()).Return(model.CPUCounters{}, readErr)
			},
		},
		{
			name: "memory unreadable",
			expect: func(src *mocks.MockSource) {
				src.EXPECT().CPUCounters(gomock.Any()).Return(cpuBefore, nil).Times(2)
				src.EXPECT().MemoryCounters(gomock.Any()).Return(model.MemoryCounters{}, readErr)
			},
		},
		{
			name: "uptime unreadable",
			expect: func(src *mocks.MockSource) {
				src.EXPECT().CPUCounters(gomock.Any()).Return(cpuBefore, nil).Times(2)
				src.EXPECT().MemoryCounters(gomock.Any()).Return(memory, nil)
				src.EXPECT().Uptime(gomock.Any()).Return(time.Duration(0), readErr)
			},
		},
		{
			name: "process registry unreadable",
			expect: func(src *mocks.MockSource) {
				expectHealthyCounters(src)
				src.EXPECT().Processes(gomock.Any()).Return(nil, readErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			src := mocks.NewMockSource(ctrl)
			tt.expect(src)
			obs := &recordingObserver{}

			s, _ := newTestSampler(src, Options{Observer: obs})
			_, err := s.Sample(context.Background())
			if !apperrors.IsSourceUnavailable(err) {
				t.Fatalf("Sample() error = %v, want SourceUnavailable", err)
			}
			if !errors.Is(err, readErr) {
				t.Errorf("error should wrap the read failure, got %v", err)
			}
			if s.Tracked() != 0 {
				t.Errorf("failed cycle must not touch trend state, Tracked = %d", s.Tracked())
			}
			if len(obs.failures) != 1 || len(obs.cycles) != 0 {
				t.Errorf("observer saw %d cycles and %d failures", len(obs.cycles), len(obs.failures))
			}
		})
	}
}

func TestSampler_CanceledDuringWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockSource(ctrl)
	src.EXPECT().CPUCounters(gomock.Any()).Return(cpuBefore, nil)

	s := New(src, Options{SampleWindow: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Sample(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Sample() error = %v, want context.Canceled", err)
	}
	if apperrors.IsSourceUnavailable(err) {
		t.Error("cancellation should not be reported as SourceUnavailable")
	}
}

func TestSampler_ContainerAttribution(t *testing.T) {
	const id = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	const unknown = "ffffffffffffeeeeeeeeeeeeddddddddddddccccccccccccbbbbbbbbbbbbaaaa"

	ctrl := gomock.NewController(t)
	src := mocks.NewMockSource(ctrl)
	src.EXPECT().CPUCounters(gomock.Any()).Return(cpuBefore, nil).AnyTimes()
	src.EXPECT().MemoryCounters(gomock.Any()).Return(memory, nil).AnyTimes()
	src.EXPECT().Uptime(gomock.Any()).Return(time.Hour, nil).AnyTimes()
	src.EXPECT().Processes(gomock.Any()).Return([]model.ProcessSample{
		{PID: 1, Ticks: 1},
		{PID: 2, Ticks: 2, ContainerID: id},
		{PID: 3, Ticks: 3, ContainerID: unknown},
	}, nil).AnyTimes()

	resolver := &fakeResolver{containers: []model.Container{{ID: id, Name: "web"}}}
	s, _ := newTestSampler(src, Options{Containers: resolver})

	cycle, err := s.Sample(context.Background())
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	if got := cycle.Records[0].Container; got != "" {
		t.Errorf("host process container = %q, want empty", got)
	}
	if got := cycle.Records[1].Container; got != "web" {
		t.Errorf("container = %q, want web", got)
	}
	if got := cycle.Records[2].Container; got != "ffffffffffff" {
		t.Errorf("unresolved container = %q, want short ID", got)
	}

	resolver.err = errors.New("daemon gone")
	cycle, err = s.Sample(context.Background())
	if err != nil {
		t.Fatalf("attribution failure must not fail the cycle: %v", err)
	}
	if got := cycle.Records[1].Container; got != "web" {
		t.Errorf("container after lookup failure = %q, want cached web", got)
	}
	if resolver.calls != 2 {
		t.Errorf("resolver calls = %d, want 2", resolver.calls)
	}
}

func TestSleepContext(t *testing.T) {
	t.Parallel()
	if err := sleepContext(context.Background(), time.Millisecond); err != nil {
		t.Errorf("sleepContext() = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleepContext(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("sleepContext() on canceled ctx = %v", err)
	}
}

func TestHealthBetween(t *testing.T) {
	t.Parallel()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	before := model.SystemCounterSnapshot{
		CPU:       cpuBefore,
		Memory:    model.MemoryCounters{TotalKB: 100, FreeKB: 100},
		Timestamp: start,
	}
	after := model.SystemCounterSnapshot{
		CPU:       cpuAfter,
		Memory:    memory,
		Timestamp: start.Add(DefaultSampleWindow),
	}

	h := healthBetween(before, after, 2*time.Hour)
	if math.Abs(h.CPUPercent-60) > 1e-9 || math.Abs(h.MemoryPercent-75) > 1e-9 {
		t.Errorf("utilization = %v/%v, want 60/75", h.CPUPercent, h.MemoryPercent)
	}
	if math.Abs(h.Health-31) > 1e-9 {
		t.Errorf("Health = %v, want 31", h.Health)
	}
	if h.UptimeHours != 2 {
		t.Errorf("UptimeHours = %v, want 2", h.UptimeHours)
	}
	if !h.SampledAt.Equal(after.Timestamp) {
		t.Errorf("SampledAt = %v, want the later snapshot's %v", h.SampledAt, after.Timestamp)
	}
}
