package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/rusenback/sysmon/internal/config"
	"github.com/rusenback/sysmon/internal/model"
	"github.com/rusenback/sysmon/internal/tui"
)

type plainOptions struct {
	Host    string
	Sort    model.SortMode
	TopN    int
	Refresh time.Duration
}

// runPlain prints a frame, then waits a full refresh before the next cycle,
// until ctx is done. It is used when stdout is not a terminal, so there is
// no operator input.
func runPlain(ctx context.Context, sampler tui.Sampler, opts plainOptions, w io.Writer) error {
	timer := time.NewTimer(opts.Refresh)
	defer timer.Stop()

	for {
		cycle, err := sampler.Sample(ctx)
		if ctx.Err() != nil {
			return nil
		}
		d := tui.Dashboard{Host: opts.Host, Err: err, Sort: opts.Sort, TopN: opts.TopN}
		if err == nil {
			d.Cycle = &cycle
		}
		if _, werr := fmt.Fprintln(w, tui.RenderDashboard(d, tui.PlainStyles())); werr != nil {
			return werr
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(opts.Refresh)

		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
	}
}

type onceOptions struct {
	Host   string
	Sort   model.SortMode
	TopN   int
	Format string
}

type report struct {
	Host          string          `yaml:"host,omitempty"`
	SampledAt     time.Time       `yaml:"sampled_at"`
	CPUPercent    float64         `yaml:"cpu_percent"`
	MemoryPercent float64         `yaml:"memory_percent"`
	UptimeHours   float64         `yaml:"uptime_hours"`
	Health        float64         `yaml:"health_index"`
	Sort          string          `yaml:"sort"`
	Processes     []reportProcess `yaml:"processes"`
}

type reportProcess struct {
	PID       int     `yaml:"pid"`
	Name      string  `yaml:"name"`
	CPUDelta  float64 `yaml:"cpu_delta"`
	Trend     string  `yaml:"trend"`
	MemoryMB  float64 `yaml:"memory_mb"`
	Container string  `yaml:"container,omitempty"`
}

func newReport(cycle model.Cycle, opts onceOptions) report {
	r := report{
		Host:          opts.Host,
		SampledAt:     cycle.Health.SampledAt,
		CPUPercent:    cycle.Health.CPUPercent,
		MemoryPercent: cycle.Health.MemoryPercent,
		UptimeHours:   cycle.Health.UptimeHours,
		Health:        cycle.Health.Health,
		Sort:          opts.Sort.String(),
		Processes:     []reportProcess{},
	}
	for _, rec := range tui.RankRecords(cycle.Records, opts.Sort, opts.TopN) {
		r.Processes = append(r.Processes, reportProcess{
			PID:       rec.PID,
			Name:      rec.Name,
			CPUDelta:  rec.CPUDelta,
			Trend:     rec.Trend.String(),
			MemoryMB:  rec.MemoryMB,
			Container: rec.Container,
		})
	}
	return r
}

// runOnce samples a single cycle and prints it as text or YAML
func runOnce(ctx context.Context, sampler tui.Sampler, opts onceOptions, w io.Writer) error {
	var sp *spinner.Spinner
	if term.IsTerminal(int(os.Stderr.Fd())) {
		sp = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		sp.Suffix = " sampling..."
		sp.Start()
	}
	cycle, err := sampler.Sample(ctx)
	if sp != nil {
		sp.Stop()
	}
	if err != nil {
		return err
	}

	if opts.Format == config.FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newReport(cycle, opts)); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		return enc.Close()
	}

	_, err = fmt.Fprintln(w, tui.RenderDashboard(tui.Dashboard{
		Host:  opts.Host,
		Cycle: &cycle,
		Sort:  opts.Sort,
		TopN:  opts.TopN,
	}, tui.PlainStyles()))
	return err
}
