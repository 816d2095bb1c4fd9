// Package metrics exposes the latest health snapshot and loop counters in
// Prometheus text format.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rusenback/sysmon/internal/logging"
	"github.com/rusenback/sysmon/internal/model"
)

const namespace = "sysmon"

const shutdownTimeout = 5 * time.Second

// Recorder collects metrics on a private registry. It satisfies
// engine.Observer and tui.TerminationObserver.
type Recorder struct {
	registry *prometheus.Registry

	cpu      prometheus.Gauge
	memory   prometheus.Gauge
	health   prometheus.Gauge
	uptime   prometheus.Gauge
	tracked  prometheus.Gauge
	cycles   prometheus.Counter
	failures prometheus.Counter
	kills    *prometheus.CounterVec
}

// NewRecorder registers every collector on a fresh registry
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		cpu: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "cpu_utilization_percent",
			Help: "CPU utilization over the last sampling window.",
		}),
		memory: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "memory_utilization_percent",
			Help: "Share of physical memory not reported free.",
		}),
		health: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "health_index",
			Help: "Weighted health index between 0 and 100.",
		}),
		uptime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "uptime_hours",
			Help: "System uptime in hours.",
		}),
		tracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "tracked_processes",
			Help: "Processes held in the trend state.",
		}),
		cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "cycles_total",
			Help: "Completed sampling cycles.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "cycle_failures_total",
			Help: "Sampling cycles that failed to read a system counter source.",
		}),
		kills: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "terminations_total",
			Help: "Termination requests by result.",
		}, []string{"result"}),
	}

	r.registry.MustRegister(
		r.cpu, r.memory, r.health, r.uptime, r.tracked,
		r.cycles, r.failures, r.kills,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveCycle records a completed cycle
func (r *Recorder) ObserveCycle(c model.Cycle) {
	r.cpu.Set(c.Health.CPUPercent)
	r.memory.Set(c.Health.MemoryPercent)
	r.health.Set(c.Health.Health)
	r.uptime.Set(c.Health.UptimeHours)
	r.tracked.Set(float64(c.Tracked))
	r.cycles.Inc()
}

// ObserveFailure records a failed cycle. Gauges keep their last value.
func (r *Recorder) ObserveFailure(error) {
	r.failures.Inc()
}

// ObserveTermination records the outcome of a termination request
func (r *Recorder) ObserveTermination(err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	r.kills.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))
	return mux
}

// Serve runs an HTTP server for handler on addr until ctx is done
func Serve(ctx context.Context, addr string, handler http.Handler, log logging.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("metrics server listening", logging.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("metrics server stopped")
	return nil
}
