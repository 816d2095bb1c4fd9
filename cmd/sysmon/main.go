// cmd/sysmon/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/rusenback/sysmon/internal/config"
	"github.com/rusenback/sysmon/internal/docker"
	"github.com/rusenback/sysmon/internal/engine"
	apperrors "github.com/rusenback/sysmon/internal/errors"
	"github.com/rusenback/sysmon/internal/logging"
	"github.com/rusenback/sysmon/internal/metrics"
	"github.com/rusenback/sysmon/internal/system"
	"github.com/rusenback/sysmon/internal/tui"
)

// Version is set at build time
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "sysmon: %v\n", err)
		os.Exit(apperrors.ExitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:     "sysmon",
		Version: Version,
		Short:   "Terminal system resource monitor",
		Long: `sysmon samples CPU, memory and uptime from the kernel, ranks the busiest
processes and lets you terminate one by PID.

Every flag can also be set through the environment, e.g. SYSMON_REFRESH=5s.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
	if err := config.BindFlags(cmd.Flags(), v); err != nil {
		panic(err)
	}
	return cmd
}

func run(ctx context.Context, cfg config.Config, stdout io.Writer) error {
	log, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	source, err := system.NewSource(system.Config{ProcRoot: cfg.ProcRoot}, log.Component("system"))
	if err != nil {
		return err
	}

	host := ""
	if info, err := system.ReadHostInfo(ctx); err != nil {
		log.Debug("host info unavailable", logging.Err(err))
	} else {
		host = info.String()
	}

	opts := engine.Options{
		SampleWindow: cfg.SampleWindow,
		StaleCycles:  cfg.StaleCycles,
		Logger:       log.Component("engine"),
	}

	if cfg.Docker {
		dcfg := docker.DefaultConfig()
		dcfg.Host = cfg.DockerHost
		dcfg.TLSVerify = cfg.DockerTLS
		dcfg.CertPath = cfg.DockerCerts
		client, err := docker.NewClient(ctx, dcfg)
		if err != nil {
			log.Info("container attribution disabled", logging.Err(err))
		} else {
			defer client.Close()
			opts.Containers = client
		}
	}

	var recorder *metrics.Recorder
	var observer tui.TerminationObserver
	if cfg.MetricsAddr != "" {
		recorder = metrics.NewRecorder()
		opts.Observer = recorder
		observer = recorder
	}

	sampler := engine.New(source, opts)
	sortMode, _ := cfg.SortMode()

	if cfg.Once {
		return runOnce(ctx, sampler, onceOptions{
			Host:   host,
			Sort:   sortMode,
			TopN:   cfg.Top,
			Format: cfg.Format,
		}, stdout)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	if recorder != nil {
		g.Go(func() error {
			return metrics.Serve(gctx, cfg.MetricsAddr, recorder.Handler(), log.Component("metrics"))
		})
	}

	g.Go(func() error {
		// Leaving the UI ends the run, including the metrics server
		defer cancel()

		if !isTerminal(stdout) {
			return runPlain(gctx, sampler, plainOptions{
				Host:    host,
				Sort:    sortMode,
				TopN:    cfg.Top,
				Refresh: cfg.Refresh,
			}, stdout)
		}

		m := tui.NewModel(gctx, sampler, system.SignalTerminator{}, tui.Config{
			Refresh:  cfg.Refresh,
			TopN:     cfg.Top,
			SortMode: sortMode,
			Host:     host,
			Logger:   log.Component("tui"),
			Observer: observer,
		})
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(gctx))
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) && !apperrors.IsContextError(err) {
			return fmt.Errorf("running interface: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// openLogger returns the run's logger. Without --log-file logs are
// discarded, since the interface owns the terminal.
func openLogger(cfg config.Config) (*logging.ZerologAdapter, func(), error) {
	lvl, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, apperrors.NewConfigError("--%s: %v", config.KeyLogLevel, err)
	}
	if cfg.LogFile == "" {
		return logging.NewNopLogger(), func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, apperrors.NewConfigError("opening log file: %v", err)
	}
	log := logging.NewLogger(f, "sysmon").WithLevel(lvl)
	return log, func() { _ = f.Close() }, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
