// Package config binds command-line flags and SYSMON_* environment
// variables into a validated Config.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	apperrors "github.com/rusenback/sysmon/internal/errors"
	"github.com/rusenback/sysmon/internal/logging"
	"github.com/rusenback/sysmon/internal/model"
)

// EnvPrefix is prepended to every environment key, e.g. SYSMON_REFRESH
const EnvPrefix = "SYSMON"

// Keys shared by flags, environment and viper
const (
	KeyRefresh      = "refresh"
	KeySampleWindow = "sample-window"
	KeyTop          = "top"
	KeySort         = "sort"
	KeyStaleCycles  = "stale-cycles"
	KeyProcRoot     = "proc-root"
	KeyDocker       = "docker"
	KeyDockerHost   = "docker-host"
	KeyDockerTLS    = "docker-tls-verify"
	KeyDockerCerts  = "docker-cert-path"
	KeyMetricsAddr  = "metrics-addr"
	KeyOnce         = "once"
	KeyFormat       = "format"
	KeyLogFile      = "log-file"
	KeyLogLevel     = "log-level"
)

// Output formats for --once
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Config holds the resolved runtime settings
type Config struct {
	Refresh      time.Duration `mapstructure:"refresh" yaml:"refresh"`
	SampleWindow time.Duration `mapstructure:"sample-window" yaml:"sample_window"`
	Top          int           `mapstructure:"top" yaml:"top"`
	Sort         string        `mapstructure:"sort" yaml:"sort"`
	StaleCycles  int           `mapstructure:"stale-cycles" yaml:"stale_cycles"`
	ProcRoot     string        `mapstructure:"proc-root" yaml:"proc_root"`
	Docker       bool          `mapstructure:"docker" yaml:"docker"`
	DockerHost   string        `mapstructure:"docker-host" yaml:"docker_host"`
	DockerTLS    bool          `mapstructure:"docker-tls-verify" yaml:"docker_tls_verify"`
	DockerCerts  string        `mapstructure:"docker-cert-path" yaml:"docker_cert_path"`
	MetricsAddr  string        `mapstructure:"metrics-addr" yaml:"metrics_addr"`
	Once         bool          `mapstructure:"once" yaml:"once"`
	Format       string        `mapstructure:"format" yaml:"format"`
	LogFile      string        `mapstructure:"log-file" yaml:"log_file"`
	LogLevel     string        `mapstructure:"log-level" yaml:"log_level"`
}

// Default returns the settings used when nothing is overridden
func Default() Config {
	return Config{
		Refresh:      3 * time.Second,
		SampleWindow: 500 * time.Millisecond,
		Top:          10,
		Sort:         model.SortByCPU.String(),
		StaleCycles:  3,
		ProcRoot:     "/proc",
		Docker:       true,
		Format:       FormatText,
		LogLevel:     "info",
	}
}

// BindFlags registers every key on fs with its default and binds it into v
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	d := Default()

	fs.Duration(KeyRefresh, d.Refresh, "interval between sampling cycles")
	fs.Duration(KeySampleWindow, d.SampleWindow, "gap between the two CPU counter reads of a cycle")
	fs.Int(KeyTop, d.Top, "number of processes shown")
	fs.String(KeySort, d.Sort, "initial ranking: cpu or mem")
	fs.Int(KeyStaleCycles, d.StaleCycles, "cycles a vanished process is remembered before eviction")
	fs.String(KeyProcRoot, d.ProcRoot, "procfs mount point")
	fs.Bool(KeyDocker, d.Docker, "attribute processes to running Docker containers")
	fs.String(KeyDockerHost, d.DockerHost, "Docker daemon address (default from DOCKER_HOST)")
	fs.Bool(KeyDockerTLS, d.DockerTLS, "verify the Docker daemon with the certificates in --docker-cert-path")
	fs.String(KeyDockerCerts, d.DockerCerts, "directory holding ca.pem, cert.pem and key.pem")
	fs.String(KeyMetricsAddr, d.MetricsAddr, "serve Prometheus metrics on this address, e.g. :9101")
	fs.Bool(KeyOnce, d.Once, "print a single frame and exit")
	fs.String(KeyFormat, d.Format, "--once output format: text or yaml")
	fs.String(KeyLogFile, d.LogFile, "write logs to this file (default: discarded)")
	fs.String(KeyLogLevel, d.LogLevel, "log level: debug, info, warn or error")

	if err := v.BindPFlags(fs); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return nil
}

// Load reads the resolved values out of v and validates them
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Refresh:      v.GetDuration(KeyRefresh),
		SampleWindow: v.GetDuration(KeySampleWindow),
		Top:          v.GetInt(KeyTop),
		Sort:         strings.ToLower(v.GetString(KeySort)),
		StaleCycles:  v.GetInt(KeyStaleCycles),
		ProcRoot:     v.GetString(KeyProcRoot),
		Docker:       v.GetBool(KeyDocker),
		DockerHost:   v.GetString(KeyDockerHost),
		DockerTLS:    v.GetBool(KeyDockerTLS),
		DockerCerts:  v.GetString(KeyDockerCerts),
		MetricsAddr:  v.GetString(KeyMetricsAddr),
		Once:         v.GetBool(KeyOnce),
		Format:       strings.ToLower(v.GetString(KeyFormat)),
		LogFile:      v.GetString(KeyLogFile),
		LogLevel:     v.GetString(KeyLogLevel),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the monitor cannot run with
func (c Config) Validate() error {
	switch {
	case c.Refresh <= 0:
		return apperrors.NewConfigError("--%s must be positive, got %s", KeyRefresh, c.Refresh)
	case c.SampleWindow <= 0:
		return apperrors.NewConfigError("--%s must be positive, got %s", KeySampleWindow, c.SampleWindow)
	case c.Top < 1:
		return apperrors.NewConfigError("--%s must be at least 1, got %d", KeyTop, c.Top)
	case c.StaleCycles < 0:
		return apperrors.NewConfigError("--%s must not be negative, got %d", KeyStaleCycles, c.StaleCycles)
	case c.ProcRoot == "":
		return apperrors.NewConfigError("--%s must not be empty", KeyProcRoot)
	case c.DockerTLS && c.DockerCerts == "":
		return apperrors.NewConfigError("--%s requires --%s", KeyDockerTLS, KeyDockerCerts)
	}
	if _, err := c.SortMode(); err != nil {
		return err
	}
	if c.Format != FormatText && c.Format != FormatYAML {
		return apperrors.NewConfigError("--%s must be %q or %q, got %q", KeyFormat, FormatText, FormatYAML, c.Format)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("--%s: %v", KeyLogLevel, err)
	}
	return nil
}

// SortMode maps the sort key onto a ranking
func (c Config) SortMode() (model.SortMode, error) {
	switch c.Sort {
	case "cpu":
		return model.SortByCPU, nil
	case "mem", "memory":
		return model.SortByMemory, nil
	default:
		return model.SortByCPU, apperrors.NewConfigError("--%s must be cpu or mem, got %q", KeySort, c.Sort)
	}
}
