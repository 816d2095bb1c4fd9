package docker

import (
	"context"
	"path/filepath"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
)

// Config holds the Docker client settings
type Config struct {
	// Host overrides DOCKER_HOST when set
	Host      string
	TLSVerify bool
	CertPath  string
	Timeout   time.Duration
}

func DefaultConfig() Config {
	return Config{
		Timeout: 2 * time.Second,
	}
}

// apiClient is the part of the Docker API the resolver needs
type apiClient interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]types.Container, error)
	Close() error
}

// Client wraps the Docker API client
type Client struct {
	cli     apiClient
	timeout time.Duration
}

// NewClient connects to the daemon and pings it once. An error means
// container attribution is unavailable for this run.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	opts := []client.Opt{
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	}
	if cfg.Host != "" {
		opts = append(opts, client.WithHost(cfg.Host))
	}

	if cfg.TLSVerify {
		opts = append(opts, client.WithTLSClientConfig(
			filepath.Join(cfg.CertPath, "ca.pem"),
			filepath.Join(cfg.CertPath, "cert.pem"),
			filepath.Join(cfg.CertPath, "key.pem"),
		))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, err
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	if _, err := cli.Ping(pingCtx); err != nil {
		_ = cli.Close()
		return nil, err
	}

	return &Client{
		cli:     cli,
		timeout: cfg.Timeout,
	}, nil
}

// Close closes the connection
func (c *Client) Close() error {
	if c.cli != nil {
		return c.cli.Close()
	}
	return nil
}
