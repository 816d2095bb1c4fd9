// internal/docker/interface.go
package docker

import (
	"context"

	"github.com/rusenback/sysmon/internal/model"
)

// Resolver maps container IDs found in process cgroups to container names
type Resolver interface {
	RunningContainers(ctx context.Context) ([]model.Container, error)
	Close() error
}

// Make sure Client implements the interface
var _ Resolver = (*Client)(nil)
