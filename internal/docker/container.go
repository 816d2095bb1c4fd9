// internal/docker/container.go
package docker

import (
	"context"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/rusenback/sysmon/internal/model"
)

// RunningContainers returns the running containers with full IDs
func (c *Client) RunningContainers(ctx context.Context) ([]model.Container, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	containers, err := c.cli.ContainerList(ctx, container.ListOptions{})
	if err != nil {
		return nil, err
	}

	result := make([]model.Container, 0, len(containers))
	for _, cont := range containers {
		result = append(result, model.Container{
			ID:   cont.ID,
			Name: containerName(cont.Names, cont.ID),
		})
	}

	return result, nil
}

// containerName drops the leading "/" the API puts on names and falls back
// to the short ID when the container has no name
func containerName(names []string, id string) string {
	for _, n := range names {
		n = strings.TrimPrefix(n, "/")
		if n != "" {
			return n
		}
	}
	return model.Container{ID: id}.ShortID()
}
