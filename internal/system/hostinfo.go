package system

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/host"
)

// HostInfo identifies the machine in the dashboard banner.
type HostInfo struct {
	Hostname string
	Platform string
	Kernel   string
}

// ReadHostInfo queries hostname, platform and kernel version.
func ReadHostInfo(ctx context.Context) (HostInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return HostInfo{}, err
	}
	return HostInfo{
		Hostname: info.Hostname,
		Platform: info.Platform,
		Kernel:   info.KernelVersion,
	}, nil
}

func (h HostInfo) String() string {
	switch {
	case h.Hostname == "":
		return ""
	case h.Platform == "" && h.Kernel == "":
		return h.Hostname
	default:
		return fmt.Sprintf("%s (%s %s)", h.Hostname, h.Platform, h.Kernel)
	}
}
