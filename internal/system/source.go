package system

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"time"
)

// clockTicks is USER_HZ. Both procfs and gopsutil report CPU time in
// seconds scaled by it, so multiplying back recovers the kernel's ticks.
const clockTicks = 100

// Config holds the settings of the counter source
type Config struct {
	// ProcRoot is the procfs mount point. Only used on Linux.
	ProcRoot string
}

func DefaultConfig() Config {
	return Config{
		ProcRoot: "/proc",
	}
}

func secondsToTicks(s float64) uint64 {
	if s <= 0 {
		return 0
	}
	return uint64(s*clockTicks + 0.5)
}

// normalizeName strips the parentheses the kernel wraps around comm.
func normalizeName(name string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimLeft(name, "("), ")"))
}

// parseUptime reads the first field of /proc/uptime.
func parseUptime(data []byte) (time.Duration, error) {
	fields := bytes.Fields(data)
	if len(fields) == 0 {
		return 0, errors.New("empty uptime file")
	}
	secs, err := strconv.ParseFloat(string(fields[0]), 64)
	if err != nil {
		return 0, err
	}
	if secs < 0 {
		return 0, errors.New("negative uptime")
	}
	return time.Duration(secs * float64(time.Second)), nil
}
