//go:build unix

package system

import (
	"errors"

	apperrors "github.com/rusenback/sysmon/internal/errors"
	"golang.org/x/sys/unix"
)

// SignalTerminator sends SIGTERM. It never escalates to SIGKILL.
type SignalTerminator struct{}

// Terminate sends SIGTERM to pid. Non-positive PIDs are rejected since
// kill(2) treats them as process groups.
func (SignalTerminator) Terminate(pid int) error {
	if pid <= 0 {
		return apperrors.TerminationError{PID: pid, Cause: errors.New("pid must be positive")}
	}
	if err := unix.Kill(pid, unix.SIGTERM); err != nil {
		return apperrors.TerminationError{PID: pid, Cause: err}
	}
	return nil
}
