//go:build !unix

package system

import (
	"errors"

	apperrors "github.com/rusenback/sysmon/internal/errors"
)

var errUnsupported = errors.New("graceful termination is not supported on this platform")

type SignalTerminator struct{}

func (SignalTerminator) Terminate(pid int) error {
	return apperrors.TerminationError{PID: pid, Cause: errUnsupported}
}
