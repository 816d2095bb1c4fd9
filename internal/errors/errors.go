// Package apperrors defines the error taxonomy of the monitor and the exit
// codes used by the command line entry point.
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorSource   = 2   // Indicates the counter source could not be read at startup.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the run was interrupted (e.g., SIGINT).
)

// ConfigError represents an invalid flag or environment value.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// SourceUnavailableError reports that an OS counter source or the process
// registry could not be read. For system-wide sources it fails the whole
// sampling cycle.
type SourceUnavailableError struct {
	// Source names the counter source, for example "cpu" or "meminfo".
	Source string
	// Cause is the underlying read error.
	Cause error
}

// Error returns a message naming the source and the cause.
func (e SourceUnavailableError) Error() string {
	return fmt.Sprintf("source %q unavailable: %v", e.Source, e.Cause)
}

// Unwrap returns the underlying read error.
func (e SourceUnavailableError) Unwrap() error { return e.Cause }

// NewSourceUnavailable wraps cause as a SourceUnavailableError.
func NewSourceUnavailable(source string, cause error) error {
	return SourceUnavailableError{Source: source, Cause: cause}
}

// TerminationError reports that a termination request for PID failed.
type TerminationError struct {
	PID   int
	Cause error
}

// Error returns the message shown to the operator.
func (e TerminationError) Error() string {
	return fmt.Sprintf("error terminating process %d: %v", e.PID, e.Cause)
}

// Unwrap returns the underlying signal error.
func (e TerminationError) Unwrap() error { return e.Cause }

// InputError reports operator input that is not a command. It is never
// fatal; callers treat it as a refresh.
type InputError struct {
	Input  string
	Reason string
}

// Error returns a formatted message describing the rejected input.
func (e InputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Input, e.Reason)
}

// IsSourceUnavailable reports whether err carries a SourceUnavailableError.
func IsSourceUnavailable(err error) bool {
	var target SourceUnavailableError
	return errors.As(err, &target)
}

// IsTermination reports whether err carries a TerminationError.
func IsTermination(err error) bool {
	var target TerminationError
	return errors.As(err, &target)
}

// IsInvalidInput reports whether err carries an InputError.
func IsInvalidInput(err error) bool {
	var target InputError
	return errors.As(err, &target)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// It returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error returned from the command to a process exit status.
func ExitCode(err error) int {
	var cfgErr ConfigError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &cfgErr):
		return ExitErrorConfig
	case IsContextError(err):
		return ExitErrorCanceled
	case IsSourceUnavailable(err):
		return ExitErrorSource
	default:
		return ExitErrorGeneric
	}
}
