// Package logging provides the structured logging interface used across the
// monitor. The interactive dashboard owns the terminal, so loggers are
// normally pointed at a file or discarded.
package logging
