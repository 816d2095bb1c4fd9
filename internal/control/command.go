// Package control interprets operator commands and carries out the ones
// that act on the system.
package control

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/rusenback/sysmon/internal/errors"
	"github.com/rusenback/sysmon/internal/model"
	"github.com/rusenback/sysmon/internal/system"
)

// Action is what a command asks the control loop to do.
type Action int

const (
	ActionRefresh Action = iota
	ActionSortCPU
	ActionSortMemory
	ActionTerminate
)

// Command is one parsed line of operator input.
type Command struct {
	Action Action
	PID    int
}

// Parse interprets input as 0 (refresh), 1 (sort by CPU), 2 (sort by
// memory) or a PID above 2 to terminate. Anything else is a refresh,
// returned together with an InputError so callers can tell the operator.
func Parse(input string) (Command, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return Command{Action: ActionRefresh}, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return Command{Action: ActionRefresh}, apperrors.InputError{Input: input, Reason: "not a number"}
	}

	switch {
	case n == 0:
		return Command{Action: ActionRefresh}, nil
	case n == 1:
		return Command{Action: ActionSortCPU}, nil
	case n == 2:
		return Command{Action: ActionSortMemory}, nil
	case n > 2:
		return Command{Action: ActionTerminate, PID: n}, nil
	default:
		return Command{Action: ActionRefresh}, apperrors.InputError{Input: input, Reason: "negative number"}
	}
}

// SortMode returns the sort mode a sort command selects and whether the
// command is a sort command at all.
func (c Command) SortMode() (model.SortMode, bool) {
	switch c.Action {
	case ActionSortCPU:
		return model.SortByCPU, true
	case ActionSortMemory:
		return model.SortByMemory, true
	default:
		return model.SortByCPU, false
	}
}

// Terminate asks t to stop pid and returns the message for the operator.
// The returned error is always a TerminationError.
func Terminate(t system.Terminator, pid int) (string, error) {
	err := t.Terminate(pid)
	if err == nil {
		return fmt.Sprintf("Process %d terminated successfully.", pid), nil
	}

	var te apperrors.TerminationError
	if !errors.As(err, &te) {
		te = apperrors.TerminationError{PID: pid, Cause: err}
	}
	return fmt.Sprintf("Error terminating process %d: %v", pid, te.Cause), te
}
