package gupty

import (
	"errors"
	"fmt"
)

// ExitKind classifies why a Session stopped running.
type ExitKind int

const (
	// ExitNormal is an orderly termination initiated by the script or the
	// operator (the "exit" command, or running off the end of the script
	// and then, after leaving passthrough mode, pressing Enter).
	ExitNormal ExitKind = iota
	// ExitEarly is a signal-initiated or operator "q" abort.
	ExitEarly
	// ExitRuntime covers pty/termios/fork/exec/poll failures and unknown
	// script commands.
	ExitRuntime
	// ExitUnknown is the catch-all for anything else.
	ExitUnknown
)

// Code returns the process exit code for this ExitKind.
func (k ExitKind) Code() int {
	return int(k)
}

func (k ExitKind) String() string {
	switch k {
	case ExitNormal:
		return "normal"
	case ExitEarly:
		return "early"
	case ExitRuntime:
		return "runtime"
	default:
		return "unknown"
	}
}

// ExitError wraps an underlying error with the ExitKind the top level
// should map to a process exit code.
type ExitError struct {
	Kind ExitKind
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Err)
}

func (e *ExitError) Unwrap() error { return e.Err }

// ErrNormalExit and ErrEarlyExit are returned by Run/the engine's command
// handlers to unwind out of the run loop.
var (
	ErrNormalExit = errors.New("gupty: normal exit")
	ErrEarlyExit  = errors.New("gupty: early exit")
)

// ErrUnknownCommand is returned by ResolveCommands when a script line
// names a command not present in the dispatch table.
type ErrUnknownCommand struct {
	Name string
}

func (e *ErrUnknownCommand) Error() string {
	return fmt.Sprintf("gupty: unknown command: %s", e.Name)
}

// NewExitError classifies err into an *ExitError using the sentinels
// above, falling back to ExitRuntime for any other non-nil error.
func NewExitError(err error) *ExitError {
	switch {
	case err == nil:
		return &ExitError{Kind: ExitNormal}
	case errors.Is(err, ErrNormalExit):
		return &ExitError{Kind: ExitNormal}
	case errors.Is(err, ErrEarlyExit):
		return &ExitError{Kind: ExitEarly, Err: err}
	default:
		var unknownCmd *ErrUnknownCommand
		if errors.As(err, &unknownCmd) {
			return &ExitError{Kind: ExitRuntime, Err: err}
		}
		return &ExitError{Kind: ExitRuntime, Err: err}
	}
}
