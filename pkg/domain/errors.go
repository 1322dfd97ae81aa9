package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotConfirmed is returned when a resolver step is advanced before a value was confirmed.
var ErrNotConfirmed = errors.New("placeholder value not confirmed")

// ErrMissingCommand is returned when no command was supplied and none could be prompted for.
var ErrMissingCommand = errors.New("missing command")

// ErrUnknownArgument is returned when an invocation key is neither a known field nor a placeholder token.
var ErrUnknownArgument = errors.New("unknown argument")

// ErrInvalidArgument is returned when a known invocation key has a value of
// the wrong type or out of range.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrUnresolvedPlaceholder is returned when placeholders remain and no prompter is available.
var ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")

// ErrInvalidSource is returned for a source outside selection/window/none.
var ErrInvalidSource = errors.New("invalid source")

// ErrInvalidTarget is returned for a target outside selection/window/none.
var ErrInvalidTarget = errors.New("invalid target")

// Sentinels matched by the typed execution errors below.
var (
	ErrSpawn    = errors.New("spawn failed")
	ErrTimedOut = errors.New("command timed out")
	ErrStderr   = errors.New("command wrote to stderr")
	ErrDecode   = errors.New("output is not valid UTF-8")
)

// SpawnError reports that the process could not start or its IO failed.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string { return e.Err.Error() }

func (e *SpawnError) Unwrap() error { return e.Err }

func (e *SpawnError) Is(target error) bool { return target == ErrSpawn }

// TimeoutError reports that the process exceeded its deadline and was killed.
type TimeoutError struct {
	Command string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("The command '%s' has timed out.", e.Command)
}

func (e *TimeoutError) Is(target error) bool { return target == ErrTimedOut }

// StderrError reports a run that completed but wrote to stderr.
// Message is the decoded stderr.
type StderrError struct {
	Message  string
	ExitCode int
}

func (e *StderrError) Error() string { return e.Message }

func (e *StderrError) Is(target error) bool { return target == ErrStderr }

// DecodeError reports a stream that is not valid UTF-8.
type DecodeError struct {
	Stream string // "stdout" or "stderr"
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s of the command is not valid UTF-8", e.Stream)
}

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// IsFatal reports whether err must abort the remaining regions of an invocation.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrSpawn) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
