package domain

import (
	"context"
	"errors"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventExecStart EventType = "exec_start"
	EventExecEnd   EventType = "exec_end"
	EventRoute     EventType = "route"
)

// Outcome labels used by events and metrics.
const (
	OutcomeSuccess = "success"
	OutcomeNoop    = "noop"
	OutcomeStderr  = "stderr"
	OutcomeTimeout = "timeout"
	OutcomeSpawn   = "spawn_error"
	OutcomeDecode  = "decode_error"
	OutcomeCancel  = "canceled"
	OutcomeError   = "error"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// ExecEvent represents the start or the end of one subprocess.
type ExecEvent struct {
	EventBase
	Command  string        `json:"command"`
	Region   Region        `json:"region"`
	RunID    string        `json:"run_id,omitempty"`
	ExitCode int           `json:"exit_code,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// RouteEvent represents the routing decision for one region.
type RouteEvent struct {
	EventBase
	Command string `json:"command"`
	Target  Target `json:"target"`
	Outcome string `json:"outcome"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnExecStart func(context.Context, *ExecEvent)
	OnExecEnd   func(context.Context, *ExecEvent)
	OnRoute     func(context.Context, *RouteEvent)
}

// OutcomeOf maps an execution or routing error to its outcome label.
func OutcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrTimedOut):
		return OutcomeTimeout
	case errors.Is(err, ErrStderr):
		return OutcomeStderr
	case errors.Is(err, ErrDecode):
		return OutcomeDecode
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCancel
	case errors.Is(err, ErrSpawn):
		return OutcomeSpawn
	default:
		return OutcomeError
	}
}
