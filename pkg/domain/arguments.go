package domain

import (
	"fmt"
	"math"
	"time"
)

// Source selects what the command receives on stdin.
type Source string

const (
	SourceSelection Source = "selection" // Each selected region, one execution per region
	SourceWindow    Source = "window"    // The whole document
	SourceNone      Source = "none"      // Empty stdin
)

// Valid reports whether s is one of the known sources.
func (s Source) Valid() bool {
	switch s {
	case SourceSelection, SourceWindow, SourceNone:
		return true
	}
	return false
}

// Target selects where the captured stdout goes.
type Target string

const (
	TargetSelection Target = "selection" // Replace the region that was fed as stdin
	TargetWindow    Target = "window"    // A new document named after the command
	TargetNone      Target = "none"      // Discard
)

// Valid reports whether t is one of the known targets.
func (t Target) Valid() bool {
	switch t {
	case TargetSelection, TargetWindow, TargetNone:
		return true
	}
	return false
}

// CommandArguments are the parameters of a single invocation.
// Command is rewritten as placeholders get resolved; the other fields are
// fixed once the merge completes.
type CommandArguments struct {
	Command string  `json:"command" yaml:"command" mapstructure:"command"`
	Cwd     string  `json:"cwd,omitempty" yaml:"cwd,omitempty" mapstructure:"cwd"`
	Timeout float64 `json:"timeout,omitempty" yaml:"timeout,omitempty" mapstructure:"timeout"`
	Source  Source  `json:"source,omitempty" yaml:"source,omitempty" mapstructure:"source"`
	Target  Target  `json:"target,omitempty" yaml:"target,omitempty" mapstructure:"target"`
}

// DefaultArguments returns the arguments used when nothing is configured.
func DefaultArguments() CommandArguments {
	return CommandArguments{
		Timeout: DefaultTimeoutSeconds,
		Source:  SourceSelection,
		Target:  TargetSelection,
	}
}

// maxTimeoutSeconds is the largest Timeout a time.Duration can hold.
const maxTimeoutSeconds = float64(math.MaxInt64) / float64(time.Second)

// Deadline converts Timeout into a duration. Timeouts too large for a
// time.Duration saturate at the maximum duration.
func (a CommandArguments) Deadline() time.Duration {
	if a.Timeout <= 0 || math.IsNaN(a.Timeout) {
		return DefaultTimeoutSeconds * time.Second
	}
	if a.Timeout >= maxTimeoutSeconds {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(a.Timeout * float64(time.Second))
}

// Validate checks the timeout and the routing enums.
func (a CommandArguments) Validate() error {
	if math.IsNaN(a.Timeout) || math.IsInf(a.Timeout, 0) {
		return fmt.Errorf("%w: timeout %v", ErrInvalidArgument, a.Timeout)
	}
	if !a.Source.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSource, a.Source)
	}
	if !a.Target.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTarget, a.Target)
	}
	return nil
}

// Placeholder is a parsed `${arg_<name>}` or `${arg_<name>|<default>}` token.
// Token is the exact substring of the template and is used as the
// substitution key.
type Placeholder struct {
	Token   string `json:"token"`
	Name    string `json:"name"`
	Default string `json:"default"`
}
