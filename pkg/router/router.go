// Package router applies the captured output of a command to the host document.
package router

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/aretw0/runcmd/pkg/domain"
	"github.com/aretw0/runcmd/pkg/ports"
)

// Input is what the router needs to know about the region that was executed.
type Input struct {
	Region  domain.Region
	Stdin   []byte
	Command string
	Target  domain.Target
}

// Outcome reports what was done with stdout.
type Outcome struct {
	Label    string // one of the domain.Outcome* labels
	Replaced bool   // the region content was replaced
	Created  string // name of the document created, if any
	Delta    int    // length change of the document caused by the replacement
}

// Route applies result according to in.Target.
//
// Any stderr output is a failure, whatever the exit code, and stdout is then
// dropped. A selection target over a region whose stdout equals its stdin
// leaves the document untouched. Stdout is only decoded when it is applied,
// so a none target accepts any bytes.
func Route(doc ports.Document, in Input, result *domain.Result) (Outcome, error) {
	if len(result.Stderr) > 0 {
		if !utf8.Valid(result.Stderr) {
			return Outcome{Label: domain.OutcomeDecode}, &domain.DecodeError{Stream: "stderr"}
		}
		return Outcome{Label: domain.OutcomeStderr}, &domain.StderrError{
			Message:  string(result.Stderr),
			ExitCode: result.ExitCode,
		}
	}

	switch in.Target {
	case domain.TargetSelection:
		if in.Region.Null || bytes.Equal(result.Stdout, in.Stdin) {
			return Outcome{Label: domain.OutcomeNoop}, nil
		}
		if !utf8.Valid(result.Stdout) {
			return Outcome{Label: domain.OutcomeDecode}, &domain.DecodeError{Stream: "stdout"}
		}
		if err := doc.Replace(in.Region, string(result.Stdout)); err != nil {
			return Outcome{}, fmt.Errorf("replacing region [%d,%d): %w", in.Region.Start, in.Region.End, err)
		}
		return Outcome{
			Label:    domain.OutcomeSuccess,
			Replaced: true,
			Delta:    len(result.Stdout) - in.Region.Len(),
		}, nil

	case domain.TargetWindow:
		if !utf8.Valid(result.Stdout) {
			return Outcome{Label: domain.OutcomeDecode}, &domain.DecodeError{Stream: "stdout"}
		}
		if err := doc.NewDocument(in.Command, string(result.Stdout)); err != nil {
			return Outcome{}, fmt.Errorf("creating output document: %w", err)
		}
		return Outcome{Label: domain.OutcomeSuccess, Created: in.Command}, nil

	case domain.TargetNone:
		return Outcome{Label: domain.OutcomeNoop}, nil
	}

	return Outcome{}, fmt.Errorf("%w: %q", domain.ErrInvalidTarget, in.Target)
}
