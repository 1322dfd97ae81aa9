package resolver

import (
	"context"
	"fmt"

	"github.com/aretw0/runcmd/pkg/ports"
)

// Resolve asks prompter for every placeholder of template, in order, and
// returns the fully substituted command.
func Resolve(ctx context.Context, template string, prompter ports.Prompter) (string, error) {
	step := Begin(template)
	if step == nil {
		return template, nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		value, err := prompter.Prompt(ctx, step.Prompt())
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", step.Token(), err)
		}

		next, command, err := Resume(step, value)
		if err != nil {
			return "", err
		}
		if next == nil {
			return command, nil
		}
		step = next
	}
}
