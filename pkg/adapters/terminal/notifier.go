package terminal

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// Notifier prints errors as a highlighted block.
type Notifier struct {
	output *termenv.Output
}

// NewNotifier creates a notifier writing to w (usually stderr).
func NewNotifier(w io.Writer) *Notifier {
	return &Notifier{output: termenv.NewOutput(w)}
}

// Error implements ports.Notifier.
func (n *Notifier) Error(ctx context.Context, msg string) {
	label := n.output.String("Error:").Foreground(n.output.Color("#fb7185")).Bold()
	fmt.Fprintf(n.output, "%s %s\n", label, strings.TrimRight(StripControl(msg), "\n"))
}
