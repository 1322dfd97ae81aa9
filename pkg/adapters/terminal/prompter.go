package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/runcmd/pkg/domain"
	"github.com/aretw0/runcmd/pkg/ports"
	"golang.org/x/term"
)

// DefaultEmptyMarker is the answer that confirms an empty value.
const DefaultEmptyMarker = `""`

// Prompter asks for placeholder values on a line-based terminal.
//
// An empty line keeps the prefilled default. A line holding only the empty
// marker (`""` unless changed with WithEmptyMarker) confirms an empty value
// instead, which is the only way to clear a placeholder that has a default.
//
// Typed lines go through SanitizeInput before they are returned: lines over
// the size limit or with invalid UTF-8 are refused and asked again, and
// control characters such as ESC are removed. The returned value is the
// cleaned line, not the raw bytes read.
type Prompter struct {
	Reader      *bufio.Reader
	Writer      io.Writer
	Renderer    ports.PreviewRenderer
	EmptyMarker string

	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// PrompterOption defines configuration for Prompter.
type PrompterOption func(*Prompter)

// WithPreviewRenderer shows a command preview before every placeholder prompt.
func WithPreviewRenderer(renderer ports.PreviewRenderer) PrompterOption {
	return func(p *Prompter) {
		p.Renderer = renderer
	}
}

// WithEmptyMarker changes the answer that confirms an empty value. An empty
// marker disables it, so every answer is taken literally.
func WithEmptyMarker(marker string) PrompterOption {
	return func(p *Prompter) {
		p.EmptyMarker = marker
	}
}

// NewPrompter creates a prompter over r and w (stdin/stdout when nil).
func NewPrompter(r io.Reader, w io.Writer, opts ...PrompterOption) *Prompter {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	p := &Prompter{
		Reader:      bufio.NewReader(r),
		Writer:      w,
		EmptyMarker: DefaultEmptyMarker,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func (p *Prompter) initPump() {
	p.startOnce.Do(func() {
		p.inputChan = make(chan inputResult)
		go p.pump()
	})
}

// pump reads lines in the background so a prompt can be abandoned on cancellation.
func (p *Prompter) pump() {
	defer close(p.inputChan)
	for {
		text, err := p.Reader.ReadString('\n')
		if text != "" {
			p.inputChan <- inputResult{text: text}
		}
		if err != nil {
			if err != io.EOF {
				p.inputChan <- inputResult{err: err}
			}
			return
		}
	}
}

// Prompt implements ports.Prompter.
func (p *Prompter) Prompt(ctx context.Context, prompt domain.Prompt) (string, error) {
	p.initPump()

	if p.Renderer != nil && prompt.Preview != nil {
		fmt.Fprintln(p.Writer, p.Renderer.RenderPreview(prompt.Preview(prompt.Default)))
	}

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
			fmt.Fprint(p.Writer, label(prompt))
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case res, ok := <-p.inputChan:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil {
				return "", res.err
			}

			text := strings.TrimRight(res.text, "\r\n")
			if text == "" {
				return prompt.Default, nil
			}
			if p.EmptyMarker != "" && text == p.EmptyMarker {
				return "", nil
			}

			clean, err := SanitizeInput(text)
			if err != nil {
				fmt.Fprintf(p.Writer, "Error: %v. Please try again.\n", err)
				continue
			}
			return clean, nil
		}
	}
}

func label(prompt domain.Prompt) string {
	if prompt.Default != "" {
		return fmt.Sprintf("%s [%s]: ", prompt.Name, StripControl(prompt.Default))
	}
	return prompt.Name + ": "
}

// DefaultsPrompter answers every placeholder with its default value.
// It cannot supply a missing command.
type DefaultsPrompter struct{}

// Prompt implements ports.Prompter.
func (DefaultsPrompter) Prompt(ctx context.Context, prompt domain.Prompt) (string, error) {
	if prompt.IsCommand() {
		return "", domain.ErrMissingCommand
	}
	return prompt.Default, nil
}
