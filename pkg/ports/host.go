package ports

import (
	"context"

	"github.com/aretw0/runcmd/pkg/domain"
)

// Document is the host buffer a command operates on.
// Offsets are byte offsets into the UTF-8 text.
type Document interface {
	// Size returns the length of the document in bytes.
	Size() int

	// Selections returns the user-selected regions in document order.
	// The list may be empty and regions may be zero-length cursors.
	Selections() []domain.Region

	// Slice returns the bytes covered by the region. A null region yields nil.
	Slice(r domain.Region) []byte

	// Replace swaps the content of the region for text.
	Replace(r domain.Region, text string) error

	// NewDocument creates a scratch document with the given name and content.
	NewDocument(name, text string) error
}

// Prompter collects one value from the user.
type Prompter interface {
	Prompt(ctx context.Context, p domain.Prompt) (string, error)
}

// PromptFunc adapts a function to the Prompter interface.
type PromptFunc func(ctx context.Context, p domain.Prompt) (string, error)

// Prompt calls f.
func (f PromptFunc) Prompt(ctx context.Context, p domain.Prompt) (string, error) {
	return f(ctx, p)
}

// PreviewRenderer renders a command preview for display.
type PreviewRenderer interface {
	RenderPreview(p domain.Preview) string
}

// Variables resolves host variables such as the folder of the current file.
type Variables interface {
	Lookup(name string) (string, bool)
}

// VariableMap is a static Variables implementation.
type VariableMap map[string]string

// Lookup returns the value stored under name.
func (m VariableMap) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// Notifier surfaces errors to the user.
type Notifier interface {
	Error(ctx context.Context, msg string)
}

// Executor runs a finished command line.
type Executor interface {
	Execute(ctx context.Context, req domain.Request) (*domain.Result, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, req domain.Request) (*domain.Result, error)

// Execute calls f.
func (f ExecutorFunc) Execute(ctx context.Context, req domain.Request) (*domain.Result, error) {
	return f(ctx, req)
}
