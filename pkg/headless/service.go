package headless

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/runcmd"
	"github.com/aretw0/runcmd/internal/logging"
	"github.com/aretw0/runcmd/pkg/adapters/memory"
	"github.com/aretw0/runcmd/pkg/adapters/terminal"
	"github.com/aretw0/runcmd/pkg/domain"
	"github.com/aretw0/runcmd/pkg/placeholder"
	"github.com/aretw0/runcmd/pkg/ports"
	"github.com/aretw0/runcmd/pkg/resolver"
)

// ErrInvalidRequest is returned for requests that cannot describe a document.
var ErrInvalidRequest = errors.New("invalid request")

// Request describes one invocation over a text buffer.
type Request struct {
	Text       string            `json:"text"`
	Selections []domain.Region   `json:"selections,omitempty"`
	Args       map[string]any    `json:"args"`
	Variables  map[string]string `json:"variables,omitempty"`
}

// RegionResult reports one region's outcome.
type RegionResult struct {
	Start   int    `json:"start"`
	End     int    `json:"end"`
	RunID   string `json:"run_id,omitempty"`
	Outcome string `json:"outcome"`
	Error   string `json:"error,omitempty"`
}

// Response is the document state after the invocation.
type Response struct {
	Command string          `json:"command"`
	Text    string          `json:"text"`
	Outputs []memory.Output `json:"outputs"`
	Regions []RegionResult  `json:"regions"`
	Errors  []string        `json:"errors,omitempty"`
}

// Service executes requests. It is safe for concurrent use, every request gets its own document.
type Service struct {
	executor ports.Executor
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Service.
type Option func(*Service)

// WithExecutor sets the executor shared by all requests.
func WithExecutor(e ports.Executor) Option {
	return func(s *Service) {
		s.executor = e
	}
}

// WithLifecycleHooks registers observability hooks for every request.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Service) {
		s.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates a Service.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	return s
}

// Run executes req. Region failures are reported in the response; the
// error return is reserved for requests that could not start at all.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	for _, r := range req.Selections {
		if r.Start < 0 || r.End < r.Start || r.End > len(req.Text) {
			return nil, fmt.Errorf("%w: selection [%d,%d) out of bounds (size %d)", ErrInvalidRequest, r.Start, r.End, len(req.Text))
		}
	}

	doc := memory.NewDocument(req.Text, req.Selections...)
	notifier := &memory.Notifier{}

	opts := []runcmd.Option{
		runcmd.WithPrompter(terminal.DefaultsPrompter{}),
		runcmd.WithNotifier(notifier),
		runcmd.WithVariables(ports.VariableMap(req.Variables)),
		runcmd.WithLifecycleHooks(s.hooks),
		runcmd.WithLogger(s.logger),
	}
	if s.executor != nil {
		opts = append(opts, runcmd.WithExecutor(s.executor))
	}

	report, err := runcmd.New(doc, opts...).Run(ctx, req.Args)
	if report == nil {
		return nil, err
	}

	resp := &Response{
		Command: report.Arguments.Command,
		Text:    doc.Text(),
		Outputs: doc.Outputs(),
		Regions: make([]RegionResult, 0, len(report.Regions)),
		Errors:  notifier.Messages(),
	}
	for _, rr := range report.Regions {
		res := RegionResult{
			Start:   rr.Region.Start,
			End:     rr.Region.End,
			RunID:   rr.RunID,
			Outcome: rr.Outcome.Label,
		}
		if rr.Err != nil {
			res.Outcome = domain.OutcomeOf(rr.Err)
			res.Error = rr.Err.Error()
		}
		resp.Regions = append(resp.Regions, res)
	}

	s.logger.Info("Command finished",
		"command", resp.Command,
		"regions", len(resp.Regions),
		"errors", len(resp.Errors),
	)
	return resp, nil
}

// Placeholders lists the placeholders of command in order of appearance.
func Placeholders(command string) []domain.Placeholder {
	list := placeholder.ParseAll(command)
	if list == nil {
		return []domain.Placeholder{}
	}
	return list
}

// Preview shows command with its first placeholder substituted by value, the
// way a host displays it while the user types. Commands without placeholders
// are rejected with ErrInvalidRequest.
func Preview(command, value string) (domain.Preview, error) {
	step := resolver.Begin(command)
	if step == nil {
		return domain.Preview{}, fmt.Errorf("%w: command has no placeholders", ErrInvalidRequest)
	}
	return step.Preview(value), nil
}

// IsClientError reports whether err was caused by the request itself.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, domain.ErrUnknownArgument) ||
		errors.Is(err, domain.ErrInvalidArgument) ||
		errors.Is(err, domain.ErrMissingCommand) ||
		errors.Is(err, domain.ErrInvalidSource) ||
		errors.Is(err, domain.ErrInvalidTarget) ||
		errors.Is(err, domain.ErrUnresolvedPlaceholder)
}
