package runcmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/runcmd/internal/logging"
	"github.com/aretw0/runcmd/pkg/adapters/process"
	"github.com/aretw0/runcmd/pkg/domain"
	"github.com/aretw0/runcmd/pkg/placeholder"
	"github.com/aretw0/runcmd/pkg/ports"
	"github.com/aretw0/runcmd/pkg/resolver"
	"github.com/aretw0/runcmd/pkg/router"
)

// Runner orchestrates one command invocation against a document.
type Runner struct {
	doc       ports.Document
	executor  ports.Executor
	prompter  ports.Prompter
	notifier  ports.Notifier
	variables ports.Variables
	defaults  domain.CommandArguments
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithExecutor replaces the default shell executor.
func WithExecutor(e ports.Executor) Option {
	return func(r *Runner) {
		r.executor = e
	}
}

// WithPrompter enables interactive resolution of the command and its placeholders.
func WithPrompter(p ports.Prompter) Option {
	return func(r *Runner) {
		r.prompter = p
	}
}

// WithNotifier configures where per-region failures are surfaced.
func WithNotifier(n ports.Notifier) Option {
	return func(r *Runner) {
		r.notifier = n
	}
}

// WithVariables configures the lookup used for `$name` working directories.
func WithVariables(v ports.Variables) Option {
	return func(r *Runner) {
		r.variables = v
	}
}

// WithDefaults sets the arguments that kwargs are merged onto.
func WithDefaults(args domain.CommandArguments) Option {
	return func(r *Runner) {
		r.defaults = args
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Runner) {
		r.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// New creates a Runner over doc.
func New(doc ports.Document, opts ...Option) *Runner {
	r := &Runner{
		doc:      doc,
		defaults: domain.DefaultArguments(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	if r.executor == nil {
		r.executor = process.NewRunner(process.WithLogger(r.logger))
	}
	return r
}

// RegionReport is the result of one region's execute and route step.
type RegionReport struct {
	Region  domain.Region
	RunID   string
	Outcome router.Outcome
	Err     error
}

// Report summarises an invocation.
type Report struct {
	Arguments domain.CommandArguments
	Regions   []RegionReport
}

// Failed reports whether any region failed.
func (r *Report) Failed() bool {
	for _, rr := range r.Regions {
		if rr.Err != nil {
			return true
		}
	}
	return false
}

// Run merges kwargs, resolves the command and executes it once per source region.
//
// Regions are processed strictly in order, one subprocess at a time. A
// failing region is reported through the Notifier and the next region is
// attempted, except for spawn failures and cancellation which stop the run.
// The returned error joins every region failure.
func (r *Runner) Run(ctx context.Context, kwargs map[string]any) (*Report, error) {
	args, subs, err := Merge(r.defaults, kwargs)
	if err != nil {
		return nil, err
	}

	args.Command = Substitute(args.Command, subs)

	args.Command, err = r.resolveCommand(ctx, args.Command)
	if err != nil {
		return nil, err
	}

	args.Cwd = r.resolveCwd(args.Cwd)

	regions := r.regions(args.Source)
	r.logger.Debug("Running command",
		"command", args.Command,
		"cwd", args.Cwd,
		"source", args.Source,
		"target", args.Target,
		"regions", len(regions),
	)

	report := &Report{Arguments: args}
	var errs []error
	delta := 0
	for _, region := range regions {
		region = region.Shift(delta)

		rr := r.runRegion(ctx, args, region)
		report.Regions = append(report.Regions, rr)

		if rr.Err != nil {
			r.logger.Warn("Region failed", "start", region.Start, "end", region.End, "error", rr.Err)
			r.notify(ctx, rr.Err)
			errs = append(errs, rr.Err)
			if domain.IsFatal(rr.Err) {
				break
			}
			continue
		}
		delta += rr.Outcome.Delta
	}

	return report, errors.Join(errs...)
}

// resolveCommand asks for a missing command, then for every remaining placeholder.
func (r *Runner) resolveCommand(ctx context.Context, command string) (string, error) {
	if command == "" {
		if r.prompter == nil {
			return "", domain.ErrMissingCommand
		}
		value, err := r.prompter.Prompt(ctx, domain.Prompt{Name: domain.CommandPromptName})
		if err != nil {
			return "", fmt.Errorf("prompting for command: %w", err)
		}
		if strings.TrimSpace(value) == "" {
			return "", domain.ErrMissingCommand
		}
		command = value
	}

	if !placeholder.HasTokens(command) {
		return command, nil
	}
	if r.prompter == nil {
		return "", fmt.Errorf("%w: %s", domain.ErrUnresolvedPlaceholder, strings.Join(placeholder.Extract(command), ", "))
	}
	return resolver.Resolve(ctx, command, r.prompter)
}

// resolveCwd expands a `$name` working directory through the host variables.
// An unknown variable leaves the working directory unset.
func (r *Runner) resolveCwd(cwd string) string {
	name, ok := strings.CutPrefix(cwd, domain.CwdVariablePrefix)
	if !ok {
		return cwd
	}
	if r.variables == nil {
		r.logger.Debug("No variables available for cwd", "cwd", cwd)
		return ""
	}
	value, found := r.variables.Lookup(name)
	if !found {
		r.logger.Debug("Unknown cwd variable", "name", name)
		return ""
	}
	return value
}

func (r *Runner) regions(source domain.Source) []domain.Region {
	switch source {
	case domain.SourceSelection:
		sel := r.doc.Selections()
		sort.SliceStable(sel, func(i, j int) bool { return sel[i].Start < sel[j].Start })
		return sel
	case domain.SourceWindow:
		return []domain.Region{{Start: 0, End: r.doc.Size()}}
	default:
		return []domain.Region{domain.NullRegion}
	}
}

func (r *Runner) runRegion(ctx context.Context, args domain.CommandArguments, region domain.Region) RegionReport {
	rr := RegionReport{Region: region}

	stdin := r.doc.Slice(region)

	if r.hooks.OnExecStart != nil {
		r.hooks.OnExecStart(ctx, &domain.ExecEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventExecStart},
			Command:   args.Command,
			Region:    region,
		})
	}

	result, err := r.executor.Execute(ctx, domain.Request{
		Command: args.Command,
		Dir:     args.Cwd,
		Timeout: args.Deadline(),
		Stdin:   stdin,
	})

	if r.hooks.OnExecEnd != nil {
		ev := &domain.ExecEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventExecEnd},
			Command:   args.Command,
			Region:    region,
			Err:       err,
		}
		if result != nil {
			ev.RunID = result.RunID
			ev.ExitCode = result.ExitCode
			ev.Duration = result.Duration
		}
		r.hooks.OnExecEnd(ctx, ev)
	}

	if err != nil {
		rr.Err = err
		r.emitRoute(ctx, args, domain.OutcomeOf(err))
		return rr
	}
	rr.RunID = result.RunID

	outcome, err := router.Route(r.doc, router.Input{
		Region:  region,
		Stdin:   stdin,
		Command: args.Command,
		Target:  args.Target,
	}, result)
	rr.Outcome = outcome
	rr.Err = err

	label := outcome.Label
	if label == "" {
		label = domain.OutcomeOf(err)
	}
	r.emitRoute(ctx, args, label)
	return rr
}

func (r *Runner) emitRoute(ctx context.Context, args domain.CommandArguments, outcome string) {
	if r.hooks.OnRoute == nil {
		return
	}
	r.hooks.OnRoute(ctx, &domain.RouteEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRoute},
		Command:   args.Command,
		Target:    args.Target,
		Outcome:   outcome,
	})
}

func (r *Runner) notify(ctx context.Context, err error) {
	if r.notifier == nil {
		return
	}
	r.notifier.Error(ctx, err.Error())
}
