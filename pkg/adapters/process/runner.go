package process

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"time"

	"github.com/aretw0/runcmd/internal/logging"
	"github.com/aretw0/runcmd/pkg/domain"
	"github.com/google/uuid"
)

// DefaultDrainDelay bounds the final drain of a killed process' pipes.
const DefaultDrainDelay = 2 * time.Second

// Runner executes command lines through the system shell.
// The command string is handed to the shell as-is, no argument splitting happens here.
type Runner struct {
	shell      string
	shellFlag  string
	env        []string
	drainDelay time.Duration
	logger     *slog.Logger
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithShell overrides the shell binary and the flag that introduces the command line.
func WithShell(shell, flag string) RunnerOption {
	return func(r *Runner) {
		r.shell = shell
		r.shellFlag = flag
	}
}

// WithEnv appends KEY=VALUE pairs to the inherited environment.
func WithEnv(env ...string) RunnerOption {
	return func(r *Runner) {
		r.env = append(r.env, env...)
	}
}

// WithDrainDelay sets how long Execute waits for output pipes after a kill.
func WithDrainDelay(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.drainDelay = d
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a new Process Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		shell:      defaultShell,
		shellFlag:  defaultShellFlag,
		drainDelay: DefaultDrainDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	return r
}

// Execute runs req.Command, feeding req.Stdin and waiting for exit or req.Timeout.
//
// On timeout the whole process group is killed, whatever is left in the pipes
// is discarded and a *domain.TimeoutError is returned. A process that cannot
// be started yields a *domain.SpawnError. The exit code of a completed run is
// recorded but not interpreted.
func (r *Runner) Execute(ctx context.Context, req domain.Request) (*domain.Result, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultTimeoutSeconds * time.Second
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	runID := uuid.New().String()
	logger := r.logger.With("run_id", runID, "command", req.Command)

	cmd := exec.CommandContext(runCtx, r.shell, r.shellFlag, req.Command)
	cmd.Dir = req.Dir
	if len(r.env) > 0 {
		cmd.Env = append(cmd.Environ(), r.env...)
	}
	cmd.Stdin = bytes.NewReader(req.Stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	killProcessGroup(cmd)
	cmd.WaitDelay = r.drainDelay

	logger.Debug("Executing command", "dir", req.Dir, "timeout", timeout, "stdin_bytes", len(req.Stdin))

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if ctx.Err() != nil {
		logger.Debug("Command cancelled", "error", ctx.Err())
		return nil, ctx.Err()
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		logger.Warn("Command timed out", "timeout", timeout)
		return nil, &domain.TimeoutError{Command: req.Command, Timeout: timeout}
	}

	exitCode := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(runErr, &exitErr):
			exitCode = exitErr.ExitCode()
		case errors.Is(runErr, exec.ErrWaitDelay):
			// The shell exited but a background child kept the pipes open.
			logger.Debug("Output pipes closed after wait delay")
		default:
			logger.Error("Command could not be executed", "error", runErr)
			return nil, &domain.SpawnError{Command: req.Command, Err: runErr}
		}
	}

	logger.Debug("Command finished",
		"exit_code", exitCode,
		"duration", elapsed,
		"stdout_bytes", stdout.Len(),
		"stderr_bytes", stderr.Len(),
	)

	return &domain.Result{
		RunID:    runID,
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: exitCode,
		Duration: elapsed,
	}, nil
}
