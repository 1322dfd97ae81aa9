package runcmd

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/aretw0/runcmd/pkg/adapters/memory"
	"github.com/aretw0/runcmd/pkg/domain"
	"github.com/aretw0/runcmd/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExecutor answers each request with the next scripted response.
type fakeExecutor struct {
	mu        sync.Mutex
	requests  []domain.Request
	responses []fakeResponse
}

type fakeResponse struct {
	result *domain.Result
	err    error
}

func (f *fakeExecutor) Execute(ctx context.Context, req domain.Request) (*domain.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if len(f.responses) == 0 {
		return &domain.Result{RunID: "run", Stdout: req.Stdin}, nil
	}
	next := f.responses[0]
	f.responses = f.responses[1:]
	return next.result, next.err
}

func upper(stdin string) fakeResponse {
	return fakeResponse{result: &domain.Result{RunID: "run", Stdout: []byte(strings.ToUpper(stdin))}}
}

func TestRun_Regions(t *testing.T) {
	t.Run("Selection Runs Once Per Region And Shifts Offsets", func(t *testing.T) {
		doc := memory.NewDocument("ab cd ef",
			domain.Region{Start: 0, End: 2},
			domain.Region{Start: 6, End: 8},
		)
		exec := &fakeExecutor{responses: []fakeResponse{
			{result: &domain.Result{Stdout: []byte("ABAB")}},
			upper("ef"),
		}}

		report, err := New(doc, WithExecutor(exec)).Run(context.Background(), map[string]any{"command": "f"})
		require.NoError(t, err)

		require.Len(t, exec.requests, 2)
		assert.Equal(t, "ab", string(exec.requests[0].Stdin))
		assert.Equal(t, "ef", string(exec.requests[1].Stdin))
		assert.Equal(t, "ABAB cd EF", doc.Text())

		require.Len(t, report.Regions, 2)
		assert.Equal(t, domain.Region{Start: 8, End: 10}, report.Regions[1].Region)
	})

	t.Run("No Selection Runs Nothing", func(t *testing.T) {
		exec := &fakeExecutor{}
		report, err := New(memory.NewDocument("abc"), WithExecutor(exec)).Run(context.Background(), map[string]any{"command": "f"})
		require.NoError(t, err)
		assert.Empty(t, exec.requests)
		assert.Empty(t, report.Regions)
	})

	t.Run("Window Feeds The Whole Document", func(t *testing.T) {
		doc := memory.NewDocument("line1\nline2\n")
		exec := &fakeExecutor{}
		_, err := New(doc, WithExecutor(exec)).Run(context.Background(), map[string]any{"command": "f", "source": "window"})
		require.NoError(t, err)
		require.Len(t, exec.requests, 1)
		assert.Equal(t, "line1\nline2\n", string(exec.requests[0].Stdin))
	})

	t.Run("None Feeds Empty Input", func(t *testing.T) {
		doc := memory.NewDocument("abc", domain.Region{Start: 0, End: 3})
		exec := &fakeExecutor{responses: []fakeResponse{{result: &domain.Result{Stdout: []byte("x")}}}}
		_, err := New(doc, WithExecutor(exec)).Run(context.Background(), map[string]any{"command": "f", "source": "none"})
		require.NoError(t, err)
		require.Len(t, exec.requests, 1)
		assert.Empty(t, exec.requests[0].Stdin)
		assert.Equal(t, "abc", doc.Text(), "null region is never replaced")
	})
}

func TestRun_FailurePolicy(t *testing.T) {
	selections := []domain.Region{{Start: 0, End: 1}, {Start: 2, End: 3}, {Start: 4, End: 5}}

	t.Run("Region Failures Continue", func(t *testing.T) {
		doc := memory.NewDocument("a b c", selections...)
		notifier := &memory.Notifier{}
		exec := &fakeExecutor{responses: []fakeResponse{
			{err: &domain.TimeoutError{Command: "f"}},
			{result: &domain.Result{Stdout: []byte("B"), Stderr: []byte("warn")}},
			upper("c"),
		}}

		report, err := New(doc, WithExecutor(exec), WithNotifier(notifier)).Run(context.Background(), map[string]any{"command": "f"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrTimedOut)
		assert.ErrorIs(t, err, domain.ErrStderr)

		assert.Len(t, exec.requests, 3)
		assert.Equal(t, "a b C", doc.Text())
		assert.Equal(t, []string{"The command 'f' has timed out.", "warn"}, notifier.Messages())
		assert.True(t, report.Failed())
	})

	t.Run("Spawn Error Aborts", func(t *testing.T) {
		doc := memory.NewDocument("a b c", selections...)
		notifier := &memory.Notifier{}
		exec := &fakeExecutor{responses: []fakeResponse{
			{err: &domain.SpawnError{Command: "f", Err: errors.New("permission denied")}},
		}}

		report, err := New(doc, WithExecutor(exec), WithNotifier(notifier)).Run(context.Background(), map[string]any{"command": "f"})
		assert.ErrorIs(t, err, domain.ErrSpawn)
		assert.Len(t, exec.requests, 1)
		assert.Len(t, report.Regions, 1)
		assert.Equal(t, []string{"permission denied"}, notifier.Messages())
	})
}

func TestRun_Arguments(t *testing.T) {
	t.Run("Leftover Tokens Are Substituted", func(t *testing.T) {
		exec := &fakeExecutor{}
		report, err := New(memory.NewDocument(""), WithExecutor(exec)).Run(context.Background(), map[string]any{
			"command":    "echo ${arg_x} ${arg_x} ${arg_y|d}",
			"source":     "none",
			"${arg_x}":   "5",
			"${arg_y|d}": "z",
		})
		require.NoError(t, err)
		assert.Equal(t, "echo 5 5 z", report.Arguments.Command)
		assert.Equal(t, "echo 5 5 z", exec.requests[0].Command)
	})

	t.Run("Timeout Is Forwarded", func(t *testing.T) {
		exec := &fakeExecutor{}
		_, err := New(memory.NewDocument(""), WithExecutor(exec)).Run(context.Background(), map[string]any{
			"command": "f", "source": "none", "timeout": 2,
		})
		require.NoError(t, err)
		assert.Equal(t, "2s", exec.requests[0].Timeout.String())
	})

	t.Run("Cwd Variable", func(t *testing.T) {
		exec := &fakeExecutor{}
		runner := New(memory.NewDocument(""), WithExecutor(exec), WithVariables(ports.VariableMap{"folder": "/work"}))

		_, err := runner.Run(context.Background(), map[string]any{"command": "f", "source": "none", "cwd": "$folder"})
		require.NoError(t, err)
		_, err = runner.Run(context.Background(), map[string]any{"command": "f", "source": "none", "cwd": "$missing"})
		require.NoError(t, err)
		_, err = runner.Run(context.Background(), map[string]any{"command": "f", "source": "none", "cwd": "/literal"})
		require.NoError(t, err)

		require.Len(t, exec.requests, 3)
		assert.Equal(t, "/work", exec.requests[0].Dir)
		assert.Equal(t, "", exec.requests[1].Dir)
		assert.Equal(t, "/literal", exec.requests[2].Dir)
	})

	t.Run("Invalid Arguments", func(t *testing.T) {
		runner := New(memory.NewDocument(""), WithExecutor(&fakeExecutor{}))

		_, err := runner.Run(context.Background(), map[string]any{"command": "f", "bogus": 1})
		assert.ErrorIs(t, err, domain.ErrUnknownArgument)

		_, err = runner.Run(context.Background(), map[string]any{})
		assert.ErrorIs(t, err, domain.ErrMissingCommand)

		_, err = runner.Run(context.Background(), map[string]any{"command": "echo ${arg_x}"})
		assert.ErrorIs(t, err, domain.ErrUnresolvedPlaceholder)
	})
}

func TestRun_Interactive(t *testing.T) {
	t.Run("Prompts For Command And Placeholders", func(t *testing.T) {
		var asked []domain.Prompt
		prompter := ports.PromptFunc(func(ctx context.Context, p domain.Prompt) (string, error) {
			asked = append(asked, p)
			if p.IsCommand() {
				return "echo ${arg_name|you}", nil
			}
			return "hi", nil
		})
		exec := &fakeExecutor{}
		report, err := New(memory.NewDocument(""), WithExecutor(exec), WithPrompter(prompter)).
			Run(context.Background(), map[string]any{"source": "none"})
		require.NoError(t, err)

		require.Len(t, asked, 2)
		assert.Equal(t, domain.CommandPromptName, asked[0].Name)
		assert.Equal(t, "name", asked[1].Name)
		assert.Equal(t, "you", asked[1].Default)
		assert.Equal(t, "echo hi", report.Arguments.Command)
	})

	t.Run("Blank Command Is Missing", func(t *testing.T) {
		prompter := ports.PromptFunc(func(ctx context.Context, p domain.Prompt) (string, error) { return "  ", nil })
		_, err := New(memory.NewDocument(""), WithPrompter(prompter)).Run(context.Background(), nil)
		assert.ErrorIs(t, err, domain.ErrMissingCommand)
	})
}

func TestRun_Hooks(t *testing.T) {
	var events []domain.EventType
	var outcomes []string
	hooks := domain.LifecycleHooks{
		OnExecStart: func(ctx context.Context, e *domain.ExecEvent) { events = append(events, e.Type) },
		OnExecEnd:   func(ctx context.Context, e *domain.ExecEvent) { events = append(events, e.Type) },
		OnRoute: func(ctx context.Context, e *domain.RouteEvent) {
			events = append(events, e.Type)
			outcomes = append(outcomes, e.Outcome)
		},
	}
	doc := memory.NewDocument("ab", domain.Region{Start: 0, End: 1}, domain.Region{Start: 1, End: 2})
	exec := &fakeExecutor{responses: []fakeResponse{upper("a"), {err: &domain.TimeoutError{Command: "f"}}}}

	_, err := New(doc, WithExecutor(exec), WithLifecycleHooks(hooks)).Run(context.Background(), map[string]any{"command": "f"})
	require.Error(t, err)

	assert.Equal(t, []domain.EventType{
		domain.EventExecStart, domain.EventExecEnd, domain.EventRoute,
		domain.EventExecStart, domain.EventExecEnd, domain.EventRoute,
	}, events)
	assert.Equal(t, []string{domain.OutcomeSuccess, domain.OutcomeTimeout}, outcomes)
}
