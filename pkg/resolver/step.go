package resolver

import (
	"strings"

	"github.com/aretw0/runcmd/pkg/domain"
	"github.com/aretw0/runcmd/pkg/placeholder"
)

// State is the lifecycle position of a Step.
type State int

const (
	AwaitingValue State = iota
	Confirmed
)

func (s State) String() string {
	if s == Confirmed {
		return "confirmed"
	}
	return "awaiting_value"
}

// Step resolves a single placeholder of a template.
type Step struct {
	template string
	current  domain.Placeholder
	pending  []string
	index    int

	state State
	value string
}

// New builds the first step over tokens. It returns nil when there is nothing to resolve.
func New(template string, tokens []string) *Step {
	return newStep(template, tokens, 0)
}

// Begin extracts the tokens of template and builds the first step.
func Begin(template string) *Step {
	return New(template, placeholder.Extract(template))
}

// newStep skips leading tokens that no longer occur in template, which is
// the case for duplicates of an already confirmed token.
func newStep(template string, tokens []string, index int) *Step {
	for len(tokens) > 0 && !strings.Contains(template, tokens[0]) {
		tokens = tokens[1:]
	}
	if len(tokens) == 0 {
		return nil
	}
	pending := make([]string, len(tokens)-1)
	copy(pending, tokens[1:])
	return &Step{
		template: template,
		current:  placeholder.Parse(tokens[0]),
		pending:  pending,
		index:    index,
	}
}

// Token returns the raw placeholder being resolved.
func (s *Step) Token() string { return s.current.Token }

// Name returns the placeholder name, shown as the input placeholder text.
func (s *Step) Name() string { return s.current.Name }

// Default returns the value prefilled for the user.
func (s *Step) Default() string { return s.current.Default }

// Template returns the template as seen by this step.
func (s *Step) Template() string { return s.template }

// Remaining returns the tokens left after this one.
func (s *Step) Remaining() []string {
	out := make([]string, len(s.pending))
	copy(out, s.pending)
	return out
}

// Index is the position of this step in the chain, starting at 0.
func (s *Step) Index() int { return s.index }

// State returns the current lifecycle state.
func (s *Step) State() State { return s.state }

// Preview renders the template with every occurrence of the current token
// shown as candidate, or as the token itself when candidate is empty.
func (s *Step) Preview(candidate string) domain.Preview {
	shown := candidate
	if shown == "" {
		shown = s.current.Token
	}

	var segments []domain.Segment
	parts := strings.Split(s.template, s.current.Token)
	for i, part := range parts {
		if part != "" {
			segments = append(segments, domain.Segment{Text: part})
		}
		if i < len(parts)-1 {
			segments = append(segments, domain.Segment{Text: shown, Highlight: true})
		}
	}

	return domain.Preview{
		Argument: s.current.Name,
		Segments: segments,
	}
}

// Prompt describes this step for a host.
func (s *Step) Prompt() domain.Prompt {
	return domain.Prompt{
		Token:   s.current.Token,
		Name:    s.current.Name,
		Default: s.current.Default,
		Preview: s.Preview,
	}
}

// Confirm stores value verbatim and marks the step as confirmed.
func (s *Step) Confirm(value string) {
	s.value = value
	s.state = Confirmed
}

// Value returns the confirmed value.
func (s *Step) Value() (string, error) {
	if s.state != Confirmed {
		return "", domain.ErrNotConfirmed
	}
	return s.value, nil
}

// Command returns the template with the confirmed value applied.
func (s *Step) Command() (string, error) {
	value, err := s.Value()
	if err != nil {
		return "", err
	}
	return placeholder.Replace(s.template, s.current.Token, value), nil
}

// Advance returns the step for the next pending token, or nil once the chain is complete.
func (s *Step) Advance() (*Step, error) {
	command, err := s.Command()
	if err != nil {
		return nil, err
	}
	return newStep(command, s.pending, s.index+1), nil
}

// Resume confirms value on step and moves the chain forward.
// It returns the next step, or nil together with the finished command.
func Resume(step *Step, value string) (*Step, string, error) {
	step.Confirm(value)
	next, err := step.Advance()
	if err != nil {
		return nil, "", err
	}
	if next != nil {
		return next, "", nil
	}
	command, err := step.Command()
	return nil, command, err
}
