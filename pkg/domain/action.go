package domain

import "strings"

// Segment is a piece of a rendered command preview.
// Highlighted segments mark where the current placeholder value lands.
type Segment struct {
	Text      string `json:"text"`
	Highlight bool   `json:"highlight,omitempty"`
}

// Preview is an advisory rendering of the command while a value is typed.
type Preview struct {
	Argument string    `json:"argument"`
	Segments []Segment `json:"segments"`
}

// Command joins the segments back into the command text.
func (p Preview) Command() string {
	var b strings.Builder
	for _, s := range p.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// String renders the preview as plain text.
func (p Preview) String() string {
	return "argument: " + p.Argument + "\ncommand preview: " + p.Command()
}

// Prompt describes one interactive round-trip with the host.
type Prompt struct {
	// Token is the raw placeholder, empty when the command itself is requested.
	Token string
	// Name is shown as the input placeholder text.
	Name string
	// Default is prefilled for the user.
	Default string
	// Preview renders the command with a candidate value. May be nil.
	Preview func(candidate string) Preview
}

// IsCommand reports whether the prompt asks for the command line itself.
func (p Prompt) IsCommand() bool {
	return p.Token == ""
}
