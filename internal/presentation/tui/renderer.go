package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/runcmd/internal/config"
	"github.com/aretw0/runcmd/pkg/placeholder"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer(opts ...glamour.TermRendererOption) func(string) (string, error) {
	if len(opts) == 0 {
		opts = []glamour.TermRendererOption{glamour.WithAutoStyle()}
	}
	r, err := glamour.NewTermRenderer(opts...)

	return func(markdown string) (string, error) {
		if err != nil {
			return markdown, err
		}
		return r.Render(markdown)
	}
}

// PresetsMarkdown describes the presets as a markdown document.
func PresetsMarkdown(presets []config.Preset) string {
	if len(presets) == 0 {
		return "No presets configured.\n"
	}

	var b strings.Builder
	b.WriteString("# Presets\n")
	for _, p := range presets {
		fmt.Fprintf(&b, "\n## %s\n\n", p.Caption)
		if p.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", p.Description)
		}

		command, _ := p.Args["command"].(string)
		if command == "" {
			b.WriteString("_Command is asked when run._\n")
		} else {
			fmt.Fprintf(&b, "```sh\n%s\n```\n", command)
		}

		for _, key := range []string{"source", "target", "cwd", "timeout"} {
			if v, ok := p.Args[key]; ok {
				fmt.Fprintf(&b, "- **%s**: `%v`\n", key, v)
			}
		}
		for _, ph := range placeholder.ParseAll(command) {
			if ph.Default != "" {
				fmt.Fprintf(&b, "- **%s** (default `%s`)\n", ph.Name, ph.Default)
			} else {
				fmt.Fprintf(&b, "- **%s**\n", ph.Name)
			}
		}
	}
	return b.String()
}

// RenderPresets renders the preset list with render, falling back to the
// raw markdown when rendering fails.
func RenderPresets(presets []config.Preset, render func(string) (string, error)) string {
	md := PresetsMarkdown(presets)
	if render == nil {
		return md
	}
	out, err := render(md)
	if err != nil {
		return md
	}
	return out
}
