package tui

import (
	"errors"
	"testing"

	"github.com/aretw0/runcmd/internal/config"
	"github.com/aretw0/runcmd/pkg/resolver"
	"github.com/charmbracelet/glamour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLPreviewRenderer(t *testing.T) {
	step := resolver.Begin("grep ${arg_pattern|a<b} ${arg_pattern|a<b}")
	got := HTMLPreviewRenderer{}.RenderPreview(step.Preview("x&y"))

	assert.Equal(t,
		"<b><i>argument</i></b>: pattern<br><b><i>command preview</i></b>: grep <b>x&amp;y</b> <b>x&amp;y</b>",
		got)
}

func TestHTMLPreviewRenderer_EmptyValueShowsToken(t *testing.T) {
	step := resolver.Begin("echo ${arg_name}")
	got := HTMLPreviewRenderer{}.RenderPreview(step.Preview(""))
	assert.Contains(t, got, "echo <b>${arg_name}</b>")
}

func TestPresetsMarkdown(t *testing.T) {
	presets := []config.Preset{
		{
			Caption:     "Grep",
			Description: "Search the project",
			Args: map[string]any{
				"command": "grep -rn ${arg_pattern|TODO} .",
				"cwd":     "$folder",
			},
		},
		{Caption: "Ask", Args: map[string]any{}},
	}

	md := PresetsMarkdown(presets)
	assert.Contains(t, md, "## Grep")
	assert.Contains(t, md, "Search the project")
	assert.Contains(t, md, "grep -rn ${arg_pattern|TODO} .")
	assert.Contains(t, md, "- **cwd**: `$folder`")
	assert.Contains(t, md, "- **pattern** (default `TODO`)")
	assert.Contains(t, md, "_Command is asked when run._")

	assert.Equal(t, "No presets configured.\n", PresetsMarkdown(nil))
}

func TestRenderPresets(t *testing.T) {
	presets := []config.Preset{{Caption: "Sort", Args: map[string]any{"command": "sort"}}}

	t.Run("Glamour", func(t *testing.T) {
		out := RenderPresets(presets, NewRenderer(glamour.WithStandardStyle("notty")))
		assert.Contains(t, out, "Sort")
	})

	t.Run("Fallback", func(t *testing.T) {
		out := RenderPresets(presets, func(string) (string, error) { return "", errors.New("boom") })
		assert.Equal(t, PresetsMarkdown(presets), out)
	})

	t.Run("No Renderer", func(t *testing.T) {
		require.Equal(t, PresetsMarkdown(presets), RenderPresets(presets, nil))
	})
}
