package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPresets(t *testing.T) {
	t.Run("Missing File", func(t *testing.T) {
		presets, err := LoadPresets(filepath.Join(t.TempDir(), DefaultPresetsFile))
		require.NoError(t, err)
		assert.Empty(t, presets)
	})

	t.Run("YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "commands.yaml")
		content := `
commands:
  - caption: "Sort lines"
    args:
      command: "sort"
      source: "selection"
      target: "replace"
  - caption: "Grep"
    description: "Search the project"
    args:
      command: "grep -rn ${arg_pattern|TODO} ."
      cwd: "$folder"
      timeout: 5
  - args:
      command: "ignored without caption"
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		presets, err := LoadPresets(path)
		require.NoError(t, err)
		require.Len(t, presets, 2)

		grep, err := presets.Find("Grep")
		require.NoError(t, err)
		assert.Equal(t, "Search the project", grep.Description)
		assert.Equal(t, "grep -rn ${arg_pattern|TODO} .", grep.Args["command"])
		assert.Equal(t, 5, grep.Args["timeout"])

		sorted := presets.Sorted()
		assert.Equal(t, "Grep", sorted[0].Caption)
		assert.Equal(t, "Sort lines", sorted[1].Caption)
	})

	t.Run("JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "commands.json")
		content := `{"commands": [{"caption": "Echo", "args": {"command": "echo ${arg_x}", "${arg_x}": "hi"}}]}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		presets, err := LoadPresets(path)
		require.NoError(t, err)
		echo, err := presets.Find("Echo")
		require.NoError(t, err)
		assert.Equal(t, "hi", echo.Args["${arg_x}"])
	})

	t.Run("No Args", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "commands.yaml")
		require.NoError(t, os.WriteFile(path, []byte("commands:\n  - caption: Ask\n"), 0644))

		presets, err := LoadPresets(path)
		require.NoError(t, err)
		assert.NotNil(t, presets["Ask"].Args)
	})

	t.Run("Invalid", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "commands.yaml")
		require.NoError(t, os.WriteFile(path, []byte("commands: [unterminated"), 0644))
		_, err := LoadPresets(path)
		assert.Error(t, err)
	})

	t.Run("Unknown Caption", func(t *testing.T) {
		_, err := Presets{}.Find("nope")
		assert.Error(t, err)
	})
}
