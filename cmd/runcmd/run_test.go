package main

import (
	"testing"

	"github.com/aretw0/runcmd/internal/config"
	"github.com/aretw0/runcmd/pkg/domain"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRunFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "run"}
	addRunFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestParseArg(t *testing.T) {
	tests := []struct {
		pair  string
		token string
		value string
		fails bool
	}{
		{pair: "${arg_name}=hi", token: "${arg_name}", value: "hi"},
		{pair: "${arg_x|a=b}=c=d", token: "${arg_x|a=b}", value: "c=d"},
		{pair: "${arg_empty}=", token: "${arg_empty}", value: ""},
		{pair: "name=hi", fails: true},
		{pair: "${name}=hi", fails: true},
	}
	for _, tt := range tests {
		t.Run(tt.pair, func(t *testing.T) {
			token, value, err := parseArg(tt.pair)
			if tt.fails {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.token, token)
			assert.Equal(t, tt.value, value)
		})
	}
}

func TestParseSelections(t *testing.T) {
	regions, err := parseSelections([]string{"0:3", "5:5"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Region{{Start: 0, End: 3}, {Start: 5, End: 5}}, regions)

	for _, bad := range []string{"3", "a:b", "4:2", "-1:2"} {
		_, err := parseSelections([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestBuildArgs(t *testing.T) {
	presets := config.Presets{
		"Grep": {Caption: "Grep", Args: map[string]any{"command": "grep ${arg_p}", "target": "window"}},
	}

	t.Run("Preset With Overrides", func(t *testing.T) {
		cmd := newRunFlags(t, "--preset", "Grep", "--target", "none", "--arg", "${arg_p}=TODO", "--timeout", "2")
		kwargs, err := buildArgs(cmd, presets)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"command":  "grep ${arg_p}",
			"target":   "none",
			"timeout":  2.0,
			"${arg_p}": "TODO",
		}, kwargs)
	})

	t.Run("Defaults Are Left To The Runner", func(t *testing.T) {
		cmd := newRunFlags(t, "--command", "ls")
		kwargs, err := buildArgs(cmd, presets)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"command": "ls"}, kwargs)
	})

	t.Run("Unknown Preset", func(t *testing.T) {
		cmd := newRunFlags(t, "--preset", "Nope")
		_, err := buildArgs(cmd, presets)
		assert.Error(t, err)
	})
}
