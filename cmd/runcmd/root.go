package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/runcmd/internal/config"
	"github.com/aretw0/runcmd/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "runcmd",
	Short: "runcmd runs shell commands over a text buffer",
	Long: `runcmd runs a shell command with the selected text as its input and puts the
output back in place, in a new document, or nowhere.

Commands may contain ${arg_name|default} placeholders that are asked for before
the command runs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errRegionsFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().String("presets", config.DefaultPresetsFile, "Presets file (YAML or JSON)")
}

func loggerFor(cmd *cobra.Command) *slog.Logger {
	debug, _ := cmd.Flags().GetBool("debug")
	return logging.ForDebug(os.Stderr, debug)
}

func presetsFor(cmd *cobra.Command) (config.Presets, error) {
	path, _ := cmd.Flags().GetString("presets")
	return config.LoadPresets(path)
}
