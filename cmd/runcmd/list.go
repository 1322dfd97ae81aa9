package main

import (
	"fmt"
	"os"

	"github.com/aretw0/runcmd/internal/presentation/tui"
	"github.com/aretw0/runcmd/pkg/adapters/terminal"
	"github.com/aretw0/runcmd/pkg/headless"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the configured presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		presets, err := presetsFor(cmd)
		if err != nil {
			return err
		}

		render := tui.NewRenderer()
		if !terminal.IsTerminal(os.Stdout) {
			render = tui.NewRenderer(glamour.WithStandardStyle("notty"))
		}
		fmt.Print(tui.RenderPresets(presets.Sorted(), render))
		return nil
	},
}

var placeholdersCmd = &cobra.Command{
	Use:   "placeholders COMMAND",
	Short: "Print the placeholders of a command line",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, p := range headless.Placeholders(args[0]) {
			fmt.Printf("%s\t%s\t%s\n", p.Name, p.Default, p.Token)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(placeholdersCmd)
}
