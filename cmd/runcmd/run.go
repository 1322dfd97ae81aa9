package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/aretw0/runcmd"
	"github.com/aretw0/runcmd/internal/config"
	"github.com/aretw0/runcmd/pkg/adapters/file"
	"github.com/aretw0/runcmd/pkg/adapters/memory"
	"github.com/aretw0/runcmd/pkg/adapters/terminal"
	"github.com/aretw0/runcmd/pkg/domain"
	"github.com/aretw0/runcmd/pkg/placeholder"
	"github.com/aretw0/runcmd/pkg/ports"
	"github.com/spf13/cobra"
)

// errRegionsFailed signals a non-zero exit after the notifier already reported why.
var errRegionsFailed = errors.New("one or more regions failed")

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a command over a file or standard input",
	Long: `Runs a shell command once per selected region and routes its output.

Without --file the document is read from standard input and the result is
written to standard output. Without --select the document has a single
cursor at offset 0, as an editor would.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := loggerFor(cmd)

		presets, err := presetsFor(cmd)
		if err != nil {
			return err
		}
		kwargs, err := buildArgs(cmd, presets)
		if err != nil {
			return err
		}

		selections, err := parseSelections(mustStringArray(cmd, "select"))
		if err != nil {
			return err
		}
		if len(selections) == 0 {
			selections = []domain.Region{{Start: 0, End: 0}}
		}

		path, _ := cmd.Flags().GetString("file")
		inPlace, _ := cmd.Flags().GetBool("in-place")
		useDefaults, _ := cmd.Flags().GetBool("defaults")
		if inPlace && path == "" {
			return fmt.Errorf("--in-place requires --file")
		}

		var (
			doc     ports.Document
			text    func() string
			outputs func() []memory.Output
			save    func() error
		)
		stdinIsDocument := path == ""
		if path != "" {
			fd, err := file.Load(path, selections...)
			if err != nil {
				return err
			}
			fd.Output = os.Stdout
			doc, text, save = fd, fd.Text, fd.Save
		} else {
			data := []byte{}
			if !terminal.IsTerminal(os.Stdin) {
				if data, err = io.ReadAll(os.Stdin); err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
			}
			for _, r := range selections {
				if r.End > len(data) {
					return fmt.Errorf("selection [%d,%d) out of bounds (size %d)", r.Start, r.End, len(data))
				}
			}
			md := memory.NewDocument(string(data), selections...)
			doc, text, outputs = md, md.Text, md.Outputs
		}

		opts := []runcmd.Option{
			runcmd.WithLogger(logger),
			runcmd.WithNotifier(terminal.NewNotifier(os.Stderr)),
			runcmd.WithVariables(file.NewVariables(path)),
		}
		if useDefaults || stdinIsDocument || !terminal.IsTerminal(os.Stdin) {
			opts = append(opts, runcmd.WithPrompter(terminal.DefaultsPrompter{}))
		} else {
			var popts []terminal.PrompterOption
			if terminal.IsTerminal(os.Stderr) {
				popts = append(popts, terminal.WithPreviewRenderer(terminal.NewPreviewRenderer(os.Stderr)))
			}
			opts = append(opts, runcmd.WithPrompter(terminal.NewPrompter(os.Stdin, os.Stderr, popts...)))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		before := text()
		report, err := runcmd.New(doc, opts...).Run(ctx, kwargs)
		if report == nil {
			return err
		}

		if outputs != nil {
			for _, out := range outputs() {
				fmt.Printf("==> %s <==\n%s", out.Name, out.Text)
			}
		}

		after := text()
		switch {
		case inPlace:
			if after != before {
				if err := save(); err != nil {
					return err
				}
			}
		case after != before:
			fmt.Print(after)
		}

		if report.Failed() {
			return errRegionsFailed
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	addRunFlags(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("command", "c", "", "Command line, may contain ${arg_name|default} placeholders")
	cmd.Flags().String("cwd", "", "Working directory, or $name of a variable such as $folder")
	cmd.Flags().Float64("timeout", domain.DefaultTimeoutSeconds, "Timeout in seconds")
	cmd.Flags().String("source", string(domain.SourceSelection), "Input: selection, window or none")
	cmd.Flags().String("target", string(domain.TargetSelection), "Output: selection, window or none")
	cmd.Flags().StringArray("arg", nil, "Placeholder value as TOKEN=VALUE (repeatable)")
	cmd.Flags().StringP("preset", "p", "", "Start from the preset with this caption")
	cmd.Flags().StringP("file", "f", "", "File to operate on")
	cmd.Flags().StringArray("select", nil, "Selected region as START:END byte offsets (repeatable)")
	cmd.Flags().BoolP("in-place", "i", false, "Save replacements back to --file")
	cmd.Flags().Bool("defaults", false, "Answer every placeholder with its default")
}

// buildArgs layers explicit flags over the chosen preset.
func buildArgs(cmd *cobra.Command, presets config.Presets) (map[string]any, error) {
	kwargs := map[string]any{}

	if caption, _ := cmd.Flags().GetString("preset"); caption != "" {
		preset, err := presets.Find(caption)
		if err != nil {
			return nil, err
		}
		for k, v := range preset.Args {
			kwargs[k] = v
		}
	}

	for _, key := range []string{domain.KeyCommand, domain.KeyCwd, domain.KeySource, domain.KeyTarget} {
		if cmd.Flags().Changed(key) {
			v, _ := cmd.Flags().GetString(key)
			kwargs[key] = v
		}
	}
	if cmd.Flags().Changed(domain.KeyTimeout) {
		v, _ := cmd.Flags().GetFloat64(domain.KeyTimeout)
		kwargs[domain.KeyTimeout] = v
	}

	for _, pair := range mustStringArray(cmd, "arg") {
		token, value, err := parseArg(pair)
		if err != nil {
			return nil, err
		}
		kwargs[token] = value
	}
	return kwargs, nil
}

// parseArg splits TOKEN=VALUE on the first '=' after the token's closing brace.
func parseArg(pair string) (string, string, error) {
	end := strings.Index(pair, "}=")
	if end < 0 {
		return "", "", fmt.Errorf("invalid --arg %q: expected ${arg_name}=value", pair)
	}
	token := pair[:end+1]
	if !placeholder.IsToken(token) {
		return "", "", fmt.Errorf("invalid --arg %q: %q is not a placeholder", pair, token)
	}
	return token, pair[end+2:], nil
}

func parseSelections(values []string) ([]domain.Region, error) {
	regions := make([]domain.Region, 0, len(values))
	for _, value := range values {
		startStr, endStr, ok := strings.Cut(value, ":")
		if !ok {
			return nil, fmt.Errorf("invalid --select %q: expected START:END", value)
		}
		start, err := strconv.Atoi(startStr)
		if err != nil {
			return nil, fmt.Errorf("invalid --select %q: %w", value, err)
		}
		end, err := strconv.Atoi(endStr)
		if err != nil {
			return nil, fmt.Errorf("invalid --select %q: %w", value, err)
		}
		if start < 0 || end < start {
			return nil, fmt.Errorf("invalid --select %q: negative or reversed region", value)
		}
		regions = append(regions, domain.Region{Start: start, End: end})
	}
	return regions, nil
}

func mustStringArray(cmd *cobra.Command, name string) []string {
	v, _ := cmd.Flags().GetStringArray(name)
	return v
}
