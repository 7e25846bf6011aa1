package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/renderers/tui"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

// app carries the streams and seams shared by every subcommand.
type app struct {
	stdout io.Writer
	stderr io.Writer
	driver tui.PromptDriver
	logger *slog.Logger

	source   sourceFlags
	logLevel string
}

func main() {
	a := &app{stdout: os.Stdout, stderr: os.Stderr}
	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "formstate",
		Short: "Render, prompt and serve forms backed by a shared form state",
		Long: `formstate loads field definitions from a form file (YAML or JSON) or
from an OpenAPI operation's request body and drives them through a form
provider: render the markup, fill the form in the terminal, or serve it
over HTTP.`,
		Version:       version + " (" + commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := parseLevel(a.logLevel)
			if err != nil {
				return err
			}
			a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
			return nil
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.source.file, "file", "f", "", "form definition file (yaml or json)")
	flags.StringVar(&a.source.openapi, "openapi", "", "OpenAPI document to import fields from")
	flags.StringVar(&a.source.operation, "operation", "", "OpenAPI operation ID (with --openapi)")
	flags.StringVar(&a.source.format, "format", "", "snapshot format: json, yaml, form or text")
	flags.StringVar(&a.source.className, "class", "", "form class name")
	flags.DurationVar(&a.source.debounce, "debounce", 0, "validation debounce delay")
	flags.StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	root.AddCommand(
		renderCmd(a),
		promptCmd(a),
		serveCmd(a),
		operationsCmd(a),
	)
	return root
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return 0, fmt.Errorf("invalid --log-level %q", raw)
	}
	return level, nil
}
