package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func renderCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the form markup",
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			f, err := src.form()
			if err != nil {
				return err
			}
			f.Mount()
			markup, err := f.Render(cmd.Context())
			if err != nil {
				return err
			}
			markup = strings.TrimSpace(markup) + "\n"

			if output == "" {
				_, err = fmt.Fprint(a.stdout, markup)
				return err
			}
			if err := os.WriteFile(output, []byte(markup), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(a.stdout, "Form written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
