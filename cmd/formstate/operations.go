package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/openapi"
)

func operationsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "operations",
		Short: "List the operations of an OpenAPI document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.source.openapi == "" {
				return errors.New("--openapi is required")
			}
			data, err := os.ReadFile(a.source.openapi)
			if err != nil {
				return fmt.Errorf("read openapi document: %w", err)
			}
			ops, err := openapi.Operations(cmd.Context(), data)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
			for _, op := range ops {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", op.ID, op.Method, op.Path, op.Summary)
			}
			return w.Flush()
		},
	}
}
