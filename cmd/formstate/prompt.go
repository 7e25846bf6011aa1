package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/renderers/tui"
)

func promptCmd(a *app) *cobra.Command {
	var attempts int

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill the form in the terminal and print the submitted state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			if err := src.register(); err != nil {
				return err
			}

			driver := a.driver
			if driver == nil {
				driver = tui.SurveyDriver(a.stdout)
			}
			session, err := tui.New(src.provider,
				tui.WithPromptDriver(driver),
				tui.WithMaxAttempts(attempts),
				tui.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}

			format := src.provider.Format()
			ok, err := session.Run(cmd.Context(), func(_ context.Context, state form.Snapshot) error {
				payload, err := state.Encode(format)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.stdout, string(payload))
				return err
			})
			if errors.Is(err, tui.ErrAborted) {
				return nil
			}
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("form was not submitted")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&attempts, "attempts", tui.DefaultMaxAttempts, "prompts per field before giving up")
	return cmd
}
