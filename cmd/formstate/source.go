package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goliatone/go-formstate/pkg/components"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/formfile"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/openapi"
	"github.com/goliatone/go-formstate/pkg/widgets"
)

type sourceFlags struct {
	file      string
	openapi   string
	operation string
	format    string
	className string
	debounce  time.Duration
}

// loaded is a provider plus the definitions it should hold.
type loaded struct {
	provider    *form.Provider
	definitions []model.Definition
}

// form builds the component tree over the loaded definitions.
func (l loaded) form() (*components.Form, error) {
	return widgets.NewRegistry().Form(l.provider, l.definitions)
}

// register adds every definition straight to the provider.
func (l loaded) register() error {
	for _, def := range l.definitions {
		if err := l.provider.Register(def); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) load(ctx context.Context, extra ...form.Option) (loaded, error) {
	src := a.source
	var (
		defs []model.Definition
		opts []form.Option
	)

	switch {
	case src.file != "" && src.openapi != "":
		return loaded{}, errors.New("use either --file or --openapi, not both")
	case src.file != "":
		doc, err := formfile.LoadFile(src.file)
		if err != nil {
			return loaded{}, err
		}
		if defs, err = doc.Definitions(); err != nil {
			return loaded{}, err
		}
		if opts, err = doc.ProviderOptions(); err != nil {
			return loaded{}, err
		}
	case src.openapi != "":
		if src.operation == "" {
			return loaded{}, errors.New("--operation is required with --openapi")
		}
		data, err := os.ReadFile(src.openapi)
		if err != nil {
			return loaded{}, fmt.Errorf("read openapi document: %w", err)
		}
		if defs, err = openapi.Definitions(ctx, data, src.operation); err != nil {
			return loaded{}, err
		}
	default:
		return loaded{}, errors.New("one of --file or --openapi is required")
	}

	// Flags override the document settings.
	if src.format != "" {
		format, err := form.ParseFormat(src.format)
		if err != nil {
			return loaded{}, err
		}
		opts = append(opts, form.WithSnapshotFormat(format))
	}
	if src.className != "" {
		opts = append(opts, form.WithClassName(src.className))
	}
	if src.debounce > 0 {
		opts = append(opts, form.WithDebounceDelay(src.debounce))
	}
	opts = append(opts, form.WithLogger(a.logger))
	opts = append(opts, extra...)

	return loaded{provider: form.New(opts...), definitions: defs}, nil
}
