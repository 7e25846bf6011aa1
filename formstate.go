// Package formstate re-exports the entry points most callers need: a form
// Provider, the component Form built over it, and loaders for definition
// files and OpenAPI operations.
package formstate

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-formstate/pkg/components"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/formfile"
	"github.com/goliatone/go-formstate/pkg/openapi"
)

// Provider aliases form.Provider.
type Provider = form.Provider

// Option aliases form.Option.
type Option = form.Option

// Snapshot aliases form.Snapshot.
type Snapshot = form.Snapshot

// Form aliases components.Form.
type Form = components.Form

// NewProvider builds a Provider.
func NewProvider(options ...Option) *Provider {
	return form.New(options...)
}

// NewForm builds an empty component Form over p.
func NewForm(p *Provider, options ...components.Option) *Form {
	return components.NewForm(p, options...)
}

// LoadForm reads a definition file and returns its mounted Form. The
// document settings are applied before options, so options win.
func LoadForm(path string, options ...Option) (*Form, error) {
	doc, err := formfile.LoadFile(path)
	if err != nil {
		return nil, err
	}
	defs, err := doc.Definitions()
	if err != nil {
		return nil, err
	}
	opts, err := doc.ProviderOptions()
	if err != nil {
		return nil, err
	}
	f, err := components.FormFromDefinitions(form.New(append(opts, options...)...), defs)
	if err != nil {
		return nil, err
	}
	f.Mount()
	return f, nil
}

// OpenAPIForm imports the request body of operationID and returns its
// mounted Form.
func OpenAPIForm(ctx context.Context, document []byte, operationID string, options ...Option) (*Form, error) {
	defs, err := openapi.Definitions(ctx, document, operationID)
	if err != nil {
		return nil, err
	}
	f, err := components.FormFromDefinitions(form.New(options...), defs)
	if err != nil {
		return nil, err
	}
	f.Mount()
	return f, nil
}

// EmbeddedTemplates exposes the built-in component templates.
func EmbeddedTemplates() fs.FS {
	return components.TemplatesFS()
}
