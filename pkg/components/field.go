package components

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
)

// Field is a mounted component bound to one provider key.
type Field interface {
	Key() string
	Mount() bool
	Render(ctx context.Context) (string, error)
	Input(value model.Value) bool
}

// Form mounts and renders a list of fields in order inside a form element
// carrying the provider's class name and the theme's CSS variables.
type Form struct {
	provider *form.Provider
	renderer *Renderer
	fields   []Field
	index    map[string]Field
}

// NewForm creates an empty container for p.
func NewForm(p *form.Provider, opts ...Option) *Form {
	o := applyOptions(opts)
	return &Form{provider: p, renderer: o.renderer, index: make(map[string]Field)}
}

// Provider returns the provider the fields are bound to.
func (f *Form) Provider() *form.Provider { return f.provider }

// Add appends fields. A second field with an existing key is rejected.
func (f *Form) Add(fields ...Field) error {
	for _, field := range fields {
		if field == nil {
			continue
		}
		key := field.Key()
		if _, exists := f.index[key]; exists {
			return fmt.Errorf("components: field %q already added: %w", key, form.ErrDuplicateKey)
		}
		f.index[key] = field
		f.fields = append(f.fields, field)
	}
	return nil
}

// Field returns the component for key.
func (f *Form) Field(key string) (Field, bool) {
	field, ok := f.index[key]
	return field, ok
}

// Fields returns the components in order.
func (f *Form) Fields() []Field {
	return append([]Field(nil), f.fields...)
}

// Mount mounts every field and returns how many ended up registered.
func (f *Form) Mount() int {
	mounted := 0
	for _, field := range f.fields {
		if field.Mount() {
			mounted++
		}
	}
	return mounted
}

// Render renders every field and wraps them in the form element.
func (f *Form) Render(ctx context.Context) (string, error) {
	r, err := resolveRenderer(f.renderer)
	if err != nil {
		return "", err
	}

	rendered := make([]string, 0, len(f.fields))
	for _, field := range f.fields {
		out, err := field.Render(ctx)
		if err != nil {
			return "", fmt.Errorf("components: field %q: %w", field.Key(), err)
		}
		rendered = append(rendered, strings.TrimSpace(out))
	}

	data := map[string]any{
		"fields":  rendered,
		"classes": []string{"fs-form", f.provider.ClassName()},
	}
	if cfg := r.Theme(); cfg != nil {
		data["theme"] = cfg.Theme
		data["variant"] = cfg.Variant
		data["style"] = cssVarsStyle(cfg.CSSVars)
		if cfg.AssetURL != nil {
			data["stylesheet"] = cfg.AssetURL(StylesheetAsset)
		}
	}
	return r.render(ctx, "form", data)
}
