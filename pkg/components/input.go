package components

import (
	"context"
	"sync/atomic"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
)

// Option configures a component.
type Option func(*options)

type options struct {
	renderer *Renderer
}

// WithRenderer renders the component through r instead of the shared
// default renderer.
func WithRenderer(r *Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// InputBox renders text, email, password, number, textarea, checkbox,
// button and submit fields.
type InputBox struct {
	provider *form.Provider
	renderer *Renderer
	props    InputProps

	passwordVisible atomic.Bool
}

var _ Field = (*InputBox)(nil)

// NewInputBox binds props to p. An empty kind renders as text.
func NewInputBox(p *form.Provider, props InputProps, opts ...Option) *InputBox {
	if props.Kind == "" {
		props.Kind = model.KindText
	}
	o := applyOptions(opts)
	return &InputBox{provider: p, renderer: o.renderer, props: props}
}

// Key returns the field key.
func (b *InputBox) Key() string { return b.props.Key }

// Kind returns the field kind.
func (b *InputBox) Kind() model.FieldKind { return b.props.Kind }

// Mount registers the field unless it is already registered. It reports
// whether the field is registered afterwards.
func (b *InputBox) Mount() bool {
	if b.provider.HasRegistered(b.props.Key) {
		return true
	}
	return b.provider.RegisterField(b.props.definition())
}

// Input forwards a new value to the provider. Checkboxes toggle regardless
// of value.
func (b *InputBox) Input(value model.Value) bool {
	return b.provider.UpdateField(b.props.Key, value)
}

// Disabled reports whether an action field is blocked by a field error.
func (b *InputBox) Disabled() bool {
	return b.provider.ActionDisabled(b.props.Kind)
}

// Click dispatches fn through the provider. A disabled button reports false
// and does not dispatch.
func (b *InputBox) Click(ctx context.Context, fn form.ClickFunc) (any, bool) {
	if b.Disabled() {
		return nil, false
	}
	return b.provider.HandleClick(ctx, fn), true
}

// Submit dispatches fn through the provider's submit path. It reports false
// when the control is disabled or fn fails.
func (b *InputBox) Submit(ctx context.Context, fn form.SubmitFunc) bool {
	if b.Disabled() {
		return false
	}
	return b.provider.HandleSubmit(ctx, fn)
}

// TogglePasswordVisibility flips the local visibility state and returns it.
// The registry is not involved.
func (b *InputBox) TogglePasswordVisibility() bool {
	for {
		current := b.passwordVisible.Load()
		if b.passwordVisible.CompareAndSwap(current, !current) {
			return !current
		}
	}
}

// PasswordVisible reports the local visibility state.
func (b *InputBox) PasswordVisible() bool {
	return b.passwordVisible.Load()
}

// Render draws the field from its current record. Until the field is
// registered the props supply the value.
func (b *InputBox) Render(ctx context.Context) (string, error) {
	r, err := resolveRenderer(b.renderer)
	if err != nil {
		return "", err
	}

	kind := b.props.Kind
	value := b.props.Value
	var message string
	if record, ok := b.provider.Field(b.props.Key); ok {
		value = record.Value
		message = record.Error
	}
	if kind == model.KindCheckbox && !b.provider.HasRegistered(b.props.Key) {
		value = model.StringValue(model.CheckboxFalse)
	}

	visible := b.passwordVisible.Load()
	inputType := kind.InputType()
	if kind == model.KindPassword && visible {
		inputType = string(model.KindText)
	}

	classes := []string{"fs-input", b.props.ClassName}
	switch {
	case kind.IsAction():
		classes = append(classes, "fs-input--action")
	case message != "":
		classes = append(classes, "fs-input--error")
	case !value.IsZero() && kind != model.KindCheckbox:
		classes = append(classes, "fs-input--valid")
	}
	disabled := b.Disabled()
	if disabled {
		classes = append(classes, "fs-input--disabled")
	}

	defaults := inputDefaults
	if kind == model.KindTextarea {
		defaults = textareaDefaults
	}

	toggleLabel := r.text(MessageShowPassword, "Show password")
	if visible {
		toggleLabel = r.text(MessageHidePassword, "Hide password")
	}

	return r.render(ctx, "input", map[string]any{
		"key":             b.props.Key,
		"id":              fieldID(b.props.Key),
		"kind":            string(kind),
		"type":            inputType,
		"textarea":        kind == model.KindTextarea,
		"password":        kind == model.KindPassword,
		"passwordVisible": visible,
		"toggleLabel":     toggleLabel,
		"required":        b.props.Required,
		"placeholder":     b.props.Placeholder,
		"value":           value.String(),
		"checked":         kind == model.KindCheckbox && value.String() == model.CheckboxTrue,
		"disabled":        disabled,
		"classes":         classes,
		"style":           b.props.inline(defaults),
		"showError":       kind != model.KindCheckbox,
		"error":           r.text(message, message),
	})
}

func resolveRenderer(r *Renderer) (*Renderer, error) {
	if r != nil {
		return r, nil
	}
	return defaultRenderer()
}

func fieldID(key string) string {
	return "fs-" + key
}
