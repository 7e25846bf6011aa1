package components

import (
	"context"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
)

type choice struct {
	provider *form.Provider
	renderer *Renderer
	props    ChoiceProps
	kind     model.FieldKind
}

func (c *choice) Key() string { return c.props.Key }

// Mount registers the field unless it is already registered and reports
// whether it is registered afterwards.
func (c *choice) Mount() bool {
	if c.provider.HasRegistered(c.props.Key) {
		return true
	}
	return c.provider.RegisterField(c.props.definition(c.kind))
}

// Input selects value. Choice fields never toggle or validate.
func (c *choice) Input(value model.Value) bool {
	return c.provider.UpdateField(c.props.Key, value)
}

// Select is Input for a plain option string.
func (c *choice) Select(option string) bool {
	return c.Input(model.StringValue(option))
}

func (c *choice) state() (value string, options []string) {
	options = c.props.Options
	if record, ok := c.provider.Field(c.props.Key); ok {
		return record.Value.String(), record.Options
	}
	return "", options
}

// DropDown renders a select element with a disabled placeholder option.
type DropDown struct {
	choice
}

var _ Field = (*DropDown)(nil)

// NewDropDown binds props to p.
func NewDropDown(p *form.Provider, props ChoiceProps, opts ...Option) *DropDown {
	o := applyOptions(opts)
	return &DropDown{choice{provider: p, renderer: o.renderer, props: props, kind: model.KindDropdown}}
}

// Render draws the select with the current selection.
func (d *DropDown) Render(ctx context.Context) (string, error) {
	r, err := resolveRenderer(d.renderer)
	if err != nil {
		return "", err
	}
	value, options := d.state()
	return r.render(ctx, "dropdown", map[string]any{
		"key":              d.props.Key,
		"id":               fieldID(d.props.Key),
		"value":            value,
		"options":          options,
		"required":         d.props.Required,
		"placeholderLabel": r.text(MessageSelectOption, "Select an option"),
		"classes":          []string{"fs-select", d.props.ClassName},
		"style":            d.props.inline(selectDefaults),
	})
}

// RadioButton renders one radio input per option, all sharing the field key
// as their name.
type RadioButton struct {
	choice
}

var _ Field = (*RadioButton)(nil)

// NewRadioButton binds props to p.
func NewRadioButton(p *form.Provider, props ChoiceProps, opts ...Option) *RadioButton {
	o := applyOptions(opts)
	return &RadioButton{choice{provider: p, renderer: o.renderer, props: props, kind: model.KindRadio}}
}

// Render draws the radio group. Without a ClassName the group stacks its
// options vertically.
func (b *RadioButton) Render(ctx context.Context) (string, error) {
	r, err := resolveRenderer(b.renderer)
	if err != nil {
		return "", err
	}
	value, options := b.state()
	classes := []string{b.props.ClassName}
	if b.props.ClassName == "" {
		classes = []string{"fs-radio-group", "fs-radio-group--stacked"}
	}
	return r.render(ctx, "radio", map[string]any{
		"key":      b.props.Key,
		"value":    value,
		"options":  options,
		"required": b.props.Required,
		"classes":  classes,
		"style":    b.props.inline(nil),
	})
}
