package components

import (
	"fmt"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
)

// FromDefinition builds the component that renders def. The field is not
// mounted.
func FromDefinition(p *form.Provider, def model.Definition, opts ...Option) (Field, error) {
	switch d := def.(type) {
	case model.Validated:
		return NewInputBox(p, InputProps{
			Key:         d.Key,
			Kind:        d.Kind,
			Required:    d.Required,
			Value:       d.Value,
			Placeholder: d.Placeholder,
			ErrorText:   d.DefaultErrorText,
			Validate:    d.Validate,
		}, opts...), nil
	case model.Choice:
		props := ChoiceProps{
			Key:      d.Key,
			Required: d.Required,
			Value:    d.Value,
			Options:  d.Options,
		}
		if d.Kind == model.KindRadio {
			return NewRadioButton(p, props, opts...), nil
		}
		return NewDropDown(p, props, opts...), nil
	case nil:
		return nil, fmt.Errorf("components: %w: nil definition", model.ErrInvalidDefinition)
	default:
		return nil, fmt.Errorf("components: %w: unsupported definition %T", model.ErrInvalidDefinition, def)
	}
}

// FormFromDefinitions builds a Form holding one component per definition,
// in order.
func FormFromDefinitions(p *form.Provider, defs []model.Definition, opts ...Option) (*Form, error) {
	f := NewForm(p, opts...)
	for _, def := range defs {
		field, err := FromDefinition(p, def, opts...)
		if err != nil {
			return nil, err
		}
		if err := f.Add(field); err != nil {
			return nil, err
		}
	}
	return f, nil
}
