package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDefinition reports a definition that is missing a field its
// shape requires.
var ErrInvalidDefinition = errors.New("model: invalid field definition")

// Predicate reports whether a value is acceptable.
type Predicate func(Value) bool

// Definition describes a field to register. The interface is sealed: only
// Validated and Choice implement it.
type Definition interface {
	FieldKey() string
	FieldKind() FieldKind
	// Check reports missing preconditions wrapped in ErrInvalidDefinition.
	Check() error
	// Record builds the initial record for the definition.
	Record() FieldRecord
	sealed()
}

// Validated is a free-input field checked by a predicate.
type Validated struct {
	Key              string
	Required         bool
	Value            Value
	Kind             FieldKind
	Placeholder      string
	DefaultErrorText string
	Validate         Predicate
}

// FieldKey returns the trimmed key.
func (d Validated) FieldKey() string { return strings.TrimSpace(d.Key) }

// FieldKind returns the declared kind.
func (d Validated) FieldKind() FieldKind { return d.Kind }

// Check requires a key and a kind. Fields other than buttons additionally
// need a predicate and the text shown when it fails.
func (d Validated) Check() error {
	if d.FieldKey() == "" {
		return fmt.Errorf("%w: key is required", ErrInvalidDefinition)
	}
	if d.Kind == "" {
		return fmt.Errorf("%w: field %q: kind is required", ErrInvalidDefinition, d.FieldKey())
	}
	if d.Kind.IsChoice() {
		return fmt.Errorf("%w: field %q: kind %s needs a choice definition", ErrInvalidDefinition, d.FieldKey(), d.Kind)
	}
	if d.Kind.IsAction() {
		return nil
	}
	if d.Validate == nil {
		return fmt.Errorf("%w: field %q: validate predicate is required", ErrInvalidDefinition, d.FieldKey())
	}
	if strings.TrimSpace(d.DefaultErrorText) == "" {
		return fmt.Errorf("%w: field %q: default error text is required", ErrInvalidDefinition, d.FieldKey())
	}
	return nil
}

// Record builds the initial record. Checkboxes always start unchecked.
func (d Validated) Record() FieldRecord {
	value := d.Value
	if d.Kind == KindCheckbox {
		value = StringValue(CheckboxFalse)
	}
	return FieldRecord{
		Key:              d.FieldKey(),
		Required:         d.Required,
		Kind:             d.Kind,
		Value:            value,
		DefaultErrorText: d.DefaultErrorText,
		Placeholder:      d.Placeholder,
		Validate:         d.Validate,
	}
}

func (Validated) sealed() {}

// Choice is a dropdown or radio field drawing its value from Options.
type Choice struct {
	Key      string
	Required bool
	Kind     FieldKind
	Options  []string
	// Value preselects an option. Values outside Options are ignored.
	Value Value
}

// FieldKey returns the trimmed key.
func (d Choice) FieldKey() string { return strings.TrimSpace(d.Key) }

// FieldKind returns the declared kind, defaulting to dropdown.
func (d Choice) FieldKind() FieldKind {
	if d.Kind == "" {
		return KindDropdown
	}
	return d.Kind
}

// Check requires a key, a choice kind and at least one option.
func (d Choice) Check() error {
	if d.FieldKey() == "" {
		return fmt.Errorf("%w: key is required", ErrInvalidDefinition)
	}
	if !d.FieldKind().IsChoice() {
		return fmt.Errorf("%w: field %q: kind %s is not a choice kind", ErrInvalidDefinition, d.FieldKey(), d.Kind)
	}
	if len(d.Options) == 0 {
		return fmt.Errorf("%w: field %q: options are required", ErrInvalidDefinition, d.FieldKey())
	}
	return nil
}

// Record builds the initial record. The selection is empty unless Value
// names one of the options.
func (d Choice) Record() FieldRecord {
	value := StringValue("")
	for _, option := range d.Options {
		if option == d.Value.String() && !d.Value.IsZero() {
			value = StringValue(option)
			break
		}
	}
	return FieldRecord{
		Key:      d.FieldKey(),
		Required: d.Required,
		Kind:     d.FieldKind(),
		Value:    value,
		Options:  append([]string(nil), d.Options...),
	}
}

func (Choice) sealed() {}
