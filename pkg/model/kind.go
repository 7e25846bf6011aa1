package model

import (
	"fmt"
	"strings"
)

// FieldKind tags a field and drives rendering and update behaviour.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindEmail    FieldKind = "email"
	KindPassword FieldKind = "password"
	KindNumber   FieldKind = "number"
	KindTextarea FieldKind = "textarea"
	KindCheckbox FieldKind = "checkbox"
	KindButton   FieldKind = "button"
	KindSubmit   FieldKind = "submit"
	KindDropdown FieldKind = "dropdown"
	KindRadio    FieldKind = "radio"
)

var knownKinds = map[FieldKind]struct{}{
	KindText:     {},
	KindEmail:    {},
	KindPassword: {},
	KindNumber:   {},
	KindTextarea: {},
	KindCheckbox: {},
	KindButton:   {},
	KindSubmit:   {},
	KindDropdown: {},
	KindRadio:    {},
}

// ParseFieldKind normalises raw into a FieldKind. Unknown non-empty kinds are
// accepted as plain input types (tel, url, date, ...) and rendered as such.
// "select" is accepted as an alias for dropdown.
func ParseFieldKind(raw string) (FieldKind, error) {
	kind := FieldKind(strings.ToLower(strings.TrimSpace(raw)))
	switch kind {
	case "":
		return "", fmt.Errorf("model: field kind is required")
	case "select":
		return KindDropdown, nil
	}
	return kind, nil
}

// Known reports whether k is one of the built-in kinds.
func (k FieldKind) Known() bool {
	_, ok := knownKinds[k]
	return ok
}

// IsChoice reports whether k draws its value from a fixed option set.
func (k FieldKind) IsChoice() bool {
	return k == KindDropdown || k == KindRadio
}

// IsAction reports whether k renders as a button that dispatches the form.
func (k FieldKind) IsAction() bool {
	return k == KindButton || k == KindSubmit
}

// Validates reports whether updates to a field of kind k schedule
// validation. Checkbox, choice, action and untyped fields never do.
func (k FieldKind) Validates() bool {
	switch {
	case k == "", k == KindCheckbox, k.IsChoice(), k.IsAction():
		return false
	default:
		return true
	}
}

// InputType returns the HTML type attribute used for k.
func (k FieldKind) InputType() string {
	switch k {
	case "":
		return string(KindText)
	case KindDropdown:
		return "select"
	default:
		return string(k)
	}
}

func (k FieldKind) String() string {
	return string(k)
}
