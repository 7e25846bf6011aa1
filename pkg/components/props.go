package components

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Style carries the visual props shared by every component. Empty values
// inherit from the surrounding markup.
type Style struct {
	Width     string
	Height    string
	Color     string
	BgColor   string
	Font      string
	ClassName string
}

// InputProps configures an InputBox.
type InputProps struct {
	Key         string
	Kind        model.FieldKind
	Required    bool
	Value       model.Value
	Placeholder string
	ErrorText   string
	Validate    model.Predicate
	Style
}

func (p InputProps) definition() model.Definition {
	return model.Validated{
		Key:              p.Key,
		Required:         p.Required,
		Value:            p.Value,
		Kind:             p.Kind,
		Placeholder:      p.Placeholder,
		DefaultErrorText: p.ErrorText,
		Validate:         p.Validate,
	}
}

// ChoiceProps configures a DropDown or RadioButton.
type ChoiceProps struct {
	Key      string
	Required bool
	Value    model.Value
	Options  []string
	Style
}

func (p ChoiceProps) definition(kind model.FieldKind) model.Definition {
	return model.Choice{
		Key:      p.Key,
		Required: p.Required,
		Kind:     kind,
		Options:  p.Options,
		Value:    p.Value,
	}
}

// inline renders the style attribute. defaults fills the props left empty;
// radio groups pass nil so only what was set is emitted.
func (s Style) inline(defaults map[string]string) string {
	props := []struct{ name, value string }{
		{"width", s.Width},
		{"height", s.Height},
		{"color", s.Color},
		{"background-color", s.BgColor},
		{"font-family", s.Font},
	}

	parts := make([]string, 0, len(props))
	for _, prop := range props {
		value := strings.TrimSpace(prop.value)
		if value == "" {
			value = defaults[prop.name]
		}
		if value == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", prop.name, value))
	}
	return strings.Join(parts, "; ")
}

var (
	inputDefaults = map[string]string{
		"width":            "20dvw",
		"height":           "fit-content",
		"color":            "inherit",
		"background-color": "inherit",
		"font-family":      "inherit",
	}
	textareaDefaults = map[string]string{
		"color":            "inherit",
		"background-color": "inherit",
		"font-family":      "inherit",
	}
	selectDefaults = map[string]string{
		"width":            "20dvw",
		"height":           "fit-content",
		"color":            "inherit",
		"background-color": "transparent",
		"font-family":      "inherit",
	}
)
