package formfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
)

// ErrEmptyDocument is returned for a document without fields.
var ErrEmptyDocument = errors.New("formfile: document defines no fields")

// Document is a parsed definitions file.
type Document struct {
	Source string       `yaml:"-"`
	Form   FormSettings `yaml:"form"`
	Fields []FieldSpec  `yaml:"fields"`
}

// FormSettings maps onto provider options.
type FormSettings struct {
	ClassName string `yaml:"className"`
	Debounce  string `yaml:"debounce"`
	Format    string `yaml:"format"`
}

// FieldSpec is one field entry.
type FieldSpec struct {
	Key         string                 `yaml:"key"`
	Kind        string                 `yaml:"kind"`
	Required    bool                   `yaml:"required"`
	Value       model.Value            `yaml:"value"`
	Placeholder string                 `yaml:"placeholder"`
	ErrorText   string                 `yaml:"errorText"`
	Options     []string               `yaml:"options"`
	Validations []model.ValidationRule `yaml:"validations"`
}

// Load parses a document from r. Unknown keys are rejected.
func Load(r io.Reader) (Document, error) {
	return decode(r, "<reader>")
}

// LoadFile parses the document at path.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("formfile: read %s: %w", path, err)
	}
	return decode(bytes.NewReader(data), path)
}

func decode(r io.Reader, source string) (Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, fmt.Errorf("formfile: %s: %w", source, ErrEmptyDocument)
		}
		return Document{}, fmt.Errorf("formfile: parse %s: %w", source, err)
	}
	if len(doc.Fields) == 0 {
		return Document{}, fmt.Errorf("formfile: %s: %w", source, ErrEmptyDocument)
	}
	doc.Source = source
	return doc, nil
}

// ProviderOptions translates the form settings into provider options.
func (d Document) ProviderOptions() ([]form.Option, error) {
	var opts []form.Option
	if name := strings.TrimSpace(d.Form.ClassName); name != "" {
		opts = append(opts, form.WithClassName(name))
	}
	if raw := strings.TrimSpace(d.Form.Debounce); raw != "" {
		delay, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("formfile: %s: debounce: %w", d.Source, err)
		}
		opts = append(opts, form.WithDebounceDelay(delay))
	}
	if raw := strings.TrimSpace(d.Form.Format); raw != "" {
		format, err := form.ParseFormat(raw)
		if err != nil {
			return nil, fmt.Errorf("formfile: %s: %w", d.Source, err)
		}
		opts = append(opts, form.WithSnapshotFormat(format))
	}
	return opts, nil
}

// Definitions converts every field entry, compiling validation rules into
// predicates. A validated field without rules accepts any value, or any
// non-blank value when required.
func (d Document) Definitions() ([]model.Definition, error) {
	defs := make([]model.Definition, 0, len(d.Fields))
	seen := make(map[string]struct{}, len(d.Fields))
	for i, spec := range d.Fields {
		def, err := spec.Definition()
		if err != nil {
			return nil, fmt.Errorf("formfile: %s: field %d: %w", d.Source, i, err)
		}
		if _, dup := seen[def.FieldKey()]; dup {
			return nil, fmt.Errorf("formfile: %s: field %q: %w", d.Source, def.FieldKey(), form.ErrDuplicateKey)
		}
		seen[def.FieldKey()] = struct{}{}
		defs = append(defs, def)
	}
	return defs, nil
}

// Register adds every definition to p, stopping at the first failure.
func (d Document) Register(p *form.Provider) error {
	defs, err := d.Definitions()
	if err != nil {
		return err
	}
	for _, def := range defs {
		if err := p.Register(def); err != nil {
			return fmt.Errorf("formfile: %s: %w", d.Source, err)
		}
	}
	return nil
}

// Definition converts one entry.
func (s FieldSpec) Definition() (model.Definition, error) {
	kind, err := model.ParseFieldKind(s.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: field %q: %v", model.ErrInvalidDefinition, s.Key, err)
	}

	var def model.Definition
	switch {
	case kind.IsChoice():
		def = model.Choice{
			Key:      s.Key,
			Required: s.Required,
			Kind:     kind,
			Options:  s.Options,
			Value:    s.Value,
		}
	case kind.IsAction():
		def = model.Validated{Key: s.Key, Kind: kind, Value: s.Value}
	default:
		rules := s.Validations
		if len(rules) == 0 && s.Required {
			rules = []model.ValidationRule{{Kind: model.ValidationRuleRequired}}
		}
		validate, err := model.CompileRules(rules)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", s.Key, err)
		}
		errorText := strings.TrimSpace(s.ErrorText)
		if errorText == "" {
			errorText = fmt.Sprintf("%s is invalid", strings.TrimSpace(s.Key))
		}
		def = model.Validated{
			Key:              s.Key,
			Required:         s.Required,
			Value:            s.Value,
			Kind:             kind,
			Placeholder:      s.Placeholder,
			DefaultErrorText: errorText,
			Validate:         validate,
		}
	}

	if err := def.Check(); err != nil {
		return nil, err
	}
	return def, nil
}
