package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Schema extensions read from properties.
const (
	ExtensionWidget      = "x-formstate-widget"
	ExtensionPlaceholder = "x-formstate-placeholder"
	ExtensionErrorText   = "x-formstate-error"
)

var (
	// ErrOperationNotFound is returned when no operation has the requested id.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoRequestBody is returned for operations without an object request
	// body schema.
	ErrNoRequestBody = errors.New("openapi: operation has no request body schema")
)

var mediaTypePreference = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// Option configures document loading.
type Option func(*config)

type config struct {
	externalRefs bool
	validate     bool
}

// WithExternalRefs allows references to other documents.
func WithExternalRefs(allowed bool) Option {
	return func(cfg *config) {
		cfg.externalRefs = allowed
	}
}

// WithValidation validates the document before conversion. Examples are not
// validated.
func WithValidation(enabled bool) Option {
	return func(cfg *config) {
		cfg.validate = enabled
	}
}

// Operation summarizes an operation found in a document.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
}

// Operations lists every operation in the document sorted by id. Operations
// without an operationId get "method:path".
func Operations(ctx context.Context, data []byte, options ...Option) ([]Operation, error) {
	spec, err := load(ctx, data, options)
	if err != nil {
		return nil, err
	}
	var out []Operation
	forEachOperation(spec, func(id, method, path string, op *openapi3.Operation) {
		out = append(out, Operation{ID: id, Method: method, Path: path, Summary: op.Summary})
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Definitions converts the request body of operationID into field
// definitions. Nested objects and arrays have no field representation and
// are skipped.
func Definitions(ctx context.Context, data []byte, operationID string, options ...Option) ([]model.Definition, error) {
	spec, err := load(ctx, data, options)
	if err != nil {
		return nil, err
	}

	var operation *openapi3.Operation
	forEachOperation(spec, func(id, _, _ string, op *openapi3.Operation) {
		if id == operationID {
			operation = op
		}
	})
	if operation == nil {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	schema := requestSchema(operation.RequestBody)
	if schema == nil || len(schema.Properties) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make([]model.Definition, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		def, ok, err := convertProperty(name, ref.Value, required[name])
		if err != nil {
			return nil, fmt.Errorf("openapi: %s.%s: %w", operationID, name, err)
		}
		if ok {
			defs = append(defs, def)
		}
	}
	return defs, nil
}

func load(ctx context.Context, data []byte, options []Option) (*openapi3.T, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	var cfg config
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: cfg.externalRefs,
	}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if cfg.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}
	return spec, nil
}

func forEachOperation(spec *openapi3.T, fn func(id, method, path string, op *openapi3.Operation)) {
	if spec.Paths == nil {
		return
	}
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, entry := range []struct {
			method string
			op     *openapi3.Operation
		}{
			{"GET", item.Get},
			{"PUT", item.Put},
			{"POST", item.Post},
			{"DELETE", item.Delete},
			{"PATCH", item.Patch},
		} {
			if entry.op == nil {
				continue
			}
			id := entry.op.OperationID
			if id == "" {
				id = strings.ToLower(entry.method) + ":" + path
			}
			fn(id, entry.method, path, entry.op)
		}
	}
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range mediaTypePreference {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	types := make([]string, 0, len(content))
	for mediaType := range content {
		types = append(types, mediaType)
	}
	sort.Strings(types)
	for _, mediaType := range types {
		if mt := content[mediaType]; mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func convertProperty(name string, schema *openapi3.Schema, required bool) (model.Definition, bool, error) {
	kind, ok := fieldKind(schema)
	if !ok {
		return nil, false, nil
	}

	value, err := model.ValueOf(schema.Default)
	if err != nil {
		return nil, false, err
	}

	if kind.IsChoice() {
		return model.Choice{
			Key:      name,
			Required: required,
			Kind:     kind,
			Options:  enumOptions(schema.Enum),
			Value:    value,
		}, true, nil
	}

	validate, err := model.CompileRules(rules(schema, kind, required))
	if err != nil {
		return nil, false, err
	}
	errorText := extensionString(schema, ExtensionErrorText)
	if errorText == "" {
		errorText = fmt.Sprintf("%s is invalid", name)
	}

	return model.Validated{
		Key:              name,
		Required:         required,
		Value:            value,
		Kind:             kind,
		Placeholder:      placeholder(schema),
		DefaultErrorText: errorText,
		Validate:         validate,
	}, true, nil
}

func fieldKind(schema *openapi3.Schema) (model.FieldKind, bool) {
	if widget := extensionString(schema, ExtensionWidget); widget != "" {
		kind, err := model.ParseFieldKind(widget)
		if err == nil {
			if kind.IsChoice() && len(schema.Enum) == 0 {
				return "", false
			}
			return kind, true
		}
	}
	if len(schema.Enum) > 0 {
		return model.KindDropdown, true
	}

	types := schema.Type.Slice()
	primary := ""
	for _, typ := range types {
		if typ != "null" {
			primary = typ
			break
		}
	}

	switch primary {
	case "boolean":
		return model.KindCheckbox, true
	case "integer", "number":
		return model.KindNumber, true
	case "object", "array":
		return "", false
	}
	switch strings.ToLower(schema.Format) {
	case "email":
		return model.KindEmail, true
	case "password":
		return model.KindPassword, true
	}
	return model.KindText, true
}

func rules(schema *openapi3.Schema, kind model.FieldKind, required bool) []model.ValidationRule {
	var out []model.ValidationRule
	add := func(kind, param, value string) {
		rule := model.ValidationRule{Kind: kind}
		if param != "" {
			rule.Params = map[string]string{param: value}
		}
		out = append(out, rule)
	}

	if required {
		add(model.ValidationRuleRequired, "", "")
	}
	if kind == model.KindEmail {
		add(model.ValidationRuleEmail, "", "")
	}
	if schema.MinLength > 0 {
		add(model.ValidationRuleMinLength, "value", strconv.FormatUint(schema.MinLength, 10))
	}
	if schema.MaxLength != nil {
		add(model.ValidationRuleMaxLength, "value", strconv.FormatUint(*schema.MaxLength, 10))
	}
	if schema.Pattern != "" {
		add(model.ValidationRulePattern, "pattern", schema.Pattern)
	}
	if schema.Min != nil {
		add(model.ValidationRuleMin, "value", strconv.FormatFloat(*schema.Min, 'f', -1, 64))
	}
	if schema.Max != nil {
		add(model.ValidationRuleMax, "value", strconv.FormatFloat(*schema.Max, 'f', -1, 64))
	}
	return out
}

func placeholder(schema *openapi3.Schema) string {
	if text := extensionString(schema, ExtensionPlaceholder); text != "" {
		return text
	}
	if example, ok := schema.Example.(string); ok && example != "" {
		return example
	}
	return schema.Title
}

func enumOptions(values []any) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value == nil {
			continue
		}
		out = append(out, fmt.Sprint(value))
	}
	return out
}

func extensionString(schema *openapi3.Schema, key string) string {
	if schema.Extensions == nil {
		return ""
	}
	text, _ := schema.Extensions[key].(string)
	return strings.TrimSpace(text)
}
