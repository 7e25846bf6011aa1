package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Checkbox values are stored as literal strings rather than booleans.
const (
	CheckboxTrue  = "true"
	CheckboxFalse = "false"
)

// Value is the string-or-number content of a field.
type Value struct {
	text    string
	number  float64
	numeric bool
}

// StringValue wraps s.
func StringValue(s string) Value {
	return Value{text: s}
}

// NumberValue wraps n. NaN and the infinities have no JSON encoding, so
// they are kept as their text form instead.
func NumberValue(n float64) Value {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return StringValue(strconv.FormatFloat(n, 'g', -1, 64))
	}
	return Value{number: n, numeric: true}
}

// BoolValue returns the checkbox encoding of b.
func BoolValue(b bool) Value {
	if b {
		return StringValue(CheckboxTrue)
	}
	return StringValue(CheckboxFalse)
}

// ValueOf converts common Go scalars into a Value. Booleans use the checkbox
// encoding and nil yields the empty string.
func ValueOf(v any) (Value, error) {
	switch typed := v.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return typed, nil
	case string:
		return StringValue(typed), nil
	case bool:
		return BoolValue(typed), nil
	case int:
		return NumberValue(float64(typed)), nil
	case int32:
		return NumberValue(float64(typed)), nil
	case int64:
		return NumberValue(float64(typed)), nil
	case uint:
		return NumberValue(float64(typed)), nil
	case uint64:
		return NumberValue(float64(typed)), nil
	case float32:
		return NumberValue(float64(typed)), nil
	case float64:
		return NumberValue(typed), nil
	case json.Number:
		n, err := typed.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("model: value %q: %w", typed, err)
		}
		return NumberValue(n), nil
	default:
		return Value{}, fmt.Errorf("model: unsupported value type %T", v)
	}
}

// String returns the textual form. Numbers use the shortest representation.
func (v Value) String() string {
	if v.numeric {
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	}
	return v.text
}

// Number returns the numeric content when v holds a number.
func (v Value) Number() (float64, bool) {
	return v.number, v.numeric
}

// IsNumber reports whether v holds a number.
func (v Value) IsNumber() bool {
	return v.numeric
}

// IsZero reports whether v is the empty string.
func (v Value) IsZero() bool {
	return !v.numeric && v.text == ""
}

// Equal compares kind and content.
func (v Value) Equal(other Value) bool {
	if v.numeric != other.numeric {
		return false
	}
	if v.numeric {
		return v.number == other.number
	}
	return v.text == other.text
}

// Any returns the underlying string or float64.
func (v Value) Any() any {
	if v.numeric {
		return v.number
	}
	return v.text
}

// Invert flips a checkbox value. Anything other than "true" becomes "true".
func Invert(v Value) Value {
	if v.String() == CheckboxTrue {
		return StringValue(CheckboxFalse)
	}
	return StringValue(CheckboxTrue)
}

// MarshalJSON emits a JSON number or string.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.numeric {
		return []byte(strconv.FormatFloat(v.number, 'f', -1, 64)), nil
	}
	return json.Marshal(v.text)
}

// UnmarshalJSON accepts a JSON number, string or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = Value{}
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = StringValue(s)
		return nil
	}
	n, err := strconv.ParseFloat(string(trimmed), 64)
	if err != nil {
		return fmt.Errorf("model: value %s is neither string nor number", trimmed)
	}
	*v = NumberValue(n)
	return nil
}

// MarshalYAML emits a YAML scalar.
func (v Value) MarshalYAML() (any, error) {
	return v.Any(), nil
}

// UnmarshalYAML keeps numbers numeric and treats every other scalar as text.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("model: line %d: value must be a scalar", node.Line)
	}
	switch node.Tag {
	case "!!int":
		n, err := strconv.ParseInt(strings.ReplaceAll(node.Value, "_", ""), 0, 64)
		if err != nil {
			return fmt.Errorf("model: line %d: %w", node.Line, err)
		}
		*v = NumberValue(float64(n))
	case "!!float":
		if isYAMLNonFinite(node.Value) {
			return fmt.Errorf("model: line %d: non-finite number %q is not a valid value", node.Line, node.Value)
		}
		n, err := strconv.ParseFloat(strings.ReplaceAll(node.Value, "_", ""), 64)
		if err != nil {
			return fmt.Errorf("model: line %d: %w", node.Line, err)
		}
		*v = NumberValue(n)
	case "!!null":
		*v = Value{}
	default:
		*v = StringValue(node.Value)
	}
	return nil
}

// isYAMLNonFinite matches the YAML 1.1/1.2 spellings of infinity and NaN.
func isYAMLNonFinite(raw string) bool {
	switch strings.ToLower(strings.TrimLeft(raw, "+-")) {
	case ".inf", ".nan":
		return true
	}
	return false
}
