package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Format selects how a Snapshot is serialized.
type Format string

const (
	// FormatJSON emits an object whose keys follow registration order.
	FormatJSON Format = "json"
	// FormatYAML emits an ordered YAML mapping.
	FormatYAML Format = "yaml"
	// FormatForm emits application/x-www-form-urlencoded pairs.
	FormatForm Format = "form"
	// FormatText emits one key=value line per field.
	FormatText Format = "text"
)

// ParseFormat maps a flag value onto a Format.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatForm, "urlencoded":
		return FormatForm, nil
	case FormatText, "pretty":
		return FormatText, nil
	default:
		return "", fmt.Errorf("form: unknown snapshot format %q", raw)
	}
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatForm:
		return "application/x-www-form-urlencoded"
	case FormatText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Entry is one key/value pair of a Snapshot.
type Entry struct {
	Key   string
	Value model.Value
}

// Snapshot is a point-in-time view of every field value in registration
// order.
type Snapshot struct {
	entries []Entry
}

// NewSnapshot builds a Snapshot from entries. Later duplicates replace the
// value of the earlier entry but keep its position.
func NewSnapshot(entries ...Entry) Snapshot {
	out := make([]Entry, 0, len(entries))
	index := make(map[string]int, len(entries))
	for _, entry := range entries {
		if pos, ok := index[entry.Key]; ok {
			out[pos].Value = entry.Value
			continue
		}
		index[entry.Key] = len(out)
		out = append(out, entry)
	}
	return Snapshot{entries: out}
}

func snapshotOf(records []model.FieldRecord) Snapshot {
	entries := make([]Entry, len(records))
	for i, record := range records {
		entries[i] = Entry{Key: record.Key, Value: record.Value}
	}
	return Snapshot{entries: entries}
}

// Len returns the number of entries.
func (s Snapshot) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the ordered entries.
func (s Snapshot) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

// Keys returns the field keys in order.
func (s Snapshot) Keys() []string {
	keys := make([]string, len(s.entries))
	for i, entry := range s.entries {
		keys[i] = entry.Key
	}
	return keys
}

// Get returns the value stored for key.
func (s Snapshot) Get(key string) (model.Value, bool) {
	for _, entry := range s.entries {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return model.Value{}, false
}

// Map returns the entries keyed by field key.
func (s Snapshot) Map() map[string]model.Value {
	out := make(map[string]model.Value, len(s.entries))
	for _, entry := range s.entries {
		out[entry.Key] = entry.Value
	}
	return out
}

// Values returns plain Go values (string or float64) keyed by field key.
func (s Snapshot) Values() map[string]any {
	out := make(map[string]any, len(s.entries))
	for _, entry := range s.entries {
		out[entry.Key] = entry.Value.Any()
	}
	return out
}

// MarshalJSON writes an object with keys in registration order.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range s.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(entry.Value)
		if err != nil {
			return nil, fmt.Errorf("form: encode %q: %w", entry.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML returns an ordered mapping node.
func (s Snapshot) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, entry := range s.entries {
		key := &yaml.Node{}
		if err := key.Encode(entry.Key); err != nil {
			return nil, err
		}
		value := &yaml.Node{}
		if err := value.Encode(entry.Value.Any()); err != nil {
			return nil, fmt.Errorf("form: encode %q: %w", entry.Key, err)
		}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}

// Encode serializes the snapshot in the requested format.
func (s Snapshot) Encode(format Format) ([]byte, error) {
	switch format {
	case "", FormatJSON:
		return json.Marshal(s)
	case FormatYAML:
		return yaml.Marshal(s)
	case FormatForm:
		return []byte(s.formEncoded()), nil
	case FormatText:
		return []byte(s.text()), nil
	default:
		return nil, fmt.Errorf("form: unknown snapshot format %q", format)
	}
}

// String renders the snapshot as JSON.
func (s Snapshot) String() string {
	payload, err := json.Marshal(s)
	if err != nil {
		return "{}"
	}
	return string(payload)
}

func (s Snapshot) formEncoded() string {
	pairs := make([]string, 0, len(s.entries))
	for _, entry := range s.entries {
		pairs = append(pairs, url.QueryEscape(entry.Key)+"="+url.QueryEscape(entry.Value.String()))
	}
	return strings.Join(pairs, "&")
}

func (s Snapshot) text() string {
	var b strings.Builder
	for _, entry := range s.entries {
		fmt.Fprintf(&b, "%s=%s\n", entry.Key, entry.Value.String())
	}
	return b.String()
}
