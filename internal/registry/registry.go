package registry

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formstate/pkg/model"
)

var (
	// ErrDuplicateKey is returned when a key is registered twice.
	ErrDuplicateKey = errors.New("registry: field already registered")
	// ErrUnknownKey is returned when updating a key that was never registered.
	ErrUnknownKey = errors.New("registry: field not registered")
)

// Registry keeps field records in insertion order. It is not safe for
// concurrent use; the owning provider serialises access.
type Registry struct {
	fields []model.FieldRecord
	nextID uint64
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{}
}

// Has reports whether key is registered.
func (r *Registry) Has(key string) bool {
	return r.indexOf(key) >= 0
}

// Register appends the record built from def. Invalid definitions and
// duplicate keys leave the registry untouched.
func (r *Registry) Register(def model.Definition) (model.FieldRecord, error) {
	if def == nil {
		return model.FieldRecord{}, fmt.Errorf("%w: definition is nil", model.ErrInvalidDefinition)
	}
	if err := def.Check(); err != nil {
		return model.FieldRecord{}, err
	}
	key := def.FieldKey()
	if r.Has(key) {
		return model.FieldRecord{}, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}

	r.nextID++
	record := def.Record()
	record.ID = r.nextID
	r.fields = append(r.fields, record)
	return record.Clone(), nil
}

// Update writes value into the record for key. Checkbox records ignore value
// and flip between "true" and "false".
func (r *Registry) Update(key string, value model.Value) (model.FieldRecord, error) {
	idx := r.indexOf(key)
	if idx < 0 {
		return model.FieldRecord{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	record := &r.fields[idx]
	if record.Kind == model.KindCheckbox {
		record.Value = model.Invert(record.Value)
	} else {
		record.Value = value
	}
	return record.Clone(), nil
}

// SetError stores msg on the record with the given identity. It reports
// false when the record no longer exists.
func (r *Registry) SetError(id uint64, msg string) bool {
	idx := r.indexOfID(id)
	if idx < 0 {
		return false
	}
	r.fields[idx].Error = msg
	return true
}

// Lookup returns a copy of the record for key.
func (r *Registry) Lookup(key string) (model.FieldRecord, bool) {
	idx := r.indexOf(key)
	if idx < 0 {
		return model.FieldRecord{}, false
	}
	return r.fields[idx].Clone(), true
}

// LookupID returns a copy of the record with the given identity.
func (r *Registry) LookupID(id uint64) (model.FieldRecord, bool) {
	idx := r.indexOfID(id)
	if idx < 0 {
		return model.FieldRecord{}, false
	}
	return r.fields[idx].Clone(), true
}

// Fields returns copies of every record in registration order.
func (r *Registry) Fields() []model.FieldRecord {
	out := make([]model.FieldRecord, len(r.fields))
	for i, record := range r.fields {
		out[i] = record.Clone()
	}
	return out
}

// Len returns the number of registered records.
func (r *Registry) Len() int {
	return len(r.fields)
}

// HasErrors reports whether any record carries a validation error.
func (r *Registry) HasErrors() bool {
	for _, record := range r.fields {
		if record.HasError() {
			return true
		}
	}
	return false
}

// Reset removes every record. Identities keep increasing across resets.
func (r *Registry) Reset() {
	r.fields = nil
}

func (r *Registry) indexOf(key string) int {
	for i := range r.fields {
		if r.fields[i].Key == key {
			return i
		}
	}
	return -1
}

func (r *Registry) indexOfID(id uint64) int {
	if id == 0 {
		return -1
	}
	for i := range r.fields {
		if r.fields[i].ID == id {
			return i
		}
	}
	return -1
}
