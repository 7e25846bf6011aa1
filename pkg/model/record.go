package model

// FieldRecord is the registered state of one field.
type FieldRecord struct {
	// ID identifies the record for the lifetime of its registry. It is never
	// reused, so work scheduled against a reset registry finds nothing.
	ID               uint64    `json:"-"`
	Key              string    `json:"key"`
	Required         bool      `json:"required"`
	Kind             FieldKind `json:"kind,omitempty"`
	Value            Value     `json:"value"`
	Error            string    `json:"error,omitempty"`
	DefaultErrorText string    `json:"defaultErrorText,omitempty"`
	Placeholder      string    `json:"placeholder,omitempty"`
	Options          []string  `json:"options,omitempty"`
	Validate         Predicate `json:"-"`
}

// HasError reports whether the record currently fails validation.
func (r FieldRecord) HasError() bool {
	return r.Error != ""
}

// Checked reports whether a checkbox record is ticked.
func (r FieldRecord) Checked() bool {
	return r.Value.String() == CheckboxTrue
}

// Clone returns a copy that shares no slices with r.
func (r FieldRecord) Clone() FieldRecord {
	if r.Options != nil {
		r.Options = append([]string(nil), r.Options...)
	}
	return r
}
