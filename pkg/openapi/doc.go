// Package openapi derives field definitions from the request body schema of
// an OpenAPI 3 operation.
//
// Each top-level property becomes one field, ordered by name. Types map onto
// field kinds (string formats email and password keep their kind, enums
// become dropdowns, booleans checkboxes, integers and numbers number inputs)
// and schema constraints compile into the field's validation rules. The
// x-formstate-widget, x-formstate-placeholder and x-formstate-error
// extensions override the derived kind, placeholder and error text.
package openapi
