// Package template defines the renderer-agnostic template contract used by
// the field components, with a pongo2 backed implementation in gotemplate.
package template
