// Package components renders the field components that consume a
// form.Provider: InputBox for free input, checkbox and action kinds,
// DropDown and RadioButton for choice fields, and Form to mount and render a
// list of them in order.
//
// Every component receives its Provider at construction. Mount registers the
// field once, Render reads the live record by key and Input pushes a new
// value back through the Provider. Markup comes from embedded pongo2
// templates which a go-theme RendererConfig can restyle or replace.
package components
