// Package registry holds the ordered field records of a single form. Keys
// are unique, insertion order is preserved and every record receives an
// identity that survives neither removal nor reset.
package registry
