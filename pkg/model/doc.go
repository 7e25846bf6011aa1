// Package model defines the field records a form provider keeps, the
// definitions used to register them and the scalar Value they carry.
//
// Definitions come in two shapes. Validated fields (text, email, password,
// textarea, checkbox, button, submit and other input kinds) carry a predicate
// and the message shown when it fails. Choice fields (dropdown, radio) carry
// an ordered option list and are never validated. Checkbox values are always
// the literal strings "true" and "false".
//
// ValidationRule offers canonical identifiers (required, email, minLength,
// maxLength, pattern, min, max) with string parameters so definition files
// and OpenAPI documents can be compiled into a Predicate.
package model
