// Package httpform serves a mounted components.Form over HTTP with chi.
//
//	GET  /               full page with the rendered form
//	POST /fields/{key}   update one field from the "value" form value
//	POST /validate       run pending validations and return the form
//	POST /submit         submit through the provider
//	POST /reset          clear the form and mount it again
//	GET  /state          current snapshot in the provider's format
package httpform
