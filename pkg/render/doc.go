// Package render holds the localisation helpers shared by the component
// markup and its templates. The template engine seam lives in the template
// subpackage.
package render
