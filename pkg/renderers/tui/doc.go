// Package tui drives a form.Provider from terminal prompts. Each registered
// field is asked for according to its kind, validated through the provider
// and submitted once every field is clear.
package tui
