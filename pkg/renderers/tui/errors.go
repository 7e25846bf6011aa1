package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrTooManyAttempts is returned when a field keeps failing validation.
	ErrTooManyAttempts = errors.New("tui: too many invalid attempts")
	// ErrNoProvider is returned when a session is built without a provider.
	ErrNoProvider = errors.New("tui: provider is required")
)
