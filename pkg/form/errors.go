package form

import (
	"errors"

	"github.com/goliatone/go-formstate/internal/registry"
	"github.com/goliatone/go-formstate/pkg/model"
)

var (
	// ErrDuplicateKey reports a second registration for the same key.
	ErrDuplicateKey = registry.ErrDuplicateKey
	// ErrUnknownKey reports an update for a key that was never registered.
	ErrUnknownKey = registry.ErrUnknownKey
	// ErrInvalidDefinition reports a definition missing a required field.
	ErrInvalidDefinition = model.ErrInvalidDefinition
	// ErrCallbackPanic wraps a panic raised by a click or submit handler.
	ErrCallbackPanic = errors.New("form: callback panicked")
)
