package render

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingTranslator is reported to MissingTranslationHandler when a key is
// looked up without a Translator configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves message keys for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// Catalog is a static Translator keyed by locale then message key. The
// message is passed through fmt.Sprintf when args are supplied.
type Catalog map[string]map[string]string

func (c Catalog) Translate(locale, key string, args ...any) (string, error) {
	messages, ok := c[locale]
	if !ok {
		if base, _, found := strings.Cut(locale, "-"); found {
			messages, ok = c[base]
		}
	}
	if !ok {
		return "", fmt.Errorf("render: locale %q not found", locale)
	}
	msg, ok := messages[key]
	if !ok {
		return "", fmt.Errorf("render: key %q not found for locale %q", key, locale)
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...), nil
	}
	return msg, nil
}

// MissingTranslationHandler decides the text used when a key cannot be
// translated. err is ErrMissingTranslator or the Translator's error.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// Localizer pairs a Translator with a locale and fallback policy.
type Localizer struct {
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
}

// Text translates key, returning fallback when no translation exists and no
// OnMissing handler is set. An empty fallback falls back to the key.
func (l Localizer) Text(key, fallback string, args ...any) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	var err error
	if l.Translator == nil {
		err = ErrMissingTranslator
	} else {
		var msg string
		msg, err = l.Translator.Translate(l.Locale, key, args...)
		if err == nil && strings.TrimSpace(msg) != "" {
			return msg
		}
	}

	if l.OnMissing != nil {
		return l.OnMissing(l.Locale, key, args, err)
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}
