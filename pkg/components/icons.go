package components

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Icons holds the SVG markup drawn next to fields. Markup is sanitized
// before use so only inert SVG elements survive.
type Icons struct {
	Error    string
	Eye      string
	EyeSlash string
}

// DefaultIcons returns the built in icon set.
func DefaultIcons() Icons {
	return Icons{
		Error:    `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 512 512" width="1em" height="1em" fill="currentColor" aria-hidden="true" class="fs-icon"><path d="M256 512A256 256 0 1 0 256 0a256 256 0 1 0 0 512zm0-384c13.3 0 24 10.7 24 24V264c0 13.3-10.7 24-24 24s-24-10.7-24-24V152c0-13.3 10.7-24 24-24zM224 352a32 32 0 1 1 64 0 32 32 0 1 1 -64 0z"/></svg>`,
		Eye:      `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 576 512" width="1em" height="1em" fill="currentColor" aria-hidden="true" class="fs-icon"><path d="M288 80c-65.2 0-118.8 29.6-159.9 67.7C89.6 183.5 63 226 49.4 256c13.6 30 40.2 72.5 78.6 108.3C169.2 402.4 222.8 432 288 432s118.8-29.6 159.9-67.7C486.4 328.5 513 286 526.6 256c-13.6-30-40.2-72.5-78.6-108.3C406.8 109.6 353.2 80 288 80z"/><circle cx="288" cy="256" r="80"/></svg>`,
		EyeSlash: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 640 512" width="1em" height="1em" fill="currentColor" aria-hidden="true" class="fs-icon"><path d="M38.8 5.1C28.4-3.1 13.3-1.2 5.1 9.2S-1.2 34.7 9.2 42.9l592 464c10.4 8.2 25.5 6.3 33.7-4.1s6.3-25.5-4.1-33.7L525.6 386.7c39.6-40.6 66.4-86.1 79.9-118.4c3.3-7.9 3.3-16.7 0-24.6c-14.9-35.7-46.2-87.7-93-131.1C465.5 68.8 400.8 32 320 32c-68.2 0-125 26.3-169.3 60.8L38.8 5.1z"/></svg>`,
	}
}

// sanitized returns a copy with every icon passed through the SVG policy.
// Icons left empty fall back to the defaults.
func (i Icons) sanitized() Icons {
	defaults := DefaultIcons()
	pick := func(custom, fallback string) string {
		if strings.TrimSpace(custom) == "" {
			custom = fallback
		}
		return sanitizeIconMarkup(custom)
	}
	return Icons{
		Error:    pick(i.Error, defaults.Error),
		Eye:      pick(i.Eye, defaults.Eye),
		EyeSlash: pick(i.EyeSlash, defaults.EyeSlash),
	}
}

func (i Icons) context() map[string]any {
	return map[string]any{
		"error":    i.Error,
		"eye":      i.Eye,
		"eyeSlash": i.EyeSlash,
	}
}

var (
	iconPolicyOnce sync.Once
	iconPolicy     *bluemonday.Policy
)

func sanitizeIconMarkup(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(iconSanitizer().Sanitize(trimmed))
}

func iconSanitizer() *bluemonday.Policy {
	iconPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		shapes := []string{"path", "circle", "rect", "line", "polyline", "polygon", "ellipse"}

		policy.AllowElements(append([]string{"svg", "g", "title", "desc"}, shapes...)...)
		policy.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "fill", "stroke",
			"stroke-width", "aria-hidden", "role", "focusable", "class",
		).OnElements("svg")
		policy.AllowAttrs(
			"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
			"points", "rx", "ry", "fill", "stroke", "stroke-width",
			"stroke-linecap", "stroke-linejoin", "class",
		).OnElements(shapes...)
		policy.AllowAttrs("class", "fill").OnElements("g")

		iconPolicy = policy
	})
	return iconPolicy
}
