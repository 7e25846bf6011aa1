package components

import (
	"fmt"
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

const (
	// PartialPrefix namespaces theme template overrides. A theme maps
	// "formstate.input" (or dropdown, radio, form) to a template path.
	PartialPrefix = "formstate."
	// StylesheetAsset is the theme asset key linked from the form wrapper.
	StylesheetAsset = "formstate.stylesheet"
	// TokenVarPrefix prefixes theme tokens turned into CSS variables.
	TokenVarPrefix = "--fs-"
)

// SelectTheme resolves name/variant through selector and converts the
// selection into the renderer configuration components consume.
func SelectTheme(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, fmt.Errorf("components: theme selector is nil")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("components: select theme %q/%q: %w", name, variant, err)
	}
	return ThemeConfig(selection), nil
}

// ThemeConfig flattens a selection: variant tokens, templates and asset files
// override the manifest's, and every token becomes a CSS variable.
func ThemeConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
	}
	manifest := selection.Manifest
	if manifest == nil {
		return cfg
	}

	tokens := mergeStrings(manifest.Tokens, nil)
	partials := mergeStrings(manifest.Templates, nil)
	assets := manifest.Assets
	files := mergeStrings(assets.Files, nil)

	if variant, ok := manifest.Variants[selection.Variant]; ok {
		tokens = mergeStrings(tokens, variant.Tokens)
		partials = mergeStrings(partials, variant.Templates)
		files = mergeStrings(files, variant.Assets.Files)
		if strings.TrimSpace(variant.Assets.Prefix) != "" {
			assets.Prefix = variant.Assets.Prefix
		}
	}

	cfg.Tokens = tokens
	cfg.Partials = partials
	if len(tokens) > 0 {
		cfg.CSSVars = make(map[string]string, len(tokens))
		for key, value := range tokens {
			cfg.CSSVars[TokenVarPrefix+key] = value
		}
	}
	prefix := assets.Prefix
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if prefix == "" || strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
			return file
		}
		return path.Join(prefix, file)
	}
	return cfg
}

func mergeStrings(base, overrides map[string]string) map[string]string {
	if len(base) == 0 && len(overrides) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(overrides))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range overrides {
		out[key] = value
	}
	return out
}

// cssVarsStyle renders CSS variables as an inline style, sorted by name.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+vars[key])
	}
	return strings.Join(parts, "; ")
}
