package components

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/render/template"
	"github.com/goliatone/go-formstate/pkg/render/template/gotemplate"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded templates so callers can copy or extend
// them and load the result through WithTemplatesFS.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// Message keys looked up through the Localizer.
const (
	MessageSelectOption = "formstate.dropdown.placeholder"
	MessageShowPassword = "formstate.password.show"
	MessageHidePassword = "formstate.password.hide"
)

// RendererOption configures a Renderer.
type RendererOption func(*rendererConfig)

type rendererConfig struct {
	engine    template.TemplateRenderer
	templates fs.FS
	theme     *theme.RendererConfig
	icons     Icons
	localizer render.Localizer
}

// WithTemplateRenderer renders through engine instead of the embedded
// templates. engine must provide input, dropdown, radio and form templates.
func WithTemplateRenderer(engine template.TemplateRenderer) RendererOption {
	return func(cfg *rendererConfig) {
		cfg.engine = engine
	}
}

// WithTemplatesFS loads every template from files instead of the embedded
// set.
func WithTemplatesFS(files fs.FS) RendererOption {
	return func(cfg *rendererConfig) {
		cfg.templates = files
	}
}

// WithTheme applies a go-theme renderer configuration.
func WithTheme(cfg *theme.RendererConfig) RendererOption {
	return func(rc *rendererConfig) {
		rc.theme = cfg
	}
}

// WithIcons overrides the icon markup. Empty icons keep the defaults.
func WithIcons(icons Icons) RendererOption {
	return func(cfg *rendererConfig) {
		cfg.icons = icons
	}
}

// WithLocalizer translates placeholder labels, error text and toggle labels.
func WithLocalizer(l render.Localizer) RendererOption {
	return func(cfg *rendererConfig) {
		cfg.localizer = l
	}
}

// Renderer turns component state into markup. It is safe for concurrent use.
type Renderer struct {
	engine    template.TemplateRenderer
	theme     *theme.RendererConfig
	icons     Icons
	localizer render.Localizer
}

// NewRenderer builds a Renderer over the embedded templates unless an engine
// or template FS is supplied.
func NewRenderer(options ...RendererOption) (*Renderer, error) {
	cfg := rendererConfig{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	engine := cfg.engine
	if engine == nil {
		files := cfg.templates
		if files == nil {
			files = TemplatesFS()
		}
		built, err := gotemplate.New(gotemplate.WithFS(files))
		if err != nil {
			return nil, fmt.Errorf("components: template engine: %w", err)
		}
		engine = built
	}

	return &Renderer{
		engine:    engine,
		theme:     cfg.theme,
		icons:     cfg.icons.sanitized(),
		localizer: cfg.localizer,
	}, nil
}

var (
	defaultRendererOnce sync.Once
	defaultRendererInst *Renderer
	defaultRendererErr  error
)

func defaultRenderer() (*Renderer, error) {
	defaultRendererOnce.Do(func() {
		defaultRendererInst, defaultRendererErr = NewRenderer()
	})
	return defaultRendererInst, defaultRendererErr
}

// Theme returns the applied theme configuration, or nil.
func (r *Renderer) Theme() *theme.RendererConfig {
	return r.theme
}

func (r *Renderer) text(key, fallback string) string {
	return r.localizer.Text(key, fallback)
}

// templateName resolves a theme override for the named template.
func (r *Renderer) templateName(name string) string {
	if r.theme != nil {
		if override := strings.TrimSpace(r.theme.Partials[PartialPrefix+name]); override != "" {
			return override
		}
	}
	return name
}

func (r *Renderer) render(ctx context.Context, name string, data map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data["icons"] = r.icons.context()
	out, err := r.engine.RenderTemplate(r.templateName(name), data)
	if err != nil {
		return "", fmt.Errorf("components: render %s: %w", name, err)
	}
	return out, nil
}
