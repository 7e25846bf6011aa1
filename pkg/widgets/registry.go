package widgets

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formstate/pkg/components"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetInput    = "input"
	WidgetTextarea = "textarea"
	WidgetToggle   = "toggle"
	WidgetAction   = "action"
	WidgetDropdown = "dropdown"
	WidgetRadio    = "radio"
)

// Matcher decides whether a widget should handle the supplied definition.
type Matcher func(def model.Definition) bool

// Builder constructs the component for a definition.
type Builder func(p *form.Provider, def model.Definition, opts ...components.Option) (components.Field, error)

type rule struct {
	name     string
	priority int
	match    Matcher
	build    Builder
	order    int
}

// Registry selects component builders for definitions. Higher priority wins;
// ties fall back to registration order.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in widgets registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget. Empty names and nil matchers or builders are
// ignored.
func (r *Registry) Register(name string, priority int, matcher Matcher, build Builder) {
	if r == nil || matcher == nil || build == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		build:    build,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name chosen for def.
func (r *Registry) Resolve(def model.Definition) (string, bool) {
	entry, ok := r.resolve(def)
	return entry.name, ok
}

func (r *Registry) resolve(def model.Definition) (rule, bool) {
	if r == nil || def == nil {
		return rule{}, false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(def) {
			return entry, true
		}
	}
	return rule{}, false
}

// Build constructs the component for def with the highest priority widget
// that matches it.
func (r *Registry) Build(p *form.Provider, def model.Definition, opts ...components.Option) (components.Field, error) {
	entry, ok := r.resolve(def)
	if !ok {
		return nil, fmt.Errorf("widgets: no widget for %T: %w", def, model.ErrInvalidDefinition)
	}
	field, err := entry.build(p, def, opts...)
	if err != nil {
		return nil, fmt.Errorf("widgets: %s: %w", entry.name, err)
	}
	return field, nil
}

// Form builds a components.Form with one component per definition, in order.
func (r *Registry) Form(p *form.Provider, defs []model.Definition, opts ...components.Option) (*components.Form, error) {
	f := components.NewForm(p, opts...)
	for _, def := range defs {
		field, err := r.Build(p, def, opts...)
		if err != nil {
			return nil, err
		}
		if err := f.Add(field); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// KindIs matches definitions of any of the given kinds.
func KindIs(kinds ...model.FieldKind) Matcher {
	return func(def model.Definition) bool {
		for _, kind := range kinds {
			if def.FieldKind() == kind {
				return true
			}
		}
		return false
	}
}

// KeyIs matches the definition with the given key.
func KeyIs(key string) Matcher {
	return func(def model.Definition) bool {
		return def.FieldKey() == key
	}
}

func (r *Registry) registerBuiltins() {
	build := components.FromDefinition

	r.Register(WidgetRadio, 90, KindIs(model.KindRadio), build)
	r.Register(WidgetDropdown, 80, KindIs(model.KindDropdown), build)
	r.Register(WidgetToggle, 70, KindIs(model.KindCheckbox), build)
	r.Register(WidgetAction, 60, KindIs(model.KindButton, model.KindSubmit), build)
	r.Register(WidgetTextarea, 50, KindIs(model.KindTextarea), build)
	r.Register(WidgetInput, 0, func(def model.Definition) bool {
		_, ok := def.(model.Validated)
		return ok
	}, build)
}
