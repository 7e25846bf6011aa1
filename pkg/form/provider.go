package form

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/goliatone/go-formstate/internal/registry"
	"github.com/goliatone/go-formstate/pkg/debounce"
	"github.com/goliatone/go-formstate/pkg/model"
)

const tracerName = "github.com/goliatone/go-formstate/pkg/form"

// Provider is the form context shared by field components. It is safe for
// concurrent use: validation timers fire on their own goroutines, so a mutex
// serialises every registry access. Callbacks supplied by callers (render
// trigger, predicates, click and submit handlers) never run under that lock.
type Provider struct {
	mu          sync.Mutex
	registry    *registry.Registry
	validations *debounce.Group[uint64]

	cfg    config
	logger *slog.Logger
}

// New constructs a Provider with an empty registry.
func New(options ...Option) *Provider {
	cfg := defaultConfig()
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.tracer == nil {
		cfg.tracer = otel.Tracer(tracerName)
	}

	clock := cfg.clock
	if cfg.dispatch != nil {
		clock = dispatchClock{base: clock, dispatch: cfg.dispatch}
	}

	return &Provider{
		registry:    registry.New(),
		validations: debounce.NewGroup[uint64](cfg.delay, debounce.WithClock(clock)),
		cfg:         cfg,
		logger:      cfg.logger.With("component", "form"),
	}
}

// DebounceDelay reports the configured validation delay.
func (p *Provider) DebounceDelay() time.Duration {
	return p.cfg.delay
}

// ClassName returns the styling class configured for the form wrapper.
func (p *Provider) ClassName() string {
	return p.cfg.className
}

// HasRegistered reports whether key is registered.
func (p *Provider) HasRegistered(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.registry.Has(key)
}

// Register adds a field. Duplicate keys and incomplete definitions are
// logged and returned as errors; the registry is left unchanged.
func (p *Provider) Register(def model.Definition) error {
	key := ""
	if def != nil {
		key = def.FieldKey()
	}

	p.mu.Lock()
	_, err := p.registry.Register(def)
	p.mu.Unlock()

	p.cfg.observer.FieldRegistered(key, err)
	if err != nil {
		p.logger.Warn("field registration rejected", "key", key, "error", err)
		return fmt.Errorf("form: register: %w", err)
	}
	if missingPlaceholder(def) {
		p.logger.Info("field registered without placeholder", "key", key)
	}

	p.notify()
	return nil
}

// missingPlaceholder flags validated input fields that carry no placeholder.
// They register anyway; the hint is only display text.
func missingPlaceholder(def model.Definition) bool {
	d, ok := def.(model.Validated)
	return ok && !d.Kind.IsAction() && strings.TrimSpace(d.Placeholder) == ""
}

// RegisterField is Register reporting success as a bool.
func (p *Provider) RegisterField(def model.Definition) bool {
	return p.Register(def) == nil
}

// Update stores value for key and schedules validation when the field kind
// validates. Checkbox fields toggle and ignore value.
func (p *Provider) Update(key string, value model.Value) error {
	p.mu.Lock()
	record, err := p.registry.Update(key, value)
	if err == nil && record.Kind.Validates() && record.Validate != nil {
		p.scheduleValidation(record.ID)
	}
	p.mu.Unlock()

	p.cfg.observer.FieldUpdated(key, err)
	if err != nil {
		p.logger.Warn("field update rejected", "key", key, "error", err)
		return fmt.Errorf("form: update: %w", err)
	}

	p.notify()
	return nil
}

// UpdateField is Update reporting success as a bool.
func (p *Provider) UpdateField(key string, value model.Value) bool {
	return p.Update(key, value) == nil
}

// Field returns a copy of the record for key.
func (p *Provider) Field(key string) (model.FieldRecord, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.registry.Lookup(key)
}

// Fields returns copies of every record in registration order.
func (p *Provider) Fields() []model.FieldRecord {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.registry.Fields()
}

// Len returns the number of registered fields.
func (p *Provider) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.registry.Len()
}

// HasErrors reports whether any field currently fails validation.
func (p *Provider) HasErrors() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.registry.HasErrors()
}

// ActionDisabled reports whether a field of the given kind should render
// disabled. Buttons and submit controls are blocked while any field in the
// form has an error.
func (p *Provider) ActionDisabled(kind model.FieldKind) bool {
	return kind.IsAction() && p.HasErrors()
}

// Snapshot captures every field value in registration order.
func (p *Provider) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return snapshotOf(p.registry.Fields())
}

// GetFormState returns the snapshot encoded in the configured format.
func (p *Provider) GetFormState() (string, error) {
	payload, err := p.Snapshot().Encode(p.cfg.format)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// Format reports the snapshot format used by GetFormState.
func (p *Provider) Format() Format {
	return p.cfg.format
}

// ResetForm removes every field and drops pending validations.
func (p *Provider) ResetForm() {
	p.mu.Lock()
	p.registry.Reset()
	cancelled := p.validations.CancelAll()
	p.mu.Unlock()

	if cancelled > 0 {
		p.logger.Debug("form reset dropped pending validations", "count", cancelled)
	}
	p.notify()
}

// Close drops pending validations without touching field state. Hosts call
// it when the form unmounts.
func (p *Provider) Close() {
	p.validations.CancelAll()
}

func (p *Provider) notify() {
	if p.cfg.onChange != nil {
		p.cfg.onChange()
	}
}

type dispatchClock struct {
	base     debounce.Clock
	dispatch func(func())
}

func (c dispatchClock) AfterFunc(d time.Duration, fn func()) debounce.Timer {
	return c.base.AfterFunc(d, func() {
		c.dispatch(fn)
	})
}
