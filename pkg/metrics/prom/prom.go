// Package prom records provider events as Prometheus counters.
package prom

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goliatone/go-formstate/pkg/form"
)

// Config configures the observer metrics.
type Config struct {
	Namespace   string
	Subsystem   string
	ConstLabels prometheus.Labels
	Registry    prometheus.Registerer
}

// Option configures an Observer.
type Option func(*Config)

// WithNamespace sets the metrics namespace (default "formstate").
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels adds constant labels to every metric.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the registerer. Default: prometheus.DefaultRegisterer.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		if registry != nil {
			c.Registry = registry
		}
	}
}

// Outcome label values.
const (
	OutcomeOK                = "ok"
	OutcomeDuplicateKey      = "duplicate_key"
	OutcomeUnknownKey        = "unknown_key"
	OutcomeInvalidDefinition = "invalid_definition"
	OutcomePanic             = "panic"
	OutcomeError             = "error"
)

// Observer implements form.Observer.
type Observer struct {
	registrations *prometheus.CounterVec
	updates       *prometheus.CounterVec
	validations   *prometheus.CounterVec
	dispatches    *prometheus.CounterVec
}

var _ form.Observer = (*Observer)(nil)

// New registers the counters and returns the observer. Registering twice
// against the same registry panics, as promauto does.
func New(options ...Option) *Observer {
	cfg := Config{
		Namespace: "formstate",
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	factory := promauto.With(cfg.Registry)

	return &Observer{
		registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "field_registrations_total",
			Help:        "Field registrations by outcome",
			ConstLabels: cfg.ConstLabels,
		}, []string{"outcome"}),

		updates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "field_updates_total",
			Help:        "Field updates by outcome",
			ConstLabels: cfg.ConstLabels,
		}, []string{"outcome"}),

		validations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "field_validations_total",
			Help:        "Debounced validations by field and result",
			ConstLabels: cfg.ConstLabels,
		}, []string{"field", "result"}),

		dispatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "dispatches_total",
			Help:        "Click and submit dispatches by outcome",
			ConstLabels: cfg.ConstLabels,
		}, []string{"action", "outcome"}),
	}
}

func (o *Observer) FieldRegistered(_ string, err error) {
	o.registrations.WithLabelValues(outcome(err)).Inc()
}

func (o *Observer) FieldUpdated(_ string, err error) {
	o.updates.WithLabelValues(outcome(err)).Inc()
}

func (o *Observer) FieldValidated(key string, valid bool) {
	result := "invalid"
	if valid {
		result = "valid"
	}
	o.validations.WithLabelValues(key, result).Inc()
}

func (o *Observer) Dispatched(action form.Action, err error) {
	o.dispatches.WithLabelValues(string(action), outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, form.ErrDuplicateKey):
		return OutcomeDuplicateKey
	case errors.Is(err, form.ErrUnknownKey):
		return OutcomeUnknownKey
	case errors.Is(err, form.ErrInvalidDefinition):
		return OutcomeInvalidDefinition
	case errors.Is(err, form.ErrCallbackPanic):
		return OutcomePanic
	default:
		return OutcomeError
	}
}
