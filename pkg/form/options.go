package form

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/goliatone/go-formstate/pkg/debounce"
)

// DefaultDebounceDelay is the validation delay used when none is configured.
const DefaultDebounceDelay = 300 * time.Millisecond

// Option configures a Provider.
type Option func(*config)

type config struct {
	delay     time.Duration
	className string
	logger    *slog.Logger
	clock     debounce.Clock
	dispatch  func(func())
	onChange  func()
	format    Format
	observer  Observer
	tracer    trace.Tracer
}

func defaultConfig() config {
	return config{
		delay:    DefaultDebounceDelay,
		format:   FormatJSON,
		clock:    debounce.SystemClock(),
		observer: nopObserver{},
	}
}

// WithDebounceDelay sets how long validation waits after the last update.
// Negative values are ignored.
func WithDebounceDelay(d time.Duration) Option {
	return func(cfg *config) {
		if d >= 0 {
			cfg.delay = d
		}
	}
}

// WithClassName sets the styling class components apply to the form wrapper.
func WithClassName(name string) Option {
	return func(cfg *config) {
		cfg.className = name
	}
}

// WithLogger overrides the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithClock overrides the clock driving validation timers.
func WithClock(clock debounce.Clock) Option {
	return func(cfg *config) {
		if clock != nil {
			cfg.clock = clock
		}
	}
}

// WithDispatcher routes timer callbacks through dispatch, letting hosts run
// validation on their own event loop instead of the timer goroutine.
func WithDispatcher(dispatch func(func())) Option {
	return func(cfg *config) {
		cfg.dispatch = dispatch
	}
}

// WithOnChange installs the render trigger invoked after every state change.
func WithOnChange(fn func()) Option {
	return func(cfg *config) {
		cfg.onChange = fn
	}
}

// WithSnapshotFormat selects the encoding GetFormState uses.
func WithSnapshotFormat(format Format) Option {
	return func(cfg *config) {
		if format != "" {
			cfg.format = format
		}
	}
}

// WithObserver installs a metrics observer.
func WithObserver(observer Observer) Option {
	return func(cfg *config) {
		if observer != nil {
			cfg.observer = observer
		}
	}
}

// WithTracer overrides the tracer used for click and submit spans. Defaults
// to the global OpenTelemetry tracer provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(cfg *config) {
		if tracer != nil {
			cfg.tracer = tracer
		}
	}
}
