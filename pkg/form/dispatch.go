package form

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ClickFunc handles a button press. Its result is handed back to the caller
// of HandleClick.
type ClickFunc func(ctx context.Context, state Snapshot) (any, error)

// SubmitFunc receives the form state on submit.
type SubmitFunc func(ctx context.Context, state Snapshot) error

// HandleClick snapshots the form, passes it to fn and returns fn's result.
// With a nil fn the snapshot itself is returned. The form is reset once fn
// returns, whether it succeeded or not; errors and panics are logged and
// swallowed.
func (p *Provider) HandleClick(ctx context.Context, fn ClickFunc) any {
	if ctx == nil {
		ctx = context.Background()
	}
	state := p.Snapshot()
	ctx, span := p.startSpan(ctx, "form.click", state)
	defer span.End()
	defer p.ResetForm()

	if fn == nil {
		p.cfg.observer.Dispatched(ActionClick, nil)
		return state
	}

	result, err := guard(func() (any, error) {
		return fn(ctx, state)
	})
	p.cfg.observer.Dispatched(ActionClick, err)
	if err != nil {
		recordSpanError(span, err)
		p.logger.Error("click handler failed", "fields", state.Len(), "error", err)
	}
	return result
}

// HandleSubmit snapshots the form and passes it to fn. The form is reset only
// when fn succeeds. Failures are logged and reported as false; they never
// propagate.
func (p *Provider) HandleSubmit(ctx context.Context, fn SubmitFunc) bool {
	if ctx == nil {
		ctx = context.Background()
	}
	state := p.Snapshot()
	ctx, span := p.startSpan(ctx, "form.submit", state)
	defer span.End()

	if fn == nil {
		err := fmt.Errorf("form: submit handler is nil")
		p.cfg.observer.Dispatched(ActionSubmit, err)
		recordSpanError(span, err)
		p.logger.Error("submit failed", "error", err)
		return false
	}

	_, err := guard(func() (struct{}, error) {
		return struct{}{}, fn(ctx, state)
	})
	p.cfg.observer.Dispatched(ActionSubmit, err)
	if err != nil {
		recordSpanError(span, err)
		p.logger.Error("submit failed", "fields", state.Len(), "error", err)
		return false
	}

	p.ResetForm()
	return true
}

func (p *Provider) startSpan(ctx context.Context, name string, state Snapshot) (context.Context, trace.Span) {
	return p.cfg.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.Int("form.fields", state.Len()),
	))
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func guard[T any](fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrCallbackPanic, r)
		}
	}()
	return fn()
}
