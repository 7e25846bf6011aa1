package prom_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/metrics/prom"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/testsupport"
)

func TestObserver_CountsProviderEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	observer := prom.New(prom.WithRegistry(reg))
	clock := testsupport.NewFakeClock()
	p := form.New(form.WithClock(clock), form.WithObserver(observer))

	name := model.Validated{
		Key:              "name",
		Kind:             model.KindText,
		Placeholder:      "Name",
		DefaultErrorText: "required",
		Validate:         form.Required(),
	}
	require.NoError(t, p.Register(name))
	require.ErrorIs(t, p.Register(name), form.ErrDuplicateKey)

	p.UpdateField("name", model.StringValue(""))
	p.UpdateField("missing", model.StringValue("x"))
	clock.Advance(p.DebounceDelay())

	p.UpdateField("name", model.StringValue("Ada"))
	p.Flush()

	p.HandleSubmit(context.Background(), func(context.Context, form.Snapshot) error {
		return errors.New("nope")
	})
	p.HandleClick(context.Background(), func(context.Context, form.Snapshot) (any, error) {
		panic("boom")
	})

	expected := `
# HELP formstate_field_registrations_total Field registrations by outcome
# TYPE formstate_field_registrations_total counter
formstate_field_registrations_total{outcome="duplicate_key"} 1
formstate_field_registrations_total{outcome="ok"} 1
# HELP formstate_field_updates_total Field updates by outcome
# TYPE formstate_field_updates_total counter
formstate_field_updates_total{outcome="ok"} 2
formstate_field_updates_total{outcome="unknown_key"} 1
# HELP formstate_field_validations_total Debounced validations by field and result
# TYPE formstate_field_validations_total counter
formstate_field_validations_total{field="name",result="invalid"} 1
formstate_field_validations_total{field="name",result="valid"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"formstate_field_registrations_total",
		"formstate_field_updates_total",
		"formstate_field_validations_total",
	))

	count, err := testutil.GatherAndCount(reg, "formstate_dispatches_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestObserver_DispatchOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	observer := prom.New(prom.WithRegistry(reg), prom.WithNamespace("app"), prom.WithSubsystem("signup"))

	observer.Dispatched(form.ActionSubmit, nil)
	observer.Dispatched(form.ActionSubmit, errors.New("down"))
	observer.Dispatched(form.ActionClick, form.ErrCallbackPanic)

	expected := `
# HELP app_signup_dispatches_total Click and submit dispatches by outcome
# TYPE app_signup_dispatches_total counter
app_signup_dispatches_total{action="click",outcome="panic"} 1
app_signup_dispatches_total{action="submit",outcome="error"} 1
app_signup_dispatches_total{action="submit",outcome="ok"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "app_signup_dispatches_total"))
}

func TestObserver_RegisterTwicePanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	prom.New(prom.WithRegistry(reg))
	assert.Panics(t, func() { prom.New(prom.WithRegistry(reg)) })
}
