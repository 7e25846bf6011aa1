package form_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
)

func fillNameAge(h *harness) {
	h.provider.RegisterField(textField("name", form.Always()))
	h.provider.RegisterField(textField("age", form.Always()))
	h.provider.UpdateField("name", model.StringValue("Ada"))
	h.provider.UpdateField("age", model.NumberValue(36))
}

func TestHandleSubmit_SuccessResets(t *testing.T) {
	h := newHarness(t)
	fillNameAge(h)

	var got map[string]any
	ok := h.provider.HandleSubmit(context.Background(), func(_ context.Context, state form.Snapshot) error {
		got = state.Values()
		return nil
	})
	if !ok {
		t.Fatalf("submit reported failure")
	}
	if diff := cmp.Diff(map[string]any{"name": "Ada", "age": float64(36)}, got); diff != "" {
		t.Fatalf("submitted state mismatch (-want +got):\n%s", diff)
	}
	if h.provider.Len() != 0 {
		t.Fatalf("successful submit must reset the form")
	}
}

func TestHandleSubmit_FailureKeepsState(t *testing.T) {
	h := newHarness(t)
	fillNameAge(h)

	ok := h.provider.HandleSubmit(context.Background(), func(context.Context, form.Snapshot) error {
		return errors.New("backend down")
	})
	if ok {
		t.Fatalf("submit should report failure")
	}
	if h.provider.Len() != 2 {
		t.Fatalf("failed submit must not reset the form")
	}
	if !strings.Contains(h.logs.String(), "backend down") {
		t.Fatalf("expected failure to be logged, got %q", h.logs.String())
	}
}

func TestHandleSubmit_PanicIsRecovered(t *testing.T) {
	h := newHarness(t)
	fillNameAge(h)

	ok := h.provider.HandleSubmit(context.Background(), func(context.Context, form.Snapshot) error {
		panic("kaboom")
	})
	if ok {
		t.Fatalf("panicking submit should fail")
	}
	if h.provider.Len() != 2 {
		t.Fatalf("panicking submit must not reset the form")
	}
	if !strings.Contains(h.logs.String(), "kaboom") {
		t.Fatalf("expected panic value in log")
	}
}

func TestHandleSubmit_NilHandlerFails(t *testing.T) {
	h := newHarness(t)
	fillNameAge(h)
	if h.provider.HandleSubmit(context.Background(), nil) {
		t.Fatalf("nil submit handler must fail")
	}
	if h.provider.Len() != 2 {
		t.Fatalf("nil submit handler must not reset")
	}
}

func TestHandleClick_ReturnsResultAndResets(t *testing.T) {
	h := newHarness(t)
	fillNameAge(h)

	result := h.provider.HandleClick(context.Background(), func(_ context.Context, state form.Snapshot) (any, error) {
		name, _ := state.Get("name")
		return "hello " + name.String(), nil
	})
	if result != "hello Ada" {
		t.Fatalf("unexpected click result %v", result)
	}
	if h.provider.Len() != 0 {
		t.Fatalf("click must reset the form")
	}
}

func TestHandleClick_ErrorStillResets(t *testing.T) {
	h := newHarness(t)
	fillNameAge(h)

	result := h.provider.HandleClick(context.Background(), func(context.Context, form.Snapshot) (any, error) {
		return "partial", errors.New("nope")
	})
	if result != "partial" {
		t.Fatalf("expected handler result to pass through, got %v", result)
	}
	if h.provider.Len() != 0 {
		t.Fatalf("click must reset even when the handler fails")
	}
}

func TestHandleClick_PanicStillResets(t *testing.T) {
	h := newHarness(t)
	fillNameAge(h)

	result := h.provider.HandleClick(context.Background(), func(context.Context, form.Snapshot) (any, error) {
		panic("bad click")
	})
	if result != nil {
		t.Fatalf("expected nil result after panic, got %v", result)
	}
	if h.provider.Len() != 0 {
		t.Fatalf("click must reset after a panic")
	}
}

func TestHandleClick_NilHandlerReturnsSnapshot(t *testing.T) {
	h := newHarness(t)
	fillNameAge(h)

	result := h.provider.HandleClick(context.Background(), nil)
	state, ok := result.(form.Snapshot)
	if !ok {
		t.Fatalf("expected a Snapshot, got %T", result)
	}
	if diff := cmp.Diff([]string{"name", "age"}, state.Keys()); diff != "" {
		t.Fatalf("snapshot keys mismatch (-want +got):\n%s", diff)
	}
}

type recordingObserver struct {
	events []string
}

func (o *recordingObserver) FieldRegistered(key string, err error) {
	o.events = append(o.events, outcome("register:"+key, err))
}

func (o *recordingObserver) FieldUpdated(key string, err error) {
	o.events = append(o.events, outcome("update:"+key, err))
}

func (o *recordingObserver) FieldValidated(key string, valid bool) {
	if valid {
		o.events = append(o.events, "valid:"+key)
		return
	}
	o.events = append(o.events, "invalid:"+key)
}

func (o *recordingObserver) Dispatched(action form.Action, err error) {
	o.events = append(o.events, outcome(string(action), err))
}

func outcome(name string, err error) string {
	if err != nil {
		return name + ":error"
	}
	return name + ":ok"
}

func TestObserverSeesLifecycle(t *testing.T) {
	observer := &recordingObserver{}
	h := newHarness(t, form.WithObserver(observer))

	h.provider.RegisterField(textField("name", form.Required()))
	h.provider.RegisterField(textField("name", form.Required()))
	h.provider.UpdateField("name", model.StringValue(""))
	h.provider.UpdateField("ghost", model.StringValue(""))
	h.provider.Flush()
	h.provider.HandleSubmit(context.Background(), func(context.Context, form.Snapshot) error { return nil })

	want := []string{
		"register:name:ok",
		"register:name:error",
		"update:name:ok",
		"update:ghost:error",
		"invalid:name",
		"submit:ok",
	}
	if diff := cmp.Diff(want, observer.events); diff != "" {
		t.Fatalf("observer events mismatch (-want +got):\n%s", diff)
	}
}
