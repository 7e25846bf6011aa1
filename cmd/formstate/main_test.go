package main

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formstate/pkg/renderers/tui"
)

type stubDriver struct {
	inputs []string
	infos  []string
}

func (d *stubDriver) Input(context.Context, tui.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", tui.ErrAborted
	}
	next := d.inputs[0]
	d.inputs = d.inputs[1:]
	return next, nil
}

func (d *stubDriver) Password(ctx context.Context, cfg tui.InputConfig) (string, error) {
	return d.Input(ctx, cfg)
}

func (d *stubDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) { return true, nil }

func (d *stubDriver) Select(_ context.Context, cfg tui.SelectConfig) (int, error) {
	return len(cfg.Options) - 1, nil
}

func (d *stubDriver) TextArea(ctx context.Context, cfg tui.TextAreaConfig) (string, error) {
	return d.Input(ctx, tui.InputConfig{Message: cfg.Message})
}

func (d *stubDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func run(t *testing.T, driver tui.PromptDriver, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	a := &app{stdout: &stdout, stderr: &stderr, driver: driver}
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRender_FormFile(t *testing.T) {
	out, _, err := run(t, nil, "render", "--file", "testdata/contact.yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "<form")
	assert.Contains(t, out, "contact")
	assert.Contains(t, out, `name="name"`)
	assert.Contains(t, out, `type="checkbox"`)
	assert.Contains(t, out, "<select")
	assert.Contains(t, out, `value="Send"`)
}

func TestRender_WritesOutputFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "form.html")
	out, _, err := run(t, nil, "render", "--file", "testdata/contact.yaml", "-o", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Form written to")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), `name="plan"`)
}

func TestRender_OpenAPIOperation(t *testing.T) {
	out, _, err := run(t, nil, "render", "--openapi", "testdata/openapi.yaml", "--operation", "createUser", "--class", "api")
	require.NoError(t, err)
	assert.Contains(t, out, `type="email"`)
	assert.Contains(t, out, `type="radio"`)
	assert.Contains(t, out, "api")
}

func TestSourceFlagErrors(t *testing.T) {
	cases := map[string][]string{
		"no source":         {"render"},
		"both sources":      {"render", "--file", "testdata/contact.yaml", "--openapi", "testdata/openapi.yaml"},
		"missing op":        {"render", "--openapi", "testdata/openapi.yaml"},
		"bad format":        {"render", "--file", "testdata/contact.yaml", "--format", "xml"},
		"bad log level":     {"render", "--file", "testdata/contact.yaml", "--log-level", "loud"},
		"operations no doc": {"operations"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := run(t, nil, args...)
			assert.Error(t, err)
		})
	}
}

func TestOperations_ListsIDs(t *testing.T) {
	out, _, err := run(t, nil, "operations", "--openapi", "testdata/openapi.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "createUser")
	assert.Contains(t, out, "/users")
}

func TestPrompt_PrintsSubmittedState(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Ada"}}
	out, _, err := run(t, driver, "prompt", "--file", "testdata/contact.yaml", "--debounce", "1ms")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ada","subscribe":"true","plan":"pro","send":"Send"}`, out)
}

func TestPrompt_AbortIsNotAnError(t *testing.T) {
	_, _, err := run(t, &stubDriver{}, "prompt", "--file", "testdata/contact.yaml")
	assert.NoError(t, err)
}

func TestServeHandler_FormAndMetrics(t *testing.T) {
	var stderr bytes.Buffer
	a := &app{stdout: &bytes.Buffer{}, stderr: &stderr}
	a.source.file = "testdata/contact.yaml"
	a.logger = slog.New(slog.NewTextHandler(&stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	handler, err := a.serveHandler(context.Background(), "Contact", true)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Contact</title>")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `formstate_field_registrations_total{outcome="ok"} 4`)
}
