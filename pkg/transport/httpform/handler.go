package httpform

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-formstate/pkg/components"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
)

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the request and error logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithSubmit sets the function that receives submitted state. Without one,
// submits are logged and accepted.
func WithSubmit(fn form.SubmitFunc) Option {
	return func(h *Handler) {
		h.submit = fn
	}
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(h *Handler) {
		h.title = title
	}
}

// Handler exposes one form over HTTP.
type Handler struct {
	form   *components.Form
	submit form.SubmitFunc
	logger *slog.Logger
	title  string
	router chi.Router
}

// New builds the handler and mounts f.
func New(f *components.Form, options ...Option) *Handler {
	h := &Handler{
		form:   f,
		logger: slog.Default(),
		title:  "Form",
	}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}
	if h.submit == nil {
		h.submit = func(_ context.Context, state form.Snapshot) error {
			h.logger.Info("form submitted", "fields", state.Len())
			return nil
		}
	}
	h.logger = h.logger.With("component", "httpform")
	f.Mount()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Get("/", h.page)
	r.Post("/fields/{key}", h.updateField)
	r.Post("/validate", h.validate)
	r.Post("/submit", h.submitForm)
	r.Post("/reset", h.reset)
	r.Get("/state", h.state)

	h.router = r
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	h.form.Mount()
	markup, err := h.form.Render(r.Context())
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!doctype html>\n<html>\n<head><meta charset=\"utf-8\"><title>%s</title></head>\n<body>\n%s\n</body>\n</html>\n",
		html.EscapeString(h.title), strings.TrimSpace(markup))
}

func (h *Handler) updateField(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	field, ok := h.form.Field(key)
	if !ok {
		h.fail(w, r, http.StatusNotFound, fmt.Errorf("field %q: %w", key, form.ErrUnknownKey))
		return
	}
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, http.StatusBadRequest, err)
		return
	}

	field.Mount()
	if !field.Input(parseValue(field, r.PostFormValue("value"))) {
		h.fail(w, r, http.StatusConflict, fmt.Errorf("field %q: %w", key, form.ErrUnknownKey))
		return
	}
	h.writeHTML(w, r, field.Render)
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	ran := h.form.Provider().Flush()
	h.logger.Debug("pending validations flushed", "count", ran)
	h.writeHTML(w, r, h.form.Render)
}

func (h *Handler) submitForm(w http.ResponseWriter, r *http.Request) {
	p := h.form.Provider()
	p.Flush()
	if p.ActionDisabled(model.KindSubmit) {
		h.writeJSON(w, http.StatusUnprocessableEntity, submitResponse{Submitted: false, Errors: fieldErrors(p)})
		return
	}
	if !p.HandleSubmit(r.Context(), h.submit) {
		h.writeJSON(w, http.StatusUnprocessableEntity, submitResponse{Submitted: false})
		return
	}
	h.form.Mount()
	h.writeJSON(w, http.StatusOK, submitResponse{Submitted: true})
}

func (h *Handler) reset(w http.ResponseWriter, _ *http.Request) {
	h.form.Provider().ResetForm()
	h.form.Mount()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) state(w http.ResponseWriter, r *http.Request) {
	p := h.form.Provider()
	state, err := p.GetFormState()
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", p.Format().ContentType())
	_, _ = w.Write([]byte(state))
}

type submitResponse struct {
	Submitted bool              `json:"submitted"`
	Errors    map[string]string `json:"errors,omitempty"`
}

func fieldErrors(p *form.Provider) map[string]string {
	out := map[string]string{}
	for _, record := range p.Fields() {
		if record.HasError() {
			out[record.Key] = record.Error
		}
	}
	return out
}

type kinded interface {
	Kind() model.FieldKind
}

// parseValue keeps number inputs numeric when the text parses to a finite
// number. Anything else, including NaN and Inf, is stored as typed.
func parseValue(field components.Field, raw string) model.Value {
	if k, ok := field.(kinded); ok && k.Kind() == model.KindNumber {
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
			return model.NumberValue(n)
		}
	}
	return model.StringValue(raw)
}

func (h *Handler) writeHTML(w http.ResponseWriter, r *http.Request, render func(context.Context) (string, error)) {
	markup, err := render(r.Context())
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(markup))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("encode response", "error", err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(r.Context(), level, "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err,
	)
	http.Error(w, http.StatusText(status), status)
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
