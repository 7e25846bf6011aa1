package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
)

// Session fills a Provider's registered fields from terminal prompts and
// submits the result.
type Session struct {
	provider    *form.Provider
	driver      PromptDriver
	theme       Theme
	maxAttempts int
	logger      *slog.Logger
}

// New builds a session over p using the survey driver unless overridden.
func New(p *form.Provider, options ...Option) (*Session, error) {
	if p == nil {
		return nil, ErrNoProvider
	}
	s := &Session{
		provider:    p,
		maxAttempts: DefaultMaxAttempts,
		logger:      slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = SurveyDriver(nil)
	}
	s.logger = s.logger.With("component", "tui")
	return s, nil
}

// Run prompts every registered field in order, then hands the form to
// submit through the provider. Action fields are not prompted. A field whose
// debounced validation fails is prompted again with its error shown. Run
// reports whether the submit succeeded.
func (s *Session) Run(ctx context.Context, submit form.SubmitFunc) (bool, error) {
	if ctx == nil {
		return false, errors.New("tui: context is required")
	}
	for _, field := range s.provider.Fields() {
		if field.Kind.IsAction() {
			continue
		}
		if err := s.promptField(ctx, field); err != nil {
			return false, err
		}
	}

	ok := s.provider.HandleSubmit(ctx, submit)
	if !ok {
		if err := s.driver.Info(ctx, s.theme.ErrorPrefix+"submit failed"); err != nil {
			return false, err
		}
	}
	return ok, nil
}

func (s *Session) promptField(ctx context.Context, field model.FieldRecord) error {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		value, err := s.ask(ctx, field)
		if err != nil {
			return fmt.Errorf("tui: field %q: %w", field.Key, err)
		}

		switch {
		case field.Kind == model.KindCheckbox:
			if value.String() != field.Value.String() {
				s.provider.UpdateField(field.Key, value)
			}
		default:
			s.provider.UpdateField(field.Key, value)
		}

		s.provider.Flush()
		current, ok := s.provider.Field(field.Key)
		if !ok || !current.HasError() {
			return nil
		}
		field = current
		s.logger.Debug("field rejected", "key", field.Key, "attempt", attempt)
		if err := s.driver.Info(ctx, s.theme.ErrorPrefix+current.Error); err != nil {
			return err
		}
	}
	return fmt.Errorf("tui: field %q: %w", field.Key, ErrTooManyAttempts)
}

func (s *Session) ask(ctx context.Context, field model.FieldRecord) (model.Value, error) {
	message := s.message(field)

	switch {
	case field.Kind == model.KindCheckbox:
		checked, err := s.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: field.Checked()})
		if err != nil {
			return model.Value{}, err
		}
		return model.BoolValue(checked), nil

	case field.Kind.IsChoice():
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      field.Options,
			DefaultIndex: indexOf(field.Options, field.Value.String()),
		})
		if err != nil {
			return model.Value{}, err
		}
		if idx < 0 || idx >= len(field.Options) {
			return model.Value{}, fmt.Errorf("tui: selection %d out of range", idx)
		}
		return model.StringValue(field.Options[idx]), nil

	case field.Kind == model.KindPassword:
		text, err := s.driver.Password(ctx, InputConfig{Message: message, Placeholder: field.Placeholder})
		return model.StringValue(text), err

	case field.Kind == model.KindTextarea:
		text, err := s.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: field.Value.String()})
		return model.StringValue(text), err

	case field.Kind == model.KindNumber:
		text, err := s.driver.Input(ctx, InputConfig{
			Message:     message,
			Default:     field.Value.String(),
			Placeholder: field.Placeholder,
			Validator:   validateNumber,
		})
		if err != nil {
			return model.Value{}, err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return model.StringValue(""), nil
		}
		n, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return model.Value{}, err
		}
		return model.NumberValue(n), nil

	default:
		text, err := s.driver.Input(ctx, InputConfig{
			Message:     message,
			Default:     field.Value.String(),
			Placeholder: field.Placeholder,
		})
		return model.StringValue(text), err
	}
}

func (s *Session) message(field model.FieldRecord) string {
	label := field.Key
	if field.Placeholder != "" && !field.Kind.IsChoice() {
		label = fmt.Sprintf("%s (%s)", field.Key, field.Placeholder)
	}
	if field.Required {
		label += " *"
	}
	return s.theme.PromptPrefix + label
}

func validateNumber(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(text, 64); err != nil {
		return fmt.Errorf("%q is not a number", text)
	}
	return nil
}
