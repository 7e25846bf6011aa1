package components_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formstate/pkg/components"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/testsupport"
)

func newProvider(t *testing.T) (*form.Provider, *testsupport.FakeClock) {
	t.Helper()
	clock := testsupport.NewFakeClock()
	return form.New(form.WithClock(clock), form.WithClassName("signup")), clock
}

func mustRender(t *testing.T, field interface {
	Render(context.Context) (string, error)
}) string {
	t.Helper()
	out, err := field.Render(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out
}

func assertContains(t *testing.T, out string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, out)
		}
	}
}

func assertNotContains(t *testing.T, out string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(out, fragment) {
			t.Fatalf("unexpected %q in output:\n%s", fragment, out)
		}
	}
}

func emailBox(p *form.Provider) *components.InputBox {
	return components.NewInputBox(p, components.InputProps{
		Key:         "email",
		Kind:        model.KindEmail,
		Required:    true,
		Placeholder: "you@example.com",
		ErrorText:   "Enter a valid email",
		Validate:    form.Email(),
	})
}

func TestInputBox_MountRegistersOnce(t *testing.T) {
	p, _ := newProvider(t)
	box := emailBox(p)

	if !box.Mount() {
		t.Fatalf("mount failed")
	}
	p.UpdateField("email", model.StringValue("a@b.com"))
	if !box.Mount() {
		t.Fatalf("second mount should report the field registered")
	}
	if p.Len() != 1 {
		t.Fatalf("expected one record, got %d", p.Len())
	}
	record, _ := p.Field("email")
	if record.Value.String() != "a@b.com" {
		t.Fatalf("remount overwrote value: %q", record.Value.String())
	}
}

func TestInputBox_RendersValueAndError(t *testing.T) {
	p, clock := newProvider(t)
	box := emailBox(p)
	box.Mount()

	box.Input(model.StringValue("nope"))
	out := mustRender(t, box)
	assertContains(t, out, `type="email"`, `value="nope"`, `placeholder="you@example.com"`, "required", "fs-input--valid")
	assertNotContains(t, out, "fs-error--visible")

	clock.Advance(p.DebounceDelay())
	out = mustRender(t, box)
	assertContains(t, out, "fs-input--error", "fs-error--visible", "Enter a valid email", "<svg")
}

func TestInputBox_ClearedValueRendersEmpty(t *testing.T) {
	p, _ := newProvider(t)
	box := components.NewInputBox(p, components.InputProps{
		Key:       "name",
		Kind:      model.KindText,
		Value:     model.StringValue("Ada"),
		ErrorText: "required",
		Validate:  form.Always(),
	})

	assertContains(t, mustRender(t, box), `value="Ada"`)
	box.Mount()
	assertContains(t, mustRender(t, box), `value="Ada"`, "fs-input--valid")

	box.Input(model.StringValue(""))
	out := mustRender(t, box)
	assertContains(t, out, `value=""`)
	assertNotContains(t, out, `value="Ada"`, "fs-input--valid")
}

func TestInputBox_PasswordVisibilityIsLocal(t *testing.T) {
	p, _ := newProvider(t)
	box := components.NewInputBox(p, components.InputProps{
		Key:       "secret",
		Kind:      model.KindPassword,
		ErrorText: "too short",
		Validate:  form.MinLength(8),
	})
	box.Mount()

	assertContains(t, mustRender(t, box), `type="password"`, `aria-label="Show password"`)

	if !box.TogglePasswordVisibility() {
		t.Fatalf("toggle should report visible")
	}
	assertContains(t, mustRender(t, box), `type="text"`, `aria-label="Hide password"`)

	other := components.NewInputBox(p, components.InputProps{Key: "secret", Kind: model.KindPassword})
	if other.PasswordVisible() {
		t.Fatalf("visibility leaked across components")
	}
	if box.TogglePasswordVisibility() {
		t.Fatalf("second toggle should hide")
	}
}

func TestInputBox_Checkbox(t *testing.T) {
	p, _ := newProvider(t)
	box := components.NewInputBox(p, components.InputProps{
		Key:       "terms",
		Kind:      model.KindCheckbox,
		Value:     model.StringValue("true"),
		ErrorText: "required",
		Validate:  func(v model.Value) bool { return v.String() == "true" },
	})
	box.Mount()

	out := mustRender(t, box)
	assertContains(t, out, `type="checkbox"`, `value="false"`)
	assertNotContains(t, out, " checked", "fs-error")

	box.Input(model.StringValue("ignored"))
	assertContains(t, mustRender(t, box), " checked", `value="true"`)

	box.Input(model.StringValue("ignored"))
	assertNotContains(t, mustRender(t, box), " checked")
}

func TestInputBox_TextareaAndStyle(t *testing.T) {
	p, _ := newProvider(t)
	box := components.NewInputBox(p, components.InputProps{
		Key:       "bio",
		Kind:      model.KindTextarea,
		ErrorText: "required",
		Validate:  form.Required(),
		Style:     components.Style{Color: "navy", ClassName: "wide"},
	})
	box.Mount()
	box.Input(model.StringValue("<b>hi</b>"))

	out := mustRender(t, box)
	assertContains(t, out, "<textarea", "&lt;b&gt;hi&lt;/b&gt;</textarea>", "color: navy", "wide")
	assertNotContains(t, out, "width: 20dvw")
}

func TestInputBox_ActionDisabledWhileErrors(t *testing.T) {
	p, clock := newProvider(t)
	email := emailBox(p)
	send := components.NewInputBox(p, components.InputProps{Key: "send", Kind: model.KindSubmit, Value: model.StringValue("Send")})
	email.Mount()
	send.Mount()

	assertNotContains(t, mustRender(t, send), " disabled")

	email.Input(model.StringValue("bad"))
	clock.Advance(p.DebounceDelay())
	assertContains(t, mustRender(t, send), " disabled", `value="Send"`)

	called := false
	if send.Submit(context.Background(), func(context.Context, form.Snapshot) error {
		called = true
		return nil
	}) {
		t.Fatalf("disabled submit must not succeed")
	}
	if called {
		t.Fatalf("disabled submit must not dispatch")
	}

	email.Input(model.StringValue("ada@example.com"))
	p.Flush()
	if !send.Submit(context.Background(), func(context.Context, form.Snapshot) error { return nil }) {
		t.Fatalf("enabled submit should succeed")
	}
	if p.Len() != 0 {
		t.Fatalf("submit should reset the form")
	}
}

func TestInputBox_ClickReturnsResult(t *testing.T) {
	p, _ := newProvider(t)
	name := components.NewInputBox(p, components.InputProps{Key: "name", ErrorText: "x", Validate: form.Always()})
	button := components.NewInputBox(p, components.InputProps{Key: "go", Kind: model.KindButton, Value: model.StringValue("Go")})
	name.Mount()
	button.Mount()
	name.Input(model.StringValue("Ada"))

	result, dispatched := button.Click(context.Background(), func(_ context.Context, state form.Snapshot) (any, error) {
		v, _ := state.Get("name")
		return v.String(), nil
	})
	if !dispatched || result != "Ada" {
		t.Fatalf("unexpected click outcome %v %v", result, dispatched)
	}
}

func TestDropDown(t *testing.T) {
	p, _ := newProvider(t)
	dd := components.NewDropDown(p, components.ChoiceProps{Key: "size", Options: []string{"s", "m", "l"}})
	if !dd.Mount() {
		t.Fatalf("mount failed")
	}

	out := mustRender(t, dd)
	assertContains(t, out, `<option value="" disabled selected>Select an option</option>`, `<option value="m">m</option>`)

	dd.Select("m")
	out = mustRender(t, dd)
	assertContains(t, out, `<option value="m" selected>m</option>`)
	assertNotContains(t, out, "disabled selected")
	if p.PendingValidations() != 0 {
		t.Fatalf("dropdown must not schedule validation")
	}
}

func TestDropDown_LocalizedPlaceholder(t *testing.T) {
	p, _ := newProvider(t)
	r, err := components.NewRenderer(components.WithLocalizer(render.Localizer{
		Locale:     "es",
		Translator: render.Catalog{"es": {components.MessageSelectOption: "Elige una opción"}},
	}))
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	dd := components.NewDropDown(p, components.ChoiceProps{Key: "size", Options: []string{"s"}}, components.WithRenderer(r))
	dd.Mount()
	assertContains(t, mustRender(t, dd), "Elige una opción")
}

func TestRadioButton(t *testing.T) {
	p, _ := newProvider(t)
	rb := components.NewRadioButton(p, components.ChoiceProps{Key: "color", Options: []string{"red", "blue"}, Value: model.StringValue("blue")})
	rb.Mount()

	out := mustRender(t, rb)
	if strings.Count(out, `name="color"`) != 2 {
		t.Fatalf("radio inputs should share the key as name:\n%s", out)
	}
	assertContains(t, out, `value="blue" checked`, "fs-radio-group--stacked")

	rb.Select("red")
	out = mustRender(t, rb)
	assertContains(t, out, `value="red" checked`)
	assertNotContains(t, out, `value="blue" checked`)
}

func TestForm_MountAndRender(t *testing.T) {
	p, _ := newProvider(t)
	f := components.NewForm(p)
	if err := f.Add(
		emailBox(p),
		components.NewDropDown(p, components.ChoiceProps{Key: "size", Options: []string{"s"}}),
	); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := f.Add(emailBox(p)); !errors.Is(err, form.ErrDuplicateKey) {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	if got := f.Mount(); got != 2 {
		t.Fatalf("expected 2 mounted fields, got %d", got)
	}
	out := mustRender(t, f)
	assertContains(t, out, `<form class="fs-form signup"`, `data-field="email"`, `data-field="size"`)
	if strings.Index(out, `data-field="email"`) > strings.Index(out, `data-field="size"`) {
		t.Fatalf("fields rendered out of order")
	}
}

func TestForm_ThemeConfig(t *testing.T) {
	selection := &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:   "acme",
			Tokens: map[string]string{"brand": "#123456", "radius": "4px"},
			Assets: theme.Assets{
				Prefix: "/assets/acme",
				Files:  map[string]string{components.StylesheetAsset: "forms.css"},
			},
			Variants: map[string]theme.Variant{
				"dark": {Tokens: map[string]string{"brand": "#654321"}},
			},
		},
	}
	cfg := components.ThemeConfig(selection)
	if cfg.CSSVars["--fs-brand"] != "#654321" {
		t.Fatalf("variant token should win, got %q", cfg.CSSVars["--fs-brand"])
	}
	if got := cfg.AssetURL(components.StylesheetAsset); got != "/assets/acme/forms.css" {
		t.Fatalf("unexpected asset url %q", got)
	}

	r, err := components.NewRenderer(components.WithTheme(cfg))
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	p, _ := newProvider(t)
	f := components.NewForm(p, components.WithRenderer(r))
	out := mustRender(t, f)
	assertContains(t, out,
		`<link rel="stylesheet" href="/assets/acme/forms.css">`,
		`style="--fs-brand: #654321; --fs-radius: 4px"`,
		`data-theme="acme"`,
		`data-variant="dark"`,
	)
}

type stubSelector struct {
	selection *theme.Selection
	err       error
}

func (s stubSelector) Select(string, string, ...theme.QueryOption) (*theme.Selection, error) {
	return s.selection, s.err
}

func TestSelectTheme(t *testing.T) {
	cfg, err := components.SelectTheme(stubSelector{selection: &theme.Selection{Theme: "plain"}}, "plain", "")
	if err != nil || cfg.Theme != "plain" {
		t.Fatalf("unexpected %+v %v", cfg, err)
	}
	if _, err := components.SelectTheme(stubSelector{err: errors.New("missing")}, "x", ""); err == nil {
		t.Fatalf("expected selector error")
	}
	if _, err := components.SelectTheme(nil, "x", ""); err == nil {
		t.Fatalf("expected nil selector error")
	}
}

func TestRenderer_SanitizesIcons(t *testing.T) {
	r, err := components.NewRenderer(components.WithIcons(components.Icons{
		Error: `<svg viewBox="0 0 10 10" onload="alert(1)"><script>alert(1)</script><path d="M0 0h10"/></svg>`,
	}))
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	p, clock := newProvider(t)
	box := components.NewInputBox(p, components.InputProps{
		Key: "name", ErrorText: "bad", Validate: form.MinLength(9),
	}, components.WithRenderer(r))
	box.Mount()
	box.Input(model.StringValue("x"))
	clock.Advance(300 * time.Millisecond)

	out := mustRender(t, box)
	assertContains(t, out, "<path")
	assertNotContains(t, out, "<script", "onload")
}

func TestRender_CancelledContext(t *testing.T) {
	p, _ := newProvider(t)
	box := emailBox(p)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := box.Render(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFormFromDefinitions(t *testing.T) {
	p, _ := newProvider(t)
	defs := []model.Definition{
		model.Validated{Key: "name", Kind: model.KindText, DefaultErrorText: "required", Validate: form.Required()},
		model.Choice{Key: "plan", Kind: model.KindRadio, Options: []string{"free", "pro"}},
		model.Choice{Key: "size", Kind: model.KindDropdown, Options: []string{"s", "m"}},
		model.Validated{Key: "go", Kind: model.KindSubmit, Value: model.StringValue("Go")},
	}

	f, err := components.FormFromDefinitions(p, defs)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := f.Mount(); got != 4 {
		t.Fatalf("expected 4 mounted fields, got %d", got)
	}
	out := mustRender(t, f)
	assertContains(t, out, `name="name"`, `type="radio"`, "<select", `type="submit"`)

	if _, ok := f.Fields()[1].(*components.RadioButton); !ok {
		t.Fatalf("radio definition built %T", f.Fields()[1])
	}
	if _, err := components.FromDefinition(p, nil); !errors.Is(err, model.ErrInvalidDefinition) {
		t.Fatalf("nil definition error = %v", err)
	}
}
