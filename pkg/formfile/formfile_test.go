package formfile_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/formfile"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/testsupport"
)

func TestLoadFile_YAML(t *testing.T) {
	doc, err := formfile.LoadFile(filepath.Join("testdata", "signup.yaml"))
	require.NoError(t, err)

	defs, err := doc.Definitions()
	require.NoError(t, err)

	keys := make([]string, 0, len(defs))
	kinds := make([]model.FieldKind, 0, len(defs))
	for _, def := range defs {
		keys = append(keys, def.FieldKey())
		kinds = append(kinds, def.FieldKind())
	}
	if diff := cmp.Diff([]string{"name", "email", "age", "terms", "plan", "send"}, keys); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	want := []model.FieldKind{model.KindText, model.KindEmail, model.KindNumber, model.KindCheckbox, model.KindDropdown, model.KindSubmit}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}

	age := defs[2].Record()
	n, ok := age.Value.Number()
	require.True(t, ok)
	require.Equal(t, float64(36), n)
	require.True(t, age.Validate(model.NumberValue(18)))
	require.False(t, age.Validate(model.NumberValue(17)))

	name := defs[0].Record()
	require.Equal(t, "Tell us your name", name.DefaultErrorText)
	require.False(t, name.Validate(model.StringValue("  ")))

	terms := defs[3].Record()
	require.Equal(t, "terms is invalid", terms.DefaultErrorText)

	plan := defs[4].Record()
	require.Equal(t, "pro", plan.Value.String())
}

func TestDocument_ProviderOptions(t *testing.T) {
	doc, err := formfile.LoadFile(filepath.Join("testdata", "signup.yaml"))
	require.NoError(t, err)

	opts, err := doc.ProviderOptions()
	require.NoError(t, err)
	p := form.New(append(opts, form.WithClock(testsupport.NewFakeClock()))...)

	require.Equal(t, "signup", p.ClassName())
	require.Equal(t, 150*time.Millisecond, p.DebounceDelay())
	require.Equal(t, form.FormatYAML, p.Format())
}

func TestDocument_Register(t *testing.T) {
	doc, err := formfile.LoadFile(filepath.Join("testdata", "signup.json"))
	require.NoError(t, err)

	p := form.New(form.WithClock(testsupport.NewFakeClock()))
	require.NoError(t, doc.Register(p))
	require.Equal(t, 2, p.Len())

	color, ok := p.Field("color")
	require.True(t, ok)
	require.Equal(t, model.KindRadio, color.Kind)
	require.Equal(t, []string{"red", "blue"}, color.Options)

	err = doc.Register(p)
	require.ErrorIs(t, err, form.ErrDuplicateKey)
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{name: "empty", doc: "", want: formfile.ErrEmptyDocument},
		{name: "no fields", doc: "form:\n  className: x\n", want: formfile.ErrEmptyDocument},
		{name: "unknown key", doc: "fields:\n  - key: a\n    kidn: text\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := formfile.Load(strings.NewReader(tc.doc))
			require.Error(t, err)
			if tc.want != nil {
				require.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestDefinitions_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{name: "missing kind", doc: "fields:\n  - key: a\n", want: model.ErrInvalidDefinition},
		{name: "choice without options", doc: "fields:\n  - key: a\n    kind: radio\n", want: model.ErrInvalidDefinition},
		{name: "duplicate", doc: "fields:\n  - {key: a, kind: text}\n  - {key: a, kind: text}\n", want: form.ErrDuplicateKey},
		{name: "bad rule", doc: "fields:\n  - key: a\n    kind: text\n    validations: [{kind: shout}]\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := formfile.Load(strings.NewReader(tc.doc))
			require.NoError(t, err)
			_, err = doc.Definitions()
			require.Error(t, err)
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestProviderOptions_BadDebounce(t *testing.T) {
	doc, err := formfile.Load(strings.NewReader("form:\n  debounce: soon\nfields:\n  - {key: a, kind: text}\n"))
	require.NoError(t, err)
	_, err = doc.ProviderOptions()
	require.Error(t, err)
}
