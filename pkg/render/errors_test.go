package render_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-material-widgets/pkg/forms"
	"github.com/goliatone/go-material-widgets/pkg/render"
)

func newSignupForm() *forms.Form {
	return forms.NewForm(
		forms.NewField("name", forms.TypeChar),
		forms.NewField("email", forms.TypeEmail),
		forms.NewField("tags", forms.TypeMultipleChoice, forms.WithRequired(false), forms.WithChoices(
			forms.Choice{Value: "a", Label: "A"},
		)),
	)
}

func TestMapErrorPayload(t *testing.T) {
	payload := map[string][]string{
		"/body/name":                 {"Name is required", " Name is required "},
		"body.email":                 {"Email invalid"},
		"$.data.tags[0]":             {"Tags must be unique"},
		"non_field_errors":           {"Form level error"},
		"__all__":                    {"  "},
		"request/body/unknown-field": {"Should fall back to form errors"},
		"owner/email":                {"Nested under unknown"},
		"":                           {"Unscoped form error"},
	}

	mapped := render.MapErrorPayload(newSignupForm(), payload)

	wantFields := map[string][]string{
		"name":  {"Name is required"},
		"email": {"Email invalid"},
		"tags":  {"Tags must be unique"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Form level error", "Nested under unknown", "Should fall back to form errors", "Unscoped form error"}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayload_Empty(t *testing.T) {
	mapped := render.MapErrorPayload(nil, nil)
	if len(mapped.Fields) != 0 || len(mapped.Form) != 0 {
		t.Fatalf("expected empty mapping, got %+v", mapped)
	}
}

func TestApplyErrors(t *testing.T) {
	form := newSignupForm()
	form.Bind(url.Values{"name": {"Ada"}, "email": {"ada@example.com"}}, nil)
	if !form.IsValid() {
		t.Fatalf("expected valid form, got %v", form.Errors())
	}

	err := render.ApplyErrors(form, render.ErrorMapping{
		Fields: map[string][]string{"email": {"Already taken"}},
		Form:   []string{"Try again"},
	})
	if err != nil {
		t.Fatalf("apply errors: %v", err)
	}
	if form.IsValid() {
		t.Fatalf("form stays valid after server errors")
	}
	want := forms.ErrorMap{
		"email":              {"Already taken"},
		forms.NonFieldErrors: {"Try again"},
	}
	if diff := cmp.Diff(want, form.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	err = render.ApplyErrors(form, render.ErrorMapping{Fields: map[string][]string{"ghost": {"x"}}})
	if !errors.Is(err, forms.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := render.ApplyErrors(nil, render.ErrorMapping{}); err == nil {
		t.Fatalf("expected error for nil form")
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
