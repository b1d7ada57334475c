package vanilla_test

import (
	"context"
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-material-widgets/pkg/forms"
	"github.com/goliatone/go-material-widgets/pkg/material"
	"github.com/goliatone/go-material-widgets/pkg/render"
	"github.com/goliatone/go-material-widgets/pkg/renderers/vanilla"
	"github.com/goliatone/go-material-widgets/pkg/testsupport"
)

func signupForm() *forms.Form {
	return forms.NewForm(
		forms.NewField("username", forms.TypeChar, forms.WithMaxLength(30)),
		forms.NewField("email", forms.TypeEmail, forms.WithHelpText("Work address")),
		forms.NewField("avatar", forms.TypeFile, forms.WithRequired(false)),
	)
}

func assertContains(t *testing.T, got string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in:\n%s", want, got)
		}
	}
}

func TestRenderer_MaterialPage(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if renderer.Name() != "material" || renderer.ContentType() != "text/html; charset=utf-8" {
		t.Fatalf("unexpected identity %s %s", renderer.Name(), renderer.ContentType())
	}

	form := signupForm()
	output, err := renderer.Render(testsupport.Context(), form, render.RenderOptions{
		Title:     "Sign <up>",
		Action:    "/signup",
		Method:    "put",
		StaticURL: "/static/",
		Locale:    "en",
		Hidden:    []render.HiddenField{render.CSRFToken("csrfmiddlewaretoken", "tok")},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	got := string(output)
	assertContains(t, got,
		`<html lang="en">`,
		`<title>Sign &lt;up&gt;</title>`,
		`<link href="`+material.DefaultCSS+`"`,
		`<form class="mw-form" action="/signup" method="POST" enctype="multipart/form-data" novalidate>`,
		`class="mdc-text-field__input"`,
		`Work address`,
		`<input type="hidden" name="csrfmiddlewaretoken" value="tok">`,
		`<input type="hidden" name="_method" value="PUT">`,
		`<button type="submit" class="mdc-button mdc-button--raised">Submit</button>`,
	)
	for _, field := range form.Fields() {
		if _, ok := field.Widget.(material.Styled); !ok {
			t.Fatalf("field %s not materialized", field.Name)
		}
	}
}

func TestRenderer_BindsValuesAndErrors(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	form := signupForm()
	output, err := renderer.Render(testsupport.Context(), form, render.RenderOptions{
		Values: url.Values{"username": {"ada"}, "email": {"ada@example.com"}},
		Errors: map[string][]string{
			"/body/email": {"Already registered"},
			"":            {"Please retry"},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	got := string(output)
	assertContains(t, got,
		`value="ada"`,
		`Already registered`,
		`Please retry`,
		`class="mdc-errorlist mdc-list`,
	)
	want := forms.ErrorMap{
		"email":              {"Already registered"},
		forms.NonFieldErrors: {"Please retry"},
	}
	if diff := cmp.Diff(want, form.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_DefaultLayout(t *testing.T) {
	renderer, err := vanilla.New(
		vanilla.WithLayout(vanilla.LayoutDefault),
		vanilla.WithSubmitLabel("Send"),
		vanilla.WithChromeClass(vanilla.ClassForm, "signup"),
	)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if renderer.Name() != "default" {
		t.Fatalf("name %q", renderer.Name())
	}

	form := signupForm()
	output, err := renderer.Render(testsupport.Context(), form, render.RenderOptions{Method: "get"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	got := string(output)
	assertContains(t, got,
		`<form class="signup" action="" method="GET"`,
		`<label for="id_username">Username:</label>`,
		`<button type="submit">Send</button>`,
	)
	if strings.Contains(got, "mdc-") {
		t.Fatalf("default layout must not materialize:\n%s", got)
	}
	if strings.Contains(got, `name="_method"`) {
		t.Fatalf("GET needs no override:\n%s", got)
	}
}

func TestRenderer_Localizes(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	form := signupForm()
	if err := material.Apply(form); err != nil {
		t.Fatalf("apply: %v", err)
	}
	output, err := renderer.Render(testsupport.Context(), form, render.RenderOptions{
		Locale:    "es",
		KeyPrefix: "signup",
		Translator: render.TranslatorFunc(func(_, key string, _ ...any) (string, error) {
			if key == "signup.username.label" {
				return "Usuario", nil
			}
			return "", io.EOF
		}),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, string(output), `>Usuario</label>`)
}

type stubTemplateRenderer struct {
	names []string
	data  map[string]any
}

func (s *stubTemplateRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return s.RenderTemplate(name, data, out...)
}

func (s *stubTemplateRenderer) RenderTemplate(name string, data any, _ ...io.Writer) (string, error) {
	s.names = append(s.names, name)
	s.data, _ = data.(map[string]any)
	return "custom-output", nil
}

func (s *stubTemplateRenderer) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (s *stubTemplateRenderer) RegisterFilter(string, func(any, any) (any, error)) error {
	return nil
}

func (s *stubTemplateRenderer) GlobalContext(any) error { return nil }

func TestRenderer_WithTemplateRenderer(t *testing.T) {
	stub := &stubTemplateRenderer{}
	renderer, err := vanilla.New(vanilla.WithTemplateRenderer(stub), vanilla.WithLayout(vanilla.LayoutDefault))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(testsupport.Context(), signupForm(), render.RenderOptions{Title: "T"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(output) != "custom-output" {
		t.Fatalf("unexpected output %q", output)
	}
	if diff := cmp.Diff([]string{vanilla.PageTemplate}, stub.names); diff != "" {
		t.Fatalf("template names (-want +got):\n%s", diff)
	}
	if stub.data["title"] != "T" || stub.data["method"] != "POST" {
		t.Fatalf("unexpected page data %v", stub.data)
	}
}

func TestRenderer_RejectsBadInput(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := renderer.Render(testsupport.Context(), nil, render.RenderOptions{}); err == nil {
		t.Fatalf("expected error for nil form")
	}

	ctx, cancel := context.WithCancel(testsupport.Context())
	cancel()
	if _, err := renderer.Render(ctx, signupForm(), render.RenderOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestRenderer_RegistersByLayout(t *testing.T) {
	registry := render.NewRegistry()
	for _, layout := range []vanilla.Layout{vanilla.LayoutMaterial, vanilla.LayoutDefault} {
		renderer, err := vanilla.New(vanilla.WithLayout(layout))
		if err != nil {
			t.Fatalf("new renderer: %v", err)
		}
		registry.MustRegister(renderer)
	}
	if diff := cmp.Diff([]string{"default", "material"}, registry.List()); diff != "" {
		t.Fatalf("registry (-want +got):\n%s", diff)
	}
}
