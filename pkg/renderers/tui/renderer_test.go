package tui

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-material-widgets/pkg/forms"
	"github.com/goliatone/go-material-widgets/pkg/material"
	"github.com/goliatone/go-material-widgets/pkg/render"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	textAreas    []string
	passwords    []string
	infoMessages []string
	prompts      []string
	selectOpts   [][]string
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	textPos      int
	passPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.prompts = append(s.prompts, cfg.Message)
	s.selectOpts = append(s.selectOpts, cfg.Options)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.prompts = append(s.prompts, cfg.Message)
	s.selectOpts = append(s.selectOpts, cfg.Options)
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func profileForm(t *testing.T) *forms.Form {
	t.Helper()
	form, err := material.NewForm([]*forms.Field{
		forms.NewField("username", forms.TypeChar, forms.WithMaxLength(8)),
		forms.NewField("password", forms.TypePassword),
		forms.NewField("bio", forms.TypeText, forms.WithRequired(false)),
		forms.NewField("subscribe", forms.TypeBoolean, forms.WithRequired(false)),
		forms.NewField("color", forms.TypeChoice, forms.WithWidget(forms.NewRadioSelect(nil, nil)),
			forms.WithChoices(forms.Choice{Value: "r", Label: "Red"}, forms.Choice{Value: "b", Label: "Blue"}),
			forms.WithChoiceHelpText("Warm", "<b>Cold</b>"),
		),
		forms.NewField("tags", forms.TypeMultipleChoice, forms.WithRequired(false),
			forms.WithChoices(forms.Choice{Value: "go", Label: "Go"}, forms.Choice{Value: "py", Label: "Python"}),
		),
		forms.NewField("when", forms.TypeSplitDateTime),
		forms.NewField("avatar", forms.TypeFile, forms.WithRequired(false)),
	})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return form
}

func TestFill_PromptsByWidgetKind(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"ada", "2024-03-09", "14:30:00"},
		passwords: []string{"s3cret"},
		textAreas: []string{"Hello"},
		confirm:   []bool{true},
		selectIdx: []int{1},
		multiIdx:  [][]int{{0, 1}},
	}
	renderer, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	form := profileForm(t)
	submitted, err := renderer.Fill(context.Background(), form)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	want := url.Values{
		"username":  {"ada"},
		"password":  {"s3cret"},
		"bio":       {"Hello"},
		"subscribe": {"true"},
		"color":     {"b"},
		"tags":      {"go", "py"},
		"when_0":    {"2024-03-09"},
		"when_1":    {"14:30:00"},
	}
	if diff := cmp.Diff(want, submitted); diff != "" {
		t.Fatalf("submission mismatch (-want +got):\n%s", diff)
	}
	wantPrompts := []string{"Username", "Password", "Bio", "Subscribe", "Color", "Tags", "When (Date)", "When (Time)"}
	if diff := cmp.Diff(wantPrompts, driver.prompts); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Red (Warm)", "Blue (Cold)"}, driver.selectOpts[0]); diff != "" {
		t.Fatalf("radio options mismatch (-want +got):\n%s", diff)
	}
	if len(driver.infoMessages) != 1 || !strings.Contains(driver.infoMessages[0], "Avatar") {
		t.Fatalf("expected file skip notice, got %v", driver.infoMessages)
	}

	if !form.IsValid() {
		t.Fatalf("form invalid after fill: %v", form.Errors())
	}
	cleaned := form.CleanedData()
	when, ok := cleaned["when"].(time.Time)
	if !ok || !when.Equal(time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)) {
		t.Fatalf("split date time cleaned to %v", cleaned["when"])
	}
}

func TestFill_AsksAgainForInvalidFields(t *testing.T) {
	driver := &stubDriver{inputs: []string{"not-an-email", "ada@example.com"}}
	renderer, err := New(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	form := forms.NewForm(forms.NewField("email", forms.TypeEmail))
	submitted, err := renderer.Fill(context.Background(), form)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if submitted.Get("email") != "ada@example.com" {
		t.Fatalf("unexpected submission %v", submitted)
	}
	if len(driver.infoMessages) != 1 || !strings.HasPrefix(driver.infoMessages[0], "! Email: ") {
		t.Fatalf("expected one error notice, got %v", driver.infoMessages)
	}
}

func TestFill_GivesUpAfterMaxAttempts(t *testing.T) {
	driver := &stubDriver{inputs: []string{"x", "y"}}
	renderer, err := New(WithPromptDriver(driver), WithMaxAttempts(2))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	form := forms.NewForm(forms.NewField("age", forms.TypeInteger))
	_, err = renderer.Fill(context.Background(), form)
	if !errors.Is(err, forms.ErrInvalidForm) {
		t.Fatalf("expected ErrInvalidForm, got %v", err)
	}
	var invalid *forms.InvalidFormError
	if !errors.As(err, &invalid) || len(invalid.Errors["age"]) == 0 {
		t.Fatalf("expected age errors, got %v", err)
	}
}

func TestFill_Aborts(t *testing.T) {
	renderer, err := New(WithPromptDriver(&stubDriver{}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := renderer.Fill(ctx, forms.NewForm(forms.NewField("name", forms.TypeChar))); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := renderer.Fill(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil form")
	}
}

func TestRender_Formats(t *testing.T) {
	newForm := func() *forms.Form {
		return forms.NewForm(
			forms.NewField("name", forms.TypeChar),
			forms.NewField("age", forms.TypeInteger),
		)
	}

	tests := []struct {
		name        string
		format      OutputFormat
		contentType string
		want        string
	}{
		{name: "form", format: OutputFormatFormURLEncoded, contentType: "application/x-www-form-urlencoded", want: "age=36&csrf=tok&name=Ada"},
		{name: "pretty", format: OutputFormatPrettyText, contentType: "text/plain; charset=utf-8", want: "age=36\ncsrf=tok\nname=Ada\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			driver := &stubDriver{inputs: []string{"Ada", "36"}}
			renderer, err := New(WithPromptDriver(driver), WithOutputFormat(tc.format))
			if err != nil {
				t.Fatalf("new: %v", err)
			}
			if renderer.ContentType() != tc.contentType {
				t.Fatalf("content type %q", renderer.ContentType())
			}
			out, err := renderer.Render(context.Background(), newForm(), render.RenderOptions{
				Hidden: []render.HiddenField{render.CSRFToken("csrf", "tok")},
			})
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if string(out) != tc.want {
				t.Fatalf("want %q, got %q", tc.want, out)
			}
		})
	}
}

func TestRender_JSONWithTransformerAndPrefill(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Ada", "36"}}
	renderer, err := New(WithPromptDriver(driver), WithSubmitTransformer(func(values map[string]any) (map[string]any, error) {
		values["source"] = "tui"
		return values, nil
	}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	form := forms.NewForm(
		forms.NewField("name", forms.TypeChar),
		forms.NewField("age", forms.TypeInteger),
	)
	out, err := renderer.Render(context.Background(), form, render.RenderOptions{
		Title:  "Profile",
		Values: url.Values{"name": {"Grace"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{"name": "Ada", "age": float64(36), "source": "tui"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Profile"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_RejectsUnknownFormat(t *testing.T) {
	if _, err := New(WithOutputFormat("xml")); err == nil {
		t.Fatalf("expected unknown format error")
	}
}

func TestState(t *testing.T) {
	prefill := url.Values{"name": {"Ada"}}
	state := NewState(prefill)
	state.Set("tags", "a", "b")
	prefill["name"][0] = "changed"

	if !state.Has("name") || state.Get("name")[0] != "Ada" {
		t.Fatalf("prefill shared with state: %v", state.Values())
	}
	if diff := cmp.Diff([]string{"a", "b"}, state.Get("tags")); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
	state.setErrors(forms.ErrorMap{"name": {"bad"}})
	if diff := cmp.Diff(forms.ErrorList{"bad"}, state.ErrorsFor("name")); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}
