package material

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-material-widgets/pkg/forms"
)

func renderStyled(t *testing.T, w Styled, name string, value any, attrs forms.Attrs) string {
	t.Helper()
	r, err := Renderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	got, err := forms.Render(r, w, name, value, attrs)
	if err != nil {
		t.Fatalf("render %s: %v", w.StyledKind(), err)
	}
	return got
}

func assertContains(t *testing.T, got string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in:\n%s", want, got)
		}
	}
}

func TestTextField_Render(t *testing.T) {
	w := NewTextInput(forms.Attrs{"maxlength": "30"})
	w.Presentation().Label = "First Name"
	w.Presentation().HelpText = "As on your <em>passport</em>"
	w.PersistentHelpText = true

	got := renderStyled(t, w, "first_name", "Ada", forms.Attrs{"id": "id_first_name"})
	assertContains(t, got,
		`<div class="mdc-text-field mdc-text-field--upgraded">`,
		`<input type="text" name="first_name" value="Ada" class="mdc-text-field__input" id="id_first_name" maxlength="30">`,
		`<label class="mdc-floating-label mdc-floating-label--float-above" for="id_first_name">First Name</label>`,
		`mdc-text-field-helper-text--persistent`,
		`As on your <em>passport</em></p>`,
	)
}

func TestTextField_KindsShareBaseTemplate(t *testing.T) {
	tests := []struct {
		widget *TextField
		input  string
	}{
		{NewNumberInput(nil), `type="number"`},
		{NewEmailInput(nil), `type="email"`},
		{NewURLInput(nil), `type="url"`},
		{NewPasswordInput(nil), `type="password"`},
		{NewDateInput(nil), `type="text"`},
		{NewTimeInput(nil), `type="text"`},
	}
	for _, tc := range tests {
		t.Run(string(tc.widget.StyledKind()), func(t *testing.T) {
			tc.widget.Presentation().Label = "Value"
			got := renderStyled(t, tc.widget, "value", "", forms.Attrs{"id": "id_value"})
			assertContains(t, got, `<div class="mdc-text-field">`, tc.input, `>Value</label>`)
		})
	}
}

func TestTextField_RejectsNonTextKinds(t *testing.T) {
	if _, err := newTextField(forms.NewHiddenInput(nil)); err == nil {
		t.Fatalf("expected error for hidden input")
	}
}

func TestChoiceGroup_RenderOptionHelp(t *testing.T) {
	w := NewRadioSelect(nil, []forms.Choice{{Value: "r", Label: "Red"}, {Value: "b", Label: "Blue"}})
	w.Presentation().Label = "Color"
	w.ChoiceHelpText = []string{"Warm", "Cold"}

	got := renderStyled(t, w, "color", "b", forms.Attrs{"id": "id_color"})
	assertContains(t, got,
		`<fieldset class="mdc-radio-group" id="id_color">`,
		`<legend class="mdc-typography--subheading1">Color</legend>`,
		`<input type="radio" name="color" value="r" class="mdc-radio__native-control" id="id_color_0">`,
		`<input type="radio" name="color" value="b" checked class="mdc-radio__native-control" id="id_color_1">`,
		`<label for="id_color_0">Red</label>`,
		`<span class="mdc-typography--caption">Cold</span>`,
	)
}

func TestChoiceGroup_RenderRejectsShortHelp(t *testing.T) {
	w := NewCheckboxSelectMultiple(nil, []forms.Choice{{Value: "a", Label: "A"}, {Value: "b", Label: "B"}})
	w.ChoiceHelpText = []string{"only one"}
	r, err := Renderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	if _, err := w.Render(r, "tags", nil, nil); err == nil {
		t.Fatalf("expected choice help text error")
	}
	if !w.IsVertical {
		t.Fatalf("checkbox groups stack vertically")
	}
}

func TestSelect_Render(t *testing.T) {
	w := NewSelect(nil, []forms.Choice{{Value: "", Label: "---------"}, {Value: "1", Label: "One"}})
	w.Presentation().Label = "Pick"

	got := renderStyled(t, w, "pick", "1", forms.Attrs{"id": "id_pick"})
	assertContains(t, got,
		`<div class="mdc-select-manager">`,
		`<span class="mdc-select__selected-text">One</span>`,
		`<select name="pick" class="mdc-select" id="id_pick">`,
		`<option value="1" selected>One</option>`,
	)

	multi := NewSelectMultiple(nil, []forms.Choice{{Value: "1", Label: "One"}})
	ctx := forms.WidgetContext(multi.Context("picks", nil, nil))
	if got := ctx["attrs"].(forms.Attrs).String("class"); got != "mdc-multi-select mdc-list" {
		t.Fatalf("multiple select class %q", got)
	}
	if got := ctx["option_template_file"]; got != "material_select_option_nojs.html" {
		t.Fatalf("option template %v", got)
	}
}

func TestCheckboxAndSwitch_Context(t *testing.T) {
	checkbox := forms.WidgetContext(NewCheckboxInput(nil).Context("ok", true, nil))
	if got := checkbox["attrs"].(forms.Attrs).String("class"); got != "mdc-checkbox__native-control" {
		t.Fatalf("checkbox class %q", got)
	}
	sw := NewSwitchInput(forms.Attrs{"class": "wide"})
	ctx := forms.WidgetContext(sw.Context("ok", false, nil))
	if got := ctx["attrs"].(forms.Attrs).String("class"); got != "wide mdc-switch__native-control" {
		t.Fatalf("switch class %q", got)
	}
	if sw.StyledKind() != KindSwitchInput || sw.Kind() != forms.KindCheckboxInput {
		t.Fatalf("switch kinds %s/%s", sw.StyledKind(), sw.Kind())
	}
	if sw.Attrs().String("class") != "wide" {
		t.Fatalf("context mutated widget attrs: %v", sw.Attrs())
	}
}

func TestSlider_Context(t *testing.T) {
	w := NewSliderInput(forms.Attrs{"max": "10"})
	w.IsDiscrete = true
	ctx := forms.WidgetContext(w.Context("volume", nil, nil))
	got := map[string]any{
		"min":                  ctx["min"],
		"max":                  ctx["max"],
		"step":                 ctx["step"],
		"value":                ctx["value"],
		"is_discrete":          ctx["is_discrete"],
		"persistent_help_text": ctx["persistent_help_text"],
	}
	want := map[string]any{
		"min":                  "0",
		"max":                  "10",
		"step":                 "1",
		"value":                "0",
		"is_discrete":          true,
		"persistent_help_text": true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("slider context (-want +got):\n%s", diff)
	}
}

func TestFileButton(t *testing.T) {
	if err := ValidateButton([]string{"raised", "dense"}); err != nil {
		t.Fatalf("valid tokens rejected: %v", err)
	}
	w := NewFileInput(nil)
	if err := w.SetButton("raised", "shiny"); err == nil {
		t.Fatalf("expected unknown style error")
	}
	if err := w.SetButton("raised", "dense"); err != nil {
		t.Fatalf("set button: %v", err)
	}
	w.Icon = "file_upload"
	w.Presentation().Label = "Upload"

	got := renderStyled(t, w, "doc", nil, forms.Attrs{"id": "id_doc"})
	assertContains(t, got,
		`<input type="file" name="doc" class="mdc-file-input__input" id="id_doc">`,
		`<label class="mdc-button mdc-button--raised mdc-button--dense" for="id_doc">`,
		`>file_upload</i>Upload</label>`,
	)

	w.Button = append(w.Button, "glossy")
	r, _ := Renderer()
	if _, err := w.Render(r, "doc", nil, nil); err == nil {
		t.Fatalf("render accepted unknown button style")
	}
}

func TestSplitDateTime_Context(t *testing.T) {
	w := NewSplitDateTimeWidget(nil)
	w.DatePersistentHelpText = true
	value := time.Date(2024, 3, 9, 14, 30, 15, 500, time.UTC)

	ctx := forms.WidgetContext(w.Context("when", value, forms.Attrs{"id": "id_when"}))
	subs := ctx["subwidgets"].([]map[string]any)
	if len(subs) != 2 {
		t.Fatalf("expected two parts, got %d", len(subs))
	}
	got := [][]any{
		{subs[0]["name"], subs[0]["value"], subs[0]["label"], subs[0]["help_text"], subs[0]["persistent_help_text"]},
		{subs[1]["name"], subs[1]["value"], subs[1]["label"], subs[1]["help_text"], subs[1]["persistent_help_text"]},
	}
	want := [][]any{
		{"when_0", "2024-03-09", "Date", "YYYY-MM-DD", true},
		{"when_1", "14:30:15", "Time", "HH:MM:SS", false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("split parts (-want +got):\n%s", diff)
	}
	if ctx["supports_microseconds"] != false {
		t.Fatalf("microseconds must be unsupported")
	}

	hidden := NewSplitHiddenDateTimeWidget(nil)
	if !hidden.IsHidden() || hidden.StyledKind() != KindSplitHiddenDateTimeWidget {
		t.Fatalf("hidden variant misconfigured")
	}
	if hidden.DateLabel != "" || hidden.TimeLabel != "" {
		t.Fatalf("hidden parts carry no labels")
	}
}

func TestSelectDate_UsesStyledSelects(t *testing.T) {
	w := NewSelectDateWidget(nil, []int{2023, 2024})
	if _, ok := w.Select(nil, nil).(*Select); !ok {
		t.Fatalf("select factory not styled")
	}
	ctx := forms.WidgetContext(w.Context("born", "2024-02-01", nil))
	if ctx["template_file"] != "material_select_date.html" {
		t.Fatalf("template %v", ctx["template_file"])
	}
}

func TestMedia_OrderAndDedupe(t *testing.T) {
	s := Settings{CSS: "/mdc.css", JS: "/mdc.js"}
	w := NewClearableFileInput(nil)
	w.SetAssets(s)
	want := forms.Media{
		CSS: []string{"/mdc.css", errorCSS, buttonCSS, fileInputCSS},
		JS:  []string{"/mdc.js", buttonJS, checkboxJS, fileInputJS},
	}
	if diff := cmp.Diff(want, w.Media()); diff != "" {
		t.Fatalf("media (-want +got):\n%s", diff)
	}

	multi := NewMultiWidget([]Styled{NewTextInput(nil), NewEmailInput(nil)}, nil, nil)
	multi.SetAssets(s)
	want = forms.Media{
		CSS: []string{"/mdc.css", errorCSS, multiwidgetCSS, textFieldCSS},
		JS:  []string{"/mdc.js", textFieldJS},
	}
	if diff := cmp.Diff(want, multi.Media()); diff != "" {
		t.Fatalf("composite media (-want +got):\n%s", diff)
	}
}

func TestClone_DoesNotShareState(t *testing.T) {
	w := NewRadioSelect(forms.Attrs{"class": "x"}, []forms.Choice{{Value: "a", Label: "A"}})
	w.Presentation().Label = "Pick"
	w.ChoiceHelpText = []string{"first"}

	clone := w.Clone().(*ChoiceGroup)
	clone.Attrs()["class"] = "y"
	clone.Presentation().Label = "Other"
	clone.ChoiceHelpText[0] = "changed"

	if w.Attrs().String("class") != "x" || w.Presentation().Label != "Pick" || w.ChoiceHelpText[0] != "first" {
		t.Fatalf("clone shares state with original")
	}
}
