package material

import (
	"net/url"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/goliatone/go-material-widgets/pkg/forms"
	"github.com/goliatone/go-material-widgets/pkg/model"
	"github.com/goliatone/go-material-widgets/pkg/testsupport"
)

func TestErrorList_Render(t *testing.T) {
	got := ErrorList{}.RenderErrors(forms.ErrorList{"This field is required.", "Use <b>letters</b> & digits."}, "nonfield")
	testsupport.AssertGolden(t, filepath.Join("testdata", "errorlist.golden"), got+"\n")

	if empty := (ErrorList{}).RenderErrors(nil, ""); empty != "" {
		t.Fatalf("empty error list rendered %q", empty)
	}
}

func TestApply_InstallsMaterialLayer(t *testing.T) {
	form := forms.NewForm(
		forms.NewField("email", forms.TypeEmail),
		forms.NewField("subscribe", forms.TypeBoolean, forms.WithRequired(false)),
	)
	if err := Apply(form); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if form.ErrorCSSClass != ErrorCSSClass || form.RequiredCSSClass != RequiredCSSClass {
		t.Fatalf("row classes not set: %q %q", form.ErrorCSSClass, form.RequiredCSSClass)
	}
	if _, ok := form.ErrorRenderer().(ErrorList); !ok {
		t.Fatalf("error renderer is %T", form.ErrorRenderer())
	}
	for _, field := range form.Fields() {
		if _, ok := field.Widget.(Styled); !ok {
			t.Fatalf("%s not styled: %T", field.Name, field.Widget)
		}
	}
	media := form.Media()
	for _, want := range []string{DefaultCSS, errorCSS, textFieldCSS} {
		if !slices.Contains(media.CSS, want) {
			t.Fatalf("form media missing %s: %v", want, media.CSS)
		}
	}
	for _, want := range []string{DefaultJS, textFieldJS, checkboxJS} {
		if !slices.Contains(media.JS, want) {
			t.Fatalf("form media missing %s: %v", want, media.JS)
		}
	}
}

func TestAsComponents(t *testing.T) {
	form := MustForm([]*forms.Field{
		forms.NewField("email", forms.TypeEmail, forms.WithHelpText("Work address")),
	})
	form.Bind(url.Values{"email": {"nope"}}, nil)

	got, err := AsComponents(form)
	if err != nil {
		t.Fatalf("as components: %v", err)
	}
	rows := strings.SplitN(got, "\n", 2)
	if len(rows) != 2 {
		t.Fatalf("expected error row then field row:\n%s", got)
	}
	if !strings.HasPrefix(rows[0], `<ul class="mdc-errorlist mdc-list"><li class="mdc-list-item">`) {
		t.Fatalf("unexpected error row %s", rows[0])
	}
	for _, want := range []string{
		`<div class="mdc-error mdc-required"><div class="mdc-text-field`,
		`class="mdc-text-field__input"`,
		`>Email</label>`,
		`Work address</p>`,
	} {
		if !strings.Contains(rows[1], want) {
			t.Fatalf("expected %q in:\n%s", want, rows[1])
		}
	}
	if strings.Contains(got, "<label for=") {
		t.Fatalf("row layout must not emit its own label:\n%s", got)
	}
}

func TestNewModelForm_Materializes(t *testing.T) {
	schema := model.Schema{
		Name:  "record",
		Table: "records",
		Columns: []model.Column{
			{Name: "boolean_field", Kind: model.KindBoolean},
			{Name: "url_field", Kind: model.KindURL, Null: true, Blank: true},
		},
	}
	mf, err := NewModelForm(testsupport.Context(), schema, nil)
	if err != nil {
		t.Fatalf("new model form: %v", err)
	}
	want := map[string]StyledKind{
		"boolean_field": KindCheckboxInput,
		"url_field":     KindURLInput,
	}
	for name, kind := range want {
		field, ok := mf.Field(name)
		if !ok {
			t.Fatalf("missing field %s", name)
		}
		if got := field.Widget.(Styled).StyledKind(); got != kind {
			t.Fatalf("%s styled kind %s, want %s", name, got, kind)
		}
	}
	urlField, _ := mf.Field("url_field")
	if got := urlField.Widget.(Styled).Presentation().Label; got != "Url field" {
		t.Fatalf("model label %q", got)
	}
}
