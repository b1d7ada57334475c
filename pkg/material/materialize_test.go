package material

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-material-widgets/pkg/forms"
)

func TestMaterialize_Labels(t *testing.T) {
	tests := []struct {
		name  string
		field *forms.Field
		want  string
	}{
		{name: "derived", field: forms.NewField("first_name", forms.TypeChar), want: "First Name"},
		{name: "explicit", field: forms.NewField("first_name", forms.TypeChar, forms.WithLabel("Given name")), want: "Given name"},
		{name: "explicit blank", field: forms.NewField("first_name", forms.TypeChar, forms.WithNoLabel()), want: ""},
		{name: "single word", field: forms.NewField("email", forms.TypeEmail), want: "Email"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := Materialize(tc.field.Name, tc.field); err != nil {
				t.Fatalf("materialize: %v", err)
			}
			styled := tc.field.Widget.(Styled)
			if got := styled.Presentation().Label; got != tc.want {
				t.Fatalf("label %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMaterialize_IsIdempotent(t *testing.T) {
	field := forms.NewField("bio", forms.TypeText, forms.WithHelpText("About you"))
	if err := Materialize("bio", field); err != nil {
		t.Fatalf("first materialize: %v", err)
	}
	first := field.Widget

	field.HelpText = "Tell us more"
	if err := Materialize("bio", field); err != nil {
		t.Fatalf("second materialize: %v", err)
	}
	if field.Widget != first {
		t.Fatalf("styled widget replaced on second pass")
	}
	if got := first.(Styled).Presentation().HelpText; got != "Tell us more" {
		t.Fatalf("help text not refreshed, got %q", got)
	}
	if first.(Styled).StyledKind() != KindTextarea {
		t.Fatalf("unexpected kind %s", first.(Styled).StyledKind())
	}
}

func TestMaterialize_KeepsAttrsWithoutTouchingOriginal(t *testing.T) {
	field := forms.NewField("name", forms.TypeChar,
		forms.WithMaxLength(30),
		forms.WithAttrs(forms.Attrs{"autofocus": true, "placeholder": "Ada"}),
	)
	original := field.Widget
	if err := Materialize("name", field); err != nil {
		t.Fatalf("materialize: %v", err)
	}
	attrs := field.Widget.Attrs()
	if attrs["autofocus"] != true || attrs.String("placeholder") != "Ada" || attrs.String("maxlength") != "30" {
		t.Fatalf("attrs lost: %v", attrs)
	}
	attrs["placeholder"] = "Grace"
	if original.Attrs().String("placeholder") != "Ada" {
		t.Fatalf("original widget mutated: %v", original.Attrs())
	}
}

func TestMaterialize_SanitizesHelpText(t *testing.T) {
	field := forms.NewField("code", forms.TypeChar,
		forms.WithHelpText(`Use <em onclick="steal()">lowercase</em> <a href="/x">letters</a>`),
	)
	if err := Materialize("code", field); err != nil {
		t.Fatalf("materialize: %v", err)
	}
	got := field.Widget.(Styled).Presentation().HelpText
	if want := "Use <em>lowercase</em> letters"; got != want {
		t.Fatalf("help text %q, want %q", got, want)
	}
}

func TestMaterialize_CustomSanitizer(t *testing.T) {
	field := forms.NewField("code", forms.TypeChar, forms.WithHelpText("<em>plain</em>"))
	m := NewMaterializer(WithSanitizer(bluemonday.StrictPolicy()))
	if err := m.Materialize("code", field); err != nil {
		t.Fatalf("materialize: %v", err)
	}
	if got := field.Widget.(Styled).Presentation().HelpText; got != "plain" {
		t.Fatalf("help text %q, want plain", got)
	}
}

func TestMaterialize_SanitizerAppliesAtRender(t *testing.T) {
	help := `See <a href="https://x.test/docs">docs</a> & more`
	tests := []struct {
		name      string
		opts      []Option
		wantHelp  string
		wantTitle string
	}{
		{
			name:      "permissive policy keeps links",
			opts:      []Option{WithSanitizer(bluemonday.UGCPolicy())},
			wantHelp:  `See <a href="https://x.test/docs" rel="nofollow">docs</a> &amp; more`,
			wantTitle: "See docs & more",
		},
		{
			name:      "default policy drops links",
			wantHelp:  "See docs &amp; more",
			wantTitle: "See docs & more",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			field := forms.NewField("docs", forms.TypeChar, forms.WithHelpText(help))
			if err := NewMaterializer(tc.opts...).Materialize("docs", field); err != nil {
				t.Fatalf("materialize: %v", err)
			}
			ctx := forms.WidgetContext(field.Widget.Context("docs", nil, nil))
			if got := ctx["help_text"]; got != tc.wantHelp {
				t.Fatalf("help_text %q, want %q", got, tc.wantHelp)
			}
			if got := ctx["help_title"]; got != tc.wantTitle {
				t.Fatalf("help_title %q, want %q", got, tc.wantTitle)
			}
		})
	}
}

func TestMaterialize_ChoiceHelpText(t *testing.T) {
	choices := []forms.Choice{{Value: "r", Label: "Red"}, {Value: "g", Label: "Green"}, {Value: "b", Label: "Blue"}}

	t.Run("one per choice", func(t *testing.T) {
		field := forms.NewField("color", forms.TypeChoice,
			forms.WithChoices(choices...),
			forms.WithWidget(forms.NewRadioSelect(nil, nil)),
			forms.WithChoiceHelpText("warm", "natural", "cold"),
		)
		if err := Materialize("color", field); err != nil {
			t.Fatalf("materialize: %v", err)
		}
		group := field.Widget.(*ChoiceGroup)
		if got := group.OptionHelpText(1); got != "natural" {
			t.Fatalf("option help %q", got)
		}
		if got := group.OptionHelpText(7); got != "" {
			t.Fatalf("out of range help %q", got)
		}
	})

	t.Run("none", func(t *testing.T) {
		field := forms.NewField("color", forms.TypeChoice,
			forms.WithChoices(choices...),
			forms.WithWidget(forms.NewRadioSelect(nil, nil)),
		)
		if err := Materialize("color", field); err != nil {
			t.Fatalf("materialize: %v", err)
		}
		if got := field.Widget.(*ChoiceGroup).OptionHelpText(0); got != "" {
			t.Fatalf("expected empty help, got %q", got)
		}
	})

	t.Run("declared on the widget", func(t *testing.T) {
		widget := NewRadioSelect(nil, nil)
		widget.ChoiceHelpText = []string{"warm", "natural", "<b>cold</b>"}
		field := forms.NewField("color", forms.TypeChoice,
			forms.WithChoices(choices...),
			forms.WithWidget(widget),
		)
		if err := Materialize("color", field); err != nil {
			t.Fatalf("materialize: %v", err)
		}
		if got := field.Widget.(*ChoiceGroup).OptionHelpText(2); got != "<b>cold</b>" {
			t.Fatalf("widget help replaced, got %q", got)
		}
	})

	t.Run("field overrides widget", func(t *testing.T) {
		widget := NewRadioSelect(nil, nil)
		widget.ChoiceHelpText = []string{"a", "b", "c"}
		field := forms.NewField("color", forms.TypeChoice,
			forms.WithChoices(choices...),
			forms.WithWidget(widget),
			forms.WithChoiceHelpText("warm", "natural", "cold"),
		)
		if err := Materialize("color", field); err != nil {
			t.Fatalf("materialize: %v", err)
		}
		if got := field.Widget.(*ChoiceGroup).OptionHelpText(0); got != "warm" {
			t.Fatalf("option help %q, want warm", got)
		}
	})

	t.Run("too few", func(t *testing.T) {
		field := forms.NewField("color", forms.TypeChoice,
			forms.WithChoices(choices...),
			forms.WithWidget(forms.NewCheckboxSelectMultiple(nil, nil)),
			forms.WithChoiceHelpText("warm"),
		)
		err := Materialize("color", field)
		if !errors.Is(err, ErrChoiceHelpText) {
			t.Fatalf("expected ErrChoiceHelpText, got %v", err)
		}
	})
}

func TestMaterialize_NilWidget(t *testing.T) {
	field := forms.NewField("x", forms.TypeChar)
	field.Widget = nil
	if err := Materialize("x", field); !errors.Is(err, ErrNoStyledWidget) {
		t.Fatalf("expected ErrNoStyledWidget, got %v", err)
	}
	if err := Materialize("x", nil); err == nil {
		t.Fatalf("expected error for nil field")
	}
}

func TestMaterializeAll_JoinsErrors(t *testing.T) {
	unknown := forms.NewField("swatch", forms.TypeChar, forms.WithWidget(colorPicker{forms.NewTextInput(nil)}))
	form := forms.NewForm(
		forms.NewField("name", forms.TypeChar),
		unknown,
	)
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	err := NewMaterializer(WithLogger(logger)).MaterializeAll(form)
	if !errors.Is(err, ErrNoStyledWidget) {
		t.Fatalf("expected ErrNoStyledWidget, got %v", err)
	}
	name, _ := form.Field("name")
	if _, ok := name.Widget.(Styled); !ok {
		t.Fatalf("valid field left unstyled")
	}
	if !strings.Contains(logs.String(), "field=name") {
		t.Fatalf("expected debug log for name, got %q", logs.String())
	}
}

func TestMaterialize_WithSettingsPinsAssets(t *testing.T) {
	field := forms.NewField("when", forms.TypeSplitDateTime)
	m := NewMaterializer(WithSettings(Settings{CSS: "/mdc.css", JS: "/mdc.js"}))
	if err := m.Materialize("when", field); err != nil {
		t.Fatalf("materialize: %v", err)
	}
	media := field.Widget.Media()
	if media.CSS[0] != "/mdc.css" || media.JS[0] != "/mdc.js" {
		t.Fatalf("settings not applied: %+v", media)
	}
	for _, sub := range field.Widget.(*SplitDateTime).Widgets() {
		if got := sub.Media().CSS[0]; got != "/mdc.css" {
			t.Fatalf("sub-widget settings not applied: %s", got)
		}
	}
}
