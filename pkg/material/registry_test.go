package material

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-material-widgets/pkg/forms"
)

func defaultWidgets() []forms.Widget {
	choices := []forms.Choice{{Value: "a", Label: "A"}, {Value: "b", Label: "B"}}
	attrs := func() forms.Attrs { return forms.Attrs{"class": "x"} }
	return []forms.Widget{
		forms.NewTextInput(attrs()),
		forms.NewNumberInput(attrs()),
		forms.NewEmailInput(attrs()),
		forms.NewURLInput(attrs()),
		forms.NewPasswordInput(attrs()),
		forms.NewHiddenInput(attrs()),
		forms.NewMultipleHiddenInput(attrs()),
		forms.NewFileInput(attrs()),
		forms.NewClearableFileInput(attrs()),
		forms.NewTextarea(attrs()),
		forms.NewDateInput(attrs()),
		forms.NewDateTimeInput(attrs()),
		forms.NewTimeInput(attrs()),
		forms.NewCheckboxInput(attrs()),
		forms.NewSelect(attrs(), choices),
		forms.NewNullBooleanSelect(attrs()),
		forms.NewSelectMultiple(attrs(), choices),
		forms.NewRadioSelect(attrs(), choices),
		forms.NewCheckboxSelectMultiple(attrs(), choices),
		forms.NewMultiWidget([]forms.Widget{forms.NewTextInput(nil), forms.NewEmailInput(nil)}, attrs(), nil),
		forms.NewSplitDateTimeWidget(attrs()),
		forms.NewSplitHiddenDateTimeWidget(attrs()),
		forms.NewSelectDateWidget(attrs(), []int{2024}),
	}
}

func TestDefaultRegistry_CoversEveryKind(t *testing.T) {
	want := forms.Kinds()
	slices.Sort(want)
	if diff := cmp.Diff(want, DefaultRegistry().Kinds()); diff != "" {
		t.Fatalf("registered kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_ConvertKeepsKindAndAttrs(t *testing.T) {
	reg := DefaultRegistry()
	for _, original := range defaultWidgets() {
		t.Run(string(original.Kind()), func(t *testing.T) {
			styled, err := reg.Convert(original)
			if err != nil {
				t.Fatalf("convert: %v", err)
			}
			if styled.Kind() != original.Kind() {
				t.Fatalf("kind changed: %s -> %s", original.Kind(), styled.Kind())
			}
			if got, want := styled.StyledKind(), StyledKindFor(original.Kind()); got != want {
				t.Fatalf("styled kind %s, want %s", got, want)
			}
			if styled.Attrs().String("class") != "x" {
				t.Fatalf("attrs not carried over: %v", styled.Attrs())
			}
			styled.Attrs()["class"] = "changed"
			if original.Attrs().String("class") != "x" {
				t.Fatalf("styled widget shares attrs with the original")
			}
		})
	}
}

func TestRegistry_ConvertStyledIsIdentity(t *testing.T) {
	w := NewEmailInput(nil)
	got, err := DefaultRegistry().Convert(w)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if got != Styled(w) {
		t.Fatalf("styled widget was replaced")
	}
}

type colorPicker struct{ *forms.Input }

func (colorPicker) Kind() forms.Kind { return "ColorPicker" }

func TestRegistry_UnknownKind(t *testing.T) {
	_, err := DefaultRegistry().Convert(colorPicker{forms.NewTextInput(nil)})
	if !errors.Is(err, ErrNoStyledWidget) {
		t.Fatalf("expected ErrNoStyledWidget, got %v", err)
	}
}

func TestRegistry_RegisterOverrides(t *testing.T) {
	reg := DefaultRegistry()
	reg.Register("ColorPicker", func(src forms.Widget) (Styled, error) {
		return NewTextInput(src.Attrs()), nil
	})
	styled, err := reg.Convert(colorPicker{forms.NewTextInput(forms.Attrs{"placeholder": "#fff"})})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if styled.StyledKind() != KindTextInput {
		t.Fatalf("custom converter not used, got %s", styled.StyledKind())
	}
	if styled.Attrs().String("placeholder") != "#fff" {
		t.Fatalf("attrs lost: %v", styled.Attrs())
	}
}

func TestRegistry_RegisterNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for nil converter")
		}
	}()
	NewRegistry().Register(forms.KindTextInput, nil)
}

func TestRegistry_MultiWidgetStylesSubwidgets(t *testing.T) {
	src := forms.NewMultiWidget([]forms.Widget{forms.NewTextInput(nil), forms.NewCheckboxInput(nil)}, nil, nil)
	styled, err := DefaultRegistry().Convert(src)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	multi, ok := styled.(*MultiWidget)
	if !ok {
		t.Fatalf("expected *MultiWidget, got %T", styled)
	}
	var kinds []StyledKind
	for _, sub := range multi.Widgets() {
		s, ok := sub.(Styled)
		if !ok {
			t.Fatalf("sub-widget %T not styled", sub)
		}
		kinds = append(kinds, s.StyledKind())
	}
	if diff := cmp.Diff([]StyledKind{KindTextInput, KindCheckboxInput}, kinds); diff != "" {
		t.Fatalf("sub-widget kinds (-want +got):\n%s", diff)
	}
	if _, ok := src.Widgets()[0].(Styled); ok {
		t.Fatalf("original sub-widgets were replaced")
	}
}
