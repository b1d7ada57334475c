package material

import (
	"fmt"

	"github.com/goliatone/go-material-widgets/pkg/forms"
	"github.com/goliatone/go-material-widgets/pkg/render/template"
)

// MultiWidget is the Material composite. Its sub-widgets are styled widgets.
type MultiWidget struct {
	forms.MultiWidget
	component
}

// NewMultiWidget builds a composite from styled sub-widgets.
func NewMultiWidget(widgets []Styled, attrs forms.Attrs, decompress forms.DecompressFunc) *MultiWidget {
	subs := make([]forms.Widget, len(widgets))
	for idx, sub := range widgets {
		subs[idx] = sub
	}
	return &MultiWidget{MultiWidget: forms.NewMultiWidget(subs, attrs, decompress).Copy()}
}

// multiWidgetFrom drops the default sub-widgets of src and styles each one
// with convert.
func multiWidgetFrom(src *forms.MultiWidget, convert Converter) (*MultiWidget, error) {
	subs := make([]forms.Widget, 0, len(src.Widgets()))
	for idx, sub := range src.Widgets() {
		styled, ok := sub.(Styled)
		if !ok {
			converted, err := convert(sub)
			if err != nil {
				return nil, fmt.Errorf("sub-widget %d: %w", idx, err)
			}
			styled = converted
		}
		subs = append(subs, styled)
	}
	base := src.CopyWithout()
	base.SetWidgets(subs)
	return &MultiWidget{MultiWidget: base}, nil
}

func (w *MultiWidget) StyledKind() StyledKind { return KindMultiWidget }
func (w *MultiWidget) TemplateName() string   { return templateName("material_multiwidget") }
func (w *MultiWidget) Clone() forms.Widget    { c := w.Copy(); return &c }
func (w *MultiWidget) Media() forms.Media     { return w.media(w.DeclaredAssets()) }

// DeclaredAssets merges the composite stylesheet with the sub-widget assets.
func (w *MultiWidget) DeclaredAssets() forms.Media {
	return forms.NewMedia([]string{multiwidgetCSS}, nil).Merge(subAssets(w.Widgets())...)
}

func (w *MultiWidget) SetAssets(s Settings) {
	w.component.SetAssets(s)
	propagateAssets(w.Widgets(), s)
}

// Copy returns a deep copy of w, sub-widgets included.
func (w *MultiWidget) Copy() MultiWidget {
	return MultiWidget{MultiWidget: w.MultiWidget.Copy(), component: w.component.copy()}
}

func (w *MultiWidget) Context(name string, value any, attrs forms.Attrs) map[string]any {
	return w.present(w.MultiWidget.Context(name, value, attrs), w.TemplateName())
}

func (w *MultiWidget) Render(r template.TemplateRenderer, name string, value any, attrs forms.Attrs) (string, error) {
	return render(r, w, name, value, attrs)
}

// SplitDateTime renders a date time as a date and a time text field, or as
// two hidden inputs for the hidden variant. Each part carries its own label,
// help text and persistent flag.
type SplitDateTime struct {
	forms.MultiWidget
	component

	DateLabel              string
	DateHelpText           string
	DatePersistentHelpText bool
	TimeLabel              string
	TimeHelpText           string
	TimePersistentHelpText bool
	// SupportsMicroseconds is always false: the time part drops sub-second
	// precision.
	SupportsMicroseconds bool
}

// NewSplitDateTimeWidget returns date and time Material text fields labelled
// "Date" and "Time".
func NewSplitDateTimeWidget(attrs forms.Attrs) *SplitDateTime {
	return splitDateTimeFrom(forms.NewSplitDateTimeWidget(attrs))
}

// NewSplitHiddenDateTimeWidget returns the hidden variant with blank labels.
func NewSplitHiddenDateTimeWidget(attrs forms.Attrs) *SplitDateTime {
	return splitDateTimeFrom(forms.NewSplitHiddenDateTimeWidget(attrs))
}

// splitDateTimeFrom keeps the composite attrs of src and rebuilds both parts
// as styled widgets.
func splitDateTimeFrom(src *forms.MultiWidget) *SplitDateTime {
	attrs := src.Attrs()
	base := src.CopyWithout()
	if src.Kind() == forms.KindSplitHiddenDateTimeWidget {
		date, clock := NewHiddenInput(attrs), NewHiddenInput(attrs)
		date.Format = forms.DateLayout
		clock.Format = forms.TimeLayout
		base.SetWidgets([]forms.Widget{date, clock})
		return &SplitDateTime{MultiWidget: base}
	}
	base.SetWidgets([]forms.Widget{NewDateInput(attrs), NewTimeInput(attrs)})
	return &SplitDateTime{
		MultiWidget:  base,
		DateLabel:    "Date",
		DateHelpText: "YYYY-MM-DD",
		TimeLabel:    "Time",
		TimeHelpText: "HH:MM:SS",
	}
}

func (w *SplitDateTime) StyledKind() StyledKind { return StyledKindFor(w.Kind()) }
func (w *SplitDateTime) Clone() forms.Widget    { c := w.Copy(); return &c }
func (w *SplitDateTime) Media() forms.Media     { return w.media(w.DeclaredAssets()) }

func (w *SplitDateTime) hidden() bool { return w.Kind() == forms.KindSplitHiddenDateTimeWidget }

func (w *SplitDateTime) TemplateName() string {
	if w.hidden() {
		return templateName("material_splithiddendatetime")
	}
	return templateName("material_splitdatetime")
}

func (w *SplitDateTime) DeclaredAssets() forms.Media {
	return forms.NewMedia([]string{multiwidgetCSS}, nil).Merge(subAssets(w.Widgets())...)
}

func (w *SplitDateTime) SetAssets(s Settings) {
	w.component.SetAssets(s)
	propagateAssets(w.Widgets(), s)
}

// Copy returns a deep copy of w, sub-widgets included.
func (w *SplitDateTime) Copy() SplitDateTime {
	out := *w
	out.MultiWidget = w.MultiWidget.Copy()
	out.component = w.component.copy()
	return out
}

func (w *SplitDateTime) Context(name string, value any, attrs forms.Attrs) map[string]any {
	ctx := w.present(w.MultiWidget.Context(name, value, attrs), w.TemplateName())
	inner := forms.WidgetContext(ctx)
	inner["supports_microseconds"] = w.SupportsMicroseconds
	subs, _ := inner["subwidgets"].([]map[string]any)
	parts := []struct {
		label, help string
		persistent  bool
	}{
		{w.DateLabel, w.DateHelpText, w.DatePersistentHelpText},
		{w.TimeLabel, w.TimeHelpText, w.TimePersistentHelpText},
	}
	for idx, sub := range subs {
		if idx >= len(parts) {
			break
		}
		sub["label"] = parts[idx].label
		setHelp(sub, w.sanitizer(), parts[idx].help)
		sub["persistent_help_text"] = parts[idx].persistent
	}
	return ctx
}

func (w *SplitDateTime) Render(r template.TemplateRenderer, name string, value any, attrs forms.Attrs) (string, error) {
	return render(r, w, name, value, attrs)
}

// SelectDate renders a date as month, day and year Material selects.
type SelectDate struct {
	forms.SelectDateWidget
	component
}

// NewSelectDateWidget returns a Material date select covering years.
func NewSelectDateWidget(attrs forms.Attrs, years []int) *SelectDate {
	return selectDateFrom(forms.NewSelectDateWidget(attrs, years))
}

func selectDateFrom(src *forms.SelectDateWidget) *SelectDate {
	base := src.Copy()
	base.Select = func(attrs forms.Attrs, choices []forms.Choice) forms.Widget {
		return NewSelect(attrs, choices)
	}
	return &SelectDate{SelectDateWidget: base}
}

func (w *SelectDate) StyledKind() StyledKind { return KindSelectDateWidget }
func (w *SelectDate) TemplateName() string   { return templateName("material_select_date") }
func (w *SelectDate) Clone() forms.Widget    { c := w.Copy(); return &c }
func (w *SelectDate) Media() forms.Media     { return w.media(w.DeclaredAssets()) }

func (w *SelectDate) DeclaredAssets() forms.Media {
	return forms.NewMedia([]string{multiwidgetCSS, selectCSS}, []string{selectJS})
}

// Copy returns a deep copy of w.
func (w *SelectDate) Copy() SelectDate {
	return SelectDate{SelectDateWidget: w.SelectDateWidget.Copy(), component: w.component.copy()}
}

func (w *SelectDate) Context(name string, value any, attrs forms.Attrs) map[string]any {
	return w.present(w.SelectDateWidget.Context(name, value, attrs), w.TemplateName())
}

func (w *SelectDate) Render(r template.TemplateRenderer, name string, value any, attrs forms.Attrs) (string, error) {
	return render(r, w, name, value, attrs)
}

func subAssets(widgets []forms.Widget) []forms.Media {
	out := make([]forms.Media, 0, len(widgets))
	for _, sub := range widgets {
		if styled, ok := sub.(Styled); ok {
			out = append(out, styled.DeclaredAssets())
		}
	}
	return out
}

func propagateAssets(widgets []forms.Widget, s Settings) {
	for _, sub := range widgets {
		if styled, ok := sub.(Styled); ok {
			styled.SetAssets(s)
		}
	}
}
