package forms

import (
	"net/url"
	"strings"
	"time"
)

// DecompressFunc splits a compound value into one value per sub-widget.
type DecompressFunc func(value any) []any

// MultiWidget combines several sub-widgets into one field. Sub-widget names
// and ids receive an _<index> suffix.
type MultiWidget struct {
	kind       Kind
	template   string
	attrs      Attrs
	widgets    []Widget
	decompress DecompressFunc
}

// NewMultiWidget builds a composite from widgets. decompress may be nil when
// values are always supplied as slices.
func NewMultiWidget(widgets []Widget, attrs Attrs, decompress DecompressFunc) *MultiWidget {
	return &MultiWidget{
		kind:       KindMultiWidget,
		template:   "forms/widgets/multiwidget.html",
		attrs:      attrs.Clone(),
		widgets:    cloneWidgets(widgets),
		decompress: decompress,
	}
}

// NewSplitDateTimeWidget renders a date input followed by a time input.
func NewSplitDateTimeWidget(attrs Attrs) *MultiWidget {
	w := NewMultiWidget([]Widget{NewDateInput(attrs), NewTimeInput(attrs)}, attrs, SplitDateTime)
	w.kind = KindSplitDateTimeWidget
	w.template = "forms/widgets/splitdatetime.html"
	return w
}

// NewSplitHiddenDateTimeWidget is the hidden counterpart of
// NewSplitDateTimeWidget.
func NewSplitHiddenDateTimeWidget(attrs Attrs) *MultiWidget {
	date := NewHiddenInput(attrs)
	date.Format = DateLayout
	clock := NewHiddenInput(attrs)
	clock.Format = TimeLayout
	w := NewMultiWidget([]Widget{date, clock}, attrs, SplitDateTime)
	w.kind = KindSplitHiddenDateTimeWidget
	w.template = "forms/widgets/splithiddendatetime.html"
	return w
}

// SplitDateTime decomposes a date time into [date, time of day]. The time of
// day drops sub-second precision. Values that are not a date time decompose
// to [nil, nil].
func SplitDateTime(value any) []any {
	var ts time.Time
	switch v := value.(type) {
	case time.Time:
		ts = v
	case *time.Time:
		if v == nil {
			return []any{nil, nil}
		}
		ts = *v
	case string:
		parsed, ok := parseDateTime(v)
		if !ok {
			return []any{nil, nil}
		}
		ts = parsed
	default:
		return []any{nil, nil}
	}
	if ts.IsZero() {
		return []any{nil, nil}
	}
	date := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
	clock := time.Date(0, time.January, 1, ts.Hour(), ts.Minute(), ts.Second(), 0, ts.Location())
	return []any{date, clock}
}

func (w *MultiWidget) Kind() Kind           { return w.kind }
func (w *MultiWidget) Attrs() Attrs         { return w.attrs }
func (w *MultiWidget) SetAttrs(attrs Attrs) { w.attrs = attrs.Clone() }
func (w *MultiWidget) TemplateName() string { return w.template }
func (w *MultiWidget) Clone() Widget        { c := w.Copy(); return &c }

// Widgets returns the sub-widgets.
func (w *MultiWidget) Widgets() []Widget {
	return w.widgets
}

// SetWidgets replaces the sub-widgets with copies of widgets.
func (w *MultiWidget) SetWidgets(widgets []Widget) {
	w.widgets = cloneWidgets(widgets)
}

// Copy returns a value copy of w with cloned attrs and sub-widgets.
func (w *MultiWidget) Copy() MultiWidget {
	return MultiWidget{
		kind:       w.kind,
		template:   w.template,
		attrs:      w.attrs.Clone(),
		widgets:    cloneWidgets(w.widgets),
		decompress: w.decompress,
	}
}

// CopyWithout copies w but leaves the sub-widget list empty so a caller can
// supply its own.
func (w *MultiWidget) CopyWithout() MultiWidget {
	return MultiWidget{
		kind:       w.kind,
		template:   w.template,
		attrs:      w.attrs.Clone(),
		decompress: w.decompress,
	}
}

func (w *MultiWidget) IsHidden() bool {
	if len(w.widgets) == 0 {
		return false
	}
	for _, sub := range w.widgets {
		if !sub.IsHidden() {
			return false
		}
	}
	return true
}

func (w *MultiWidget) Media() Media {
	media := Media{}
	for _, sub := range w.widgets {
		media = media.Merge(sub.Media())
	}
	return media
}

// Decompress splits value for the sub-widgets.
func (w *MultiWidget) Decompress(value any) []any {
	if w.decompress != nil {
		return w.decompress(value)
	}
	return make([]any, len(w.widgets))
}

func (w *MultiWidget) Context(name string, value any, attrs Attrs) map[string]any {
	ctx := baseWidgetContext(w, name, "", attrs)
	ctx["subwidgets"] = w.Subwidgets(name, value, ctx["attrs"].(Attrs))
	return map[string]any{"widget": ctx}
}

// Subwidgets builds the inner "widget" context of every sub-widget.
func (w *MultiWidget) Subwidgets(name string, value any, attrs Attrs) []map[string]any {
	values, ok := value.([]any)
	if !ok {
		values = w.Decompress(value)
	}
	id := idFor(attrs)
	out := make([]map[string]any, 0, len(w.widgets))
	for idx, sub := range w.widgets {
		var subValue any
		if idx < len(values) {
			subValue = values[idx]
		}
		subAttrs := attrs.Without("type")
		if id != "" {
			subAttrs["id"] = id + "_" + itoa(idx)
		}
		out = append(out, WidgetContext(sub.Context(name+"_"+itoa(idx), subValue, subAttrs)))
	}
	return out
}

func (w *MultiWidget) ValueFromData(data url.Values, files Files, name string) any {
	out := make([]any, len(w.widgets))
	for idx, sub := range w.widgets {
		out[idx] = sub.ValueFromData(data, files, name+"_"+itoa(idx))
	}
	return out
}

func cloneWidgets(widgets []Widget) []Widget {
	if widgets == nil {
		return nil
	}
	out := make([]Widget, len(widgets))
	for idx, sub := range widgets {
		out[idx] = sub.Clone()
	}
	return out
}

// SelectFactory builds one of the selects of a SelectDateWidget.
type SelectFactory func(attrs Attrs, choices []Choice) Widget

// SelectDateWidget renders a date as month, day and year selects.
type SelectDateWidget struct {
	template string
	attrs    Attrs

	Years []int
	// EmptyLabels are the placeholder labels for year, month and day.
	EmptyLabels [3]string
	// Select builds each sub-select. Styled variants swap it out.
	Select SelectFactory
}

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// NewSelectDateWidget returns a date select covering years. When years is
// empty the current year and the nine following are offered.
func NewSelectDateWidget(attrs Attrs, years []int) *SelectDateWidget {
	if len(years) == 0 {
		this := time.Now().Year()
		for y := this; y < this+10; y++ {
			years = append(years, y)
		}
	}
	return &SelectDateWidget{
		template:    "forms/widgets/select_date.html",
		attrs:       attrs.Clone(),
		Years:       append([]int(nil), years...),
		EmptyLabels: [3]string{"---", "---", "---"},
		Select: func(attrs Attrs, choices []Choice) Widget {
			return NewSelect(attrs, choices)
		},
	}
}

func (w *SelectDateWidget) Kind() Kind           { return KindSelectDateWidget }
func (w *SelectDateWidget) Attrs() Attrs         { return w.attrs }
func (w *SelectDateWidget) SetAttrs(attrs Attrs) { w.attrs = attrs.Clone() }
func (w *SelectDateWidget) IsHidden() bool       { return false }
func (w *SelectDateWidget) TemplateName() string { return w.template }
func (w *SelectDateWidget) Media() Media         { return Media{} }
func (w *SelectDateWidget) Clone() Widget        { c := w.Copy(); return &c }

// Copy returns a value copy of w.
func (w *SelectDateWidget) Copy() SelectDateWidget {
	return SelectDateWidget{
		template:    w.template,
		attrs:       w.attrs.Clone(),
		Years:       append([]int(nil), w.Years...),
		EmptyLabels: w.EmptyLabels,
		Select:      w.Select,
	}
}

// Parts returns year, month and day strings for value, blank when unknown.
func (w *SelectDateWidget) Parts(value any) (year, month, day string) {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return "", "", ""
		}
		return itoa(v.Year()), itoa(int(v.Month())), itoa(v.Day())
	case string:
		pieces := strings.Split(v, "-")
		if len(pieces) == 3 {
			return trimZero(pieces[0]), trimZero(pieces[1]), trimZero(pieces[2])
		}
	}
	return "", "", ""
}

func (w *SelectDateWidget) Context(name string, value any, attrs Attrs) map[string]any {
	ctx := baseWidgetContext(w, name, "", attrs)
	ctx["subwidgets"] = w.Subwidgets(name, value, ctx["attrs"].(Attrs))
	return map[string]any{"widget": ctx}
}

// Subwidgets returns the month, day and year select contexts.
func (w *SelectDateWidget) Subwidgets(name string, value any, attrs Attrs) []map[string]any {
	year, month, day := w.Parts(value)
	id := idFor(attrs)
	factory := w.Select
	if factory == nil {
		factory = func(attrs Attrs, choices []Choice) Widget { return NewSelect(attrs, choices) }
	}

	parts := []struct {
		field   string
		value   string
		choices []Choice
	}{
		{field: "month", value: month, choices: w.monthChoices()},
		{field: "day", value: day, choices: w.dayChoices()},
		{field: "year", value: year, choices: w.yearChoices()},
	}

	out := make([]map[string]any, 0, len(parts))
	for _, part := range parts {
		subAttrs := attrs.Clone()
		if id != "" {
			subAttrs["id"] = id + "_" + part.field
		}
		sub := factory(Attrs{}, part.choices)
		out = append(out, WidgetContext(sub.Context(name+"_"+part.field, part.value, subAttrs)))
	}
	return out
}

func (w *SelectDateWidget) yearChoices() []Choice {
	choices := []Choice{{Value: "", Label: w.EmptyLabels[0]}}
	for _, y := range w.Years {
		choices = append(choices, Choice{Value: itoa(y), Label: itoa(y)})
	}
	return choices
}

func (w *SelectDateWidget) monthChoices() []Choice {
	choices := []Choice{{Value: "", Label: w.EmptyLabels[1]}}
	for idx, month := range monthNames {
		choices = append(choices, Choice{Value: itoa(idx + 1), Label: month})
	}
	return choices
}

func (w *SelectDateWidget) dayChoices() []Choice {
	choices := []Choice{{Value: "", Label: w.EmptyLabels[2]}}
	for d := 1; d <= 31; d++ {
		choices = append(choices, Choice{Value: itoa(d), Label: itoa(d)})
	}
	return choices
}

// ValueFromData joins the three selects into YYYY-MM-DD. Impossible dates are
// returned as "y-m-d" with zeros for missing parts so validation rejects them.
func (w *SelectDateWidget) ValueFromData(data url.Values, _ Files, name string) any {
	y, m, d := data.Get(name+"_year"), data.Get(name+"_month"), data.Get(name+"_day")
	if y == "" && m == "" && d == "" {
		if _, ok := data[name]; ok {
			return data.Get(name)
		}
		return nil
	}
	if ts, err := time.Parse("2006-1-2", y+"-"+m+"-"+d); err == nil {
		return ts.Format(DateLayout)
	}
	return orZero(y) + "-" + orZero(m) + "-" + orZero(d)
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

func trimZero(s string) string {
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" {
		return ""
	}
	return trimmed
}
