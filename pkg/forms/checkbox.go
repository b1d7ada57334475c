package forms

import (
	"net/url"
	"strings"
)

// CheckboxInput renders a single checkbox. Check decides whether a value
// counts as checked.
type CheckboxInput struct {
	attrs Attrs
	Check func(value any) bool
}

// NewCheckboxInput returns a checkbox using BooleanCheck.
func NewCheckboxInput(attrs Attrs) *CheckboxInput {
	return &CheckboxInput{attrs: attrs.Clone(), Check: BooleanCheck}
}

// BooleanCheck treats nil, false and "" as unchecked and everything else as
// checked.
func BooleanCheck(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	default:
		return true
	}
}

func (w *CheckboxInput) Kind() Kind           { return KindCheckboxInput }
func (w *CheckboxInput) Attrs() Attrs         { return w.attrs }
func (w *CheckboxInput) SetAttrs(attrs Attrs) { w.attrs = attrs.Clone() }
func (w *CheckboxInput) IsHidden() bool       { return false }
func (w *CheckboxInput) TemplateName() string { return "forms/widgets/checkbox.html" }
func (w *CheckboxInput) Media() Media         { return Media{} }
func (w *CheckboxInput) Clone() Widget        { c := w.Copy(); return &c }

// Copy returns a value copy of w with its own attrs map.
func (w *CheckboxInput) Copy() CheckboxInput {
	return CheckboxInput{attrs: w.attrs.Clone(), Check: w.Check}
}

// FormatValue only renders non boolean values.
func (w *CheckboxInput) FormatValue(value any) string {
	switch v := value.(type) {
	case nil, bool:
		return ""
	case string:
		if v == "" {
			return ""
		}
	}
	return formatScalar(value, "")
}

func (w *CheckboxInput) Context(name string, value any, attrs Attrs) map[string]any {
	check := w.Check
	if check == nil {
		check = BooleanCheck
	}
	if check(value) {
		attrs = attrs.Merge(Attrs{"checked": true})
	}
	ctx := baseWidgetContext(w, name, w.FormatValue(value), attrs)
	ctx["type"] = "checkbox"
	return map[string]any{"widget": ctx}
}

// ValueFromData reports a missing key as false since browsers omit unchecked
// boxes.
func (w *CheckboxInput) ValueFromData(data url.Values, _ Files, name string) any {
	values, ok := data[name]
	if !ok || len(values) == 0 {
		return false
	}
	switch strings.ToLower(values[0]) {
	case "true":
		return true
	case "false", "":
		return false
	default:
		return true
	}
}

func checkboxChecked(data url.Values, name string) bool {
	values, ok := data[name]
	if !ok || len(values) == 0 {
		return false
	}
	switch strings.ToLower(values[0]) {
	case "", "false", "0", "off":
		return false
	default:
		return true
	}
}
