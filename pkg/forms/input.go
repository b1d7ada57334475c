package forms

import (
	"net/url"
	"slices"
)

const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// Input covers the single-value widgets rendered as an <input> (and the
// textarea): text, number, email, url, password, hidden, file and the date and
// time inputs.
type Input struct {
	kind     Kind
	template string
	attrs    Attrs

	// InputType is the type attribute of the rendered element.
	InputType string
	// Format is the time layout applied to time.Time values.
	Format string
	// HideValue suppresses the value on render (passwords).
	HideValue bool
}

func newInput(kind Kind, inputType, template string, attrs Attrs) *Input {
	return &Input{
		kind:      kind,
		template:  template,
		attrs:     attrs.Clone(),
		InputType: inputType,
	}
}

// NewTextInput returns a text input.
func NewTextInput(attrs Attrs) *Input {
	return newInput(KindTextInput, "text", "forms/widgets/text.html", attrs)
}

// NewNumberInput returns a number input.
func NewNumberInput(attrs Attrs) *Input {
	return newInput(KindNumberInput, "number", "forms/widgets/number.html", attrs)
}

// NewEmailInput returns an email input.
func NewEmailInput(attrs Attrs) *Input {
	return newInput(KindEmailInput, "email", "forms/widgets/email.html", attrs)
}

// NewURLInput returns a url input.
func NewURLInput(attrs Attrs) *Input {
	return newInput(KindURLInput, "url", "forms/widgets/url.html", attrs)
}

// NewPasswordInput returns a password input that never echoes its value.
func NewPasswordInput(attrs Attrs) *Input {
	w := newInput(KindPasswordInput, "password", "forms/widgets/password.html", attrs)
	w.HideValue = true
	return w
}

// NewHiddenInput returns a hidden input.
func NewHiddenInput(attrs Attrs) *Input {
	return newInput(KindHiddenInput, "hidden", "forms/widgets/hidden.html", attrs)
}

// NewMultipleHiddenInput returns a hidden input emitting one element per
// value.
func NewMultipleHiddenInput(attrs Attrs) *Input {
	return newInput(KindMultipleHiddenInput, "hidden", "forms/widgets/multiple_hidden.html", attrs)
}

// NewFileInput returns a file input.
func NewFileInput(attrs Attrs) *Input {
	return newInput(KindFileInput, "file", "forms/widgets/file.html", attrs)
}

// NewClearableFileInput returns a file input with a clear checkbox when a
// file is already stored.
func NewClearableFileInput(attrs Attrs) *Input {
	return newInput(KindClearableFileInput, "file", "forms/widgets/clearable_file_input.html", attrs)
}

// NewTextarea returns a textarea with the usual 40x10 geometry.
func NewTextarea(attrs Attrs) *Input {
	base := Attrs{"cols": "40", "rows": "10"}
	return newInput(KindTextarea, "", "forms/widgets/textarea.html", base.Merge(attrs))
}

// NewDateInput returns a date input formatting values as YYYY-MM-DD.
func NewDateInput(attrs Attrs) *Input {
	w := newInput(KindDateInput, "text", "forms/widgets/date.html", attrs)
	w.Format = DateLayout
	return w
}

// NewDateTimeInput returns a date time input.
func NewDateTimeInput(attrs Attrs) *Input {
	w := newInput(KindDateTimeInput, "text", "forms/widgets/datetime.html", attrs)
	w.Format = DateTimeLayout
	return w
}

// NewTimeInput returns a time input.
func NewTimeInput(attrs Attrs) *Input {
	w := newInput(KindTimeInput, "text", "forms/widgets/time.html", attrs)
	w.Format = TimeLayout
	return w
}

func (w *Input) Kind() Kind             { return w.kind }
func (w *Input) Attrs() Attrs           { return w.attrs }
func (w *Input) SetAttrs(attrs Attrs)   { w.attrs = attrs.Clone() }
func (w *Input) TemplateName() string   { return w.template }
func (w *Input) Media() Media           { return Media{} }
func (w *Input) Clone() Widget          { c := w.Copy(); return &c }
func (w *Input) IsFile() bool           { return w.kind == KindFileInput || w.kind == KindClearableFileInput }
func (w *Input) IsMultipleHidden() bool { return w.kind == KindMultipleHiddenInput }

func (w *Input) IsHidden() bool {
	return w.InputType == "hidden"
}

// Copy returns a value copy of w with its own attrs map.
func (w *Input) Copy() Input {
	return Input{
		kind:      w.kind,
		template:  w.template,
		attrs:     w.attrs.Clone(),
		InputType: w.InputType,
		Format:    w.Format,
		HideValue: w.HideValue,
	}
}

// FormatValue renders value the way it appears in the value attribute.
func (w *Input) FormatValue(value any) string {
	if w.HideValue || w.IsFile() {
		return ""
	}
	return formatScalar(value, w.Format)
}

func (w *Input) Context(name string, value any, attrs Attrs) map[string]any {
	ctx := baseWidgetContext(w, name, w.FormatValue(value), attrs)
	ctx["type"] = w.InputType

	switch w.kind {
	case KindMultipleHiddenInput:
		ctx["subwidgets"] = w.hiddenSubwidgets(name, value, ctx["attrs"].(Attrs))
	case KindClearableFileInput:
		initial := formatScalar(value, "")
		checkboxName := name + "-clear"
		ctx["is_initial"] = initial != ""
		ctx["initial_value"] = initial
		ctx["checkbox_name"] = checkboxName
		ctx["checkbox_id"] = checkboxName + "_id"
		ctx["initial_text"] = "Currently"
		ctx["input_text"] = "Change"
		ctx["clear_checkbox_label"] = "Clear"
	}
	return map[string]any{"widget": ctx}
}

func (w *Input) hiddenSubwidgets(name string, value any, attrs Attrs) []map[string]any {
	values := formatList(value)
	id := idFor(attrs)
	out := make([]map[string]any, 0, len(values))
	for idx, v := range values {
		sub := attrs.Clone()
		if id != "" {
			sub["id"] = id + "_" + itoa(idx)
		}
		out = append(out, map[string]any{
			"name":       name,
			"value":      v,
			"attrs_html": FlatAttrs(sub),
		})
	}
	return out
}

func (w *Input) ValueFromData(data url.Values, files Files, name string) any {
	switch {
	case w.kind == KindMultipleHiddenInput:
		values, ok := data[name]
		if !ok {
			return nil
		}
		return slices.Clone(values)
	case w.IsFile():
		if uploads := files[name]; len(uploads) > 0 {
			if _, multiple := w.attrs["multiple"]; multiple {
				return slices.Clone(uploads)
			}
			return uploads[0]
		}
		if w.kind == KindClearableFileInput && checkboxChecked(data, name+"-clear") {
			return false
		}
		return nil
	default:
		values, ok := data[name]
		if !ok || len(values) == 0 {
			return nil
		}
		return values[0]
	}
}

// UseRequiredAttribute drops the required attribute on hidden inputs and on
// clearable file inputs that already hold a file.
func (w *Input) UseRequiredAttribute(initial any) bool {
	if w.IsHidden() {
		return false
	}
	if w.kind == KindClearableFileInput {
		return formatScalar(initial, "") == ""
	}
	return true
}
