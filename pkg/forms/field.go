package forms

import (
	"slices"
	"strconv"
)

// FieldType selects the validation rules and default widget of a field.
type FieldType string

const (
	TypeChar                FieldType = "char"
	TypeInteger             FieldType = "integer"
	TypeFloat               FieldType = "float"
	TypeDecimal             FieldType = "decimal"
	TypeBoolean             FieldType = "boolean"
	TypeNullBoolean         FieldType = "null_boolean"
	TypeDate                FieldType = "date"
	TypeDateTime            FieldType = "date_time"
	TypeTime                FieldType = "time"
	TypeEmail               FieldType = "email"
	TypeURL                 FieldType = "url"
	TypeSlug                FieldType = "slug"
	TypeGenericIPAddress    FieldType = "generic_ip_address"
	TypeFile                FieldType = "file"
	TypeFilePath            FieldType = "file_path"
	TypeChoice              FieldType = "choice"
	TypeMultipleChoice      FieldType = "multiple_choice"
	TypeTypedChoice         FieldType = "typed_choice"
	TypeModelChoice         FieldType = "model_choice"
	TypeModelMultipleChoice FieldType = "model_multiple_choice"
	TypeSplitDateTime       FieldType = "split_date_time"
	TypeText                FieldType = "text"
	TypePassword            FieldType = "password"
)

// WidgetFactory builds a fresh default widget.
type WidgetFactory func(attrs Attrs, choices []Choice) Widget

func plain(build func(Attrs) *Input) WidgetFactory {
	return func(attrs Attrs, _ []Choice) Widget { return build(attrs) }
}

func choiceFactory(build func(Attrs, []Choice) *ChoiceWidget) WidgetFactory {
	return func(attrs Attrs, choices []Choice) Widget { return build(attrs, choices) }
}

func checkboxFactory(attrs Attrs, _ []Choice) Widget { return NewCheckboxInput(attrs) }

func nullBooleanFactory(attrs Attrs, _ []Choice) Widget { return NewNullBooleanSelect(attrs) }

func splitDateTimeFactory(attrs Attrs, _ []Choice) Widget { return NewSplitDateTimeWidget(attrs) }

var defaultWidgets = map[FieldType]WidgetFactory{
	TypeChar:                plain(NewTextInput),
	TypeInteger:             plain(NewNumberInput),
	TypeFloat:               plain(NewNumberInput),
	TypeDecimal:             plain(NewNumberInput),
	TypeBoolean:             checkboxFactory,
	TypeNullBoolean:         nullBooleanFactory,
	TypeDate:                plain(NewDateInput),
	TypeDateTime:            plain(NewDateTimeInput),
	TypeTime:                plain(NewTimeInput),
	TypeEmail:               plain(NewEmailInput),
	TypeURL:                 plain(NewURLInput),
	TypeSlug:                plain(NewTextInput),
	TypeGenericIPAddress:    plain(NewTextInput),
	TypeFile:                plain(NewClearableFileInput),
	TypeFilePath:            choiceFactory(NewSelect),
	TypeChoice:              choiceFactory(NewSelect),
	TypeMultipleChoice:      choiceFactory(NewSelectMultiple),
	TypeTypedChoice:         choiceFactory(NewSelect),
	TypeModelChoice:         choiceFactory(NewSelect),
	TypeModelMultipleChoice: choiceFactory(NewSelectMultiple),
	TypeSplitDateTime:       splitDateTimeFactory,
	TypeText:                plain(NewTextarea),
	TypePassword:            plain(NewPasswordInput),
}

// FieldTypes lists every field type with a default widget, sorted.
func FieldTypes() []FieldType {
	out := make([]FieldType, 0, len(defaultWidgets))
	for ft := range defaultWidgets {
		out = append(out, ft)
	}
	slices.Sort(out)
	return out
}

// DefaultWidget returns a new instance of the default widget for ft.
func DefaultWidget(ft FieldType, attrs Attrs, choices []Choice) (Widget, bool) {
	build, ok := defaultWidgets[ft]
	if !ok {
		return nil, false
	}
	return build(attrs, choices), true
}

// IsMultiple reports whether ft collects a list of values.
func (ft FieldType) IsMultiple() bool {
	return ft == TypeMultipleChoice || ft == TypeModelMultipleChoice
}

// HasChoices reports whether ft validates against a choice list.
func (ft FieldType) HasChoices() bool {
	switch ft {
	case TypeChoice, TypeTypedChoice, TypeMultipleChoice, TypeFilePath,
		TypeModelChoice, TypeModelMultipleChoice:
		return true
	}
	return false
}

// Field declares one input of a form.
type Field struct {
	Name     string
	Type     FieldType
	Label    string
	HelpText string
	// ChoiceHelpText holds one help entry per top level choice for radio and
	// checkbox groups.
	ChoiceHelpText []string
	Required       bool
	Initial        any
	Choices        []Choice
	MaxLength      int
	MinLength      int
	MinValue       *float64
	MaxValue       *float64
	MaxDigits      int
	DecimalPlaces  int
	Disabled       bool
	Widget         Widget

	labelSet bool
	attrs    Attrs
}

// FieldOption customises a field during NewField.
type FieldOption func(*Field)

// NewField declares a required field with the default widget for ft.
func NewField(name string, ft FieldType, opts ...FieldOption) *Field {
	field := &Field{
		Name:     name,
		Type:     ft,
		Required: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(field)
		}
	}

	if field.Widget == nil {
		w, ok := DefaultWidget(ft, nil, field.Choices)
		if !ok {
			w = NewTextInput(nil)
		}
		field.Widget = w
	} else if chooser, ok := field.Widget.(interface{ SetChoices([]Choice) }); ok && field.Choices != nil {
		chooser.SetChoices(field.Choices)
	}

	attrs := field.Widget.Attrs().Merge(field.attrs).Merge(field.WidgetAttrs(field.Widget))
	field.Widget.SetAttrs(attrs)
	field.attrs = nil
	return field
}

// HasLabel reports whether a label was set explicitly, including a blank one.
func (f *Field) HasLabel() bool {
	return f.labelSet
}

// SetLabel sets an explicit label. A blank label stays blank when rendered.
func (f *Field) SetLabel(label string) {
	f.Label = label
	f.labelSet = true
}

// WidgetAttrs returns the attrs the field imposes on w, mirroring its length
// and range constraints.
func (f *Field) WidgetAttrs(w Widget) Attrs {
	attrs := Attrs{}
	if w == nil || w.IsHidden() {
		return attrs
	}
	switch f.Type {
	case TypeChar, TypeSlug, TypeEmail, TypeURL, TypeText, TypePassword, TypeGenericIPAddress:
		if f.MaxLength > 0 {
			attrs["maxlength"] = strconv.Itoa(f.MaxLength)
		}
		if f.MinLength > 0 {
			attrs["minlength"] = strconv.Itoa(f.MinLength)
		}
	case TypeInteger, TypeFloat, TypeDecimal:
		if w.Kind() != KindNumberInput {
			return attrs
		}
		if f.MinValue != nil {
			attrs["min"] = formatNumber(*f.MinValue)
		}
		if f.MaxValue != nil {
			attrs["max"] = formatNumber(*f.MaxValue)
		}
		if _, set := w.Attrs()["step"]; set {
			return attrs
		}
		switch {
		case f.Type == TypeDecimal && f.DecimalPlaces > 0:
			attrs["step"] = decimalStep(f.DecimalPlaces)
		case f.Type == TypeFloat, f.Type == TypeDecimal:
			attrs["step"] = "any"
		}
	}
	return attrs
}

// Clone copies f and its widget.
func (f *Field) Clone() *Field {
	out := *f
	out.ChoiceHelpText = slices.Clone(f.ChoiceHelpText)
	out.Choices = CloneChoices(f.Choices)
	if f.Widget != nil {
		out.Widget = f.Widget.Clone()
	}
	return &out
}

// LeafChoices returns the selectable options of the field.
func (f *Field) LeafChoices() []Choice {
	return FlattenChoices(f.Choices)
}

// WithLabel sets an explicit label. An empty string keeps the label blank.
func WithLabel(label string) FieldOption {
	return func(f *Field) { f.SetLabel(label) }
}

// WithNoLabel marks the label as deliberately blank.
func WithNoLabel() FieldOption {
	return WithLabel("")
}

// WithHelpText sets the help text shown with the field.
func WithHelpText(text string) FieldOption {
	return func(f *Field) { f.HelpText = text }
}

// WithChoiceHelpText sets one help entry per choice for group widgets.
func WithChoiceHelpText(texts ...string) FieldOption {
	return func(f *Field) { f.ChoiceHelpText = slices.Clone(texts) }
}

// WithRequired toggles whether a value must be supplied.
func WithRequired(required bool) FieldOption {
	return func(f *Field) { f.Required = required }
}

// WithInitial sets the value rendered on an unbound form.
func WithInitial(value any) FieldOption {
	return func(f *Field) { f.Initial = value }
}

// WithChoices sets the options of choice fields.
func WithChoices(choices ...Choice) FieldOption {
	return func(f *Field) { f.Choices = CloneChoices(choices) }
}

// WithWidget replaces the default widget.
func WithWidget(w Widget) FieldOption {
	return func(f *Field) { f.Widget = w }
}

// WithAttrs merges attrs into the widget attrs once the widget is built.
func WithAttrs(attrs Attrs) FieldOption {
	return func(f *Field) { f.attrs = f.attrs.Merge(attrs) }
}

// WithMaxLength caps the value length.
func WithMaxLength(n int) FieldOption {
	return func(f *Field) { f.MaxLength = n }
}

// WithMinLength sets the minimum value length.
func WithMinLength(n int) FieldOption {
	return func(f *Field) { f.MinLength = n }
}

// WithMinValue sets the lower bound of numeric fields.
func WithMinValue(v float64) FieldOption {
	return func(f *Field) { f.MinValue = &v }
}

// WithMaxValue sets the upper bound of numeric fields.
func WithMaxValue(v float64) FieldOption {
	return func(f *Field) { f.MaxValue = &v }
}

// WithDecimal constrains decimal fields to maxDigits digits with places
// after the point.
func WithDecimal(maxDigits, places int) FieldOption {
	return func(f *Field) {
		f.MaxDigits = maxDigits
		f.DecimalPlaces = places
	}
}

// WithDisabled renders the field disabled and ignores submitted data.
func WithDisabled() FieldOption {
	return func(f *Field) { f.Disabled = true }
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func decimalStep(places int) string {
	if places <= 0 {
		return "1"
	}
	step := make([]byte, 0, places+2)
	step = append(step, '0', '.')
	for i := 1; i < places; i++ {
		step = append(step, '0')
	}
	return string(append(step, '1'))
}
