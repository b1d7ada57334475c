package forms

import (
	"errors"
	"fmt"
	"html"
	"net/url"
	"slices"
	"strings"

	"github.com/goliatone/go-material-widgets/pkg/render/template"
)

// Validator runs after every field is cleaned. A returned ValidationError is
// recorded as a non-field error; use Form.AddError for field errors.
type Validator func(f *Form, cleaned map[string]any) error

// HiddenValue is an extra hidden input posted with the form, such as a CSRF
// token.
type HiddenValue struct {
	Name  string
	Value string
}

// Form is an ordered set of fields plus the submitted data bound to them.
type Form struct {
	fields []*Field

	// Prefix namespaces every input name as <prefix>-<name>.
	Prefix string
	// AutoID is the id format applied when a widget has none; "" disables ids.
	AutoID string
	// LabelSuffix is appended to labels that do not end in punctuation.
	LabelSuffix string
	// ErrorCSSClass and RequiredCSSClass decorate rows.
	ErrorCSSClass    string
	RequiredCSSClass string
	// UseRequiredAttribute toggles the HTML required attribute.
	UseRequiredAttribute bool

	initial map[string]any
	hidden  []HiddenValue

	data  url.Values
	files Files
	bound bool

	errors    ErrorMap
	cleaned   map[string]any
	validated bool

	validators    []Validator
	renderer      template.TemplateRenderer
	errorRenderer ErrorRenderer
}

// NewForm builds an unbound form. Fields keep declaration order; a later field
// with the same name replaces an earlier one in place.
func NewForm(fields ...*Field) *Form {
	form := &Form{
		AutoID:               "id_%s",
		LabelSuffix:          ":",
		UseRequiredAttribute: true,
		initial:              map[string]any{},
		errorRenderer:        DefaultErrorRenderer{},
	}
	for _, field := range fields {
		form.AddField(field)
	}
	return form
}

// AddField appends field or replaces the field with the same name.
func (f *Form) AddField(field *Field) {
	if field == nil {
		return
	}
	for idx, existing := range f.fields {
		if existing.Name == field.Name {
			f.fields[idx] = field
			f.reset()
			return
		}
	}
	f.fields = append(f.fields, field)
	f.reset()
}

// Fields returns the fields in declaration order.
func (f *Form) Fields() []*Field {
	return slices.Clone(f.fields)
}

// Field looks a field up by name.
func (f *Form) Field(name string) (*Field, bool) {
	for _, field := range f.fields {
		if field.Name == name {
			return field, true
		}
	}
	return nil, false
}

// SetInitial overrides initial values for unbound rendering.
func (f *Form) SetInitial(values map[string]any) {
	for key, value := range values {
		f.initial[key] = value
	}
}

// Initial returns the initial value for name, preferring form level values.
func (f *Form) Initial(name string) any {
	if value, ok := f.initial[name]; ok {
		return value
	}
	if field, ok := f.Field(name); ok {
		return field.Initial
	}
	return nil
}

// Hidden adds an extra hidden input rendered alongside the fields.
func (f *Form) Hidden(name, value string) {
	for idx, existing := range f.hidden {
		if existing.Name == name {
			f.hidden[idx].Value = value
			return
		}
	}
	f.hidden = append(f.hidden, HiddenValue{Name: name, Value: value})
}

// HiddenValues returns the extra hidden inputs in insertion order.
func (f *Form) HiddenValues() []HiddenValue {
	return slices.Clone(f.hidden)
}

// AddValidator registers a form level check.
func (f *Form) AddValidator(v Validator) {
	if v != nil {
		f.validators = append(f.validators, v)
		f.reset()
	}
}

// SetRenderer sets the template renderer used for widgets.
func (f *Form) SetRenderer(r template.TemplateRenderer) {
	f.renderer = r
}

// Renderer returns the widget template renderer, falling back to the
// embedded default templates.
func (f *Form) Renderer() (template.TemplateRenderer, error) {
	if f.renderer != nil {
		return f.renderer, nil
	}
	return DefaultRenderer()
}

// SetErrorRenderer swaps the markup used for error lists.
func (f *Form) SetErrorRenderer(r ErrorRenderer) {
	if r == nil {
		r = DefaultErrorRenderer{}
	}
	f.errorRenderer = r
}

// ErrorRenderer returns the active error renderer.
func (f *Form) ErrorRenderer() ErrorRenderer {
	return f.errorRenderer
}

// RenderErrors renders errs with the form's error renderer.
func (f *Form) RenderErrors(errs ErrorList, extraClass string) string {
	return f.errorRenderer.RenderErrors(errs, extraClass)
}

// Bind attaches submitted data and files, discarding earlier results.
func (f *Form) Bind(data url.Values, files Files) {
	if data == nil {
		data = url.Values{}
	}
	if files == nil {
		files = Files{}
	}
	f.data = data
	f.files = files
	f.bound = true
	f.reset()
}

// IsBound reports whether data was bound.
func (f *Form) IsBound() bool {
	return f.bound
}

// IsValid reports whether the form is bound and every field cleaned.
func (f *Form) IsValid() bool {
	return f.bound && len(f.Errors()) == 0
}

// Errors returns field errors keyed by name, cleaning the form if needed.
func (f *Form) Errors() ErrorMap {
	f.fullClean()
	return f.errors
}

// NonFieldErrors returns the errors not tied to a field.
func (f *Form) NonFieldErrors() ErrorList {
	return slices.Clone(f.Errors()[NonFieldErrors])
}

// CleanedData returns the cleaned values of fields that validated.
func (f *Form) CleanedData() map[string]any {
	f.fullClean()
	out := make(map[string]any, len(f.cleaned))
	for key, value := range f.cleaned {
		out[key] = value
	}
	return out
}

// AddError records msg against field, or as a non-field error when field is
// "". The field is dropped from the cleaned data.
func (f *Form) AddError(field, msg string) error {
	f.fullClean()
	if field == "" {
		field = NonFieldErrors
	} else if _, ok := f.Field(field); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if f.errors == nil {
		f.errors = ErrorMap{}
	}
	f.errors[field] = append(f.errors[field], msg)
	delete(f.cleaned, field)
	return nil
}

// HasError reports whether field has errors.
func (f *Form) HasError(field string) bool {
	return len(f.Errors()[field]) > 0
}

// HTMLName returns the submitted input name of a field.
func (f *Form) HTMLName(name string) string {
	if f.Prefix == "" {
		return name
	}
	return f.Prefix + "-" + name
}

// Media merges the media of every widget in declaration order.
func (f *Form) Media() Media {
	media := Media{}
	for _, field := range f.fields {
		if field.Widget != nil {
			media = media.Merge(field.Widget.Media())
		}
	}
	return media
}

// IsMultipart reports whether a file widget requires multipart encoding.
func (f *Form) IsMultipart() bool {
	for _, field := range f.fields {
		if input, ok := field.Widget.(interface{ IsFile() bool }); ok && input.IsFile() {
			return true
		}
	}
	return false
}

// BoundField pairs a field with the form it belongs to.
func (f *Form) BoundField(name string) (*BoundField, error) {
	field, ok := f.Field(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return &BoundField{form: f, field: field}, nil
}

// BoundFields returns one BoundField per field in declaration order.
func (f *Form) BoundFields() []*BoundField {
	out := make([]*BoundField, 0, len(f.fields))
	for _, field := range f.fields {
		out = append(out, &BoundField{form: f, field: field})
	}
	return out
}

func (f *Form) reset() {
	f.errors = nil
	f.cleaned = nil
	f.validated = false
}

func (f *Form) fullClean() {
	if f.validated {
		return
	}
	f.validated = true
	f.errors = ErrorMap{}
	f.cleaned = map[string]any{}
	if !f.bound {
		return
	}

	for _, field := range f.fields {
		name := f.HTMLName(field.Name)
		var raw any
		if field.Disabled {
			raw = f.Initial(field.Name)
		} else {
			raw = field.Widget.ValueFromData(f.data, f.files, name)
		}
		value, err := field.CleanWithInitial(raw, f.Initial(field.Name))
		if err != nil {
			f.recordError(field.Name, err)
			continue
		}
		f.cleaned[field.Name] = value
	}

	for _, validate := range f.validators {
		if err := validate(f, f.cleaned); err != nil {
			f.recordError(NonFieldErrors, err)
		}
	}
}

func (f *Form) recordError(field string, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		for _, msg := range verr.Messages {
			_ = f.AddError(field, msg)
		}
		return
	}
	if field != NonFieldErrors {
		f.errors[field] = append(f.errors[field], err.Error())
		delete(f.cleaned, field)
		return
	}
	f.errors[NonFieldErrors] = append(f.errors[NonFieldErrors], err.Error())
}

// BoundField renders a field with the form's data, initial values and errors.
type BoundField struct {
	form  *Form
	field *Field
}

// Field returns the underlying field.
func (b *BoundField) Field() *Field { return b.field }

// Form returns the form the field is bound to.
func (b *BoundField) Form() *Form { return b.form }

// Name is the field name.
func (b *BoundField) Name() string { return b.field.Name }

// HTMLName is the submitted input name.
func (b *BoundField) HTMLName() string { return b.form.HTMLName(b.field.Name) }

// IsHidden reports whether the widget renders hidden.
func (b *BoundField) IsHidden() bool { return b.field.Widget.IsHidden() }

// Errors returns the field's errors.
func (b *BoundField) Errors() ErrorList {
	return slices.Clone(b.form.Errors()[b.field.Name])
}

// Label returns the display label, deriving one from the name when none was
// set explicitly.
func (b *BoundField) Label() string {
	if b.field.HasLabel() {
		return b.field.Label
	}
	return defaultLabel(b.field.Name)
}

// AutoID returns the id the widget receives when it declares none.
func (b *BoundField) AutoID() string {
	format := b.form.AutoID
	if format == "" {
		return ""
	}
	if strings.Contains(format, "%s") {
		return fmt.Sprintf(format, b.HTMLName())
	}
	return b.HTMLName()
}

// IDForLabel is the id a <label for> should point at.
func (b *BoundField) IDForLabel() string {
	if id := b.field.Widget.Attrs().String("id"); id != "" {
		return id
	}
	return b.AutoID()
}

// Value returns the data to render: submitted data when bound, initial
// otherwise.
func (b *BoundField) Value() any {
	initial := b.form.Initial(b.field.Name)
	if !b.form.bound || b.field.Disabled {
		return initial
	}
	data := b.field.Widget.ValueFromData(b.form.data, b.form.files, b.HTMLName())
	if b.field.Type == TypeFile && data == nil {
		return initial
	}
	return data
}

// WidgetAttrs returns the attrs added at render time: id, required and
// disabled.
func (b *BoundField) WidgetAttrs() Attrs {
	attrs := Attrs{}
	widget := b.field.Widget
	if id := b.AutoID(); id != "" && widget.Attrs().String("id") == "" {
		attrs["id"] = id
	}
	useRequired := true
	if ra, ok := widget.(requiredAttributer); ok {
		useRequired = ra.UseRequiredAttribute(b.form.Initial(b.field.Name))
	}
	if useRequired && b.field.Required && b.form.UseRequiredAttribute {
		attrs["required"] = true
	}
	if b.field.Disabled {
		attrs["disabled"] = true
	}
	return attrs
}

// Render renders the widget through the form's template renderer.
func (b *BoundField) Render() (string, error) {
	r, err := b.form.Renderer()
	if err != nil {
		return "", err
	}
	return Render(r, b.field.Widget, b.HTMLName(), b.Value(), b.WidgetAttrs())
}

// CSSClasses returns the row classes: extra plus the form's error and
// required classes when they apply.
func (b *BoundField) CSSClasses(extra ...string) string {
	classes := make([]string, 0, len(extra)+2)
	for _, class := range extra {
		for _, token := range strings.Fields(class) {
			if !slices.Contains(classes, token) {
				classes = append(classes, token)
			}
		}
	}
	if b.form.ErrorCSSClass != "" && len(b.Errors()) > 0 {
		classes = append(classes, b.form.ErrorCSSClass)
	}
	if b.form.RequiredCSSClass != "" && b.field.Required {
		classes = append(classes, b.form.RequiredCSSClass)
	}
	return strings.Join(classes, " ")
}

// LabelTag wraps contents in a <label> pointing at the widget. contents is
// inserted as is; escape it first.
func (b *BoundField) LabelTag(contents string) string {
	suffix := b.form.LabelSuffix
	if suffix != "" && contents != "" && !strings.ContainsAny(contents[len(contents)-1:], ":?.!") {
		contents += html.EscapeString(suffix)
	}
	attrs := Attrs{}
	if id := b.IDForLabel(); id != "" {
		attrs["for"] = id
	}
	if b.form.RequiredCSSClass != "" && b.field.Required {
		attrs["class"] = b.form.RequiredCSSClass
	}
	if _, ok := attrs["for"]; !ok && len(attrs) == 0 {
		return contents
	}
	return "<label" + FlatAttrs(attrs) + ">" + contents + "</label>"
}
