package material

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-material-widgets/pkg/forms"
	"github.com/goliatone/go-material-widgets/pkg/model"
)

// Row classes installed by Apply.
const (
	ErrorCSSClass    = "mdc-error"
	RequiredCSSClass = "mdc-required"
)

// ErrorList renders form errors as a Material list with an error icon per
// message. Messages are HTML escaped.
type ErrorList struct{}

func (ErrorList) RenderErrors(errs forms.ErrorList, extraClass string) string {
	if len(errs) == 0 {
		return ""
	}
	class := "mdc-errorlist mdc-list"
	if extraClass = strings.TrimSpace(extraClass); extraClass != "" {
		class += " " + extraClass
	}
	var b strings.Builder
	b.WriteString(`<ul class="`)
	b.WriteString(class)
	b.WriteString(`">`)
	for _, msg := range errs {
		b.WriteString(`<li class="mdc-list-item">`)
		b.WriteString(`<i class="mdc-list-item__start-detail material-icons" aria-hidden="true">error</i>`)
		b.WriteString(`<span class="mdc-typography--caption">`)
		b.WriteString(html.EscapeString(msg))
		b.WriteString(`</span></li>`)
	}
	b.WriteString("</ul>")
	return b.String()
}

// ComponentsLayout renders one <div> per field. Labels and help text are
// drawn by the widget templates, so rows only carry the widget.
var ComponentsLayout = forms.RowLayout{
	NormalRow:           `<div{html_class_attr}>{field}</div>`,
	ErrorRow:            `{errors}`,
	RowEnder:            `</div>`,
	HelpText:            `{help_text}`,
	ErrorsOnSeparateRow: true,
}

// Apply materializes every field of form and installs the Material error
// list, row classes and template renderer.
func Apply(form *forms.Form, opts ...Option) error {
	if form == nil {
		return errors.New("material: form is nil")
	}
	if err := NewMaterializer(opts...).MaterializeAll(form); err != nil {
		return err
	}
	r, err := Renderer()
	if err != nil {
		return err
	}
	form.SetRenderer(r)
	form.SetErrorRenderer(ErrorList{})
	form.ErrorCSSClass = ErrorCSSClass
	form.RequiredCSSClass = RequiredCSSClass
	return nil
}

// NewForm builds a form from fields and applies the Material layer.
func NewForm(fields []*forms.Field, opts ...Option) (*forms.Form, error) {
	form := forms.NewForm(fields...)
	if err := Apply(form, opts...); err != nil {
		return nil, err
	}
	return form, nil
}

// MustForm is NewForm for package level form declarations.
func MustForm(fields []*forms.Field, opts ...Option) *forms.Form {
	form, err := NewForm(fields, opts...)
	if err != nil {
		panic(err)
	}
	return form
}

// NewModelForm infers a form from schema and applies the Material layer.
func NewModelForm(ctx context.Context, schema model.Schema, formOpts []forms.ModelFormOption, opts ...Option) (*forms.ModelForm, error) {
	mf, err := forms.NewModelForm(ctx, schema, formOpts...)
	if err != nil {
		return nil, err
	}
	if err := Apply(mf.Form, opts...); err != nil {
		return nil, fmt.Errorf("material: model form %q: %w", schema.Name, err)
	}
	return mf, nil
}

// AsComponents renders form with ComponentsLayout.
func AsComponents(form *forms.Form) (string, error) {
	if form == nil {
		return "", errors.New("material: form is nil")
	}
	return form.HTMLOutput(ComponentsLayout)
}
