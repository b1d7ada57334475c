package forms

import (
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-material-widgets/pkg/model"
)

// RowLayout parameterises HTMLOutput. NormalRow may use the placeholders
// {errors} {label} {field} {help_text} {html_class_attr} {css_classes} and
// {field_name}; ErrorRow and HelpText use {errors} and {help_text}.
type RowLayout struct {
	NormalRow           string
	ErrorRow            string
	RowEnder            string
	HelpText            string
	ErrorsOnSeparateRow bool
}

// Built in layouts.
var (
	ParagraphLayout = RowLayout{
		NormalRow:           `<p{html_class_attr}>{label} {field}{help_text}</p>`,
		ErrorRow:            `{errors}`,
		RowEnder:            `</p>`,
		HelpText:            ` <span class="helptext">{help_text}</span>`,
		ErrorsOnSeparateRow: true,
	}
	TableLayout = RowLayout{
		NormalRow: `<tr{html_class_attr}><th>{label}</th><td>{errors}{field}{help_text}</td></tr>`,
		ErrorRow:  `<tr><td colspan="2">{errors}</td></tr>`,
		RowEnder:  `</td></tr>`,
		HelpText:  `<br><span class="helptext">{help_text}</span>`,
	}
	ListLayout = RowLayout{
		NormalRow: `<li{html_class_attr}>{errors}{label} {field}{help_text}</li>`,
		ErrorRow:  `<li>{errors}</li>`,
		RowEnder:  `</li>`,
		HelpText:  ` <span class="helptext">{help_text}</span>`,
	}
)

type rowValues struct {
	errors, label, field, helpText, classAttr, cssClasses, fieldName string
}

func (l RowLayout) row(v rowValues) string {
	return strings.NewReplacer(
		"{errors}", v.errors,
		"{label}", v.label,
		"{field}", v.field,
		"{help_text}", v.helpText,
		"{html_class_attr}", v.classAttr,
		"{css_classes}", v.cssClasses,
		"{field_name}", v.fieldName,
	).Replace(l.NormalRow)
}

func (l RowLayout) errorRow(errs string) string {
	return strings.ReplaceAll(l.ErrorRow, "{errors}", errs)
}

// HTMLOutput renders every field with layout. Hidden fields are collected and
// appended to the last row, and their errors are reported at the top.
func (f *Form) HTMLOutput(layout RowLayout) (string, error) {
	topErrors := f.NonFieldErrors()
	var output, hidden []string
	lastClassAttr := ""

	for _, bf := range f.BoundFields() {
		errs := bf.Errors()
		rendered, err := bf.Render()
		if err != nil {
			return "", err
		}

		if bf.IsHidden() {
			for _, msg := range errs {
				topErrors = append(topErrors, fmt.Sprintf("(Hidden field %s) %s", bf.Name(), msg))
			}
			hidden = append(hidden, rendered)
			continue
		}

		cssClasses := bf.CSSClasses()
		classAttr := ""
		if cssClasses != "" {
			classAttr = ` class="` + cssClasses + `"`
		}
		lastClassAttr = classAttr

		renderedErrors := f.RenderErrors(errs, "")
		if layout.ErrorsOnSeparateRow && len(errs) > 0 {
			output = append(output, layout.errorRow(renderedErrors))
		}

		label := ""
		if text := bf.Label(); text != "" {
			label = bf.LabelTag(html.EscapeString(text))
		}
		helpText := ""
		if bf.Field().HelpText != "" {
			helpText = strings.ReplaceAll(layout.HelpText, "{help_text}", bf.Field().HelpText)
		}

		output = append(output, layout.row(rowValues{
			errors:     renderedErrors,
			label:      label,
			field:      rendered,
			helpText:   helpText,
			classAttr:  classAttr,
			cssClasses: cssClasses,
			fieldName:  bf.HTMLName(),
		}))
	}

	if len(topErrors) > 0 {
		output = append([]string{layout.errorRow(f.RenderErrors(topErrors, "nonfield"))}, output...)
	}

	if len(hidden) > 0 {
		joined := strings.Join(hidden, "")
		if len(output) > 0 {
			last := output[len(output)-1]
			if !strings.HasSuffix(last, layout.RowEnder) {
				last = layout.row(rowValues{classAttr: lastClassAttr})
				output = append(output, last)
			}
			output[len(output)-1] = strings.TrimSuffix(last, layout.RowEnder) + joined + layout.RowEnder
		} else {
			output = append(output, joined)
		}
	}
	return strings.Join(output, "\n"), nil
}

// AsP renders the form as paragraphs.
func (f *Form) AsP() (string, error) {
	return f.HTMLOutput(ParagraphLayout)
}

// AsTable renders the form as table rows.
func (f *Form) AsTable() (string, error) {
	return f.HTMLOutput(TableLayout)
}

// AsUL renders the form as list items.
func (f *Form) AsUL() (string, error) {
	return f.HTMLOutput(ListLayout)
}

func defaultLabel(name string) string {
	return model.VerboseLabel(name)
}
