package forms

import (
	"errors"
	"fmt"
	"html"
	"maps"
	"slices"
	"strings"
)

// NonFieldErrors is the Errors key holding errors not tied to one field.
const NonFieldErrors = "__all__"

var (
	// ErrInvalidForm is returned when an operation needs a valid bound form.
	ErrInvalidForm = errors.New("forms: form is not valid")
	// ErrUnknownField is returned when a field name is not declared.
	ErrUnknownField = errors.New("forms: unknown field")
)

// ValidationError reports why a value was rejected.
type ValidationError struct {
	Code     string
	Messages []string
}

// NewValidationError formats a single message.
func NewValidationError(code, format string, args ...any) *ValidationError {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &ValidationError{Code: code, Messages: []string{msg}}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, " ")
}

// ErrorList holds the messages of one field, rendered by an ErrorRenderer.
type ErrorList []string

// Render returns the default <ul class="errorlist"> markup, or "" when empty.
func (e ErrorList) Render() string {
	return DefaultErrorRenderer{}.RenderErrors(e, "")
}

func (e ErrorList) String() string {
	return strings.Join(e, " ")
}

// ErrorRenderer turns an ErrorList into markup. extraClass is set for
// non-field errors.
type ErrorRenderer interface {
	RenderErrors(errs ErrorList, extraClass string) string
}

// ErrorRendererFunc adapts a function to ErrorRenderer.
type ErrorRendererFunc func(errs ErrorList, extraClass string) string

func (fn ErrorRendererFunc) RenderErrors(errs ErrorList, extraClass string) string {
	return fn(errs, extraClass)
}

// DefaultErrorRenderer renders <ul class="errorlist"><li>...</li></ul>.
type DefaultErrorRenderer struct{}

func (DefaultErrorRenderer) RenderErrors(errs ErrorList, extraClass string) string {
	if len(errs) == 0 {
		return ""
	}
	class := "errorlist"
	if extraClass = strings.TrimSpace(extraClass); extraClass != "" {
		class += " " + extraClass
	}
	var b strings.Builder
	b.WriteString(`<ul class="`)
	b.WriteString(class)
	b.WriteString(`">`)
	for _, msg := range errs {
		b.WriteString("<li>")
		b.WriteString(html.EscapeString(msg))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

// ErrorMap maps field names to their errors.
type ErrorMap map[string]ErrorList

func (m ErrorMap) Error() string {
	keys := slices.Sorted(maps.Keys(m))
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+m[key].String())
	}
	return strings.Join(parts, "; ")
}

// InvalidFormError carries the errors of a form that failed validation. It
// matches ErrInvalidForm with errors.Is.
type InvalidFormError struct {
	Errors ErrorMap
}

func (e *InvalidFormError) Error() string {
	if len(e.Errors) == 0 {
		return ErrInvalidForm.Error()
	}
	return ErrInvalidForm.Error() + ": " + e.Errors.Error()
}

func (e *InvalidFormError) Unwrap() error {
	return ErrInvalidForm
}
