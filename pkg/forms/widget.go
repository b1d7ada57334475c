package forms

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/url"
	"slices"
	"time"

	"github.com/goliatone/go-material-widgets/pkg/render/template"
)

// Kind identifies a default widget kind.
type Kind string

const (
	KindTextInput                 Kind = "TextInput"
	KindNumberInput               Kind = "NumberInput"
	KindEmailInput                Kind = "EmailInput"
	KindURLInput                  Kind = "URLInput"
	KindPasswordInput             Kind = "PasswordInput"
	KindHiddenInput               Kind = "HiddenInput"
	KindMultipleHiddenInput       Kind = "MultipleHiddenInput"
	KindFileInput                 Kind = "FileInput"
	KindClearableFileInput        Kind = "ClearableFileInput"
	KindTextarea                  Kind = "Textarea"
	KindDateInput                 Kind = "DateInput"
	KindDateTimeInput             Kind = "DateTimeInput"
	KindTimeInput                 Kind = "TimeInput"
	KindCheckboxInput             Kind = "CheckboxInput"
	KindSelect                    Kind = "Select"
	KindNullBooleanSelect         Kind = "NullBooleanSelect"
	KindSelectMultiple            Kind = "SelectMultiple"
	KindRadioSelect               Kind = "RadioSelect"
	KindCheckboxSelectMultiple    Kind = "CheckboxSelectMultiple"
	KindMultiWidget               Kind = "MultiWidget"
	KindSplitDateTimeWidget       Kind = "SplitDateTimeWidget"
	KindSplitHiddenDateTimeWidget Kind = "SplitHiddenDateTimeWidget"
	KindSelectDateWidget          Kind = "SelectDateWidget"
)

var allKinds = []Kind{
	KindTextInput, KindNumberInput, KindEmailInput, KindURLInput, KindPasswordInput,
	KindHiddenInput, KindMultipleHiddenInput, KindFileInput, KindClearableFileInput,
	KindTextarea, KindDateInput, KindDateTimeInput, KindTimeInput, KindCheckboxInput,
	KindSelect, KindNullBooleanSelect, KindSelectMultiple, KindRadioSelect,
	KindCheckboxSelectMultiple, KindMultiWidget, KindSplitDateTimeWidget,
	KindSplitHiddenDateTimeWidget, KindSelectDateWidget,
}

// Kinds lists every default widget kind in declaration order.
func Kinds() []Kind {
	return slices.Clone(allKinds)
}

// Files carries uploaded files keyed by field name.
type Files map[string][]*multipart.FileHeader

// Widget renders one field value as markup and extracts it back from a
// submission.
type Widget interface {
	Kind() Kind
	Attrs() Attrs
	SetAttrs(Attrs)
	IsHidden() bool
	TemplateName() string
	// Context returns the template context, a map with a single "widget" key.
	Context(name string, value any, attrs Attrs) map[string]any
	ValueFromData(data url.Values, files Files, name string) any
	Media() Media
	// Clone returns a copy sharing no mutable state with the receiver.
	Clone() Widget
}

// MultiValueWidget is implemented by widgets made of sub-widgets.
type MultiValueWidget interface {
	Widget
	Widgets() []Widget
	Decompress(value any) []any
}

// Renderer is implemented by widgets that control their own rendering.
type Renderer interface {
	Render(r template.TemplateRenderer, name string, value any, attrs Attrs) (string, error)
}

// requiredAttributer lets a widget veto the HTML required attribute.
type requiredAttributer interface {
	UseRequiredAttribute(initial any) bool
}

// RenderWidget renders w through its template.
func RenderWidget(r template.TemplateRenderer, w Widget, name string, value any, attrs Attrs) (string, error) {
	if r == nil {
		return "", errors.New("forms: template renderer is nil")
	}
	if w == nil {
		return "", fmt.Errorf("forms: widget for %q is nil", name)
	}
	out, err := r.RenderTemplate(w.TemplateName(), w.Context(name, value, attrs))
	if err != nil {
		return "", fmt.Errorf("forms: render %s %q: %w", w.Kind(), name, err)
	}
	return out, nil
}

// Render dispatches to the widget's own Render when it has one.
func Render(r template.TemplateRenderer, w Widget, name string, value any, attrs Attrs) (string, error) {
	if custom, ok := w.(Renderer); ok {
		return custom.Render(r, name, value, attrs)
	}
	return RenderWidget(r, w, name, value, attrs)
}

// WidgetContext returns the "widget" map from a context built by Context.
func WidgetContext(ctx map[string]any) map[string]any {
	if ctx == nil {
		return nil
	}
	inner, _ := ctx["widget"].(map[string]any)
	return inner
}

func baseWidgetContext(w Widget, name, value string, attrs Attrs) map[string]any {
	final := w.Attrs().Merge(attrs)
	return map[string]any{
		"name":          name,
		"is_hidden":     w.IsHidden(),
		"required":      final["required"] == true,
		"value":         value,
		"attrs":         final,
		"attrs_html":    FlatAttrs(final),
		"template_name": w.TemplateName(),
		"template_file": baseName(w.TemplateName()),
	}
}

func formatScalar(value any, layout string) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		if v {
			return "True"
		}
		return "False"
	case time.Time:
		if v.IsZero() {
			return ""
		}
		if layout == "" {
			layout = time.RFC3339
		}
		return v.Format(layout)
	case *time.Time:
		if v == nil {
			return ""
		}
		return formatScalar(*v, layout)
	case *multipart.FileHeader:
		return ""
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func idFor(attrs Attrs) string {
	return attrs.String("id")
}
