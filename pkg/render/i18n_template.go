package render

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-material-widgets/pkg/render/template"
)

// TemplateI18nConfig configures the template translation filter.
type TemplateI18nConfig struct {
	// LocaleKey selects the entry used to infer the locale when the filter
	// parameter is a map or struct instead of a locale string.
	LocaleKey string
	// FilterName overrides the filter name (defaults to "translate").
	FilterName string
	// OnMissing controls the text returned when a translation is missing.
	OnMissing MissingTranslationHandler
}

// TranslateFilter returns a template filter translating its input key:
//
//	{{ "forms.users.title"|translate:locale }}
//
// The parameter is a locale string, or a map or struct holding the locale
// under cfg.LocaleKey.
func TranslateFilter(t Translator, cfg TemplateI18nConfig) func(input any, param any) (any, error) {
	localeKey := strings.TrimSpace(cfg.LocaleKey)
	if localeKey == "" {
		localeKey = "locale"
	}
	onMissing := cfg.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	return func(input any, param any) (any, error) {
		key := strings.TrimSpace(fmt.Sprint(input))
		if input == nil || key == "" {
			return "", nil
		}
		locale := resolveLocale(param, localeKey)
		if t == nil {
			return onMissing(locale, key, nil, ErrMissingTranslator), nil
		}
		msg, err := t.Translate(locale, key)
		if err != nil || strings.TrimSpace(msg) == "" {
			return onMissing(locale, key, nil, err), nil
		}
		return msg, nil
	}
}

// RegisterTranslateFilter installs TranslateFilter on renderer. Template
// filters are process wide, so the name can be registered only once.
func RegisterTranslateFilter(renderer template.TemplateRenderer, t Translator, cfg TemplateI18nConfig) error {
	if renderer == nil {
		return fmt.Errorf("render: template renderer is required")
	}
	name := strings.TrimSpace(cfg.FilterName)
	if name == "" {
		name = "translate"
	}
	return renderer.RegisterFilter(name, TranslateFilter(t, cfg))
}

func resolveLocale(src any, key string) string {
	if src == nil {
		return ""
	}

	if str, ok := src.(string); ok {
		return str
	}

	if key == "" {
		return ""
	}

	switch data := src.(type) {
	case map[string]any:
		if v, ok := data[key]; ok {
			if str, ok := v.(string); ok {
				return str
			}
			if str := strings.TrimSpace(fmt.Sprint(v)); str != "" {
				return str
			}
		}
	case map[string]string:
		if v, ok := data[key]; ok {
			return v
		}
	}

	value := reflect.ValueOf(src)
	for value.IsValid() && value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return ""
		}
		value = value.Elem()
	}

	if !value.IsValid() {
		return ""
	}

	switch value.Kind() {
	case reflect.Struct:
		field := value.FieldByNameFunc(func(name string) bool {
			return name == key
		})
		if field.IsValid() && field.Kind() == reflect.String {
			return field.String()
		}
	case reflect.Map:
		if value.Type().Key().Kind() == reflect.String {
			val := value.MapIndex(reflect.ValueOf(key))
			if val.IsValid() && val.Kind() == reflect.String {
				return val.String()
			}
		}
	}

	return ""
}
