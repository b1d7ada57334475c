package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-material-widgets/pkg/forms"
)

// HiddenField is an extra hidden input posted with a rendered form. Use the
// helpers (CSRFToken, AuthToken, VersionField) for the common cases.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken carries a CSRF token under the input name the backend expects,
// for example "csrfmiddlewaretoken" or "_csrf".
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// AuthToken carries an authentication token or session hint.
func AuthToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// VersionField carries a record version for optimistic locking.
func VersionField(name string, version any) HiddenField {
	return Hidden(name, version)
}

// MergeHiddenFields returns a copy of base with fields applied. Empty names
// are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		out[name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields sorts hidden fields by name for deterministic output.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		if strings.TrimSpace(name) == "" {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: strings.TrimSpace(name), Value: fields[name]})
	}
	return result
}

// ApplyHidden registers fields on form so every renderer posts them back.
// A name the form already carries keeps its position and takes the new value.
func ApplyHidden(form *forms.Form, fields ...HiddenField) {
	if form == nil {
		return
	}
	for _, field := range SortedHiddenFields(MergeHiddenFields(nil, fields...)) {
		form.Hidden(field.Name, field.Value)
	}
}
