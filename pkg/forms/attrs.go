package forms

import (
	"fmt"
	"html"
	"maps"
	"slices"
	"strings"
)

// Attrs holds HTML attributes for a widget. Values are strings, booleans or
// numbers; true renders a bare attribute and false/nil omit it.
type Attrs map[string]any

// Clone returns an independent copy of a. Slice values are copied so the
// result never aliases the receiver.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return Attrs{}
	}
	out := make(Attrs, len(a))
	for key, value := range a {
		switch v := value.(type) {
		case []string:
			out[key] = slices.Clone(v)
		case []any:
			out[key] = slices.Clone(v)
		default:
			out[key] = value
		}
	}
	return out
}

// Merge returns a new map containing a overlaid with extra.
func (a Attrs) Merge(extra Attrs) Attrs {
	out := a.Clone()
	maps.Copy(out, extra)
	return out
}

// Without returns a copy of a minus the given keys.
func (a Attrs) Without(keys ...string) Attrs {
	out := a.Clone()
	for _, key := range keys {
		delete(out, key)
	}
	return out
}

// String returns the attribute formatted as text, or "" when unset.
func (a Attrs) String(key string) string {
	value, ok := a[key]
	if !ok || value == nil {
		return ""
	}
	if b, isBool := value.(bool); isBool {
		if b {
			return key
		}
		return ""
	}
	return fmt.Sprint(value)
}

// AppendClass appends class to the class attribute in place.
func (a Attrs) AppendClass(class string) {
	class = strings.TrimSpace(class)
	if class == "" {
		return
	}
	existing := strings.TrimSpace(a.String("class"))
	if existing == "" {
		a["class"] = class
		return
	}
	a["class"] = existing + " " + class
}

// FlatAttrs renders attrs as ` key="value"` pairs in key order, escaping
// values.
func FlatAttrs(attrs Attrs) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := slices.Sorted(maps.Keys(attrs))

	var b strings.Builder
	for _, key := range keys {
		switch value := attrs[key].(type) {
		case nil:
			continue
		case bool:
			if value {
				b.WriteString(" ")
				b.WriteString(key)
			}
		default:
			b.WriteString(" ")
			b.WriteString(key)
			b.WriteString(`="`)
			b.WriteString(html.EscapeString(fmt.Sprint(value)))
			b.WriteString(`"`)
		}
	}
	return b.String()
}
