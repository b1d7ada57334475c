package model

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

const slugPattern = `^[-a-zA-Z0-9_]+$`

// FromOpenAPI derives a Schema from the named component of an OpenAPI 3
// document (JSON or YAML). Properties are emitted in lexical order. Object
// references become foreign keys and arrays of references become many to
// many columns, both pointing at the lower-cased component name.
func FromOpenAPI(ctx context.Context, data []byte, component string) (Schema, error) {
	if err := ctx.Err(); err != nil {
		return Schema{}, err
	}
	if len(data) == 0 {
		return Schema{}, errors.New("model: openapi document is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return Schema{}, fmt.Errorf("model: load openapi document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return Schema{}, fmt.Errorf("model: validate openapi document: %w", err)
	}
	if doc.Components == nil || doc.Components.Schemas == nil {
		return Schema{}, errors.New("model: openapi document has no component schemas")
	}
	ref, ok := doc.Components.Schemas[component]
	if !ok || ref == nil || ref.Value == nil {
		return Schema{}, fmt.Errorf("model: openapi component %q not found", component)
	}

	src := ref.Value
	required := make(map[string]struct{}, len(src.Required))
	for _, name := range src.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	schema := Schema{Name: strings.ToLower(component)}
	for _, name := range names {
		prop := src.Properties[name]
		if prop == nil || prop.Value == nil {
			continue
		}
		col, ok := columnFromProperty(name, prop)
		if !ok {
			continue
		}
		if _, isRequired := required[name]; !isRequired {
			col.Blank = true
		}
		schema.Columns = append(schema.Columns, col)
	}

	if err := schema.Validate(); err != nil {
		return Schema{}, err
	}
	return schema, nil
}

func columnFromProperty(name string, ref *openapi3.SchemaRef) (Column, bool) {
	prop := ref.Value
	col := Column{
		Name:        name,
		VerboseName: prop.Title,
		HelpText:    prop.Description,
		Null:        prop.Nullable,
		Default:     prop.Default,
	}

	switch {
	case ref.Ref != "" && prop.Type.Is(openapi3.TypeObject):
		col.Kind = KindForeignKey
		col.Related = componentName(ref.Ref)
		return col, true
	case prop.Type.Is(openapi3.TypeArray):
		if prop.Items == nil || prop.Items.Ref == "" {
			return Column{}, false
		}
		col.Kind = KindManyToMany
		col.Related = componentName(prop.Items.Ref)
		return col, true
	case prop.Type.Is(openapi3.TypeBoolean):
		col.Kind = KindBoolean
		if prop.Nullable {
			col.Kind = KindNullBoolean
		}
		return col, true
	case prop.Type.Is(openapi3.TypeInteger):
		col.Kind = integerKind(prop)
		return col, true
	case prop.Type.Is(openapi3.TypeNumber):
		col.Kind = KindFloat
		if prop.Format == "decimal" {
			col.Kind = KindDecimal
			col.MaxDigits, col.DecimalPlaces = 12, 2
		}
		return col, true
	case prop.Type.Is(openapi3.TypeString):
		stringColumn(&col, prop)
		return col, true
	default:
		return Column{}, false
	}
}

func integerKind(prop *openapi3.Schema) ColumnKind {
	nonNegative := prop.Min != nil && *prop.Min >= 0
	small := prop.Max != nil && *prop.Max <= 32767
	switch {
	case prop.Format == "int64" && !nonNegative:
		return KindBigInteger
	case nonNegative && small:
		return KindPositiveSmallInteger
	case nonNegative:
		return KindPositiveInteger
	case small && prop.Min != nil && *prop.Min >= -32768:
		return KindSmallInteger
	default:
		return KindInteger
	}
}

func stringColumn(col *Column, prop *openapi3.Schema) {
	switch prop.Format {
	case "date":
		col.Kind = KindDate
	case "date-time":
		col.Kind = KindDateTime
	case "time":
		col.Kind = KindTime
	case "email":
		col.Kind = KindEmail
	case "uri", "url":
		col.Kind = KindURL
	case "ipv4", "ipv6":
		col.Kind = KindGenericIPAddress
	case "binary":
		col.Kind = KindFile
	default:
		switch {
		case prop.Pattern == slugPattern:
			col.Kind = KindSlug
		case prop.MaxLength != nil:
			col.Kind = KindChar
			col.MaxLength = int(*prop.MaxLength)
		default:
			col.Kind = KindText
		}
	}
	if col.Kind == KindSlug && prop.MaxLength != nil {
		col.MaxLength = int(*prop.MaxLength)
	}
	for _, value := range prop.Enum {
		label := fmt.Sprint(value)
		col.Choices = append(col.Choices, Choice{Value: label, Label: CapFirst(label)})
	}
	if len(col.Choices) > 0 && col.Kind == KindText {
		col.Kind = KindChar
		col.MaxLength = longestChoice(col.Choices)
	}
}

func longestChoice(choices []Choice) int {
	longest := 1
	for _, choice := range choices {
		if n := len(choice.Value); n > longest {
			longest = n
		}
	}
	return longest
}

func componentName(ref string) string {
	idx := strings.LastIndex(ref, "/")
	return strings.ToLower(ref[idx+1:])
}
