package forms

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Choice is one selectable option. A Choice with Group entries is an option
// group; its Value is ignored and Label names the group.
type Choice struct {
	Value string   `json:"value"`
	Label string   `json:"label"`
	Group []Choice `json:"group,omitempty"`
}

// IsGroup reports whether c holds nested options.
func (c Choice) IsGroup() bool {
	return len(c.Group) > 0
}

// CloneChoices deep copies choices including nested groups.
func CloneChoices(choices []Choice) []Choice {
	if choices == nil {
		return nil
	}
	out := make([]Choice, len(choices))
	for idx, choice := range choices {
		out[idx] = Choice{Value: choice.Value, Label: choice.Label, Group: CloneChoices(choice.Group)}
	}
	return out
}

// FlattenChoices returns the leaf options of choices in order.
func FlattenChoices(choices []Choice) []Choice {
	var out []Choice
	for _, choice := range choices {
		if choice.IsGroup() {
			out = append(out, choice.Group...)
			continue
		}
		out = append(out, choice)
	}
	return out
}

// OptionDecorator adjusts an option context. index is the position of the
// option's top level choice.
type OptionDecorator func(index int, option map[string]any)

// ChoiceWidget renders selects, radio groups and checkbox groups.
type ChoiceWidget struct {
	kind           Kind
	template       string
	optionTemplate string
	attrs          Attrs

	Choices       []Choice
	AllowMultiple bool
	// InputType is "radio" or "checkbox" for input groups and "" for selects.
	InputType string
}

// NewSelect returns a single value select.
func NewSelect(attrs Attrs, choices []Choice) *ChoiceWidget {
	return &ChoiceWidget{
		kind:           KindSelect,
		template:       "forms/widgets/select.html",
		optionTemplate: "forms/widgets/select_option.html",
		attrs:          attrs.Clone(),
		Choices:        CloneChoices(choices),
	}
}

// NewNullBooleanSelect returns a select offering Unknown, Yes and No.
func NewNullBooleanSelect(attrs Attrs) *ChoiceWidget {
	w := NewSelect(attrs, []Choice{
		{Value: "unknown", Label: "Unknown"},
		{Value: "true", Label: "Yes"},
		{Value: "false", Label: "No"},
	})
	w.kind = KindNullBooleanSelect
	return w
}

// NewSelectMultiple returns a multi value select.
func NewSelectMultiple(attrs Attrs, choices []Choice) *ChoiceWidget {
	w := NewSelect(attrs, choices)
	w.kind = KindSelectMultiple
	w.AllowMultiple = true
	return w
}

// NewRadioSelect returns a radio button group.
func NewRadioSelect(attrs Attrs, choices []Choice) *ChoiceWidget {
	return &ChoiceWidget{
		kind:           KindRadioSelect,
		template:       "forms/widgets/radio.html",
		optionTemplate: "forms/widgets/radio_option.html",
		attrs:          attrs.Clone(),
		Choices:        CloneChoices(choices),
		InputType:      "radio",
	}
}

// NewCheckboxSelectMultiple returns a checkbox group.
func NewCheckboxSelectMultiple(attrs Attrs, choices []Choice) *ChoiceWidget {
	return &ChoiceWidget{
		kind:           KindCheckboxSelectMultiple,
		template:       "forms/widgets/checkbox_select.html",
		optionTemplate: "forms/widgets/checkbox_option.html",
		attrs:          attrs.Clone(),
		Choices:        CloneChoices(choices),
		AllowMultiple:  true,
		InputType:      "checkbox",
	}
}

func (w *ChoiceWidget) Kind() Kind                  { return w.kind }
func (w *ChoiceWidget) Attrs() Attrs                { return w.attrs }
func (w *ChoiceWidget) SetAttrs(attrs Attrs)        { w.attrs = attrs.Clone() }
func (w *ChoiceWidget) IsHidden() bool              { return false }
func (w *ChoiceWidget) TemplateName() string        { return w.template }
func (w *ChoiceWidget) OptionTemplateName() string  { return w.optionTemplate }
func (w *ChoiceWidget) Media() Media                { return Media{} }
func (w *ChoiceWidget) Clone() Widget               { c := w.Copy(); return &c }
func (w *ChoiceWidget) SetChoices(choices []Choice) { w.Choices = CloneChoices(choices) }
func (w *ChoiceWidget) LeafChoices() []Choice       { return FlattenChoices(w.Choices) }
func (w *ChoiceWidget) isInputGroup() bool          { return w.InputType != "" }
func (w *ChoiceWidget) isNullBoolean() bool         { return w.kind == KindNullBooleanSelect }

// Copy returns a value copy of w with its own attrs and choices.
func (w *ChoiceWidget) Copy() ChoiceWidget {
	return ChoiceWidget{
		kind:           w.kind,
		template:       w.template,
		optionTemplate: w.optionTemplate,
		attrs:          w.attrs.Clone(),
		Choices:        CloneChoices(w.Choices),
		AllowMultiple:  w.AllowMultiple,
		InputType:      w.InputType,
	}
}

// FormatValue returns the selected values as strings.
func (w *ChoiceWidget) FormatValue(value any) []string {
	if w.isNullBoolean() {
		return []string{nullBooleanValue(value)}
	}
	return formatList(value)
}

func (w *ChoiceWidget) Context(name string, value any, attrs Attrs) map[string]any {
	return w.ContextWith(name, value, attrs, nil)
}

// ContextWith builds the context and lets decorate extend every option.
func (w *ChoiceWidget) ContextWith(name string, value any, attrs Attrs, decorate OptionDecorator) map[string]any {
	if w.AllowMultiple && !w.isInputGroup() {
		attrs = attrs.Merge(Attrs{"multiple": true})
	}
	selected := w.FormatValue(value)
	ctx := baseWidgetContext(w, name, strings.Join(selected, ","), attrs)
	ctx["values"] = selected
	ctx["type"] = w.InputType
	ctx["option_template_name"] = w.optionTemplate
	ctx["option_template_file"] = baseName(w.optionTemplate)

	finalAttrs := ctx["attrs"].(Attrs)
	if w.isInputGroup() {
		// Group inputs carry the id on each option, not the wrapper.
		ctx["attrs_html"] = FlatAttrs(finalAttrs.Without("id", "required"))
	}
	groups, options := w.optgroups(name, selected, finalAttrs, decorate)
	ctx["optgroups"] = groups
	ctx["options"] = options
	return map[string]any{"widget": ctx}
}

func (w *ChoiceWidget) optgroups(name string, selected []string, attrs Attrs, decorate OptionDecorator) ([]map[string]any, []map[string]any) {
	var groups, flat []map[string]any
	hasSelected := false

	for index, choice := range w.Choices {
		groupName := ""
		leaves := []Choice{choice}
		if choice.IsGroup() {
			groupName = choice.Label
			leaves = choice.Group
		}

		subgroup := make([]map[string]any, 0, len(leaves))
		for subindex, leaf := range leaves {
			isSelected := slices.Contains(selected, leaf.Value) && (!hasSelected || w.AllowMultiple)
			hasSelected = hasSelected || isSelected

			optionIndex := strconv.Itoa(index)
			if choice.IsGroup() {
				optionIndex = fmt.Sprintf("%d_%d", index, subindex)
			}
			option := w.option(name, leaf, isSelected, optionIndex, attrs)
			if decorate != nil {
				decorate(index, option)
			}
			subgroup = append(subgroup, option)
			flat = append(flat, option)
		}

		groups = append(groups, map[string]any{
			"name":    groupName,
			"index":   strconv.Itoa(index),
			"options": subgroup,
		})
	}
	return groups, flat
}

func (w *ChoiceWidget) option(name string, choice Choice, selected bool, index string, attrs Attrs) map[string]any {
	optionAttrs := Attrs{}
	if w.isInputGroup() {
		optionAttrs = attrs.Without("multiple")
		if id := idFor(attrs); id != "" {
			optionAttrs["id"] = id + "_" + index
		}
		if w.AllowMultiple {
			delete(optionAttrs, "required")
		}
		if selected {
			optionAttrs["checked"] = true
		}
	} else if selected {
		optionAttrs["selected"] = true
	}

	return map[string]any{
		"name":          name,
		"value":         choice.Value,
		"label":         choice.Label,
		"selected":      selected,
		"index":         index,
		"type":          w.InputType,
		"id":            optionAttrs.String("id"),
		"attrs":         optionAttrs,
		"attrs_html":    FlatAttrs(optionAttrs),
		"template_name": w.optionTemplate,
		"template_file": baseName(w.optionTemplate),
		"wrap_label":    true,
	}
}

func (w *ChoiceWidget) ValueFromData(data url.Values, _ Files, name string) any {
	values, ok := data[name]
	if w.isNullBoolean() {
		if !ok || len(values) == 0 {
			return nil
		}
		return parseNullBoolean(values[0])
	}
	if w.AllowMultiple {
		if !ok {
			return nil
		}
		return slices.Clone(values)
	}
	if !ok || len(values) == 0 {
		return nil
	}
	return values[0]
}

// UseRequiredAttribute only keeps required on single selects whose first
// option is an empty placeholder.
func (w *ChoiceWidget) UseRequiredAttribute(any) bool {
	switch {
	case w.kind == KindCheckboxSelectMultiple:
		return false
	case w.isInputGroup() || w.AllowMultiple:
		return true
	}
	leaves := FlattenChoices(w.Choices)
	return len(leaves) > 0 && leaves[0].Value == ""
}

func parseNullBoolean(raw string) any {
	switch raw {
	case "2", "True", "true":
		return true
	case "3", "False", "false":
		return false
	default:
		return nil
	}
}

func nullBooleanValue(value any) string {
	switch v := value.(type) {
	case bool:
		if v {
			return "true"
		}
		return "false"
	case *bool:
		if v != nil {
			return nullBooleanValue(*v)
		}
	case string:
		if parsed, ok := parseNullBoolean(v).(bool); ok {
			return nullBooleanValue(parsed)
		}
	}
	return "unknown"
}

func formatList(value any) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case []string:
		return slices.Clone(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, formatScalar(item, ""))
		}
		return out
	case []int64:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, strconv.FormatInt(item, 10))
		}
		return out
	default:
		return []string{formatScalar(v, "")}
	}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func baseName(name string) string {
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		return name[idx+1:]
	}
	return name
}
