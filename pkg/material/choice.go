package material

import (
	"fmt"
	"path"
	"slices"

	"github.com/goliatone/go-material-widgets/pkg/forms"
	"github.com/goliatone/go-material-widgets/pkg/render/template"
)

// Select is the Material select used for single, null boolean and multiple
// selects.
type Select struct {
	forms.ChoiceWidget
	component
}

// NewSelect returns a Material select.
func NewSelect(attrs forms.Attrs, choices []forms.Choice) *Select {
	return &Select{ChoiceWidget: forms.NewSelect(attrs, choices).Copy()}
}

// NewNullBooleanSelect returns a Material Unknown/Yes/No select.
func NewNullBooleanSelect(attrs forms.Attrs) *Select {
	return &Select{ChoiceWidget: forms.NewNullBooleanSelect(attrs).Copy()}
}

// NewSelectMultiple returns a Material multiple select list.
func NewSelectMultiple(attrs forms.Attrs, choices []forms.Choice) *Select {
	return &Select{ChoiceWidget: forms.NewSelectMultiple(attrs, choices).Copy()}
}

func (w *Select) StyledKind() StyledKind { return StyledKindFor(w.Kind()) }
func (w *Select) Clone() forms.Widget    { c := w.Copy(); return &c }
func (w *Select) Media() forms.Media     { return w.media(w.DeclaredAssets()) }

func (w *Select) DeclaredAssets() forms.Media {
	return forms.NewMedia([]string{selectCSS}, []string{selectJS})
}

func (w *Select) multiple() bool { return w.Kind() == forms.KindSelectMultiple }

func (w *Select) TemplateName() string {
	if w.multiple() {
		return templateName("material_select_multiple")
	}
	return templateName("material_select")
}

// OptionTemplateName is the template of each <option>.
func (w *Select) OptionTemplateName() string {
	if w.multiple() {
		return templateName("material_select_option_nojs")
	}
	return templateName("material_select_option")
}

func (w *Select) class() string {
	if w.multiple() {
		return "mdc-multi-select mdc-list"
	}
	return "mdc-select"
}

// Copy returns a deep copy of w.
func (w *Select) Copy() Select {
	return Select{ChoiceWidget: w.ChoiceWidget.Copy(), component: w.component.copy()}
}

func (w *Select) Context(name string, value any, attrs forms.Attrs) map[string]any {
	option := w.OptionTemplateName()
	ctx := w.ChoiceWidget.ContextWith(name, value, attrs, func(_ int, opt map[string]any) {
		opt["template_name"] = option
		opt["template_file"] = path.Base(option)
	})
	ctx = w.present(ctx, w.TemplateName())
	inner := forms.WidgetContext(ctx)
	inner["option_template_name"] = option
	inner["option_template_file"] = path.Base(option)
	appendClass(inner, w.class())
	return ctx
}

func (w *Select) Render(r template.TemplateRenderer, name string, value any, attrs forms.Attrs) (string, error) {
	return render(r, w, name, value, attrs)
}

// ChoiceGroup renders radio buttons or a checkbox group. ChoiceHelpText holds
// one entry per top level choice and is shown under the option label.
type ChoiceGroup struct {
	forms.ChoiceWidget
	component

	IsVertical bool
	// ChoiceHelpText is replaced on materialization when the field declares
	// its own entries.
	ChoiceHelpText []string
}

// NewRadioSelect returns a horizontal Material radio group.
func NewRadioSelect(attrs forms.Attrs, choices []forms.Choice) *ChoiceGroup {
	return &ChoiceGroup{ChoiceWidget: forms.NewRadioSelect(attrs, choices).Copy()}
}

// NewCheckboxSelectMultiple returns a vertical Material checkbox group.
func NewCheckboxSelectMultiple(attrs forms.Attrs, choices []forms.Choice) *ChoiceGroup {
	return &ChoiceGroup{
		ChoiceWidget: forms.NewCheckboxSelectMultiple(attrs, choices).Copy(),
		IsVertical:   true,
	}
}

func (w *ChoiceGroup) StyledKind() StyledKind { return StyledKindFor(w.Kind()) }
func (w *ChoiceGroup) Clone() forms.Widget    { c := w.Copy(); return &c }
func (w *ChoiceGroup) Media() forms.Media     { return w.media(w.DeclaredAssets()) }

func (w *ChoiceGroup) radio() bool { return w.Kind() == forms.KindRadioSelect }

func (w *ChoiceGroup) DeclaredAssets() forms.Media {
	if w.radio() {
		return forms.NewMedia(nil, []string{radioJS})
	}
	return forms.NewMedia(nil, []string{checkboxJS})
}

func (w *ChoiceGroup) TemplateName() string {
	if w.radio() {
		return templateName("material_radio")
	}
	return templateName("material_checkbox_select")
}

// OptionTemplateName is the template of each radio or checkbox.
func (w *ChoiceGroup) OptionTemplateName() string {
	if w.radio() {
		return templateName("material_radio_option")
	}
	return templateName("material_checkbox_option")
}

func (w *ChoiceGroup) controlClass() string {
	if w.radio() {
		return "mdc-radio__native-control"
	}
	return "mdc-checkbox__native-control"
}

// Copy returns a deep copy of w.
func (w *ChoiceGroup) Copy() ChoiceGroup {
	return ChoiceGroup{
		ChoiceWidget:   w.ChoiceWidget.Copy(),
		component:      w.component.copy(),
		IsVertical:     w.IsVertical,
		ChoiceHelpText: slices.Clone(w.ChoiceHelpText),
	}
}

// OptionHelpText returns the help text of the top level choice at index, or
// "" when none was given.
func (w *ChoiceGroup) OptionHelpText(index int) string {
	if index < 0 || index >= len(w.ChoiceHelpText) {
		return ""
	}
	return w.ChoiceHelpText[index]
}

// CheckChoiceHelpText reports ErrChoiceHelpText when help entries were given
// but fewer than the top level choices.
func (w *ChoiceGroup) CheckChoiceHelpText() error {
	if n := len(w.ChoiceHelpText); n > 0 && n < len(w.Choices) {
		return fmt.Errorf("%w: %d entries for %d choices", ErrChoiceHelpText, n, len(w.Choices))
	}
	return nil
}

func (w *ChoiceGroup) Context(name string, value any, attrs forms.Attrs) map[string]any {
	option := w.OptionTemplateName()
	ctx := w.ChoiceWidget.ContextWith(name, value, attrs, func(index int, opt map[string]any) {
		setHelp(opt, w.sanitizer(), w.OptionHelpText(index))
		opt["template_name"] = option
		opt["template_file"] = path.Base(option)
		appendClass(opt, w.controlClass())
	})
	ctx = w.present(ctx, w.TemplateName())
	inner := forms.WidgetContext(ctx)
	inner["option_template_name"] = option
	inner["option_template_file"] = path.Base(option)
	inner["is_vertical"] = w.IsVertical
	return ctx
}

func (w *ChoiceGroup) Render(r template.TemplateRenderer, name string, value any, attrs forms.Attrs) (string, error) {
	if err := w.CheckChoiceHelpText(); err != nil {
		return "", fmt.Errorf("material: %q: %w", name, err)
	}
	return render(r, w, name, value, attrs)
}
