package material

import (
	"github.com/goliatone/go-material-widgets/pkg/forms"
	"github.com/goliatone/go-material-widgets/pkg/render/template"
)

// Checkbox is the Material checkbox.
type Checkbox struct {
	forms.CheckboxInput
	component
}

// NewCheckboxInput returns a Material checkbox.
func NewCheckboxInput(attrs forms.Attrs) *Checkbox {
	return &Checkbox{CheckboxInput: forms.NewCheckboxInput(attrs).Copy()}
}

func (w *Checkbox) StyledKind() StyledKind { return KindCheckboxInput }
func (w *Checkbox) TemplateName() string   { return templateName("material_checkbox") }
func (w *Checkbox) Clone() forms.Widget    { c := w.Copy(); return &c }
func (w *Checkbox) Media() forms.Media     { return w.media(w.DeclaredAssets()) }

func (w *Checkbox) DeclaredAssets() forms.Media {
	return forms.NewMedia(nil, []string{checkboxJS})
}

// Copy returns a deep copy of w.
func (w *Checkbox) Copy() Checkbox {
	return Checkbox{CheckboxInput: w.CheckboxInput.Copy(), component: w.component.copy()}
}

func (w *Checkbox) Context(name string, value any, attrs forms.Attrs) map[string]any {
	ctx := w.present(w.CheckboxInput.Context(name, value, attrs), w.TemplateName())
	appendClass(forms.WidgetContext(ctx), "mdc-checkbox__native-control")
	return ctx
}

func (w *Checkbox) Render(r template.TemplateRenderer, name string, value any, attrs forms.Attrs) (string, error) {
	return render(r, w, name, value, attrs)
}

// Switch renders a boolean as a Material switch. Like Slider it is only used
// when declared on a field.
type Switch struct {
	forms.CheckboxInput
	component
}

// NewSwitchInput returns a Material switch.
func NewSwitchInput(attrs forms.Attrs) *Switch {
	return &Switch{CheckboxInput: forms.NewCheckboxInput(attrs).Copy()}
}

func (w *Switch) StyledKind() StyledKind { return KindSwitchInput }
func (w *Switch) TemplateName() string   { return templateName("material_switch") }
func (w *Switch) Clone() forms.Widget    { c := w.Copy(); return &c }
func (w *Switch) Media() forms.Media     { return w.media(w.DeclaredAssets()) }

func (w *Switch) DeclaredAssets() forms.Media {
	return forms.NewMedia([]string{switchCSS}, nil)
}

// Copy returns a deep copy of w.
func (w *Switch) Copy() Switch {
	return Switch{CheckboxInput: w.CheckboxInput.Copy(), component: w.component.copy()}
}

func (w *Switch) Context(name string, value any, attrs forms.Attrs) map[string]any {
	ctx := w.present(w.CheckboxInput.Context(name, value, attrs), w.TemplateName())
	appendClass(forms.WidgetContext(ctx), "mdc-switch__native-control")
	return ctx
}

func (w *Switch) Render(r template.TemplateRenderer, name string, value any, attrs forms.Attrs) (string, error) {
	return render(r, w, name, value, attrs)
}
