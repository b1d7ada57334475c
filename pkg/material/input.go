package material

import (
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-material-widgets/pkg/forms"
	"github.com/goliatone/go-material-widgets/pkg/render/template"
)

var textTemplates = map[forms.Kind]string{
	forms.KindTextInput:     "material_text",
	forms.KindNumberInput:   "material_number",
	forms.KindEmailInput:    "material_email",
	forms.KindURLInput:      "material_url",
	forms.KindPasswordInput: "material_password",
	forms.KindDateInput:     "material_date",
	forms.KindDateTimeInput: "material_datetime",
	forms.KindTimeInput:     "material_time",
	forms.KindTextarea:      "material_textarea",
}

// TextField is the Material text field used for every single line input and
// the textarea. PersistentHelpText keeps the helper text visible instead of
// showing it on focus only.
type TextField struct {
	forms.Input
	component

	template           string
	PersistentHelpText bool
}

func newTextField(src *forms.Input) (*TextField, error) {
	base, ok := textTemplates[src.Kind()]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a text field", ErrNoStyledWidget, src.Kind())
	}
	return &TextField{Input: src.Copy(), template: templateName(base)}, nil
}

func mustTextField(src *forms.Input) *TextField {
	w, err := newTextField(src)
	if err != nil {
		panic(err)
	}
	return w
}

// NewTextInput returns a Material text input.
func NewTextInput(attrs forms.Attrs) *TextField { return mustTextField(forms.NewTextInput(attrs)) }

// NewNumberInput returns a Material number input.
func NewNumberInput(attrs forms.Attrs) *TextField { return mustTextField(forms.NewNumberInput(attrs)) }

// NewEmailInput returns a Material email input.
func NewEmailInput(attrs forms.Attrs) *TextField { return mustTextField(forms.NewEmailInput(attrs)) }

// NewURLInput returns a Material url input.
func NewURLInput(attrs forms.Attrs) *TextField { return mustTextField(forms.NewURLInput(attrs)) }

// NewPasswordInput returns a Material password input.
func NewPasswordInput(attrs forms.Attrs) *TextField {
	return mustTextField(forms.NewPasswordInput(attrs))
}

// NewDateInput returns a Material date input.
func NewDateInput(attrs forms.Attrs) *TextField { return mustTextField(forms.NewDateInput(attrs)) }

// NewDateTimeInput returns a Material date time input.
func NewDateTimeInput(attrs forms.Attrs) *TextField {
	return mustTextField(forms.NewDateTimeInput(attrs))
}

// NewTimeInput returns a Material time input.
func NewTimeInput(attrs forms.Attrs) *TextField { return mustTextField(forms.NewTimeInput(attrs)) }

// NewTextarea returns a Material textarea.
func NewTextarea(attrs forms.Attrs) *TextField { return mustTextField(forms.NewTextarea(attrs)) }

func (w *TextField) StyledKind() StyledKind { return StyledKindFor(w.Kind()) }
func (w *TextField) TemplateName() string   { return w.template }
func (w *TextField) Clone() forms.Widget    { c := w.Copy(); return &c }
func (w *TextField) Media() forms.Media     { return w.media(w.DeclaredAssets()) }

func (w *TextField) DeclaredAssets() forms.Media {
	return forms.NewMedia([]string{textFieldCSS}, []string{textFieldJS})
}

// Copy returns a deep copy of w.
func (w *TextField) Copy() TextField {
	return TextField{
		Input:              w.Input.Copy(),
		component:          w.component.copy(),
		template:           w.template,
		PersistentHelpText: w.PersistentHelpText,
	}
}

func (w *TextField) Context(name string, value any, attrs forms.Attrs) map[string]any {
	ctx := w.present(w.Input.Context(name, value, attrs), w.template)
	inner := forms.WidgetContext(ctx)
	inner["persistent_help_text"] = w.PersistentHelpText
	appendClass(inner, "mdc-text-field__input")
	return ctx
}

func (w *TextField) Render(r template.TemplateRenderer, name string, value any, attrs forms.Attrs) (string, error) {
	return render(r, w, name, value, attrs)
}

// Slider renders a number input as a Material slider. It is never picked by
// materialization; declare it explicitly with forms.WithWidget.
type Slider struct {
	forms.Input
	component

	IsDiscrete         bool
	DisplayMarkers     bool
	PersistentHelpText bool
}

// NewSliderInput returns a continuous slider whose help text stays visible.
func NewSliderInput(attrs forms.Attrs) *Slider {
	return &Slider{Input: forms.NewNumberInput(attrs).Copy(), PersistentHelpText: true}
}

func (w *Slider) StyledKind() StyledKind { return KindSliderInput }
func (w *Slider) TemplateName() string   { return templateName("material_slider") }
func (w *Slider) Clone() forms.Widget    { c := w.Copy(); return &c }
func (w *Slider) Media() forms.Media     { return w.media(w.DeclaredAssets()) }

func (w *Slider) DeclaredAssets() forms.Media {
	return forms.NewMedia(nil, []string{sliderJS})
}

// Copy returns a deep copy of w.
func (w *Slider) Copy() Slider {
	return Slider{
		Input:              w.Input.Copy(),
		component:          w.component.copy(),
		IsDiscrete:         w.IsDiscrete,
		DisplayMarkers:     w.DisplayMarkers,
		PersistentHelpText: w.PersistentHelpText,
	}
}

func (w *Slider) Context(name string, value any, attrs forms.Attrs) map[string]any {
	ctx := w.present(w.Input.Context(name, value, attrs), w.TemplateName())
	inner := forms.WidgetContext(ctx)
	inner["is_discrete"] = w.IsDiscrete
	inner["display_markers"] = w.DisplayMarkers
	inner["persistent_help_text"] = w.PersistentHelpText
	final, _ := inner["attrs"].(forms.Attrs)
	inner["min"] = defaultString(final.String("min"), "0")
	inner["max"] = defaultString(final.String("max"), "100")
	inner["step"] = defaultString(final.String("step"), "1")
	if v, _ := inner["value"].(string); v == "" {
		inner["value"] = inner["min"]
	}
	return ctx
}

func (w *Slider) Render(r template.TemplateRenderer, name string, value any, attrs forms.Attrs) (string, error) {
	return render(r, w, name, value, attrs)
}

// Hidden covers the hidden and multiple hidden inputs.
type Hidden struct {
	forms.Input
	component
}

// NewHiddenInput returns a Material hidden input.
func NewHiddenInput(attrs forms.Attrs) *Hidden {
	return &Hidden{Input: forms.NewHiddenInput(attrs).Copy()}
}

// NewMultipleHiddenInput returns a Material multiple hidden input.
func NewMultipleHiddenInput(attrs forms.Attrs) *Hidden {
	return &Hidden{Input: forms.NewMultipleHiddenInput(attrs).Copy()}
}

func (w *Hidden) StyledKind() StyledKind      { return StyledKindFor(w.Kind()) }
func (w *Hidden) Clone() forms.Widget         { c := w.Copy(); return &c }
func (w *Hidden) Media() forms.Media          { return w.media(w.DeclaredAssets()) }
func (w *Hidden) DeclaredAssets() forms.Media { return forms.Media{} }

func (w *Hidden) TemplateName() string {
	if w.Kind() == forms.KindMultipleHiddenInput {
		return templateName("material_multiple_hidden")
	}
	return templateName("material_hidden")
}

// Copy returns a deep copy of w.
func (w *Hidden) Copy() Hidden {
	return Hidden{Input: w.Input.Copy(), component: w.component.copy()}
}

func (w *Hidden) Context(name string, value any, attrs forms.Attrs) map[string]any {
	return w.present(w.Input.Context(name, value, attrs), w.TemplateName())
}

func (w *Hidden) Render(r template.TemplateRenderer, name string, value any, attrs forms.Attrs) (string, error) {
	return render(r, w, name, value, attrs)
}

// ButtonStyles are the accepted FileButton style tokens.
var ButtonStyles = []string{"compact", "dense", "raised", "stroked", "unelevated"}

// FileButton renders file inputs as a Material button. Button holds style
// tokens from ButtonStyles and Icon a Material icon name.
type FileButton struct {
	forms.Input
	component

	Button []string
	Icon   string
}

// NewFileInput returns a Material file button.
func NewFileInput(attrs forms.Attrs) *FileButton {
	return &FileButton{Input: forms.NewFileInput(attrs).Copy()}
}

// NewClearableFileInput returns a Material file button with a clear checkbox.
func NewClearableFileInput(attrs forms.Attrs) *FileButton {
	return &FileButton{Input: forms.NewClearableFileInput(attrs).Copy()}
}

// SetButton validates and stores the button style tokens.
func (w *FileButton) SetButton(tokens ...string) error {
	if err := ValidateButton(tokens); err != nil {
		return err
	}
	w.Button = slices.Clone(tokens)
	return nil
}

// ValidateButton rejects tokens outside ButtonStyles.
func ValidateButton(tokens []string) error {
	for _, token := range tokens {
		if !slices.Contains(ButtonStyles, token) {
			return fmt.Errorf("material: unknown button style %q (want one of %s)", token, strings.Join(ButtonStyles, ", "))
		}
	}
	return nil
}

func (w *FileButton) StyledKind() StyledKind { return StyledKindFor(w.Kind()) }
func (w *FileButton) Clone() forms.Widget    { c := w.Copy(); return &c }
func (w *FileButton) Media() forms.Media     { return w.media(w.DeclaredAssets()) }

func (w *FileButton) TemplateName() string {
	if w.Kind() == forms.KindClearableFileInput {
		return templateName("material_clearable_file_input")
	}
	return templateName("material_file")
}

func (w *FileButton) DeclaredAssets() forms.Media {
	css := []string{buttonCSS, fileInputCSS}
	if w.Kind() == forms.KindClearableFileInput {
		return forms.NewMedia(css, []string{buttonJS, checkboxJS, fileInputJS})
	}
	return forms.NewMedia(css, []string{buttonJS, fileInputJS})
}

// Copy returns a deep copy of w.
func (w *FileButton) Copy() FileButton {
	return FileButton{
		Input:     w.Input.Copy(),
		component: w.component.copy(),
		Button:    slices.Clone(w.Button),
		Icon:      w.Icon,
	}
}

func (w *FileButton) Context(name string, value any, attrs forms.Attrs) map[string]any {
	ctx := w.present(w.Input.Context(name, value, attrs), w.TemplateName())
	inner := forms.WidgetContext(ctx)
	inner["button"] = slices.Clone(w.Button)
	inner["icon"] = w.Icon
	var classes strings.Builder
	for _, token := range w.Button {
		classes.WriteString(" mdc-button--")
		classes.WriteString(token)
	}
	inner["button_classes"] = classes.String()
	appendClass(inner, "mdc-file-input__input")
	return ctx
}

func (w *FileButton) Render(r template.TemplateRenderer, name string, value any, attrs forms.Attrs) (string, error) {
	if err := ValidateButton(w.Button); err != nil {
		return "", err
	}
	return render(r, w, name, value, attrs)
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
