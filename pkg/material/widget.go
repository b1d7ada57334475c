// Package material replaces default form widgets with widgets styled for
// Material Components for the Web.
//
// Every default widget kind has an explicit styled counterpart in the
// Registry. Materialize swaps a field's widget for its counterpart, copying
// attrs and choices, and injects the label and help text the Material
// templates display.
package material

import (
	"fmt"
	"html"
	"path"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-material-widgets/pkg/forms"
	"github.com/goliatone/go-material-widgets/pkg/render/template"
)

// StyledKind identifies a styled widget. The name is "Material" followed by
// the default kind it replaces.
type StyledKind string

const (
	KindCheckboxInput             StyledKind = "MaterialCheckboxInput"
	KindCheckboxSelectMultiple    StyledKind = "MaterialCheckboxSelectMultiple"
	KindClearableFileInput        StyledKind = "MaterialClearableFileInput"
	KindDateInput                 StyledKind = "MaterialDateInput"
	KindDateTimeInput             StyledKind = "MaterialDateTimeInput"
	KindEmailInput                StyledKind = "MaterialEmailInput"
	KindFileInput                 StyledKind = "MaterialFileInput"
	KindHiddenInput               StyledKind = "MaterialHiddenInput"
	KindMultipleHiddenInput       StyledKind = "MaterialMultipleHiddenInput"
	KindMultiWidget               StyledKind = "MaterialMultiWidget"
	KindNullBooleanSelect         StyledKind = "MaterialNullBooleanSelect"
	KindNumberInput               StyledKind = "MaterialNumberInput"
	KindPasswordInput             StyledKind = "MaterialPasswordInput"
	KindRadioSelect               StyledKind = "MaterialRadioSelect"
	KindSelect                    StyledKind = "MaterialSelect"
	KindSelectDateWidget          StyledKind = "MaterialSelectDateWidget"
	KindSelectMultiple            StyledKind = "MaterialSelectMultiple"
	KindSliderInput               StyledKind = "MaterialSliderInput"
	KindSplitDateTimeWidget       StyledKind = "MaterialSplitDateTimeWidget"
	KindSplitHiddenDateTimeWidget StyledKind = "MaterialSplitHiddenDateTimeWidget"
	KindSwitchInput               StyledKind = "MaterialSwitchInput"
	KindTextarea                  StyledKind = "MaterialTextarea"
	KindTextInput                 StyledKind = "MaterialTextInput"
	KindTimeInput                 StyledKind = "MaterialTimeInput"
	KindURLInput                  StyledKind = "MaterialURLInput"
)

// StyledKindFor returns the styled kind named after a default kind.
func StyledKindFor(kind forms.Kind) StyledKind {
	return StyledKind("Material" + string(kind))
}

// Static assets shipped with the package.
const (
	errorCSS       = "material_widgets/css/material_error.css"
	buttonCSS      = "material_widgets/css/material_button.css"
	fileInputCSS   = "material_widgets/css/material_file_input.css"
	multiwidgetCSS = "material_widgets/css/material_multiwidget.css"
	selectCSS      = "material_widgets/css/material_select.css"
	switchCSS      = "material_widgets/css/material_switch.css"
	textFieldCSS   = "material_widgets/css/material_text_field.css"

	buttonJS    = "material_widgets/js/material_button.js"
	checkboxJS  = "material_widgets/js/material_checkbox.js"
	fileInputJS = "material_widgets/js/material_file_input.js"
	radioJS     = "material_widgets/js/material_radio.js"
	selectJS    = "material_widgets/js/material_select.js"
	sliderJS    = "material_widgets/js/material_slider.js"
	textFieldJS = "material_widgets/js/material_text_field.js"
)

const templateDir = "material_widgets/widgets/"

func templateName(base string) string {
	return templateDir + base + ".html"
}

// Presentation is the metadata the Material templates display next to the
// control.
type Presentation struct {
	Label    string
	HelpText string
}

// Styled is implemented by every Material widget.
type Styled interface {
	forms.Widget
	forms.Renderer
	StyledKind() StyledKind
	Presentation() *Presentation
	// DeclaredAssets lists the widget's own assets, without the Material
	// bundles every widget shares.
	DeclaredAssets() forms.Media
	// SetAssets selects the Material bundles reported by Media.
	SetAssets(Settings)
}

// component carries the state shared by every styled widget.
type component struct {
	presentation Presentation
	assets       *Settings
	policy       *bluemonday.Policy
}

// Presentation returns the label and help text shown with the widget.
func (c *component) Presentation() *Presentation { return &c.presentation }

func (c *component) SetAssets(s Settings) {
	s = s.WithDefaults()
	c.assets = &s
}

func (c *component) settings() Settings {
	if c.assets != nil {
		return *c.assets
	}
	return Current()
}

// useSanitizer sets the policy help text is rendered with. Materialize
// passes its own so WithSanitizer applies at render time too.
func (c *component) useSanitizer(policy *bluemonday.Policy) { c.policy = policy }

func (c *component) sanitizer() *bluemonday.Policy {
	if c.policy != nil {
		return c.policy
	}
	return helpPolicy
}

func (c component) copy() component {
	out := component{presentation: c.presentation, policy: c.policy}
	if c.assets != nil {
		s := *c.assets
		out.assets = &s
	}
	return out
}

func (c *component) media(declared forms.Media) forms.Media {
	return c.settings().Media().Merge(declared)
}

// present adds the presentation keys to a widget context and points it at
// the styled template.
func (c *component) present(ctx map[string]any, template string) map[string]any {
	inner := forms.WidgetContext(ctx)
	if inner == nil {
		inner = map[string]any{}
		ctx = map[string]any{"widget": inner}
	}
	inner["label"] = c.presentation.Label
	setHelp(inner, c.sanitizer(), c.presentation.HelpText)
	inner["template_name"] = template
	inner["template_file"] = path.Base(template)
	return ctx
}

var (
	helpPolicy  = HelpTextPolicy()
	titlePolicy = bluemonday.StrictPolicy()
)

// HelpTextPolicy keeps the inline elements allowed in help text and strips
// everything else.
func HelpTextPolicy() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AllowElements("b", "strong", "i", "em", "code", "small", "br")
	return p
}

// setHelp stores help text twice: "help_text" is sanitized markup rendered
// as is, "help_title" is plain text for attributes.
func setHelp(ctx map[string]any, policy *bluemonday.Policy, text string) {
	if text == "" {
		ctx["help_text"] = ""
		ctx["help_title"] = ""
		return
	}
	ctx["help_text"] = policy.Sanitize(text)
	ctx["help_title"] = html.UnescapeString(titlePolicy.Sanitize(text))
}

func render(r template.TemplateRenderer, w Styled, name string, value any, attrs forms.Attrs) (string, error) {
	out, err := forms.RenderWidget(r, w, name, value, attrs)
	if err != nil {
		return "", fmt.Errorf("material: %w", err)
	}
	return out, nil
}

// appendClass appends class to the attrs of an inner widget or option
// context and refreshes attrs_html.
func appendClass(inner map[string]any, class string) {
	attrs, _ := inner["attrs"].(forms.Attrs)
	attrs = attrs.Clone()
	attrs.AppendClass(class)
	inner["attrs"] = attrs
	inner["attrs_html"] = forms.FlatAttrs(attrs)
}
