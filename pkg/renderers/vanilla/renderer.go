package vanilla

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/goliatone/go-material-widgets/pkg/forms"
	"github.com/goliatone/go-material-widgets/pkg/material"
	"github.com/goliatone/go-material-widgets/pkg/render"
	rendertemplate "github.com/goliatone/go-material-widgets/pkg/render/template"
	gotemplate "github.com/goliatone/go-material-widgets/pkg/render/template/gotemplate"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	layout           Layout
	chrome           map[ChromeClass]string
	submitLabel      string
	materialOpts     []material.Option
	logger           *slog.Logger
}

// WithTemplatesFS supplies an alternate page template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads the page template from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithLayout picks the body layout. The renderer is registered under the
// layout name.
func WithLayout(layout Layout) Option {
	return func(cfg *config) {
		if _, ok := layoutChrome[layout]; ok {
			cfg.layout = layout
		}
	}
}

// WithChromeClass overrides the class of one chrome element.
func WithChromeClass(class ChromeClass, value string) Option {
	return func(cfg *config) {
		if cfg.chrome == nil {
			cfg.chrome = make(map[ChromeClass]string)
		}
		cfg.chrome[class] = strings.TrimSpace(value)
	}
}

// WithSubmitLabel sets the submit button text.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if label = strings.TrimSpace(label); label != "" {
			cfg.submitLabel = label
		}
	}
}

// WithMaterialOptions configures the materializer used by LayoutMaterial,
// for example material.WithSettings for themed assets.
func WithMaterialOptions(opts ...material.Option) Option {
	return func(cfg *config) {
		cfg.materialOpts = append(cfg.materialOpts, opts...)
	}
}

// WithLogger sets the logger used for render diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Renderer draws a form as a complete HTML page.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	layout       Layout
	chrome       map[string]any
	submitLabel  string
	materialOpts []material.Option
	logger       *slog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the page renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		layout:      LayoutMaterial,
		submitLabel: "Submit",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithName("material-widgets-page-"+string(cfg.layout)),
			gotemplate.WithFS(cfg.templateFS),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:    renderer,
		layout:       cfg.layout,
		chrome:       chromeFor(cfg.layout, cfg.chrome),
		submitLabel:  cfg.submitLabel,
		materialOpts: cfg.materialOpts,
		logger:       cfg.logger,
	}, nil
}

// Name reports the layout name.
func (r *Renderer) Name() string {
	return string(r.layout)
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render localizes, binds and decorates form according to options, then
// draws the page. The form is modified in place.
func (r *Renderer) Render(ctx context.Context, form *forms.Form, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if form == nil {
		return nil, fmt.Errorf("vanilla renderer: form is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	render.LocalizeForm(form, options)
	if r.layout == LayoutMaterial {
		if err := material.Apply(form, r.materialOpts...); err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
	}
	if options.Values != nil {
		form.Bind(options.Values, nil)
	}
	if len(options.Errors) > 0 {
		mapping := render.MapErrorPayload(form, options.Errors)
		if err := render.ApplyErrors(form, mapping); err != nil {
			return nil, fmt.Errorf("vanilla renderer: apply errors: %w", err)
		}
	}
	render.ApplyHidden(form, options.Hidden...)

	body, err := r.body(form)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render form: %w", err)
	}

	method, override := formMethod(options.Method)
	hidden := make([]map[string]any, 0, len(form.HiddenValues())+1)
	for _, value := range form.HiddenValues() {
		hidden = append(hidden, map[string]any{"name": value.Name, "value": value.Value})
	}
	if override != "" {
		hidden = append(hidden, map[string]any{"name": "_method", "value": override})
	}

	result, err := r.templates.RenderTemplate(PageTemplate, map[string]any{
		"title":        options.Title,
		"locale":       options.Locale,
		"action":       options.Action,
		"method":       method,
		"multipart":    form.IsMultipart(),
		"media":        form.Media().Render(options.StaticURL),
		"body":         body,
		"hidden":       hidden,
		"classes":      r.chrome,
		"submit_label": r.submitLabel,
		"submit_class": submitClass[r.layout],
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}

	r.logger.DebugContext(ctx, "rendered form page",
		slog.String("layout", string(r.layout)),
		slog.Int("fields", len(form.Fields())),
		slog.Bool("bound", form.IsBound()),
	)
	return []byte(result), nil
}

func (r *Renderer) body(form *forms.Form) (string, error) {
	if r.layout == LayoutMaterial {
		return material.AsComponents(form)
	}
	return form.AsP()
}

// formMethod returns the method the browser submits with and, for verbs a
// form cannot send, the value of the _method override input.
func formMethod(method string) (string, string) {
	switch verb := strings.ToUpper(strings.TrimSpace(method)); verb {
	case "", "POST":
		return "POST", ""
	case "GET":
		return "GET", ""
	default:
		return "POST", verb
	}
}
