package material

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/goliatone/go-material-widgets/pkg/forms"
	"github.com/goliatone/go-material-widgets/pkg/render/template"
	"github.com/goliatone/go-material-widgets/pkg/render/template/gotemplate"
)

//go:embed templates/material_widgets/widgets/*.html
var embeddedTemplates embed.FS

//go:embed static/material_widgets/css/*.css static/material_widgets/js/*.js
var embeddedStatic embed.FS

// TemplatesFS exposes the Material widget templates rooted so names match
// Styled.TemplateName, e.g. "material_widgets/widgets/material_text.html".
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// StaticFS exposes the stylesheets and scripts named in widget media, rooted
// so "material_widgets/css/material_error.css" resolves.
//
// Typical mount:
//
//	mux.Handle("/static/*",
//	  http.StripPrefix("/static/",
//	    http.FileServerFS(material.StaticFS()),
//	  ),
//	)
func StaticFS() fs.FS {
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		return embeddedStatic
	}
	return sub
}

var (
	rendererOnce sync.Once
	renderer     template.TemplateRenderer
	rendererErr  error
)

// Renderer returns a shared pongo2 renderer over the Material templates with
// the default widget templates as fallback.
func Renderer() (template.TemplateRenderer, error) {
	rendererOnce.Do(func() {
		renderer, rendererErr = NewRenderer()
	})
	return renderer, rendererErr
}

// NewRenderer builds a renderer over the Material and default templates.
// Extra filesystems are consulted first so callers can override templates.
func NewRenderer(overrides ...fs.FS) (template.TemplateRenderer, error) {
	files := append([]fs.FS{}, overrides...)
	files = append(files, TemplatesFS(), forms.TemplatesFS())
	engine, err := gotemplate.New(
		gotemplate.WithName("material"),
		gotemplate.WithFS(files...),
	)
	if err != nil {
		return nil, fmt.Errorf("material: template renderer: %w", err)
	}
	return engine, nil
}
