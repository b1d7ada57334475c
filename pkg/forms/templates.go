package forms

import (
	"embed"
	"io/fs"
	"sync"

	"github.com/goliatone/go-material-widgets/pkg/render/template"
	"github.com/goliatone/go-material-widgets/pkg/render/template/gotemplate"
)

//go:embed templates
var embeddedTemplates embed.FS

// TemplatesFS exposes the default widget templates rooted so that names match
// Widget.TemplateName, e.g. "forms/widgets/text.html".
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

var (
	defaultRendererOnce sync.Once
	defaultRenderer     template.TemplateRenderer
	defaultRendererErr  error
)

// DefaultRenderer returns a shared pongo2 renderer over TemplatesFS.
func DefaultRenderer() (template.TemplateRenderer, error) {
	defaultRendererOnce.Do(func() {
		defaultRenderer, defaultRendererErr = gotemplate.New(
			gotemplate.WithName("forms"),
			gotemplate.WithFS(TemplatesFS()),
		)
	})
	return defaultRenderer, defaultRendererErr
}
