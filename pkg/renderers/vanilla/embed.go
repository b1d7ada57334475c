package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// PageTemplate is the template key rendered for every page.
const PageTemplate = "page.html"

// TemplatesFS exposes the embedded page template. Callers overriding it with
// WithTemplatesFS must provide a template under PageTemplate.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}
