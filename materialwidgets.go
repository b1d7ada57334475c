// Package materialwidgets renders server side forms with Material Design
// components. It re-exports the pieces most callers need so a form can be
// declared, styled and rendered from one import.
package materialwidgets

import (
	"context"
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-material-widgets/pkg/forms"
	"github.com/goliatone/go-material-widgets/pkg/material"
	"github.com/goliatone/go-material-widgets/pkg/model"
	"github.com/goliatone/go-material-widgets/pkg/render"
	"github.com/goliatone/go-material-widgets/pkg/renderers/vanilla"
)

// Form aliases forms.Form.
type Form = forms.Form

// Field aliases forms.Field.
type Field = forms.Field

// Styled is implemented by every Material widget.
type Styled = material.Styled

// Settings locates the Material Components stylesheet and script.
type Settings = material.Settings

// RenderOptions describes per-request overrides renderers use to prefill
// values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// NewForm builds a form from fields and replaces every widget with its
// Material counterpart.
func NewForm(fields []*forms.Field, opts ...material.Option) (*forms.Form, error) {
	return material.NewForm(fields, opts...)
}

// Materialize styles an existing form in place.
func Materialize(form *forms.Form, opts ...material.Option) error {
	return material.Apply(form, opts...)
}

// LoadSchemas reads model schemas from a JSON or YAML document.
func LoadSchemas(path string) (*model.Catalog, error) {
	return model.LoadFile(path)
}

// SchemaFromOpenAPI derives a model schema from an OpenAPI component.
func SchemaFromOpenAPI(ctx context.Context, document []byte, component string) (model.Schema, error) {
	return model.FromOpenAPI(ctx, document, component)
}

// ThemeSettings resolves Material assets from a go-theme selection.
func ThemeSettings(selector theme.ThemeSelector, name, variant string) (Settings, error) {
	return material.SelectSettings(selector, name, variant)
}

// RenderHTML renders form as a complete Material page.
func RenderHTML(ctx context.Context, form *forms.Form, opts RenderOptions, options ...vanilla.Option) ([]byte, error) {
	renderer, err := vanilla.New(options...)
	if err != nil {
		return nil, fmt.Errorf("materialwidgets: %w", err)
	}
	return renderer.Render(ctx, form, opts)
}

// TemplatesFS exposes the Material widget templates so callers can reuse
// or override them.
func TemplatesFS() fs.FS {
	return material.TemplatesFS()
}

// StaticFS exposes the stylesheets and scripts referenced by widget media.
//
// Typical mount:
//
//	mux.Handle("/static/",
//	  http.StripPrefix("/static/",
//	    http.FileServerFS(materialwidgets.StaticFS()),
//	  ),
//	)
func StaticFS() fs.FS {
	return material.StaticFS()
}
