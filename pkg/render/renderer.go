package render

import (
	"context"

	"github.com/goliatone/go-material-widgets/pkg/forms"
)

// Renderer turns a form into a complete document (an HTML page, a terminal
// session transcript, a JSON payload).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form *forms.Form, options RenderOptions) ([]byte, error)
}
