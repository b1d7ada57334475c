package template

import (
	"io"
)

// TemplateRenderer is the contract widgets render through. Names passed to
// RenderTemplate are template keys such as
// "material_widgets/widgets/material_text.html".
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
