// Package template defines the renderer-agnostic template seam used by widgets
// and page renderers. The pongo2 backed implementation lives in the gotemplate
// subpackage.
package template
