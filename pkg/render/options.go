package render

import "net/url"

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form declaration.
type RenderOptions struct {
	// Title is shown above the form.
	Title string
	// Action and Method describe the submission target. Method defaults to
	// POST; verbs browsers cannot submit are sent as POST plus a hidden
	// _method input.
	Action string
	Method string
	// StaticURL prefixes relative media paths.
	StaticURL string
	// Values binds submitted data before rendering so widgets show it and
	// validation errors surface.
	Values url.Values
	// Errors carries server-side validation feedback keyed by field path.
	// Paths go through MapErrorPayload, so JSON pointer and dotted request
	// paths are accepted.
	Errors map[string][]string
	// Hidden adds inputs such as CSRF tokens.
	Hidden []HiddenField

	Locale     string
	Translator Translator
	// OnMissing decides the text used when a translation is missing.
	OnMissing MissingTranslationHandler
	// KeyPrefix namespaces translation keys, e.g. "forms.signup".
	KeyPrefix string
}
