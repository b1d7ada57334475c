package vanilla

// ChromeClass is a typed identifier for the page chrome a layout decorates.
type ChromeClass string

const (
	ClassPage    ChromeClass = "page"
	ClassForm    ChromeClass = "form"
	ClassHeader  ChromeClass = "header"
	ClassFields  ChromeClass = "fields"
	ClassActions ChromeClass = "actions"
)

// Layout selects how the form body is drawn.
type Layout string

const (
	// LayoutMaterial applies the Material layer and renders one component
	// per field.
	LayoutMaterial Layout = "material"
	// LayoutDefault renders the form as it is, one paragraph per field.
	LayoutDefault Layout = "default"
)

var layoutChrome = map[Layout]map[ChromeClass]string{
	LayoutMaterial: {
		ClassPage:    "mdc-typography",
		ClassForm:    "mw-form",
		ClassHeader:  "mw-header mdc-typography--headline5",
		ClassFields:  "mw-fields",
		ClassActions: "mw-actions",
	},
	LayoutDefault: {
		ClassPage:    "",
		ClassForm:    "mw-form",
		ClassHeader:  "mw-header",
		ClassFields:  "mw-fields",
		ClassActions: "mw-actions",
	},
}

var submitClass = map[Layout]string{
	LayoutMaterial: "mdc-button mdc-button--raised",
}

func chromeFor(layout Layout, overrides map[ChromeClass]string) map[string]any {
	out := make(map[string]any, len(layoutChrome[layout]))
	for class, value := range layoutChrome[layout] {
		out[string(class)] = value
	}
	for class, value := range overrides {
		out[string(class)] = value
	}
	return out
}
