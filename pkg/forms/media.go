package forms

import (
	"html"
	"slices"
	"strings"
)

// Media lists the stylesheets and scripts a widget or form depends on. Both
// lists keep first-seen order and hold no duplicates.
type Media struct {
	CSS []string `json:"css,omitempty"`
	JS  []string `json:"js,omitempty"`
}

// NewMedia builds a Media value, dropping blanks and duplicates.
func NewMedia(css, js []string) Media {
	return Media{}.Merge(Media{CSS: css, JS: js})
}

// Merge appends the entries of others that m does not already declare.
func (m Media) Merge(others ...Media) Media {
	out := Media{CSS: slices.Clone(m.CSS), JS: slices.Clone(m.JS)}
	for _, other := range others {
		out.CSS = appendUnique(out.CSS, other.CSS)
		out.JS = appendUnique(out.JS, other.JS)
	}
	return out
}

// Empty reports whether no assets are declared.
func (m Media) Empty() bool {
	return len(m.CSS) == 0 && len(m.JS) == 0
}

// Render emits link and script tags. Relative paths are prefixed with
// staticURL; absolute URLs and rooted paths are left alone.
func (m Media) Render(staticURL string) string {
	var b strings.Builder
	for _, href := range m.CSS {
		b.WriteString(`<link href="`)
		b.WriteString(html.EscapeString(AssetPath(staticURL, href)))
		b.WriteString(`" type="text/css" media="all" rel="stylesheet">`)
		b.WriteString("\n")
	}
	for _, src := range m.JS {
		b.WriteString(`<script type="text/javascript" src="`)
		b.WriteString(html.EscapeString(AssetPath(staticURL, src)))
		b.WriteString(`"></script>`)
		b.WriteString("\n")
	}
	return b.String()
}

// AssetPath joins path onto staticURL unless path is already absolute.
func AssetPath(staticURL, path string) string {
	if path == "" || isAbsoluteAsset(path) {
		return path
	}
	if staticURL == "" {
		return path
	}
	return strings.TrimRight(staticURL, "/") + "/" + strings.TrimLeft(path, "/")
}

func isAbsoluteAsset(path string) bool {
	return strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://") ||
		strings.HasPrefix(path, "//") ||
		strings.HasPrefix(path, "/")
}

func appendUnique(dst, src []string) []string {
	for _, entry := range src {
		entry = strings.TrimSpace(entry)
		if entry == "" || slices.Contains(dst, entry) {
			continue
		}
		dst = append(dst, entry)
	}
	return dst
}
