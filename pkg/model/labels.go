package model

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TitleLabel converts a field name into a display label by replacing
// underscores with spaces and title-casing every word. A letter is upper-cased
// when it follows a character without case and lower-cased otherwise, so
// "first_name" becomes "First Name" and "ipv4_address" becomes "Ipv4 Address".
func TitleLabel(name string) string {
	return Title(strings.ReplaceAll(name, "_", " "))
}

// Title upper-cases the first cased letter of every run of cased letters and
// lower-cases the rest. Digits and punctuation break runs.
func Title(s string) string {
	if s == "" {
		return ""
	}
	var out strings.Builder
	out.Grow(len(s))
	prevCased := false
	for _, r := range s {
		cased := isCased(r)
		switch {
		case cased && prevCased:
			out.WriteRune(unicode.ToLower(r))
		case cased:
			out.WriteRune(unicode.ToTitle(r))
		default:
			out.WriteRune(r)
		}
		prevCased = cased
	}
	return out.String()
}

// VerboseLabel mirrors how model columns are labelled when no verbose name is
// declared: underscores become spaces and only the first letter is
// upper-cased ("url_field" becomes "Url field").
func VerboseLabel(name string) string {
	return CapFirst(strings.ReplaceAll(name, "_", " "))
}

// CapFirst upper-cases the first rune of s.
func CapFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}
