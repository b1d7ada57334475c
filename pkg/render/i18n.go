package render

import (
	"errors"
	"strconv"
	"strings"

	"github.com/goliatone/go-material-widgets/pkg/forms"
)

// ErrMissingTranslator is reported to the missing handler when a key is
// looked up without a Translator configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate implements Translator.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler returns the text used when key has no
// translation. args carries a {"default": fallback} map as its first entry.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// missingTranslationDefault returns the fallback text, or the key itself when
// there is nothing to fall back to.
func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	for _, arg := range args {
		values, ok := arg.(map[string]any)
		if !ok {
			continue
		}
		if fallback, ok := values["default"].(string); ok && strings.TrimSpace(fallback) != "" {
			return fallback
		}
	}
	return key
}

// LocalizeForm translates the presentation text of every field in place.
// Keys are derived from the field name:
//
//	<prefix>.<field>.label
//	<prefix>.<field>.help_text
//	<prefix>.<field>.choice_help.<index>
//	<prefix>.<field>.choices.<value>
//
// The prefix defaults to "forms". Without a Translator the form is left
// untouched. Styled widgets pick the new text up when materialized again.
func LocalizeForm(form *forms.Form, opts RenderOptions) {
	if form == nil || opts.Translator == nil {
		return
	}

	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	prefix := strings.Trim(strings.TrimSpace(opts.KeyPrefix), ".")
	if prefix == "" {
		prefix = "forms"
	}

	for _, field := range form.Fields() {
		localizeField(field, prefix+"."+field.Name, opts.Locale, opts.Translator, onMissing)
	}
}

func localizeField(field *forms.Field, base, locale string, t Translator, onMissing MissingTranslationHandler) {
	key := base + ".label"
	if label := translate(locale, key, field.Label, t, onMissing); label != key && label != field.Label {
		field.SetLabel(label)
	}

	key = base + ".help_text"
	if help := translate(locale, key, field.HelpText, t, onMissing); help != key {
		field.HelpText = help
	}

	for i, text := range field.ChoiceHelpText {
		key = base + ".choice_help." + strconv.Itoa(i)
		if translated := translate(locale, key, text, t, onMissing); translated != key {
			field.ChoiceHelpText[i] = translated
		}
	}

	if len(field.Choices) == 0 {
		return
	}
	field.Choices = localizeChoices(field.Choices, base+".choices.", locale, t, onMissing)
	if chooser, ok := field.Widget.(interface{ SetChoices([]forms.Choice) }); ok {
		chooser.SetChoices(field.Choices)
	}
}

func localizeChoices(choices []forms.Choice, prefix, locale string, t Translator, onMissing MissingTranslationHandler) []forms.Choice {
	out := forms.CloneChoices(choices)
	for i := range out {
		if out[i].IsGroup() {
			out[i].Group = localizeChoices(out[i].Group, prefix, locale, t, onMissing)
			continue
		}
		if out[i].Value == "" {
			continue
		}
		key := prefix + out[i].Value
		if label := translate(locale, key, out[i].Label, t, onMissing); label != key {
			out[i].Label = label
		}
	}
	return out
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	if t == nil {
		if onMissing != nil {
			return onMissing(locale, key, []any{map[string]any{"default": fallback}}, ErrMissingTranslator)
		}
		if strings.TrimSpace(fallback) != "" {
			return fallback
		}
		return key
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}

	if onMissing != nil {
		return onMissing(locale, key, []any{map[string]any{"default": fallback}}, err)
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}
