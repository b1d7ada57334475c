package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-material-widgets/pkg/forms"
	"github.com/goliatone/go-material-widgets/pkg/material"
	"github.com/goliatone/go-material-widgets/pkg/render"
)

// Renderer fills forms from the terminal. Each field is prompted according
// to its widget kind and the answers are bound to the form as a browser
// submission would be.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	maxAttempts       int
	helpPolicy        *bluemonday.Policy
	logger            *slog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output,
// three validation rounds).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		maxAttempts:  3,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unknown output format %q", r.outputFormat)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	if r.helpPolicy == nil {
		r.helpPolicy = bluemonday.StrictPolicy()
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render fills form interactively and serializes the result. opts.Values
// prefill the answers, opts.Hidden travel with the submission and a
// configured Translator localizes the prompts.
func (r *Renderer) Render(ctx context.Context, form *forms.Form, opts render.RenderOptions) ([]byte, error) {
	if form == nil {
		return nil, errors.New("tui: form is nil")
	}
	render.LocalizeForm(form, opts)
	render.ApplyHidden(form, opts.Hidden...)

	if opts.Title != "" {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+opts.Title); err != nil {
			return nil, err
		}
	}

	submitted, err := r.fill(ctx, form, opts.Values)
	if err != nil {
		return nil, err
	}
	return r.serialize(form, submitted)
}

// Fill prompts every visible field, binds the answers and returns the
// submission. Invalid answers are asked again until the form validates or
// the attempts run out, in which case the error wraps forms.ErrInvalidForm.
func (r *Renderer) Fill(ctx context.Context, form *forms.Form) (url.Values, error) {
	if form == nil {
		return nil, errors.New("tui: form is nil")
	}
	return r.fill(ctx, form, nil)
}

func (r *Renderer) fill(ctx context.Context, form *forms.Form, prefill url.Values) (url.Values, error) {
	state := NewState(prefill)
	for _, hidden := range form.HiddenValues() {
		state.Set(hidden.Name, hidden.Value)
	}

	pending := form.BoundFields()
	for attempt := 1; ; attempt++ {
		for _, bf := range pending {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			for _, msg := range state.ErrorsFor(bf.Name()) {
				if err := r.driver.Info(ctx, r.theme.ErrorPrefix+bf.Label()+": "+msg); err != nil {
					return nil, err
				}
			}
			if err := r.promptField(ctx, bf, state); err != nil {
				return nil, fmt.Errorf("tui: field %q: %w", bf.Name(), err)
			}
		}

		form.Bind(state.Values(), nil)
		if form.IsValid() {
			r.logger.DebugContext(ctx, "form filled", slog.Int("attempts", attempt))
			return state.Values(), nil
		}

		errs := form.Errors()
		if attempt >= r.maxAttempts {
			return nil, &forms.InvalidFormError{Errors: errs}
		}
		for _, msg := range errs[forms.NonFieldErrors] {
			if err := r.driver.Info(ctx, r.theme.ErrorPrefix+msg); err != nil {
				return nil, err
			}
		}
		state.setErrors(errs)
		pending = pending[:0]
		for _, bf := range form.BoundFields() {
			if len(errs[bf.Name()]) > 0 {
				pending = append(pending, bf)
			}
		}
		r.logger.DebugContext(ctx, "asking again", slog.Int("attempt", attempt), slog.Int("fields", len(pending)))
	}
}

func (r *Renderer) promptField(ctx context.Context, bf *forms.BoundField, state *State) error {
	field := bf.Field()
	widget := field.Widget
	name := bf.HTMLName()
	if widget == nil || widget.IsHidden() || field.Disabled {
		return nil
	}

	message := r.theme.PromptPrefix + r.label(bf)
	help := r.help(field)

	switch widget.Kind() {
	case forms.KindFileInput, forms.KindClearableFileInput:
		return r.driver.Info(ctx, r.theme.InfoPrefix+"Skipping "+r.label(bf)+": file uploads are not supported in the terminal")

	case forms.KindCheckboxInput:
		checked, _ := bf.Form().Initial(bf.Name()).(bool)
		if state.Has(name) {
			current := first(state.Get(name))
			checked = current != "" && current != "false"
		}
		answer, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: message,
			Help:    help,
			Default: checked,
		})
		if err != nil {
			return err
		}
		state.Set(name, strconv.FormatBool(answer))

	case forms.KindSelect, forms.KindNullBooleanSelect, forms.KindRadioSelect:
		choices, err := widgetChoices(widget)
		if err != nil {
			return err
		}
		current := r.current(bf, state)
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Help:         help,
			Options:      r.optionLabels(choices, field.ChoiceHelpText),
			DefaultIndex: defaultIndex(choices, current),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(choices) {
			return fmt.Errorf("tui: selection %d out of range", idx)
		}
		state.Set(name, choices[idx].Value)

	case forms.KindSelectMultiple, forms.KindCheckboxSelectMultiple:
		choices, err := widgetChoices(widget)
		if err != nil {
			return err
		}
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:      message,
			Help:         help,
			Options:      r.optionLabels(choices, field.ChoiceHelpText),
			DefaultIndex: -1,
			Defaults:     defaultIndices(choices, r.current(bf, state)),
		})
		if err != nil {
			return err
		}
		values := make([]string, 0, len(indices))
		for _, idx := range indices {
			if idx >= 0 && idx < len(choices) {
				values = append(values, choices[idx].Value)
			}
		}
		state.Set(name, values...)

	case forms.KindTextarea:
		answer, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Help:    help,
			Default: first(r.current(bf, state)),
		})
		if err != nil {
			return err
		}
		state.Set(name, answer)

	case forms.KindPasswordInput:
		answer, err := r.driver.Password(ctx, InputConfig{Message: message, Help: help})
		if err != nil {
			return err
		}
		state.Set(name, answer)

	case forms.KindMultiWidget, forms.KindSplitDateTimeWidget:
		return r.promptParts(ctx, bf, state, message, help)

	default:
		current := r.current(bf, state)
		answer, err := r.driver.Input(ctx, InputConfig{
			Message:   message,
			Help:      help,
			Default:   first(current),
			Validator: fieldValidator(field, bf.Form().Initial(field.Name)),
		})
		if err != nil {
			return err
		}
		state.Set(name, answer)
	}
	return nil
}

// promptParts asks for each sub-widget of a composite under <name>_<index>.
func (r *Renderer) promptParts(ctx context.Context, bf *forms.BoundField, state *State, message, help string) error {
	multi, ok := bf.Field().Widget.(forms.MultiValueWidget)
	if !ok {
		return fmt.Errorf("tui: %s is not a composite widget", bf.Field().Widget.Kind())
	}
	parts := multi.Decompress(bf.Value())
	for idx, sub := range multi.Widgets() {
		partName := fmt.Sprintf("%s_%d", bf.HTMLName(), idx)
		current := state.Get(partName)
		if !state.Has(partName) && idx < len(parts) {
			current = formatted(sub, parts[idx])
		}
		answer, err := r.driver.Input(ctx, InputConfig{
			Message: fmt.Sprintf("%s (%s)", message, partLabel(bf.Field().Widget, sub, idx)),
			Help:    help,
			Default: first(current),
		})
		if err != nil {
			return err
		}
		state.Set(partName, answer)
	}
	return nil
}

// current returns the answers already known for bf: collected or prefilled
// values first, the form's initial value otherwise.
func (r *Renderer) current(bf *forms.BoundField, state *State) []string {
	if state.Has(bf.HTMLName()) {
		return state.Get(bf.HTMLName())
	}
	return formatted(bf.Field().Widget, bf.Form().Initial(bf.Name()))
}

func (r *Renderer) label(bf *forms.BoundField) string {
	if styled, ok := bf.Field().Widget.(material.Styled); ok {
		if label := styled.Presentation().Label; label != "" {
			return label
		}
	}
	return bf.Label()
}

func (r *Renderer) help(field *forms.Field) string {
	text := field.HelpText
	if styled, ok := field.Widget.(material.Styled); ok && styled.Presentation().HelpText != "" {
		text = styled.Presentation().HelpText
	}
	return r.plain(text)
}

// plain strips markup from help text meant for HTML pages.
func (r *Renderer) plain(text string) string {
	return strings.TrimSpace(html.UnescapeString(r.helpPolicy.Sanitize(text)))
}

// fieldValidator rejects answers the field would not clean.
func fieldValidator(field *forms.Field, initial any) func(string) error {
	return func(answer string) error {
		_, err := field.CleanWithInitial(answer, initial)
		return err
	}
}

type choiceLister interface {
	LeafChoices() []forms.Choice
}

func widgetChoices(w forms.Widget) ([]forms.Choice, error) {
	lister, ok := w.(choiceLister)
	if !ok {
		return nil, fmt.Errorf("%w: %s lists no choices", ErrNoChoices, w.Kind())
	}
	choices := lister.LeafChoices()
	if len(choices) == 0 {
		return nil, ErrNoChoices
	}
	return choices, nil
}

// optionLabels shows each choice label, followed by its help text when the
// help list lines up with the choices.
func (r *Renderer) optionLabels(choices []forms.Choice, help []string) []string {
	out := make([]string, len(choices))
	for idx, choice := range choices {
		label := choice.Label
		if label == "" {
			label = choice.Value
		}
		if len(help) == len(choices) {
			if text := r.plain(help[idx]); text != "" {
				label += " (" + text + ")"
			}
		}
		out[idx] = label
	}
	return out
}

func defaultIndex(choices []forms.Choice, current []string) int {
	if len(current) == 0 {
		return -1
	}
	for idx, choice := range choices {
		if choice.Value == current[0] {
			return idx
		}
	}
	return -1
}

func defaultIndices(choices []forms.Choice, current []string) []int {
	var out []int
	for idx, choice := range choices {
		for _, value := range current {
			if choice.Value == value {
				out = append(out, idx)
				break
			}
		}
	}
	return out
}

// formatted renders value the way w would submit it.
func formatted(w forms.Widget, value any) []string {
	if value == nil || w == nil {
		return nil
	}
	switch typed := w.(type) {
	case interface{ FormatValue(any) []string }:
		return typed.FormatValue(value)
	case interface{ FormatValue(any) string }:
		if text := typed.FormatValue(value); text != "" {
			return []string{text}
		}
		return nil
	}
	if text, ok := forms.WidgetContext(w.Context("", value, nil))["value"].(string); ok && text != "" {
		return []string{text}
	}
	return nil
}

func partLabel(parent, sub forms.Widget, idx int) string {
	if split, ok := parent.(*material.SplitDateTime); ok {
		switch idx {
		case 0:
			if split.DateLabel != "" {
				return split.DateLabel
			}
		case 1:
			if split.TimeLabel != "" {
				return split.TimeLabel
			}
		}
	}
	switch sub.Kind() {
	case forms.KindDateInput:
		return "date"
	case forms.KindTimeInput:
		return "time"
	}
	return strconv.Itoa(idx + 1)
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func (r *Renderer) serialize(form *forms.Form, submitted url.Values) ([]byte, error) {
	if r.outputFormat == OutputFormatFormURLEncoded {
		return []byte(submitted.Encode()), nil
	}

	values := form.CleanedData()
	for _, hidden := range form.HiddenValues() {
		values[hidden.Name] = hidden.Value
	}
	if r.submitTransformer != nil {
		transformed, err := r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
		values = transformed
	}

	if r.outputFormat == OutputFormatPrettyText {
		return []byte(prettyPrint(values)), nil
	}
	return json.Marshal(values)
}

func prettyPrint(values map[string]any) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%v\n", key, values[key])
	}
	return b.String()
}
