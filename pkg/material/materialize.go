package material

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-material-widgets/pkg/forms"
	"github.com/goliatone/go-material-widgets/pkg/model"
)

var (
	// ErrNoStyledWidget is returned when no styled counterpart is registered
	// for a widget kind.
	ErrNoStyledWidget = errors.New("material: no styled widget")
	// ErrChoiceHelpText is returned when a group widget has fewer help
	// entries than top level choices.
	ErrChoiceHelpText = errors.New("material: fewer choice help texts than choices")
)

// Option configures a Materializer.
type Option func(*Materializer)

// Materializer swaps default widgets for styled ones.
type Materializer struct {
	registry  *Registry
	logger    *slog.Logger
	sanitizer *bluemonday.Policy
	settings  *Settings
}

// WithRegistry replaces the default registry.
func WithRegistry(r *Registry) Option {
	return func(m *Materializer) {
		if r != nil {
			m.registry = r
		}
	}
}

// WithLogger sets the logger used for debug output. Defaults to a discard
// logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Materializer) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithSanitizer sets the policy applied to help text, both when it is
// copied onto the widget and when the widget renders. Defaults to
// HelpTextPolicy.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(m *Materializer) {
		if policy != nil {
			m.sanitizer = policy
		}
	}
}

// WithSettings pins the Material bundles reported by every styled widget's
// Media instead of the process settings.
func WithSettings(s Settings) Option {
	return func(m *Materializer) {
		s = s.WithDefaults()
		m.settings = &s
	}
}

// NewMaterializer returns a Materializer using DefaultRegistry unless
// configured otherwise.
func NewMaterializer(opts ...Option) *Materializer {
	m := &Materializer{}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	if m.registry == nil {
		m.registry = DefaultRegistry()
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if m.sanitizer == nil {
		m.sanitizer = helpPolicy
	}
	return m
}

// Materialize replaces field's widget with its styled counterpart and sets
// the label and help text the widget displays. A widget that is already
// styled keeps its identity; only its presentation is refreshed.
//
// The label is the field's explicit label, blank included, or name title
// cased with underscores turned into spaces.
func (m *Materializer) Materialize(name string, field *forms.Field) error {
	if field == nil {
		return fmt.Errorf("material: field %q is nil", name)
	}
	if field.Widget == nil {
		return fmt.Errorf("%w: field %q has no widget", ErrNoStyledWidget, name)
	}

	styled, already := field.Widget.(Styled)
	if !already {
		converted, err := m.registry.Convert(field.Widget)
		if err != nil {
			return fmt.Errorf("material: field %q: %w", name, err)
		}
		styled = converted
		m.logger.Debug("materialized widget",
			slog.String("field", name),
			slog.String("from", string(field.Widget.Kind())),
			slog.String("to", string(styled.StyledKind())),
		)
	}

	if target, ok := styled.(interface{ useSanitizer(*bluemonday.Policy) }); ok {
		target.useSanitizer(m.sanitizer)
	}
	if group, ok := styled.(*ChoiceGroup); ok {
		// Help declared on the widget itself stays unless the field sets its own.
		help := field.ChoiceHelpText
		if help == nil {
			help = group.ChoiceHelpText
		}
		group.ChoiceHelpText = sanitizeAll(m.sanitizer, help)
		if err := group.CheckChoiceHelpText(); err != nil {
			return fmt.Errorf("material: field %q: %w", name, err)
		}
	}

	presentation := styled.Presentation()
	presentation.Label = Label(name, field)
	presentation.HelpText = sanitize(m.sanitizer, field.HelpText)
	if m.settings != nil {
		styled.SetAssets(*m.settings)
	}

	field.Widget = styled
	return nil
}

// MaterializeAll materializes every field of form.
func (m *Materializer) MaterializeAll(form *forms.Form) error {
	if form == nil {
		return errors.New("material: form is nil")
	}
	var errs []error
	for _, field := range form.Fields() {
		if err := m.Materialize(field.Name, field); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Label returns the label a styled widget displays for field.
func Label(name string, field *forms.Field) string {
	if field != nil && (field.HasLabel() || field.Label != "") {
		return field.Label
	}
	return model.TitleLabel(name)
}

var defaultMaterializer = NewMaterializer()

// Materialize styles field with the default registry.
func Materialize(name string, field *forms.Field) error {
	return defaultMaterializer.Materialize(name, field)
}

func sanitize(policy *bluemonday.Policy, text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return policy.Sanitize(text)
}

func sanitizeAll(policy *bluemonday.Policy, texts []string) []string {
	if texts == nil {
		return nil
	}
	out := make([]string, len(texts))
	for idx, text := range texts {
		out[idx] = sanitize(policy, text)
	}
	return out
}
