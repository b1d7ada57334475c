package forms

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path"
	"slices"

	"github.com/goliatone/go-material-widgets/pkg/model"
)

// BlankChoiceLabel is the placeholder option of optional selects.
const BlankChoiceLabel = "---------"

// ChoiceSource resolves the options of relation columns.
type ChoiceSource interface {
	Choices(ctx context.Context, table string) ([]Choice, error)
}

// ChoiceSourceFunc adapts a function to ChoiceSource.
type ChoiceSourceFunc func(ctx context.Context, table string) ([]Choice, error)

func (fn ChoiceSourceFunc) Choices(ctx context.Context, table string) ([]Choice, error) {
	return fn(ctx, table)
}

// Saver persists the cleaned data of a model form and returns the new id.
type Saver interface {
	Save(ctx context.Context, schema model.Schema, data map[string]any) (int64, error)
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(ctx context.Context, schema model.Schema, data map[string]any) (int64, error)

func (fn SaverFunc) Save(ctx context.Context, schema model.Schema, data map[string]any) (int64, error) {
	return fn(ctx, schema, data)
}

// ModelFormOption configures NewModelForm.
type ModelFormOption func(*modelFormConfig)

type modelFormConfig struct {
	source  ChoiceSource
	saver   Saver
	include []string
	exclude []string
	field   map[string][]FieldOption
	form    []func(*Form)
}

// WithChoiceSource supplies relation options.
func WithChoiceSource(source ChoiceSource) ModelFormOption {
	return func(cfg *modelFormConfig) { cfg.source = source }
}

// WithSaver supplies the persistence backend used by Save.
func WithSaver(saver Saver) ModelFormOption {
	return func(cfg *modelFormConfig) { cfg.saver = saver }
}

// WithFields restricts the form to the named columns, in that order.
func WithFields(names ...string) ModelFormOption {
	return func(cfg *modelFormConfig) { cfg.include = slices.Clone(names) }
}

// WithExclude drops the named columns.
func WithExclude(names ...string) ModelFormOption {
	return func(cfg *modelFormConfig) { cfg.exclude = append(cfg.exclude, names...) }
}

// WithFieldOptions applies opts to the inferred field for column name.
func WithFieldOptions(name string, opts ...FieldOption) ModelFormOption {
	return func(cfg *modelFormConfig) {
		if cfg.field == nil {
			cfg.field = map[string][]FieldOption{}
		}
		cfg.field[name] = append(cfg.field[name], opts...)
	}
}

// WithFormHook runs fn on the built form before it is returned.
func WithFormHook(fn func(*Form)) ModelFormOption {
	return func(cfg *modelFormConfig) {
		if fn != nil {
			cfg.form = append(cfg.form, fn)
		}
	}
}

// ModelForm is a Form whose fields are inferred from a model schema.
type ModelForm struct {
	*Form
	schema model.Schema
	saver  Saver
}

// NewModelForm infers fields from schema. Relation columns load their
// choices from the configured ChoiceSource.
func NewModelForm(ctx context.Context, schema model.Schema, opts ...ModelFormOption) (*ModelForm, error) {
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("forms: model form: %w", err)
	}
	cfg := &modelFormConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	columns := schema.Columns
	if len(cfg.include) > 0 {
		columns = make([]model.Column, 0, len(cfg.include))
		for _, name := range cfg.include {
			col, ok := schema.Column(name)
			if !ok {
				return nil, fmt.Errorf("forms: model form %q: %w: %q", schema.Name, ErrUnknownField, name)
			}
			columns = append(columns, col)
		}
	}

	form := NewForm()
	for _, col := range columns {
		if slices.Contains(cfg.exclude, col.Name) {
			continue
		}
		var choices []Choice
		if col.Kind.IsRelation() {
			if cfg.source == nil {
				return nil, fmt.Errorf("forms: model form %q: column %q needs a choice source", schema.Name, col.Name)
			}
			loaded, err := cfg.source.Choices(ctx, col.Related)
			if err != nil {
				return nil, fmt.Errorf("forms: model form %q: load choices for %q: %w", schema.Name, col.Name, err)
			}
			choices = loaded
		}
		form.AddField(FieldFromColumn(col, choices, cfg.field[col.Name]...))
	}
	for _, hook := range cfg.form {
		hook(form)
	}
	return &ModelForm{Form: form, schema: schema, saver: cfg.saver}, nil
}

// Schema returns the schema the form was inferred from.
func (m *ModelForm) Schema() model.Schema {
	return m.schema
}

// Save persists the cleaned data. An invalid form returns an
// *InvalidFormError and nothing is written.
func (m *ModelForm) Save(ctx context.Context) (int64, error) {
	if m.saver == nil {
		return 0, errors.New("forms: model form has no saver")
	}
	if !m.IsBound() {
		return 0, fmt.Errorf("%w: form is not bound", ErrInvalidForm)
	}
	if !m.IsValid() {
		return 0, &InvalidFormError{Errors: m.Errors()}
	}
	id, err := m.saver.Save(ctx, m.schema, m.CleanedData())
	if err != nil {
		return 0, fmt.Errorf("forms: save %q: %w", m.schema.Name, err)
	}
	return id, nil
}

// FieldTypeForColumn maps a column kind to the form field type used to edit
// it.
func FieldTypeForColumn(col model.Column) FieldType {
	if len(col.Choices) > 0 {
		return TypeTypedChoice
	}
	switch col.Kind {
	case model.KindBigInteger, model.KindInteger, model.KindSmallInteger,
		model.KindPositiveInteger, model.KindPositiveSmallInteger:
		return TypeInteger
	case model.KindBoolean:
		return TypeBoolean
	case model.KindChar:
		return TypeChar
	case model.KindDate:
		return TypeDate
	case model.KindDateTime:
		return TypeDateTime
	case model.KindDecimal:
		return TypeDecimal
	case model.KindEmail:
		return TypeEmail
	case model.KindFile:
		return TypeFile
	case model.KindFilePath:
		return TypeFilePath
	case model.KindFloat:
		return TypeFloat
	case model.KindForeignKey:
		return TypeModelChoice
	case model.KindGenericIPAddress:
		return TypeGenericIPAddress
	case model.KindManyToMany:
		return TypeModelMultipleChoice
	case model.KindNullBoolean:
		return TypeNullBoolean
	case model.KindSlug:
		return TypeSlug
	case model.KindText:
		return TypeText
	case model.KindTime:
		return TypeTime
	case model.KindURL:
		return TypeURL
	default:
		return TypeChar
	}
}

// FieldFromColumn builds the form field for col. related holds the options
// of relation columns.
func FieldFromColumn(col model.Column, related []Choice, extra ...FieldOption) *Field {
	ft := FieldTypeForColumn(col)
	opts := []FieldOption{
		WithLabel(col.Label()),
		WithHelpText(col.HelpText),
		WithRequired(!col.Blank),
	}
	if col.Default != nil {
		opts = append(opts, WithInitial(col.Default))
	}

	switch col.Kind {
	case model.KindBoolean, model.KindNullBoolean:
		opts = append(opts, WithRequired(false))
	case model.KindBigInteger:
		opts = append(opts, WithMinValue(math.MinInt64), WithMaxValue(math.MaxInt64))
	case model.KindSmallInteger:
		opts = append(opts, WithMinValue(-32768), WithMaxValue(32767))
	case model.KindPositiveInteger, model.KindPositiveSmallInteger:
		opts = append(opts, WithMinValue(0))
	case model.KindDecimal:
		opts = append(opts, WithDecimal(col.MaxDigits, col.DecimalPlaces))
	case model.KindEmail:
		opts = append(opts, WithMaxLength(lengthOr(col.MaxLength, 254)))
	case model.KindURL:
		opts = append(opts, WithMaxLength(lengthOr(col.MaxLength, 200)))
	case model.KindSlug:
		opts = append(opts, WithMaxLength(lengthOr(col.MaxLength, 50)))
	case model.KindChar, model.KindText, model.KindFile:
		if col.MaxLength > 0 {
			opts = append(opts, WithMaxLength(col.MaxLength))
		}
	}

	switch {
	case len(col.Choices) > 0:
		opts = append(opts, WithChoices(columnChoices(col)...))
	case col.Kind == model.KindForeignKey:
		opts = append(opts, WithChoices(withBlank(related)...))
	case col.Kind == model.KindManyToMany:
		opts = append(opts, WithChoices(CloneChoices(related)...))
	case col.Kind == model.KindFilePath:
		opts = append(opts, WithChoices(filePathChoices(col)...))
	}

	return NewField(col.Name, ft, append(opts, extra...)...)
}

func columnChoices(col model.Column) []Choice {
	out := make([]Choice, 0, len(col.Choices)+1)
	if col.Blank || col.Default == nil {
		out = append(out, Choice{Value: "", Label: BlankChoiceLabel})
	}
	for _, choice := range col.Choices {
		out = append(out, Choice{Value: choice.Value, Label: choice.Label})
	}
	return out
}

func withBlank(choices []Choice) []Choice {
	return append([]Choice{{Value: "", Label: BlankChoiceLabel}}, CloneChoices(choices)...)
}

// filePathChoices lists the regular files under the column path. A missing
// directory yields only the blank option.
func filePathChoices(col model.Column) []Choice {
	var out []Choice
	if col.Blank {
		out = append(out, Choice{Value: "", Label: BlankChoiceLabel})
	}
	if col.Path == "" {
		return out
	}
	entries, err := os.ReadDir(col.Path)
	if err != nil {
		return out
	}
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			out = append(out, Choice{Value: path.Join(col.Path, entry.Name()), Label: entry.Name()})
		}
	}
	return out
}

func lengthOr(n, fallback int) int {
	if n > 0 {
		return n
	}
	return fallback
}
