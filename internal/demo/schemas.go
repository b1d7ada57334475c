package demo

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-material-widgets/pkg/forms"
	"github.com/goliatone/go-material-widgets/pkg/material"
	"github.com/goliatone/go-material-widgets/pkg/model"
)

// Schema names declared in schemas/demo.yaml.
const (
	ModelSchema   = "demo"
	ForeignSchema = "foreign_item"
	ManySchema    = "many_item"
)

//go:embed schemas/*.yaml
var schemaFiles embed.FS

// Catalog loads the demo model schemas.
func Catalog() (*model.Catalog, error) {
	sub, err := fs.Sub(schemaFiles, "schemas")
	if err != nil {
		return nil, err
	}
	return model.LoadFS(sub)
}

// Backend is what the demo model form needs from storage.
type Backend interface {
	forms.Saver
	forms.ChoiceSource
	Count(ctx context.Context, table string) (int64, error)
}

// Seed stores a few related rows so the relation fields have choices. It
// does nothing when rows exist already.
func Seed(ctx context.Context, backend Backend, catalog *model.Catalog) error {
	for _, name := range []string{ForeignSchema, ManySchema} {
		schema, ok := catalog.Get(name)
		if !ok {
			return fmt.Errorf("demo: schema %q missing", name)
		}
		if count, err := backend.Count(ctx, schema.TableName()); err == nil && count > 0 {
			continue
		}
		for item := 1; item <= 3; item++ {
			if _, err := backend.Save(ctx, schema, map[string]any{"item": int64(item)}); err != nil {
				return fmt.Errorf("demo: seed %q: %w", name, err)
			}
		}
	}
	return nil
}

// NewModelForm builds the Material model form over the demo schema.
func NewModelForm(ctx context.Context, backend Backend, catalog *model.Catalog, opts ...material.Option) (*forms.ModelForm, error) {
	schema, ok := catalog.Get(ModelSchema)
	if !ok {
		return nil, fmt.Errorf("demo: schema %q missing", ModelSchema)
	}
	return material.NewModelForm(ctx, schema, []forms.ModelFormOption{
		forms.WithChoiceSource(backend),
		forms.WithSaver(backend),
	}, opts...)
}
