package model

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog holds schemas by name.
type Catalog struct {
	schemas map[string]Schema
}

// NewCatalog returns a catalog seeded with the provided schemas.
func NewCatalog(schemas ...Schema) (*Catalog, error) {
	catalog := &Catalog{schemas: make(map[string]Schema, len(schemas))}
	for _, schema := range schemas {
		if err := catalog.Add(schema); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// Add validates and stores schema, rejecting duplicate names.
func (c *Catalog) Add(schema Schema) error {
	if err := schema.Validate(); err != nil {
		return err
	}
	if _, exists := c.schemas[schema.Name]; exists {
		return fmt.Errorf("model: duplicate schema %q", schema.Name)
	}
	c.schemas[schema.Name] = schema
	return nil
}

// Get returns the schema registered under name.
func (c *Catalog) Get(name string) (Schema, bool) {
	if c == nil {
		return Schema{}, false
	}
	schema, ok := c.schemas[name]
	return schema, ok
}

// Names lists registered schema names in lexical order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.schemas))
	for name := range c.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type documentFile struct {
	Schemas []Schema `json:"schemas" yaml:"schemas"`
}

// LoadFS walks fsys and parses every JSON/YAML schema document it finds.
// A nil filesystem yields an empty catalog.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	catalog, _ := NewCatalog()
	if fsys == nil {
		return catalog, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("model: read %s: %w", path, err)
		}
		return loadInto(catalog, data, path)
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// LoadFile parses a single schema document from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model: read %s: %w", path, err)
	}
	catalog, _ := NewCatalog()
	if err := loadInto(catalog, data, path); err != nil {
		return nil, err
	}
	return catalog, nil
}

func loadInto(catalog *Catalog, data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}
	for _, schema := range doc.Schemas {
		if err := catalog.Add(schema); err != nil {
			return fmt.Errorf("model: %s: %w", source, err)
		}
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("model: file %s is empty", source)
	}
	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("model: parse %s: %w", source, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("model: parse %s: %w", source, err)
	}
	return doc, nil
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
