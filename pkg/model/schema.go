package model

import (
	"errors"
	"fmt"
	"strings"
)

// ColumnKind names the storage type of a column.
type ColumnKind string

const (
	KindBigInteger           ColumnKind = "big_integer"
	KindBoolean              ColumnKind = "boolean"
	KindChar                 ColumnKind = "char"
	KindDate                 ColumnKind = "date"
	KindDateTime             ColumnKind = "date_time"
	KindDecimal              ColumnKind = "decimal"
	KindEmail                ColumnKind = "email"
	KindFile                 ColumnKind = "file"
	KindFilePath             ColumnKind = "file_path"
	KindFloat                ColumnKind = "float"
	KindForeignKey           ColumnKind = "foreign_key"
	KindInteger              ColumnKind = "integer"
	KindGenericIPAddress     ColumnKind = "generic_ip_address"
	KindManyToMany           ColumnKind = "many_to_many"
	KindNullBoolean          ColumnKind = "null_boolean"
	KindPositiveInteger      ColumnKind = "positive_integer"
	KindPositiveSmallInteger ColumnKind = "positive_small_integer"
	KindSlug                 ColumnKind = "slug"
	KindSmallInteger         ColumnKind = "small_integer"
	KindText                 ColumnKind = "text"
	KindTime                 ColumnKind = "time"
	KindURL                  ColumnKind = "url"
)

var knownKinds = map[ColumnKind]struct{}{
	KindBigInteger: {}, KindBoolean: {}, KindChar: {}, KindDate: {}, KindDateTime: {},
	KindDecimal: {}, KindEmail: {}, KindFile: {}, KindFilePath: {}, KindFloat: {},
	KindForeignKey: {}, KindInteger: {}, KindGenericIPAddress: {}, KindManyToMany: {},
	KindNullBoolean: {}, KindPositiveInteger: {}, KindPositiveSmallInteger: {},
	KindSlug: {}, KindSmallInteger: {}, KindText: {}, KindTime: {}, KindURL: {},
}

// Valid reports whether k is one of the declared column kinds.
func (k ColumnKind) Valid() bool {
	_, ok := knownKinds[k]
	return ok
}

// IsRelation reports whether the column points at another table.
func (k ColumnKind) IsRelation() bool {
	return k == KindForeignKey || k == KindManyToMany
}

// Choice is a declared value/label pair restricting a column.
type Choice struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Column describes a single persisted attribute.
type Column struct {
	Name          string     `json:"name" yaml:"name"`
	Kind          ColumnKind `json:"kind" yaml:"kind"`
	VerboseName   string     `json:"verbose_name,omitempty" yaml:"verbose_name,omitempty"`
	HelpText      string     `json:"help_text,omitempty" yaml:"help_text,omitempty"`
	Null          bool       `json:"null,omitempty" yaml:"null,omitempty"`
	Blank         bool       `json:"blank,omitempty" yaml:"blank,omitempty"`
	MaxLength     int        `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	MaxDigits     int        `json:"max_digits,omitempty" yaml:"max_digits,omitempty"`
	DecimalPlaces int        `json:"decimal_places,omitempty" yaml:"decimal_places,omitempty"`
	Path          string     `json:"path,omitempty" yaml:"path,omitempty"`
	Related       string     `json:"related,omitempty" yaml:"related,omitempty"`
	Choices       []Choice   `json:"choices,omitempty" yaml:"choices,omitempty"`
	Default       any        `json:"default,omitempty" yaml:"default,omitempty"`
}

// Label returns the verbose name, falling back to VerboseLabel(Name).
func (c Column) Label() string {
	if strings.TrimSpace(c.VerboseName) != "" {
		return CapFirst(c.VerboseName)
	}
	return VerboseLabel(c.Name)
}

// Schema groups the columns persisted in one table.
type Schema struct {
	Name    string   `json:"name" yaml:"name"`
	Table   string   `json:"table,omitempty" yaml:"table,omitempty"`
	Columns []Column `json:"columns" yaml:"columns"`
}

// TableName returns Table, or the schema name when no table is declared.
func (s Schema) TableName() string {
	if s.Table != "" {
		return s.Table
	}
	return strings.ToLower(s.Name)
}

// Column looks a column up by name.
func (s Schema) Column(name string) (Column, bool) {
	for _, col := range s.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// Validate checks the schema is usable for form inference and storage.
func (s Schema) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("model: schema name is required")
	}
	if len(s.Columns) == 0 {
		return fmt.Errorf("model: schema %q declares no columns", s.Name)
	}
	seen := make(map[string]struct{}, len(s.Columns))
	var errs []error
	for idx, col := range s.Columns {
		name := strings.TrimSpace(col.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("model: schema %q column %d has no name", s.Name, idx))
			continue
		}
		if _, dup := seen[name]; dup {
			errs = append(errs, fmt.Errorf("model: schema %q declares column %q twice", s.Name, name))
		}
		seen[name] = struct{}{}
		if !col.Kind.Valid() {
			errs = append(errs, fmt.Errorf("model: schema %q column %q has unknown kind %q", s.Name, name, col.Kind))
			continue
		}
		switch col.Kind {
		case KindChar:
			if col.MaxLength <= 0 {
				errs = append(errs, fmt.Errorf("model: schema %q column %q requires max_length", s.Name, name))
			}
		case KindDecimal:
			if col.MaxDigits <= 0 || col.DecimalPlaces < 0 || col.DecimalPlaces > col.MaxDigits {
				errs = append(errs, fmt.Errorf("model: schema %q column %q requires max_digits >= decimal_places", s.Name, name))
			}
		case KindForeignKey, KindManyToMany:
			if strings.TrimSpace(col.Related) == "" {
				errs = append(errs, fmt.Errorf("model: schema %q column %q requires a related table", s.Name, name))
			}
		}
	}
	return errors.Join(errs...)
}
