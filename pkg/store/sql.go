package store

import (
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-material-widgets/pkg/model"
)

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func joinTable(schema model.Schema, col model.Column) string {
	return schema.TableName() + "_" + col.Name
}

func columnType(kind model.ColumnKind) string {
	switch kind {
	case model.KindBigInteger, model.KindInteger, model.KindSmallInteger,
		model.KindPositiveInteger, model.KindPositiveSmallInteger,
		model.KindBoolean, model.KindNullBoolean, model.KindForeignKey:
		return "INTEGER"
	case model.KindFloat:
		return "REAL"
	default:
		// Decimals stay text so no precision is lost.
		return "TEXT"
	}
}

func createScript(schema model.Schema) string {
	table := schema.TableName()
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n\tid INTEGER PRIMARY KEY AUTOINCREMENT", quote(table))
	for _, col := range schema.Columns {
		if col.Kind == model.KindManyToMany {
			continue
		}
		fmt.Fprintf(&b, ",\n\t%s %s", quote(col.Name), columnType(col.Kind))
		if !col.Null {
			b.WriteString(" NOT NULL")
		}
	}
	b.WriteString("\n);\n")

	for _, col := range schema.Columns {
		if col.Kind != model.KindManyToMany {
			continue
		}
		join := joinTable(schema, col)
		fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n\tsource_id INTEGER NOT NULL REFERENCES %s (id) ON DELETE CASCADE,\n\ttarget_id INTEGER NOT NULL,\n\tPRIMARY KEY (source_id, target_id)\n);\n",
			quote(join), quote(table))
	}
	return b.String()
}

func insertStatement(schema model.Schema, data map[string]any) (string, []any, error) {
	var (
		names        []string
		placeholders []string
		args         []any
	)
	for _, col := range schema.Columns {
		if col.Kind == model.KindManyToMany {
			continue
		}
		raw, ok := data[col.Name]
		if !ok {
			raw = col.Default
		}
		value, err := columnValue(col, raw)
		if err != nil {
			return "", nil, err
		}
		if value == nil && !col.Null {
			value = zeroValue(col.Kind)
		}
		names = append(names, quote(col.Name))
		placeholders = append(placeholders, "?")
		args = append(args, value)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(schema.TableName()), strings.Join(names, ", "), strings.Join(placeholders, ", "))
	return query, args, nil
}

// zeroValue fills NOT NULL columns left blank, the way blank text is
// stored as "" rather than NULL.
func zeroValue(kind model.ColumnKind) any {
	switch columnType(kind) {
	case "INTEGER":
		return int64(0)
	case "REAL":
		return float64(0)
	default:
		return ""
	}
}

// columnValue converts a cleaned form value to one SQLite can bind.
func columnValue(col model.Column, raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case bool:
		if col.Kind == model.KindFile && !v {
			// A cleared file input.
			return nil, nil
		}
		if v {
			return int64(1), nil
		}
		return int64(0), nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		return v, nil
	case time.Time:
		switch col.Kind {
		case model.KindDate:
			return v.Format(time.DateOnly), nil
		case model.KindTime:
			return v.Format(time.TimeOnly), nil
		default:
			return v.Format(time.RFC3339), nil
		}
	case *multipart.FileHeader:
		if v == nil {
			return nil, nil
		}
		return v.Filename, nil
	case []*multipart.FileHeader:
		names := make([]string, 0, len(v))
		for _, header := range v {
			names = append(names, header.Filename)
		}
		return strings.Join(names, ","), nil
	case string:
		if col.Kind == model.KindForeignKey {
			if v == "" {
				return nil, nil
			}
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("store: column %q: %q is not a row id", col.Name, v)
			}
			return id, nil
		}
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return nil, fmt.Errorf("store: column %q: unsupported value %T", col.Name, raw)
	}
}

func relatedIDs(col model.Column, raw any) ([]int64, error) {
	var values []string
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []string:
		values = v
	case []any:
		for _, item := range v {
			values = append(values, fmt.Sprint(item))
		}
	case string:
		if v != "" {
			values = []string{v}
		}
	default:
		return nil, fmt.Errorf("store: column %q: unsupported value %T", col.Name, raw)
	}

	ids := make([]int64, 0, len(values))
	seen := make(map[int64]struct{}, len(values))
	for _, value := range values {
		id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("store: column %q: %q is not a row id", col.Name, value)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
