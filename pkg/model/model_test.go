package model_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-material-widgets/pkg/model"
)

func TestTitleLabel(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{name: "first_name", want: "First Name"},
		{name: "url", want: "Url"},
		{name: "ipv4_address", want: "Ipv4 Address"},
		{name: "field2name", want: "Field2Name"},
		{name: "ALL_CAPS", want: "All Caps"},
		{name: "__private", want: "  Private"},
		{name: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := model.TitleLabel(tc.name); got != tc.want {
				t.Fatalf("TitleLabel(%q): want %q, got %q", tc.name, tc.want, got)
			}
		})
	}
}

func TestVerboseLabel(t *testing.T) {
	if got := model.VerboseLabel("url_field"); got != "Url field" {
		t.Fatalf("want %q, got %q", "Url field", got)
	}
	col := model.Column{Name: "url_field", VerboseName: "homepage"}
	if got := col.Label(); got != "Homepage" {
		t.Fatalf("verbose name label: want %q, got %q", "Homepage", got)
	}
}

func TestSchemaValidate(t *testing.T) {
	cases := []struct {
		name    string
		schema  model.Schema
		wantErr string
	}{
		{
			name:    "missing name",
			schema:  model.Schema{Columns: []model.Column{{Name: "a", Kind: model.KindInteger}}},
			wantErr: "schema name is required",
		},
		{
			name: "char without length",
			schema: model.Schema{Name: "x", Columns: []model.Column{
				{Name: "title", Kind: model.KindChar},
			}},
			wantErr: "requires max_length",
		},
		{
			name: "foreign key without relation",
			schema: model.Schema{Name: "x", Columns: []model.Column{
				{Name: "owner", Kind: model.KindForeignKey},
			}},
			wantErr: "requires a related table",
		},
		{
			name: "duplicate column",
			schema: model.Schema{Name: "x", Columns: []model.Column{
				{Name: "a", Kind: model.KindInteger},
				{Name: "a", Kind: model.KindText},
			}},
			wantErr: "declares column \"a\" twice",
		},
		{
			name: "unknown kind",
			schema: model.Schema{Name: "x", Columns: []model.Column{
				{Name: "a", Kind: "json"},
			}},
			wantErr: "unknown kind",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.schema.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("want error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadFS(t *testing.T) {
	catalog, err := model.LoadFS(os.DirFS(filepath.Join("testdata", "schemas")))
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}

	if diff := cmp.Diff([]string{"gadget", "owner", "tag"}, catalog.Names()); diff != "" {
		t.Fatalf("schema names mismatch (-want +got):\n%s", diff)
	}

	gadget, ok := catalog.Get("gadget")
	if !ok {
		t.Fatalf("gadget schema missing")
	}
	want := model.Schema{
		Name: "gadget",
		Columns: []model.Column{
			{Name: "title", Kind: model.KindChar, MaxLength: 64, HelpText: "Shown on the catalogue card"},
			{Name: "owner", Kind: model.KindForeignKey, Related: "owners", Null: true, Blank: true},
		},
	}
	if diff := cmp.Diff(want, gadget); diff != "" {
		t.Fatalf("gadget schema mismatch (-want +got):\n%s", diff)
	}
	if gadget.TableName() != "gadget" {
		t.Fatalf("expected table name to default to schema name, got %q", gadget.TableName())
	}

	owner, _ := catalog.Get("owner")
	if owner.TableName() != "owners" {
		t.Fatalf("expected declared table name, got %q", owner.TableName())
	}
}

func TestLoadFS_Nil(t *testing.T) {
	catalog, err := model.LoadFS(nil)
	if err != nil {
		t.Fatalf("load nil fs: %v", err)
	}
	if len(catalog.Names()) != 0 {
		t.Fatalf("expected empty catalog")
	}
}

func TestLoadFile_RejectsDuplicates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dupe.yaml")
	payload := "schemas:\n  - name: a\n    columns: [{name: x, kind: integer}]\n  - name: a\n    columns: [{name: y, kind: integer}]\n"
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := model.LoadFile(path); err == nil || !strings.Contains(err.Error(), "duplicate schema") {
		t.Fatalf("expected duplicate schema error, got %v", err)
	}
}

func TestFromOpenAPI(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "openapi.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	schema, err := model.FromOpenAPI(context.Background(), data, "Product")
	if err != nil {
		t.Fatalf("from openapi: %v", err)
	}

	got := make(map[string]model.ColumnKind, len(schema.Columns))
	for _, col := range schema.Columns {
		got[col.Name] = col.Kind
	}
	want := map[string]model.ColumnKind{
		"archived": model.KindNullBoolean,
		"contact":  model.KindEmail,
		"featured": model.KindBoolean,
		"homepage": model.KindURL,
		"owner":    model.KindForeignKey,
		"rating":   model.KindFloat,
		"released": model.KindDate,
		"status":   model.KindChar,
		"stock":    model.KindPositiveInteger,
		"tags":     model.KindManyToMany,
		"title":    model.KindChar,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("column kinds mismatch (-want +got):\n%s", diff)
	}

	title, _ := schema.Column("title")
	if title.Blank || title.MaxLength != 32 || title.Label() != "Product title" || title.HelpText != "Display name" {
		t.Fatalf("unexpected title column: %+v", title)
	}
	contact, _ := schema.Column("contact")
	if !contact.Blank {
		t.Fatalf("optional property should be blank")
	}
	owner, _ := schema.Column("owner")
	if owner.Related != "owner" {
		t.Fatalf("foreign key related: want owner, got %q", owner.Related)
	}
	status, _ := schema.Column("status")
	if diff := cmp.Diff([]model.Choice{{Value: "draft", Label: "Draft"}, {Value: "live", Label: "Live"}}, status.Choices); diff != "" {
		t.Fatalf("enum choices mismatch (-want +got):\n%s", diff)
	}
}

func TestFromOpenAPI_MissingComponent(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "openapi.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	if _, err := model.FromOpenAPI(context.Background(), data, "Missing"); err == nil {
		t.Fatalf("expected missing component error")
	}
}
