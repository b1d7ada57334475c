package store

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-material-widgets/pkg/forms"
	"github.com/goliatone/go-material-widgets/pkg/model"
	"github.com/goliatone/go-material-widgets/pkg/testsupport"
)

var (
	groupSchema = model.Schema{
		Name:  "group",
		Table: "groups",
		Columns: []model.Column{
			{Name: "name", Kind: model.KindChar, MaxLength: 40},
		},
	}
	memberSchema = model.Schema{
		Name: "member",
		Columns: []model.Column{
			{Name: "username", Kind: model.KindChar, MaxLength: 30},
			{Name: "active", Kind: model.KindBoolean},
			{Name: "joined", Kind: model.KindDate, Null: true, Blank: true},
			{Name: "score", Kind: model.KindDecimal, MaxDigits: 5, DecimalPlaces: 2, Null: true, Blank: true},
			{Name: "primary_group", Kind: model.KindForeignKey, Related: "groups", Null: true, Blank: true},
			{Name: "groups", Kind: model.KindManyToMany, Related: "groups"},
		},
	}
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(testsupport.Context(), filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return s
}

func seedGroups(t *testing.T, s *Store, names ...string) {
	t.Helper()
	for _, name := range names {
		if _, err := s.Save(testsupport.Context(), groupSchema, map[string]any{"name": name}); err != nil {
			t.Fatalf("seed %q: %v", name, err)
		}
	}
}

func TestStore_SaveAndRead(t *testing.T) {
	ctx := testsupport.Context()
	s := openStore(t)
	seedGroups(t, s, "Admins", "Editors")

	id, err := s.Save(ctx, memberSchema, map[string]any{
		"username":      "ada",
		"active":        true,
		"joined":        time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
		"score":         "12.50",
		"primary_group": "2",
		"groups":        []string{"1", "2", "1"},
		"ignored":       "not a column",
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Get(ctx, "member", id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := Record{
		"id":            id,
		"username":      "ada",
		"active":        int64(1),
		"joined":        "2024-03-09",
		"score":         "12.50",
		"primary_group": int64(2),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}

	related, err := s.Related(ctx, memberSchema, "groups", id)
	if err != nil {
		t.Fatalf("related: %v", err)
	}
	if diff := cmp.Diff([]int64{1, 2}, related); diff != "" {
		t.Fatalf("related mismatch (-want +got):\n%s", diff)
	}

	count, err := s.Count(ctx, "member")
	if err != nil || count != 1 {
		t.Fatalf("count = %d, %v", count, err)
	}
}

func TestStore_SaveRollsBackOnBadRelation(t *testing.T) {
	ctx := testsupport.Context()
	s := openStore(t)
	seedGroups(t, s, "Admins")

	_, err := s.Save(ctx, memberSchema, map[string]any{
		"username": "grace",
		"groups":   []string{"1", "not-an-id"},
	})
	if err == nil || !strings.Contains(err.Error(), "not a row id") {
		t.Fatalf("expected row id error, got %v", err)
	}
	count, err := s.Count(ctx, "member")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("failed save left %d rows", count)
	}
}

func TestStore_ChoicesAndList(t *testing.T) {
	ctx := testsupport.Context()
	s := openStore(t)
	seedGroups(t, s, "Admins", "Editors")

	choices, err := s.Choices(ctx, "groups")
	if err != nil {
		t.Fatalf("choices: %v", err)
	}
	want := []forms.Choice{{Value: "1", Label: "Admins"}, {Value: "2", Label: "Editors"}}
	if diff := cmp.Diff(want, choices); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}

	records, err := s.List(ctx, "groups")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 || records[1].ID() != 2 {
		t.Fatalf("unexpected records %v", records)
	}
}

func TestStore_Errors(t *testing.T) {
	ctx := testsupport.Context()
	s := openStore(t)
	if err := s.EnsureSchema(ctx, groupSchema); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	// Creating twice is a no-op.
	if err := s.EnsureSchema(ctx, groupSchema); err != nil {
		t.Fatalf("ensure schema again: %v", err)
	}

	if _, err := s.Get(ctx, "groups", 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.Count(ctx, "missing"); !errors.Is(err, ErrUnknownTable) {
		t.Fatalf("expected ErrUnknownTable, got %v", err)
	}
	if _, err := s.Save(ctx, model.Schema{Name: "empty"}, nil); err == nil {
		t.Fatalf("expected schema validation error")
	}
	if _, err := Open(ctx, ""); err == nil {
		t.Fatalf("expected path error")
	}
}

func TestStore_BacksModelForm(t *testing.T) {
	ctx := testsupport.Context()
	s := openStore(t)
	seedGroups(t, s, "Admins")

	form, err := forms.NewModelForm(ctx, memberSchema, forms.WithChoiceSource(s), forms.WithSaver(s))
	if err != nil {
		t.Fatalf("model form: %v", err)
	}
	form.Bind(map[string][]string{
		"username":      {"linus"},
		"active":        {"on"},
		"primary_group": {"1"},
		"groups":        {"1"},
	}, nil)
	id, err := form.Save(ctx)
	if err != nil {
		t.Fatalf("save: %v (errors %v)", err, form.Errors())
	}
	record, err := s.Get(ctx, "member", id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if record["username"] != "linus" || record["primary_group"] != int64(1) {
		t.Fatalf("unexpected record %v", record)
	}
}
