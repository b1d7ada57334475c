package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-material-widgets/pkg/forms"
	"github.com/goliatone/go-material-widgets/pkg/render"
)

type namedRenderer string

func (n namedRenderer) Name() string        { return string(n) }
func (n namedRenderer) ContentType() string { return "text/plain" }
func (n namedRenderer) Render(context.Context, *forms.Form, render.RenderOptions) ([]byte, error) {
	return []byte(n), nil
}

func TestRegistry(t *testing.T) {
	registry := render.NewRegistry()
	if err := registry.Register(namedRenderer("material")); err != nil {
		t.Fatalf("register: %v", err)
	}
	registry.MustRegister(namedRenderer("default"))

	if err := registry.Register(namedRenderer("material")); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(namedRenderer(" ")); err == nil {
		t.Fatalf("expected blank name error")
	}
	if diff := cmp.Diff([]string{"default", "material"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	got, err := registry.Resolve("")
	if err != nil || got.Name() != "material" {
		t.Fatalf("first registered renderer should be the default, got %v %v", got, err)
	}
	if err := registry.SetDefault("default"); err != nil {
		t.Fatalf("set default: %v", err)
	}
	if got, _ := registry.Resolve(""); got.Name() != "default" {
		t.Fatalf("default not switched, got %s", got.Name())
	}

	if _, err := registry.Get("preact"); !errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer, got %v", err)
	}
	if err := registry.SetDefault("preact"); !errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer, got %v", err)
	}
	if !registry.Has("material") || registry.Has("preact") {
		t.Fatalf("Has reports wrong membership")
	}
}
