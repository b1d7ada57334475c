package template_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-material-widgets/pkg/render/template/gotemplate"
	"github.com/goliatone/go-material-widgets/pkg/testsupport"
)

//go:embed testdata/templates
var embeddedTemplates embed.FS

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "hello.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("use-global.html", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-global.golden"))
	if diff := testsupport.CompareGolden(want, result); diff != "" {
		t.Fatalf("global context mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) { return input, nil }); err == nil {
		t.Fatalf("expected duplicate filter registration to fail")
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-filter.golden"))
	if result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestEngine_IncludeRelativeToParent(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("list", map[string]any{"items": []any{" one ", "two"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "list.golden"))
	if result != want {
		t.Fatalf("include mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestEngine_FilesystemOrder(t *testing.T) {
	override := fstest.MapFS{
		"hello.html": &fstest.MapFile{Data: []byte("Hi {{ name }}")},
	}
	base, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithFS(override, base))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render override: %v", err)
	}
	if got != "Hi Ada" {
		t.Fatalf("expected first filesystem to win, got %q", got)
	}

	got, err = engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render fallback: %v", err)
	}
	if got != "env=\n" {
		t.Fatalf("expected fallback filesystem template, got %q", got)
	}
}

func TestEngine_RenderStringAndStructData(t *testing.T) {
	engine := newEngine(t)

	type person struct {
		Name string `json:"name"`
	}

	got, err := engine.Render("{{ name|lowerfirst }}", person{Name: "Ada"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "ada" {
		t.Fatalf("want %q, got %q", "ada", got)
	}
}

func TestEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without a template filesystem")
	}
	if _, err := gotemplate.New(gotemplate.WithName("empty"), gotemplate.WithFS(nil)); err == nil {
		t.Fatalf("expected error when every filesystem is nil")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
