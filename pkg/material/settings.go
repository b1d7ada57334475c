package material

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-material-widgets/pkg/forms"
)

// Default locations of the Material Components bundles.
const (
	DefaultCSS = "https://unpkg.com/material-components-web@latest/dist/material-components-web.min.css"
	DefaultJS  = "https://unpkg.com/material-components-web@latest/dist/material-components-web.min.js"

	EnvCSS = "MATERIAL_CSS"
	EnvJS  = "MATERIAL_JS"

	// Theme asset keys read by SettingsFromTheme.
	ThemeCSSKey = "material_css"
	ThemeJSKey  = "material_js"
)

// Settings locates the two Material bundles every styled widget depends on.
type Settings struct {
	CSS string `yaml:"material_css" json:"material_css"`
	JS  string `yaml:"material_js" json:"material_js"`
}

// DefaultSettings points at the latest unpkg bundles.
func DefaultSettings() Settings {
	return Settings{CSS: DefaultCSS, JS: DefaultJS}
}

// WithDefaults fills blank entries from DefaultSettings.
func (s Settings) WithDefaults() Settings {
	def := DefaultSettings()
	if strings.TrimSpace(s.CSS) == "" {
		s.CSS = def.CSS
	}
	if strings.TrimSpace(s.JS) == "" {
		s.JS = def.JS
	}
	return s
}

// WithEnv overrides s with MATERIAL_CSS and MATERIAL_JS when set.
func (s Settings) WithEnv() Settings {
	if v, ok := os.LookupEnv(EnvCSS); ok && strings.TrimSpace(v) != "" {
		s.CSS = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(EnvJS); ok && strings.TrimSpace(v) != "" {
		s.JS = strings.TrimSpace(v)
	}
	return s
}

// Media returns the base assets shared by every styled widget.
func (s Settings) Media() forms.Media {
	s = s.WithDefaults()
	return forms.NewMedia([]string{s.CSS, errorCSS}, []string{s.JS})
}

// LoadSettings reads a YAML settings file and applies environment overrides.
// A missing file is not an error: defaults and environment still apply.
func LoadSettings(path string) (Settings, error) {
	var s Settings
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Settings{}, fmt.Errorf("material: read settings %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &s); err != nil {
				return Settings{}, fmt.Errorf("material: parse settings %q: %w", path, err)
			}
		}
	}
	return s.WithEnv().WithDefaults(), nil
}

// SettingsFromTheme resolves the bundles from a go-theme selection. Variant
// assets win over the manifest's own; keys that are not declared keep the
// defaults.
func SettingsFromTheme(selection *theme.Selection) Settings {
	s := DefaultSettings()
	if selection == nil || selection.Manifest == nil {
		return s
	}
	manifest := selection.Manifest
	files := map[string]string{}
	for key, value := range manifest.Assets.Files {
		files[key] = value
	}
	prefix := manifest.Assets.Prefix
	if variant, ok := manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Assets.Files {
			files[key] = value
		}
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}
	if css := files[ThemeCSSKey]; css != "" {
		s.CSS = themeAsset(prefix, css)
	}
	if js := files[ThemeJSKey]; js != "" {
		s.JS = themeAsset(prefix, js)
	}
	return s
}

// SelectSettings asks selector for name/variant and resolves the bundles.
func SelectSettings(selector theme.ThemeSelector, name, variant string) (Settings, error) {
	if selector == nil {
		return DefaultSettings(), nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return Settings{}, fmt.Errorf("material: select theme %q: %w", name, err)
	}
	return SettingsFromTheme(selection), nil
}

func themeAsset(prefix, file string) string {
	if prefix == "" || isAbsolute(file) {
		return file
	}
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
}

func isAbsolute(path string) bool {
	return strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://") ||
		strings.HasPrefix(path, "//") ||
		strings.HasPrefix(path, "/")
}

var (
	currentOnce sync.Once
	current     Settings
)

// Current returns the process settings: defaults overridden by the
// environment, read once.
func Current() Settings {
	currentOnce.Do(func() {
		current = DefaultSettings().WithEnv()
	})
	return current
}
