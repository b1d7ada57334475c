package main

import (
	"fmt"
	"os"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-material-widgets/pkg/material"
)

// loadSettings reads the asset settings file, then lets a theme manifest
// override the stylesheet and script it names.
func loadSettings(flags *globalFlags) (material.Settings, error) {
	settings, err := material.LoadSettings(flags.settingsPath)
	if err != nil {
		return material.Settings{}, err
	}
	if flags.themePath == "" {
		return settings, nil
	}

	manifest, err := loadManifest(flags.themePath)
	if err != nil {
		return material.Settings{}, err
	}
	registry := theme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return material.Settings{}, fmt.Errorf("theme %s: %w", flags.themePath, err)
	}
	fromTheme := material.SettingsFromTheme(&theme.Selection{
		Theme:    manifest.Name,
		Variant:  flags.themeVariant,
		Manifest: manifest,
	})
	// Keys the theme leaves out keep the settings file values.
	if declares(manifest, flags.themeVariant, material.ThemeCSSKey) {
		settings.CSS = fromTheme.CSS
	}
	if declares(manifest, flags.themeVariant, material.ThemeJSKey) {
		settings.JS = fromTheme.JS
	}
	return settings, nil
}

func loadManifest(path string) (*theme.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}
	var manifest theme.Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("theme %s: %w", path, err)
	}
	return &manifest, nil
}

func declares(manifest *theme.Manifest, variant, key string) bool {
	if _, ok := manifest.Assets.Files[key]; ok {
		return true
	}
	_, ok := manifest.Variants[variant].Assets.Files[key]
	return ok
}
