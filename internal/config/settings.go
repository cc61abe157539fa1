// Package config loads optional tool settings from a project's
// .codecompanion directory. A missing settings file yields defaults;
// absence is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings controls root discovery, logging, and preview rendering.
type Settings struct {
	// RootMarkers are the entries the workspace locator walks upward for.
	RootMarkers []string `yaml:"root_markers"`
	// LogLevel is the minimum level emitted: debug, info, warn, or error.
	LogLevel string `yaml:"log_level"`
	// RenderStyle names the glamour style used for markdown previews.
	RenderStyle string `yaml:"render_style"`
}

// Default returns the settings used when no config file exists.
func Default() *Settings {
	return &Settings{
		RootMarkers: []string{".codecompanion", ".git", "go.mod"},
		LogLevel:    "info",
		RenderStyle: "dark",
	}
}

// Path returns the settings file path under a config directory.
func Path(configDir string) string {
	return filepath.Join(configDir, "config.yaml")
}

// Load reads settings from path. Fields absent from the file keep their
// defaults; a missing file returns defaults outright.
func Load(path string) (*Settings, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}

	if len(cfg.RootMarkers) == 0 {
		cfg.RootMarkers = Default().RootMarkers
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = Default().LogLevel
	}
	if cfg.RenderStyle == "" {
		cfg.RenderStyle = Default().RenderStyle
	}
	return cfg, nil
}

// Save writes settings to path, creating the parent directory if needed.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
