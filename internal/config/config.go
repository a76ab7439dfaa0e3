package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds user-tunable settings loaded from an optional YAML file.
// Zero values fall back to the package constants and built-in defaults.
type Config struct {
	Theme          string `yaml:"theme"`
	MaxCanvasWidth int    `yaml:"max_canvas_width"`
	ExportDir      string `yaml:"export_dir"`
	ShowArchived   bool   `yaml:"show_archived"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Theme:          "default",
		MaxCanvasWidth: DefaultMaxCanvasWidth,
	}
}

// Load reads the config file at path. A missing file is not an error; the
// defaults are returned. A malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	if cfg.Theme == "" {
		cfg.Theme = "default"
	}
	if cfg.MaxCanvasWidth <= 0 {
		cfg.MaxCanvasWidth = DefaultMaxCanvasWidth
	}
	return cfg, nil
}

// DefaultPath returns the well-known config file location.
func DefaultPath() string {
	if base := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); base != "" {
		return filepath.Join(base, AppName, "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".", AppName, "config.yaml")
	}
	return filepath.Join(home, ".config", AppName, "config.yaml")
}
