// Package config loads the optional YAML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Export holds SVG snapshot settings.
type Export struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Config is the user configuration. Zero values fall back to defaults.
type Config struct {
	ByYear      bool   `yaml:"by_year"`      // insert a year level in paper trees
	DetectTypes bool   `yaml:"detect_types"` // sniff MIME types while scanning
	Export      Export `yaml:"export"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ByYear:      true,
		DetectTypes: false,
		Export:      Export{Width: 1600, Height: 1000},
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "treescope.yaml"
	}
	return filepath.Join(home, ".config", "treescope", "config.yaml")
}

// Load reads the file at path on top of the defaults. A missing file is not
// an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Export.Width <= 0 {
		cfg.Export.Width = Default().Export.Width
	}
	if cfg.Export.Height <= 0 {
		cfg.Export.Height = Default().Export.Height
	}
	return cfg, nil
}
