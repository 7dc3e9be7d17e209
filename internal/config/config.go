// Package config loads optional viewer defaults. Nothing here is
// required: a missing config file and an empty environment yield the
// built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultMaxRows caps preview output when neither flag, environment, nor
// config file says otherwise.
const DefaultMaxRows = 200

// Config holds viewer defaults. Flags override everything in it.
type Config struct {
	MaxRows int    `yaml:"max_rows"`
	Sep     string `yaml:"sep"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{MaxRows: DefaultMaxRows}
}

// Path returns the config file location: $VIEWDF_CONFIG if set, otherwise
// ~/.config/viewdf/config.yaml.
func Path() string {
	if p := os.Getenv("VIEWDF_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "viewdf", "config.yaml")
}

// Load resolves configuration: built-in defaults, then the config file if
// present, then VIEWDF_* environment variables. A .env file in the working
// directory is honored before the environment is read.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := Path(); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("VIEWDF_MAX_ROWS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("VIEWDF_MAX_ROWS: %q is not an integer", v)
		}
		cfg.MaxRows = n
	}
	if v := os.Getenv("VIEWDF_SEP"); v != "" {
		cfg.Sep = v
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}
