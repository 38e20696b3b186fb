// Package config resolves the data directory and reads the optional
// settings file that lives inside it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	// DirName is the directory created under the user's home
	DirName = "todo"

	// File names inside the data directory
	JSONFile   = "todo_tasks.json"
	SQLiteFile = "todo_tasks.db"
	LogFile    = "todo.log"
	YAMLFile   = "config.yaml"
	TOMLFile   = "config.toml"
)

// Storage backends
const (
	StorageJSON   = "json"
	StorageSQLite = "sqlite"
)

// Themes
const (
	ThemeTokyoNight = "tokyo-night"
	ThemeGruvbox    = "gruvbox"
)

// Config models config.yaml / config.toml
type Config struct {
	Storage  string `yaml:"storage" toml:"storage"`
	LogLevel string `yaml:"log_level" toml:"log_level"`
	Theme    string `yaml:"theme" toml:"theme"`

	// Path of the file the values came from, empty for defaults
	Source string `yaml:"-" toml:"-"`
}

// Default returns the configuration used when no settings file exists
func Default() *Config {
	return &Config{
		Storage:  StorageJSON,
		LogLevel: "info",
		Theme:    ThemeTokyoNight,
	}
}

// Dir returns <home>/todo, creating it if needed
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home dir: %w", err)
	}
	return EnsureDir(filepath.Join(home, DirName))
}

// EnsureDir creates dir if it does not exist and returns it
func EnsureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("config: ensure data dir: %w", err)
	}
	return dir, nil
}

// Load reads config.yaml from dir, falling back to config.toml. A missing
// file yields defaults. Unset keys keep their default values.
func Load(dir string) (*Config, error) {
	cfg := Default()

	yamlPath := filepath.Join(dir, YAMLFile)
	data, err := os.ReadFile(yamlPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return Default(), fmt.Errorf("config: parse %s: %w", yamlPath, err)
		}
		cfg.Source = yamlPath
	case errors.Is(err, fs.ErrNotExist):
		tomlPath := filepath.Join(dir, TOMLFile)
		if _, err := toml.DecodeFile(tomlPath, cfg); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return cfg, nil
			}
			return Default(), fmt.Errorf("config: parse %s: %w", tomlPath, err)
		}
		cfg.Source = tomlPath
	default:
		return Default(), fmt.Errorf("config: read %s: %w", yamlPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks that every value is one the application understands
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageJSON, StorageSQLite:
	default:
		return fmt.Errorf("config: unknown storage %q", c.Storage)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log_level %q", c.LogLevel)
	}
	switch c.Theme {
	case ThemeTokyoNight, ThemeGruvbox:
	default:
		return fmt.Errorf("config: unknown theme %q", c.Theme)
	}
	return nil
}
