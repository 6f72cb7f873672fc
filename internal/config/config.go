/*
Package config handles loading and saving liftsearch configuration.

Configuration is stored in ~/.liftsearch.json and uses camelCase keys.

Schema:
  {
    "catalog": {
      "source": "https://example.com/exercises.json",
      "timeoutSeconds": 10
    },
    "storage": {
      "backend": "sqlite",
      "path": "~/.liftsearch/state.db"
    },
    "learning": {
      "enabled": true,
      "learnAliases": true
    }
  }

Environment variables take precedence over the file:
LIFTSEARCH_CATALOG, LIFTSEARCH_STORE_PATH and LIFTSEARCH_LEARNING.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Environment overrides.
const (
	EnvCatalog   = "LIFTSEARCH_CATALOG"
	EnvStorePath = "LIFTSEARCH_STORE_PATH"
	EnvLearning  = "LIFTSEARCH_LEARNING"
)

// Config represents the root configuration structure.
type Config struct {
	Catalog  CatalogConfig  `json:"catalog"`
	Storage  StorageConfig  `json:"storage"`
	Learning LearningConfig `json:"learning"`
}

// CatalogConfig locates the System exercise catalog.
type CatalogConfig struct {
	// Source is an http(s) URL, a .json/.yaml/.yml file, or empty for the
	// built-in catalog.
	Source string `json:"source"`

	// TimeoutSeconds bounds the one-time catalog fetch.
	TimeoutSeconds int `json:"timeoutSeconds"`
}

// StorageConfig selects where learning state is persisted.
type StorageConfig struct {
	// Backend is "sqlite", "badger" or "memory".
	Backend string `json:"backend"`

	// Path is the database file (sqlite) or directory (badger). A leading
	// "~/" is expanded.
	Path string `json:"path,omitempty"`
}

// LearningConfig toggles the learning hooks.
type LearningConfig struct {
	// Enabled records selections and uses stored signals for ranking.
	Enabled bool `json:"enabled"`

	// LearnAliases stores a selection query as an alias by default.
	LearnAliases bool `json:"learnAliases"`
}

// NewConfig creates a configuration with defaults.
func NewConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			TimeoutSeconds: 10,
		},
		Storage: StorageConfig{
			Backend: "sqlite",
			Path:    "~/.liftsearch/state.db",
		},
		Learning: LearningConfig{
			Enabled:      true,
			LearnAliases: true,
		},
	}
}

// GetDefaultConfigPath returns the path to ~/.liftsearch.json
func GetDefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".liftsearch.json"), nil
}

// Load reads the configuration from the default path.
func Load() (*Config, error) {
	configPath, err := GetDefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadOrCreate reads the configuration at path, writing the defaults there
// first if the file does not exist yet. Environment overrides are applied
// to the returned config but never saved.
func LoadOrCreate(path string) (*Config, error) {
	cfg, err := LoadFrom(path)

	var notFound *ConfigNotFoundError
	if errors.As(err, &notFound) {
		cfg = NewConfig()
		if err := Save(cfg, path); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from LIFTSEARCH_* environment variables.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvCatalog); ok {
		c.Catalog.Source = v
	}
	if v, ok := os.LookupEnv(EnvStorePath); ok && v != "" {
		c.Storage.Path = v
	}
	if v, ok := os.LookupEnv(EnvLearning); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvLearning, v, err)
		}
		c.Learning.Enabled = enabled
	}
	return nil
}

// CatalogTimeout returns the catalog fetch timeout.
func (c *Config) CatalogTimeout() time.Duration {
	return time.Duration(c.Catalog.TimeoutSeconds) * time.Second
}

// StoragePath returns the storage path with "~/" expanded.
func (c *Config) StoragePath() (string, error) {
	return ExpandPath(c.Storage.Path)
}

// ExpandPath expands a leading "~/" to the home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
