package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("Default backend should be sqlite, got %q", cfg.Storage.Backend)
	}

	if cfg.Catalog.TimeoutSeconds != 10 {
		t.Errorf("Default TimeoutSeconds should be 10, got %d", cfg.Catalog.TimeoutSeconds)
	}

	if !cfg.Learning.Enabled || !cfg.Learning.LearnAliases {
		t.Error("Learning should be enabled by default")
	}

	if cfg.CatalogTimeout() != 10*time.Second {
		t.Errorf("CatalogTimeout should be 10s, got %v", cfg.CatalogTimeout())
	}
}

func TestSaveAndLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".liftsearch.json")

	cfg := NewConfig()
	cfg.Catalog.Source = "https://example.com/exercises.json"
	cfg.Storage.Backend = "badger"
	cfg.Storage.Path = "/tmp/liftsearch-badger"
	cfg.Learning.LearnAliases = false

	if err := Save(cfg, configPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if loaded.Catalog.Source != cfg.Catalog.Source {
		t.Errorf("Expected source %q, got %q", cfg.Catalog.Source, loaded.Catalog.Source)
	}
	if loaded.Storage.Backend != "badger" {
		t.Errorf("Expected backend 'badger', got %q", loaded.Storage.Backend)
	}
	if loaded.Storage.Path != "/tmp/liftsearch-badger" {
		t.Errorf("Expected path '/tmp/liftsearch-badger', got %q", loaded.Storage.Path)
	}
	if !loaded.Learning.Enabled || loaded.Learning.LearnAliases {
		t.Errorf("Unexpected learning settings: %+v", loaded.Learning)
	}
}

func TestLoadNonExistent(t *testing.T) {
	_, err := LoadFrom("/nonexistent/path/config.json")
	if err == nil {
		t.Error("LoadFrom should fail for non-existent file")
	}
}

func TestLoadOrCreate(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", ".liftsearch.json")

	cfg, err := LoadOrCreate(configPath)
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("Expected default backend, got %q", cfg.Storage.Backend)
	}
	if _, err := os.Stat(configPath); err != nil {
		t.Errorf("Expected config file to be created: %v", err)
	}

	// Second call loads the saved file.
	if _, err := LoadOrCreate(configPath); err != nil {
		t.Fatalf("LoadOrCreate on existing file failed: %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvCatalog, "/data/exercises.yaml")
	t.Setenv(EnvStorePath, "/data/state.db")
	t.Setenv(EnvLearning, "false")

	cfg := NewConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	if cfg.Catalog.Source != "/data/exercises.yaml" {
		t.Errorf("Expected catalog override, got %q", cfg.Catalog.Source)
	}
	if cfg.Storage.Path != "/data/state.db" {
		t.Errorf("Expected store path override, got %q", cfg.Storage.Path)
	}
	if cfg.Learning.Enabled {
		t.Error("Expected learning to be disabled")
	}
}

func TestApplyEnvInvalidLearning(t *testing.T) {
	t.Setenv(EnvLearning, "sometimes")

	err := NewConfig().ApplyEnv()
	if err == nil || !strings.Contains(err.Error(), EnvLearning) {
		t.Errorf("Expected error naming %s, got %v", EnvLearning, err)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~/.liftsearch/state.db", filepath.Join(home, ".liftsearch", "state.db")},
		{"~", home},
		{"/abs/state.db", "/abs/state.db"},
		{"relative/state.db", "relative/state.db"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandPath(tt.in)
			if err != nil {
				t.Fatalf("ExpandPath failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"memory backend", func(c *Config) { c.Storage.Backend = "memory" }, ""},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "postgres" }, "storage.backend"},
		{"empty backend", func(c *Config) { c.Storage.Backend = "" }, "storage.backend"},
		{"zero timeout", func(c *Config) { c.Catalog.TimeoutSeconds = 0 }, "timeoutSeconds"},
		{"catalog url", func(c *Config) { c.Catalog.Source = "http://example.com/list" }, ""},
		{"catalog yaml", func(c *Config) { c.Catalog.Source = "~/exercises.YML" }, ""},
		{"catalog csv", func(c *Config) { c.Catalog.Source = "exercises.csv" }, "catalog.source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.modify(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
