package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFromEnhancedErrors(t *testing.T) {
	t.Run("file not found", func(t *testing.T) {
		testPath := filepath.Join(t.TempDir(), "nonexistent.json")

		_, err := LoadFrom(testPath)
		if err == nil {
			t.Fatal("LoadFrom should error for nonexistent file")
		}

		var notFound *ConfigNotFoundError
		if !errors.As(err, &notFound) {
			t.Errorf("expected ConfigNotFoundError, got %T", err)
		}
		if !strings.Contains(err.Error(), "config file not found") {
			t.Errorf("error should mention file not found, got: %v", err)
		}
		if !strings.Contains(err.Error(), "💡") {
			t.Errorf("error should contain helpful hint, got: %v", err)
		}
	})

	t.Run("permission denied", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("root ignores file permissions")
		}

		testPath := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(testPath, []byte(`{}`), 0000); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}
		defer os.Chmod(testPath, 0644)

		_, err := LoadFrom(testPath)
		if err == nil {
			t.Fatal("LoadFrom should error for permission denied")
		}
		if !strings.Contains(err.Error(), "permission denied") {
			t.Errorf("error should mention permission denied, got: %v", err)
		}
		if !strings.Contains(err.Error(), "chmod 644") {
			t.Errorf("error should suggest chmod fix, got: %v", err)
		}
	})

	t.Run("invalid JSON without backup", func(t *testing.T) {
		testPath := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(testPath, []byte("{\n  \"storage\": {invalid}\n}"), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		_, err := LoadFrom(testPath)
		if err == nil {
			t.Fatal("LoadFrom should error for invalid JSON")
		}
		if !strings.Contains(err.Error(), "line 2") {
			t.Errorf("error should locate the syntax error, got: %v", err)
		}
		if !strings.Contains(err.Error(), "recreate the defaults") {
			t.Errorf("error should suggest recreating defaults, got: %v", err)
		}
	})

	t.Run("invalid JSON with good backup", func(t *testing.T) {
		testPath := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(testPath, []byte(`{invalid json}`), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}
		if err := os.WriteFile(testPath+".bak", []byte(`{}`), 0644); err != nil {
			t.Fatalf("failed to create backup: %v", err)
		}

		_, err := LoadFrom(testPath)
		if err == nil || !strings.Contains(err.Error(), "cp "+testPath+".bak") {
			t.Errorf("error should suggest restoring the backup, got: %v", err)
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		testPath := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(testPath, []byte(`{"storage": {"backend": "redis"}}`), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		_, err := LoadFrom(testPath)
		var invalid *InvalidConfigError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidConfigError, got %v", err)
		}
		if !strings.Contains(invalid.Message, "redis") {
			t.Errorf("error should name the bad backend, got: %v", err)
		}
		if !strings.Contains(invalid.Hint, "storage") {
			t.Errorf("hint should explain the storage setting, got: %q", invalid.Hint)
		}
	})
}

func TestLoadFromKeepsDefaults(t *testing.T) {
	testPath := filepath.Join(t.TempDir(), "config.json")

	// Only one section present
	if err := os.WriteFile(testPath, []byte(`{"catalog": {"source": "exercises.yaml"}}`), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	cfg, err := LoadFrom(testPath)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Catalog.Source != "exercises.yaml" {
		t.Errorf("expected source 'exercises.yaml', got %q", cfg.Catalog.Source)
	}
	if cfg.Catalog.TimeoutSeconds != 10 {
		t.Errorf("expected default timeout 10, got %d", cfg.Catalog.TimeoutSeconds)
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("expected default backend, got %q", cfg.Storage.Backend)
	}
	if !cfg.Learning.Enabled {
		t.Error("expected learning enabled by default")
	}
}

func TestLoadFromValidConfig(t *testing.T) {
	testPath := filepath.Join(t.TempDir(), "config.json")

	validJSON := `{
		"catalog": {"source": "https://example.com/exercises.json", "timeoutSeconds": 5},
		"storage": {"backend": "memory"},
		"learning": {"enabled": false, "learnAliases": false}
	}`

	if err := os.WriteFile(testPath, []byte(validJSON), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	cfg, err := LoadFrom(testPath)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Catalog.TimeoutSeconds != 5 {
		t.Errorf("expected TimeoutSeconds 5, got %d", cfg.Catalog.TimeoutSeconds)
	}
	if cfg.Storage.Backend != "memory" {
		t.Errorf("expected backend 'memory', got %q", cfg.Storage.Backend)
	}
	if cfg.Learning.Enabled || cfg.Learning.LearnAliases {
		t.Errorf("expected learning disabled, got %+v", cfg.Learning)
	}
}
