package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestAtomicWrite(t *testing.T) {
	testPath := filepath.Join(t.TempDir(), "config.json")

	data := []byte(`{"test": "data"}`)
	if err := atomicWrite(testPath, data); err != nil {
		t.Fatalf("atomicWrite failed: %v", err)
	}

	leftovers, _ := filepath.Glob(filepath.Join(filepath.Dir(testPath), "*.tmp"))
	if len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}

	readData, err := os.ReadFile(testPath)
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	if string(readData) != string(data) {
		t.Errorf("content mismatch: got %q, want %q", string(readData), string(data))
	}
}

func TestAtomicWriteCreatesDir(t *testing.T) {
	testPath := filepath.Join(t.TempDir(), "subdir", "config.json")

	if err := atomicWrite(testPath, []byte(`{}`)); err != nil {
		t.Fatalf("atomicWrite failed: %v", err)
	}

	if _, err := os.Stat(testPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}
}

func TestBackupConfig(t *testing.T) {
	testPath := filepath.Join(t.TempDir(), "config.json")

	originalData := []byte(`{"original": true}`)
	if err := os.WriteFile(testPath, originalData, 0644); err != nil {
		t.Fatalf("failed to create original config: %v", err)
	}

	if err := backupConfig(testPath); err != nil {
		t.Fatalf("backupConfig failed: %v", err)
	}

	bakData, err := os.ReadFile(testPath + ".bak")
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	if string(bakData) != string(originalData) {
		t.Errorf("backup content mismatch: got %q, want %q", string(bakData), string(originalData))
	}
}

func TestBackupConfigFirstRun(t *testing.T) {
	testPath := filepath.Join(t.TempDir(), "config.json")

	if err := backupConfig(testPath); err != nil {
		t.Fatalf("backupConfig failed on first run: %v", err)
	}

	if _, err := os.Stat(testPath + ".bak"); !os.IsNotExist(err) {
		t.Error("backup should not exist on first run")
	}
}

func TestBackupConfigKeepsLastGood(t *testing.T) {
	testPath := filepath.Join(t.TempDir(), "config.json")

	good := []byte(`{"storage": {"backend": "badger"}}`)
	if err := os.WriteFile(testPath+".bak", good, 0644); err != nil {
		t.Fatalf("failed to write backup: %v", err)
	}

	tests := []struct {
		name    string
		current string
	}{
		{"broken JSON", `{"storage": `},
		{"unknown backend", `{"storage": {"backend": "redis"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.WriteFile(testPath, []byte(tt.current), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			if err := backupConfig(testPath); err != nil {
				t.Fatalf("backupConfig failed: %v", err)
			}

			bakData, _ := os.ReadFile(testPath + ".bak")
			if string(bakData) != string(good) {
				t.Errorf("backup was overwritten with %q", string(bakData))
			}
		})
	}
}

func TestDecodeConfig(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantErr   bool
		wantField string
	}{
		{"valid config", `{"storage": {"backend": "sqlite"}}`, false, ""},
		{"empty object keeps defaults", `{}`, false, ""},
		{"unknown backend", `{"storage": {"backend": "redis"}}`, false, "storage.backend"},
		{"negative timeout", `{"catalog": {"timeoutSeconds": -1}}`, false, "catalog.timeoutSeconds"},
		{"unsupported catalog file", `{"catalog": {"source": "exercises.csv"}}`, false, "catalog.source"},
		{"invalid JSON", `{invalid json}`, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := decodeConfig([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}

			err = Validate(cfg)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("unexpected validation error: %v", err)
				}
				return
			}
			fe, ok := err.(*FieldError)
			if !ok || fe.Field != tt.wantField {
				t.Errorf("expected FieldError on %s, got %v", tt.wantField, err)
			}
		})
	}
}

func TestSaveCreatesBackup(t *testing.T) {
	testPath := filepath.Join(t.TempDir(), "config.json")

	cfg := NewConfig()
	cfg.Catalog.Source = "old.json"
	if err := Save(cfg, testPath); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	cfg.Catalog.Source = "new.json"
	if err := Save(cfg, testPath); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	bakData, err := os.ReadFile(testPath + ".bak")
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	if !strings.Contains(string(bakData), `"old.json"`) || strings.Contains(string(bakData), `"new.json"`) {
		t.Error("backup should contain old config, not new config")
	}
}

func TestSaveValidatesBeforeWrite(t *testing.T) {
	testPath := filepath.Join(t.TempDir(), "config.json")

	cfg := NewConfig()
	cfg.Storage.Backend = "redis"

	err := Save(cfg, testPath)
	if err == nil {
		t.Fatal("Save should fail validation for unknown backend")
	}
	if !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("error should mention invalid config, got: %v", err)
	}
	if !strings.Contains(err.Error(), `"backend": "sqlite"`) {
		t.Errorf("error should carry the storage.backend hint, got: %v", err)
	}

	if _, err := os.Stat(testPath); !os.IsNotExist(err) {
		t.Error("config file should not exist after failed validation")
	}
}

func TestSaveReadOnlyFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}

	testPath := filepath.Join(t.TempDir(), "readonly-save.json")
	os.WriteFile(testPath, []byte(`{}`), 0444)
	defer os.Chmod(testPath, 0644)

	err := Save(NewConfig(), testPath)
	if err == nil {
		t.Fatal("Save should error for read-only file")
	}
	if !strings.Contains(err.Error(), "permission denied") || !strings.Contains(err.Error(), "💡 Fix:") {
		t.Errorf("error should mention permission with a fix, got: %v", err)
	}
}

func TestSaveConcurrentWrites(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping concurrent write test in short mode")
	}

	testPath := filepath.Join(t.TempDir(), "config.json")

	const numGoroutines = 10
	var wg sync.WaitGroup
	errs := make(chan error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			cfg := NewConfig()
			cfg.Catalog.Source = "catalog-" + string(rune('0'+idx)) + ".json"
			if err := Save(cfg, testPath); err != nil {
				errs <- err
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	// Some failures are expected when renames race
	for err := range errs {
		t.Logf("concurrent save error: %v", err)
	}

	// Critical: verify final file is valid JSON (not corrupted)
	data, err := os.ReadFile(testPath)
	if err != nil {
		t.Fatalf("failed to read config after concurrent writes: %v", err)
	}
	cfg, err := decodeConfig(data)
	if err != nil {
		t.Fatalf("config file is corrupted after concurrent writes: %v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("config file is invalid after concurrent writes: %v", err)
	}

	leftovers, _ := filepath.Glob(filepath.Join(filepath.Dir(testPath), "*.tmp"))
	if len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}
}
