package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
)

// Save validates cfg, backs up the current file when it is still a usable
// config, and replaces it atomically.
func Save(cfg *Config, path string) error {
	if err := Validate(cfg); err != nil {
		return &InvalidConfigError{
			Path:    path,
			Message: err.Error(),
			Hint:    fieldHint(err, "Check storage and catalog settings and try again"),
		}
	}

	if err := checkWritePermission(path); err != nil {
		return err
	}

	if err := backupConfig(path); err != nil {
		log.Printf("Warning: failed to back up %s: %v", path, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return atomicWrite(path, append(data, '\n'))
}

// backupConfig copies path to path.bak. A file that no longer decodes or
// validates is not backed up, so .bak keeps the last good config.
func backupConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	cfg, err := decodeConfig(data)
	if err != nil || Validate(cfg) != nil {
		log.Printf("Warning: %s is not a valid config, keeping previous backup", path)
		return nil
	}

	return os.WriteFile(path+".bak", data, 0644)
}

// atomicWrite writes data to a uniquely named temp file in the target
// directory and renames it over path.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// checkWritePermission verifies we can write to the config path
func checkWritePermission(path string) error {
	dir := filepath.Dir(path)

	if err := checkDirectoryWritable(dir); err != nil {
		return &PermissionError{
			Path:    dir,
			Op:      "write",
			Fix:     getWritePermissionFix(dir),
			Details: "Cannot write to config directory",
		}
	}

	if _, err := os.Stat(path); err == nil {
		if err := checkFileWritable(path); err != nil {
			return &PermissionError{
				Path:    path,
				Op:      "write",
				Fix:     getWritePermissionFix(path),
				Details: "Config file is read-only; 'liftsearch learning enable|disable' cannot persist",
			}
		}
	}

	return nil
}

// checkDirectoryWritable creates dir if needed and probes it with a
// scratch file.
func checkDirectoryWritable(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmpFile := filepath.Join(dir, ".write-test-"+uuid.NewString()[:8])
	f, err := os.Create(tmpFile)
	if err != nil {
		return err
	}
	f.Close()
	os.Remove(tmpFile)
	return nil
}

func checkFileWritable(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	f.Close()
	return nil
}

func getWritePermissionFix(path string) string {
	switch runtime.GOOS {
	case "windows":
		return fmt.Sprintf("Right-click %s → Properties → Security → Grant 'Write' permission", path)
	default:
		return fmt.Sprintf("Run: chmod u+w %s", path)
	}
}
