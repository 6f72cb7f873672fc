package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
)

// LoadFrom reads config with enhanced error handling. Keys missing from
// the file keep their defaults.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &ConfigNotFoundError{
				Path: path,
				Hint: "Run any liftsearch command to create a default configuration",
			}
		}
		return nil, fmt.Errorf("failed to access config: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, &PermissionError{
				Path:    path,
				Op:      "read",
				Fix:     getReadPermissionFix(path),
				Details: getPermissionDetails(path),
			}
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := decodeConfig(data)
	if err != nil {
		return nil, &InvalidConfigError{
			Path:    path,
			Message: parseMessage(data, err),
			Hint:    recoveryHint(path),
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, &InvalidConfigError{
			Path:    path,
			Message: err.Error(),
			Hint:    fieldHint(err, recoveryHint(path)),
		}
	}

	return cfg, nil
}

// decodeConfig overlays data on the defaults.
func decodeConfig(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseMessage locates a JSON syntax error by line.
func parseMessage(data []byte, err error) string {
	var syntax *json.SyntaxError
	if errors.As(err, &syntax) {
		line := 1 + bytes.Count(data[:min(int(syntax.Offset), len(data))], []byte("\n"))
		return fmt.Sprintf("JSON parse error on line %d: %v", line, err)
	}
	return fmt.Sprintf("JSON parse error: %v", err)
}

// recoveryHint points at the last good backup when one exists.
func recoveryHint(path string) string {
	if data, err := os.ReadFile(path + ".bak"); err == nil {
		if cfg, err := decodeConfig(data); err == nil && Validate(cfg) == nil {
			return fmt.Sprintf("Restore the last good config: cp %s.bak %s", path, path)
		}
	}
	return fmt.Sprintf("Delete %s to recreate the defaults (learning state is kept in storage.path)", path)
}

// getReadPermissionFix returns platform-specific fix command
func getReadPermissionFix(path string) string {
	switch runtime.GOOS {
	case "windows":
		return fmt.Sprintf("Right-click %s → Properties → Security → Edit permissions", path)
	default:
		return fmt.Sprintf("Run: chmod 644 %s", path)
	}
}

func getPermissionDetails(path string) string {
	if runtime.GOOS == "windows" {
		return ""
	}

	info, err := os.Stat(path)
	if err != nil {
		return ""
	}

	return fmt.Sprintf("Current permissions: %04o", info.Mode().Perm())
}
