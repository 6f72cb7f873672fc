package config

import (
	"fmt"
	"strings"
)

// PermissionError is returned when the config file or its directory cannot
// be read or written.
type PermissionError struct {
	Path    string
	Op      string // "read" or "write"
	Fix     string // Suggested fix command
	Details string // Additional context
}

func (e *PermissionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "permission denied (cannot %s config): %s\n", e.Op, e.Path)
	if e.Details != "" {
		b.WriteString(e.Details + "\n")
	}
	b.WriteString(hint("Fix: " + e.Fix))
	return b.String()
}

// ConfigNotFoundError is returned by LoadFrom for a missing file.
// LoadOrCreate treats it as a first run.
type ConfigNotFoundError struct {
	Path string
	Hint string
}

func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("config file not found: %s\n\n%s", e.Path, hint(e.Hint))
}

// InvalidConfigError is returned for malformed JSON or unusable values.
type InvalidConfigError struct {
	Path    string
	Message string
	Hint    string
}

func (e *InvalidConfigError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid config: %s\n", e.Path)
	if e.Message != "" {
		b.WriteString(e.Message + "\n")
	}
	if e.Hint != "" {
		b.WriteString(hint(e.Hint))
	}
	return b.String()
}

func hint(s string) string {
	return "💡 " + s
}
