package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Backends accepted in storage.backend.
var validBackends = map[string]bool{
	"sqlite": true,
	"badger": true,
	"memory": true,
}

// Catalog file extensions the loader can decode.
var catalogExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// FieldError reports one setting the engine cannot use.
type FieldError struct {
	Field   string
	Message string
	Hint    string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate checks a configuration for values the engine cannot use. The
// returned error is a *FieldError.
func Validate(cfg *Config) error {
	if !validBackends[cfg.Storage.Backend] {
		return &FieldError{
			Field:   "storage.backend",
			Message: fmt.Sprintf("%q must be one of sqlite, badger, memory", cfg.Storage.Backend),
			Hint:    `Set "storage": {"backend": "sqlite"} to keep learning state in ~/.liftsearch/state.db`,
		}
	}

	if cfg.Catalog.TimeoutSeconds <= 0 {
		return &FieldError{
			Field:   "catalog.timeoutSeconds",
			Message: fmt.Sprintf("must be positive, got %d", cfg.Catalog.TimeoutSeconds),
			Hint:    `Use "timeoutSeconds": 10; the catalog is fetched once per session`,
		}
	}

	if src := strings.TrimSpace(cfg.Catalog.Source); src != "" && !isURL(src) {
		if !catalogExtensions[strings.ToLower(filepath.Ext(src))] {
			return &FieldError{
				Field:   "catalog.source",
				Message: fmt.Sprintf("%q is neither an http(s) URL nor a .json/.yaml/.yml file", src),
				Hint:    "Point catalog.source at a file written by 'liftsearch export --format json', or leave it empty for the built-in catalog",
			}
		}
	}

	return nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// fieldHint returns the hint carried by a validation error.
func fieldHint(err error, fallback string) string {
	if fe, ok := err.(*FieldError); ok && fe.Hint != "" {
		return fe.Hint
	}
	return fallback
}
