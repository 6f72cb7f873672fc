package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Get returns the raw value stored under key, or nil if absent.
func (s *SQLiteStorage) Get(key string) ([]byte, error) {
	if !s.enabled || s.db == nil {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var value []byte
	err := s.db.QueryRow("SELECT value FROM collections WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	return value, nil
}

// Put replaces the value stored under key.
func (s *SQLiteStorage) Put(key string, value []byte) error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT OR REPLACE INTO collections (key, value, updated_at)
		VALUES (?, ?, ?)
	`

	if _, err := s.db.Exec(query, key, value, time.Now().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	return nil
}

// Delete removes key.
func (s *SQLiteStorage) Delete(key string) error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM collections WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	return nil
}

// Keys lists every stored key in lexical order.
func (s *SQLiteStorage) Keys() ([]string, error) {
	if !s.enabled || s.db == nil {
		return []string{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT key FROM collections ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}
