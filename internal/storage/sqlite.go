/*
Package storage provides SQLite database migrations.

This file contains schema definitions and the migration runner for the
collection store.
*/
package storage

import (
	"fmt"
	"log"
)

// runMigrations executes database schema migrations.
func (s *SQLiteStorage) runMigrations() error {
	if !s.enabled || s.db == nil {
		return nil
	}

	if err := s.createMigrationsTable(); err != nil {
		return err
	}

	version, err := s.getCurrentMigrationVersion()
	if err != nil {
		return err
	}

	// Run migrations in order
	migrations := []migration{
		{version: 1, name: "collections", up: s.migration001Collections},
	}

	for _, m := range migrations {
		if version < m.version {
			log.Printf("Running migration %d: %s", m.version, m.name)
			if err := m.up(); err != nil {
				return fmt.Errorf("migration %d failed: %w", m.version, err)
			}
			if err := s.setMigrationVersion(m.version, m.name); err != nil {
				return err
			}
		}
	}

	return nil
}

// migration represents a single database migration.
type migration struct {
	version int
	name    string
	up      func() error
}

// createMigrationsTable creates the schema_migrations table.
func (s *SQLiteStorage) createMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`
	_, err := s.db.Exec(query)
	return err
}

// getCurrentMigrationVersion returns the highest applied migration version.
func (s *SQLiteStorage) getCurrentMigrationVersion() (int, error) {
	query := "SELECT COALESCE(MAX(version), 0) FROM schema_migrations"
	row := s.db.QueryRow(query)

	var version int
	if err := row.Scan(&version); err != nil {
		return 0, err
	}

	return version, nil
}

// setMigrationVersion records a migration as applied.
func (s *SQLiteStorage) setMigrationVersion(version int, name string) error {
	query := "INSERT INTO schema_migrations (version, name) VALUES (?, ?)"
	_, err := s.db.Exec(query, version, name)
	return err
}

// migration001Collections creates the key-addressed collection table.
func (s *SQLiteStorage) migration001Collections() error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS collections (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create collections table: %w", err)
	}

	return nil
}
