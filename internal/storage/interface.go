/*
Package storage implements the durable key-value boundary for learning state.

Each persisted collection (aliases, usage statistics, query affinity, user
exercises) lives under its own key and is loaded whole and rewritten whole.
The default backend is SQLite via modernc.org/sqlite (a pure Go, CGo-free
implementation) at ~/.liftsearch/state.db. Badger and an in-memory map are
available as alternatives.

All backends degrade gracefully: if the database cannot be opened, storage
is disabled and operations become no-ops instead of failing the caller.
*/
package storage

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// Collection keys.
const (
	KeyAliases       = "aliases"
	KeyUsage         = "usage"
	KeyAffinity      = "affinity"
	KeyUserExercises = "user_exercises"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// Storage defines the interface for persistent storage operations.
type Storage interface {
	// Init opens the backend and runs migrations.
	Init() error

	// Get returns the raw value stored under key, or nil if absent.
	Get(key string) ([]byte, error)

	// Put replaces the value stored under key.
	Put(key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	// Keys lists every stored key.
	Keys() ([]string, error)

	// Close releases the backend.
	Close() error
}

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db       *sql.DB
	dbPath   string
	enabled  bool
	mu       sync.Mutex
	initOnce sync.Once
}

// DefaultPath returns ~/.liftsearch/state.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".liftsearch", "state.db"), nil
}

// NewStorage creates a new SQLite storage instance at the default path.
//
// If the home directory cannot be resolved the storage is disabled but
// operations will not fail.
func NewStorage() *SQLiteStorage {
	dbPath, err := DefaultPath()
	if err != nil {
		log.Printf("Warning: %v", err)
		return &SQLiteStorage{enabled: false}
	}
	return NewSQLiteStorage(dbPath)
}

// NewSQLiteStorage creates a SQLite storage instance at dbPath.
func NewSQLiteStorage(dbPath string) *SQLiteStorage {
	return &SQLiteStorage{
		dbPath:  dbPath,
		enabled: true,
	}
}

// Open builds a storage backend by name. An empty path selects the
// default location for durable backends.
func Open(backend, path string) (Storage, error) {
	switch backend {
	case "", BackendSQLite:
		if path == "" {
			return NewStorage(), nil
		}
		return NewSQLiteStorage(path), nil
	case BackendBadger:
		if path == "" {
			p, err := DefaultPath()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(filepath.Dir(p), "badger")
		}
		return NewBadgerStorage(path), nil
	case BackendMemory:
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}

// Init initializes the database and runs migrations.
//
// If initialization fails, storage is disabled and subsequent operations
// become no-ops (graceful degradation).
func (s *SQLiteStorage) Init() error {
	if !s.enabled {
		return nil
	}

	var initErr error
	s.initOnce.Do(func() {
		// Ensure directory exists
		dbDir := filepath.Dir(s.dbPath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			initErr = fmt.Errorf("failed to create db directory: %w", err)
			s.enabled = false
			return
		}

		db, err := sql.Open("sqlite", s.dbPath)
		if err != nil {
			initErr = fmt.Errorf("failed to open database: %w", err)
			s.enabled = false
			log.Printf("Warning: %v", initErr)
			return
		}
		s.db = db

		if err := db.Ping(); err != nil {
			initErr = fmt.Errorf("failed to ping database: %w", err)
			s.enabled = false
			log.Printf("Warning: %v", initErr)
			return
		}

		if err := s.runMigrations(); err != nil {
			initErr = fmt.Errorf("failed to run migrations: %w", err)
			s.enabled = false
			log.Printf("Warning: %v", initErr)
			return
		}
	})

	return initErr
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	s.db = nil
	return nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.dbPath
}
