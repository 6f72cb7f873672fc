package storage

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStorage implements the Storage interface on a Badger LSM store.
type BadgerStorage struct {
	db       *badger.DB
	dir      string
	inMemory bool
	enabled  bool
	initOnce sync.Once
}

// NewBadgerStorage creates a Badger-backed storage rooted at dir.
func NewBadgerStorage(dir string) *BadgerStorage {
	return &BadgerStorage{dir: dir, enabled: true}
}

// NewBadgerMemoryStorage creates a Badger store that never touches disk.
func NewBadgerMemoryStorage() *BadgerStorage {
	return &BadgerStorage{inMemory: true, enabled: true}
}

// Init opens the Badger database.
//
// If opening fails, storage is disabled and operations become no-ops.
func (b *BadgerStorage) Init() error {
	if !b.enabled {
		return nil
	}

	var initErr error
	b.initOnce.Do(func() {
		var opts badger.Options
		if b.inMemory {
			opts = badger.DefaultOptions("").WithInMemory(true)
		} else {
			if err := os.MkdirAll(b.dir, 0755); err != nil {
				initErr = fmt.Errorf("failed to create badger directory: %w", err)
				b.enabled = false
				return
			}
			opts = badger.DefaultOptions(b.dir)
		}
		opts = opts.WithLogger(nil)

		db, err := badger.Open(opts)
		if err != nil {
			initErr = fmt.Errorf("failed to open badger: %w", err)
			b.enabled = false
			log.Printf("Warning: %v", initErr)
			return
		}
		b.db = db
	})

	return initErr
}

// Get returns the raw value stored under key, or nil if absent.
func (b *BadgerStorage) Get(key string) ([]byte, error) {
	if !b.enabled || b.db == nil {
		return nil, nil
	}

	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	return value, nil
}

// Put replaces the value stored under key.
func (b *BadgerStorage) Put(key string, value []byte) error {
	if !b.enabled || b.db == nil {
		return nil
	}

	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (b *BadgerStorage) Delete(key string) error {
	if !b.enabled || b.db == nil {
		return nil
	}

	err := b.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Keys lists every stored key in lexical order.
func (b *BadgerStorage) Keys() ([]string, error) {
	if !b.enabled || b.db == nil {
		return []string{}, nil
	}

	keys := []string{}
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	sort.Strings(keys)
	return keys, nil
}

// Close closes the Badger database.
func (b *BadgerStorage) Close() error {
	if !b.enabled || b.db == nil {
		return nil
	}

	if err := b.db.Close(); err != nil {
		return fmt.Errorf("failed to close badger: %w", err)
	}
	b.db = nil
	return nil
}
