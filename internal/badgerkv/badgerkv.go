// Package badgerkv implements the key-value backend on BadgerDB, an
// embedded LSM store with low-latency access. Suited to stores that outgrow
// a single SQLite file or need faster key lookups.
package badgerkv

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Compile-time interface check: Backend must implement types.Backend.
var _ types.Backend = (*Backend)(nil)

// Backend is a BadgerDB-backed types.Backend.
type Backend struct {
	db       *badger.DB
	capacity int64
}

// New opens (creating if needed) a Badger database under dataDir. Badger's
// own logging is disabled; the store layer reports failures it cares about.
func New(dataDir string) (*Backend, error) {
	opts := badger.DefaultOptions(dataDir).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &Backend{db: db, capacity: types.DefaultCapacity}, nil
}

// NewInMemory opens a Badger database with no disk persistence. Useful for
// tests.
func NewInMemory() (*Backend, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory badger database: %w", err)
	}
	return &Backend{db: db, capacity: types.DefaultCapacity}, nil
}

// Get returns the value for key; ok is false when absent.
func (b *Backend) Get(key string) (string, bool, error) {
	var value string
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading key %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key.
func (b *Backend) Set(key, value string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("storing key %q: %w", key, err)
	}
	return nil
}

// Remove deletes the key. Removing an absent key is a no-op.
func (b *Backend) Remove(key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("removing key %q: %w", key, err)
	}
	return nil
}

// Capacity returns the nominal capacity in bytes.
func (b *Backend) Capacity() int64 { return b.capacity }

// Close closes the database.
func (b *Backend) Close() error { return b.db.Close() }
