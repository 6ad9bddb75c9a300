// Package sqlitekv implements the key-value backend on top of a
// single-table SQLite database. One row per key; values are the transport
// strings produced by the store's codec.
package sqlitekv

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS kv (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// Compile-time interface check: Backend must implement types.Backend.
var _ types.Backend = (*Backend)(nil)

// Backend is a SQLite-backed types.Backend. The database file lives at
// <dataDir>/satchel.db.
type Backend struct {
	db       *sql.DB
	capacity int64
}

// New opens (creating if needed) the backend database under dataDir.
func New(dataDir string) (*Backend, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "satchel.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &Backend{db: db, capacity: types.DefaultCapacity}, nil
}

// Get returns the value for key; ok is false when absent.
func (b *Backend) Get(key string) (string, bool, error) {
	var value string
	err := b.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading key %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, overwriting any existing row.
func (b *Backend) Set(key, value string) error {
	_, err := b.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storing key %q: %w", key, err)
	}
	return nil
}

// Remove deletes the key. Removing an absent key is a no-op.
func (b *Backend) Remove(key string) error {
	if _, err := b.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("removing key %q: %w", key, err)
	}
	return nil
}

// Capacity returns the nominal capacity in bytes. SQLite imposes no hard
// ceiling of its own; the default mirrors the flat-store limit callers
// size against.
func (b *Backend) Capacity() int64 { return b.capacity }

// Close closes the database. Idempotent.
func (b *Backend) Close() error { return b.db.Close() }
