// Package memkv implements an in-memory key-value backend with an enforced
// byte capacity. It is the default backend for tests and throwaway stores,
// and offers deterministic fault injection for exercising write failures.
package memkv

import (
	"fmt"
	"sync"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Compile-time interface check: Backend must implement types.Backend.
var _ types.Backend = (*Backend)(nil)

// Backend is an in-memory types.Backend. Safe for concurrent use.
type Backend struct {
	mu       sync.Mutex
	capacity int64
	used     int64
	items    map[string]string
	failSet  error
}

// New creates an in-memory backend. A non-positive capacity falls back to
// types.DefaultCapacity.
func New(capacity int64) *Backend {
	if capacity <= 0 {
		capacity = types.DefaultCapacity
	}
	return &Backend{
		capacity: capacity,
		items:    make(map[string]string),
	}
}

// Get returns the value for key; ok is false when absent.
func (b *Backend) Get(key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.items[key]
	return v, ok, nil
}

// Set stores value under key. Returns ErrCapacityExceeded (wrapped) when
// the write would push total stored bytes past the capacity, or the
// injected error when FailNextSet was armed.
func (b *Backend) Set(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failSet != nil {
		err := b.failSet
		b.failSet = nil
		return err
	}

	delta := int64(len(value)) - int64(len(b.items[key]))
	if _, ok := b.items[key]; !ok {
		delta += int64(len(key))
	}
	if b.used+delta > b.capacity {
		return fmt.Errorf("storing %d bytes under %q: %w", len(value), key, types.ErrCapacityExceeded)
	}

	b.items[key] = value
	b.used += delta
	return nil
}

// Remove deletes the key. Removing an absent key is a no-op.
func (b *Backend) Remove(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if v, ok := b.items[key]; ok {
		b.used -= int64(len(key) + len(v))
		delete(b.items, key)
	}
	return nil
}

// Capacity returns the configured capacity in bytes.
func (b *Backend) Capacity() int64 { return b.capacity }

// Close is a no-op.
func (b *Backend) Close() error { return nil }

// FailNextSet arms the backend to fail the next Set call with err, then
// resume normal operation. Test hook.
func (b *Backend) FailNextSet(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failSet = err
}

// Len returns the number of stored keys. Test hook.
func (b *Backend) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}
