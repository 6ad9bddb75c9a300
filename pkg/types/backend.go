package types

import (
	"errors"
	"fmt"
)

// Backend is a flat, synchronous key-value store with a fixed byte capacity
// and no isolation between keys: a write to one key cannot be rolled back if
// a later write to another key fails. Implementations must be safe to call
// from a single goroutine; the store does not coordinate concurrent writers.
type Backend interface {
	// Get returns the value for key. ok is false when the key is absent;
	// absence is not an error.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key, overwriting any existing value.
	// Returns a write-category error when the backend cannot accept the
	// value (capacity exceeded, I/O failure).
	Set(key, value string) error

	// Remove deletes the key. Removing an absent key is not an error.
	Remove(key string) error

	// Capacity returns the nominal capacity of the backend in bytes.
	Capacity() int64

	// Close releases backend resources. Idempotent.
	Close() error
}

// DefaultCapacity is the nominal backend capacity in bytes (~5 MiB), the
// ceiling the store's stats report against when a backend has no harder
// limit of its own.
const DefaultCapacity int64 = 5 << 20

// Backend failure categories.
var (
	// ErrWriteFailed marks backend write failures. Matched by WriteError
	// via errors.Is.
	ErrWriteFailed = errors.New("backend write failed")

	// ErrParse marks transport strings that are not valid encoded data.
	// Matched by ParseError via errors.Is.
	ErrParse = errors.New("malformed transport data")

	// ErrCapacityExceeded is returned (wrapped in a WriteError) when a
	// write would push the backend past its capacity.
	ErrCapacityExceeded = errors.New("backend capacity exceeded")
)

// WriteError reports a failed backend write, identifying the key involved.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing key %q: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Is reports ErrWriteFailed so callers can match the category without
// knowing the concrete type.
func (e *WriteError) Is(target error) bool { return target == ErrWriteFailed }

// ParseError reports a transport string that failed to decode. Callers
// inside the store interpret it as "treat as corrupt" and hand control to
// recovery; it is never propagated raw to callers of the public API.
type ParseError struct {
	Key string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing value of key %q: %v", e.Key, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }
