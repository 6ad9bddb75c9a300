// Package store provides the public factory for the Satchel profile store.
package store

import (
	"log/slog"

	internal "github.com/mesh-intelligence/satchel/internal/store"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// New creates a profile store over the given backend. A nil logger falls
// back to slog.Default().
//
// Example:
//
//	kv, _ := backend.New(types.Config{Backend: types.BackendMemory})
//	ps := store.New(kv, types.DefaultOptions(), nil)
//	err := ps.Save(&types.Profile{Name: "Ravenwood"})
func New(backend types.Backend, opts types.Options, logger *slog.Logger) types.Store {
	return internal.New(backend, opts, logger)
}
