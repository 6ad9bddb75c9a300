// Package backend provides the public factory for key-value backends.
// Implementation details stay internal; callers select a backend by name
// through types.Config.
package backend

import (
	"github.com/mesh-intelligence/satchel/internal/badgerkv"
	"github.com/mesh-intelligence/satchel/internal/memkv"
	"github.com/mesh-intelligence/satchel/internal/sqlitekv"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// New creates the backend described by config.
//
// Example:
//
//	kv, err := backend.New(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".satchel-db",
//	})
//	defer kv.Close()
func New(config types.Config) (types.Backend, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	switch config.Backend {
	case types.BackendMemory:
		return memkv.New(types.DefaultCapacity), nil
	case types.BackendSQLite:
		return sqlitekv.New(config.DataDir)
	case types.BackendBadger:
		return badgerkv.New(config.DataDir)
	default:
		// Validate rejects unknown names; keep the compiler honest.
		return nil, types.ErrBackendUnknown
	}
}
