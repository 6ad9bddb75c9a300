package cli

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/satchel/pkg/backend"
	"github.com/mesh-intelligence/satchel/pkg/store"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// openStore resolves directories and configuration, opens the configured
// backend, and builds a profile store over it. The caller must invoke the
// returned cleanup function.
func openStore() (types.Store, func(), error) {
	_, dataDir, v, err := resolveDirs()
	if err != nil {
		return nil, nil, err
	}

	kv, err := backend.New(types.Config{
		Backend: v.GetString(cfgKeyBackend),
		DataDir: dataDir,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open backend: %w", err)
	}

	s := store.New(kv, optionsFromConfig(v), nil)
	return s, func() { kv.Close() }, nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
