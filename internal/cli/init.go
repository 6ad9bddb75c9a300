package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/satchel/pkg/backend"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// configFile holds the structure written to config.yaml by init.
type configFile struct {
	Backend   string `yaml:"backend"`
	DataDir   string `yaml:"data_dir,omitempty"`
	Backup    bool   `yaml:"backup"`
	AutoSave  bool   `yaml:"auto_save"`
	Migration bool   `yaml:"migration"`
	Compress  bool   `yaml:"compress"`
}

func newInitCmd() *cobra.Command {
	var backendName string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize satchel storage",
		Long:  "Create configuration and data directories, then initialize the storage backend.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, backendName)
		},
	}
	cmd.Flags().StringVar(&backendName, "backend", defaultBackend, "storage backend (memory, sqlite, badger)")
	return cmd
}

func runInit(cmd *cobra.Command, backendName string) error {
	cfg := types.Config{Backend: backendName}
	if err := cfg.Validate(); err != nil && err != types.ErrDataDirEmpty {
		return exitError(exitUserError, fmt.Sprintf("invalid backend: %s", err))
	}

	configDir, dataDir, _, err := resolveDirs()
	if err != nil {
		return exitError(exitSysError, err.Error())
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return exitError(exitSysError, fmt.Sprintf("create data directory: %s", err))
	}
	if err := writeConfig(filepath.Join(configDir, configFileExt), backendName, dataDir); err != nil {
		return exitError(exitSysError, fmt.Sprintf("write config: %s", err))
	}

	// Open once to create backend files and verify the configuration.
	kv, err := backend.New(types.Config{Backend: backendName, DataDir: dataDir})
	if err != nil {
		return exitError(exitSysError, fmt.Sprintf("initialize storage: %s", err))
	}
	if err := kv.Close(); err != nil {
		return exitError(exitSysError, fmt.Sprintf("finalize storage: %s", err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Satchel initialized successfully")
	return nil
}

// writeConfig creates config.yaml with the chosen backend and defaults,
// overwriting the placeholder written by loadConfig on first run.
func writeConfig(path, backendName, dataDir string) error {
	cfg := configFile{
		Backend:   backendName,
		DataDir:   dataDir,
		Backup:    true,
		AutoSave:  true,
		Migration: true,
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
