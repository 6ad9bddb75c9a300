package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/satchel/internal/paths"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend   = "backend"
	cfgKeyDataDir   = "data_dir"
	cfgKeyCompress  = "compress"
	cfgKeyBackup    = "backup"
	cfgKeyAutoSave  = "auto_save"
	cfgKeyMigration = "migration"

	defaultBackend = types.BackendSQLite
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Satchel CLI configuration

# Backend selection: memory, sqlite, badger
backend: sqlite

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Store behavior
backup: true
auto_save: true
migration: true
compress: false
`

// loadConfig reads config.yaml from the resolved config directory using
// Viper. It creates the config directory and a default config.yaml on first
// run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyBackup, true)
	v.SetDefault(cfgKeyAutoSave, true)
	v.SetDefault(cfgKeyMigration, true)
	v.SetDefault(cfgKeyCompress, false)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// optionsFromConfig builds store options from the loaded configuration.
func optionsFromConfig(v *viper.Viper) types.Options {
	return types.Options{
		Compress:         v.GetBool(cfgKeyCompress),
		Backup:           v.GetBool(cfgKeyBackup),
		AutoSave:         v.GetBool(cfgKeyAutoSave),
		MigrationEnabled: v.GetBool(cfgKeyMigration),
	}
}

// resolveDirs returns the effective config and data directories from flags,
// environment, config.yaml, and platform defaults.
func resolveDirs() (configDir, dataDir string, v *viper.Viper, err error) {
	configDir, err = paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return "", "", nil, fmt.Errorf("resolve config dir: %w", err)
	}
	v, err = loadConfig(configDir)
	if err != nil {
		return "", "", nil, err
	}
	dataDir, err = paths.ResolveDataDir(flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return "", "", nil, fmt.Errorf("resolve data dir: %w", err)
	}
	return configDir, dataDir, v, nil
}
