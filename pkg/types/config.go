package types

import "errors"

// Config holds backend selection and parameters for the backend factory.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Supported backend names.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrDataDirEmpty   = errors.New("data directory required for persistent backends")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendMemory: true,
	BackendSQLite: true,
	BackendBadger: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.Backend != BackendMemory && c.DataDir == "" {
		return ErrDataDirEmpty
	}
	return nil
}

// Options controls per-store behavior. The zero value disables everything;
// use DefaultOptions for the documented defaults.
type Options struct {
	// Compress toggles the codec's compression hook. Currently an
	// identity transform; reserved for a future compressing codec.
	Compress bool `json:"compress" yaml:"compress"`

	// Backup enables ledger snapshots on Save and Delete.
	Backup bool `json:"backup" yaml:"backup"`

	// AutoSave is consumed by callers implementing an auto-save policy.
	// The store itself does not act on it.
	AutoSave bool `json:"auto_save" yaml:"auto_save"`

	// MigrationEnabled applies schema migration to profiles on read.
	MigrationEnabled bool `json:"migration" yaml:"migration"`
}

// DefaultOptions returns the documented defaults: backups, auto-save and
// migration on, compression off.
func DefaultOptions() Options {
	return Options{
		Backup:           true,
		AutoSave:         true,
		MigrationEnabled: true,
	}
}
