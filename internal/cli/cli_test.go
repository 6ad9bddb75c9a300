package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the root command in-process with temp config and data
// directories, returning captured stdout.
func runCommand(t *testing.T, configDir, dataDir string, args ...string) string {
	t.Helper()

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config-dir", configDir, "--data-dir", dataDir}, args...))

	require.NoError(t, root.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	out := runCommand(t, t.TempDir(), t.TempDir(), "version")
	assert.Contains(t, out, "satchel v")
	assert.Contains(t, out, modulePath)
}

func TestInitCommand(t *testing.T) {
	configDir := t.TempDir()
	dataDir := t.TempDir()

	out := runCommand(t, configDir, dataDir, "init")
	assert.Contains(t, out, "initialized successfully")

	assert.FileExists(t, filepath.Join(configDir, configFileExt))
	assert.FileExists(t, filepath.Join(dataDir, "satchel.db"))
}

func TestListEmptyStore(t *testing.T) {
	configDir := t.TempDir()
	dataDir := t.TempDir()
	runCommand(t, configDir, dataDir, "init")

	out := runCommand(t, configDir, dataDir, "list")
	assert.Contains(t, out, "No profiles stored.")
}

func TestActiveNoneSet(t *testing.T) {
	configDir := t.TempDir()
	dataDir := t.TempDir()
	runCommand(t, configDir, dataDir, "init")

	out := runCommand(t, configDir, dataDir, "active")
	assert.Contains(t, out, "No active profile set.")
}

func TestActiveSetAndShow(t *testing.T) {
	configDir := t.TempDir()
	dataDir := t.TempDir()
	runCommand(t, configDir, dataDir, "init")

	out := runCommand(t, configDir, dataDir, "active", "p1")
	assert.Contains(t, out, "Active profile set to p1")

	out = runCommand(t, configDir, dataDir, "active")
	assert.Contains(t, out, "p1")
}

func TestStatsCommand(t *testing.T) {
	configDir := t.TempDir()
	dataDir := t.TempDir()
	runCommand(t, configDir, dataDir, "init")

	out := runCommand(t, configDir, dataDir, "stats")
	assert.Contains(t, out, "Profiles: 0")
}
