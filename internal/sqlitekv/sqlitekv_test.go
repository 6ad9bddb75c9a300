package sqlitekv

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

func TestGetSetRemove(t *testing.T) {
	b, err := New(t.TempDir())
	require.NoError(t, err)
	defer b.Close()

	_, ok, err := b.Get("profiles")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Set("profiles", `{"p1":{}}`))
	v, ok, err := b.Get("profiles")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"p1":{}}`, v)

	// Upsert overwrites.
	require.NoError(t, b.Set("profiles", `{}`))
	v, _, _ = b.Get("profiles")
	assert.Equal(t, `{}`, v)

	require.NoError(t, b.Remove("profiles"))
	_, ok, _ = b.Get("profiles")
	assert.False(t, ok)

	assert.NoError(t, b.Remove("profiles"), "removing absent key is a no-op")
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	b, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, b.Set("active_profile", "p1"))
	require.NoError(t, b.Close())

	b, err = New(dir)
	require.NoError(t, err)
	defer b.Close()

	v, ok, err := b.Get("active_profile")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "p1", v)
}

func TestCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	b, err := New(dir)
	require.NoError(t, err)
	defer b.Close()

	assert.FileExists(t, filepath.Join(dir, "satchel.db"))
}

func TestCapacity(t *testing.T) {
	b, err := New(t.TempDir())
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, types.DefaultCapacity, b.Capacity())
}
