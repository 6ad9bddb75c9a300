package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

func TestCodecProfilesRoundTrip(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	collection := map[string]*types.Profile{
		"p1": {
			ID:         "p1",
			Name:       "Ravenwood",
			Profession: "engineer",
			Level:      42,
			Breed:      "solitus",
			Faction:    "clan",
			Version:    types.CurrentProfileVersion,
			CreatedAt:  created,
			UpdatedAt:  created.Add(time.Hour),
			Payload:    map[string]any{"stat.strength": float64(120), "notes": "pvp build"},
		},
		"p2": {
			ID:      "p2",
			Name:    "Vex",
			Version: "1.0.0",
		},
	}

	for _, compress := range []bool{false, true} {
		c := codec{compress: compress}
		raw, err := c.encodeProfiles(collection)
		require.NoError(t, err)

		decoded, err := c.decodeProfiles(primaryKey, raw)
		require.NoError(t, err)
		assert.Equal(t, collection, decoded)
	}
}

func TestCodecDecodeMalformed(t *testing.T) {
	c := codec{}
	tests := []struct {
		name string
		raw  string
	}{
		{name: "truncated object", raw: `{"p1": {"id": "p1"`},
		{name: "not JSON at all", raw: "profiles go here"},
		{name: "wrong shape", raw: `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.decodeProfiles(primaryKey, tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrParse)
		})
	}
}

func TestCodecDecodeNullNormalized(t *testing.T) {
	// "null" is caught by the emptiness check before decode in normal
	// operation, but the codec itself must still never hand back a nil map.
	c := codec{}
	decoded, err := c.decodeProfiles(primaryKey, "null")
	require.NoError(t, err)
	require.NotNil(t, decoded)
	assert.Empty(t, decoded)
}

func TestCodecLedgerRoundTrip(t *testing.T) {
	entries := map[string]types.BackupEntry{
		"backup_p1_2026-03-01T10:00:00Z": {
			Key:       "backup_p1_2026-03-01T10:00:00Z",
			ProfileID: "p1",
			Timestamp: "2026-03-01T10:00:00Z",
			Event:     types.EventUpdate,
			Snapshot:  &types.Profile{ID: "p1", Name: "Ravenwood"},
		},
		"backup_p1_2026-03-01T11:00:00Z_deleted": {
			Key:       "backup_p1_2026-03-01T11:00:00Z_deleted",
			ProfileID: "p1",
			Timestamp: "2026-03-01T11:00:00Z",
			Event:     types.EventDeletion,
			Snapshot:  &types.Profile{ID: "p1", Name: "Ravenwood"},
		},
	}

	c := codec{}
	raw, err := c.encodeLedger(entries)
	require.NoError(t, err)

	decoded, err := c.decodeLedger(ledgerKey, raw)
	require.NoError(t, err)
	assert.Equal(t, entries, decoded)
}

func TestIsEmptyOrAbsent(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{raw: "", want: true},
		{raw: "   ", want: true},
		{raw: "\n\t", want: true},
		{raw: "{}", want: true},
		{raw: " {} ", want: true},
		{raw: "null", want: true},
		{raw: `{"p1":{}}`, want: false},
		{raw: "NULL", want: false},
		{raw: "0", want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isEmptyOrAbsent(tt.raw), "raw=%q", tt.raw)
	}
}
