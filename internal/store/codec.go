package store

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// codec serializes the profile collection and the backup ledger to and from
// transport strings. The compress flag selects the compression hook on both
// the encode and decode paths; the hook is an identity transform today, but
// a compressing implementation can replace pack/unpack without changing any
// caller.
type codec struct {
	compress bool
}

// encodeProfiles serializes the full collection. Round-trips through
// decodeProfiles.
func (c codec) encodeProfiles(profiles map[string]*types.Profile) (string, error) {
	raw, err := json.Marshal(profiles)
	if err != nil {
		return "", fmt.Errorf("encoding profiles: %w", err)
	}
	return c.pack(string(raw))
}

// decodeProfiles parses a transport string into a collection. Returns a
// ParseError on malformed input; never substitutes default data. key is
// only used to identify the source in the error.
func (c codec) decodeProfiles(key, raw string) (map[string]*types.Profile, error) {
	raw, err := c.unpack(raw)
	if err != nil {
		return nil, &types.ParseError{Key: key, Err: err}
	}
	var profiles map[string]*types.Profile
	if err := json.Unmarshal([]byte(raw), &profiles); err != nil {
		return nil, &types.ParseError{Key: key, Err: err}
	}
	if profiles == nil {
		profiles = make(map[string]*types.Profile)
	}
	return profiles, nil
}

// encodeLedger serializes the backup ledger, keyed by entry key.
func (c codec) encodeLedger(entries map[string]types.BackupEntry) (string, error) {
	raw, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("encoding ledger: %w", err)
	}
	return c.pack(string(raw))
}

// decodeLedger parses a transport string into the backup ledger map.
func (c codec) decodeLedger(key, raw string) (map[string]types.BackupEntry, error) {
	raw, err := c.unpack(raw)
	if err != nil {
		return nil, &types.ParseError{Key: key, Err: err}
	}
	var entries map[string]types.BackupEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, &types.ParseError{Key: key, Err: err}
	}
	if entries == nil {
		entries = make(map[string]types.BackupEntry)
	}
	return entries, nil
}

// pack is the outbound compression hook. Identity in both modes today;
// kept on the hot path so a real compressor slots in symmetrically with
// unpack.
func (c codec) pack(raw string) (string, error) {
	if !c.compress {
		return raw, nil
	}
	return raw, nil
}

// unpack is the inbound compression hook, mirror of pack.
func (c codec) unpack(raw string) (string, error) {
	if !c.compress {
		return raw, nil
	}
	return raw, nil
}
