package store

import (
	"time"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// legacyVersionCeiling gates the only defined migration rule: profiles whose
// version is absent or sorts below this value are upgraded to the current
// schema.
const legacyVersionCeiling = "2.0.0"

// migrator upgrades a single profile from any stored schema version to the
// current one. It never touches storage and never fails: a missing or
// garbled version field means "needs migration", not an error.
type migrator struct {
	now func() time.Time
}

// migrate returns the profile upgraded to the current schema version.
// A profile already at the current version is returned as-is; callers must
// not rely on pointer identity either way. Any other input is deep-copied
// before the transition rules run.
//
// The version comparison is lexical on the raw string, so "10.0.0" sorts
// below "2.0.0" and is migrated. Existing callers depend on this ordering.
func (m migrator) migrate(p *types.Profile) *types.Profile {
	if p.Version == types.CurrentProfileVersion {
		return p
	}

	cp := p.Clone()
	if cp.Version == "" || cp.Version < legacyVersionCeiling {
		now := m.now().UTC()
		cp.Version = types.CurrentProfileVersion
		cp.UpdatedAt = now
		if cp.CreatedAt.IsZero() {
			cp.CreatedAt = now
		}
	}
	return cp
}
