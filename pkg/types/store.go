package types

import "errors"

// Store is the public surface of the profile store. Every read of the
// primary collection passes a recovery check before migration is applied;
// every mutating write is followed by a best-effort ledger snapshot when
// backups are enabled. Reads degrade gracefully (missing or corrupt data
// yields empty results); only Save, Delete, ClearAll, and SetActive are
// permitted to fail loudly.
type Store interface {
	// Save creates or updates a profile. When the ID is empty a new
	// UUID v7 is generated and creation timestamps are stamped; the
	// passed profile is updated in place with the assigned fields.
	// Returns an error when the existing collection cannot be read or
	// a write-category error when the primary write fails; a failed
	// backup never fails the save.
	Save(p *Profile) error

	// Load returns the profile with the given ID, migrated when
	// migration is enabled. Returns ErrNotFound when absent.
	Load(id string) (*Profile, error)

	// LoadAll returns every profile in the collection.
	LoadAll() ([]*Profile, error)

	// Delete removes the profile, capturing a deletion snapshot in the
	// ledger first when backups are enabled. Deleting an absent ID is a
	// no-op, not an error. Delete does not touch the active pointer.
	Delete(id string) error

	// ListSummaries returns the summary projection of every profile.
	ListSummaries() ([]ProfileSummary, error)

	// SetActive records id as the active profile. An empty id clears
	// the pointer.
	SetActive(id string) error

	// ActiveID returns the active profile id, or "" when none is set.
	ActiveID() (string, error)

	// LoadActive resolves the active pointer and delegates to Load.
	// Returns ErrNotFound when no pointer is set or the referenced
	// profile is gone.
	LoadActive() (*Profile, error)

	// ClearAll removes every backend key the store owns. Irreversible;
	// no backup is taken of what it clears.
	ClearAll() error

	// Stats reports storage usage. Purely informational; returns zeroed
	// stats rather than an error on failure.
	Stats() Stats
}

// ErrNotFound is returned by Load and LoadActive when no profile matches.
var ErrNotFound = errors.New("profile not found")

// Stats reports storage consumption across the keys owned by one store.
type Stats struct {
	UsedBytes     int64 `json:"used_bytes"`
	CapacityBytes int64 `json:"capacity_bytes"`
	Profiles      int   `json:"profiles"`
}

// Outcome classifies the result of a best-effort operation such as
// recovery, so callers and tests can observe degradation without
// inspecting logs.
type Outcome int

const (
	// OutcomeClean means the operation fully succeeded.
	OutcomeClean Outcome = iota
	// OutcomeDegraded means a usable result was produced but some data
	// was skipped or unreadable.
	OutcomeDegraded
	// OutcomeFailed means no usable result was produced.
	OutcomeFailed
)

// String returns the lowercase name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeClean:
		return "clean"
	case OutcomeDegraded:
		return "degraded"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}
