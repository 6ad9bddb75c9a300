package store

import (
	"log/slog"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// recoverer detects an empty or corrupt primary blob and reconstructs the
// best available per-profile snapshot from the backup ledger. All writes it
// performs go straight to the backend, never through the ledger: recovery
// output is not a new update event, and appending during recovery would
// pollute the log being read.
type recoverer struct {
	backend    types.Backend
	primaryKey string
	activeKey  string
	codec      codec
	ledger     *ledger
	logger     *slog.Logger
}

// needsRecovery reports whether the raw primary value warrants recovery:
// the key is absent, the value is blank or an empty-store literal, decoding
// fails, or decoding succeeds but yields zero profiles. An empty primary
// is never trusted without checking the ledger first.
func (r *recoverer) needsRecovery(raw string, ok bool) bool {
	if !ok || isEmptyOrAbsent(raw) {
		return true
	}
	profiles, err := r.codec.decodeProfiles(r.primaryKey, raw)
	if err != nil {
		return true
	}
	return len(profiles) == 0
}

// recover reconstructs the collection from the ledger. For each profile id
// it prefers the newest entry that is not a deletion, falling back to the
// newest entry of any type. A non-empty reconstruction is reinstalled as
// the primary blob, and the active pointer is cleared when its id was not
// restored. Safe to call repeatedly; never propagates an error. On ledger
// read failure it returns an empty collection and leaves the primary
// untouched.
func (r *recoverer) recover() (map[string]*types.Profile, types.Outcome) {
	entries, err := r.ledger.entries()
	if err != nil {
		r.logger.Error("recovery aborted: ledger unreadable", "error", err)
		return make(map[string]*types.Profile), types.OutcomeFailed
	}

	outcome := types.OutcomeClean
	chosen := make(map[string]types.BackupEntry)
	for _, e := range entries {
		if e.Snapshot == nil || e.ProfileID == "" {
			r.logger.Warn("skipping malformed backup entry", "key", e.Key)
			outcome = types.OutcomeDegraded
			continue
		}
		best, seen := chosen[e.ProfileID]
		if !seen || betterCandidate(e, best) {
			chosen[e.ProfileID] = e
		}
	}

	restored := make(map[string]*types.Profile, len(chosen))
	for id, e := range chosen {
		restored[id] = e.Snapshot.Clone()
	}

	if len(restored) > 0 {
		if err := r.reinstall(restored); err != nil {
			r.logger.Error("recovery could not reinstall primary blob", "error", err)
			outcome = types.OutcomeDegraded
		}
		r.logger.Info("recovered profiles from backup ledger", "profiles", len(restored))
	}
	r.fixActivePointer(restored)

	return restored, outcome
}

// betterCandidate reports whether candidate should replace current as the
// snapshot restored for a profile: a non-deletion entry always beats a
// deletion entry, and within the same class the newer parsed timestamp
// wins.
func betterCandidate(candidate, current types.BackupEntry) bool {
	candDeletion := candidate.Event == types.EventDeletion
	currDeletion := current.Event == types.EventDeletion
	if candDeletion != currDeletion {
		return currDeletion
	}
	return parseTimestamp(candidate.Timestamp).After(parseTimestamp(current.Timestamp))
}

// reinstall writes the reconstructed collection to the primary key. This is
// the backup-suppressing write path: it must not touch the ledger.
func (r *recoverer) reinstall(profiles map[string]*types.Profile) error {
	raw, err := r.codec.encodeProfiles(profiles)
	if err != nil {
		return err
	}
	if err := r.backend.Set(r.primaryKey, raw); err != nil {
		return &types.WriteError{Key: r.primaryKey, Err: err}
	}
	return nil
}

// fixActivePointer clears the active pointer when it references a profile
// that recovery did not restore.
func (r *recoverer) fixActivePointer(restored map[string]*types.Profile) {
	id, ok, err := r.backend.Get(r.activeKey)
	if err != nil || !ok || id == "" {
		return
	}
	if _, exists := restored[id]; exists {
		return
	}
	if err := r.backend.Remove(r.activeKey); err != nil {
		r.logger.Warn("could not clear stale active pointer", "profile_id", id, "error", err)
		return
	}
	r.logger.Info("cleared active pointer to unrestored profile", "profile_id", id)
}
