package store

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// maxEntriesPerProfile caps how many ledger entries survive per profile id,
// counting update and deletion entries together. There is no time-based
// expiry; the cap is the only eviction.
const maxEntriesPerProfile = 10

const backupKeyPrefix = "backup_"

// ledger is the append-and-prune log of point-in-time profile snapshots
// held under a single backend key. It is best-effort by contract: methods
// return errors so tests can observe them, but the store logs and swallows
// every ledger failure rather than failing the primary operation.
type ledger struct {
	backend types.Backend
	key     string
	codec   codec
	logger  *slog.Logger
	now     func() time.Time
}

// backupKey derives the ledger key for a snapshot. Keys for one profile
// sort lexically close together, but retention and recovery order entries
// by parsed timestamp, never by key.
func backupKey(profileID, timestamp, event string) string {
	key := backupKeyPrefix + profileID + "_" + timestamp
	if event == types.EventDeletion {
		key += "_deleted"
	}
	return key
}

// append records a snapshot of the profile under a freshly derived key and
// prunes entries for that profile past the retention cap. An unreadable
// ledger is logged and restarted empty so the new snapshot is still kept.
func (l *ledger) append(snapshot *types.Profile, event string) error {
	entries, err := l.load()
	if err != nil {
		l.logger.Warn("backup ledger unreadable, starting fresh",
			"key", l.key, "error", err)
		entries = make(map[string]types.BackupEntry)
	}

	ts := l.now().UTC().Format(time.RFC3339Nano)
	key := backupKey(snapshot.ID, ts, event)
	entries[key] = types.BackupEntry{
		Key:       key,
		ProfileID: snapshot.ID,
		Timestamp: ts,
		Event:     event,
		Snapshot:  snapshot.Clone(),
	}
	pruneEntries(entries, snapshot.ID)

	return l.save(entries)
}

// prune applies the retention cap for one profile id, leaving entries of
// every other id untouched.
func (l *ledger) prune(profileID string) error {
	entries, err := l.load()
	if err != nil {
		return err
	}
	pruneEntries(entries, profileID)
	return l.save(entries)
}

// entries returns every ledger entry, for recovery scanning. Read-only.
func (l *ledger) entries() ([]types.BackupEntry, error) {
	byKey, err := l.load()
	if err != nil {
		return nil, err
	}
	all := make([]types.BackupEntry, 0, len(byKey))
	for _, e := range byKey {
		all = append(all, e)
	}
	return all, nil
}

// pruneEntries keeps the maxEntriesPerProfile newest entries for profileID,
// ordered by parsed timestamp. Entries with unparseable timestamps sort
// oldest and are evicted first.
func pruneEntries(entries map[string]types.BackupEntry, profileID string) {
	var mine []types.BackupEntry
	for _, e := range entries {
		if e.ProfileID == profileID {
			mine = append(mine, e)
		}
	}
	if len(mine) <= maxEntriesPerProfile {
		return
	}

	sort.Slice(mine, func(i, j int) bool {
		return parseTimestamp(mine[i].Timestamp).After(parseTimestamp(mine[j].Timestamp))
	})
	for _, e := range mine[maxEntriesPerProfile:] {
		delete(entries, e.Key)
	}
}

// parseTimestamp parses an entry timestamp, returning the zero time on
// failure so malformed entries lose every ordering comparison.
func parseTimestamp(ts string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (l *ledger) load() (map[string]types.BackupEntry, error) {
	raw, ok, err := l.backend.Get(l.key)
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	if !ok || isEmptyOrAbsent(raw) {
		return make(map[string]types.BackupEntry), nil
	}
	return l.codec.decodeLedger(l.key, raw)
}

func (l *ledger) save(entries map[string]types.BackupEntry) error {
	raw, err := l.codec.encodeLedger(entries)
	if err != nil {
		return err
	}
	if err := l.backend.Set(l.key, raw); err != nil {
		return &types.WriteError{Key: l.key, Err: err}
	}
	return nil
}
