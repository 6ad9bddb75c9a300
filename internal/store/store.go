// Package store implements the durable profile store: a versioned record
// collection kept under a single primary key of a flat key-value backend,
// with a rolling backup ledger, corruption recovery, and schema migration
// on read. The backend has no cross-key transactions; every operation here
// is a sequence of independent key writes, and only primary writes are
// allowed to fail loudly.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Backend keys owned by one store instance.
const (
	primaryKey = "profiles"
	ledgerKey  = "profile_backups"
	activeKey  = "active_profile"
)

// Compile-time interface check: Store must implement types.Store.
var _ types.Store = (*Store)(nil)

// Store is the profile store facade. Not safe for concurrent writers; the
// design assumes a single writer at a time, and interleaved writers lose
// updates at primary-blob granularity.
type Store struct {
	backend   types.Backend
	opts      types.Options
	codec     codec
	migrator  migrator
	ledger    *ledger
	recoverer *recoverer
	logger    *slog.Logger
	now       func() time.Time
}

// New creates a profile store over the given backend. A nil logger falls
// back to slog.Default().
func New(backend types.Backend, opts types.Options, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	c := codec{compress: opts.Compress}
	now := time.Now
	l := &ledger{
		backend: backend,
		key:     ledgerKey,
		codec:   c,
		logger:  logger,
		now:     now,
	}
	s := &Store{
		backend:  backend,
		opts:     opts,
		codec:    c,
		migrator: migrator{now: now},
		ledger:   l,
		recoverer: &recoverer{
			backend:    backend,
			primaryKey: primaryKey,
			activeKey:  activeKey,
			codec:      c,
			ledger:     l,
			logger:     logger,
		},
		logger: logger,
		now:    now,
	}
	return s
}

// Save creates or updates a profile. When the ID is empty a UUID v7 is
// generated and creation fields are stamped; on success the assigned ID,
// version, and timestamps are copied back onto p. A failed read of the
// existing collection fails the save. The primary write is the commit
// point: a backup failure afterwards is logged and swallowed, and the
// already-committed write is not rolled back (the backend offers no
// cross-key atomicity).
func (s *Store) Save(p *types.Profile) error {
	profiles, err := s.loadCollection()
	if err != nil {
		return fmt.Errorf("loading profiles: %w", err)
	}

	rec := p.Clone()
	now := s.now().UTC()
	if rec.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generating profile ID: %w", err)
		}
		rec.ID = id.String()
	}
	if _, exists := profiles[rec.ID]; !exists {
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		if rec.Version == "" {
			rec.Version = types.CurrentProfileVersion
		}
	}
	rec.UpdatedAt = now

	profiles[rec.ID] = rec
	if err := s.writePrimary(profiles); err != nil {
		return err
	}

	// Commit succeeded; reflect store-managed fields on the caller's copy.
	p.ID = rec.ID
	p.Version = rec.Version
	p.CreatedAt = rec.CreatedAt
	p.UpdatedAt = rec.UpdatedAt

	if s.opts.Backup {
		if err := s.ledger.append(rec, types.EventUpdate); err != nil {
			s.logger.Warn("backup append failed", "profile_id", rec.ID, "error", err)
		}
	}
	return nil
}

// Load returns the profile with the given ID, or ErrNotFound.
func (s *Store) Load(id string) (*types.Profile, error) {
	profiles := s.readCollection()
	p, ok := profiles[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	if s.opts.MigrationEnabled {
		p = s.migrator.migrate(p)
	}
	return p, nil
}

// LoadAll returns every profile, ordered by ID, migrated when migration is
// enabled.
func (s *Store) LoadAll() ([]*types.Profile, error) {
	profiles := s.readCollection()
	all := make([]*types.Profile, 0, len(profiles))
	for _, p := range profiles {
		if s.opts.MigrationEnabled {
			p = s.migrator.migrate(p)
		}
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

// Delete removes the profile, first capturing a deletion snapshot in the
// ledger when backups are enabled. Absent IDs are a no-op. A failed read
// of the existing collection fails the delete. The active pointer is
// deliberately left alone; only recovery corrects it.
func (s *Store) Delete(id string) error {
	profiles, err := s.loadCollection()
	if err != nil {
		return fmt.Errorf("loading profiles: %w", err)
	}
	rec, ok := profiles[id]
	if !ok {
		return nil
	}

	if s.opts.Backup {
		if err := s.ledger.append(rec, types.EventDeletion); err != nil {
			s.logger.Warn("deletion backup failed", "profile_id", id, "error", err)
		}
	}

	delete(profiles, id)
	return s.writePrimary(profiles)
}

// ListSummaries returns the summary projection of every profile, ordered
// by ID.
func (s *Store) ListSummaries() ([]types.ProfileSummary, error) {
	all, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	summaries := make([]types.ProfileSummary, len(all))
	for i, p := range all {
		summaries[i] = p.Summary()
	}
	return summaries, nil
}

// SetActive records id as the active profile; an empty id clears the
// pointer. The referenced id is not required to exist yet.
func (s *Store) SetActive(id string) error {
	if id == "" {
		if err := s.backend.Remove(activeKey); err != nil {
			return &types.WriteError{Key: activeKey, Err: err}
		}
		return nil
	}
	if err := s.backend.Set(activeKey, id); err != nil {
		return &types.WriteError{Key: activeKey, Err: err}
	}
	return nil
}

// ActiveID returns the active profile id, or "" when none is set. Read
// failures degrade to "not set".
func (s *Store) ActiveID() (string, error) {
	id, ok, err := s.backend.Get(activeKey)
	if err != nil {
		s.logger.Warn("reading active pointer failed", "error", err)
		return "", nil
	}
	if !ok {
		return "", nil
	}
	return id, nil
}

// LoadActive resolves the active pointer and delegates to Load.
func (s *Store) LoadActive() (*types.Profile, error) {
	id, err := s.ActiveID()
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, types.ErrNotFound
	}
	return s.Load(id)
}

// ClearAll removes every backend key the store owns. Irreversible and
// unbacked-up; each removal is attempted even when an earlier one fails.
func (s *Store) ClearAll() error {
	var errs []error
	for _, key := range []string{primaryKey, ledgerKey, activeKey} {
		if err := s.backend.Remove(key); err != nil {
			errs = append(errs, &types.WriteError{Key: key, Err: err})
		}
	}
	return errors.Join(errs...)
}

// Stats reports bytes used across the store's keys, the backend's nominal
// capacity, and the profile count. Never fails; any backend error yields
// zeroed stats.
func (s *Store) Stats() types.Stats {
	var used int64
	var count int
	for _, key := range []string{primaryKey, ledgerKey, activeKey} {
		raw, ok, err := s.backend.Get(key)
		if err != nil {
			s.logger.Warn("stats read failed", "key", key, "error", err)
			return types.Stats{}
		}
		if !ok {
			continue
		}
		used += int64(len(key) + len(raw))
		if key == primaryKey && !isEmptyOrAbsent(raw) {
			if profiles, err := s.codec.decodeProfiles(key, raw); err == nil {
				count = len(profiles)
			}
		}
	}
	return types.Stats{
		UsedBytes:     used,
		CapacityBytes: s.backend.Capacity(),
		Profiles:      count,
	}
}

// loadCollection reads the primary blob, routing through recovery whenever
// the value is absent, empty, corrupt, or decodes to zero profiles. A
// backend read failure is returned as an error: recovery is triggered by
// blob content only, never by I/O, and the mutating callers must not write
// back a collection rebuilt around a read they never completed.
func (s *Store) loadCollection() (map[string]*types.Profile, error) {
	raw, ok, err := s.backend.Get(primaryKey)
	if err != nil {
		return nil, fmt.Errorf("reading primary blob: %w", err)
	}

	if s.recoverer.needsRecovery(raw, ok) {
		profiles, outcome := s.recoverer.recover()
		if outcome != types.OutcomeClean {
			s.logger.Warn("recovery completed with degradation", "outcome", outcome.String())
		}
		return profiles, nil
	}

	profiles, err := s.codec.decodeProfiles(primaryKey, raw)
	if err != nil {
		// needsRecovery just decoded this value successfully, so this
		// path is unreachable in practice; recover anyway.
		profiles, _ := s.recoverer.recover()
		return profiles, nil
	}
	return profiles, nil
}

// readCollection is the read-path variant of loadCollection: a backend
// read failure degrades to an empty collection, logged and with the stored
// state left untouched.
func (s *Store) readCollection() map[string]*types.Profile {
	profiles, err := s.loadCollection()
	if err != nil {
		s.logger.Warn("reading primary blob failed", "error", err)
		return make(map[string]*types.Profile)
	}
	return profiles
}

// writePrimary serializes and commits the collection to the primary key.
// Serialization failures surface as write-category errors too: the caller
// asked for a durable write and did not get one.
func (s *Store) writePrimary(profiles map[string]*types.Profile) error {
	raw, err := s.codec.encodeProfiles(profiles)
	if err != nil {
		return &types.WriteError{Key: primaryKey, Err: err}
	}
	if err := s.backend.Set(primaryKey, raw); err != nil {
		return &types.WriteError{Key: primaryKey, Err: err}
	}
	return nil
}
