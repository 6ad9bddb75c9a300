package store

import (
	"io"
	"log/slog"
	"time"

	"github.com/mesh-intelligence/satchel/internal/memkv"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// stepClock hands out strictly increasing timestamps so derived backup keys
// never collide within a test.
type stepClock struct {
	t time.Time
}

func newStepClock() *stepClock {
	return &stepClock{t: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(10 * time.Millisecond)
	return c.t
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestStore wires a store over the given backend with a deterministic
// clock shared by the facade, the migrator, and the ledger.
func newTestStore(b types.Backend, opts types.Options) (*Store, *stepClock) {
	s := New(b, opts, discardLogger())
	clk := newStepClock()
	s.now = clk.Now
	s.migrator.now = clk.Now
	s.ledger.now = clk.Now
	return s, clk
}

func newMemStore(opts types.Options) (*Store, *memkv.Backend) {
	b := memkv.New(0)
	s, _ := newTestStore(b, opts)
	return s, b
}

func newTestLedger(b types.Backend) *ledger {
	return &ledger{
		backend: b,
		key:     ledgerKey,
		codec:   codec{},
		logger:  discardLogger(),
		now:     newStepClock().Now,
	}
}
