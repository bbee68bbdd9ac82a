// ABOUTME: Shared fixtures for record store tests
// ABOUTME: Deterministic ids and a clock that steps forward on every read
package crm

import (
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/hookline/storage"
)

// seqIDs returns a deterministic id supplier: prefix-1, prefix-2, ...
func seqIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// stepClock advances by step on every read.
type stepClock struct {
	t    time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func newClock() *stepClock {
	return &stepClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), step: time.Minute}
}

func newTestStore(t *testing.T, seed bool) (*Store, *storage.MemoryKV) {
	t.Helper()
	kv := storage.NewMemoryKV()
	s := Open(kv, Options{
		NewID:  seqIDs("id"),
		Now:    newClock().Now,
		Seed:   seed,
		Logger: log.New(io.Discard),
	})
	return s, kv
}
