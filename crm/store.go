// ABOUTME: Record store holding contacts, deals and activities in memory
// ABOUTME: Every mutation runs as one compound unit and then persists the touched collections
package crm

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/hookline/idgen"
	"github.com/harperreed/hookline/models"
	"github.com/harperreed/hookline/storage"
)

// Storage keys, one per entity kind.
const (
	KeyContacts   = "hl_contacts"
	KeyDeals      = "hl_deals"
	KeyActivities = "hl_activities"
)

var allKeys = []string{KeyContacts, KeyDeals, KeyActivities}

// Options wires the store's collaborators. Zero values get defaults.
type Options struct {
	// NewID supplies identifiers for created records.
	NewID func() string
	// Now is the clock used for createdAt and activity dates.
	Now func() time.Time
	// Seed loads the sample record set for keys that have never been saved.
	Seed    bool
	Logger  *log.Logger
	Metrics *Metrics
}

// Store owns the three record collections. It is safe for concurrent use;
// operations are serialized.
type Store struct {
	mu      sync.Mutex
	kv      storage.KV
	state   models.Snapshot
	newID   func() string
	now     func() time.Time
	logger  *log.Logger
	metrics *Metrics

	lastPersistErr error
}

// Open loads the three collections from kv and returns a ready store.
// Unreadable or malformed collections fall back to the default (seed data
// when opts.Seed is set, otherwise empty).
func Open(kv storage.KV, opts Options) *Store {
	s := &Store{
		kv:      kv,
		newID:   opts.NewID,
		now:     opts.Now,
		logger:  opts.Logger,
		metrics: opts.Metrics,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = idgen.ULID()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	defaults := models.Snapshot{
		Contacts:   []models.Contact{},
		Deals:      []models.Deal{},
		Activities: []models.Activity{},
	}
	if opts.Seed {
		defaults = models.SeedSnapshot()
	}

	s.state = models.Snapshot{
		Contacts:   storage.Load(kv, KeyContacts, defaults.Contacts, s.logger),
		Deals:      storage.Load(kv, KeyDeals, defaults.Deals, s.logger),
		Activities: storage.Load(kv, KeyActivities, defaults.Activities, s.logger),
	}
	if s.state.Contacts == nil {
		s.state.Contacts = []models.Contact{}
	}
	if s.state.Deals == nil {
		s.state.Deals = []models.Deal{}
	}
	if s.state.Activities == nil {
		s.state.Activities = []models.Activity{}
	}
	s.metrics.setRecords(s.state)

	s.logger.Debug("store opened",
		"contacts", len(s.state.Contacts),
		"deals", len(s.state.Deals),
		"activities", len(s.state.Activities))
	return s
}

// txn is the working copy a mutation edits. Nothing it does is visible
// until the enclosing update commits.
type txn struct {
	state   models.Snapshot
	now     time.Time
	touched map[string]bool
}

func (t *txn) touch(keys ...string) {
	for _, k := range keys {
		t.touched[k] = true
	}
}

// update runs fn against a copy of the state. When fn succeeds the copy
// replaces the live state and the touched collections are saved, each once.
func (s *Store) update(entity, op string, fn func(t *txn) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &txn{
		state:   s.state.Clone(),
		now:     s.now(),
		touched: make(map[string]bool),
	}
	if err := fn(t); err != nil {
		return err
	}

	s.state = t.state
	s.metrics.mutation(entity, op)
	s.metrics.setRecords(s.state)

	for _, key := range allKeys {
		if t.touched[key] {
			_ = s.persist(key)
		}
	}
	return nil
}

// persist saves one collection. Failures are logged and remembered; the
// in-memory state stays authoritative.
func (s *Store) persist(key string) error {
	var v any
	switch key {
	case KeyContacts:
		v = s.state.Contacts
	case KeyDeals:
		v = s.state.Deals
	case KeyActivities:
		v = s.state.Activities
	}

	if err := storage.Save(s.kv, key, v); err != nil {
		s.lastPersistErr = err
		s.metrics.persistFailure(key)
		s.logger.Warn("persist failed", "key", key, "err", err)
		return err
	}
	return nil
}

// LastPersistError returns the most recent storage write failure, if any.
func (s *Store) LastPersistError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPersistErr
}

// Snapshot returns a deep copy of the current record set.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Flush saves every collection and reports any write failure.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, key := range allKeys {
		if err := s.persist(key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close flushes and closes the backend when it supports closing.
func (s *Store) Close() error {
	flushErr := s.Flush()
	if c, ok := s.kv.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return errors.Join(flushErr, err)
		}
	}
	return flushErr
}
