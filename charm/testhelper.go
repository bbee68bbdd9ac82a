// ABOUTME: Test utilities for creating isolated charm clients
// ABOUTME: Backs the client with a local BadgerDB in a temp directory, no server needed

package charm

import (
	"path/filepath"
	"testing"

	"github.com/harperreed/hookline/storage"
)

// localKV adapts a local BadgerDB to the charm backend. Sync is a no-op.
type localKV struct {
	*storage.BadgerKV
}

func (localKV) Sync() error { return nil }

// NewLocalClient opens a client over a plain BadgerDB at dir. It never
// contacts a charm server.
func NewLocalClient(dir string, cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = &Config{Host: "localhost"}
	}
	db, err := storage.OpenBadger(dir)
	if err != nil {
		return nil, err
	}
	return &Client{kv: localKV{db}, config: cfg}, nil
}

// NewTestClient creates a local client under t.TempDir with auto-sync off.
// The returned cleanup closes the database.
func NewTestClient(t *testing.T) (*Client, func()) {
	t.Helper()

	dir := filepath.Join(t.TempDir(), AppName)
	cfg := &Config{Host: "localhost", AutoSync: false, path: filepath.Join(dir, ConfigFileName)}

	c, err := NewLocalClient(dir, cfg)
	if err != nil {
		t.Fatalf("Failed to open test client: %v", err)
	}

	cleanup := func() {
		if err := c.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	}
	return c, cleanup
}
