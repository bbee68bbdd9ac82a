// ABOUTME: Opens the snapshot store for a configured backend name
// ABOUTME: Shared by the main binary and the migrate tool
package cli

import (
	"fmt"

	"github.com/harperreed/hookline/charm"
	"github.com/harperreed/hookline/config"
	"github.com/harperreed/hookline/db"
	"github.com/harperreed/hookline/storage"
)

// OpenBackend returns the snapshot store for backend. path is the SQLite
// file or Badger directory; charmHost, when set, overrides the host in the
// charm sync config for this process only.
func OpenBackend(backend, path, charmHost string) (storage.KV, error) {
	switch backend {
	case config.BackendSQLite:
		return db.Open(path)
	case config.BackendBadger:
		return storage.OpenBadger(path)
	case config.BackendCharm:
		cfg, err := charm.LoadConfig()
		if err != nil {
			return nil, err
		}
		if charmHost != "" {
			cfg.Host = charmHost
		}
		if err := charm.InitClient(cfg); err != nil {
			return nil, err
		}
		return charm.GetClient()
	case config.BackendMemory:
		return storage.NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
