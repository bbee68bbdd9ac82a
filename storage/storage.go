// ABOUTME: Durable snapshot store over a byte-oriented key-value backend
// ABOUTME: Load substitutes the default on missing or malformed content; Save writes whole collections
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// ErrKeyNotFound is returned by KV implementations when a key is absent.
var ErrKeyNotFound = errors.New("key not found")

// KV is the minimal backend contract. Implementations: db.SnapshotKV (SQLite),
// BadgerKV (local), charm.Client (synced) and MemoryKV (tests).
type KV interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
}

// Load decodes the JSON collection stored under key. A missing key, a
// backend read failure or malformed content all yield def; read failures
// are logged, never returned.
func Load[T any](kv KV, key string, def T, logger *log.Logger) T {
	data, err := kv.Get([]byte(key))
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) && logger != nil {
			logger.Warn("snapshot read failed, using default", "key", key, "err", err)
		}
		return def
	}
	if len(data) == 0 {
		return def
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		if logger != nil {
			logger.Warn("snapshot malformed, using default", "key", key, "err", err)
		}
		return def
	}
	return out
}

// Save encodes v as JSON and stores it under key.
func Save(kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := kv.Set([]byte(key), data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
