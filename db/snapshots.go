// ABOUTME: SQLite-backed key-value store for record snapshots
// ABOUTME: Implements storage.KV so the record store can persist through SQLite
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harperreed/hookline/storage"
	_ "github.com/mattn/go-sqlite3"
)

// SnapshotKV adapts a *sql.DB to storage.KV.
type SnapshotKV struct {
	db *sql.DB
}

func NewSnapshotKV(database *sql.DB) *SnapshotKV {
	return &SnapshotKV{db: database}
}

// Open creates the parent directory if needed, opens the SQLite file at
// path in WAL mode and applies the schema.
func Open(path string) (*SnapshotKV, error) {
	if path == "" {
		return nil, errors.New("sqlite: database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("sqlite: create data dir: %w", err)
	}

	database, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	// one writer at a time, or SQLite reports the database as locked
	database.SetMaxOpenConns(1)

	if err := InitSchema(database); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("sqlite: init schema: %w", err)
	}
	return NewSnapshotKV(database), nil
}

func (s *SnapshotKV) Get(key []byte) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM snapshots WHERE key = ?`, string(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *SnapshotKV) Set(key, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO snapshots (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, string(key), value, time.Now().UTC())
	return err
}

// Keys lists stored snapshot keys in name order.
func (s *SnapshotKV) Keys() ([][]byte, error) {
	rows, err := s.db.Query(`SELECT key FROM snapshots ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys [][]byte
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, []byte(k))
	}
	return keys, rows.Err()
}

// UpdatedAt returns when key was last written.
func (s *SnapshotKV) UpdatedAt(key string) (time.Time, error) {
	var t time.Time
	err := s.db.QueryRow(`SELECT updated_at FROM snapshots WHERE key = ?`, key).Scan(&t)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, storage.ErrKeyNotFound
	}
	return t, err
}

func (s *SnapshotKV) Close() error {
	return s.db.Close()
}
