// ABOUTME: Database schema definitions
// ABOUTME: One row per snapshot key holding the JSON-encoded collection
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS meta (
	name TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// ErrSchemaTooNew means the file was written by a newer hookline.
var ErrSchemaTooNew = errors.New("database schema is newer than this binary supports")

// InitSchema creates the tables and records the schema version. A database
// stamped with a later version is refused rather than read.
func InitSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return err
	}

	version, err := storedVersion(db)
	if err != nil {
		return err
	}
	if version > schemaVersion {
		return fmt.Errorf("%w (found %d, supported %d)", ErrSchemaTooNew, version, schemaVersion)
	}
	if version == schemaVersion {
		return nil
	}
	_, err = db.Exec(`INSERT INTO meta (name, value) VALUES ('schema_version', ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value`, strconv.Itoa(schemaVersion))
	return err
}

// storedVersion returns 0 for a fresh database.
func storedVersion(db *sql.DB) (int, error) {
	var raw string
	err := db.QueryRow(`SELECT value FROM meta WHERE name = 'schema_version'`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("bad schema_version %q: %w", raw, err)
	}
	return v, nil
}
