package db

import (
	"database/sql"
	"fmt"
)

// schema lists the store's migrations in order. The database records how many
// have been applied in PRAGMA user_version; Migrate runs the rest. Append
// only: never edit or reorder an entry that has shipped.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS kv_entries (
		key        TEXT PRIMARY KEY,
		value      BLOB NOT NULL,
		version    INTEGER NOT NULL DEFAULT 1,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_kv_entries_updated_at ON kv_entries(updated_at)`,
}

// SchemaVersion is the user_version of a fully migrated database.
var SchemaVersion = len(schema)

// Migrate applies every migration newer than the database's user_version,
// each in its own transaction.
func Migrate(db *sql.DB) error {
	var current int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if current > len(schema) {
		return fmt.Errorf("schema version %d is newer than this build (%d)", current, len(schema))
	}

	for v := current; v < len(schema); v++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migration %d: %w", v+1, err)
		}
		if _, err := tx.Exec(schema[v]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: %w", v+1, err)
		}
		// PRAGMA does not take bind parameters.
		if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, v+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: recording version: %w", v+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: %w", v+1, err)
		}
	}
	return nil
}
