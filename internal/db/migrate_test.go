package db

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
	assert.Equal(t, SchemaVersion, userVersion(t, db))
}

func userVersion(t *testing.T, db *sql.DB) int {
	t.Helper()
	var v int
	require.NoError(t, db.QueryRow(`PRAGMA user_version`).Scan(&v))
	return v
}

func TestMigrate_ResumesFromRecordedVersion(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`DROP INDEX idx_kv_entries_updated_at`)
	require.NoError(t, err)
	_, err = db.Exec(`PRAGMA user_version = 1`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	assert.Equal(t, SchemaVersion, userVersion(t, db))

	var name string
	require.NoError(t, db.QueryRow(
		`SELECT name FROM sqlite_master WHERE type='index' AND name='idx_kv_entries_updated_at'`).Scan(&name))
}

func TestMigrate_RejectsNewerSchema(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, SchemaVersion+1))
	require.NoError(t, err)
	assert.ErrorContains(t, Migrate(db), "newer than this build")
}

func TestMigrate_CreatesKVTable(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='kv_entries'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "kv_entries", name)
}

func TestOpenDB_FileCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "tandem.db")

	db, err := OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
	assert.FileExists(t, path)
}
