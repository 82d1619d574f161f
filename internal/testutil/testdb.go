package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/tandem/internal/db"
	"github.com/alexanderramin/tandem/internal/store"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestStore returns a store over a fresh in-memory database.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	return store.NewSQLiteStore(NewTestDB(t))
}
