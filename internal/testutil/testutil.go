package testutil

import (
	"database/sql"
	"testing"

	"github.com/taskdesk/taskdesk-be/internal/database"
)

// OpenTestDB opens a shared-cache in-memory database and applies migrations.
// Each distinct name is an isolated database; reuse a name to share state.
// The database is closed via t.Cleanup.
func OpenTestDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := database.New("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}
