// Package dbtest provides an in-memory SQLite database that has been run
// through the real migration path, for repository and service tests.
package dbtest

import (
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/dailabs/dai/internal/db"
)

// goose configuration is package-global; serialize migration runs so
// parallel tests don't race on it.
var migrateMu sync.Mutex

// New returns a migrated in-memory database, closed via t.Cleanup.
func New(t *testing.T) *sqlx.DB {
	t.Helper()

	d, err := sqlx.Connect("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open in-memory database: %v", err)
	}
	// A second connection would see a different empty in-memory database.
	d.SetMaxOpenConns(1)

	migrateMu.Lock()
	err = db.RunMigrations(d.DB, "sqlite")
	migrateMu.Unlock()
	if err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = d.Close()
	})
	return d
}
