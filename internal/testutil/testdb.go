package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/sprout/internal/db"
	"github.com/alexanderramin/sprout/internal/progress"
	"github.com/alexanderramin/sprout/internal/storage"
)

// NewTestDB creates an in-memory journal with all migrations applied.
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

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// NewTestWriter returns a durable writer for progress.json in a fresh temp
// directory.
func NewTestWriter(t *testing.T) *storage.DurableWriter {
	t.Helper()
	return storage.NewDurableWriter(filepath.Join(t.TempDir(), "progress.json"), nil, nil)
}

// NewTestStore opens a store over a fresh temp directory, driven by clock.
// The store's auto-flush loop is not started.
func NewTestStore(t *testing.T, clock *Clock, opts ...progress.Option) (*progress.Store, *storage.DurableWriter) {
	t.Helper()
	w := NewTestWriter(t)
	opts = append([]progress.Option{
		progress.WithClock(clock.Now),
		progress.WithPasswordCost(4),
	}, opts...)
	s, _ := progress.Open(w, w, opts...)
	return s, w
}
