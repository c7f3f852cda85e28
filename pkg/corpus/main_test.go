package corpus

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB creates a new SQLite database file and a Store for testing.
// It uses t.Cleanup to ensure resources are released.
func setupTestDB(t *testing.T) (*sql.DB, *Store) {
	dbFile := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite3", dbFile+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := SetupSchema(db); err != nil {
		t.Fatalf("failed to set up schema: %v", err)
	}

	s, err := NewStore(db)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	t.Cleanup(s.Close)

	return db, s
}

// setupTestDBWithTexts is a convenience helper that also adds a few texts.
func setupTestDBWithTexts(t *testing.T) (context.Context, *Store) {
	_, s := setupTestDB(t)
	ctx := context.Background()

	for _, text := range []struct{ name, body string }{
		{"mordor", "atigatwasakhlaarum"},
		{"fish", "onefishtwofish"},
	} {
		if _, err := s.Add(ctx, text.name, text.body); err != nil {
			t.Fatalf("setup: Add(%q) failed: %v", text.name, err)
		}
	}
	return ctx, s
}
