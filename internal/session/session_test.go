package session

import (
	"database/sql"
	"testing"
	"time"

	"chartctl/internal/shared"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestStore(t *testing.T) {
	t.Run("Not Ready Before Load", func(t *testing.T) {
		store := NewStore(newTestDB(t))
		if store.Ready() {
			t.Error("store should not be ready before Load")
		}
		if store.Valid() {
			t.Error("store should not be valid before Load")
		}
	})

	t.Run("Load Empty", func(t *testing.T) {
		store := NewStore(newTestDB(t))
		if err := store.Load(); err != nil {
			t.Fatalf("Load should tolerate empty table: %v", err)
		}
		if !store.Ready() {
			t.Error("store should be ready after Load")
		}
		if store.Valid() {
			t.Error("store with no token should be invalid")
		}
		if store.Token() != "" {
			t.Errorf("expected empty token, got %q", store.Token())
		}
	})

	t.Run("Save And Reload", func(t *testing.T) {
		db := newTestDB(t)
		store := NewStore(db)
		expiry := time.Now().Add(time.Hour).UTC().Truncate(time.Second)

		if err := store.Save("tok-123", expiry); err != nil {
			t.Fatalf("failed to save session: %v", err)
		}
		if !store.Valid() {
			t.Error("freshly saved session should be valid")
		}
		if store.Token() != "tok-123" {
			t.Errorf("expected token tok-123, got %q", store.Token())
		}

		reloaded := NewStore(db)
		if err := reloaded.Load(); err != nil {
			t.Fatalf("failed to reload session: %v", err)
		}
		if reloaded.Token() != "tok-123" {
			t.Errorf("expected reloaded token tok-123, got %q", reloaded.Token())
		}
		if !reloaded.Valid() {
			t.Error("reloaded session should be valid")
		}
	})

	t.Run("Save Replaces Existing", func(t *testing.T) {
		db := newTestDB(t)
		store := NewStore(db)
		expiry := time.Now().Add(time.Hour)

		if err := store.Save("first", expiry); err != nil {
			t.Fatalf("failed to save first session: %v", err)
		}
		if err := store.Save("second", expiry); err != nil {
			t.Fatalf("failed to save second session: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count); err != nil {
			t.Fatalf("failed to count sessions: %v", err)
		}
		if count != 1 {
			t.Errorf("expected a single session row, got %d", count)
		}
		if store.Token() != "second" {
			t.Errorf("expected token second, got %q", store.Token())
		}
	})

	t.Run("Save Empty Token", func(t *testing.T) {
		store := NewStore(newTestDB(t))
		if err := store.Save("", time.Now().Add(time.Hour)); err == nil {
			t.Error("expected error saving empty token")
		}
	})

	t.Run("Expired Session Is Invalid", func(t *testing.T) {
		store := NewStore(newTestDB(t))
		if err := store.Save("tok", time.Now().Add(time.Hour)); err != nil {
			t.Fatalf("failed to save session: %v", err)
		}

		store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		if store.Valid() {
			t.Error("session past its expiry should be invalid")
		}
	})

	t.Run("Invalidate", func(t *testing.T) {
		db := newTestDB(t)
		store := NewStore(db)
		if err := store.Save("tok", time.Now().Add(time.Hour)); err != nil {
			t.Fatalf("failed to save session: %v", err)
		}

		store.Invalidate()

		if store.Valid() {
			t.Error("invalidated session should not be valid")
		}
		if store.Token() != "" {
			t.Errorf("expected empty token after invalidate, got %q", store.Token())
		}
		if !store.Ready() {
			t.Error("invalidation should not reset readiness")
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count); err != nil {
			t.Fatalf("failed to count sessions: %v", err)
		}
		if count != 0 {
			t.Errorf("expected sessions to be deleted, got %d rows", count)
		}
	})
}
