package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if _, ok, err := SchemaVersion(db); err != nil || ok {
		t.Fatalf("expected no version before migrating, got ok=%v err=%v", ok, err)
	}

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("repeat migrate up failed: %v", err)
	}

	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}

	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	version, ok, err := SchemaVersion(db)
	if err != nil || !ok || version != 1 {
		t.Fatalf("unexpected schema version %d ok=%v err=%v", version, ok, err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	created, err := repo.CreateTodo(t.Context(), "Roundtrip todo")
	if err != nil {
		t.Fatalf("insert after roundtrip failed: %v", err)
	}

	got, err := repo.GetTodo(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if got.Body != "Roundtrip todo" {
		t.Fatalf("unexpected body after roundtrip: %q", got.Body)
	}
}
