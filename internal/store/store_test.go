package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
)

func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() #%d failed: %v", i+1, err)
		}
		var count int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count); err != nil {
			t.Errorf("query failed: %v", err)
		}
		s.Close()
	}
}

func TestOpen_Pragmas(t *testing.T) {
	s := createTestStore(t)

	checks := map[string]string{
		"journal_mode": "wal",
		"synchronous":  "1",
		"busy_timeout": "5000",
		"foreign_keys": "1",
		"user_version": "2",
	}
	for name, expected := range checks {
		if err := s.verifyPragma(name, expected); err != nil {
			t.Error(err)
		}
	}
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "dir", "test.db"))
	if err == nil {
		t.Fatal("expected error for unreachable path")
	}
}

func TestClose_NilDB(t *testing.T) {
	var s Store
	if err := s.Close(); err != nil {
		t.Errorf("Close() on zero Store = %v", err)
	}
}

func TestOpen_MigratesV1Results(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	old, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("sql.Open() failed: %v", err)
	}
	for _, stmt := range []string{
		`CREATE TABLE results (
			run_id TEXT NOT NULL, seq INTEGER NOT NULL, test_uri TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '', comment TEXT NOT NULL DEFAULT '',
			specifications TEXT NOT NULL DEFAULT '[]', ok INTEGER NOT NULL,
			detail TEXT NOT NULL DEFAULT '', duration_ns INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (run_id, seq))`,
		`INSERT INTO results (run_id, seq, test_uri, ok) VALUES ('run-0', 0, 'http://ex.org/t', 1)`,
		`PRAGMA user_version = 1`,
	} {
		if _, err := old.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	old.Close()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	var anonymous bool
	if err := s.db.QueryRow("SELECT anonymous FROM results WHERE run_id = 'run-0'").Scan(&anonymous); err != nil {
		t.Fatalf("query anonymous: %v", err)
	}
	if anonymous {
		t.Error("migrated row should not be anonymous")
	}
	if err := s.verifyPragma("user_version", "2"); err != nil {
		t.Error(err)
	}
}
