package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/roach88/glbridge/internal/transport"
)

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glbridge.db")
	ctx := context.Background()

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first Open() failed: %v", err)
	}
	if err := s1.CreateSession(ctx, "s1"); err != nil {
		t.Fatalf("CreateSession() failed: %v", err)
	}
	if err := s1.Append(ctx, mustRecord(t, "s1", 1, transport.KindAsync, `{"name":"createBuffer","args":[],"correlationId":1}`)); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}
	s1.Close()

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("reopen %d failed: %v", i, err)
		}
		last, err := s.LastSeq(ctx, "s1")
		s.Close()
		if err != nil {
			t.Fatalf("LastSeq() failed: %v", err)
		}
		if last != 1 {
			t.Errorf("reopen %d: LastSeq = %d, expected 1", i, last)
		}
	}
}

func TestOpen_ConnectionSettings(t *testing.T) {
	s := createTestStore(t)

	tests := []struct {
		name     string
		expected string
	}{
		{"journal_mode", "wal"},
		{"synchronous", "1"},
		{"busy_timeout", "5000"},
		{"foreign_keys", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.pragma(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.expected {
				t.Errorf("%s = %q, expected %q", tt.name, got, tt.expected)
			}
		})
	}
}

func TestOpen_Migrations(t *testing.T) {
	s := createTestStore(t)

	version, err := s.pragma("user_version")
	if err != nil {
		t.Fatal(err)
	}
	if version != "1" || currentSchemaVersion != 1 {
		t.Errorf("user_version = %s, currentSchemaVersion = %d, expected 1", version, currentSchemaVersion)
	}

	var name string
	err = s.db.QueryRow(`
		SELECT name FROM sqlite_master
		WHERE type = 'index' AND name = 'idx_messages_session_name'
	`).Scan(&name)
	if err != nil {
		t.Errorf("v1 index missing: %v", err)
	}
}

func TestOpen_MigratesVersionZero(t *testing.T) {
	s := createTestStore(t)
	if _, err := s.db.Exec(`DROP INDEX idx_messages_session_name`); err != nil {
		t.Fatal(err)
	}
	if _, err := s.db.Exec(`PRAGMA user_version = 0`); err != nil {
		t.Fatal(err)
	}

	if err := migrate(s.db); err != nil {
		t.Fatalf("migrate() failed: %v", err)
	}
	if v, _ := s.pragma("user_version"); v != "1" {
		t.Errorf("user_version = %s after migrate, expected 1", v)
	}
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "dir", "test.db"))
	if err == nil {
		t.Fatal("Open() should fail for a path in a missing directory")
	}
}

func TestAppend_ConcurrentWriters(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	if err := s.CreateSession(ctx, "s1"); err != nil {
		t.Fatal(err)
	}

	recs := make([]Record, 50)
	for i := range recs {
		recs[i] = mustRecord(t, "s1", int64(i+1), transport.KindAsync, "endFrame")
	}

	var wg sync.WaitGroup
	for _, rec := range recs {
		wg.Add(1)
		go func(rec Record) {
			defer wg.Done()
			if err := s.Append(ctx, rec); err != nil {
				t.Errorf("Append(%d) failed: %v", rec.Seq, err)
			}
		}(rec)
	}
	wg.Wait()

	records, err := s.ReadSession(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 50 {
		t.Errorf("got %d records, expected 50", len(records))
	}
}

func TestClose_NilDB(t *testing.T) {
	s := &Store{}
	if err := s.Close(); err != nil {
		t.Errorf("Close() on empty store: %v", err)
	}
}
