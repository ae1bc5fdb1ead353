package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/glbridge/internal/transport"
)

// createTestStore creates a new store in a temp dir for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// mustRecord describes msg or fails the test.
func mustRecord(t *testing.T, session string, seq int64, kind transport.Kind, msg string) Record {
	t.Helper()
	rec, err := NewRecord(session, seq, kind, msg)
	if err != nil {
		t.Fatalf("NewRecord(%q) failed: %v", msg, err)
	}
	return rec
}
