package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/workers/internal/worker"
)

// createTestStore creates a new temp-file store for testing.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestWorker builds a worker with a fixed zodiac sign.
func createTestWorker(surname, name string, year int) worker.Worker {
	return worker.Worker{
		Surname: surname,
		Name:    name,
		Zodiac:  "Leo",
		Year:    year,
	}
}

// countRows returns SELECT COUNT(*) for table.
func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
