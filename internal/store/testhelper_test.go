package store

import (
	"context"
	"testing"

	"standup-relay/internal/observability"
)

// setupTestStore returns a migrated in-memory sqlite store.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(DriverSQLite, ":memory:", observability.NewLogger())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return &s
}

func countSessions(t *testing.T, s *Store) int {
	t.Helper()
	var n int
	if err := s.DB().Get(&n, "SELECT COUNT(*) FROM standup_responses"); err != nil {
		t.Fatalf("failed to count sessions: %v", err)
	}
	return n
}
