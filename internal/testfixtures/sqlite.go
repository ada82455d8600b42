package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/altayburakhan/ClassroomDB/internal/persistence"
	"github.com/altayburakhan/ClassroomDB/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a temporary SQLite
// database for integration-style persistence tests.
type SQLiteHarness struct {
	Users         persistence.UserRepository
	Classrooms    persistence.ClassroomRepository
	Terms         persistence.TermRepository
	Reservations  persistence.ReservationRepository
	Feedback      persistence.FeedbackRepository
	Notifications persistence.NotificationRepository
	Sessions      persistence.SessionRepository

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a SQLiteHarness using a temporary database file
// that is migrated automatically. Callers may optionally invoke Close, but the
// helper also registers a cleanup callback with the provided testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	dir := tb.TempDir()
	path := filepath.Join(dir, "classroom.db")

	pool, err := sqlite.Open(path)
	if err != nil {
		tb.Fatalf("failed to open database: %v", err)
	}

	if err := pool.Migrate(context.Background()); err != nil {
		_ = pool.Close()
		tb.Fatalf("failed to migrate database: %v", err)
	}

	harness := &SQLiteHarness{
		Users:         sqlite.NewUserRepository(pool),
		Classrooms:    sqlite.NewClassroomRepository(pool),
		Terms:         sqlite.NewTermRepository(pool),
		Reservations:  sqlite.NewReservationRepository(pool),
		Feedback:      sqlite.NewFeedbackRepository(pool),
		Notifications: sqlite.NewNotificationRepository(pool),
		Sessions:      sqlite.NewSessionRepository(pool),
		cleanup: func() {
			_ = pool.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}
