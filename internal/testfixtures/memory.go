package testfixtures

import (
	"github.com/altayburakhan/ClassroomDB/internal/persistence"
	"github.com/altayburakhan/ClassroomDB/internal/persistence/memory"
)

// MemoryHarness provides repository access backed by the in-memory store for
// tests that do not need a real database file. One store value backs every
// repository, matching the shared-database shape of the SQLite harness.
type MemoryHarness struct {
	Users         persistence.UserRepository
	Classrooms    persistence.ClassroomRepository
	Terms         persistence.TermRepository
	Reservations  persistence.ReservationRepository
	Feedback      persistence.FeedbackRepository
	Notifications persistence.NotificationRepository
	Sessions      persistence.SessionRepository
}

// NewMemoryHarness constructs a MemoryHarness over a fresh store.
func NewMemoryHarness() *MemoryHarness {
	store := memory.NewStore()
	return &MemoryHarness{
		Users:         store,
		Classrooms:    store,
		Terms:         store,
		Reservations:  store,
		Feedback:      store,
		Notifications: store,
		Sessions:      store,
	}
}
