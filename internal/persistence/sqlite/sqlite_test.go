package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/altayburakhan/ClassroomDB/internal/persistence"
)

func newTestPool(t *testing.T) *ConnectionPool {
	t.Helper()

	pool, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := pool.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	if err := pool.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return pool
}

func testTime(hour, minute int) time.Time {
	return time.Date(2025, time.October, 6, hour, minute, 0, 0, time.UTC)
}

func seedUser(t *testing.T, pool *ConnectionPool, id string) persistence.User {
	t.Helper()

	user := persistence.User{
		ID:           id,
		Email:        id + "@campus.example",
		DisplayName:  "User " + id,
		PasswordHash: "hash-" + id,
		CreatedAt:    testTime(8, 0),
		UpdatedAt:    testTime(8, 0),
	}
	if err := NewUserRepository(pool).CreateUser(context.Background(), user); err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
	return user
}

func seedClassroom(t *testing.T, pool *ConnectionPool, id, name string) persistence.Classroom {
	t.Helper()

	classroom := persistence.Classroom{
		ID:        id,
		Name:      name,
		Floor:     1,
		Capacity:  30,
		IsActive:  true,
		CreatedAt: testTime(8, 0),
		UpdatedAt: testTime(8, 0),
	}
	if err := NewClassroomRepository(pool).CreateClassroom(context.Background(), classroom); err != nil {
		t.Fatalf("seed classroom %s: %v", id, err)
	}
	return classroom
}

func seedTerm(t *testing.T, pool *ConnectionPool, id string) persistence.Term {
	t.Helper()

	term := persistence.Term{
		ID:        id,
		Name:      "Fall 2025",
		StartDate: time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
		CreatedAt: testTime(8, 0),
		UpdatedAt: testTime(8, 0),
	}
	if err := NewTermRepository(pool).CreateTerm(context.Background(), term); err != nil {
		t.Fatalf("seed term %s: %v", id, err)
	}
	return term
}

func seedReservationRow(id, classroomID, requesterID, termID, status string, start, end time.Time) persistence.Reservation {
	return persistence.Reservation{
		ID:          id,
		ClassroomID: classroomID,
		RequesterID: requesterID,
		TermID:      termID,
		Start:       start,
		End:         end,
		Purpose:     "Lecture",
		Status:      status,
		CreatedAt:   testTime(7, 0),
		UpdatedAt:   testTime(7, 0),
	}
}
