package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/altayburakhan/ClassroomDB/internal/persistence"
)

func TestFeedbackRepository_ListFeedbackForClassroom_NewestFirst(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t)
	repo := NewFeedbackRepository(pool)
	ctx := context.Background()
	seedUser(t, pool, "user-1")
	seedClassroom(t, pool, "room-1", "B-101")
	seedClassroom(t, pool, "room-2", "B-102")

	rows := []persistence.Feedback{
		{ID: "fb-1", AuthorID: "user-1", ClassroomID: "room-1", Rating: 4, Comment: "Good acoustics", CreatedAt: testTime(9, 0)},
		{ID: "fb-2", AuthorID: "user-1", ClassroomID: "room-1", Rating: 2, Comment: "Projector broken", CreatedAt: testTime(10, 0)},
		{ID: "fb-3", AuthorID: "user-1", ClassroomID: "room-2", Rating: 5, Comment: "Spacious", CreatedAt: testTime(9, 30)},
	}
	for _, row := range rows {
		if err := repo.CreateFeedback(ctx, row); err != nil {
			t.Fatalf("create %s: %v", row.ID, err)
		}
	}

	got, err := repo.ListFeedbackForClassroom(ctx, "room-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "fb-2" || got[1].ID != "fb-1" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got[0].Rating != 2 || got[0].Comment != "Projector broken" {
		t.Fatalf("unexpected row: %+v", got[0])
	}
}

func TestFeedbackRepository_CreateFeedback_RatingChecked(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t)
	repo := NewFeedbackRepository(pool)
	ctx := context.Background()
	seedUser(t, pool, "user-1")
	seedClassroom(t, pool, "room-1", "B-101")

	bad := persistence.Feedback{
		ID:          "fb-1",
		AuthorID:    "user-1",
		ClassroomID: "room-1",
		Rating:      6,
		Comment:     "Off the scale",
		CreatedAt:   testTime(9, 0),
	}
	err := repo.CreateFeedback(ctx, bad)
	if !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("err = %v, want ErrConstraintViolation", err)
	}
}

func TestFeedbackRepository_CreateFeedback_UnknownClassroom(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t)
	repo := NewFeedbackRepository(pool)
	ctx := context.Background()
	seedUser(t, pool, "user-1")

	orphan := persistence.Feedback{
		ID:          "fb-1",
		AuthorID:    "user-1",
		ClassroomID: "room-missing",
		Rating:      3,
		Comment:     "Where is this room",
		CreatedAt:   testTime(9, 0),
	}
	err := repo.CreateFeedback(ctx, orphan)
	if !errors.Is(err, persistence.ErrForeignKeyViolation) {
		t.Fatalf("err = %v, want ErrForeignKeyViolation", err)
	}
}
