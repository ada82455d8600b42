package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/altayburakhan/ClassroomDB/internal/persistence"
)

func TestTermRepository_CreateTerm_RoundTrip(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t)
	repo := NewTermRepository(pool)
	ctx := context.Background()

	description := "Autumn semester"
	term := persistence.Term{
		ID:          "term-fall",
		Name:        "Fall 2025",
		StartDate:   time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
		IsActive:    true,
		Description: &description,
		CreatedAt:   testTime(8, 0),
		UpdatedAt:   testTime(8, 0),
	}
	if err := repo.CreateTerm(ctx, term); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetTerm(ctx, "term-fall")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.StartDate.Equal(term.StartDate) || !got.EndDate.Equal(term.EndDate) {
		t.Fatalf("dates mismatch: %+v", got)
	}
	if got.Description == nil || *got.Description != description {
		t.Fatalf("description = %v", got.Description)
	}
}

func TestTermRepository_ListTerms_StartDateOrdered(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t)
	repo := NewTermRepository(pool)
	ctx := context.Background()

	spring := persistence.Term{
		ID:        "term-spring",
		Name:      "Spring 2026",
		StartDate: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
		CreatedAt: testTime(8, 0),
		UpdatedAt: testTime(8, 0),
	}
	if err := repo.CreateTerm(ctx, spring); err != nil {
		t.Fatalf("create spring: %v", err)
	}
	seedTerm(t, pool, "term-fall")

	got, err := repo.ListTerms(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "term-fall" || got[1].ID != "term-spring" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestTermRepository_UpdateTerm_MissingRow(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t)
	repo := NewTermRepository(pool)

	ghost := persistence.Term{
		ID:        "term-missing",
		Name:      "Nowhere",
		StartDate: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: testTime(8, 0),
	}
	err := repo.UpdateTerm(context.Background(), ghost)
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
