package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/altayburakhan/ClassroomDB/internal/persistence"
)

func TestClassroomRepository_CreateClassroom_RoundTrip(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t)
	repo := NewClassroomRepository(pool)
	ctx := context.Background()

	features := "projector,whiteboard"
	classroom := persistence.Classroom{
		ID:        "room-1",
		Name:      "B-101",
		Floor:     2,
		Capacity:  45,
		Features:  &features,
		IsActive:  true,
		CreatedAt: testTime(8, 0),
		UpdatedAt: testTime(8, 0),
	}
	if err := repo.CreateClassroom(ctx, classroom); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetClassroom(ctx, "room-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "B-101" || got.Capacity != 45 || !got.IsActive {
		t.Fatalf("unexpected row: %+v", got)
	}
	if got.Features == nil || *got.Features != features {
		t.Fatalf("features = %v", got.Features)
	}
	if got.RoomNumber != nil || got.Building != nil {
		t.Fatalf("optional fields should stay nil: %+v", got)
	}
}

func TestClassroomRepository_CreateClassroom_ActiveNameIsUnique(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t)
	repo := NewClassroomRepository(pool)
	ctx := context.Background()

	seedClassroom(t, pool, "room-1", "B-101")

	duplicate := persistence.Classroom{
		ID:        "room-2",
		Name:      "B-101",
		Floor:     1,
		Capacity:  20,
		IsActive:  true,
		CreatedAt: testTime(8, 0),
		UpdatedAt: testTime(8, 0),
	}
	err := repo.CreateClassroom(ctx, duplicate)
	if !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
}

func TestClassroomRepository_DeactivatedNameCanBeReused(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t)
	repo := NewClassroomRepository(pool)
	ctx := context.Background()

	original := seedClassroom(t, pool, "room-1", "B-101")
	original.IsActive = false
	if err := repo.UpdateClassroom(ctx, original); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	replacement := persistence.Classroom{
		ID:        "room-2",
		Name:      "B-101",
		Floor:     1,
		Capacity:  30,
		IsActive:  true,
		CreatedAt: testTime(9, 0),
		UpdatedAt: testTime(9, 0),
	}
	if err := repo.CreateClassroom(ctx, replacement); err != nil {
		t.Fatalf("reuse name after deactivation: %v", err)
	}
}

func TestClassroomRepository_CreateClassroom_CapacityChecked(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t)
	repo := NewClassroomRepository(pool)

	bad := persistence.Classroom{
		ID:        "room-1",
		Name:      "B-101",
		Capacity:  0,
		IsActive:  true,
		CreatedAt: testTime(8, 0),
		UpdatedAt: testTime(8, 0),
	}
	err := repo.CreateClassroom(context.Background(), bad)
	if !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("err = %v, want ErrConstraintViolation", err)
	}
}

func TestClassroomRepository_ListClassrooms_FiltersInactive(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t)
	repo := NewClassroomRepository(pool)
	ctx := context.Background()

	seedClassroom(t, pool, "room-1", "B-101")
	retired := seedClassroom(t, pool, "room-2", "A-001")
	retired.IsActive = false
	if err := repo.UpdateClassroom(ctx, retired); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	active, err := repo.ListClassrooms(ctx, false)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].ID != "room-1" {
		t.Fatalf("active rows: %+v", active)
	}

	all, err := repo.ListClassrooms(ctx, true)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 || all[0].Name != "A-001" || all[1].Name != "B-101" {
		t.Fatalf("rows should be name ordered: %+v", all)
	}
}

func TestClassroomRepository_UpdateClassroom_MissingRow(t *testing.T) {
	t.Parallel()

	pool := newTestPool(t)
	repo := NewClassroomRepository(pool)

	ghost := persistence.Classroom{
		ID:        "room-missing",
		Name:      "Nowhere",
		Capacity:  10,
		UpdatedAt: testTime(8, 0),
	}
	err := repo.UpdateClassroom(context.Background(), ghost)
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
