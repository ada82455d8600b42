package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
)

// ClassroomStore captures the persistence operations needed by the service.
type ClassroomStore interface {
	CreateClassroom(ctx context.Context, classroom Classroom) (Classroom, error)
	GetClassroom(ctx context.Context, id string) (Classroom, error)
	UpdateClassroom(ctx context.Context, classroom Classroom) (Classroom, error)
	ListClassrooms(ctx context.Context, includeInactive bool) ([]Classroom, error)
}

// ClassroomService orchestrates validation, authorization, and persistence
// for the classroom catalog.
type ClassroomService struct {
	classrooms  ClassroomStore
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewClassroomService constructs a classroom service with the provided dependencies.
func NewClassroomService(classrooms ClassroomStore, idGenerator func() string, now func() time.Time) *ClassroomService {
	return NewClassroomServiceWithLogger(classrooms, idGenerator, now, nil)
}

// NewClassroomServiceWithLogger constructs a classroom service with a specified logger.
func NewClassroomServiceWithLogger(classrooms ClassroomStore, idGenerator func() string, now func() time.Time, logger *slog.Logger) *ClassroomService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &ClassroomService{classrooms: classrooms, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *ClassroomService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ClassroomService", operation, attrs...)
}

// CreateClassroom validates input and persists a new classroom for administrators.
func (s *ClassroomService) CreateClassroom(ctx context.Context, params CreateClassroomParams) (classroom Classroom, err error) {
	if s == nil {
		err = fmt.Errorf("ClassroomService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateClassroom",
		"principal_id", params.Principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create classroom", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("classroom_id", classroom.ID).InfoContext(ctx, "classroom created")
	}()

	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	vErr := validateClassroomInput(params.Input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	createdAt := s.now()
	classroom = Classroom{
		ID:          s.idGenerator(),
		Name:        strings.TrimSpace(params.Input.Name),
		RoomNumber:  strings.TrimSpace(params.Input.RoomNumber),
		Building:    strings.TrimSpace(params.Input.Building),
		Floor:       params.Input.Floor,
		Capacity:    params.Input.Capacity,
		Features:    params.Input.Features,
		Description: params.Input.Description,
		IsActive:    true,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}

	if s.classrooms == nil {
		return
	}
	var persisted Classroom
	persisted, err = s.classrooms.CreateClassroom(ctx, classroom)
	if err != nil {
		err = mapStoreError(err)
		return
	}
	classroom = persisted
	return
}

// UpdateClassroom validates input and updates an existing classroom for administrators.
func (s *ClassroomService) UpdateClassroom(ctx context.Context, params UpdateClassroomParams) (classroom Classroom, err error) {
	if s == nil {
		err = fmt.Errorf("ClassroomService is nil")
		return
	}
	if s.classrooms == nil {
		err = fmt.Errorf("classroom store not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateClassroom",
		"principal_id", params.Principal.UserID,
		"classroom_id", params.ClassroomID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update classroom", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "classroom updated")
	}()

	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	var existing Classroom
	existing, err = s.classrooms.GetClassroom(ctx, params.ClassroomID)
	if err != nil {
		err = mapStoreError(err)
		return
	}

	vErr := validateClassroomInput(params.Input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.Name = strings.TrimSpace(params.Input.Name)
	updated.RoomNumber = strings.TrimSpace(params.Input.RoomNumber)
	updated.Building = strings.TrimSpace(params.Input.Building)
	updated.Floor = params.Input.Floor
	updated.Capacity = params.Input.Capacity
	updated.Features = params.Input.Features
	updated.Description = params.Input.Description
	updated.UpdatedAt = s.now()

	var persisted Classroom
	persisted, err = s.classrooms.UpdateClassroom(ctx, updated)
	if err != nil {
		err = mapStoreError(err)
		return
	}
	classroom = persisted
	return
}

// DeactivateClassroom retires a classroom from the bookable catalog without
// deleting its reservation history. Physical purge stays an administrative
// database task.
func (s *ClassroomService) DeactivateClassroom(ctx context.Context, principal Principal, classroomID string) (classroom Classroom, err error) {
	if s == nil || s.classrooms == nil {
		err = fmt.Errorf("classroom store not configured")
		return
	}

	logger := s.loggerWith(ctx, "DeactivateClassroom",
		"principal_id", principal.UserID,
		"classroom_id", classroomID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to deactivate classroom", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "classroom deactivated")
	}()

	if !principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	var existing Classroom
	existing, err = s.classrooms.GetClassroom(ctx, classroomID)
	if err != nil {
		err = mapStoreError(err)
		return
	}

	existing.IsActive = false
	existing.UpdatedAt = s.now()

	var persisted Classroom
	persisted, err = s.classrooms.UpdateClassroom(ctx, existing)
	if err != nil {
		err = mapStoreError(err)
		return
	}
	classroom = persisted
	return
}

// GetClassroom returns a single classroom.
func (s *ClassroomService) GetClassroom(ctx context.Context, id string) (Classroom, error) {
	if s == nil || s.classrooms == nil {
		return Classroom{}, fmt.Errorf("classroom store not configured")
	}
	classroom, err := s.classrooms.GetClassroom(ctx, id)
	if err != nil {
		return Classroom{}, mapStoreError(err)
	}
	return classroom, nil
}

// ListClassrooms enumerates classrooms ordered by name. Inactive rooms are
// only included for administrators.
func (s *ClassroomService) ListClassrooms(ctx context.Context, principal Principal, includeInactive bool) ([]Classroom, error) {
	if s == nil || s.classrooms == nil {
		return nil, fmt.Errorf("classroom store not configured")
	}
	if includeInactive && !principal.IsAdmin {
		includeInactive = false
	}
	classrooms, err := s.classrooms.ListClassrooms(ctx, includeInactive)
	if err != nil {
		return nil, mapStoreError(err)
	}
	ordered := make([]Classroom, len(classrooms))
	copy(ordered, classrooms)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Name == ordered[j].Name {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].Name < ordered[j].Name
	})
	return ordered, nil
}

func validateClassroomInput(input ClassroomInput) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if input.Capacity <= 0 {
		vErr.add("capacity", "capacity must be positive")
	}
	if input.Floor < 0 {
		vErr.add("floor", "floor must not be negative")
	}
	return vErr
}
