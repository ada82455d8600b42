package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// FeedbackStore captures the persistence operations needed by the service.
type FeedbackStore interface {
	CreateFeedback(ctx context.Context, feedback Feedback) (Feedback, error)
	ListFeedbackForClassroom(ctx context.Context, classroomID string) ([]Feedback, error)
}

const maxFeedbackCommentLength = 500

// FeedbackService records classroom ratings left by instructors.
type FeedbackService struct {
	feedback     FeedbackStore
	classrooms   ClassroomCatalog
	reservations ReservationStore
	idGenerator  func() string
	now          func() time.Time
	// requireApprovedStay gates submissions on the author having held an
	// approved reservation for the classroom.
	requireApprovedStay bool
	logger              *slog.Logger
}

// FeedbackServiceDeps bundles the dependencies for NewFeedbackService.
type FeedbackServiceDeps struct {
	Feedback            FeedbackStore
	Classrooms          ClassroomCatalog
	Reservations        ReservationStore
	IDGenerator         func() string
	Now                 func() time.Time
	RequireApprovedStay bool
	Logger              *slog.Logger
}

// NewFeedbackService constructs a feedback service with the provided dependencies.
func NewFeedbackService(deps FeedbackServiceDeps) *FeedbackService {
	idGenerator := deps.IDGenerator
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &FeedbackService{
		feedback:            deps.Feedback,
		classrooms:          deps.Classrooms,
		reservations:        deps.Reservations,
		idGenerator:         idGenerator,
		now:                 now,
		requireApprovedStay: deps.RequireApprovedStay,
		logger:              defaultLogger(deps.Logger),
	}
}

func (s *FeedbackService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "FeedbackService", operation, attrs...)
}

// Submit validates and persists a feedback entry authored by the principal.
func (s *FeedbackService) Submit(ctx context.Context, params SubmitFeedbackParams) (feedback Feedback, err error) {
	if s == nil || s.feedback == nil {
		err = fmt.Errorf("feedback store not configured")
		return
	}

	logger := s.loggerWith(ctx, "Submit",
		"principal_id", params.Principal.UserID,
		"classroom_id", params.Input.ClassroomID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to submit feedback", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("feedback_id", feedback.ID).InfoContext(ctx, "feedback submitted")
	}()

	vErr := &ValidationError{}
	if strings.TrimSpace(params.Input.ClassroomID) == "" {
		vErr.add("classroom_id", "classroom is required")
	}
	if params.Input.Rating < 1 || params.Input.Rating > 5 {
		vErr.add("rating", "rating must be between 1 and 5")
	}
	comment := strings.TrimSpace(params.Input.Comment)
	if comment == "" {
		vErr.add("comment", "comment is required")
	} else if utf8.RuneCountInString(comment) > maxFeedbackCommentLength {
		vErr.add("comment", fmt.Sprintf("comment must be at most %d characters", maxFeedbackCommentLength))
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	if s.classrooms != nil {
		if _, lookupErr := s.classrooms.GetClassroom(ctx, params.Input.ClassroomID); lookupErr != nil {
			err = mapStoreError(lookupErr)
			return
		}
	}

	if s.requireApprovedStay {
		err = s.ensureApprovedStay(ctx, params.Principal.UserID, params.Input.ClassroomID)
		if err != nil {
			return
		}
	}

	feedback = Feedback{
		ID:          s.idGenerator(),
		AuthorID:    params.Principal.UserID,
		ClassroomID: params.Input.ClassroomID,
		Rating:      params.Input.Rating,
		Comment:     comment,
		CreatedAt:   s.now(),
	}
	var persisted Feedback
	persisted, err = s.feedback.CreateFeedback(ctx, feedback)
	if err != nil {
		err = mapStoreError(err)
		return
	}
	feedback = persisted
	return
}

// ListForClassroom returns feedback for a classroom, newest first.
func (s *FeedbackService) ListForClassroom(ctx context.Context, classroomID string) ([]Feedback, error) {
	if s == nil || s.feedback == nil {
		return nil, fmt.Errorf("feedback store not configured")
	}
	entries, err := s.feedback.ListFeedbackForClassroom(ctx, classroomID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	ordered := make([]Feedback, len(entries))
	copy(ordered, entries)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})
	return ordered, nil
}

func (s *FeedbackService) ensureApprovedStay(ctx context.Context, userID, classroomID string) error {
	if s.reservations == nil {
		return nil
	}
	matches, err := s.reservations.ListReservations(ctx, ReservationStoreFilter{
		ClassroomID: classroomID,
		RequesterID: userID,
		Statuses:    []ReservationStatus{StatusApproved},
	})
	if err != nil {
		return mapStoreError(err)
	}
	if len(matches) == 0 {
		vErr := &ValidationError{}
		vErr.add("classroom_id", "feedback requires an approved reservation for this classroom")
		return vErr
	}
	return nil
}
