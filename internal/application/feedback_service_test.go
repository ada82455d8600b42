package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

type stubFeedbackStore struct {
	mu      sync.Mutex
	entries map[string]Feedback
}

func newStubFeedbackStore() *stubFeedbackStore {
	return &stubFeedbackStore{entries: make(map[string]Feedback)}
}

func (s *stubFeedbackStore) CreateFeedback(_ context.Context, feedback Feedback) (Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[feedback.ID] = feedback
	return feedback, nil
}

func (s *stubFeedbackStore) ListFeedbackForClassroom(_ context.Context, classroomID string) ([]Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Feedback
	for _, entry := range s.entries {
		if entry.ClassroomID == classroomID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func newFeedbackFixture(t *testing.T, requireApprovedStay bool, reservations *stubReservationStore) *FeedbackService {
	t.Helper()
	if reservations == nil {
		reservations = newStubReservationStore()
	}
	return NewFeedbackService(FeedbackServiceDeps{
		Feedback:            newStubFeedbackStore(),
		Classrooms:          &stubClassroomCatalog{},
		Reservations:        reservations,
		IDGenerator:         sequentialIDs("fb"),
		Now:                 fixedTime,
		RequireApprovedStay: requireApprovedStay,
	})
}

func TestFeedbackService_Submit_ValidatesInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input FeedbackInput
		field string
	}{
		{name: "missing classroom", input: FeedbackInput{Rating: 4, Comment: "fine"}, field: "classroom_id"},
		{name: "rating too low", input: FeedbackInput{ClassroomID: "room-1", Rating: 0, Comment: "fine"}, field: "rating"},
		{name: "rating too high", input: FeedbackInput{ClassroomID: "room-1", Rating: 6, Comment: "fine"}, field: "rating"},
		{name: "empty comment", input: FeedbackInput{ClassroomID: "room-1", Rating: 4, Comment: "  "}, field: "comment"},
		{name: "comment too long", input: FeedbackInput{ClassroomID: "room-1", Rating: 4, Comment: strings.Repeat("x", 501)}, field: "comment"},
		{name: "multibyte comment too long", input: FeedbackInput{ClassroomID: "room-1", Rating: 4, Comment: strings.Repeat("ş", 501)}, field: "comment"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			service := newFeedbackFixture(t, false, nil)
			_, err := service.Submit(context.Background(), SubmitFeedbackParams{
				Principal: Principal{UserID: "user-1"},
				Input:     tt.input,
			})
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := vErr.FieldErrors[tt.field]; !ok {
				t.Fatalf("expected field %q, got %v", tt.field, vErr.FieldErrors)
			}
		})
	}
}

func TestFeedbackService_Submit_BoundaryComment(t *testing.T) {
	t.Parallel()

	service := newFeedbackFixture(t, false, nil)
	feedback, err := service.Submit(context.Background(), SubmitFeedbackParams{
		Principal: Principal{UserID: "user-1"},
		Input:     FeedbackInput{ClassroomID: "room-1", Rating: 5, Comment: strings.Repeat("x", 500)},
	})
	if err != nil {
		t.Fatalf("a 500 character comment is legal, got %v", err)
	}
	if feedback.Rating != 5 {
		t.Fatalf("expected rating 5, got %d", feedback.Rating)
	}
}

func TestFeedbackService_Submit_CountsCommentLengthInRunes(t *testing.T) {
	t.Parallel()

	// 500 Turkish characters occupy 1000 bytes; the cap counts characters.
	service := newFeedbackFixture(t, false, nil)
	_, err := service.Submit(context.Background(), SubmitFeedbackParams{
		Principal: Principal{UserID: "user-1"},
		Input:     FeedbackInput{ClassroomID: "room-1", Rating: 4, Comment: strings.Repeat("ş", 500)},
	})
	if err != nil {
		t.Fatalf("a 500 character multibyte comment is legal, got %v", err)
	}
}

func TestFeedbackService_Submit_RequiresApprovedStayWhenEnabled(t *testing.T) {
	t.Parallel()

	reservations := newStubReservationStore()
	service := newFeedbackFixture(t, true, reservations)

	_, err := service.Submit(context.Background(), SubmitFeedbackParams{
		Principal: Principal{UserID: "user-1"},
		Input:     FeedbackInput{ClassroomID: "room-1", Rating: 4, Comment: "clean and quiet"},
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError without an approved stay, got %v", err)
	}

	approved := pendingReservation("res-1", "room-1", "user-1", fixedTime(), fixedTime().Add(2*time.Hour))
	approved.Status = StatusApproved
	reservations.reservations[approved.ID] = approved

	if _, err := service.Submit(context.Background(), SubmitFeedbackParams{
		Principal: Principal{UserID: "user-1"},
		Input:     FeedbackInput{ClassroomID: "room-1", Rating: 4, Comment: "clean and quiet"},
	}); err != nil {
		t.Fatalf("approved stay should unlock feedback, got %v", err)
	}
}

func TestFeedbackService_ListForClassroom_NewestFirst(t *testing.T) {
	t.Parallel()

	store := newStubFeedbackStore()
	store.entries["fb-old"] = Feedback{ID: "fb-old", ClassroomID: "room-1", Rating: 3, Comment: "ok", CreatedAt: fixedTime()}
	store.entries["fb-new"] = Feedback{ID: "fb-new", ClassroomID: "room-1", Rating: 5, Comment: "great", CreatedAt: fixedTime().Add(time.Hour)}
	store.entries["fb-other"] = Feedback{ID: "fb-other", ClassroomID: "room-2", Rating: 1, Comment: "cold", CreatedAt: fixedTime()}

	service := NewFeedbackService(FeedbackServiceDeps{Feedback: store})
	entries, err := service.ListForClassroom(context.Background(), "room-1")
	if err != nil {
		t.Fatalf("ListForClassroom returned error: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "fb-new" || entries[1].ID != "fb-old" {
		t.Fatalf("expected newest first for room-1, got %+v", entries)
	}
}
