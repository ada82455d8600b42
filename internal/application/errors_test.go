package application

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestValidationError_CollectsFields(t *testing.T) {
	t.Parallel()

	vErr := &ValidationError{}
	if vErr.HasErrors() {
		t.Fatal("empty ValidationError must not report errors")
	}
	vErr.add("start", "start is required")
	vErr.add("end", "end is required")
	if !vErr.HasErrors() {
		t.Fatal("expected errors after add")
	}
	if len(vErr.FieldErrors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(vErr.FieldErrors))
	}
}

func TestErrorKind_Labels(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, time.October, 6, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		err  error
		kind string
	}{
		{err: &ValidationError{FieldErrors: map[string]string{"start": "bad"}}, kind: "validation"},
		{err: &ConflictError{ReservationID: "res-1", Start: start, End: start.Add(time.Hour)}, kind: "conflict"},
		{err: &InvalidStateError{ReservationID: "res-1", Status: StatusApproved}, kind: "invalid_state"},
		{err: &TooLateError{ReservationID: "res-1", Start: start}, kind: "too_late"},
		{err: ErrTermNotFound, kind: "term_not_found"},
		{err: ErrNotFound, kind: "not_found"},
		{err: ErrUnauthorized, kind: "unauthorized"},
		{err: fmt.Errorf("wrapped: %w", ErrNotFound), kind: "not_found"},
		{err: errors.New("opaque"), kind: "unexpected"},
	}

	for _, tt := range tests {
		if got := ErrorKind(tt.err); got != tt.kind {
			t.Errorf("ErrorKind(%v) = %q, want %q", tt.err, got, tt.kind)
		}
	}
}

func TestReservationStatus_Terminal(t *testing.T) {
	t.Parallel()

	if StatusPending.Terminal() {
		t.Fatal("pending must not be terminal")
	}
	for _, status := range []ReservationStatus{StatusApproved, StatusRejected, StatusCancelled} {
		if !status.Terminal() {
			t.Fatalf("%s must be terminal", status)
		}
	}
	if ValidStatus("archived") {
		t.Fatal("unknown status must not validate")
	}
}
