package application

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnauthorized is returned when the acting principal lacks permission for an operation.
	ErrUnauthorized = errors.New("application: unauthorized")
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrAlreadyExists is returned when a uniqueness rule rejects a write.
	ErrAlreadyExists = errors.New("application: already exists")
	// ErrTermNotFound is returned when no active term fully covers the
	// requested reservation range.
	ErrTermNotFound = errors.New("application: no active term covers the requested range")
	// ErrInvalidCredentials is returned when authentication fails.
	ErrInvalidCredentials = errors.New("application: invalid credentials")
	// ErrAccountDisabled is returned when a disabled account attempts to authenticate.
	ErrAccountDisabled = errors.New("application: account disabled")
	// ErrSessionExpired is returned when a session token is past its expiry.
	ErrSessionExpired = errors.New("application: session expired")
	// ErrSessionRevoked is returned when a session token has been revoked.
	ErrSessionRevoked = errors.New("application: session revoked")
)

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// ConflictError reports that the requested slot overlaps an existing
// non-cancelled reservation. It carries the colliding reservation so callers
// can display the occupied range.
type ConflictError struct {
	ReservationID string
	Start         time.Time
	End           time.Time
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("reservation conflicts with %s (%s - %s)",
		e.ReservationID, e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

// InvalidStateError reports a lifecycle transition attempted from a status
// that does not permit it.
type InvalidStateError struct {
	ReservationID string
	Status        ReservationStatus
}

// Error implements the error interface.
func (e *InvalidStateError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("reservation %s is %s and cannot transition", e.ReservationID, e.Status)
}

// TooLateError reports a cancellation attempted at or after the
// reservation's start time.
type TooLateError struct {
	ReservationID string
	Start         time.Time
}

// Error implements the error interface.
func (e *TooLateError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("reservation %s already started at %s", e.ReservationID, e.Start.Format(time.RFC3339))
}
