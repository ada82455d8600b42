// Package scheduler contains the pure conflict-detection rules for classroom
// bookings. The package has no persistence knowledge; callers load the
// candidate classroom's bookings and hand them over.
package scheduler

import (
	"time"

	"github.com/altayburakhan/ClassroomDB/internal/timeslot"
)

// BookingStatus mirrors the reservation lifecycle states relevant to
// conflict checks.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking is the slice of a reservation the conflict checker needs.
type Booking struct {
	ID          string
	ClassroomID string
	Start       time.Time
	End         time.Time
	Status      BookingStatus
}

// Conflict identifies the existing booking that collides with a candidate.
type Conflict struct {
	BookingID string
	Start     time.Time
	End       time.Time
}

// blocksSlot reports whether the booking still occupies its time slot.
// Only cancellation releases the slot; a rejected booking keeps blocking
// until it is cancelled or the schedule moves on.
func blocksSlot(status BookingStatus) bool {
	return status != StatusCancelled
}

// FindConflict returns the first existing booking in the same classroom that
// overlaps the candidate interval, or nil when the slot is free. excludeID
// lets an edit skip the booking being edited.
func FindConflict(existing []Booking, candidate Booking, excludeID string) *Conflict {
	for _, booking := range existing {
		if booking.ID == candidate.ID || (excludeID != "" && booking.ID == excludeID) {
			continue
		}
		if booking.ClassroomID != candidate.ClassroomID {
			continue
		}
		if !blocksSlot(booking.Status) {
			continue
		}
		if timeslot.Overlaps(booking.Start, booking.End, candidate.Start, candidate.End) {
			return &Conflict{BookingID: booking.ID, Start: booking.Start, End: booking.End}
		}
	}
	return nil
}

// HasConflict is a convenience wrapper over FindConflict.
func HasConflict(existing []Booking, candidate Booking, excludeID string) bool {
	return FindConflict(existing, candidate, excludeID) != nil
}
