// Package timeslot provides the interval arithmetic shared by the
// reservation engine: half-open overlap tests, business-hours windows, and
// duration caps.
package timeslot

import (
	"fmt"
	"time"
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share interior time. Touching boundaries do not overlap, so
// back-to-back bookings are legal.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Minutes counts minutes after midnight and identifies a time of day.
type Minutes int

// ParseTimeOfDay converts an "HH:MM" string into minutes after midnight.
func ParseTimeOfDay(s string) (Minutes, error) {
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("timeslot: invalid time of day %q: %w", s, err)
	}
	return Minutes(parsed.Hour()*60 + parsed.Minute()), nil
}

// String renders the time of day back into "HH:MM" form.
func (m Minutes) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// BusinessHours describes the daily window reservations must fit inside.
type BusinessHours struct {
	Open  Minutes
	Close Minutes
}

// DefaultBusinessHours matches the 08:00-20:00 window the reservation
// validity rules use.
func DefaultBusinessHours() BusinessHours {
	return BusinessHours{Open: 8 * 60, Close: 20 * 60}
}

// Valid reports whether the window is non-empty and inside a single day.
func (h BusinessHours) Valid() bool {
	return h.Open >= 0 && h.Close <= 24*60 && h.Open < h.Close
}

// WithinBusinessHours reports whether both the start and end time-of-day
// components fall inside the window. The interval is assumed to be on a
// single calendar day; a multi-day interval fails the check.
func WithinBusinessHours(start, end time.Time, hours BusinessHours) bool {
	if !hours.Valid() {
		return false
	}
	if !sameDay(start, end) && !endsAtMidnight(start, end) {
		return false
	}
	startMin := minutesOfDay(start)
	endMin := minutesOfDay(end)
	if endMin == 0 && end.After(start) {
		endMin = 24 * 60
	}
	return startMin >= hours.Open && endMin <= hours.Close
}

// DurationHours returns the interval length in fractional hours.
func DurationHours(start, end time.Time) float64 {
	return end.Sub(start).Hours()
}

// StartOfDay truncates the timestamp to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the first instant of the following day. A date-grained
// bound that should cover its whole day compares against this value.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}

// SameDate reports whether two timestamps fall on the same calendar day when
// viewed in a's location.
func SameDate(a, b time.Time) bool {
	return sameDay(a, b.In(a.Location()))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func endsAtMidnight(start, end time.Time) bool {
	return minutesOfDay(end) == 0 && sameDay(start, end.Add(-time.Minute))
}

func minutesOfDay(t time.Time) Minutes {
	return Minutes(t.Hour()*60 + t.Minute())
}
