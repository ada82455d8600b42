// Package recurrence expands a reservation's recurrence pattern into the
// occurrences it would produce. The expansion is preview-only: the
// reservation engine stores the pattern but persists a single occurrence per
// record, so nothing here creates child reservations.
package recurrence

import (
	"errors"
	"strings"
	"time"
)

// Pattern names a supported recurrence cadence.
type Pattern string

const (
	// PatternNone marks a non-recurring reservation.
	PatternNone Pattern = ""
	// PatternDaily repeats the slot every day.
	PatternDaily Pattern = "daily"
	// PatternWeekly repeats the slot on the same weekday each week.
	PatternWeekly Pattern = "weekly"
)

// ParsePattern normalises a stored pattern string.
func ParsePattern(s string) (Pattern, error) {
	switch Pattern(strings.ToLower(strings.TrimSpace(s))) {
	case PatternNone:
		return PatternNone, nil
	case PatternDaily:
		return PatternDaily, nil
	case PatternWeekly:
		return PatternWeekly, nil
	default:
		return PatternNone, ErrInvalidPattern
	}
}

// Occurrence is one projected instance of a recurring reservation.
type Occurrence struct {
	ReservationID string
	Start         time.Time
	End           time.Time
}

// ErrInvalidPattern indicates the recurrence pattern is not supported.
var ErrInvalidPattern = errors.New("recurrence: invalid pattern")

// ErrInvalidWindow indicates the expansion window has no end bound.
var ErrInvalidWindow = errors.New("recurrence: expansion requires an end bound")

// ErrInvalidDuration indicates the base slot duration is not positive.
var ErrInvalidDuration = errors.New("recurrence: slot duration must be positive")

// Engine projects recurrence patterns into occurrences, normalised to a
// single location so day boundaries are stable.
type Engine struct {
	location *time.Location
}

// NewEngine constructs an Engine. A nil location defaults to UTC.
func NewEngine(loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{location: loc}
}

// Expand projects the occurrences of a recurring slot.
//
// The first occurrence is the base slot itself. Expansion stops at `until`
// (inclusive of occurrences starting on that date) or after maxOccurrences,
// whichever comes first. A nil until with maxOccurrences <= 0 is rejected so
// the projection stays finite.
func (e *Engine) Expand(reservationID string, pattern Pattern, baseStart, baseEnd time.Time, until *time.Time, maxOccurrences int) ([]Occurrence, error) {
	loc := e.location
	if loc == nil {
		loc = time.UTC
	}

	start := baseStart.In(loc)
	end := baseEnd.In(loc)
	if !end.After(start) {
		return nil, ErrInvalidDuration
	}
	duration := end.Sub(start)

	if pattern == PatternNone {
		return []Occurrence{{ReservationID: reservationID, Start: start, End: end}}, nil
	}

	var step func(time.Time) time.Time
	switch pattern {
	case PatternDaily:
		step = func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }
	case PatternWeekly:
		step = func(t time.Time) time.Time { return t.AddDate(0, 0, 7) }
	default:
		return nil, ErrInvalidPattern
	}

	var upper time.Time
	if until != nil {
		// The end date is date-grained: an occurrence on that day counts.
		u := until.In(loc)
		upper = time.Date(u.Year(), u.Month(), u.Day(), 23, 59, 59, 0, loc)
	}
	if upper.IsZero() && maxOccurrences <= 0 {
		return nil, ErrInvalidWindow
	}

	occurrences := make([]Occurrence, 0, 8)
	for current := start; ; current = step(current) {
		if !upper.IsZero() && current.After(upper) {
			break
		}
		occurrences = append(occurrences, Occurrence{
			ReservationID: reservationID,
			Start:         current,
			End:           current.Add(duration),
		})
		if maxOccurrences > 0 && len(occurrences) >= maxOccurrences {
			break
		}
	}

	return occurrences, nil
}
