// Package holiday supplies the advisory holiday calendar used when a
// reservation range touches a public holiday. Lookups are eager and finite;
// a source that cannot answer degrades rather than failing the caller.
package holiday

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned by a source that cannot currently answer.
// Consumers treat it as "no advisory available", never as a hard failure.
var ErrUnavailable = errors.New("holiday: source unavailable")

// Holiday is a single calendar entry.
type Holiday struct {
	Date      time.Time
	Name      string
	Religious bool
}

// Source produces the holidays of one calendar year.
type Source interface {
	HolidaysForYear(ctx context.Context, year int) ([]Holiday, error)
}

// dateOnly normalizes to the nominal calendar date in UTC so entries from
// differently located sources compare by date, not instant.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
