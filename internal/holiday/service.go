package holiday

import (
	"context"
	"log/slog"
	"sort"
	"time"
)

// Service merges the remote and static calendars. The remote source is
// optional and advisory; when it cannot answer the service serves the static
// table alone.
type Service struct {
	remote Source
	static Source
	cache  *yearCache
	logger *slog.Logger
}

// ServiceOptions configures NewService.
type ServiceOptions struct {
	// Remote may be nil; the service then runs on the static table only.
	Remote   Source
	Static   Source
	CacheTTL time.Duration
	Now      func() time.Time
	Logger   *slog.Logger
}

// NewService constructs the merged calendar service.
func NewService(opts ServiceOptions) *Service {
	static := opts.Static
	if static == nil {
		static = NewStaticSource()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		remote: opts.Remote,
		static: static,
		cache:  newYearCache(opts.CacheTTL, opts.Now),
		logger: logger,
	}
}

// HolidaysForYear returns the merged calendar for a year, remote entries
// deduplicated against the static table by date.
func (s *Service) HolidaysForYear(ctx context.Context, year int) ([]Holiday, error) {
	if cached, ok := s.cache.Get(year); ok {
		return cached, nil
	}

	merged := make([]Holiday, 0, 16)
	seen := make(map[time.Time]bool)

	staticHolidays, err := s.static.HolidaysForYear(ctx, year)
	if err != nil {
		return nil, err
	}
	for _, h := range staticHolidays {
		day := dateOnly(h.Date)
		if seen[day] {
			continue
		}
		seen[day] = true
		merged = append(merged, Holiday{Date: day, Name: h.Name, Religious: h.Religious})
	}

	degraded := false
	if s.remote != nil {
		remoteHolidays, err := s.remote.HolidaysForYear(ctx, year)
		if err != nil {
			degraded = true
			s.logger.WarnContext(ctx, "remote holiday source unavailable", "year", year, "error", err)
		} else {
			for _, h := range remoteHolidays {
				day := dateOnly(h.Date)
				if seen[day] {
					continue
				}
				seen[day] = true
				merged = append(merged, Holiday{Date: day, Name: h.Name})
			}
		}
	}

	sort.Slice(merged, func(i, j int) bool { return merged[i].Date.Before(merged[j].Date) })
	// A static-only answer after a remote failure is served but not cached,
	// so the next call retries the remote source instead of waiting out the
	// TTL.
	if !degraded {
		s.cache.Store(year, merged)
	}
	return merged, nil
}

// IsHoliday reports whether the date falls on a holiday.
func (s *Service) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	_, ok, err := s.lookup(ctx, date)
	return ok, err
}

// HolidayName returns the holiday name for a date, or "" when the date is a
// working day.
func (s *Service) HolidayName(ctx context.Context, date time.Time) (string, error) {
	holiday, ok, err := s.lookup(ctx, date)
	if err != nil || !ok {
		return "", err
	}
	return holiday.Name, nil
}

// HolidaysInRange returns the holidays whose date falls within [start, end],
// ordered by date. The scan is eager over the finite set of years the range
// touches.
func (s *Service) HolidaysInRange(ctx context.Context, start, end time.Time) ([]Holiday, error) {
	if end.Before(start) {
		return nil, nil
	}

	startDay := dateOnly(start)
	endDay := dateOnly(end)

	var out []Holiday
	for year := start.Year(); year <= end.Year(); year++ {
		holidays, err := s.HolidaysForYear(ctx, year)
		if err != nil {
			return nil, err
		}
		for _, h := range holidays {
			if h.Date.Before(startDay) || h.Date.After(endDay) {
				continue
			}
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *Service) lookup(ctx context.Context, date time.Time) (Holiday, bool, error) {
	holidays, err := s.HolidaysForYear(ctx, date.Year())
	if err != nil {
		return Holiday{}, false, err
	}
	day := dateOnly(date)
	for _, h := range holidays {
		if h.Date.Equal(day) {
			return h, true, nil
		}
	}
	return Holiday{}, false, nil
}
