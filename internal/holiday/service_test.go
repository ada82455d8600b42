package holiday

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

type failingSource struct {
	calls int32
}

func (s *failingSource) HolidaysForYear(context.Context, int) ([]Holiday, error) {
	atomic.AddInt32(&s.calls, 1)
	return nil, ErrUnavailable
}

type countingSource struct {
	calls int32
}

func (s *countingSource) HolidaysForYear(context.Context, int) ([]Holiday, error) {
	atomic.AddInt32(&s.calls, 1)
	return nil, nil
}

// recoveringSource fails its first calls and then serves a fixed holiday.
type recoveringSource struct {
	calls    int32
	failures int32
}

func (s *recoveringSource) HolidaysForYear(_ context.Context, year int) ([]Holiday, error) {
	if atomic.AddInt32(&s.calls, 1) <= s.failures {
		return nil, ErrUnavailable
	}
	return []Holiday{{Date: time.Date(year, time.July, 7, 0, 0, 0, 0, time.UTC), Name: "Remote Day"}}, nil
}

func newService(remote Source) *Service {
	return NewService(ServiceOptions{Remote: remote})
}

func TestStaticSource_NationalHolidaysEveryYear(t *testing.T) {
	t.Parallel()

	source := NewStaticSource()
	holidays, err := source.HolidaysForYear(context.Background(), 2030)
	if err != nil {
		t.Fatalf("HolidaysForYear returned error: %v", err)
	}
	if len(holidays) != 7 {
		t.Fatalf("expected the 7 national holidays for an unpinned year, got %d", len(holidays))
	}

	pinned, err := source.HolidaysForYear(context.Background(), 2025)
	if err != nil {
		t.Fatalf("HolidaysForYear returned error: %v", err)
	}
	if len(pinned) != 16 {
		t.Fatalf("expected national plus religious holidays for 2025, got %d", len(pinned))
	}
}

func TestService_IsHoliday(t *testing.T) {
	t.Parallel()

	service := newService(nil)
	republicDay := time.Date(2025, time.October, 29, 10, 0, 0, 0, time.UTC)
	ok, err := service.IsHoliday(context.Background(), republicDay)
	if err != nil {
		t.Fatalf("IsHoliday returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected October 29 to be a holiday")
	}

	workday := time.Date(2025, time.October, 6, 10, 0, 0, 0, time.UTC)
	ok, err = service.IsHoliday(context.Background(), workday)
	if err != nil {
		t.Fatalf("IsHoliday returned error: %v", err)
	}
	if ok {
		t.Fatal("expected a plain Monday to not be a holiday")
	}
}

func TestService_HolidayName(t *testing.T) {
	t.Parallel()

	service := newService(nil)
	name, err := service.HolidayName(context.Background(), time.Date(2025, time.October, 29, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("HolidayName returned error: %v", err)
	}
	if name != "Cumhuriyet Bayramı" {
		t.Fatalf("expected Cumhuriyet Bayramı, got %q", name)
	}
}

func TestService_HolidaysInRange_SpansYears(t *testing.T) {
	t.Parallel()

	service := newService(nil)
	start := time.Date(2025, time.December, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)

	holidays, err := service.HolidaysInRange(context.Background(), start, end)
	if err != nil {
		t.Fatalf("HolidaysInRange returned error: %v", err)
	}
	if len(holidays) != 1 {
		t.Fatalf("expected only New Year's Day in the window, got %+v", holidays)
	}
	if holidays[0].Name != "Yılbaşı" {
		t.Fatalf("expected Yılbaşı, got %q", holidays[0].Name)
	}
}

func TestService_HolidaysInRange_EmptyForReversedWindow(t *testing.T) {
	t.Parallel()

	service := newService(nil)
	start := time.Date(2025, time.October, 29, 0, 0, 0, 0, time.UTC)
	holidays, err := service.HolidaysInRange(context.Background(), start, start.AddDate(0, 0, -7))
	if err != nil {
		t.Fatalf("HolidaysInRange returned error: %v", err)
	}
	if len(holidays) != 0 {
		t.Fatalf("expected no holidays for a reversed window, got %d", len(holidays))
	}
}

func TestService_RemoteFailureDegradesToStatic(t *testing.T) {
	t.Parallel()

	remote := &failingSource{}
	service := newService(remote)

	ok, err := service.IsHoliday(context.Background(), time.Date(2025, time.October, 29, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("a dead remote source must not fail lookups, got %v", err)
	}
	if !ok {
		t.Fatal("static table must still answer when the remote source is down")
	}
	if atomic.LoadInt32(&remote.calls) == 0 {
		t.Fatal("expected the remote source to be consulted")
	}
}

func TestService_CachesYearAcrossLookups(t *testing.T) {
	t.Parallel()

	remote := &countingSource{}
	service := newService(remote)

	for day := 1; day <= 5; day++ {
		if _, err := service.IsHoliday(context.Background(), time.Date(2025, time.October, day, 0, 0, 0, 0, time.UTC)); err != nil {
			t.Fatalf("IsHoliday returned error: %v", err)
		}
	}
	if calls := atomic.LoadInt32(&remote.calls); calls != 1 {
		t.Fatalf("expected a single remote call for the year, got %d", calls)
	}
}

func TestService_DegradedResultIsNotCached(t *testing.T) {
	t.Parallel()

	remote := &recoveringSource{failures: 1}
	service := newService(remote)
	probe := time.Date(2025, time.July, 7, 0, 0, 0, 0, time.UTC)

	// First lookup: remote down, static table answers, nothing cached.
	ok, err := service.IsHoliday(context.Background(), probe)
	if err != nil {
		t.Fatalf("IsHoliday returned error: %v", err)
	}
	if ok {
		t.Fatal("July 7 is not in the static table; degraded answer should miss it")
	}

	// Second lookup must retry the remote instead of serving the degraded
	// merge for the whole TTL.
	ok, err = service.IsHoliday(context.Background(), probe)
	if err != nil {
		t.Fatalf("IsHoliday returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected the recovered remote holiday to be visible on the next lookup")
	}
	if calls := atomic.LoadInt32(&remote.calls); calls != 2 {
		t.Fatalf("expected the remote to be retried once after failure, got %d calls", calls)
	}
}

func TestRemoteSource_FetchesAndMerges(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2025/TR" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"date":"2025-10-29","localName":"Cumhuriyet Bayramı","name":"Republic Day"},
			{"date":"2025-11-10","localName":"","name":"Commemoration Day"}
		]`)
	}))
	defer server.Close()

	source := NewRemoteSource(server.URL, "TR", server.Client())
	holidays, err := source.HolidaysForYear(context.Background(), 2025)
	if err != nil {
		t.Fatalf("HolidaysForYear returned error: %v", err)
	}
	if len(holidays) != 2 {
		t.Fatalf("expected 2 holidays, got %d", len(holidays))
	}
	if holidays[0].Name != "Cumhuriyet Bayramı" {
		t.Fatalf("expected local name preferred, got %q", holidays[0].Name)
	}
	if holidays[1].Name != "Commemoration Day" {
		t.Fatalf("expected fallback to name, got %q", holidays[1].Name)
	}

	service := NewService(ServiceOptions{Remote: source})
	name, err := service.HolidayName(context.Background(), time.Date(2025, time.November, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("HolidayName returned error: %v", err)
	}
	if name != "Commemoration Day" {
		t.Fatalf("expected the remote-only entry to merge in, got %q", name)
	}
}

func TestRemoteSource_ServerErrorIsUnavailable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	source := NewRemoteSource(server.URL, "TR", server.Client())
	_, err := source.HolidaysForYear(context.Background(), 2025)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
