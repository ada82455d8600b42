package timeslot

import (
	"testing"
	"time"
)

func at(t *testing.T, hour, minute int) time.Time {
	t.Helper()
	return time.Date(2025, 9, 10, hour, minute, 0, 0, time.UTC)
}

func TestOverlaps_SharedInterior(t *testing.T) {
	t.Parallel()

	if !Overlaps(at(t, 9, 0), at(t, 11, 0), at(t, 10, 0), at(t, 12, 0)) {
		t.Fatal("expected overlapping intervals to conflict")
	}
	if !Overlaps(at(t, 10, 0), at(t, 12, 0), at(t, 9, 0), at(t, 11, 0)) {
		t.Fatal("expected overlap to be symmetric")
	}
	if !Overlaps(at(t, 9, 0), at(t, 12, 0), at(t, 10, 0), at(t, 11, 0)) {
		t.Fatal("expected contained interval to conflict")
	}
}

func TestOverlaps_BackToBack(t *testing.T) {
	t.Parallel()

	if Overlaps(at(t, 9, 0), at(t, 11, 0), at(t, 11, 0), at(t, 12, 0)) {
		t.Fatal("back-to-back intervals must not overlap")
	}
	if Overlaps(at(t, 11, 0), at(t, 12, 0), at(t, 9, 0), at(t, 11, 0)) {
		t.Fatal("back-to-back intervals must not overlap in either order")
	}
}

func TestOverlaps_Disjoint(t *testing.T) {
	t.Parallel()

	if Overlaps(at(t, 8, 0), at(t, 9, 0), at(t, 10, 0), at(t, 11, 0)) {
		t.Fatal("disjoint intervals must not overlap")
	}
}

func TestParseTimeOfDay(t *testing.T) {
	t.Parallel()

	got, err := ParseTimeOfDay("08:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 8*60+30 {
		t.Fatalf("expected 510 minutes, got %d", got)
	}
	if got.String() != "08:30" {
		t.Fatalf("expected round trip, got %q", got.String())
	}

	if _, err := ParseTimeOfDay("25:00"); err == nil {
		t.Fatal("expected error for out-of-range hour")
	}
}

func TestWithinBusinessHours(t *testing.T) {
	t.Parallel()

	hours := DefaultBusinessHours()

	if !WithinBusinessHours(at(t, 8, 0), at(t, 20, 0), hours) {
		t.Fatal("full window should be accepted")
	}
	if !WithinBusinessHours(at(t, 9, 0), at(t, 11, 0), hours) {
		t.Fatal("interior interval should be accepted")
	}
	if WithinBusinessHours(at(t, 7, 59), at(t, 9, 0), hours) {
		t.Fatal("start before opening should be rejected")
	}
	if WithinBusinessHours(at(t, 19, 0), at(t, 20, 1), hours) {
		t.Fatal("end after closing should be rejected")
	}
}

func TestWithinBusinessHours_MultiDay(t *testing.T) {
	t.Parallel()

	start := at(t, 9, 0)
	end := start.AddDate(0, 0, 1)
	if WithinBusinessHours(start, end, DefaultBusinessHours()) {
		t.Fatal("interval spanning days should be rejected")
	}
}

func TestDurationHours(t *testing.T) {
	t.Parallel()

	if got := DurationHours(at(t, 9, 0), at(t, 17, 30)); got != 8.5 {
		t.Fatalf("expected 8.5 hours, got %v", got)
	}
}

func TestEndOfDay_CoversWholeDay(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	lastMoment := time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)
	if !lastMoment.Before(EndOfDay(day)) {
		t.Fatal("end of day must cover the final second of the date")
	}
}
