package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type stubTermStore struct {
	mu      sync.Mutex
	terms   map[string]Term
	listErr error
}

func newStubTermStore(seed ...Term) *stubTermStore {
	store := &stubTermStore{terms: make(map[string]Term)}
	for _, term := range seed {
		store.terms[term.ID] = term
	}
	return store
}

func (s *stubTermStore) CreateTerm(_ context.Context, term Term) (Term, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.terms[term.ID] = term
	return term, nil
}

func (s *stubTermStore) UpdateTerm(_ context.Context, term Term) (Term, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.terms[term.ID] = term
	return term, nil
}

func (s *stubTermStore) GetTerm(_ context.Context, id string) (Term, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	term, ok := s.terms[id]
	if !ok {
		return Term{}, ErrNotFound
	}
	return term, nil
}

func (s *stubTermStore) ListTerms(context.Context) ([]Term, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]Term, 0, len(s.terms))
	for _, term := range s.terms {
		out = append(out, term)
	}
	return out, nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestTermService_FindCoveringTerm_EndDateCoversWholeDay(t *testing.T) {
	t.Parallel()

	store := newStubTermStore(Term{
		ID:        "term-1",
		Name:      "Fall",
		StartDate: date(2025, time.September, 1),
		EndDate:   date(2025, time.December, 31),
		IsActive:  true,
	})
	service := NewTermService(store, nil, nil)

	start := time.Date(2025, time.December, 31, 14, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.December, 31, 16, 0, 0, 0, time.UTC)
	term, err := service.FindCoveringTerm(context.Background(), start, end)
	if err != nil {
		t.Fatalf("a slot on the end date should be covered, got %v", err)
	}
	if term.ID != "term-1" {
		t.Fatalf("expected term-1, got %q", term.ID)
	}

	nextDay := time.Date(2026, time.January, 1, 9, 0, 0, 0, time.UTC)
	if _, err := service.FindCoveringTerm(context.Background(), nextDay, nextDay.Add(time.Hour)); !errors.Is(err, ErrTermNotFound) {
		t.Fatalf("expected ErrTermNotFound past the end date, got %v", err)
	}
}

func TestTermService_FindCoveringTerm_IgnoresInactive(t *testing.T) {
	t.Parallel()

	store := newStubTermStore(Term{
		ID:        "term-1",
		StartDate: date(2025, time.September, 1),
		EndDate:   date(2025, time.December, 31),
		IsActive:  false,
	})
	service := NewTermService(store, nil, nil)

	start := time.Date(2025, time.October, 6, 9, 0, 0, 0, time.UTC)
	if _, err := service.FindCoveringTerm(context.Background(), start, start.Add(time.Hour)); !errors.Is(err, ErrTermNotFound) {
		t.Fatalf("inactive terms must not cover, got %v", err)
	}
}

func TestTermService_FindCoveringTerm_EarliestStartWins(t *testing.T) {
	t.Parallel()

	store := newStubTermStore(
		Term{ID: "term-b", StartDate: date(2025, time.September, 15), EndDate: date(2025, time.December, 31), IsActive: true},
		Term{ID: "term-a", StartDate: date(2025, time.September, 1), EndDate: date(2025, time.December, 31), IsActive: true},
	)
	service := NewTermService(store, nil, nil)

	start := time.Date(2025, time.October, 6, 9, 0, 0, 0, time.UTC)
	term, err := service.FindCoveringTerm(context.Background(), start, start.Add(time.Hour))
	if err != nil {
		t.Fatalf("FindCoveringTerm returned error: %v", err)
	}
	if term.ID != "term-a" {
		t.Fatalf("expected earliest-start term, got %q", term.ID)
	}
}

func TestTermService_FindCoveringTerm_PartialCoverageFails(t *testing.T) {
	t.Parallel()

	store := newStubTermStore(Term{
		ID:        "term-1",
		StartDate: date(2025, time.September, 1),
		EndDate:   date(2025, time.September, 30),
		IsActive:  true,
	})
	service := NewTermService(store, nil, nil)

	// Starts inside the term but ends past it.
	start := time.Date(2025, time.September, 30, 9, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.October, 1, 11, 0, 0, 0, time.UTC)
	if _, err := service.FindCoveringTerm(context.Background(), start, end); !errors.Is(err, ErrTermNotFound) {
		t.Fatalf("partial coverage must not qualify, got %v", err)
	}
}

func TestTermService_CheckTermOverlap_SharedBoundaryCounts(t *testing.T) {
	t.Parallel()

	store := newStubTermStore(Term{
		ID:        "term-1",
		StartDate: date(2025, time.September, 1),
		EndDate:   date(2025, time.December, 31),
		IsActive:  true,
	})
	service := NewTermService(store, nil, nil)

	overlaps, err := service.CheckTermOverlap(context.Background(), date(2025, time.December, 31), date(2026, time.March, 31), "")
	if err != nil {
		t.Fatalf("CheckTermOverlap returned error: %v", err)
	}
	if !overlaps {
		t.Fatal("terms sharing a boundary date must overlap")
	}

	overlaps, err = service.CheckTermOverlap(context.Background(), date(2026, time.January, 1), date(2026, time.March, 31), "")
	if err != nil {
		t.Fatalf("CheckTermOverlap returned error: %v", err)
	}
	if overlaps {
		t.Fatal("terms on disjoint dates must not overlap")
	}
}

func TestTermService_CheckTermOverlap_ExcludesSelf(t *testing.T) {
	t.Parallel()

	store := newStubTermStore(Term{
		ID:        "term-1",
		StartDate: date(2025, time.September, 1),
		EndDate:   date(2025, time.December, 31),
		IsActive:  true,
	})
	service := NewTermService(store, nil, nil)

	overlaps, err := service.CheckTermOverlap(context.Background(), date(2025, time.September, 1), date(2025, time.December, 15), "term-1")
	if err != nil {
		t.Fatalf("CheckTermOverlap returned error: %v", err)
	}
	if overlaps {
		t.Fatal("a term must not overlap itself during updates")
	}
}

func TestTermService_CreateTerm_AdminOnly(t *testing.T) {
	t.Parallel()

	service := NewTermService(newStubTermStore(), sequentialIDs("term"), nil)
	_, err := service.CreateTerm(context.Background(), CreateTermParams{
		Principal: Principal{UserID: "user-1"},
		Input: TermInput{
			Name:      "Spring",
			StartDate: date(2026, time.February, 1),
			EndDate:   date(2026, time.May, 31),
			IsActive:  true,
		},
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestTermService_CreateTerm_RejectsOverlap(t *testing.T) {
	t.Parallel()

	store := newStubTermStore(Term{
		ID:        "term-1",
		Name:      "Fall",
		StartDate: date(2025, time.September, 1),
		EndDate:   date(2025, time.December, 31),
		IsActive:  true,
	})
	service := NewTermService(store, sequentialIDs("term"), nil)

	_, err := service.CreateTerm(context.Background(), CreateTermParams{
		Principal: Principal{UserID: "admin", IsAdmin: true},
		Input: TermInput{
			Name:      "Winter",
			StartDate: date(2025, time.December, 1),
			EndDate:   date(2026, time.January, 31),
			IsActive:  true,
		},
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := vErr.FieldErrors["dates"]; !ok {
		t.Fatalf("expected dates field error, got %v", vErr.FieldErrors)
	}
}

func TestTermService_CreateTerm_ValidatesDates(t *testing.T) {
	t.Parallel()

	service := NewTermService(newStubTermStore(), sequentialIDs("term"), nil)
	_, err := service.CreateTerm(context.Background(), CreateTermParams{
		Principal: Principal{UserID: "admin", IsAdmin: true},
		Input: TermInput{
			Name:      "Backwards",
			StartDate: date(2026, time.May, 31),
			EndDate:   date(2026, time.February, 1),
			IsActive:  true,
		},
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := vErr.FieldErrors["dates"]; !ok {
		t.Fatalf("expected dates field error, got %v", vErr.FieldErrors)
	}
}

func TestTermService_UpdateTerm_AllowsSameDates(t *testing.T) {
	t.Parallel()

	store := newStubTermStore(Term{
		ID:        "term-1",
		Name:      "Fall",
		StartDate: date(2025, time.September, 1),
		EndDate:   date(2025, time.December, 31),
		IsActive:  true,
	})
	service := NewTermService(store, sequentialIDs("term"), nil)

	term, err := service.UpdateTerm(context.Background(), UpdateTermParams{
		Principal: Principal{UserID: "admin", IsAdmin: true},
		TermID:    "term-1",
		Input: TermInput{
			Name:      "Fall 2025",
			StartDate: date(2025, time.September, 1),
			EndDate:   date(2025, time.December, 31),
			IsActive:  true,
		},
	})
	if err != nil {
		t.Fatalf("UpdateTerm returned error: %v", err)
	}
	if term.Name != "Fall 2025" {
		t.Fatalf("expected renamed term, got %q", term.Name)
	}
}

func TestTermService_ListTerms_OrderedByStartDate(t *testing.T) {
	t.Parallel()

	store := newStubTermStore(
		Term{ID: "term-spring", StartDate: date(2026, time.February, 1), EndDate: date(2026, time.May, 31)},
		Term{ID: "term-fall", StartDate: date(2025, time.September, 1), EndDate: date(2025, time.December, 31)},
	)
	service := NewTermService(store, nil, nil)

	terms, err := service.ListTerms(context.Background())
	if err != nil {
		t.Fatalf("ListTerms returned error: %v", err)
	}
	if len(terms) != 2 || terms[0].ID != "term-fall" || terms[1].ID != "term-spring" {
		t.Fatalf("expected chronological order, got %+v", terms)
	}
}
