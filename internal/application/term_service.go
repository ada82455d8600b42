package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/altayburakhan/ClassroomDB/internal/timeslot"
)

// TermStore captures the persistence interactions needed by the service.
type TermStore interface {
	CreateTerm(ctx context.Context, term Term) (Term, error)
	UpdateTerm(ctx context.Context, term Term) (Term, error)
	GetTerm(ctx context.Context, id string) (Term, error)
	ListTerms(ctx context.Context) ([]Term, error)
}

// TermService resolves covering terms for reservations and manages the term
// catalog for administrators.
type TermService struct {
	terms       TermStore
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewTermService constructs a term service with the provided dependencies.
func NewTermService(terms TermStore, idGenerator func() string, now func() time.Time) *TermService {
	return NewTermServiceWithLogger(terms, idGenerator, now, nil)
}

// NewTermServiceWithLogger constructs a term service with a specified logger.
func NewTermServiceWithLogger(terms TermStore, idGenerator func() string, now func() time.Time, logger *slog.Logger) *TermService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &TermService{terms: terms, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *TermService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "TermService", operation, attrs...)
}

// FindCoveringTerm returns the active term whose date range fully contains
// [start, end]. Term dates are date-grained: the end date covers through the
// end of its day. When several active terms cover the range (a data
// anomaly), the one with the earliest start date wins, with ID as the final
// deterministic tiebreak. Fails with ErrTermNotFound when no term qualifies.
func (s *TermService) FindCoveringTerm(ctx context.Context, start, end time.Time) (Term, error) {
	if s == nil || s.terms == nil {
		return Term{}, fmt.Errorf("term store not configured")
	}

	terms, err := s.terms.ListTerms(ctx)
	if err != nil {
		return Term{}, mapStoreError(err)
	}

	covering := make([]Term, 0, 1)
	for _, term := range terms {
		if !term.IsActive {
			continue
		}
		if termCovers(term, start, end) {
			covering = append(covering, term)
		}
	}
	if len(covering) == 0 {
		return Term{}, ErrTermNotFound
	}

	sort.Slice(covering, func(i, j int) bool {
		if covering[i].StartDate.Equal(covering[j].StartDate) {
			return covering[i].ID < covering[j].ID
		}
		return covering[i].StartDate.Before(covering[j].StartDate)
	})
	return covering[0], nil
}

// CheckTermOverlap reports whether [newStart, newEnd] overlaps any stored
// term other than excludingTermID. Unlike reservation overlap, boundaries
// are inclusive: adjacent terms sharing a boundary date count as
// overlapping, because terms are date-grained.
func (s *TermService) CheckTermOverlap(ctx context.Context, newStart, newEnd time.Time, excludingTermID string) (bool, error) {
	if s == nil || s.terms == nil {
		return false, fmt.Errorf("term store not configured")
	}

	terms, err := s.terms.ListTerms(ctx)
	if err != nil {
		return false, mapStoreError(err)
	}

	newStartDay := timeslot.StartOfDay(newStart)
	newEndDay := timeslot.StartOfDay(newEnd)
	for _, term := range terms {
		if excludingTermID != "" && term.ID == excludingTermID {
			continue
		}
		existingStart := timeslot.StartOfDay(term.StartDate)
		existingEnd := timeslot.StartOfDay(term.EndDate)
		if !newStartDay.After(existingEnd) && !newEndDay.Before(existingStart) {
			return true, nil
		}
	}
	return false, nil
}

// CreateTerm validates input, runs the overlap guard, and persists a new
// term for administrators.
func (s *TermService) CreateTerm(ctx context.Context, params CreateTermParams) (term Term, err error) {
	if s == nil {
		err = fmt.Errorf("TermService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateTerm",
		"principal_id", params.Principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create term", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("term_id", term.ID).InfoContext(ctx, "term created")
	}()

	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	if err = s.validateTermInput(ctx, params.Input, ""); err != nil {
		return
	}

	createdAt := s.now()
	term = Term{
		ID:          s.idGenerator(),
		Name:        strings.TrimSpace(params.Input.Name),
		StartDate:   timeslot.StartOfDay(params.Input.StartDate),
		EndDate:     timeslot.StartOfDay(params.Input.EndDate),
		IsActive:    params.Input.IsActive,
		Description: params.Input.Description,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}

	if s.terms == nil {
		return
	}
	var persisted Term
	persisted, err = s.terms.CreateTerm(ctx, term)
	if err != nil {
		err = mapStoreError(err)
		return
	}
	term = persisted
	return
}

// UpdateTerm validates input and updates an existing term for administrators.
func (s *TermService) UpdateTerm(ctx context.Context, params UpdateTermParams) (term Term, err error) {
	if s == nil {
		err = fmt.Errorf("TermService is nil")
		return
	}
	if s.terms == nil {
		err = fmt.Errorf("term store not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateTerm",
		"principal_id", params.Principal.UserID,
		"term_id", params.TermID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update term", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "term updated")
	}()

	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	var existing Term
	existing, err = s.terms.GetTerm(ctx, params.TermID)
	if err != nil {
		err = mapStoreError(err)
		return
	}

	if err = s.validateTermInput(ctx, params.Input, existing.ID); err != nil {
		return
	}

	updated := existing
	updated.Name = strings.TrimSpace(params.Input.Name)
	updated.StartDate = timeslot.StartOfDay(params.Input.StartDate)
	updated.EndDate = timeslot.StartOfDay(params.Input.EndDate)
	updated.IsActive = params.Input.IsActive
	updated.Description = params.Input.Description
	updated.UpdatedAt = s.now()

	var persisted Term
	persisted, err = s.terms.UpdateTerm(ctx, updated)
	if err != nil {
		err = mapStoreError(err)
		return
	}
	term = persisted
	return
}

// GetTerm returns a single term.
func (s *TermService) GetTerm(ctx context.Context, id string) (Term, error) {
	if s == nil || s.terms == nil {
		return Term{}, fmt.Errorf("term store not configured")
	}
	term, err := s.terms.GetTerm(ctx, id)
	if err != nil {
		return Term{}, mapStoreError(err)
	}
	return term, nil
}

// ListTerms enumerates terms ordered by start date.
func (s *TermService) ListTerms(ctx context.Context) ([]Term, error) {
	if s == nil || s.terms == nil {
		return nil, fmt.Errorf("term store not configured")
	}
	terms, err := s.terms.ListTerms(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}
	ordered := make([]Term, len(terms))
	copy(ordered, terms)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].StartDate.Equal(ordered[j].StartDate) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].StartDate.Before(ordered[j].StartDate)
	})
	return ordered, nil
}

func (s *TermService) validateTermInput(ctx context.Context, input TermInput, excludingTermID string) error {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if input.StartDate.IsZero() {
		vErr.add("start_date", "start date is required")
	}
	if input.EndDate.IsZero() {
		vErr.add("end_date", "end date is required")
	}
	if !input.StartDate.IsZero() && !input.EndDate.IsZero() && !input.StartDate.Before(input.EndDate) {
		vErr.add("dates", "start date must be before end date")
	}
	if vErr.HasErrors() {
		return vErr
	}

	overlaps, err := s.CheckTermOverlap(ctx, input.StartDate, input.EndDate, excludingTermID)
	if err != nil {
		return err
	}
	if overlaps {
		vErr.add("dates", "term overlaps an existing term")
		return vErr
	}
	return nil
}

func termCovers(term Term, start, end time.Time) bool {
	termStart := timeslot.StartOfDay(term.StartDate)
	termEnd := timeslot.EndOfDay(term.EndDate)
	return !start.Before(termStart) && !end.After(termEnd)
}
