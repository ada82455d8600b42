package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/altayburakhan/ClassroomDB/internal/persistence"
	"github.com/altayburakhan/ClassroomDB/internal/recurrence"
	"github.com/altayburakhan/ClassroomDB/internal/scheduler"
	"github.com/altayburakhan/ClassroomDB/internal/timeslot"
)

// ReservationStore captures the persistence interactions needed by the service.
type ReservationStore interface {
	CreateReservation(ctx context.Context, reservation Reservation) (Reservation, error)
	GetReservation(ctx context.Context, id string) (Reservation, error)
	ListReservations(ctx context.Context, filter ReservationStoreFilter) ([]Reservation, error)
	// UpdateReservationStatus applies a lifecycle transition only when the
	// stored status still matches expected, so racing transitions cannot
	// both succeed.
	UpdateReservationStatus(ctx context.Context, id string, expected ReservationStatus, change StatusChange) (Reservation, error)
}

// ReservationStoreFilter narrows queries issued to the reservation store.
type ReservationStoreFilter struct {
	ClassroomID string
	RequesterID string
	Statuses    []ReservationStatus
	From        *time.Time
	To          *time.Time
	ExcludeID   string
}

// StatusChange carries the fields a lifecycle transition writes.
type StatusChange struct {
	Status          ReservationStatus
	RejectionReason *string
	UpdatedAt       time.Time
}

// ClassroomCatalog exposes classroom lookup operations.
type ClassroomCatalog interface {
	GetClassroom(ctx context.Context, id string) (Classroom, error)
}

// CoveringTermResolver finds the active term fully covering a range.
type CoveringTermResolver interface {
	FindCoveringTerm(ctx context.Context, start, end time.Time) (Term, error)
}

// UserDirectory exposes user lookup operations for notification payloads.
type UserDirectory interface {
	GetUser(ctx context.Context, id string) (User, error)
}

// HolidayAdvisor supplies advisory holiday matches for a date range. The
// advisor must degrade rather than fail; any error it does return is treated
// as "no advisory available".
type HolidayAdvisor interface {
	HolidaysInRange(ctx context.Context, start, end time.Time) ([]HolidayWarning, error)
}

// ReservationNotice carries the display fields notification consumers need.
type ReservationNotice struct {
	Reservation    Reservation
	ClassroomName  string
	RequesterEmail string
	RequesterName  string
	DayOfWeek      time.Weekday
	TimeRange      string
	Reason         string
}

// NotificationSink receives side-effect requests raised by the lifecycle
// engine. The engine never performs email or row writes itself; sink
// failures are logged and do not roll back the reservation operation.
type NotificationSink interface {
	ReservationCreated(ctx context.Context, notice ReservationNotice) error
	ReservationApproved(ctx context.Context, notice ReservationNotice) error
	ReservationRejected(ctx context.Context, notice ReservationNotice) error
	HolidayWarning(ctx context.Context, notice ReservationNotice, holidays []HolidayWarning) error
}

// ReservationServiceDeps wires the collaborators of the lifecycle engine.
type ReservationServiceDeps struct {
	Store       ReservationStore
	Classrooms  ClassroomCatalog
	Terms       CoveringTermResolver
	Users       UserDirectory
	Holidays    HolidayAdvisor
	Sink        NotificationSink
	IDGenerator func() string
	Now         func() time.Time
	Hours       timeslot.BusinessHours
	MaxDuration time.Duration
	Recurrence  *recurrence.Engine
	Logger      *slog.Logger
}

// ReservationService owns the reservation lifecycle: creation with the full
// validity check, approval, rejection, and cancellation.
type ReservationService struct {
	store       ReservationStore
	classrooms  ClassroomCatalog
	terms       CoveringTermResolver
	users       UserDirectory
	holidays    HolidayAdvisor
	sink        NotificationSink
	idGenerator func() string
	now         func() time.Time
	hours       timeslot.BusinessHours
	maxDuration time.Duration
	recurrence  *recurrence.Engine
	logger      *slog.Logger
}

// DefaultMaxDuration caps a single reservation at eight hours.
const DefaultMaxDuration = 8 * time.Hour

// NewReservationService constructs the lifecycle engine.
func NewReservationService(deps ReservationServiceDeps) *ReservationService {
	if deps.IDGenerator == nil {
		deps.IDGenerator = func() string { return "" }
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if !deps.Hours.Valid() {
		deps.Hours = timeslot.DefaultBusinessHours()
	}
	if deps.MaxDuration <= 0 {
		deps.MaxDuration = DefaultMaxDuration
	}
	if deps.Recurrence == nil {
		deps.Recurrence = recurrence.NewEngine(nil)
	}
	return &ReservationService{
		store:       deps.Store,
		classrooms:  deps.Classrooms,
		terms:       deps.Terms,
		users:       deps.Users,
		holidays:    deps.Holidays,
		sink:        deps.Sink,
		idGenerator: deps.IDGenerator,
		now:         deps.Now,
		hours:       deps.Hours,
		maxDuration: deps.MaxDuration,
		recurrence:  deps.Recurrence,
		logger:      defaultLogger(deps.Logger),
	}
}

func (s *ReservationService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ReservationService", operation, attrs...)
}

// Create validates a reservation request and persists it as Pending.
//
// Checks run in order: interval sanity, duration cap, business hours, start
// in the future, covering term, classroom conflict. The returned warnings
// are advisory holiday matches; they never fail the request.
func (s *ReservationService) Create(ctx context.Context, params CreateReservationParams) (reservation Reservation, warnings []HolidayWarning, err error) {
	if s == nil {
		err = fmt.Errorf("ReservationService is nil")
		return
	}
	if s.store == nil {
		err = fmt.Errorf("reservation store not configured")
		return
	}

	input := params.Input
	principal := params.Principal

	if input.RequesterID == "" {
		input.RequesterID = principal.UserID
	}
	if input.RequesterID != principal.UserID && !principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	logger := s.loggerWith(ctx, "Create",
		"principal_id", principal.UserID,
		"classroom_id", input.ClassroomID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create reservation", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("reservation_id", reservation.ID).InfoContext(ctx, "reservation created")
	}()

	vErr := &ValidationError{}
	pattern := s.validateReservationCore(input, vErr)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	if err = s.ensureClassroomBookable(ctx, input.ClassroomID); err != nil {
		return
	}

	var term Term
	term, err = s.resolveTerm(ctx, input.Start, input.End)
	if err != nil {
		return
	}

	if err = s.checkConflict(ctx, input.ClassroomID, input.Start, input.End, ""); err != nil {
		return
	}

	createdAt := s.now()
	reservation = Reservation{
		ID:                s.idGenerator(),
		ClassroomID:       input.ClassroomID,
		RequesterID:       input.RequesterID,
		TermID:            term.ID,
		Start:             input.Start,
		End:               input.End,
		Purpose:           strings.TrimSpace(input.Purpose),
		Status:            StatusPending,
		Notes:             normalizeOptionalString(input.Notes),
		IsRecurring:       input.IsRecurring,
		RecurrenceEndDate: input.RecurrenceEndDate,
		CreatedAt:         createdAt,
		UpdatedAt:         createdAt,
	}
	if input.IsRecurring && pattern != recurrence.PatternNone {
		p := string(pattern)
		reservation.RecurrencePattern = &p
	}

	persisted, createErr := s.store.CreateReservation(ctx, reservation)
	if createErr != nil {
		err = s.mapCreateError(ctx, reservation, createErr)
		return
	}
	reservation = persisted

	warnings = s.advisoryHolidays(ctx, reservation)
	s.emitCreated(ctx, reservation, warnings)
	return
}

// Get returns a reservation visible to the principal.
func (s *ReservationService) Get(ctx context.Context, principal Principal, reservationID string) (Reservation, error) {
	if s == nil || s.store == nil {
		return Reservation{}, fmt.Errorf("reservation store not configured")
	}
	reservation, err := s.store.GetReservation(ctx, reservationID)
	if err != nil {
		return Reservation{}, mapStoreError(err)
	}
	if reservation.RequesterID != principal.UserID && !principal.IsAdmin {
		return Reservation{}, ErrUnauthorized
	}
	return reservation, nil
}

// List enumerates reservations. Non-administrators only see their own.
func (s *ReservationService) List(ctx context.Context, params ListReservationsParams) ([]Reservation, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("reservation store not configured")
	}

	filter := ReservationStoreFilter{
		ClassroomID: params.ClassroomID,
		RequesterID: params.RequesterID,
		Statuses:    params.Statuses,
		From:        params.From,
		To:          params.To,
	}
	if !params.Principal.IsAdmin {
		filter.RequesterID = params.Principal.UserID
	}

	reservations, err := s.store.ListReservations(ctx, filter)
	if err != nil {
		return nil, mapStoreError(err)
	}

	ordered := make([]Reservation, len(reservations))
	copy(ordered, reservations)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Start.Equal(ordered[j].Start) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].Start.Before(ordered[j].Start)
	})
	return ordered, nil
}

// Approve transitions a Pending reservation to Approved.
func (s *ReservationService) Approve(ctx context.Context, params ApproveReservationParams) (reservation Reservation, err error) {
	return s.decide(ctx, params.Principal, params.ReservationID, StatusApproved, "")
}

// Reject transitions a Pending reservation to Rejected with a reason.
func (s *ReservationService) Reject(ctx context.Context, params RejectReservationParams) (reservation Reservation, err error) {
	if strings.TrimSpace(params.Reason) == "" {
		vErr := &ValidationError{}
		vErr.add("reason", "rejection reason is required")
		return Reservation{}, vErr
	}
	return s.decide(ctx, params.Principal, params.ReservationID, StatusRejected, strings.TrimSpace(params.Reason))
}

func (s *ReservationService) decide(ctx context.Context, principal Principal, reservationID string, target ReservationStatus, reason string) (reservation Reservation, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("reservation store not configured")
		return
	}

	logger := s.loggerWith(ctx, "Decide",
		"principal_id", principal.UserID,
		"reservation_id", reservationID,
		"target_status", string(target),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to decide reservation", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "reservation decided")
	}()

	if !principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	var current Reservation
	current, err = s.store.GetReservation(ctx, reservationID)
	if err != nil {
		err = mapStoreError(err)
		return
	}
	if current.Status != StatusPending {
		err = &InvalidStateError{ReservationID: reservationID, Status: current.Status}
		return
	}

	change := StatusChange{Status: target, UpdatedAt: s.now()}
	if target == StatusRejected {
		change.RejectionReason = &reason
	}

	reservation, err = s.store.UpdateReservationStatus(ctx, reservationID, StatusPending, change)
	if err != nil {
		err = s.mapTransitionError(ctx, reservationID, err)
		return
	}

	notice := s.buildNotice(ctx, reservation)
	notice.Reason = reason
	s.emitDecision(ctx, target, notice)
	return
}

// Cancel withdraws a Pending reservation before its start time. Only the
// requester or an administrator may cancel.
func (s *ReservationService) Cancel(ctx context.Context, params CancelReservationParams) (reservation Reservation, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("reservation store not configured")
		return
	}

	principal := params.Principal
	logger := s.loggerWith(ctx, "Cancel",
		"principal_id", principal.UserID,
		"reservation_id", params.ReservationID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to cancel reservation", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "reservation cancelled")
	}()

	var current Reservation
	current, err = s.store.GetReservation(ctx, params.ReservationID)
	if err != nil {
		err = mapStoreError(err)
		return
	}

	if current.RequesterID != principal.UserID && !principal.IsAdmin {
		err = ErrUnauthorized
		return
	}
	if current.Status != StatusPending {
		err = &InvalidStateError{ReservationID: current.ID, Status: current.Status}
		return
	}
	// Equality counts as too late: once the slot has begun the booking is no
	// longer cancellable.
	if !s.now().Before(current.Start) {
		err = &TooLateError{ReservationID: current.ID, Start: current.Start}
		return
	}

	reservation, err = s.store.UpdateReservationStatus(ctx, current.ID, StatusPending, StatusChange{
		Status:    StatusCancelled,
		UpdatedAt: s.now(),
	})
	if err != nil {
		err = s.mapTransitionError(ctx, current.ID, err)
	}
	return
}

// PlanOccurrences previews the occurrences a recurring request would
// produce. Nothing is persisted.
func (s *ReservationService) PlanOccurrences(ctx context.Context, params CreateReservationParams) ([]recurrence.Occurrence, error) {
	if s == nil {
		return nil, fmt.Errorf("ReservationService is nil")
	}

	input := params.Input
	vErr := &ValidationError{}
	pattern := s.validateReservationCore(input, vErr)
	if vErr.HasErrors() {
		return nil, vErr
	}
	if !input.IsRecurring || pattern == recurrence.PatternNone {
		return s.recurrence.Expand("", recurrence.PatternNone, input.Start, input.End, nil, 1)
	}

	const previewCap = 52
	occurrences, err := s.recurrence.Expand("", pattern, input.Start, input.End, input.RecurrenceEndDate, previewCap)
	if err != nil {
		vErr.add("recurrence", "recurrence could not be expanded")
		return nil, vErr
	}
	return occurrences, nil
}

func (s *ReservationService) validateReservationCore(input ReservationInput, vErr *ValidationError) recurrence.Pattern {
	if strings.TrimSpace(input.ClassroomID) == "" {
		vErr.add("classroom_id", "classroom is required")
	}
	if strings.TrimSpace(input.Purpose) == "" {
		vErr.add("purpose", "purpose is required")
	}
	if input.Start.IsZero() {
		vErr.add("start", "start is required")
	}
	if input.End.IsZero() {
		vErr.add("end", "end is required")
	}
	if !input.Start.IsZero() && !input.End.IsZero() {
		switch {
		case !input.Start.Before(input.End):
			vErr.add("time", "start must be before end")
		case timeslot.DurationHours(input.Start, input.End) > s.maxDuration.Hours():
			vErr.add("duration", fmt.Sprintf("reservation may not exceed %.0f hours", s.maxDuration.Hours()))
		case !timeslot.WithinBusinessHours(input.Start, input.End, s.hours):
			vErr.add("hours", fmt.Sprintf("reservation must fall between %s and %s on a single day", s.hours.Open, s.hours.Close))
		case !input.Start.After(s.now()):
			vErr.add("start", "start must be in the future")
		}
	}

	pattern := recurrence.PatternNone
	if input.IsRecurring {
		parsed, err := recurrence.ParsePattern(input.RecurrencePattern)
		if err != nil || parsed == recurrence.PatternNone {
			vErr.add("recurrence_pattern", "recurrence pattern must be daily or weekly")
		} else {
			pattern = parsed
		}
		if input.RecurrenceEndDate != nil && !input.Start.IsZero() && input.RecurrenceEndDate.Before(input.Start) {
			vErr.add("recurrence_end_date", "recurrence end date must not precede the first occurrence")
		}
	}
	return pattern
}

func (s *ReservationService) ensureClassroomBookable(ctx context.Context, classroomID string) error {
	if s.classrooms == nil {
		return nil
	}
	classroom, err := s.classrooms.GetClassroom(ctx, classroomID)
	if err != nil {
		return mapStoreError(err)
	}
	if !classroom.IsActive {
		vErr := &ValidationError{}
		vErr.add("classroom_id", "classroom is not active")
		return vErr
	}
	return nil
}

func (s *ReservationService) resolveTerm(ctx context.Context, start, end time.Time) (Term, error) {
	if s.terms == nil {
		return Term{}, fmt.Errorf("term resolver not configured")
	}
	term, err := s.terms.FindCoveringTerm(ctx, start, end)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Term{}, ErrTermNotFound
		}
		return Term{}, err
	}
	return term, nil
}

// checkConflict fails closed: a store error propagates rather than being
// read as "no conflict".
func (s *ReservationService) checkConflict(ctx context.Context, classroomID string, start, end time.Time, excludeID string) error {
	existing, err := s.store.ListReservations(ctx, ReservationStoreFilter{
		ClassroomID: classroomID,
		Statuses:    []ReservationStatus{StatusPending, StatusApproved, StatusRejected},
		From:        &start,
		To:          &end,
		ExcludeID:   excludeID,
	})
	if err != nil {
		return mapStoreError(err)
	}

	bookings := make([]scheduler.Booking, 0, len(existing))
	for _, r := range existing {
		bookings = append(bookings, scheduler.Booking{
			ID:          r.ID,
			ClassroomID: r.ClassroomID,
			Start:       r.Start,
			End:         r.End,
			Status:      scheduler.BookingStatus(r.Status),
		})
	}

	candidate := scheduler.Booking{ClassroomID: classroomID, Start: start, End: end, Status: scheduler.StatusPending}
	if conflict := scheduler.FindConflict(bookings, candidate, excludeID); conflict != nil {
		return &ConflictError{ReservationID: conflict.BookingID, Start: conflict.Start, End: conflict.End}
	}
	return nil
}

// mapCreateError converts a store-level conflict raised by the insert guard
// into the typed ConflictError, re-scanning for the collider when possible.
func (s *ReservationService) mapCreateError(ctx context.Context, candidate Reservation, err error) error {
	if !errors.Is(err, persistence.ErrConflict) {
		return mapStoreError(err)
	}
	if scanErr := s.checkConflict(ctx, candidate.ClassroomID, candidate.Start, candidate.End, candidate.ID); scanErr != nil {
		var cErr *ConflictError
		if errors.As(scanErr, &cErr) {
			return cErr
		}
	}
	return &ConflictError{Start: candidate.Start, End: candidate.End}
}

func (s *ReservationService) mapTransitionError(ctx context.Context, reservationID string, err error) error {
	if errors.Is(err, persistence.ErrStaleStatus) {
		if current, getErr := s.store.GetReservation(ctx, reservationID); getErr == nil {
			return &InvalidStateError{ReservationID: reservationID, Status: current.Status}
		}
		return &InvalidStateError{ReservationID: reservationID}
	}
	return mapStoreError(err)
}

func (s *ReservationService) advisoryHolidays(ctx context.Context, reservation Reservation) []HolidayWarning {
	if s.holidays == nil {
		return nil
	}
	warnings, err := s.holidays.HolidaysInRange(ctx, timeslot.StartOfDay(reservation.Start), reservation.End)
	if err != nil {
		// Advisory only: an unreachable holiday source must not fail the
		// reservation.
		s.loggerWith(ctx, "Create").WarnContext(ctx, "holiday advisory unavailable", "error", err)
		return nil
	}
	return warnings
}

func (s *ReservationService) buildNotice(ctx context.Context, reservation Reservation) ReservationNotice {
	notice := ReservationNotice{
		Reservation: reservation,
		DayOfWeek:   reservation.Start.Weekday(),
		TimeRange:   fmt.Sprintf("%s - %s", reservation.Start.Format("15:04"), reservation.End.Format("15:04")),
	}
	if s.classrooms != nil {
		if classroom, err := s.classrooms.GetClassroom(ctx, reservation.ClassroomID); err == nil {
			notice.ClassroomName = classroom.Name
		}
	}
	if s.users != nil {
		if requester, err := s.users.GetUser(ctx, reservation.RequesterID); err == nil {
			notice.RequesterEmail = requester.Email
			notice.RequesterName = requester.DisplayName
		}
	}
	return notice
}

func (s *ReservationService) emitCreated(ctx context.Context, reservation Reservation, warnings []HolidayWarning) {
	if s.sink == nil {
		return
	}
	notice := s.buildNotice(ctx, reservation)
	if err := s.sink.ReservationCreated(ctx, notice); err != nil {
		s.loggerWith(ctx, "Create").WarnContext(ctx, "created notification failed", "error", err)
	}
	if len(warnings) > 0 {
		if err := s.sink.HolidayWarning(ctx, notice, warnings); err != nil {
			s.loggerWith(ctx, "Create").WarnContext(ctx, "holiday notification failed", "error", err)
		}
	}
}

func (s *ReservationService) emitDecision(ctx context.Context, target ReservationStatus, notice ReservationNotice) {
	if s.sink == nil {
		return
	}
	var err error
	switch target {
	case StatusApproved:
		err = s.sink.ReservationApproved(ctx, notice)
	case StatusRejected:
		err = s.sink.ReservationRejected(ctx, notice)
	}
	if err != nil {
		s.loggerWith(ctx, "Decide").WarnContext(ctx, "decision notification failed", "error", err)
	}
}

func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return ErrAlreadyExists
	}
	if errors.Is(err, persistence.ErrForeignKeyViolation) {
		vErr := &ValidationError{}
		vErr.add("references", "related records are missing")
		return vErr
	}
	return err
}

func normalizeOptionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
