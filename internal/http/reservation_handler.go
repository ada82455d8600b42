package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/altayburakhan/ClassroomDB/internal/application"
	"github.com/altayburakhan/ClassroomDB/internal/recurrence"
)

type reservationService interface {
	Create(ctx context.Context, params application.CreateReservationParams) (application.Reservation, []application.HolidayWarning, error)
	Get(ctx context.Context, principal application.Principal, reservationID string) (application.Reservation, error)
	List(ctx context.Context, params application.ListReservationsParams) ([]application.Reservation, error)
	Approve(ctx context.Context, params application.ApproveReservationParams) (application.Reservation, error)
	Reject(ctx context.Context, params application.RejectReservationParams) (application.Reservation, error)
	Cancel(ctx context.Context, params application.CancelReservationParams) (application.Reservation, error)
	PlanOccurrences(ctx context.Context, params application.CreateReservationParams) ([]recurrence.Occurrence, error)
}

// ReservationHandler serves the reservation lifecycle endpoints.
type ReservationHandler struct {
	service   reservationService
	responder responder
}

func NewReservationHandler(service reservationService, logger *slog.Logger) *ReservationHandler {
	return &ReservationHandler{service: service, responder: newResponder(defaultLogger(logger))}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req reservationRequest
	if err := decodeRequest(r, &req); err != nil {
		h.responder.handleRequestError(r.Context(), w, err)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	reservation, warnings, err := h.service.Create(r.Context(), application.CreateReservationParams{
		Principal: principal,
		Input:     req.toInput(principal),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, reservationResponse{
		Reservation: toReservationDTO(reservation),
		Warnings:    toHolidayWarningDTOs(warnings),
	})
}

func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	reservationID, ok := ReservationIDFromContext(r.Context())
	if !ok || strings.TrimSpace(reservationID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidReservationID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	reservation, err := h.service.Get(r.Context(), principal, reservationID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, reservationResponse{Reservation: toReservationDTO(reservation)})
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	reservations, err := h.service.List(r.Context(), buildReservationListParams(r.URL.Query(), principal))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listReservationsResponse{
		Reservations: toReservationDTOs(reservations),
	})
}

func (h *ReservationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, func(ctx context.Context, principal application.Principal, id string) (application.Reservation, error) {
		return h.service.Approve(ctx, application.ApproveReservationParams{Principal: principal, ReservationID: id})
	})
}

func (h *ReservationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	reservationID, ok := ReservationIDFromContext(r.Context())
	if !ok || strings.TrimSpace(reservationID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidReservationID)
		return
	}

	var req rejectRequest
	if err := decodeRequest(r, &req); err != nil {
		h.responder.handleRequestError(r.Context(), w, err)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	reservation, err := h.service.Reject(r.Context(), application.RejectReservationParams{
		Principal:     principal,
		ReservationID: reservationID,
		Reason:        strings.TrimSpace(req.Reason),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, reservationResponse{Reservation: toReservationDTO(reservation)})
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, func(ctx context.Context, principal application.Principal, id string) (application.Reservation, error) {
		return h.service.Cancel(ctx, application.CancelReservationParams{Principal: principal, ReservationID: id})
	})
}

func (h *ReservationHandler) decide(w http.ResponseWriter, r *http.Request, apply func(context.Context, application.Principal, string) (application.Reservation, error)) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	reservationID, ok := ReservationIDFromContext(r.Context())
	if !ok || strings.TrimSpace(reservationID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidReservationID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	reservation, err := apply(r.Context(), principal, reservationID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, reservationResponse{Reservation: toReservationDTO(reservation)})
}

// PlanOccurrences previews the occurrences a recurring request would
// produce, persisting nothing.
func (h *ReservationHandler) PlanOccurrences(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req reservationRequest
	if err := decodeRequest(r, &req); err != nil {
		h.responder.handleRequestError(r.Context(), w, err)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	occurrences, err := h.service.PlanOccurrences(r.Context(), application.CreateReservationParams{
		Principal: principal,
		Input:     req.toInput(principal),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, occurrencesResponse{
		Occurrences: toOccurrenceDTOs(occurrences),
	})
}

type reservationRequest struct {
	ClassroomID       string  `json:"classroom_id" validate:"required"`
	RequesterID       string  `json:"requester_id"`
	Start             string  `json:"start" validate:"required"`
	End               string  `json:"end" validate:"required"`
	Purpose           string  `json:"purpose" validate:"required"`
	Notes             string  `json:"notes"`
	IsRecurring       bool    `json:"is_recurring"`
	RecurrencePattern string  `json:"recurrence_pattern" validate:"omitempty,oneof=daily weekly"`
	RecurrenceEndDate *string `json:"recurrence_end_date"`
}

func (r reservationRequest) toInput(principal application.Principal) application.ReservationInput {
	requester := strings.TrimSpace(r.RequesterID)
	if requester == "" {
		requester = principal.UserID
	}

	input := application.ReservationInput{
		ClassroomID:       strings.TrimSpace(r.ClassroomID),
		RequesterID:       requester,
		Start:             parseTimestamp(r.Start),
		End:               parseTimestamp(r.End),
		Purpose:           strings.TrimSpace(r.Purpose),
		Notes:             r.Notes,
		IsRecurring:       r.IsRecurring,
		RecurrencePattern: strings.TrimSpace(r.RecurrencePattern),
	}
	if r.RecurrenceEndDate != nil {
		if until := parseDate(*r.RecurrenceEndDate); !until.IsZero() {
			input.RecurrenceEndDate = &until
		}
	}
	return input
}

type rejectRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type reservationResponse struct {
	Reservation reservationDTO      `json:"reservation"`
	Warnings    []holidayWarningDTO `json:"warnings,omitempty"`
}

type listReservationsResponse struct {
	Reservations []reservationDTO `json:"reservations"`
}

type occurrencesResponse struct {
	Occurrences []occurrenceDTO `json:"occurrences"`
}

type reservationDTO struct {
	ID                string  `json:"id"`
	ClassroomID       string  `json:"classroom_id"`
	RequesterID       string  `json:"requester_id"`
	TermID            string  `json:"term_id"`
	Start             string  `json:"start"`
	End               string  `json:"end"`
	Purpose           string  `json:"purpose"`
	Status            string  `json:"status"`
	RejectionReason   *string `json:"rejection_reason,omitempty"`
	Notes             *string `json:"notes,omitempty"`
	IsRecurring       bool    `json:"is_recurring"`
	RecurrencePattern *string `json:"recurrence_pattern,omitempty"`
	RecurrenceEndDate *string `json:"recurrence_end_date,omitempty"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

func toReservationDTO(reservation application.Reservation) reservationDTO {
	dto := reservationDTO{
		ID:                reservation.ID,
		ClassroomID:       reservation.ClassroomID,
		RequesterID:       reservation.RequesterID,
		TermID:            reservation.TermID,
		Start:             formatTimestamp(reservation.Start),
		End:               formatTimestamp(reservation.End),
		Purpose:           reservation.Purpose,
		Status:            string(reservation.Status),
		RejectionReason:   reservation.RejectionReason,
		Notes:             reservation.Notes,
		IsRecurring:       reservation.IsRecurring,
		RecurrencePattern: reservation.RecurrencePattern,
		CreatedAt:         formatTimestamp(reservation.CreatedAt),
		UpdatedAt:         formatTimestamp(reservation.UpdatedAt),
	}
	if reservation.RecurrenceEndDate != nil {
		until := formatDate(*reservation.RecurrenceEndDate)
		dto.RecurrenceEndDate = &until
	}
	return dto
}

func toReservationDTOs(reservations []application.Reservation) []reservationDTO {
	if len(reservations) == 0 {
		return nil
	}
	out := make([]reservationDTO, 0, len(reservations))
	for _, reservation := range reservations {
		out = append(out, toReservationDTO(reservation))
	}
	return out
}

type holidayWarningDTO struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

func toHolidayWarningDTOs(warnings []application.HolidayWarning) []holidayWarningDTO {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]holidayWarningDTO, 0, len(warnings))
	for _, warning := range warnings {
		out = append(out, holidayWarningDTO{
			Date: formatDate(warning.Date),
			Name: warning.Name,
		})
	}
	return out
}

type occurrenceDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func toOccurrenceDTOs(occurrences []recurrence.Occurrence) []occurrenceDTO {
	if len(occurrences) == 0 {
		return nil
	}
	out := make([]occurrenceDTO, 0, len(occurrences))
	for _, occurrence := range occurrences {
		out = append(out, occurrenceDTO{
			Start: formatTimestamp(occurrence.Start),
			End:   formatTimestamp(occurrence.End),
		})
	}
	return out
}

func buildReservationListParams(values url.Values, principal application.Principal) application.ListReservationsParams {
	params := application.ListReservationsParams{Principal: principal}

	if classroomID := strings.TrimSpace(values.Get("classroom_id")); classroomID != "" {
		params.ClassroomID = classroomID
	}
	if requesterID := strings.TrimSpace(values.Get("requester_id")); requesterID != "" {
		params.RequesterID = requesterID
	}
	for _, status := range splitCSV(values.Get("status")) {
		params.Statuses = append(params.Statuses, application.ReservationStatus(status))
	}
	if from := parseTimestamp(values.Get("from")); !from.IsZero() {
		params.From = &from
	}
	if to := parseTimestamp(values.Get("to")); !to.IsZero() {
		params.To = &to
	}
	return params
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
