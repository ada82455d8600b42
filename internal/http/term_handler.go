package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/altayburakhan/ClassroomDB/internal/application"
)

type termService interface {
	CreateTerm(ctx context.Context, params application.CreateTermParams) (application.Term, error)
	UpdateTerm(ctx context.Context, params application.UpdateTermParams) (application.Term, error)
	GetTerm(ctx context.Context, id string) (application.Term, error)
	ListTerms(ctx context.Context) ([]application.Term, error)
}

// TermHandler serves the academic term endpoints.
type TermHandler struct {
	service   termService
	responder responder
}

func NewTermHandler(service termService, logger *slog.Logger) *TermHandler {
	return &TermHandler{service: service, responder: newResponder(defaultLogger(logger))}
}

func (h *TermHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req termRequest
	if err := decodeRequest(r, &req); err != nil {
		h.responder.handleRequestError(r.Context(), w, err)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	term, err := h.service.CreateTerm(r.Context(), application.CreateTermParams{
		Principal: principal,
		Input:     req.toInput(),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, termResponse{Term: toTermDTO(term)})
}

func (h *TermHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	termID, ok := TermIDFromContext(r.Context())
	if !ok || strings.TrimSpace(termID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidTermID)
		return
	}

	var req termRequest
	if err := decodeRequest(r, &req); err != nil {
		h.responder.handleRequestError(r.Context(), w, err)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	term, err := h.service.UpdateTerm(r.Context(), application.UpdateTermParams{
		Principal: principal,
		TermID:    termID,
		Input:     req.toInput(),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, termResponse{Term: toTermDTO(term)})
}

func (h *TermHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	termID, ok := TermIDFromContext(r.Context())
	if !ok || strings.TrimSpace(termID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidTermID)
		return
	}

	term, err := h.service.GetTerm(r.Context(), termID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, termResponse{Term: toTermDTO(term)})
}

func (h *TermHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	terms, err := h.service.ListTerms(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listTermsResponse{Terms: toTermDTOs(terms)})
}

type termRequest struct {
	Name        string  `json:"name" validate:"required"`
	StartDate   string  `json:"start_date" validate:"required"`
	EndDate     string  `json:"end_date" validate:"required"`
	IsActive    *bool   `json:"is_active"`
	Description *string `json:"description"`
}

func (r termRequest) toInput() application.TermInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return application.TermInput{
		Name:        strings.TrimSpace(r.Name),
		StartDate:   parseDate(r.StartDate),
		EndDate:     parseDate(r.EndDate),
		IsActive:    active,
		Description: r.Description,
	}
}

type termResponse struct {
	Term termDTO `json:"term"`
}

type listTermsResponse struct {
	Terms []termDTO `json:"terms"`
}

type termDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	IsActive    bool    `json:"is_active"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func toTermDTO(term application.Term) termDTO {
	return termDTO{
		ID:          term.ID,
		Name:        term.Name,
		StartDate:   formatDate(term.StartDate),
		EndDate:     formatDate(term.EndDate),
		IsActive:    term.IsActive,
		Description: term.Description,
		CreatedAt:   formatTimestamp(term.CreatedAt),
		UpdatedAt:   formatTimestamp(term.UpdatedAt),
	}
}

func toTermDTOs(terms []application.Term) []termDTO {
	if len(terms) == 0 {
		return nil
	}
	out := make([]termDTO, 0, len(terms))
	for _, term := range terms {
		out = append(out, toTermDTO(term))
	}
	return out
}
