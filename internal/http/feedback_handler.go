package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/altayburakhan/ClassroomDB/internal/application"
)

type feedbackService interface {
	Submit(ctx context.Context, params application.SubmitFeedbackParams) (application.Feedback, error)
	ListForClassroom(ctx context.Context, classroomID string) ([]application.Feedback, error)
}

// FeedbackHandler serves classroom feedback endpoints.
type FeedbackHandler struct {
	service   feedbackService
	responder responder
}

func NewFeedbackHandler(service feedbackService, logger *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{service: service, responder: newResponder(defaultLogger(logger))}
}

func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req feedbackRequest
	if err := decodeRequest(r, &req); err != nil {
		h.responder.handleRequestError(r.Context(), w, err)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	feedback, err := h.service.Submit(r.Context(), application.SubmitFeedbackParams{
		Principal: principal,
		Input: application.FeedbackInput{
			ClassroomID: strings.TrimSpace(req.ClassroomID),
			Rating:      req.Rating,
			Comment:     req.Comment,
		},
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, feedbackResponse{Feedback: toFeedbackDTO(feedback)})
}

func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	classroomID := strings.TrimSpace(r.URL.Query().Get("classroom_id"))
	if classroomID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errors.New("a classroom_id query parameter is required"))
		return
	}

	feedback, err := h.service.ListForClassroom(r.Context(), classroomID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listFeedbackResponse{Feedback: toFeedbackDTOs(feedback)})
}

type feedbackRequest struct {
	ClassroomID string `json:"classroom_id" validate:"required"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	Comment     string `json:"comment" validate:"required,max=500"`
}

type feedbackResponse struct {
	Feedback feedbackDTO `json:"feedback"`
}

type listFeedbackResponse struct {
	Feedback []feedbackDTO `json:"feedback"`
}

type feedbackDTO struct {
	ID          string `json:"id"`
	AuthorID    string `json:"author_id"`
	ClassroomID string `json:"classroom_id"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
	CreatedAt   string `json:"created_at"`
}

func toFeedbackDTO(feedback application.Feedback) feedbackDTO {
	return feedbackDTO{
		ID:          feedback.ID,
		AuthorID:    feedback.AuthorID,
		ClassroomID: feedback.ClassroomID,
		Rating:      feedback.Rating,
		Comment:     feedback.Comment,
		CreatedAt:   formatTimestamp(feedback.CreatedAt),
	}
}

func toFeedbackDTOs(feedback []application.Feedback) []feedbackDTO {
	if len(feedback) == 0 {
		return nil
	}
	out := make([]feedbackDTO, 0, len(feedback))
	for _, entry := range feedback {
		out = append(out, toFeedbackDTO(entry))
	}
	return out
}
