package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/altayburakhan/ClassroomDB/internal/application"
)

type classroomService interface {
	CreateClassroom(ctx context.Context, params application.CreateClassroomParams) (application.Classroom, error)
	UpdateClassroom(ctx context.Context, params application.UpdateClassroomParams) (application.Classroom, error)
	DeactivateClassroom(ctx context.Context, principal application.Principal, classroomID string) (application.Classroom, error)
	GetClassroom(ctx context.Context, id string) (application.Classroom, error)
	ListClassrooms(ctx context.Context, principal application.Principal, includeInactive bool) ([]application.Classroom, error)
}

// ClassroomHandler serves the classroom catalog endpoints.
type ClassroomHandler struct {
	service   classroomService
	responder responder
}

func NewClassroomHandler(service classroomService, logger *slog.Logger) *ClassroomHandler {
	return &ClassroomHandler{service: service, responder: newResponder(defaultLogger(logger))}
}

func (h *ClassroomHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req classroomRequest
	if err := decodeRequest(r, &req); err != nil {
		h.responder.handleRequestError(r.Context(), w, err)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	classroom, err := h.service.CreateClassroom(r.Context(), application.CreateClassroomParams{
		Principal: principal,
		Input:     req.toInput(),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, classroomResponse{Classroom: toClassroomDTO(classroom)})
}

func (h *ClassroomHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	classroomID, ok := ClassroomIDFromContext(r.Context())
	if !ok || strings.TrimSpace(classroomID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidClassroomID)
		return
	}

	var req classroomRequest
	if err := decodeRequest(r, &req); err != nil {
		h.responder.handleRequestError(r.Context(), w, err)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	classroom, err := h.service.UpdateClassroom(r.Context(), application.UpdateClassroomParams{
		Principal:   principal,
		ClassroomID: classroomID,
		Input:       req.toInput(),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, classroomResponse{Classroom: toClassroomDTO(classroom)})
}

// Deactivate handles DELETE. The classroom is flagged inactive and its
// reservation history survives.
func (h *ClassroomHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	classroomID, ok := ClassroomIDFromContext(r.Context())
	if !ok || strings.TrimSpace(classroomID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidClassroomID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	if _, err := h.service.DeactivateClassroom(r.Context(), principal, classroomID); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *ClassroomHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	classroomID, ok := ClassroomIDFromContext(r.Context())
	if !ok || strings.TrimSpace(classroomID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidClassroomID)
		return
	}

	classroom, err := h.service.GetClassroom(r.Context(), classroomID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, classroomResponse{Classroom: toClassroomDTO(classroom)})
}

func (h *ClassroomHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	includeInactive, _ := strconv.ParseBool(r.URL.Query().Get("include_inactive"))

	classrooms, err := h.service.ListClassrooms(r.Context(), principal, includeInactive)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listClassroomsResponse{Classrooms: toClassroomDTOs(classrooms)})
}

type classroomRequest struct {
	Name        string  `json:"name" validate:"required"`
	RoomNumber  string  `json:"room_number"`
	Building    string  `json:"building"`
	Floor       int     `json:"floor" validate:"gte=0"`
	Capacity    int     `json:"capacity" validate:"required,gt=0"`
	Features    *string `json:"features"`
	Description *string `json:"description"`
}

func (r classroomRequest) toInput() application.ClassroomInput {
	return application.ClassroomInput{
		Name:        strings.TrimSpace(r.Name),
		RoomNumber:  strings.TrimSpace(r.RoomNumber),
		Building:    strings.TrimSpace(r.Building),
		Floor:       r.Floor,
		Capacity:    r.Capacity,
		Features:    r.Features,
		Description: r.Description,
	}
}

type classroomResponse struct {
	Classroom classroomDTO `json:"classroom"`
}

type listClassroomsResponse struct {
	Classrooms []classroomDTO `json:"classrooms"`
}

type classroomDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	RoomNumber  string  `json:"room_number,omitempty"`
	Building    string  `json:"building,omitempty"`
	Floor       int     `json:"floor"`
	Capacity    int     `json:"capacity"`
	Features    *string `json:"features,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func toClassroomDTO(classroom application.Classroom) classroomDTO {
	return classroomDTO{
		ID:          classroom.ID,
		Name:        classroom.Name,
		RoomNumber:  classroom.RoomNumber,
		Building:    classroom.Building,
		Floor:       classroom.Floor,
		Capacity:    classroom.Capacity,
		Features:    classroom.Features,
		Description: classroom.Description,
		IsActive:    classroom.IsActive,
		CreatedAt:   formatTimestamp(classroom.CreatedAt),
		UpdatedAt:   formatTimestamp(classroom.UpdatedAt),
	}
}

func toClassroomDTOs(classrooms []application.Classroom) []classroomDTO {
	if len(classrooms) == 0 {
		return nil
	}
	out := make([]classroomDTO, 0, len(classrooms))
	for _, classroom := range classrooms {
		out = append(out, toClassroomDTO(classroom))
	}
	return out
}
