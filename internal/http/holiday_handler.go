package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/altayburakhan/ClassroomDB/internal/holiday"
)

type holidayLookup interface {
	HolidaysInRange(ctx context.Context, from, to time.Time) ([]holiday.Holiday, error)
}

// HolidayHandler serves calendar lookups over the holiday service.
type HolidayHandler struct {
	service   holidayLookup
	responder responder
}

func NewHolidayHandler(service holidayLookup, logger *slog.Logger) *HolidayHandler {
	return &HolidayHandler{service: service, responder: newResponder(defaultLogger(logger))}
}

func (h *HolidayHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	from := parseDate(r.URL.Query().Get("from"))
	to := parseDate(r.URL.Query().Get("to"))
	if from.IsZero() || to.IsZero() {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest,
			errors.New("from and to query parameters are required as YYYY-MM-DD"))
		return
	}
	if to.Before(from) {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest,
			errors.New("to must not precede from"))
		return
	}

	holidays, err := h.service.HolidaysInRange(r.Context(), from, to)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listHolidaysResponse{Holidays: toHolidayDTOs(holidays)})
}

type listHolidaysResponse struct {
	Holidays []holidayEntryDTO `json:"holidays"`
}

type holidayEntryDTO struct {
	Date      string `json:"date"`
	Name      string `json:"name"`
	Religious bool   `json:"religious"`
}

func toHolidayDTOs(holidays []holiday.Holiday) []holidayEntryDTO {
	if len(holidays) == 0 {
		return nil
	}
	out := make([]holidayEntryDTO, 0, len(holidays))
	for _, entry := range holidays {
		out = append(out, holidayEntryDTO{
			Date:      formatDate(entry.Date),
			Name:      entry.Name,
			Religious: entry.Religious,
		})
	}
	return out
}
