package attendance

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hanifm/school-management/internal"
	"github.com/hanifm/school-management/internal/transport"
)

type ServiceAPI interface {
	MarkBulk(markedBy int64, dto BulkMarkDTO) ([]*Record, error)
	ListRecords(filter ListFilter, limit, offset int) ([]*Record, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(nil),
		Service:     service,
	}
}

func (h *Handler) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto BulkMarkDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	records, err := h.Service.MarkBulk(user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}

func (h *Handler) ListAttendance(w http.ResponseWriter, r *http.Request) {
	limit, offset := h.Pagination(r)

	var filter ListFilter
	if raw := r.URL.Query().Get("student_id"); raw != "" {
		id, err := h.ParseID(raw)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid student_id")
			return
		}
		filter.StudentID = id
	}
	if raw := r.URL.Query().Get("classroom_id"); raw != "" {
		id, err := h.ParseID(raw)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid classroom_id")
			return
		}
		filter.ClassroomID = id
	}
	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid from date, expected YYYY-MM-DD")
			return
		}
		filter.From = from
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid to date, expected YYYY-MM-DD")
			return
		}
		filter.To = to
	}

	records, err := h.Service.ListRecords(filter, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"limit":   limit,
		"offset":  offset,
	})
}
