package grade

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/hanifm/school-management/internal"
	"github.com/hanifm/school-management/internal/transport"
)

type ServiceAPI interface {
	RecordGrade(recordedBy int64, dto CreateGradeDTO) (*Grade, error)
	GetGrade(id int64) (*Grade, error)
	ListGrades(filter ListGradesFilter, limit, offset int) ([]*Grade, error)
	UpdateGrade(id int64, dto UpdateGradeDTO) (*Grade, error)
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

func (h *Handler) CreateGrade(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateGradeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.RecordGrade(user.ID, dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetGrade(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid grade ID")
		return
	}

	found, err := h.Service.GetGrade(id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, found)
}

func (h *Handler) ListGrades(w http.ResponseWriter, r *http.Request) {
	limit, offset := h.Pagination(r)

	filter := ListGradesFilter{
		Subject: r.URL.Query().Get("subject"),
		Term:    r.URL.Query().Get("term"),
	}
	if raw := r.URL.Query().Get("student_id"); raw != "" {
		id, err := h.ParseID(raw)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid student_id")
			return
		}
		filter.StudentID = id
	}

	grades, err := h.Service.ListGrades(filter, limit, offset)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"grades": grades,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) UpdateGrade(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid grade ID")
		return
	}

	var dto UpdateGradeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateGrade(id, dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrGradeNotFound) {
		h.WriteError(w, http.StatusNotFound, "grade not found")
		return
	}
	h.HandleServiceError(w, err)
}
