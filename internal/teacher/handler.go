package teacher

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/hanifm/school-management/internal/transport"
)

type ServiceAPI interface {
	HireTeacher(dto CreateTeacherDTO) (*Teacher, error)
	GetTeacher(id int64) (*Teacher, error)
	ListTeachers(status string, limit, offset int) ([]*Teacher, error)
	UpdateTeacher(id int64, dto UpdateTeacherDTO) (*Teacher, error)
	Deactivate(id int64) error
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

func (h *Handler) CreateTeacher(w http.ResponseWriter, r *http.Request) {
	var dto CreateTeacherDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.HireTeacher(dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetTeacher(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid teacher ID")
		return
	}

	found, err := h.Service.GetTeacher(id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, found)
}

func (h *Handler) ListTeachers(w http.ResponseWriter, r *http.Request) {
	limit, offset := h.Pagination(r)

	teachers, err := h.Service.ListTeachers(r.URL.Query().Get("status"), limit, offset)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"teachers": teachers,
		"limit":    limit,
		"offset":   offset,
	})
}

func (h *Handler) UpdateTeacher(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid teacher ID")
		return
	}

	var dto UpdateTeacherDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateTeacher(id, dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteTeacher(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid teacher ID")
		return
	}

	if err := h.Service.Deactivate(id); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrTeacherNotFound):
		h.WriteError(w, http.StatusNotFound, "teacher not found")
	case errors.Is(err, ErrDuplicateEmployeeNo):
		h.WriteError(w, http.StatusConflict, "employee number already in use")
	default:
		h.HandleServiceError(w, err)
	}
}
