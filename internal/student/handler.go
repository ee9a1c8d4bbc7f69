package student

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/hanifm/school-management/internal/transport"
)

type ServiceAPI interface {
	AdmitStudent(dto CreateStudentDTO) (*Student, error)
	GetStudent(id int64) (*Student, error)
	ListStudents(filter ListStudentsFilter, limit, offset int) ([]*Student, error)
	UpdateStudent(id int64, dto UpdateStudentDTO) (*Student, error)
	Withdraw(id int64) error
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

func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var dto CreateStudentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateStudent: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.AdmitStudent(dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid student ID")
		return
	}

	found, err := h.Service.GetStudent(id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, found)
}

func (h *Handler) ListStudents(w http.ResponseWriter, r *http.Request) {
	limit, offset := h.Pagination(r)

	filter := ListStudentsFilter{Status: r.URL.Query().Get("status")}
	if classroomStr := r.URL.Query().Get("classroom_id"); classroomStr != "" {
		classroomID, err := h.ParseID(classroomStr)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid classroom_id")
			return
		}
		filter.ClassroomID = &classroomID
	}

	students, err := h.Service.ListStudents(filter, limit, offset)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"students": students,
		"limit":    limit,
		"offset":   offset,
	})
}

func (h *Handler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid student ID")
		return
	}

	var dto UpdateStudentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateStudent(id, dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid student ID")
		return
	}

	if err := h.Service.Withdraw(id); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrStudentNotFound):
		h.WriteError(w, http.StatusNotFound, "student not found")
	case errors.Is(err, ErrDuplicateAdmission):
		h.WriteError(w, http.StatusConflict, "admission number already in use")
	default:
		h.HandleServiceError(w, err)
	}
}
