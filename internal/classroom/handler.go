package classroom

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/hanifm/school-management/internal/transport"
)

type ServiceAPI interface {
	CreateClassroom(dto CreateClassroomDTO) (*Classroom, error)
	GetClassroom(id int64) (*Classroom, error)
	ListClassrooms(academicYear string, limit, offset int) ([]*Classroom, error)
	UpdateClassroom(id int64, dto UpdateClassroomDTO) (*Classroom, error)
	AssignHomeroomTeacher(id int64, dto AssignTeacherDTO) (*Classroom, error)
	DeleteClassroom(id int64) error
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

func (h *Handler) CreateClassroom(w http.ResponseWriter, r *http.Request) {
	var dto CreateClassroomDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateClassroom(dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetClassroom(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid classroom ID")
		return
	}

	found, err := h.Service.GetClassroom(id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, found)
}

func (h *Handler) ListClassrooms(w http.ResponseWriter, r *http.Request) {
	limit, offset := h.Pagination(r)

	rooms, err := h.Service.ListClassrooms(r.URL.Query().Get("academic_year"), limit, offset)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"classrooms": rooms,
		"limit":      limit,
		"offset":     offset,
	})
}

func (h *Handler) UpdateClassroom(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid classroom ID")
		return
	}

	var dto UpdateClassroomDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateClassroom(id, dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) AssignTeacher(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid classroom ID")
		return
	}

	var dto AssignTeacherDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.AssignHomeroomTeacher(id, dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteClassroom(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid classroom ID")
		return
	}

	if err := h.Service.DeleteClassroom(id); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrClassroomNotFound):
		h.WriteError(w, http.StatusNotFound, "classroom not found")
	case errors.Is(err, ErrDuplicateName):
		h.WriteError(w, http.StatusConflict, "classroom already exists for this academic year")
	case errors.Is(err, ErrCapacityExceeded):
		h.WriteError(w, http.StatusConflict, "classroom capacity exceeded")
	case errors.Is(err, ErrClassroomNotEmpty):
		h.WriteError(w, http.StatusConflict, "classroom still has enrolled students")
	default:
		h.HandleServiceError(w, err)
	}
}
