package assignment

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/hanifm/school-management/internal"
	"github.com/hanifm/school-management/internal/auth"
	"github.com/hanifm/school-management/internal/transport"
)

type ServiceAPI interface {
	CreateAssignment(teacherID int64, dto CreateAssignmentDTO) (*Assignment, error)
	GetAssignment(id int64) (*Assignment, error)
	ListAssignments(classroomID, teacherID int64, limit, offset int) ([]*Assignment, error)
	UpdateAssignment(id, callerTeacherID int64, isAdmin bool, dto UpdateAssignmentDTO) (*Assignment, error)
	DeleteAssignment(id, callerTeacherID int64, isAdmin bool) error
	Submit(assignmentID, studentID int64, dto SubmitAssignmentDTO) (*Submission, error)
	ListSubmissions(assignmentID int64, limit, offset int) ([]*Submission, error)
	GradeSubmission(submissionID, graderUserID int64, dto GradeSubmissionDTO) (*Submission, error)
}

// StudentResolver maps the calling user to their student record, needed
// for submissions.
type StudentResolver interface {
	StudentIDForUser(userID int64) (int64, error)
}

// TeacherResolver maps the calling user to their teacher record.
// Assignments reference teachers.id, not users.id, so the handler must
// translate before writing.
type TeacherResolver interface {
	TeacherIDForUser(userID int64) (int64, error)
}

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	Students StudentResolver
	Teachers TeacherResolver
}

func NewHandler(service ServiceAPI, students StudentResolver, teachers TeacherResolver) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(nil),
		Service:     service,
		Students:    students,
		Teachers:    teachers,
	}
}

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	teacherID, err := h.Teachers.TeacherIDForUser(user.ID)
	if err != nil {
		h.Logger.Warn("create assignment: no teacher record for user", "user_id", user.ID)
		h.WriteError(w, http.StatusForbidden, "no teacher record linked to this account")
		return
	}

	var dto CreateAssignmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateAssignment(teacherID, dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid assignment ID")
		return
	}

	found, err := h.Service.GetAssignment(id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, found)
}

func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	limit, offset := h.Pagination(r)

	var classroomID, teacherID int64
	if raw := r.URL.Query().Get("classroom_id"); raw != "" {
		id, err := h.ParseID(raw)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid classroom_id")
			return
		}
		classroomID = id
	}
	if raw := r.URL.Query().Get("teacher_id"); raw != "" {
		id, err := h.ParseID(raw)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid teacher_id")
			return
		}
		teacherID = id
	}

	assignments, err := h.Service.ListAssignments(classroomID, teacherID, limit, offset)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"assignments": assignments,
		"limit":       limit,
		"offset":      offset,
	})
}

func (h *Handler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid assignment ID")
		return
	}

	isAdmin := user.Role == string(auth.RoleAdmin)
	var teacherID int64
	if !isAdmin {
		teacherID, err = h.Teachers.TeacherIDForUser(user.ID)
		if err != nil {
			h.WriteError(w, http.StatusForbidden, "no teacher record linked to this account")
			return
		}
	}

	var dto UpdateAssignmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateAssignment(id, teacherID, isAdmin, dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid assignment ID")
		return
	}

	isAdmin := user.Role == string(auth.RoleAdmin)
	var teacherID int64
	if !isAdmin {
		teacherID, err = h.Teachers.TeacherIDForUser(user.ID)
		if err != nil {
			h.WriteError(w, http.StatusForbidden, "no teacher record linked to this account")
			return
		}
	}

	if err := h.Service.DeleteAssignment(id, teacherID, isAdmin); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SubmitAssignment(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid assignment ID")
		return
	}

	studentID, err := h.Students.StudentIDForUser(user.ID)
	if err != nil {
		h.Logger.Warn("submit: no student record for user", "user_id", user.ID)
		h.WriteError(w, http.StatusForbidden, "no student record linked to this account")
		return
	}

	var dto SubmitAssignmentDTO
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&dto)
	}

	sub, err := h.Service.Submit(id, studentID, dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, sub)
}

func (h *Handler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid assignment ID")
		return
	}

	limit, offset := h.Pagination(r)
	subs, err := h.Service.ListSubmissions(id, limit, offset)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"submissions": subs,
		"limit":       limit,
		"offset":      offset,
	})
}

func (h *Handler) GradeSubmission(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	submissionID, err := h.ParseID(chi.URLParam(r, "submissionID"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid submission ID")
		return
	}

	var dto GradeSubmissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	graded, err := h.Service.GradeSubmission(submissionID, user.ID, dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, graded)
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrAssignmentNotFound):
		h.WriteError(w, http.StatusNotFound, "assignment not found")
	case errors.Is(err, ErrSubmissionNotFound):
		h.WriteError(w, http.StatusNotFound, "submission not found")
	case errors.Is(err, ErrAlreadySubmitted):
		h.WriteError(w, http.StatusConflict, "assignment already submitted")
	case errors.Is(err, ErrPastDueDate):
		h.WriteError(w, http.StatusConflict, "assignment past its due date")
	case errors.Is(err, ErrNotOwner):
		h.WriteError(w, http.StatusForbidden, "assignment belongs to another teacher")
	case errors.Is(err, ErrScoreOutOfRange):
		h.WriteError(w, http.StatusBadRequest, "score exceeds the assignment maximum")
	default:
		h.HandleServiceError(w, err)
	}
}
