package crm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/hanifm/school-management/internal/transport"
)

type ServiceAPI interface {
	CreateLead(dto CreateLeadDTO) (*Lead, error)
	GetLead(id int64) (*Lead, error)
	ListLeads(filter ListLeadsFilter, limit, offset int) ([]*Lead, error)
	AssignLead(id, staffUserID int64) (*Lead, error)
	MoveLead(id int64, dto MoveLeadDTO) (*Lead, error)
	ConvertLead(ctx context.Context, id int64, dto ConvertLeadDTO) (*Lead, error)
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

func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var dto CreateLeadDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lead, err := h.Service.CreateLead(dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, lead)
}

func (h *Handler) GetLead(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(chi.URLParam(r, "leadID"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid lead id")
		return
	}

	lead, err := h.Service.GetLead(id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, lead)
}

func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	limit, offset := h.Pagination(r)

	var filter ListLeadsFilter
	filter.Status = r.URL.Query().Get("status")
	if raw := r.URL.Query().Get("assigned_to"); raw != "" {
		id, err := h.ParseID(raw)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid assigned_to")
			return
		}
		filter.AssignedTo = id
	}

	leads, err := h.Service.ListLeads(filter, limit, offset)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"leads":  leads,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) AssignLead(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(chi.URLParam(r, "leadID"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid lead id")
		return
	}

	var body struct {
		UserID int64 `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.UserID <= 0 {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lead, err := h.Service.AssignLead(id, body.UserID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, lead)
}

func (h *Handler) MoveLead(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(chi.URLParam(r, "leadID"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid lead id")
		return
	}

	var dto MoveLeadDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lead, err := h.Service.MoveLead(id, dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, lead)
}

func (h *Handler) ConvertLead(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(chi.URLParam(r, "leadID"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid lead id")
		return
	}

	var dto ConvertLeadDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lead, err := h.Service.ConvertLead(r.Context(), id, dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, lead)
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrLeadNotFound):
		h.WriteError(w, http.StatusNotFound, "lead not found")
	case errors.Is(err, ErrLeadAlreadyClosed):
		h.WriteError(w, http.StatusConflict, "lead is already closed")
	case errors.Is(err, ErrInvalidTransition):
		h.WriteError(w, http.StatusConflict, "invalid lead status transition")
	default:
		h.HandleServiceError(w, err)
	}
}
