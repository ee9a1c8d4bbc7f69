package notification

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/hanifm/school-management/internal"
	"github.com/hanifm/school-management/internal/transport"
)

type ServiceAPI interface {
	ListForUser(userID int64, unreadOnly bool, limit, offset int) ([]*Notification, error)
	CountUnread(userID int64) (int64, error)
	MarkRead(id, userID int64) error
	MarkAllRead(userID int64) (int64, error)
	Broadcast(dto BroadcastDTO) (int, error)
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

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, offset := h.Pagination(r)
	unreadOnly := r.URL.Query().Get("unread") == "true"

	notifications, err := h.Service.ListForUser(user.ID, unreadOnly, limit, offset)
	if err != nil {
		h.handleError(w, err)
		return
	}

	unread, err := h.Service.CountUnread(user.ID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": notifications,
		"unread_count":  unread,
		"limit":         limit,
		"offset":        offset,
	})
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.ParseID(chi.URLParam(r, "notificationID"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := h.Service.MarkRead(id, user.ID); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	updated, err := h.Service.MarkAllRead(user.ID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"marked_read": updated,
	})
}

func (h *Handler) Broadcast(w http.ResponseWriter, r *http.Request) {
	var dto BroadcastDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	recipients, err := h.Service.Broadcast(dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"recipients": recipients,
	})
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotificationNotFound):
		h.WriteError(w, http.StatusNotFound, "notification not found")
	default:
		h.HandleServiceError(w, err)
	}
}
