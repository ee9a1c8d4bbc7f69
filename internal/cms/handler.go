package cms

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/hanifm/school-management/internal"
	"github.com/hanifm/school-management/internal/transport"
)

type ServiceAPI interface {
	CreatePage(createdBy int64, dto CreatePageDTO) (*Page, error)
	GetPage(id int64) (*Page, error)
	PublishedPage(slug string) (*Page, error)
	ListPages(publishedOnly bool, limit, offset int) ([]*Page, error)
	UpdatePage(id int64, dto UpdatePageDTO) (*Page, error)
	PublishPage(id int64) (*Page, error)
	UnpublishPage(id int64) (*Page, error)
	DeletePage(id int64) error
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

func (h *Handler) CreatePage(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreatePageDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	page, err := h.Service.CreatePage(user.ID, dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, page)
}

func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(chi.URLParam(r, "pageID"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid page id")
		return
	}

	page, err := h.Service.GetPage(id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, page)
}

// GetPublishedPage is the only unauthenticated content endpoint.
func (h *Handler) GetPublishedPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		h.WriteError(w, http.StatusBadRequest, "invalid slug")
		return
	}

	page, err := h.Service.PublishedPage(slug)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) ListPages(w http.ResponseWriter, r *http.Request) {
	limit, offset := h.Pagination(r)
	publishedOnly := r.URL.Query().Get("published") == "true"

	pages, err := h.Service.ListPages(publishedOnly, limit, offset)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"pages":  pages,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(chi.URLParam(r, "pageID"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid page id")
		return
	}

	var dto UpdatePageDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	page, err := h.Service.UpdatePage(id, dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) PublishPage(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(chi.URLParam(r, "pageID"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid page id")
		return
	}

	page, err := h.Service.PublishPage(id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) UnpublishPage(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(chi.URLParam(r, "pageID"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid page id")
		return
	}

	page, err := h.Service.UnpublishPage(id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) DeletePage(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(chi.URLParam(r, "pageID"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid page id")
		return
	}

	if err := h.Service.DeletePage(id); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPageNotFound):
		h.WriteError(w, http.StatusNotFound, "page not found")
	case errors.Is(err, ErrDuplicateSlug):
		h.WriteError(w, http.StatusConflict, "slug already in use")
	default:
		h.HandleServiceError(w, err)
	}
}
