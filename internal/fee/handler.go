package fee

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/hanifm/school-management/internal"
	"github.com/hanifm/school-management/internal/transport"
)

type ServiceAPI interface {
	CreateFee(dto CreateFeeDTO) (*Fee, error)
	GetFee(id int64) (*Fee, error)
	ListFees(filter ListFeesFilter, limit, offset int) ([]*Fee, error)
	RecordPayment(ctx context.Context, feeID, recordedBy int64, dto RecordPaymentDTO) (*Payment, error)
	ListPayments(feeID int64) ([]*Payment, error)
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

func (h *Handler) CreateFee(w http.ResponseWriter, r *http.Request) {
	var dto CreateFeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fee, err := h.Service.CreateFee(dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, fee)
}

func (h *Handler) GetFee(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(chi.URLParam(r, "feeID"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid fee id")
		return
	}

	fee, err := h.Service.GetFee(id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, fee)
}

func (h *Handler) ListFees(w http.ResponseWriter, r *http.Request) {
	limit, offset := h.Pagination(r)

	var filter ListFeesFilter
	if raw := r.URL.Query().Get("student_id"); raw != "" {
		id, err := h.ParseID(raw)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid student_id")
			return
		}
		filter.StudentID = id
	}
	filter.Status = r.URL.Query().Get("status")
	filter.FeeType = r.URL.Query().Get("fee_type")

	fees, err := h.Service.ListFees(filter, limit, offset)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"fees":   fees,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	feeID, err := h.ParseID(chi.URLParam(r, "feeID"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid fee id")
		return
	}

	var dto RecordPaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payment, err := h.Service.RecordPayment(r.Context(), feeID, user.ID, dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, payment)
}

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	feeID, err := h.ParseID(chi.URLParam(r, "feeID"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid fee id")
		return
	}

	payments, err := h.Service.ListPayments(feeID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"payments": payments,
	})
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrFeeNotFound):
		h.WriteError(w, http.StatusNotFound, "fee not found")
	case errors.Is(err, ErrPaymentNotFound):
		h.WriteError(w, http.StatusNotFound, "payment not found")
	case errors.Is(err, ErrFeeAlreadyPaid):
		h.WriteError(w, http.StatusConflict, "fee is already fully paid")
	default:
		h.HandleServiceError(w, err)
	}
}
