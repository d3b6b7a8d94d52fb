package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Sunnyraj65/Delishly/internal/checkout"
	"github.com/Sunnyraj65/Delishly/internal/domain"
	"github.com/Sunnyraj65/Delishly/internal/orders"
	"github.com/Sunnyraj65/Delishly/internal/serviceability"
)

// CheckoutRunner is the slice of the checkout service the handler needs.
type CheckoutRunner interface {
	Checkout(ctx context.Context, sessionID string, req checkout.Request) (*domain.Order, error)
}

// OrderReader is the read side of the orders repository.
type OrderReader interface {
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error)
}

type OrdersHandler struct {
	checkout CheckoutRunner
	orders   OrderReader
	checker  *serviceability.Checker
}

func NewOrdersHandler(co CheckoutRunner, reader OrderReader, checker *serviceability.Checker) *OrdersHandler {
	return &OrdersHandler{
		checkout: co,
		orders:   reader,
		checker:  checker,
	}
}

type CheckoutRequestDTO struct {
	IdempotencyKey string `json:"idempotency_key"`
	CustomerID     string `json:"customer_id"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Pincode        string `json:"pincode"`
}

func (h *OrdersHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "missing session identity")
		return
	}

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.IdempotencyKey == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "idempotency_key is required")
		return
	}
	if req.Address == "" || req.Phone == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "address and phone are required")
		return
	}
	if !h.checker.Serviceable(req.Pincode) {
		respondError(w, http.StatusUnprocessableEntity, "not_serviceable", "delivery is not available for this pincode")
		return
	}

	order, err := h.checkout.Checkout(r.Context(), sessionID, checkout.Request{
		IdempotencyKey: req.IdempotencyKey,
		CustomerID:     req.CustomerID,
		Address:        req.Address,
		Phone:          req.Phone,
		Pincode:        req.Pincode,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
		case errors.Is(err, orders.ErrDuplicateOrder):
			respondError(w, http.StatusConflict, "duplicate_order", "an order already exists for this idempotency key")
		default:
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to create order")
		}
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be a valid UUID")
		return
	}

	order, err := h.orders.GetOrderByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "order not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get order")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")
	if customerID == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "customer_id is required")
		return
	}

	result, err := h.orders.ListOrdersByCustomer(r.Context(), customerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list orders")
		return
	}
	if result == nil {
		result = []*domain.Order{}
	}
	respondJSON(w, http.StatusOK, result)
}
