package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Sunnyraj65/Delishly/internal/cart"
	"github.com/Sunnyraj65/Delishly/internal/catalog"
	"github.com/Sunnyraj65/Delishly/internal/config"
	"github.com/Sunnyraj65/Delishly/internal/domain"
	"github.com/Sunnyraj65/Delishly/internal/pricing"
)

// ProductGetter is the slice of the catalog the cart handler needs to
// price a product being added.
type ProductGetter interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

type CartHandler struct {
	carts   *cart.Manager
	catalog ProductGetter
	fees    config.PricingConfig
	timeout time.Duration
}

func NewCartHandler(carts *cart.Manager, catalog ProductGetter, fees config.PricingConfig, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		catalog: catalog,
		fees:    fees,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID     string            `json:"product_id"`
	Quantity      int               `json:"quantity"`
	Customization map[string]string `json:"customization"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponseDTO struct {
	Items   []domain.CartItem `json:"items"`
	Summary pricing.Summary   `json:"summary"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "missing session identity")
		return
	}

	engine := h.carts.Get(r.Context(), sessionID)
	respondCart(w, http.StatusOK, engine)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "missing session identity")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	product, err := h.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to validate product")
		return
	}
	if product.Status != "live" {
		respondError(w, http.StatusConflict, "product_unavailable", "product is not available for ordering")
		return
	}

	item := domain.CartItem{
		ID:            product.ID,
		Name:          product.Name,
		Customization: req.Customization,
		Pricing: domain.ItemPricing{
			Total:       product.TotalPrice,
			DeliveryFee: h.fees.DeliveryFee,
		},
	}
	if len(req.Customization) > 0 {
		item.Pricing.CuttingFee = h.fees.CuttingFee
	}

	engine := h.carts.Get(r.Context(), sessionID)
	engine.AddItem(item, req.Quantity)

	respondCart(w, http.StatusCreated, engine)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "missing session identity")
		return
	}

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	engine := h.carts.Get(r.Context(), sessionID)
	engine.UpdateQuantity(productID, req.Quantity)

	respondCart(w, http.StatusOK, engine)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "missing session identity")
		return
	}

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	engine := h.carts.Get(r.Context(), sessionID)
	engine.RemoveItem(productID)

	respondCart(w, http.StatusOK, engine)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "missing session identity")
		return
	}

	engine := h.carts.Get(r.Context(), sessionID)
	engine.Clear()

	respondCart(w, http.StatusOK, engine)
}

func respondCart(w http.ResponseWriter, status int, engine *cart.Engine) {
	items := engine.Items()
	if items == nil {
		items = []domain.CartItem{}
	}
	respondJSON(w, status, CartResponseDTO{
		Items:   items,
		Summary: pricing.Calculate(items),
	})
}
