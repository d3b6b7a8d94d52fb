package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Sunnyraj65/Delishly/internal/cart"
	"github.com/Sunnyraj65/Delishly/internal/domain"
	"github.com/Sunnyraj65/Delishly/internal/orders"
)

var ErrEmptyCart = errors.New("cart is empty")

// Request carries the customer details needed to turn a cart into an
// order. The idempotency key makes UI retries safe.
type Request struct {
	IdempotencyKey string
	CustomerID     string
	Address        string
	Phone          string
	Pincode        string
}

// Service finalizes carts: it snapshots the engine's items and summary,
// writes the order record, and clears the cart only after the order is
// durably stored.
type Service struct {
	carts *cart.Manager
	repo  orders.Repository
	log   zerolog.Logger
}

func NewService(carts *cart.Manager, repo orders.Repository, log zerolog.Logger) *Service {
	return &Service{
		carts: carts,
		repo:  repo,
		log:   log,
	}
}

func (s *Service) Checkout(ctx context.Context, sessionID string, req Request) (*domain.Order, error) {
	engine := s.carts.Get(ctx, sessionID)

	items := engine.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	summary := engine.Summary()

	order := &domain.Order{
		ID:             uuid.New(),
		IdempotencyKey: req.IdempotencyKey,
		SessionID:      sessionID,
		CustomerID:     req.CustomerID,
		Address:        req.Address,
		Phone:          req.Phone,
		Pincode:        req.Pincode,
		Items:          items,
		Subtotal:       summary.Subtotal,
		DeliveryFee:    summary.DeliveryFee,
		CuttingFee:     summary.CuttingFee,
		Tax:            summary.Tax,
		Total:          summary.Total,
		Status:         domain.OrderStatusPending,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		if errors.Is(err, orders.ErrDuplicateOrder) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	engine.Clear()

	s.log.Info().
		Str("order", order.ID.String()).
		Str("session", sessionID).
		Float64("total", order.Total).
		Msg("order created")

	return order, nil
}
