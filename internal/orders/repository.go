package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Sunnyraj65/Delishly/internal/domain"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrDuplicateOrder = errors.New("order already exists for idempotency key")
)

// OutboxEvent is a pending domain event written in the same transaction
// as the order it belongs to.
type OutboxEvent struct {
	ID          int64
	AggregateID string
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
}

// Repository defines order persistence. CreateOrder writes the order and
// its order_created outbox event atomically.
type Repository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error)
	GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkEventProcessed(ctx context.Context, id int64) error
	Close() error
}
