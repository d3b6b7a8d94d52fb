package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sunnyraj65/Delishly/internal/cart"
	"github.com/Sunnyraj65/Delishly/internal/domain"
	"github.com/Sunnyraj65/Delishly/internal/orders"
	"github.com/Sunnyraj65/Delishly/internal/store"
)

type mockOrderRepository struct {
	mu      sync.Mutex
	created []*domain.Order
	keys    map[string]bool
	fail    error
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{keys: make(map[string]bool)}
}

func (m *mockOrderRepository) CreateOrder(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	if m.keys[order.IdempotencyKey] {
		return orders.ErrDuplicateOrder
	}
	m.keys[order.IdempotencyKey] = true
	m.created = append(m.created, order)
	return nil
}

func (m *mockOrderRepository) GetOrderByID(context.Context, uuid.UUID) (*domain.Order, error) {
	return nil, orders.ErrOrderNotFound
}

func (m *mockOrderRepository) ListOrdersByCustomer(context.Context, string) ([]*domain.Order, error) {
	return nil, nil
}

func (m *mockOrderRepository) GetUnprocessedEvents(context.Context, int) ([]*orders.OutboxEvent, error) {
	return nil, nil
}

func (m *mockOrderRepository) MarkEventProcessed(context.Context, int64) error { return nil }

func (m *mockOrderRepository) Close() error { return nil }

func (m *mockOrderRepository) createdOrders() []*domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.created
}

func testCheckoutRequest() Request {
	return Request{
		IdempotencyKey: "key-1",
		CustomerID:     "cust-1",
		Address:        "12 Marine Drive",
		Phone:          "9876543210",
		Pincode:        "110001",
	}
}

func newTestSetup(t *testing.T) (*Service, *cart.Manager, *mockOrderRepository) {
	t.Helper()
	manager := cart.NewManager(store.NewMemoryStore(), zerolog.Nop(), time.Hour)
	t.Cleanup(manager.Close)
	repo := newMockOrderRepository()
	return NewService(manager, repo, zerolog.Nop()), manager, repo
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc, _, repo := newTestSetup(t)

	_, err := svc.Checkout(context.Background(), "sess-1", testCheckoutRequest())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, repo.createdOrders())
}

func TestCheckout_CreatesOrderAndClearsCart(t *testing.T) {
	svc, manager, repo := newTestSetup(t)
	ctx := context.Background()

	engine := manager.Get(ctx, "sess-1")
	engine.AddItem(domain.CartItem{
		ID:            "pomfret-1kg",
		Customization: domain.Customization{"cut": "curry"},
		Pricing:       domain.ItemPricing{Total: 212.40, DeliveryFee: 40, CuttingFee: 10},
	}, 3)

	order, err := svc.Checkout(ctx, "sess-1", testCheckoutRequest())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.Equal(t, "key-1", order.IdempotencyKey)
	assert.Equal(t, "sess-1", order.SessionID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 3, order.Items[0].Quantity)
	assert.InDelta(t, 637.20, order.Subtotal, 0.001)
	assert.InDelta(t, 40, order.DeliveryFee, 0.001)
	assert.InDelta(t, 30, order.CuttingFee, 0.001)
	assert.InDelta(t, 31.86, order.Tax, 0.001)
	assert.InDelta(t, 709.06, order.Total, 0.001)

	require.Len(t, repo.createdOrders(), 1)
	assert.Empty(t, engine.Items())
}

func TestCheckout_DuplicateKeyKeepsCart(t *testing.T) {
	svc, manager, _ := newTestSetup(t)
	ctx := context.Background()

	engine := manager.Get(ctx, "sess-1")
	engine.AddItem(domain.CartItem{ID: "p1", Pricing: domain.ItemPricing{Total: 100}}, 1)

	_, err := svc.Checkout(ctx, "sess-1", testCheckoutRequest())
	require.NoError(t, err)

	engine.AddItem(domain.CartItem{ID: "p2", Pricing: domain.ItemPricing{Total: 50}}, 1)
	_, err = svc.Checkout(ctx, "sess-1", testCheckoutRequest())
	assert.ErrorIs(t, err, orders.ErrDuplicateOrder)
	assert.Len(t, engine.Items(), 1)
}

func TestCheckout_RepoFailureKeepsCart(t *testing.T) {
	svc, manager, repo := newTestSetup(t)
	ctx := context.Background()
	repo.fail = errors.New("postgres down")

	engine := manager.Get(ctx, "sess-1")
	engine.AddItem(domain.CartItem{ID: "p1", Pricing: domain.ItemPricing{Total: 100}}, 2)

	_, err := svc.Checkout(ctx, "sess-1", testCheckoutRequest())
	require.Error(t, err)
	assert.Len(t, engine.Items(), 1)
}
