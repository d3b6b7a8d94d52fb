package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sunnyraj65/Delishly/internal/checkout"
	"github.com/Sunnyraj65/Delishly/internal/domain"
	"github.com/Sunnyraj65/Delishly/internal/orders"
	"github.com/Sunnyraj65/Delishly/internal/serviceability"
)

type stubCheckout struct {
	order *domain.Order
	err   error

	gotSession string
	gotRequest checkout.Request
}

func (s *stubCheckout) Checkout(_ context.Context, sessionID string, req checkout.Request) (*domain.Order, error) {
	s.gotSession = sessionID
	s.gotRequest = req
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

type stubOrderReader struct {
	orders map[uuid.UUID]*domain.Order
	byCust map[string][]*domain.Order
}

func (s *stubOrderReader) GetOrderByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, orders.ErrOrderNotFound
	}
	return o, nil
}

func (s *stubOrderReader) ListOrdersByCustomer(_ context.Context, customerID string) ([]*domain.Order, error) {
	return s.byCust[customerID], nil
}

func newOrdersTestRouter(co *stubCheckout, reader *stubOrderReader) chi.Router {
	if reader == nil {
		reader = &stubOrderReader{}
	}
	handler := NewOrdersHandler(co, reader, serviceability.NewChecker([]string{"110001"}))

	r := chi.NewRouter()
	r.Use(SessionMiddleware)
	r.Post("/checkout", handler.Checkout)
	r.Get("/orders", handler.ListOrders)
	r.Get("/orders/{id}", handler.GetOrder)
	return r
}

func validCheckoutBody() CheckoutRequestDTO {
	return CheckoutRequestDTO{
		IdempotencyKey: "key-1",
		CustomerID:     "cust-1",
		Address:        "12 Marine Drive",
		Phone:          "9876543210",
		Pincode:        "110001",
	}
}

func postCheckout(t *testing.T, r chi.Router, body CheckoutRequestDTO) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(payload))
	req.Header.Set("X-Session-ID", "sess-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestOrdersHandler_CheckoutSuccess(t *testing.T) {
	order := &domain.Order{ID: uuid.New(), Total: 709.06, Status: domain.OrderStatusPending}
	co := &stubCheckout{order: order}
	r := newOrdersTestRouter(co, nil)

	rec := postCheckout(t, r, validCheckoutBody())

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "sess-1", co.gotSession)
	assert.Equal(t, "key-1", co.gotRequest.IdempotencyKey)

	var got domain.Order
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, order.ID, got.ID)
}

func TestOrdersHandler_CheckoutValidation(t *testing.T) {
	r := newOrdersTestRouter(&stubCheckout{}, nil)

	missingKey := validCheckoutBody()
	missingKey.IdempotencyKey = ""
	assert.Equal(t, http.StatusBadRequest, postCheckout(t, r, missingKey).Code)

	missingAddress := validCheckoutBody()
	missingAddress.Address = ""
	assert.Equal(t, http.StatusBadRequest, postCheckout(t, r, missingAddress).Code)

	badPincode := validCheckoutBody()
	badPincode.Pincode = "999999"
	assert.Equal(t, http.StatusUnprocessableEntity, postCheckout(t, r, badPincode).Code)
}

func TestOrdersHandler_CheckoutErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"empty cart", checkout.ErrEmptyCart, http.StatusBadRequest},
		{"duplicate order", orders.ErrDuplicateOrder, http.StatusConflict},
		{"storage failure", context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newOrdersTestRouter(&stubCheckout{err: tt.err}, nil)
			rec := postCheckout(t, r, validCheckoutBody())
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestOrdersHandler_GetOrder(t *testing.T) {
	id := uuid.New()
	reader := &stubOrderReader{orders: map[uuid.UUID]*domain.Order{
		id: {ID: id, Total: 100},
	}}
	r := newOrdersTestRouter(&stubCheckout{}, reader)

	req := httptest.NewRequest(http.MethodGet, "/orders/"+id.String(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/orders/"+uuid.NewString(), nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/orders/not-a-uuid", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrdersHandler_ListOrders(t *testing.T) {
	reader := &stubOrderReader{byCust: map[string][]*domain.Order{
		"cust-1": {{ID: uuid.New()}, {ID: uuid.New()}},
	}}
	r := newOrdersTestRouter(&stubCheckout{}, reader)

	req := httptest.NewRequest(http.MethodGet, "/orders?customer_id=cust-1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []*domain.Order
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Len(t, got, 2)

	// unknown customer gets an empty list, not null
	req = httptest.NewRequest(http.MethodGet, "/orders?customer_id=nobody", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
