package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order is the persisted record created from a finalized cart snapshot.
type Order struct {
	ID             uuid.UUID   `json:"id"`
	IdempotencyKey string      `json:"idempotency_key"`
	SessionID      string      `json:"session_id"`
	CustomerID     string      `json:"customer_id"`
	Address        string      `json:"address"`
	Phone          string      `json:"phone"`
	Pincode        string      `json:"pincode"`
	Items          []CartItem  `json:"items"`
	Subtotal       float64     `json:"subtotal"`
	DeliveryFee    float64     `json:"delivery_fee"`
	CuttingFee     float64     `json:"cutting_fee"`
	Tax            float64     `json:"tax"`
	Total          float64     `json:"total"`
	Status         OrderStatus `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}
