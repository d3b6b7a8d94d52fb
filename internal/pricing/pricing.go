// Package pricing derives the cart summary from a list of cart items.
// Everything here is a pure function: no state, no I/O.
package pricing

import "github.com/Sunnyraj65/Delishly/internal/domain"

// TaxRate is the fixed tax applied to the item subtotal.
const TaxRate = 0.05

// Summary is the derived pricing view of a cart. It is computed on demand
// and never persisted.
type Summary struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	CuttingFee  float64 `json:"cuttingFee"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
	ItemCount   int     `json:"itemCount"`
}

// Calculate computes the summary for the given items.
// The delivery fee is flat per line and not scaled by quantity.
// The cutting fee is reported separately and is not part of Total.
func Calculate(items []domain.CartItem) Summary {
	var s Summary
	for _, item := range items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		s.Subtotal += item.Pricing.Total * float64(qty)
		s.DeliveryFee += item.Pricing.DeliveryFee
		s.CuttingFee += item.Pricing.CuttingFee * float64(qty)
		s.ItemCount += qty
	}
	s.Tax = s.Subtotal * TaxRate
	s.Total = s.Subtotal + s.DeliveryFee + s.Tax
	return s
}
