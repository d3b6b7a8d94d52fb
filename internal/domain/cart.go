package domain

import "encoding/json"

// Customization holds the cutting/size options chosen for a product.
// Two customizations are equal iff their canonical forms are byte-equal.
type Customization map[string]string

// Canonical returns a deterministic serialized form of the customization.
// encoding/json marshals map keys in sorted order, so the result does not
// depend on insertion order.
func (c Customization) Canonical() string {
	if len(c) == 0 {
		return "{}"
	}
	b, err := json.Marshal(c)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// ItemPricing is the per-unit price breakdown captured when the product
// was added to the cart. Total is the price for one unit before the
// cutting fee; DeliveryFee is a flat per-line fee.
type ItemPricing struct {
	Total       float64 `json:"total"`
	DeliveryFee float64 `json:"deliveryFee"`
	CuttingFee  float64 `json:"cuttingFee"`
}

// CartItem is one line entry of a cart. JSON tags match the persisted
// cart record layout.
type CartItem struct {
	ID            string        `json:"id"`
	Name          string        `json:"name,omitempty"`
	Customization Customization `json:"customization,omitempty"`
	Quantity      int           `json:"quantity"`
	Pricing       ItemPricing   `json:"pricing"`
}

// Key identifies a cart line: same product with the same customization
// merges into one entry, same product with a different customization
// stays a separate entry.
func (i CartItem) Key() string {
	return i.ID + "\x00" + i.Customization.Canonical()
}

// Valid reports whether a decoded item is structurally usable.
func (i CartItem) Valid() bool {
	return i.ID != "" && i.Quantity >= 1
}
