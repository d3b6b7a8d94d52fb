package domain

import "time"

type Category struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type Product struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Name         string    `bson:"name" json:"name"`
	CategoryID   string    `bson:"category_id" json:"category_id"`
	TargetWeight float64   `bson:"target_weight" json:"target_weight"`
	ActualWeight float64   `bson:"actual_weight" json:"actual_weight"`
	PricePerKg   float64   `bson:"price_per_kg" json:"price_per_kg"`
	TotalPrice   float64   `bson:"total_price" json:"total_price"`
	Images       []string  `bson:"images" json:"images"`
	Grade        string    `bson:"grade" json:"grade"`
	Farm         string    `bson:"farm" json:"farm"`
	Status       string    `bson:"status" json:"status"`
	StockCount   int       `bson:"stock_count" json:"stock_count"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
