package catalog

import (
	"context"
	"errors"

	"github.com/Sunnyraj65/Delishly/internal/domain"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// ProductFilter narrows a product listing. Zero values mean "no filter".
type ProductFilter struct {
	Status     string
	CategoryID string
	Search     string
}

// Repository defines the catalog data operations.
// Consumers define this interface, not the MongoDB implementation.
type Repository interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]*domain.Category, error)
	CreateCategory(ctx context.Context, c *domain.Category) error
	UpdateCategory(ctx context.Context, c *domain.Category) error
	DeleteCategory(ctx context.Context, id string) error
}
