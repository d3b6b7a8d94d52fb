package catalog

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/Sunnyraj65/Delishly/internal/domain"
)

// breakerRepository guards the Mongo-backed repository with a circuit
// breaker so a struggling database sheds load fast instead of piling up
// slow requests.
type breakerRepository struct {
	next Repository
	cb   *gobreaker.CircuitBreaker[any]
}

func NewBreakerRepository(next Repository, log zerolog.Logger) Repository {
	settings := gobreaker.Settings{
		Name: "catalog-mongodb",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// not-found is a normal answer, not a database failure
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrCategoryNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	}
	return &breakerRepository{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[any](settings),
	}
}

func (b *breakerRepository) ListProducts(ctx context.Context, filter ProductFilter) ([]*domain.Product, error) {
	v, err := b.cb.Execute(func() (any, error) {
		return b.next.ListProducts(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Product), nil
}

func (b *breakerRepository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	v, err := b.cb.Execute(func() (any, error) {
		return b.next.GetProduct(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

func (b *breakerRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, b.next.CreateProduct(ctx, p)
	})
	return err
}

func (b *breakerRepository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, b.next.UpdateProduct(ctx, p)
	})
	return err
}

func (b *breakerRepository) DeleteProduct(ctx context.Context, id string) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, b.next.DeleteProduct(ctx, id)
	})
	return err
}

func (b *breakerRepository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	v, err := b.cb.Execute(func() (any, error) {
		return b.next.ListCategories(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Category), nil
}

func (b *breakerRepository) CreateCategory(ctx context.Context, c *domain.Category) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, b.next.CreateCategory(ctx, c)
	})
	return err
}

func (b *breakerRepository) UpdateCategory(ctx context.Context, c *domain.Category) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, b.next.UpdateCategory(ctx, c)
	})
	return err
}

func (b *breakerRepository) DeleteCategory(ctx context.Context, id string) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, b.next.DeleteCategory(ctx, id)
	})
	return err
}
