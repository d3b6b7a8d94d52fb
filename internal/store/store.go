package store

import (
	"context"
	"errors"
)

// CartStore persists one serialized cart record per session key.
// Absence of the key is a valid state and means "empty cart".
// Consumers define this interface, not the Redis implementation.
type CartStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
	Clear(ctx context.Context, key string) error
}

var ErrNoSavedCart = errors.New("no saved cart")
