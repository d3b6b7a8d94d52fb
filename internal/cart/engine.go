package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sunnyraj65/Delishly/internal/domain"
	"github.com/Sunnyraj65/Delishly/internal/pricing"
	"github.com/Sunnyraj65/Delishly/internal/store"
)

// saveTimeout bounds every persistence operation; a timeout counts as a
// save failure and is swallowed like any other store error.
const saveTimeout = 2 * time.Second

// Engine owns the cart of one device session. The in-memory item list is
// authoritative for the session; the store is a durability aid. All
// mutations are serialized behind a mutex, persistence runs on a single
// writer goroutine so saves reach the store in mutation order.
type Engine struct {
	session string
	store   store.CartStore
	log     zerolog.Logger

	mu    sync.Mutex
	items []domain.CartItem
	ready bool

	// saves carries at most one pending op: a newer snapshot replaces an
	// unconsumed older one, which keeps ordering trivially correct since
	// every op is a full-state snapshot.
	saves chan persistOp
	done  chan struct{}
}

type persistOp struct {
	payload []byte
	clear   bool
}

// NewEngine creates an engine for the session and hydrates it from the
// store. Hydration never fails hard: unreadable or malformed records
// degrade to an empty cart, and a malformed record is cleared so it is
// not decoded again next time.
func NewEngine(ctx context.Context, session string, cs store.CartStore, log zerolog.Logger) *Engine {
	e := &Engine{
		session: session,
		store:   cs,
		log:     log.With().Str("session", session).Logger(),
		saves:   make(chan persistOp, 1),
		done:    make(chan struct{}),
	}
	e.initialize(ctx)
	go e.writeLoop()
	return e
}

func (e *Engine) initialize(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	payload, err := e.store.Load(ctx, e.session)
	switch {
	case err == nil:
		items, ok := decodeItems(payload)
		if !ok {
			e.log.Warn().Msg("discarding malformed cart record")
			if errClear := e.store.Clear(ctx, e.session); errClear != nil {
				e.log.Warn().Err(errClear).Msg("failed to clear malformed cart record")
			}
		}
		e.items = items
	case errors.Is(err, store.ErrNoSavedCart):
		// no saved cart, start empty
	default:
		e.log.Warn().Err(err).Msg("cart load failed, starting empty")
	}
	e.ready = true
}

// decodeItems validates the persisted payload: it must be a sequence of
// items that each carry an id and a quantity of at least 1. Anything else
// means the record is malformed.
func decodeItems(payload []byte) ([]domain.CartItem, bool) {
	var items []domain.CartItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, false
	}
	for _, item := range items {
		if !item.Valid() {
			return nil, false
		}
	}
	return items, true
}

// AddItem merges the item into an existing entry with the same product id
// and customization, or appends a new entry. Quantities below 1 fall back
// to the default of 1.
func (e *Engine) AddItem(item domain.CartItem, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	key := item.Key()
	for i := range e.items {
		if e.items[i].Key() == key {
			e.items[i].Quantity += quantity
			e.persistLocked()
			return
		}
	}

	item.Quantity = quantity
	e.items = append(e.items, item)
	e.persistLocked()
}

// UpdateQuantity sets the quantity of the first entry whose product id
// matches. A quantity below 1 is rejected as a no-op, as is an unknown id.
// When the same product sits in the cart with two customizations, the
// earliest-added entry wins the match.
func (e *Engine) UpdateQuantity(itemID string, quantity int) {
	if quantity < 1 {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.items {
		if e.items[i].ID == itemID {
			e.items[i].Quantity = quantity
			e.persistLocked()
			return
		}
	}
}

// RemoveItem deletes every entry with the given product id. Removing an
// id that is not in the cart is a no-op, so UI retries are safe.
func (e *Engine) RemoveItem(itemID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	kept := e.items[:0]
	for _, item := range e.items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(e.items) {
		return
	}
	e.items = kept
	e.persistLocked()
}

// Clear empties the cart and removes the persisted record.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.items) == 0 {
		return
	}
	e.items = nil
	e.persistLocked()
}

// Items returns a copy of the current cart sequence.
func (e *Engine) Items() []domain.CartItem {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]domain.CartItem, len(e.items))
	copy(out, e.items)
	return out
}

// Summary computes the derived pricing view of the current cart.
func (e *Engine) Summary() pricing.Summary {
	return pricing.Calculate(e.Items())
}

// Close stops the persistence writer after it drains any pending op.
// Callers must not mutate the engine after Close.
func (e *Engine) Close() {
	close(e.saves)
	<-e.done
}

// persistLocked enqueues the current state for the writer goroutine.
// Caller must hold e.mu. An empty cart clears the record instead of
// storing an empty sequence.
func (e *Engine) persistLocked() {
	if !e.ready {
		return
	}

	var op persistOp
	if len(e.items) == 0 {
		op = persistOp{clear: true}
	} else {
		payload, err := json.Marshal(e.items)
		if err != nil {
			e.log.Error().Err(err).Msg("failed to marshal cart")
			return
		}
		op = persistOp{payload: payload}
	}

	// Replace a pending op rather than queue behind it: the snapshot is
	// full-state, so only the latest one matters. Producers are serialized
	// by e.mu and the writer only consumes, so the send cannot block.
	select {
	case e.saves <- op:
	default:
		select {
		case <-e.saves:
		default:
		}
		e.saves <- op
	}
}

func (e *Engine) writeLoop() {
	defer close(e.done)
	for op := range e.saves {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		var err error
		if op.clear {
			err = e.store.Clear(ctx, e.session)
		} else {
			err = e.store.Save(ctx, e.session, op.payload)
		}
		cancel()
		if err != nil {
			e.log.Warn().Err(err).Msg("cart persistence failed")
		}
	}
}
