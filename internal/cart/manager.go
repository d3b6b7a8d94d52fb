package cart

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/Sunnyraj65/Delishly/internal/store"
)

// Manager hands out one Engine per device session. Engines are hydrated
// lazily on first use; singleflight makes sure concurrent requests for a
// fresh session hydrate only once.
type Manager struct {
	store     store.CartStore
	log       zerolog.Logger
	idleAfter time.Duration

	mu      sync.Mutex
	engines map[string]*entry
	sfg     singleflight.Group
	closed  bool
}

type entry struct {
	engine   *Engine
	lastSeen time.Time
}

func NewManager(cs store.CartStore, log zerolog.Logger, idleAfter time.Duration) *Manager {
	return &Manager{
		store:     cs,
		log:       log,
		idleAfter: idleAfter,
		engines:   make(map[string]*entry),
	}
}

// Get returns the engine for the session, constructing and hydrating it
// on first use.
func (m *Manager) Get(ctx context.Context, session string) *Engine {
	m.mu.Lock()
	if ent, ok := m.engines[session]; ok {
		ent.lastSeen = time.Now()
		m.mu.Unlock()
		return ent.engine
	}
	m.mu.Unlock()

	v, _, _ := m.sfg.Do(session, func() (interface{}, error) {
		engine := NewEngine(ctx, session, m.store, m.log)
		m.mu.Lock()
		if m.closed {
			m.mu.Unlock()
			engine.Close()
			return engine, nil
		}
		m.engines[session] = &entry{engine: engine, lastSeen: time.Now()}
		m.mu.Unlock()
		return engine, nil
	})
	return v.(*Engine)
}

// Run sweeps idle sessions until the context is cancelled. An evicted
// engine is closed; its cart survives in the store and rehydrates on the
// session's next request.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.idleAfter / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.evictIdle()
		case <-ctx.Done():
			return
		}
	}
}

func (m *Manager) evictIdle() {
	cutoff := time.Now().Add(-m.idleAfter)

	m.mu.Lock()
	var evicted []*Engine
	for session, ent := range m.engines {
		if ent.lastSeen.Before(cutoff) {
			evicted = append(evicted, ent.engine)
			delete(m.engines, session)
		}
	}
	m.mu.Unlock()

	for _, engine := range evicted {
		engine.Close()
	}
	if len(evicted) > 0 {
		m.log.Debug().Int("count", len(evicted)).Msg("evicted idle cart sessions")
	}
}

// Close shuts down every engine, flushing their pending saves.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	engines := make([]*Engine, 0, len(m.engines))
	for _, ent := range m.engines {
		engines = append(engines, ent.engine)
	}
	m.engines = make(map[string]*entry)
	m.mu.Unlock()

	for _, engine := range engines {
		engine.Close()
	}
}
