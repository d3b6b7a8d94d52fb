package cart

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sunnyraj65/Delishly/internal/store"
)

func TestManager_GetReturnsSameEngine(t *testing.T) {
	m := NewManager(store.NewMemoryStore(), zerolog.Nop(), time.Hour)
	defer m.Close()
	ctx := context.Background()

	a := m.Get(ctx, "sess-1")
	b := m.Get(ctx, "sess-1")
	other := m.Get(ctx, "sess-2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, other)
}

func TestManager_ConcurrentGetHydratesOnce(t *testing.T) {
	m := NewManager(store.NewMemoryStore(), zerolog.Nop(), time.Hour)
	defer m.Close()
	ctx := context.Background()

	const n = 16
	engines := make([]*Engine, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			engines[i] = m.Get(ctx, "sess-1")
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		assert.Same(t, engines[0], engines[i])
	}
}

func TestManager_EvictionPreservesCartInStore(t *testing.T) {
	cs := store.NewMemoryStore()
	m := NewManager(cs, zerolog.Nop(), 20*time.Millisecond)
	defer m.Close()
	ctx := context.Background()

	first := m.Get(ctx, "sess-1")
	first.AddItem(kgPomfret(), 2)

	time.Sleep(30 * time.Millisecond)
	m.evictIdle()

	second := m.Get(ctx, "sess-1")
	require.NotSame(t, first, second)

	items := second.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestManager_EvictionSkipsActiveSessions(t *testing.T) {
	m := NewManager(store.NewMemoryStore(), zerolog.Nop(), time.Hour)
	defer m.Close()
	ctx := context.Background()

	a := m.Get(ctx, "sess-1")
	m.evictIdle()

	assert.Same(t, a, m.Get(ctx, "sess-1"))
}

func TestManager_CloseFlushesPendingSaves(t *testing.T) {
	cs := store.NewMemoryStore()
	m := NewManager(cs, zerolog.Nop(), time.Hour)
	ctx := context.Background()

	m.Get(ctx, "sess-1").AddItem(kgPomfret(), 1)
	m.Close()

	payload, err := cs.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Contains(t, string(payload), "pomfret-1kg")
}

func TestManager_GetAfterCloseStillWorks(t *testing.T) {
	m := NewManager(store.NewMemoryStore(), zerolog.Nop(), time.Hour)
	m.Close()

	e := m.Get(context.Background(), "sess-1")
	require.NotNil(t, e)
	assert.Empty(t, e.Items())
}
