package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_LoadMissing(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNoSavedCart)
}

func TestMemoryStore_SaveLoadClear(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "sess", []byte(`[{"id":"p1"}]`)))

	got, err := s.Load(ctx, "sess")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"p1"}]`), got)

	require.NoError(t, s.Clear(ctx, "sess"))
	_, err = s.Load(ctx, "sess")
	assert.ErrorIs(t, err, ErrNoSavedCart)
}

func TestMemoryStore_ClearMissingIsNoop(t *testing.T) {
	s := NewMemoryStore()
	assert.NoError(t, s.Clear(context.Background(), "nope"))
}

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "sess", []byte("abc")))

	got, err := s.Load(ctx, "sess")
	require.NoError(t, err)
	got[0] = 'z'

	again, err := s.Load(ctx, "sess")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}
