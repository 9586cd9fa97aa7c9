package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dealwatch/internal/core/domain"
)

func TestStateStore_GetMissing(t *testing.T) {
	store := NewStateStore()

	_, err := store.Get(context.Background(), "keywordCategories")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStateStore_PutGet(t *testing.T) {
	ctx := context.Background()
	store := NewStateStore()

	require.NoError(t, store.Put(ctx, "k", []byte("one")))
	require.NoError(t, store.Put(ctx, "k", []byte("two")))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), got)
}

func TestStateStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewStateStore()

	in := []byte("abc")
	require.NoError(t, store.Put(ctx, "k", in))
	in[0] = 'x'

	out, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), out)

	out[0] = 'y'
	again, _ := store.Get(ctx, "k")
	assert.Equal(t, []byte("abc"), again)
}

func TestStateStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewStateStore()

	assert.ErrorIs(t, store.Put(ctx, "k", []byte("v")), context.Canceled)
	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, store.Close())
}
