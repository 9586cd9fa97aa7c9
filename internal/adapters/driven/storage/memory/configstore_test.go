package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("provider.api_key", "key"))
	require.NoError(t, store.Set("provider.api_key", "updated"))

	val, ok := store.Get("provider.api_key")
	assert.True(t, ok)
	assert.Equal(t, "updated", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("s", "text")
	_ = store.Set("i", 3)
	_ = store.Set("i64", int64(4))
	_ = store.Set("f", 2.5)
	_ = store.Set("b", true)

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "text", store.GetString("s"))
		assert.Empty(t, store.GetString("i"))
		assert.Empty(t, store.GetString("missing"))
	})

	t.Run("int", func(t *testing.T) {
		assert.Equal(t, 3, store.GetInt("i"))
		assert.Equal(t, 4, store.GetInt("i64"))
		assert.Equal(t, 2, store.GetInt("f"))
		assert.Zero(t, store.GetInt("s"))
	})

	t.Run("float", func(t *testing.T) {
		assert.InDelta(t, 2.5, store.GetFloat("f"), 0)
		assert.InDelta(t, 3.0, store.GetFloat("i"), 0)
		assert.InDelta(t, 4.0, store.GetFloat("i64"), 0)
		assert.Zero(t, store.GetFloat("s"))
		assert.Zero(t, store.GetFloat("missing"))
	})

	t.Run("bool", func(t *testing.T) {
		assert.True(t, store.GetBool("b"))
		assert.False(t, store.GetBool("s"))
		assert.False(t, store.GetBool("missing"))
	})
}

func TestConfigStore_SaveLoadPath(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("k", "v")

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, "v", store.GetString("k"))
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("counter", i)
		}()
		go func() {
			defer wg.Done()
			_ = store.GetInt("counter")
		}()
	}
	wg.Wait()

	_, ok := store.Get("counter")
	assert.True(t, ok)
}
