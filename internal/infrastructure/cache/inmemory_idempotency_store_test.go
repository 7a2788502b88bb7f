package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shop/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newClockedStore returns a store whose clock the test advances by hand
func newClockedStore(t *testing.T) (*InMemoryIdempotencyStore, *time.Time) {
	t.Helper()
	store := NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	return store, &now
}

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	ctx := context.Background()

	t.Run("first mark wins", func(t *testing.T) {
		store, _ := newClockedStore(t)

		isNew, err := store.MarkProcessed(ctx, "order:u1:k1", time.Hour)
		require.NoError(t, err)
		assert.True(t, isNew)

		isNew, err = store.MarkProcessed(ctx, "order:u1:k1", time.Hour)
		require.NoError(t, err)
		assert.False(t, isNew)
	})

	t.Run("expired key can be marked again", func(t *testing.T) {
		store, now := newClockedStore(t)

		_, err := store.MarkProcessed(ctx, "k", time.Minute)
		require.NoError(t, err)

		*now = now.Add(time.Minute)
		isNew, err := store.MarkProcessed(ctx, "k", time.Minute)
		require.NoError(t, err)
		assert.True(t, isNew)
	})
}

func TestInMemoryIdempotencyStore_IsProcessed(t *testing.T) {
	ctx := context.Background()
	store, now := newClockedStore(t)

	processed, err := store.IsProcessed(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, processed)

	_, err = store.MarkProcessed(ctx, "k", time.Minute)
	require.NoError(t, err)
	processed, err = store.IsProcessed(ctx, "k")
	require.NoError(t, err)
	assert.True(t, processed)

	*now = now.Add(2 * time.Minute)
	processed, err = store.IsProcessed(ctx, "k")
	require.NoError(t, err)
	assert.False(t, processed)
}

func TestInMemoryIdempotencyStore_Release(t *testing.T) {
	ctx := context.Background()
	store, _ := newClockedStore(t)

	_, err := store.MarkProcessed(ctx, "k", time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.Release(ctx, "k"))

	isNew, err := store.MarkProcessed(ctx, "k", time.Hour)
	require.NoError(t, err)
	assert.True(t, isNew)

	assert.NoError(t, store.Release(ctx, "never-marked"))
}

func TestInMemoryIdempotencyStore_Cleanup(t *testing.T) {
	ctx := context.Background()
	store, now := newClockedStore(t)

	_, _ = store.MarkProcessed(ctx, "short-1", time.Second)
	_, _ = store.MarkProcessed(ctx, "short-2", time.Second)
	_, _ = store.MarkProcessed(ctx, "long", time.Hour)
	assert.Equal(t, 3, store.Size())

	*now = now.Add(time.Minute)
	store.cleanup()

	assert.Equal(t, 1, store.Size())
	processed, err := store.IsProcessed(ctx, "long")
	require.NoError(t, err)
	assert.True(t, processed)
}

func TestInMemoryIdempotencyStore_ConcurrentAccess(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()
	const workers = 100

	var wg sync.WaitGroup
	results := make(chan bool, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			isNew, err := store.MarkProcessed(ctx, "same-key", time.Hour)
			results <- err == nil && isNew
		}()
	}
	wg.Wait()
	close(results)

	winners := 0
	for won := range results {
		if won {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
}

func TestInMemoryIdempotencyStore_Close(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestNewIdempotencyStore(t *testing.T) {
	ctx := context.Background()

	t.Run("redis disabled uses memory", func(t *testing.T) {
		store, err := NewIdempotencyStore(ctx, config.RedisConfig{Enabled: false})
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	})

	unreachable := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}

	t.Run("unreachable redis falls back", func(t *testing.T) {
		store, err := NewIdempotencyStore(ctx, unreachable)
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	})

	t.Run("unreachable redis without fallback fails", func(t *testing.T) {
		store, err := NewIdempotencyStore(ctx, unreachable, WithInMemoryFallback(false))
		require.Error(t, err)
		assert.Nil(t, store)
		assert.Contains(t, err.Error(), "redis required")
	})
}
