package shared

import (
	"context"
	"errors"
	"testing"
	"time"

	domainshared "github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunOnce(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	calls := 0
	fn := func() error { calls++; return nil }

	require.NoError(t, RunOnce(ctx, store, "order:k1", time.Minute, fn))
	assert.ErrorIs(t, RunOnce(ctx, store, "order:k1", time.Minute, fn), domainshared.ErrDuplicateRequest)
	assert.Equal(t, 1, calls)

	require.NoError(t, RunOnce(ctx, store, "", time.Minute, fn))
	require.NoError(t, RunOnce(ctx, nil, "order:k1", time.Minute, fn))
	assert.Equal(t, 3, calls)
}

func TestRunOnce_FailureReleasesKey(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()
	boom := errors.New("boom")

	assert.ErrorIs(t, RunOnce(ctx, store, "k", time.Minute, func() error { return boom }), boom)
	assert.NoError(t, RunOnce(ctx, store, "k", time.Minute, func() error { return nil }))
}
