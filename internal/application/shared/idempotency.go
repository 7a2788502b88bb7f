package shared

import (
	"context"
	"time"

	domainshared "github.com/shop/backend/internal/domain/shared"
)

// RunOnce runs fn at most once per key within ttl. A duplicate key fails
// with ErrDuplicateRequest; a failed fn releases the key so the client
// can retry. An empty key or a nil store runs fn unguarded, and so does
// an unreachable store.
func RunOnce(ctx context.Context, store domainshared.IdempotencyStore, key string, ttl time.Duration, fn func() error) error {
	if store == nil || key == "" {
		return fn()
	}
	fresh, err := store.MarkProcessed(ctx, key, ttl)
	if err != nil {
		return fn()
	}
	if !fresh {
		return domainshared.ErrDuplicateRequest
	}
	if err := fn(); err != nil {
		_ = store.Release(ctx, key)
		return err
	}
	return nil
}
