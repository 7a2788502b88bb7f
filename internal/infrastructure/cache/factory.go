package cache

import (
	"context"
	"fmt"

	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// StoreOption configures NewIdempotencyStore
type StoreOption func(*storeOptions)

type storeOptions struct {
	logger        *zap.Logger
	allowFallback bool
}

// WithLogger sets the logger used to report the chosen backend
func WithLogger(logger *zap.Logger) StoreOption {
	return func(o *storeOptions) {
		o.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable redis falls back to
// the in-memory store. Fallback is allowed by default.
func WithInMemoryFallback(allow bool) StoreOption {
	return func(o *storeOptions) {
		o.allowFallback = allow
	}
}

// NewIdempotencyStore returns a redis store when redis is enabled and an
// in-memory store otherwise
func NewIdempotencyStore(ctx context.Context, cfg config.RedisConfig, opts ...StoreOption) (shared.IdempotencyStore, error) {
	o := storeOptions{logger: zap.NewNop(), allowFallback: true}
	for _, opt := range opts {
		opt(&o)
	}

	if !cfg.Enabled {
		o.logger.Info("using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(), nil
	}

	store, err := NewRedisIdempotencyStore(ctx, cfg)
	if err == nil {
		o.logger.Info("using redis idempotency store", zap.String("addr", cfg.Addr()))
		return store, nil
	}
	if !o.allowFallback {
		return nil, fmt.Errorf("redis required for idempotency but unavailable: %w", err)
	}

	o.logger.Warn("redis unavailable, falling back to in-memory idempotency store",
		zap.Error(err),
	)
	return NewInMemoryIdempotencyStore(), nil
}
