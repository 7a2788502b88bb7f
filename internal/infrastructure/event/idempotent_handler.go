package event

import (
	"context"
	"time"

	"github.com/shop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Delivery outcomes reported by IdempotentHandler
const (
	OutcomeHandled   = "handled"
	OutcomeDuplicate = "duplicate"
	OutcomeFailed    = "failed"
)

// HandledRecorder receives one outcome per delivery
type HandledRecorder interface {
	RecordEventHandled(ctx context.Context, handler, eventType, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RecordEventHandled(context.Context, string, string, string) {}

// Dedup controls duplicate suppression. A zero TTL disables it.
type Dedup struct {
	TTL time.Duration
}

// DefaultDedup remembers handled event ids for a day
func DefaultDedup() Dedup {
	return Dedup{TTL: 24 * time.Hour}
}

// IdempotentHandler runs the wrapped handler at most once per event id.
// A failed run releases its key so the relay's next attempt is not skipped.
type IdempotentHandler struct {
	name     string
	next     shared.EventHandler
	store    shared.IdempotencyStore
	dedup    Dedup
	recorder HandledRecorder
	logger   *zap.Logger
}

type IdempotentOption func(*IdempotentHandler)

func WithDedup(d Dedup) IdempotentOption {
	return func(h *IdempotentHandler) { h.dedup = d }
}

func WithRecorder(r HandledRecorder) IdempotentOption {
	return func(h *IdempotentHandler) {
		if r != nil {
			h.recorder = r
		}
	}
}

// NewIdempotentHandler wraps next. name scopes the stored keys, so two
// handlers of the same event keep separate records.
func NewIdempotentHandler(name string, next shared.EventHandler, store shared.IdempotencyStore, logger *zap.Logger, opts ...IdempotentOption) *IdempotentHandler {
	h := &IdempotentHandler{
		name:     name,
		next:     next,
		store:    store,
		dedup:    DefaultDedup(),
		recorder: nopRecorder{},
		logger:   logger.With(zap.String("handler", name)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *IdempotentHandler) EventTypes() []string {
	return h.next.EventTypes()
}

func (h *IdempotentHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.dedup.TTL <= 0 {
		return h.run(ctx, event, "")
	}

	key := "event:" + h.name + ":" + event.EventID().String()
	fresh, err := h.store.MarkProcessed(ctx, key, h.dedup.TTL)
	switch {
	case err != nil:
		// fail open
		h.logger.Warn("Idempotency check failed, handling anyway",
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
		key = ""
	case !fresh:
		h.logger.Debug("Duplicate event skipped",
			zap.String("event_type", event.EventType()),
			zap.String("event_id", event.EventID().String()),
		)
		h.recorder.RecordEventHandled(ctx, h.name, event.EventType(), OutcomeDuplicate)
		return nil
	}
	return h.run(ctx, event, key)
}

// run delivers the event and releases key when the delivery fails
func (h *IdempotentHandler) run(ctx context.Context, event shared.DomainEvent, key string) error {
	if err := h.next.Handle(ctx, event); err != nil {
		h.recorder.RecordEventHandled(ctx, h.name, event.EventType(), OutcomeFailed)
		if key != "" {
			if rerr := h.store.Release(ctx, key); rerr != nil {
				h.logger.Warn("Failed to release idempotency key", zap.String("key", key), zap.Error(rerr))
			}
		}
		return err
	}
	h.recorder.RecordEventHandled(ctx, h.name, event.EventType(), OutcomeHandled)
	return nil
}

var _ shared.EventHandler = (*IdempotentHandler)(nil)
