package event

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ErrBusStopped is returned by Publish once the bus has been stopped
var ErrBusStopped = errors.New("event bus stopped")

// InMemoryEventBus dispatches events to subscribed handlers in process.
// Handlers run synchronously in the publisher's goroutine. A failing or
// panicking handler does not stop the others, and its error is reported back
// to the publisher so the outbox relay can retry the delivery.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger

	mu       sync.Mutex
	stopped  bool
	inflight sync.WaitGroup
}

// NewInMemoryEventBus returns a bus that accepts events right away
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger.Named("event_bus"),
	}
}

// Publish delivers every event to its handlers and joins their errors
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	if !b.enter() {
		return ErrBusStopped
	}
	defer b.inflight.Done()

	var errs []error
	for _, event := range events {
		for _, handler := range b.registry.For(event.EventType()) {
			if err := b.deliver(ctx, handler, event); err != nil {
				b.logger.Error("Event handler failed",
					zap.String("event_type", event.EventType()),
					zap.String("event_id", event.EventID().String()),
					zap.Error(err),
				)
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (b *InMemoryEventBus) enter() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return false
	}
	b.inflight.Add(1)
	return true
}

// Subscribe registers a handler for event types, or for the handler's own
// types when none are given
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Add(handler, eventTypes...)
	b.logger.Debug("Handler subscribed", zap.Strings("event_types", eventTypes))
}

func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Remove(handler)
}

// Start (re)opens the bus for publishing
func (b *InMemoryEventBus) Start(_ context.Context) error {
	b.mu.Lock()
	b.stopped = false
	b.mu.Unlock()
	b.logger.Info("Event bus started", zap.Int("handlers", b.registry.Count()))
	return nil
}

// Stop rejects further events and waits for running deliveries to finish
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.mu.Lock()
	b.stopped = true
	b.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		b.inflight.Wait()
		close(drained)
	}()
	select {
	case <-drained:
		b.logger.Info("Event bus stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("event bus stop: %w", ctx.Err())
	}
}

func (b *InMemoryEventBus) deliver(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Event handler panicked",
				zap.String("event_type", event.EventType()),
				zap.Any("panic", r),
			)
			err = fmt.Errorf("handler panicked on %s: %v", event.EventType(), r)
		}
	}()
	return handler.Handle(ctx, event)
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
