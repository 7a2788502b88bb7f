package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shop/backend/internal/domain/shared"
)

// EventRecorder is an event handler that keeps every event it receives
type EventRecorder struct {
	mu         sync.Mutex
	eventTypes []string
	handled    []shared.DomainEvent
}

// NewEventRecorder subscribes to eventTypes
func NewEventRecorder(eventTypes ...string) *EventRecorder {
	return &EventRecorder{eventTypes: eventTypes}
}

// EventTypes returns the event types the recorder subscribes to
func (r *EventRecorder) EventTypes() []string {
	return r.eventTypes
}

// Handle records the event
func (r *EventRecorder) Handle(_ context.Context, event shared.DomainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handled = append(r.handled, event)
	return nil
}

// Handled returns a copy of the recorded events
func (r *EventRecorder) Handled() []shared.DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]shared.DomainEvent, len(r.handled))
	copy(out, r.handled)
	return out
}

// Of returns the recorded events of one type
func (r *EventRecorder) Of(eventType string) []shared.DomainEvent {
	var out []shared.DomainEvent
	for _, e := range r.Handled() {
		if e.EventType() == eventType {
			out = append(out, e)
		}
	}
	return out
}

// WaitFor blocks until count events of eventType were recorded
func (r *EventRecorder) WaitFor(t *testing.T, eventType string, count int, timeout time.Duration) []shared.DomainEvent {
	t.Helper()
	RequireEventually(t, func() bool {
		return len(r.Of(eventType)) >= count
	}, timeout, "waiting for %d %s events", count, eventType)
	return r.Of(eventType)
}
