package shared

import "context"

// EventHandler reacts to domain events delivered by the event bus
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes lists the events the handler subscribes to by default.
	// Empty means every event.
	EventTypes() []string
}

// EventPublisher is the delivery side used by the outbox relay
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventBus routes published events to subscribed handlers. Publishing after
// Stop fails so that undelivered outbox entries are retried on the next run.
type EventBus interface {
	EventPublisher
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
	Start(ctx context.Context) error
	// Stop rejects new events and waits for in-flight deliveries until ctx ends
	Stop(ctx context.Context) error
}
