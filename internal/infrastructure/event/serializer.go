package event

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/shop/backend/internal/domain/messaging"
	"github.com/shop/backend/internal/domain/order"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/wallet"
)

// EventSerializer turns domain events into outbox payloads and back
type EventSerializer struct {
	mu       sync.RWMutex
	registry map[string]reflect.Type
}

// NewEventSerializer creates a serializer with no registered types
func NewEventSerializer() *EventSerializer {
	return &EventSerializer{registry: make(map[string]reflect.Type)}
}

// NewShopEventSerializer creates a serializer that knows every event the shop raises
func NewShopEventSerializer() *EventSerializer {
	s := NewEventSerializer()
	RegisterShopEvents(s)
	return s
}

// RegisterShopEvents registers the event types written to the outbox
func RegisterShopEvents(s *EventSerializer) {
	s.Register(order.EventTypeOrderPlaced, &order.OrderPlacedEvent{})
	s.Register(order.EventTypeOrderStatusChanged, &order.OrderStatusChangedEvent{})
	s.Register(wallet.EventTypeTransferCompleted, &wallet.TransferCompletedEvent{})
	s.Register(messaging.EventTypeGroupMessageCreated, &messaging.GroupMessageCreatedEvent{})
}

// Register binds eventType to the concrete type of eventInstance
func (s *EventSerializer) Register(eventType string, eventInstance shared.DomainEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := reflect.TypeOf(eventInstance)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	s.registry[eventType] = t
}

// Serialize encodes an event as JSON; the type must be registered
func (s *EventSerializer) Serialize(event shared.DomainEvent) ([]byte, error) {
	if !s.IsRegistered(event.EventType()) {
		return nil, fmt.Errorf("unknown event type: %s", event.EventType())
	}
	return json.Marshal(event)
}

// Deserialize decodes a payload into a new instance of the registered type
func (s *EventSerializer) Deserialize(eventType string, data []byte) (shared.DomainEvent, error) {
	s.mu.RLock()
	t, ok := s.registry[eventType]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}

	eventPtr := reflect.New(t).Interface()
	if err := json.Unmarshal(data, eventPtr); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	event, ok := eventPtr.(shared.DomainEvent)
	if !ok {
		return nil, fmt.Errorf("%s does not implement DomainEvent", t)
	}
	return event, nil
}

// IsRegistered checks if an event type is registered
func (s *EventSerializer) IsRegistered(eventType string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.registry[eventType]
	return ok
}

// RegisteredTypes returns the registered event types in lexical order
func (s *EventSerializer) RegisteredTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	types := make([]string, 0, len(s.registry))
	for t := range s.registry {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
