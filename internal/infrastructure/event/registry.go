package event

import (
	"slices"
	"sync"

	"github.com/shop/backend/internal/domain/shared"
)

// subscription binds a handler to one event type; an empty type matches all
type subscription struct {
	eventType string
	handler   shared.EventHandler
}

// HandlerRegistry keeps subscriptions in registration order
type HandlerRegistry struct {
	mu   sync.RWMutex
	subs []subscription
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{}
}

// Add subscribes handler to eventTypes, or to every event when none is
// given. Repeated subscriptions are ignored.
func (r *HandlerRegistry) Add(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = []string{""}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range eventTypes {
		s := subscription{eventType: t, handler: handler}
		if !slices.Contains(r.subs, s) {
			r.subs = append(r.subs, s)
		}
	}
}

// Remove drops every subscription of handler
func (r *HandlerRegistry) Remove(handler shared.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = slices.DeleteFunc(r.subs, func(s subscription) bool { return s.handler == handler })
}

// For returns the handlers of eventType; typed subscribers come before
// catch-all ones.
func (r *HandlerRegistry) For(eventType string) []shared.EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var typed, all []shared.EventHandler
	for _, s := range r.subs {
		switch s.eventType {
		case eventType:
			typed = append(typed, s.handler)
		case "":
			all = append(all, s.handler)
		}
	}
	return append(typed, all...)
}

// Count returns the number of distinct handlers
func (r *HandlerRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[shared.EventHandler]struct{}, len(r.subs))
	for _, s := range r.subs {
		seen[s.handler] = struct{}{}
	}
	return len(seen)
}
