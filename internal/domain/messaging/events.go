package messaging

import (
	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
)

// AggregateTypeGroupMessage is the aggregate type of broadcast events
const AggregateTypeGroupMessage = "GroupMessage"

// EventTypeGroupMessageCreated is raised when a broadcast is stored
const EventTypeGroupMessageCreated = "GroupMessageCreated"

// GroupMessageCreatedEvent asks for a broadcast to be fanned out
type GroupMessageCreatedEvent struct {
	shared.BaseDomainEvent
	GroupMessageID uuid.UUID `json:"group_message_id"`
	GroupID        uuid.UUID `json:"group_id"`
}

// NewGroupMessageCreatedEvent creates a new GroupMessageCreatedEvent
func NewGroupMessageCreatedEvent(m *GroupMessage) *GroupMessageCreatedEvent {
	return &GroupMessageCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeGroupMessageCreated, AggregateTypeGroupMessage, m.ID),
		GroupMessageID:  m.ID,
		GroupID:         m.GroupID,
	}
}
