package messaging

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
)

// Group is a named audience for broadcast messages
type Group struct {
	shared.BaseEntity
	Title string
}

// NewGroup creates a group
func NewGroup(title string) (*Group, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Group title cannot be empty")
	}
	return &Group{BaseEntity: shared.NewBaseEntity(), Title: title}, nil
}

// GroupUser is a membership of a user in a group
type GroupUser struct {
	ID        uuid.UUID
	GroupID   uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
}

// GroupMessage is broadcast to every member of a group
type GroupMessage struct {
	shared.BaseAggregateRoot
	GroupID  uuid.UUID
	Title    string
	Content  string
	Channels Channels
}

// NewGroupMessage creates a broadcast and raises GroupMessageCreated
func NewGroupMessage(groupID uuid.UUID, title, content string, channels Channels) (*GroupMessage, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Message title cannot be empty")
	}
	if len([]rune(title)) > MaxTitleLength {
		return nil, shared.NewDomainError("INVALID_TITLE", "Message title cannot exceed 50 characters")
	}
	m := &GroupMessage{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		GroupID:           groupID,
		Title:             title,
		Content:           content,
		Channels:          channels,
	}
	m.AddDomainEvent(NewGroupMessageCreatedEvent(m))
	return m, nil
}

// FanOut creates one user message per member
func (m *GroupMessage) FanOut(memberIDs []uuid.UUID) []UserMessage {
	messages := make([]UserMessage, 0, len(memberIDs))
	for _, userID := range memberIDs {
		msg, err := NewUserMessage(userID, m.Channels, m.Title, m.Content, EventAnnouncement, "")
		if err != nil {
			continue
		}
		messages = append(messages, *msg)
	}
	return messages
}
