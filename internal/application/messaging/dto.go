package messaging

import (
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/messaging"
	"github.com/shop/backend/internal/domain/shared"
)

// SendMessageRequest addresses a message to one user
type SendMessageRequest struct {
	UserID    uuid.UUID `json:"user_id" binding:"required"`
	SendTypes []int     `json:"send_types" binding:"required,min=1,dive,min=1,max=4"`
	Subject   string    `json:"subject" binding:"required,max=50"`
	Message   string    `json:"message" binding:"max=5000"`
	EventType int       `json:"event_type"`
	EventData string    `json:"event_data"`
}

// CreateGroupRequest creates a broadcast audience
type CreateGroupRequest struct {
	Title string `json:"title" binding:"required,max=100"`
}

// AddMemberRequest adds a user to a group
type AddMemberRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

// GroupMessageRequest broadcasts a message to a group
type GroupMessageRequest struct {
	Title     string `json:"title" binding:"required,max=50"`
	Content   string `json:"content" binding:"max=5000"`
	SendTypes []int  `json:"send_types" binding:"required,min=1,dive,min=1,max=4"`
}

// SyncDeviceRequest registers a push token
type SyncDeviceRequest struct {
	Token uuid.UUID `json:"token" binding:"required"`
}

// MessageResponse is a user message
type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsSeen    bool      `json:"is_seen"`
	EventType int       `json:"event_type"`
	EventData string    `json:"event_data"`
	CreatedAt time.Time `json:"created_at"`
}

// InboxResponse is a page of in-app messages with the unseen counter
type InboxResponse struct {
	shared.Paginated[MessageResponse]
	UnseenCount int64 `json:"unseen_count"`
}

// SeenResponse acknowledges a read message
type SeenResponse struct {
	IsSeen bool `json:"is_seen"`
}

// GroupResponse is a broadcast audience
type GroupResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// GroupMessageResponse is a stored broadcast
type GroupMessageResponse struct {
	ID      uuid.UUID `json:"id"`
	GroupID uuid.UUID `json:"group_id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
}

// DeviceResponse is a registered push target
type DeviceResponse struct {
	ID    uuid.UUID `json:"id"`
	Token uuid.UUID `json:"token"`
}

// ToMessageResponse converts a user message
func ToMessageResponse(m *messaging.UserMessage) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		IsSeen:    m.IsSeen,
		EventType: int(m.EventType),
		EventData: m.EventData,
		CreatedAt: m.CreatedAt,
	}
}

func sendTypes(values []int) []messaging.SendType {
	types := make([]messaging.SendType, len(values))
	for i, v := range values {
		types[i] = messaging.SendType(v)
	}
	return types
}
