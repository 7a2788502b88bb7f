package messaging

import (
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
)

// SendType is a delivery channel of a message
type SendType int

const (
	SendTypeSMS          SendType = 1
	SendTypeEmail        SendType = 2
	SendTypeInApp        SendType = 3
	SendTypeNotification SendType = 4
)

// EventType tells the client where a message should lead when opened
type EventType int

const (
	EventNotDefined         EventType = 0
	EventOrderPlaced        EventType = 1
	EventOrderStatusChanged EventType = 2
	EventWalletTransfer     EventType = 3
	EventAnnouncement       EventType = 4
)

var knownEvents = map[EventType]struct{}{
	EventNotDefined:         {},
	EventOrderPlaced:        {},
	EventOrderStatusChanged: {},
	EventWalletTransfer:     {},
	EventAnnouncement:       {},
}

// Normalize maps unknown event types to EventNotDefined
func (e EventType) Normalize() EventType {
	if _, ok := knownEvents[e]; ok {
		return e
	}
	return EventNotDefined
}

const (
	// MaxTitleLength bounds a user message title
	MaxTitleLength = 50
	// MaxPushTitleLength bounds the title sent to a push provider
	MaxPushTitleLength = 100
	// MaxPushBodyLength bounds the body sent to a push provider
	MaxPushBodyLength = 200
)

// UserMessage is a message addressed to one user
type UserMessage struct {
	shared.BaseEntity
	UserID           uuid.UUID
	Title            string
	Content          string
	SendInApp        bool
	SendNotification bool
	SendEmail        bool
	SendSMS          bool
	IsSeen           bool
	EventType        EventType
	// EventData is a JSON object text
	EventData string
}

// Channels is the set of delivery channels of a message
type Channels struct {
	InApp        bool
	Notification bool
	Email        bool
	SMS          bool
}

// ChannelsOf folds send types into a channel set
func ChannelsOf(types ...SendType) Channels {
	var c Channels
	for _, t := range types {
		switch t {
		case SendTypeSMS:
			c.SMS = true
		case SendTypeEmail:
			c.Email = true
		case SendTypeInApp:
			c.InApp = true
		case SendTypeNotification:
			c.Notification = true
		}
	}
	return c
}

// NewUserMessage creates an unseen message.
// Unknown event types become EventNotDefined and empty or invalid event data becomes "{}".
func NewUserMessage(userID uuid.UUID, channels Channels, subject, content string, eventType EventType, eventData string) (*UserMessage, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Message title cannot be empty")
	}
	if utf8.RuneCountInString(subject) > MaxTitleLength {
		return nil, shared.NewDomainError("INVALID_TITLE", "Message title cannot exceed 50 characters")
	}
	if strings.TrimSpace(eventData) == "" || !json.Valid([]byte(eventData)) {
		eventData = "{}"
	}
	return &UserMessage{
		BaseEntity:       shared.NewBaseEntity(),
		UserID:           userID,
		Title:            subject,
		Content:          content,
		SendInApp:        channels.InApp,
		SendNotification: channels.Notification,
		SendEmail:        channels.Email,
		SendSMS:          channels.SMS,
		EventType:        eventType.Normalize(),
		EventData:        eventData,
	}, nil
}

// MarkSeen flags the message as read
func (m *UserMessage) MarkSeen() {
	m.IsSeen = true
	m.Touch()
}

// PushPayload is what a push provider receives
type PushPayload struct {
	Title     string
	Body      string
	EventType EventType
	EventData string
}

// Push builds the push payload, cutting title and body to provider limits
func (m *UserMessage) Push() PushPayload {
	return PushPayload{
		Title:     truncate(m.Title, MaxPushTitleLength),
		Body:      truncate(m.Content, MaxPushBodyLength),
		EventType: m.EventType,
		EventData: m.EventData,
	}
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

// UserDevice is a push notification target
type UserDevice struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     uuid.UUID
	CreatedAt time.Time
}

// NewUserDevice registers a device token for userID
func NewUserDevice(userID, token uuid.UUID) *UserDevice {
	return &UserDevice{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		CreatedAt: time.Now(),
	}
}
