package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/messaging"
)

// UserMessageModel is the persistence model for messaging.UserMessage
type UserMessageModel struct {
	BaseModel
	UserID           uuid.UUID           `gorm:"type:uuid;not null;index:idx_user_messages_inbox,priority:1"`
	Title            string              `gorm:"type:varchar(50);not null"`
	Content          string              `gorm:"type:text"`
	SendInApp        bool                `gorm:"not null;default:false;index:idx_user_messages_inbox,priority:2"`
	SendNotification bool                `gorm:"not null;default:false"`
	SendEmail        bool                `gorm:"not null;default:false"`
	SendSMS          bool                `gorm:"column:send_sms;not null;default:false"`
	IsSeen           bool                `gorm:"not null;default:false"`
	EventType        messaging.EventType `gorm:"type:smallint;not null;default:0"`
	EventData        string              `gorm:"type:text;not null;default:'{}'"`
}

// TableName returns the table name for GORM
func (UserMessageModel) TableName() string { return "user_messages" }

// ToDomain converts the model to a domain UserMessage
func (m *UserMessageModel) ToDomain() *messaging.UserMessage {
	return &messaging.UserMessage{
		BaseEntity:       m.BaseModel.ToDomain(),
		UserID:           m.UserID,
		Title:            m.Title,
		Content:          m.Content,
		SendInApp:        m.SendInApp,
		SendNotification: m.SendNotification,
		SendEmail:        m.SendEmail,
		SendSMS:          m.SendSMS,
		IsSeen:           m.IsSeen,
		EventType:        m.EventType,
		EventData:        m.EventData,
	}
}

// UserMessageModelFromDomain creates a model from a domain UserMessage
func UserMessageModelFromDomain(msg *messaging.UserMessage) *UserMessageModel {
	m := &UserMessageModel{
		UserID:           msg.UserID,
		Title:            msg.Title,
		Content:          msg.Content,
		SendInApp:        msg.SendInApp,
		SendNotification: msg.SendNotification,
		SendEmail:        msg.SendEmail,
		SendSMS:          msg.SendSMS,
		IsSeen:           msg.IsSeen,
		EventType:        msg.EventType,
		EventData:        msg.EventData,
	}
	m.FromDomainBaseEntity(msg.BaseEntity)
	return m
}

// GroupModel is a named set of users targeted by announcements
type GroupModel struct {
	BaseModel
	Title string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (GroupModel) TableName() string { return "groups" }

// ToDomain converts the model to a domain Group
func (m *GroupModel) ToDomain() *messaging.Group {
	return &messaging.Group{BaseEntity: m.BaseModel.ToDomain(), Title: m.Title}
}

// GroupModelFromDomain creates a model from a domain Group
func GroupModelFromDomain(g *messaging.Group) *GroupModel {
	m := &GroupModel{Title: g.Title}
	m.FromDomainBaseEntity(g.BaseEntity)
	return m
}

// GroupUserModel is one group membership
type GroupUserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	GroupID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_group_user,priority:1"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_group_user,priority:2"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (GroupUserModel) TableName() string { return "group_users" }

// GroupMessageModel is an announcement sent to every group member
type GroupMessageModel struct {
	AggregateModel
	GroupID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Title            string    `gorm:"type:varchar(50);not null"`
	Content          string    `gorm:"type:text"`
	SendInApp        bool      `gorm:"not null;default:false"`
	SendNotification bool      `gorm:"not null;default:false"`
	SendEmail        bool      `gorm:"not null;default:false"`
	SendSMS          bool      `gorm:"column:send_sms;not null;default:false"`
}

// TableName returns the table name for GORM
func (GroupMessageModel) TableName() string { return "group_messages" }

// ToDomain converts the model to a domain GroupMessage
func (m *GroupMessageModel) ToDomain() *messaging.GroupMessage {
	return &messaging.GroupMessage{
		BaseAggregateRoot: m.ToAggregateRoot(),
		GroupID:           m.GroupID,
		Title:             m.Title,
		Content:           m.Content,
		Channels: messaging.Channels{
			InApp:        m.SendInApp,
			Notification: m.SendNotification,
			Email:        m.SendEmail,
			SMS:          m.SendSMS,
		},
	}
}

// GroupMessageModelFromDomain creates a model from a domain GroupMessage
func GroupMessageModelFromDomain(g *messaging.GroupMessage) *GroupMessageModel {
	m := &GroupMessageModel{
		GroupID:          g.GroupID,
		Title:            g.Title,
		Content:          g.Content,
		SendInApp:        g.Channels.InApp,
		SendNotification: g.Channels.Notification,
		SendEmail:        g.Channels.Email,
		SendSMS:          g.Channels.SMS,
	}
	m.FromDomainAggregateRoot(g.BaseAggregateRoot)
	return m
}

// UserDeviceModel stores a push token registered by a client
type UserDeviceModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Token     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UserDeviceModel) TableName() string { return "user_devices" }

// ToDomain converts the model to a domain UserDevice
func (m *UserDeviceModel) ToDomain() *messaging.UserDevice {
	return &messaging.UserDevice{ID: m.ID, UserID: m.UserID, Token: m.Token, CreatedAt: m.CreatedAt}
}

// UserDeviceModelFromDomain creates a model from a domain UserDevice
func UserDeviceModelFromDomain(d *messaging.UserDevice) *UserDeviceModel {
	return &UserDeviceModel{ID: d.ID, UserID: d.UserID, Token: d.Token, CreatedAt: d.CreatedAt}
}
