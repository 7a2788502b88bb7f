package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
)

// OutboxEventModel stores domain events until the relay delivers them
type OutboxEventModel struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey"`
	EventID       uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex"`
	EventType     string              `gorm:"type:varchar(100);not null"`
	AggregateID   uuid.UUID           `gorm:"type:uuid;not null"`
	AggregateType string              `gorm:"type:varchar(100);not null"`
	Payload       []byte              `gorm:"type:jsonb;not null"`
	Status        shared.OutboxStatus `gorm:"type:varchar(20);not null;default:PENDING;index:idx_outbox_status_created,priority:1"`
	RetryCount    int                 `gorm:"not null;default:0"`
	MaxRetries    int                 `gorm:"not null;default:5"`
	LastError     string              `gorm:"type:text"`

	NextRetryAt *time.Time
	ProcessedAt *time.Time
	CreatedAt   time.Time `gorm:"not null;index:idx_outbox_status_created,priority:2"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OutboxEventModel) TableName() string { return "outbox_events" }

// ToDomain converts the model to a domain OutboxEntry
func (m *OutboxEventModel) ToDomain() *shared.OutboxEntry {
	return &shared.OutboxEntry{
		ID:            m.ID,
		EventID:       m.EventID,
		EventType:     m.EventType,
		AggregateID:   m.AggregateID,
		AggregateType: m.AggregateType,
		Payload:       m.Payload,
		Status:        m.Status,
		RetryCount:    m.RetryCount,
		MaxRetries:    m.MaxRetries,
		LastError:     m.LastError,
		NextRetryAt:   m.NextRetryAt,
		ProcessedAt:   m.ProcessedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// OutboxEventModelFromDomain creates a model from a domain OutboxEntry
func OutboxEventModelFromDomain(e *shared.OutboxEntry) *OutboxEventModel {
	return &OutboxEventModel{
		ID:            e.ID,
		EventID:       e.EventID,
		EventType:     e.EventType,
		AggregateID:   e.AggregateID,
		AggregateType: e.AggregateType,
		Payload:       e.Payload,
		Status:        e.Status,
		RetryCount:    e.RetryCount,
		MaxRetries:    e.MaxRetries,
		LastError:     e.LastError,
		NextRetryAt:   e.NextRetryAt,
		ProcessedAt:   e.ProcessedAt,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
