package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OutboxStatus is the delivery state of an outbox entry
type OutboxStatus string

const (
	OutboxStatusPending    OutboxStatus = "PENDING"
	OutboxStatusProcessing OutboxStatus = "PROCESSING"
	OutboxStatusSent       OutboxStatus = "SENT"
	OutboxStatusFailed     OutboxStatus = "FAILED"
	OutboxStatusDead       OutboxStatus = "DEAD"
)

const (
	DefaultOutboxMaxRetries = 5
	DefaultOutboxBackoff    = time.Second
)

// OutboxEntry is a serialized domain event waiting to be delivered to the
// event bus. Entries are written in the same transaction as the aggregate
// change that raised the event.
type OutboxEntry struct {
	ID            uuid.UUID
	EventID       uuid.UUID
	EventType     string
	AggregateID   uuid.UUID
	AggregateType string
	Payload       []byte
	Status        OutboxStatus
	RetryCount    int
	MaxRetries    int
	LastError     string
	NextRetryAt   *time.Time
	ProcessedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewOutboxEntry wraps a serialized event in a pending entry
func NewOutboxEntry(event DomainEvent, payload []byte) *OutboxEntry {
	now := time.Now()
	return &OutboxEntry{
		ID:            uuid.New(),
		EventID:       event.EventID(),
		EventType:     event.EventType(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		Payload:       payload,
		Status:        OutboxStatusPending,
		MaxRetries:    DefaultOutboxMaxRetries,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// MarkSent records a successful delivery
func (e *OutboxEntry) MarkSent() {
	now := time.Now()
	e.Status = OutboxStatusSent
	e.ProcessedAt = &now
	e.UpdatedAt = now
}

// MarkFailed records a failed delivery. The entry is retried with exponential
// backoff until MaxRetries is reached, after which it is dead.
func (e *OutboxEntry) MarkFailed(errMsg string) {
	now := time.Now()
	e.RetryCount++
	e.LastError = errMsg
	e.UpdatedAt = now

	if e.RetryCount >= e.MaxRetries {
		e.Status = OutboxStatusDead
		e.NextRetryAt = nil
		return
	}
	e.Status = OutboxStatusFailed
	next := now.Add(DefaultOutboxBackoff * time.Duration(1<<uint(e.RetryCount-1)))
	e.NextRetryAt = &next
}

// Requeue puts a dead entry back in the pending queue
func (e *OutboxEntry) Requeue() error {
	if e.Status != OutboxStatusDead {
		return NewDomainError(ErrInvalidState.Code, "Only dead entries can be requeued")
	}
	e.Status = OutboxStatusPending
	e.RetryCount = 0
	e.LastError = ""
	e.NextRetryAt = nil
	e.UpdatedAt = time.Now()
	return nil
}

// IsDead reports whether delivery was abandoned
func (e *OutboxEntry) IsDead() bool {
	return e.Status == OutboxStatusDead
}

// EventOutbox records domain events as part of the caller's unit of work
type EventOutbox interface {
	Append(ctx context.Context, events ...DomainEvent) error
}

// OutboxStore is the persistence port used by the outbox relay
type OutboxStore interface {
	// Claim locks up to limit deliverable entries (pending, or failed and due
	// at now) and marks them as processing.
	Claim(ctx context.Context, now time.Time, limit int) ([]*OutboxEntry, error)
	Update(ctx context.Context, entry *OutboxEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*OutboxEntry, error)
	FindDead(ctx context.Context, filter Filter) ([]*OutboxEntry, int64, error)
	CountByStatus(ctx context.Context) (map[OutboxStatus]int64, error)
	DeleteSentBefore(ctx context.Context, before time.Time) (int64, error)
}
