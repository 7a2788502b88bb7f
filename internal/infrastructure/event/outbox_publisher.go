package event

import (
	"context"
	"fmt"

	"github.com/shop/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// OutboxPublisher writes domain events to the outbox table
type OutboxPublisher struct {
	serializer *EventSerializer
}

// NewOutboxPublisher creates a new outbox publisher
func NewOutboxPublisher(serializer *EventSerializer) *OutboxPublisher {
	return &OutboxPublisher{serializer: serializer}
}

// PublishWithTx stores events through tx so they commit or roll back with it
func (p *OutboxPublisher) PublishWithTx(ctx context.Context, tx *gorm.DB, events ...shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	entries := make([]*shared.OutboxEntry, 0, len(events))
	for _, event := range events {
		payload, err := p.serializer.Serialize(event)
		if err != nil {
			return fmt.Errorf("serialize %s: %w", event.EventType(), err)
		}
		entries = append(entries, shared.NewOutboxEntry(event, payload))
	}
	return NewGormOutboxRepository(tx).Save(ctx, entries...)
}

// ForTx binds the publisher to a transaction
func (p *OutboxPublisher) ForTx(tx *gorm.DB) shared.EventOutbox {
	return &txOutbox{publisher: p, tx: tx}
}

type txOutbox struct {
	publisher *OutboxPublisher
	tx        *gorm.DB
}

func (o *txOutbox) Append(ctx context.Context, events ...shared.DomainEvent) error {
	return o.publisher.PublishWithTx(ctx, o.tx, events...)
}
