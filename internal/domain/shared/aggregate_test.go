package shared

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBaseAggregateRoot_Events(t *testing.T) {
	agg := NewBaseAggregateRoot()
	assert.Equal(t, 1, agg.Version)
	assert.NotEqual(t, uuid.Nil, agg.ID)
	assert.Equal(t, agg.CreatedAt, agg.UpdatedAt)

	first := NewBaseDomainEvent("OrderPlaced", "Order", agg.ID)
	second := NewBaseDomainEvent("OrderStatusChanged", "Order", agg.ID)
	agg.AddDomainEvent(&first)
	agg.AddDomainEvent(&second)
	assert.Len(t, agg.GetDomainEvents(), 2, "peeking keeps events pending")

	pulled := agg.PullDomainEvents()
	assert.Equal(t, []DomainEvent{&first, &second}, pulled)
	assert.Empty(t, agg.GetDomainEvents())
	assert.Empty(t, agg.PullDomainEvents())

	agg.IncrementVersion()
	assert.Equal(t, 2, agg.Version)
}
