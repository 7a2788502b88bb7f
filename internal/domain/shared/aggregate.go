package shared

// BaseAggregateRoot is embedded by aggregates that are versioned for
// optimistic locking and raise domain events. Raised events stay pending
// until the application service moves them into the outbox inside the
// transaction that saves the aggregate.
type BaseAggregateRoot struct {
	BaseEntity
	Version int
	pending []DomainEvent
}

func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity(), Version: 1}
}

// IncrementVersion is called by repositories once a versioned update succeeded
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.pending = append(a.pending, event)
}

// GetDomainEvents returns the pending events without clearing them
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.pending
}

// PullDomainEvents returns the pending events and clears them
func (a *BaseAggregateRoot) PullDomainEvents() []DomainEvent {
	events := a.pending
	a.pending = nil
	return events
}
