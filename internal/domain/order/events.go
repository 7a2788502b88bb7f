package order

import (
	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AggregateTypeOrder is the aggregate type of order events
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderPlaced        = "OrderPlaced"
	EventTypeOrderStatusChanged = "OrderStatusChanged"
)

// OrderPlacedEvent is raised when a cart is turned into an order
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID       `json:"order_id"`
	UserID     uuid.UUID       `json:"user_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	ItemCount  int             `json:"item_count"`
	CouponID   *uuid.UUID      `json:"coupon_id,omitempty"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		UserID:          o.UserID,
		TotalPrice:      o.TotalPrice,
		ItemCount:       o.ItemCount(),
		CouponID:        o.CouponID,
	}
}

// OrderStatusChangedEvent is raised when an order moves to another status
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID `json:"order_id"`
	UserID  uuid.UUID `json:"user_id"`
	From    Status    `json:"from"`
	To      Status    `json:"to"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, from Status) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		UserID:          o.UserID,
		From:            from,
		To:              o.CurrentStatus,
	}
}
