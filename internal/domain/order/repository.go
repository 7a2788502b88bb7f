package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
)

// Repository persists orders with their items, shipment and timeline
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// ListByUser returns the user's orders newest first
	ListByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, int64, error)
	// List returns all orders, optionally narrowed to one status
	List(ctx context.Context, status *Status, filter shared.Filter) ([]Order, int64, error)
	// Create inserts the order and bulk inserts its items, shipment and statuses
	Create(ctx context.Context, order *Order) error
	UpdateStatus(ctx context.Context, order *Order) error
}
