package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository persists carts and their items
type Repository interface {
	// FindLatest returns the most recently updated cart of the user or the session
	FindLatest(ctx context.Context, owner Owner) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Touch(ctx context.Context, cartID uuid.UUID) error

	ListItems(ctx context.Context, cartID uuid.UUID) ([]Item, error)
	FindItem(ctx context.Context, cartID, productID uuid.UUID) (*Item, error)
	SaveItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, cartID, productID uuid.UUID) (bool, error)
	Clear(ctx context.Context, cartID uuid.UUID) error

	// DeleteStaleSessionCarts removes anonymous carts not updated since before
	DeleteStaleSessionCarts(ctx context.Context, before time.Time) (int64, error)
}
