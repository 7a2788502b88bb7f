package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
)

// UserRepository persists users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByWalletID(ctx context.Context, walletID uuid.UUID) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter shared.Filter) ([]User, int64, error)
	Save(ctx context.Context, user *User) error
}

// AddressRepository persists addresses
type AddressRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Address, error)
	// ListByUser returns the user's addresses oldest first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Address, error)
	Save(ctx context.Context, address *Address) error
	Delete(ctx context.Context, id uuid.UUID) error
}
