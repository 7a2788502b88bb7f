package wallet

import (
	"context"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
)

// Repository persists wallets and their transactions
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Wallet, error)
	// FindByIDForUpdate loads the wallet and locks its row until the transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Wallet, error)
	Create(ctx context.Context, wallet *Wallet) error
	// Save writes the balance and inserts pending transactions
	Save(ctx context.Context, wallet *Wallet) error
	ListTransactions(ctx context.Context, walletID uuid.UUID, filter shared.Filter) ([]Transaction, int64, error)
}
