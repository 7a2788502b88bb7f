package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/wallet"
	"github.com/shop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWalletRepository implements wallet.Repository using GORM
type GormWalletRepository struct {
	db *gorm.DB
}

// NewGormWalletRepository creates a new GormWalletRepository
func NewGormWalletRepository(db *gorm.DB) *GormWalletRepository {
	return &GormWalletRepository{db: db}
}

func (r *GormWalletRepository) find(db *gorm.DB, id uuid.UUID) (*wallet.Wallet, error) {
	var model models.WalletModel
	if err := db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByID finds a wallet by its ID
func (r *GormWalletRepository) FindByID(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	return r.find(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate finds a wallet and locks its row
func (r *GormWalletRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// Create inserts a new wallet
func (r *GormWalletRepository) Create(ctx context.Context, w *wallet.Wallet) error {
	return r.db.WithContext(ctx).Create(models.WalletModelFromDomain(w)).Error
}

// Save writes the balance and inserts the transactions recorded since load
func (r *GormWalletRepository) Save(ctx context.Context, w *wallet.Wallet) error {
	db := r.db.WithContext(ctx)
	result := db.Model(&models.WalletModel{}).
		Where("id = ?", w.ID).
		Updates(map[string]any{
			"current_balance": w.CurrentBalance,
			"version":         gorm.Expr("version + 1"),
			"updated_at":      w.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	w.IncrementVersion()

	pending := w.PendingTransactions()
	if len(pending) == 0 {
		return nil
	}
	txModels := make([]*models.WalletTransactionModel, len(pending))
	for i := range pending {
		txModels[i] = models.WalletTransactionModelFromDomain(&pending[i])
	}
	return db.Create(txModels).Error
}

// ListTransactions returns a page of the wallet's transactions, newest first
func (r *GormWalletRepository) ListTransactions(ctx context.Context, walletID uuid.UUID, filter shared.Filter) ([]wallet.Transaction, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.WalletTransactionModel{}).
		Where("wallet_id = ?", walletID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txModels []models.WalletTransactionModel
	q := r.db.WithContext(ctx).Where("wallet_id = ?", walletID).Order("created_at DESC, id DESC")
	if err := paginate(q, filter).Find(&txModels).Error; err != nil {
		return nil, 0, err
	}
	transactions := make([]wallet.Transaction, len(txModels))
	for i := range txModels {
		transactions[i] = *txModels[i].ToDomain()
	}
	return transactions, total, nil
}

var _ wallet.Repository = (*GormWalletRepository)(nil)
