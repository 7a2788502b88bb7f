package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/wallet"
	"github.com/shopspring/decimal"
)

// WalletModel is the persistence model for wallet.Wallet
type WalletModel struct {
	AggregateModel
	Title          string          `gorm:"type:varchar(100)"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (WalletModel) TableName() string { return "wallets" }

// ToDomain converts the model to a domain Wallet
func (m *WalletModel) ToDomain() *wallet.Wallet {
	return &wallet.Wallet{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Title:             m.Title,
		CurrentBalance:    m.CurrentBalance,
	}
}

// WalletModelFromDomain creates a model from a domain Wallet
func WalletModelFromDomain(w *wallet.Wallet) *WalletModel {
	m := &WalletModel{Title: w.Title, CurrentBalance: w.CurrentBalance}
	m.FromDomainAggregateRoot(w.BaseAggregateRoot)
	return m
}

// WalletTransactionModel is one ledger entry of a wallet
type WalletTransactionModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WalletID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Value        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Log          string          `gorm:"type:varchar(50)"`
	TotalBalance decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt    time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (WalletTransactionModel) TableName() string { return "wallet_transactions" }

// ToDomain converts the model to a domain Transaction
func (m *WalletTransactionModel) ToDomain() *wallet.Transaction {
	return &wallet.Transaction{
		ID:           m.ID,
		WalletID:     m.WalletID,
		Value:        m.Value,
		Log:          m.Log,
		TotalBalance: m.TotalBalance,
		CreatedAt:    m.CreatedAt,
	}
}

// WalletTransactionModelFromDomain creates a model from a domain Transaction
func WalletTransactionModelFromDomain(t *wallet.Transaction) *WalletTransactionModel {
	return &WalletTransactionModel{
		ID:           t.ID,
		WalletID:     t.WalletID,
		Value:        t.Value,
		Log:          t.Log,
		TotalBalance: t.TotalBalance,
		CreatedAt:    t.CreatedAt,
	}
}
