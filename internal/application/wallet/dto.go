package wallet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/wallet"
	"github.com/shopspring/decimal"
)

// BalanceResponse is the current balance of a wallet
type BalanceResponse struct {
	WalletID       uuid.UUID       `json:"wallet_id"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// TransactionResponse is one wallet movement
type TransactionResponse struct {
	ID           uuid.UUID       `json:"id"`
	Value        decimal.Decimal `json:"value"`
	Log          string          `json:"log"`
	TotalBalance decimal.Decimal `json:"total_balance"`
	CreatedAt    time.Time       `json:"created_at"`
}

// TransferRequest moves money from the caller's wallet to another user or wallet
type TransferRequest struct {
	ToUserID   *uuid.UUID      `json:"to_user_id"`
	ToWalletID *uuid.UUID      `json:"to_wallet_id"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

// AdjustRequest is a staff deposit or withdrawal
type AdjustRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Log    string          `json:"log" binding:"max=50"`
}

// TransferResponse reports the caller's balance after a transfer
type TransferResponse struct {
	SourceWalletID      uuid.UUID       `json:"source_wallet_id"`
	DestinationWalletID uuid.UUID       `json:"destination_wallet_id"`
	Amount              decimal.Decimal `json:"amount"`
	CurrentBalance      decimal.Decimal `json:"current_balance"`
}

func toTransactionResponse(t *wallet.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           t.ID,
		Value:        t.Value,
		Log:          t.Log,
		TotalBalance: t.TotalBalance,
		CreatedAt:    t.CreatedAt,
	}
}
