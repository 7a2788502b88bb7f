package wallet

import (
	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AggregateTypeWallet is the aggregate type of wallet events
const AggregateTypeWallet = "Wallet"

// EventTypeTransferCompleted is raised after money moved between wallets
const EventTypeTransferCompleted = "WalletTransferCompleted"

// TransferCompletedEvent carries the parties of a finished transfer
type TransferCompletedEvent struct {
	shared.BaseDomainEvent
	SourceWalletID      uuid.UUID       `json:"source_wallet_id"`
	DestinationWalletID uuid.UUID       `json:"destination_wallet_id"`
	Amount              decimal.Decimal `json:"amount"`
}

// NewTransferCompletedEvent creates a new TransferCompletedEvent
func NewTransferCompletedEvent(src, dst uuid.UUID, amount decimal.Decimal) *TransferCompletedEvent {
	return &TransferCompletedEvent{
		BaseDomainEvent:     shared.NewBaseDomainEvent(EventTypeTransferCompleted, AggregateTypeWallet, src),
		SourceWalletID:      src,
		DestinationWalletID: dst,
		Amount:              amount,
	}
}
