package wallet

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MaxLogLength bounds the description stored with a transaction
const MaxLogLength = 50

var (
	ErrInvalidAmount = shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	ErrSameWallet    = shared.NewDomainError("INVALID_TRANSFER", "Cannot transfer to the same wallet")
)

// Wallet holds a user's balance
type Wallet struct {
	shared.BaseAggregateRoot
	Title          string
	CurrentBalance decimal.Decimal
	// Transactions holds entries appended since the wallet was loaded
	Transactions []Transaction
}

// Transaction is one signed movement of a wallet balance
type Transaction struct {
	ID       uuid.UUID
	WalletID uuid.UUID
	// Value is positive for deposits and negative for withdrawals
	Value        decimal.Decimal
	Log          string
	TotalBalance decimal.Decimal
	CreatedAt    time.Time
}

// NewWallet creates an empty wallet
func NewWallet(title string) *Wallet {
	return &Wallet{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             strings.TrimSpace(title),
		CurrentBalance:    decimal.Zero,
		Transactions:      []Transaction{},
	}
}

// Deposit adds value to the balance and records it
func (w *Wallet) Deposit(value decimal.Decimal, log string) (*Transaction, error) {
	if !value.IsPositive() {
		return nil, ErrInvalidAmount
	}
	w.CurrentBalance = w.CurrentBalance.Add(value)
	return w.record(value, log), nil
}

// Withdraw takes value from the balance and records it
func (w *Wallet) Withdraw(value decimal.Decimal, log string) (*Transaction, error) {
	if !value.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if value.GreaterThan(w.CurrentBalance) {
		return nil, shared.ErrInsufficientBalance
	}
	w.CurrentBalance = w.CurrentBalance.Sub(value)
	return w.record(value.Neg(), log), nil
}

func (w *Wallet) record(value decimal.Decimal, log string) *Transaction {
	w.Touch()
	tx := Transaction{
		ID:           uuid.New(),
		WalletID:     w.ID,
		Value:        value,
		Log:          truncate(log, MaxLogLength),
		TotalBalance: w.CurrentBalance,
		CreatedAt:    w.UpdatedAt,
	}
	w.Transactions = append(w.Transactions, tx)
	return &w.Transactions[len(w.Transactions)-1]
}

// PendingTransactions returns the entries not persisted yet and forgets them
func (w *Wallet) PendingTransactions() []Transaction {
	pending := w.Transactions
	w.Transactions = []Transaction{}
	return pending
}

// Transfer moves value from src to dst.
// Both wallets are left untouched when src cannot cover value.
func Transfer(src, dst *Wallet, value decimal.Decimal) error {
	if src.ID == dst.ID {
		return ErrSameWallet
	}
	if !value.IsPositive() {
		return ErrInvalidAmount
	}
	if value.GreaterThan(src.CurrentBalance) {
		return shared.ErrInsufficientBalance
	}
	if _, err := src.Withdraw(value, "Transfer out"); err != nil {
		return err
	}
	if _, err := dst.Deposit(value, "Transfer in"); err != nil {
		return err
	}
	src.AddDomainEvent(NewTransferCompletedEvent(src.ID, dst.ID, value))
	return nil
}

// LockOrder returns the two wallet ids in the order their rows must be locked
func LockOrder(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if strings.Compare(a.String(), b.String()) <= 0 {
		return a, b
	}
	return b, a
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
