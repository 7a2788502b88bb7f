package wallet

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestWallet_DepositWithdraw(t *testing.T) {
	w := NewWallet("main")

	tx, err := w.Deposit(dec("100"), "top up")
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(tx.Value))
	assert.True(t, dec("100").Equal(tx.TotalBalance))

	tx, err = w.Withdraw(dec("30"), "coffee")
	require.NoError(t, err)
	assert.True(t, dec("-30").Equal(tx.Value))
	assert.True(t, dec("70").Equal(tx.TotalBalance))
	assert.True(t, dec("70").Equal(w.CurrentBalance))

	_, err = w.Withdraw(dec("70.01"), "too much")
	assert.ErrorIs(t, err, shared.ErrInsufficientBalance)
	assert.True(t, dec("70").Equal(w.CurrentBalance))

	_, err = w.Deposit(dec("0"), "nothing")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	assert.Len(t, w.PendingTransactions(), 2)
	assert.Empty(t, w.PendingTransactions())
}

func TestWallet_LogTruncated(t *testing.T) {
	w := NewWallet("main")
	tx, err := w.Deposit(dec("1"), strings.Repeat("x", 80))
	require.NoError(t, err)
	assert.Len(t, tx.Log, MaxLogLength)
}

func TestTransfer(t *testing.T) {
	src := NewWallet("src")
	dst := NewWallet("dst")
	_, err := src.Deposit(dec("50"), "seed")
	require.NoError(t, err)
	src.PendingTransactions()

	t.Run("insufficient balance leaves both untouched", func(t *testing.T) {
		err := Transfer(src, dst, dec("80"))
		assert.ErrorIs(t, err, shared.ErrInsufficientBalance)
		assert.True(t, dec("50").Equal(src.CurrentBalance))
		assert.True(t, dst.CurrentBalance.IsZero())
		assert.Empty(t, src.Transactions)
		assert.Empty(t, dst.Transactions)
	})

	t.Run("same wallet", func(t *testing.T) {
		assert.ErrorIs(t, Transfer(src, src, dec("1")), ErrSameWallet)
	})

	t.Run("moves money", func(t *testing.T) {
		require.NoError(t, Transfer(src, dst, dec("20")))
		assert.True(t, dec("30").Equal(src.CurrentBalance))
		assert.True(t, dec("20").Equal(dst.CurrentBalance))
		require.Len(t, src.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeTransferCompleted, src.GetDomainEvents()[0].EventType())
	})
}

func TestLockOrder(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	b := uuid.MustParse("00000000-0000-0000-0000-000000000002")

	first, second := LockOrder(b, a)
	assert.Equal(t, a, first)
	assert.Equal(t, b, second)

	first, second = LockOrder(a, b)
	assert.Equal(t, a, first)
	assert.Equal(t, b, second)
}
