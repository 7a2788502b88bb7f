package wallet

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/account"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/wallet"
	"github.com/shop/backend/internal/infrastructure/cache"
	"github.com/shop/backend/internal/infrastructure/event"
	"github.com/shop/backend/internal/infrastructure/persistence"
	"github.com/shop/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() {
	account.BcryptCost = bcrypt.MinCost
}

type recordingObserver struct {
	mu      sync.Mutex
	amounts []float64
}

func (o *recordingObserver) RecordWalletTransfer(_ context.Context, amount float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.amounts = append(o.amounts, amount)
}

type fixture struct {
	db       *gorm.DB
	service  *Service
	wallets  *persistence.GormWalletRepository
	outbox   *event.GormOutboxRepository
	observer *recordingObserver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })
	observer := &recordingObserver{}

	scope := persistence.NewGormTransactionScope(db, event.NewOutboxPublisher(event.NewShopEventSerializer()))
	return &fixture{
		db: db,
		service: NewService(persistence.NewGormUserRepository(db), persistence.NewGormWalletRepository(db), scope, zap.NewNop(),
			WithIdempotency(store, time.Hour), WithTransferObserver(observer)),
		wallets:  persistence.NewGormWalletRepository(db),
		outbox:   event.NewGormOutboxRepository(db),
		observer: observer,
	}
}

// newUser stores a user owning a wallet with the given balance
func (f *fixture) newUser(t *testing.T, email string, balance int64) (*account.User, uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	w := wallet.NewWallet(email)
	require.NoError(t, f.wallets.Create(ctx, w))
	if balance > 0 {
		_, err := w.Deposit(decimal.NewFromInt(balance), "Seed")
		require.NoError(t, err)
		require.NoError(t, f.wallets.Save(ctx, w))
	}
	u, err := account.NewUser(email, "correct-horse", "")
	require.NoError(t, err)
	u.AttachWallet(w.ID)
	require.NoError(t, persistence.NewGormUserRepository(f.db).Save(ctx, u))
	return u, w.ID
}

func (f *fixture) balance(t *testing.T, walletID uuid.UUID) decimal.Decimal {
	t.Helper()
	w, err := f.wallets.FindByID(context.Background(), walletID)
	require.NoError(t, err)
	return w.CurrentBalance
}

func TestService_Transfer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, aliceWallet := f.newUser(t, "alice@example.com", 100)
	bob, bobWallet := f.newUser(t, "bob@example.com", 0)

	resp, err := f.service.Transfer(ctx, alice.ID, "", TransferRequest{ToUserID: &bob.ID, Amount: decimal.NewFromInt(40)})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(60).Equal(resp.CurrentBalance))
	assert.Equal(t, bobWallet, resp.DestinationWalletID)

	assert.True(t, decimal.NewFromInt(60).Equal(f.balance(t, aliceWallet)))
	assert.True(t, decimal.NewFromInt(40).Equal(f.balance(t, bobWallet)))

	page, err := f.service.ListTransactions(ctx, alice.ID, shared.Filter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.True(t, decimal.NewFromInt(-40).Equal(page.Items[0].Value))
	assert.Equal(t, "Transfer out", page.Items[0].Log)

	stats, err := f.outbox.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats[shared.OutboxStatusPending])
	assert.Equal(t, []float64{40}, f.observer.amounts)
}

func TestService_Transfer_ToWallet(t *testing.T) {
	f := newFixture(t)
	alice, _ := f.newUser(t, "alice@example.com", 10)
	_, bobWallet := f.newUser(t, "bob@example.com", 0)

	_, err := f.service.Transfer(context.Background(), alice.ID, "", TransferRequest{ToWalletID: &bobWallet, Amount: decimal.NewFromInt(10)})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(f.balance(t, bobWallet)))
}

func TestService_Transfer_InsufficientBalanceWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, aliceWallet := f.newUser(t, "alice@example.com", 5)
	bob, bobWallet := f.newUser(t, "bob@example.com", 0)

	_, err := f.service.Transfer(ctx, alice.ID, "", TransferRequest{ToUserID: &bob.ID, Amount: decimal.NewFromInt(6)})
	assert.ErrorIs(t, err, shared.ErrInsufficientBalance)

	assert.True(t, decimal.NewFromInt(5).Equal(f.balance(t, aliceWallet)))
	assert.True(t, f.balance(t, bobWallet).IsZero())
	stats, err := f.outbox.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats[shared.OutboxStatusPending])
	assert.Empty(t, f.observer.amounts)
}

func TestService_Transfer_Rejections(t *testing.T) {
	f := newFixture(t)
	alice, aliceWallet := f.newUser(t, "alice@example.com", 50)
	bob, _ := f.newUser(t, "bob@example.com", 0)
	missing := uuid.New()

	tests := []struct {
		name string
		req  TransferRequest
		want error
	}{
		{"same wallet", TransferRequest{ToWalletID: &aliceWallet, Amount: decimal.NewFromInt(1)}, wallet.ErrSameWallet},
		{"zero amount", TransferRequest{ToUserID: &bob.ID, Amount: decimal.Zero}, wallet.ErrInvalidAmount},
		{"negative amount", TransferRequest{ToUserID: &bob.ID, Amount: decimal.NewFromInt(-3)}, wallet.ErrInvalidAmount},
		{"no destination", TransferRequest{Amount: decimal.NewFromInt(1)}, shared.ErrInvalidInput},
		{"unknown user", TransferRequest{ToUserID: &missing, Amount: decimal.NewFromInt(1)}, shared.ErrNotFound},
		{"unknown wallet", TransferRequest{ToWalletID: &missing, Amount: decimal.NewFromInt(1)}, shared.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Transfer(context.Background(), alice.ID, "", tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.True(t, decimal.NewFromInt(50).Equal(f.balance(t, aliceWallet)))
}

func TestService_Transfer_IdempotencyKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, aliceWallet := f.newUser(t, "alice@example.com", 100)
	bob, _ := f.newUser(t, "bob@example.com", 0)
	req := TransferRequest{ToUserID: &bob.ID, Amount: decimal.NewFromInt(30)}

	_, err := f.service.Transfer(ctx, alice.ID, "key-1", req)
	require.NoError(t, err)
	_, err = f.service.Transfer(ctx, alice.ID, "key-1", req)
	assert.ErrorIs(t, err, shared.ErrDuplicateRequest)

	assert.True(t, decimal.NewFromInt(70).Equal(f.balance(t, aliceWallet)))
}

func TestService_DepositWithdraw(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, aliceWallet := f.newUser(t, "alice@example.com", 0)

	resp, err := f.service.Deposit(ctx, aliceWallet, AdjustRequest{Amount: decimal.NewFromInt(25)})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(25).Equal(resp.CurrentBalance))

	_, err = f.service.Withdraw(ctx, aliceWallet, AdjustRequest{Amount: decimal.NewFromInt(26)})
	assert.ErrorIs(t, err, shared.ErrInsufficientBalance)

	resp, err = f.service.Withdraw(ctx, aliceWallet, AdjustRequest{Amount: decimal.NewFromInt(5), Log: "Refund"})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(20).Equal(resp.CurrentBalance))

	balance, err := f.service.GetBalance(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(20).Equal(balance.CurrentBalance))

	page, err := f.service.ListTransactions(ctx, alice.ID, shared.Filter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	_, err = f.service.Deposit(ctx, aliceWallet, AdjustRequest{Amount: decimal.Zero})
	assert.ErrorIs(t, err, wallet.ErrInvalidAmount)
}
