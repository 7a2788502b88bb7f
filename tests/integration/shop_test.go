package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	accountapp "github.com/shop/backend/internal/application/account"
	cartapp "github.com/shop/backend/internal/application/cart"
	messagingapp "github.com/shop/backend/internal/application/messaging"
	orderapp "github.com/shop/backend/internal/application/order"
	walletapp "github.com/shop/backend/internal/application/wallet"
	"github.com/shop/backend/internal/domain/cart"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/order"
	"github.com/shop/backend/internal/domain/promotion"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/shipment"
	"github.com/shop/backend/internal/domain/wallet"
	"github.com/shop/backend/internal/infrastructure/auth"
	"github.com/shop/backend/internal/infrastructure/cache"
	"github.com/shop/backend/internal/infrastructure/event"
	"github.com/shop/backend/internal/infrastructure/migration"
	"github.com/shop/backend/internal/infrastructure/notification"
	"github.com/shop/backend/internal/infrastructure/persistence"
	"github.com/shop/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type shop struct {
	db         *TestDB
	serializer *event.EventSerializer
	users      *accountapp.UserService
	addresses  *accountapp.AddressService
	cart       *cartapp.Service
	order      *orderapp.Service
	wallet     *walletapp.Service
	messaging  *messagingapp.Service
	outbox     *event.GormOutboxRepository
}

func newShop(t *testing.T) *shop {
	t.Helper()
	tdb := NewTestDB(t)
	db, log := tdb.DB, zap.NewNop()

	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })

	serializer := event.NewShopEventSerializer()
	txScope := persistence.NewGormTransactionScope(db, event.NewOutboxPublisher(serializer))
	users := persistence.NewGormUserRepository(db)

	return &shop{
		db:         tdb,
		serializer: serializer,
		users:      accountapp.NewUserService(users, txScope, auth.NewInMemoryTokenBlacklist(), time.Hour, log),
		addresses:  accountapp.NewAddressService(persistence.NewGormAddressRepository(db)),
		cart: cartapp.NewService(
			persistence.NewGormCartRepository(db),
			persistence.NewGormProductRepository(db),
			persistence.NewGormDiscountRepository(db),
			persistence.NewGormOfferRepository(db),
			persistence.NewGormCouponRepository(db),
			log,
		),
		order: orderapp.NewService(persistence.NewGormOrderRepository(db), txScope, log,
			orderapp.WithIdempotency(store, time.Hour),
		),
		wallet: walletapp.NewService(users, persistence.NewGormWalletRepository(db), txScope, log),
		messaging: messagingapp.NewService(
			persistence.NewGormMessageRepository(db),
			persistence.NewGormGroupRepository(db),
			persistence.NewGormDeviceRepository(db),
			users, notification.NewLogNotifier(log), txScope, log,
		),
		outbox: event.NewGormOutboxRepository(db),
	}
}

func (s *shop) customer(t *testing.T, email string) *accountapp.UserResponse {
	t.Helper()
	user, err := s.users.CreateUser(context.Background(), accountapp.CreateUserRequest{
		Email:    email,
		Password: "correct-horse-battery",
		FullName: "Test Customer",
	})
	require.NoError(t, err)
	require.NotNil(t, user.WalletID)
	return user
}

func TestCheckoutFlow(t *testing.T) {
	s := newShop(t)
	ctx := testutil.ContextWithTimeout(t, time.Minute)
	db := s.db.DB

	buyer := s.customer(t, "buyer@example.com")
	address, err := s.addresses.CreateAddress(ctx, buyer.ID, accountapp.CreateAddressRequest{
		Title: "Home", PostalCode: "10115", City: "Berlin", Street: "Invalidenstr. 1",
	})
	require.NoError(t, err)

	courier, err := shipment.NewShipmentType("Courier", "Next day", decimal.NewFromInt(10), decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormShipmentTypeRepository(db).Save(ctx, courier))

	lamp, err := catalog.NewProduct("Desk lamp", "", decimal.NewFromInt(40), 5)
	require.NoError(t, err)
	products := persistence.NewGormProductRepository(db)
	require.NoError(t, products.Save(ctx, lamp))

	_, err = s.cart.AddOrUpdateItem(ctx, cart.Owner{UserID: &buyer.ID}, cartapp.AddItemRequest{ProductID: lamp.ID, Quantity: 2})
	require.NoError(t, err)

	req := orderapp.PlaceOrderRequest{ShipmentTypeID: courier.ID, AddressID: address.ID, Note: "Ring twice"}
	placed, err := s.order.PlaceOrder(ctx, buyer.ID, "checkout-1", req)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(90).Equal(placed.TotalPrice), "got %s", placed.TotalPrice)
	require.Len(t, placed.Items, 1)

	_, err = s.order.PlaceOrder(ctx, buyer.ID, "checkout-1", req)
	assert.ErrorIs(t, err, shared.ErrDuplicateRequest)
	assert.Equal(t, int64(1), s.db.Count("orders", "user_id = ?", buyer.ID))

	stocked, err := products.FindByID(ctx, lamp.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stocked.Stock)
	assert.Equal(t, int64(1), s.db.Count("outbox_events", "event_type = ?", order.EventTypeOrderPlaced))

	// Deliver the outbox to the messaging handler
	bus := event.NewInMemoryEventBus(zap.NewNop())
	recorder := testutil.NewEventRecorder(order.EventTypeOrderPlaced)
	bus.Subscribe(recorder)
	bus.Subscribe(messagingapp.NewOrderPlacedHandler(s.messaging))
	require.NoError(t, bus.Start(ctx))

	processor := event.NewOutboxProcessor(s.outbox, bus, s.serializer,
		event.RelayConfig{PollInterval: 50 * time.Millisecond}, zap.NewNop())
	require.NoError(t, processor.Start(ctx))
	t.Cleanup(func() {
		_ = processor.Stop(context.Background())
		_ = bus.Stop(context.Background())
	})

	events := recorder.WaitFor(t, order.EventTypeOrderPlaced, 1, 10*time.Second)
	assert.Equal(t, placed.ID, events[0].AggregateID())

	testutil.RequireEventually(t, func() bool {
		inbox, err := s.messaging.ListInbox(ctx, buyer.ID, shared.Filter{})
		return err == nil && inbox.Total == 1 && inbox.Items[0].Title == "Order received"
	}, 10*time.Second, "order message never reached the inbox")

	testutil.RequireEventually(t, func() bool {
		counts, err := s.outbox.CountByStatus(ctx)
		return err == nil && counts[shared.OutboxStatusSent] >= 1
	}, 10*time.Second, "outbox entries were not marked sent")
}

func TestWalletTransfer_ConcurrentOverdraw(t *testing.T) {
	s := newShop(t)
	ctx := testutil.ContextWithTimeout(t, time.Minute)

	payer := s.customer(t, "payer@example.com")
	payee := s.customer(t, "payee@example.com")

	_, err := s.wallet.Deposit(ctx, *payer.WalletID, walletapp.AdjustRequest{Amount: decimal.NewFromInt(100)})
	require.NoError(t, err)

	const attempts = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		short     int
	)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.wallet.Transfer(ctx, payer.ID, "", walletapp.TransferRequest{
				ToUserID: &payee.ID,
				Amount:   decimal.NewFromInt(20),
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, shared.ErrInsufficientBalance):
				short++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded)
	assert.Equal(t, attempts-5, short)

	payerBalance, err := s.wallet.GetBalance(ctx, payer.ID)
	require.NoError(t, err)
	assert.True(t, payerBalance.CurrentBalance.IsZero(), "payer has %s", payerBalance.CurrentBalance)

	payeeBalance, err := s.wallet.GetBalance(ctx, payee.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(payeeBalance.CurrentBalance), "payee has %s", payeeBalance.CurrentBalance)

	assert.Equal(t, int64(5), s.db.Count("outbox_events", "event_type = ?", wallet.EventTypeTransferCompleted))
}

func TestMigrations_RoundTrip(t *testing.T) {
	tdb := NewTestDB(t)
	require.Contains(t, tdb.Tables(), "outbox_events")

	tdb.Migrator(func(m *migration.Migrator) {
		status, err := m.Status()
		require.NoError(t, err)
		assert.Equal(t, status.Latest, status.Current)
		assert.False(t, status.Dirty)
		assert.Empty(t, status.Pending)

		require.NoError(t, m.Down())
		status, err = m.Status()
		require.NoError(t, err)
		assert.Zero(t, status.Current)
		assert.NotEmpty(t, status.Pending)
	})
	assert.Empty(t, tdb.Tables())

	tdb.Migrator(func(m *migration.Migrator) {
		require.NoError(t, m.Up())
		version, dirty, err := m.Version()
		require.NoError(t, err)
		assert.NotZero(t, version)
		assert.False(t, dirty)
	})
	assert.Contains(t, tdb.Tables(), "users")

	// the schema is usable after a full rebuild
	id := uuid.New()
	require.NoError(t, tdb.DB.Exec(
		`INSERT INTO shipment_types (id, title, description, price, vat, is_active, created_at, updated_at)
		 VALUES (?, 'Pickup', '', 0, 0, true, NOW(), NOW())`, id).Error)
	assert.Equal(t, int64(1), tdb.Count("shipment_types", "id = ?", id))
}

func TestCheckout_FailedCouponInsertKeepsOrder(t *testing.T) {
	s := newShop(t)
	ctx := testutil.ContextWithTimeout(t, time.Minute)
	db := s.db.DB

	buyer := s.customer(t, "saver@example.com")
	address, err := s.addresses.CreateAddress(ctx, buyer.ID, accountapp.CreateAddressRequest{
		Title: "Home", PostalCode: "10115", City: "Berlin", Street: "Invalidenstr. 1",
	})
	require.NoError(t, err)
	courier, err := shipment.NewShipmentType("Courier", "", decimal.NewFromInt(10), decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormShipmentTypeRepository(db).Save(ctx, courier))
	lamp, err := catalog.NewProduct("Desk lamp", "", decimal.NewFromInt(40), 5)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormProductRepository(db).Save(ctx, lamp))
	coupon, err := promotion.NewCoupon("Ten off", "TEN", promotion.CouponTypeAmount, decimal.NewFromInt(10), 5)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormCouponRepository(db).Save(ctx, coupon))

	_, err = s.cart.AddOrUpdateItem(ctx, cart.Owner{UserID: &buyer.ID}, cartapp.AddItemRequest{ProductID: lamp.ID, Quantity: 2})
	require.NoError(t, err)

	// existing rows pass, every new use is rejected
	require.NoError(t, db.Exec(`ALTER TABLE coupon_consumes
		ADD CONSTRAINT chk_coupon_consumes_closed CHECK (user_id IS NULL) NOT VALID`).Error)

	placed, err := s.order.PlaceOrder(ctx, buyer.ID, "", orderapp.PlaceOrderRequest{
		ShipmentTypeID: courier.ID, AddressID: address.ID, CouponCode: "TEN",
	})
	require.NoError(t, err)
	assert.Nil(t, placed.CouponID)
	assert.True(t, placed.CouponTotalDiscount.IsZero())
	assert.True(t, decimal.NewFromInt(90).Equal(placed.TotalPrice), "got %s", placed.TotalPrice)
	assert.Zero(t, s.db.Count("coupon_consumes", "coupon_id = ?", coupon.ID))
	assert.Equal(t, int64(1), s.db.Count("orders", "user_id = ?", buyer.ID))
}

func TestSchema_RejectsInvalidRows(t *testing.T) {
	tdb := NewTestDB(t)
	db := tdb.DB

	orphan := uuid.New()
	assert.Error(t, db.Exec(`INSERT INTO carts (id, created_at, updated_at) VALUES (?, NOW(), NOW())`, orphan).Error,
		"a cart needs a user or a session")
	assert.Zero(t, tdb.Count("carts", "id = ?", orphan))

	cartID := uuid.New()
	require.NoError(t, db.Exec(`INSERT INTO carts (id, session_id, created_at, updated_at) VALUES (?, 'guest-1', NOW(), NOW())`, cartID).Error)
	assert.Error(t, db.Exec(`INSERT INTO cart_items (id, cart_id, product_id, quantity, created_at, updated_at)
		VALUES (?, ?, ?, 0, NOW(), NOW())`, uuid.New(), cartID, uuid.New()).Error)

	assert.Error(t, db.Exec(`INSERT INTO products (id, title, slug, price, stock, is_active, created_at, updated_at)
		VALUES (?, 'Lamp', 'lamp', 10, -1, true, NOW(), NOW())`, uuid.New()).Error)

	assert.Error(t, db.Exec(`INSERT INTO coupons (id, title, code, total, is_active, created_at, updated_at)
		VALUES (?, 'Promo', 'ZERO', 0, true, NOW(), NOW())`, uuid.New()).Error)

	offerID := uuid.New()
	require.NoError(t, db.Exec(`INSERT INTO product_offers (id, title, active_from, active_until, is_active, created_at, updated_at)
		VALUES (?, 'Spring', NOW(), NOW() + INTERVAL '1 day', true, NOW(), NOW())`, offerID).Error)
	assert.Error(t, db.Exec(`INSERT INTO product_offer_items (id, offer_id, product_id, sold_stock, is_active)
		VALUES (?, ?, ?, -1, true)`, uuid.New(), offerID, uuid.New()).Error)
}
