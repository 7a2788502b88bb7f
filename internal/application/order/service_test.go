package order

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/account"
	"github.com/shop/backend/internal/domain/cart"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/cms"
	"github.com/shop/backend/internal/domain/order"
	"github.com/shop/backend/internal/domain/promotion"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/shipment"
	"github.com/shop/backend/internal/infrastructure/cache"
	"github.com/shop/backend/internal/infrastructure/event"
	"github.com/shop/backend/internal/infrastructure/persistence"
	"github.com/shop/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordingObserver struct {
	mu      sync.Mutex
	totals  []float64
	dropped []bool
	cancels int
}

func (o *recordingObserver) RecordOrderPlaced(_ context.Context, total float64, couponDropped bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.totals = append(o.totals, total)
	o.dropped = append(o.dropped, couponDropped)
}

func (o *recordingObserver) RecordOrderCanceled(context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cancels++
}

type fixture struct {
	db       *gorm.DB
	service  *Service
	observer *recordingObserver
	now      time.Time

	userID   uuid.UUID
	address  *account.Address
	shipment *shipment.ShipmentType
	cart     *cart.Cart
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })
	observer := &recordingObserver{}
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	scope := persistence.NewGormTransactionScope(db, event.NewOutboxPublisher(event.NewShopEventSerializer()))
	svc := NewService(persistence.NewGormOrderRepository(db), scope, zap.NewNop(),
		WithIdempotency(store, time.Hour),
		WithPlacementObserver(observer),
		WithShippingDelay(72*time.Hour),
	)
	svc.now = func() time.Time { return now }

	f := &fixture{db: db, service: svc, observer: observer, now: now, userID: uuid.New()}
	ctx := context.Background()

	address, err := account.NewAddress(f.userID, "Home", "12345", "Berlin", "Main St 1")
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormAddressRepository(db).Save(ctx, address))
	f.address = address

	st, err := shipment.NewShipmentType("Courier", "", decimal.NewFromInt(10), decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormShipmentTypeRepository(db).Save(ctx, st))
	f.shipment = st

	c, err := cart.NewCart(cart.Owner{UserID: &f.userID})
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormCartRepository(db).Save(ctx, c))
	f.cart = c
	return f
}

func (f *fixture) product(t *testing.T, title string, price int64, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(title, "", decimal.NewFromInt(price), stock)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormProductRepository(f.db).Save(context.Background(), p))
	return p
}

func (f *fixture) addToCart(t *testing.T, p *catalog.Product, qty int) {
	t.Helper()
	item, err := cart.NewItem(f.cart.ID, p.ID, qty)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormCartRepository(f.db).SaveItem(context.Background(), item))
}

func (f *fixture) coupon(t *testing.T, code string, amount int64, total int) *promotion.Coupon {
	t.Helper()
	c, err := promotion.NewCoupon("Promo "+code, code, promotion.CouponTypeAmount, decimal.NewFromInt(amount), total)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormCouponRepository(f.db).Save(context.Background(), c))
	return c
}

func hasCode(err error, code string) bool {
	de, ok := shared.AsDomainError(err)
	return ok && de.Code == code
}

func (f *fixture) request() PlaceOrderRequest {
	return PlaceOrderRequest{ShipmentTypeID: f.shipment.ID, AddressID: f.address.ID}
}

// seedCatalog stores a discounted kettle with a limited offer and a mug
// with less stock than the cart asks for
func (f *fixture) seedCatalog(t *testing.T) (kettle, mug *catalog.Product, offerItem *cms.ProductOfferItem) {
	t.Helper()
	ctx := context.Background()
	kettle = f.product(t, "Kettle", 100, 5)
	mug = f.product(t, "Mug", 20, 1)

	discount, err := catalog.NewProductDiscount(kettle.ID, catalog.DiscountTypePercent, decimal.NewFromInt(10), nil, nil)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormDiscountRepository(f.db).Save(ctx, discount))

	offer, err := cms.NewProductOffer("Spring", f.now.Add(-time.Hour), f.now.Add(24*time.Hour))
	require.NoError(t, err)
	stock := 2
	offerItem, err = offer.AddItem(kettle.ID, decimal.NewFromInt(20), &stock)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormOfferRepository(f.db).Save(ctx, offer))

	f.addToCart(t, kettle, 3)
	f.addToCart(t, mug, 2)
	return kettle, mug, offerItem
}

func TestService_PlaceOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kettle, mug, offerItem := f.seedCatalog(t)
	coupon := f.coupon(t, "THIRTY", 30, 5)

	req := f.request()
	req.CouponCode = "THIRTY"
	req.Note = "Leave at the door"
	resp, err := f.service.PlaceOrder(ctx, f.userID, "", req)
	require.NoError(t, err)

	assert.True(t, resp.ProductTotalPrice.Equal(decimal.NewFromInt(320)))
	assert.True(t, resp.ProductTotalDiscount.Equal(decimal.NewFromInt(50)))
	assert.True(t, resp.CouponTotalDiscount.Equal(decimal.NewFromInt(30)))
	assert.True(t, resp.ShipmentPrice.Equal(decimal.NewFromInt(10)))
	assert.True(t, resp.TotalPrice.Equal(decimal.NewFromInt(250)))
	require.NotNil(t, resp.CouponID)
	assert.Equal(t, coupon.ID, *resp.CouponID)
	assert.Equal(t, order.StatusOrderPlaced.String(), resp.CurrentStatus)

	require.NotNil(t, resp.Shipment)
	assert.True(t, resp.Shipment.Price.Equal(decimal.NewFromInt(11)))
	assert.Equal(t, f.now.Add(72*time.Hour), resp.Shipment.ShippingDate)

	require.Len(t, resp.Statuses, 7)
	assert.True(t, resp.Statuses[1].Active)
	assert.False(t, resp.Statuses[2].Active)

	stored, err := persistence.NewGormOrderRepository(f.db).FindByID(ctx, resp.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	lines := map[uuid.UUID]order.Item{}
	for _, item := range stored.Items {
		lines[item.ProductID] = item
	}
	assert.Equal(t, 3, lines[kettle.ID].Quantity)
	assert.True(t, lines[kettle.ID].Price.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, 1, lines[mug.ID].Quantity)
	assert.True(t, lines[mug.ID].Price.Equal(decimal.NewFromInt(20)))

	products, err := persistence.NewGormProductRepository(f.db).FindByIDs(ctx, []uuid.UUID{kettle.ID, mug.ID})
	require.NoError(t, err)
	for _, p := range products {
		switch p.ID {
		case kettle.ID:
			assert.Equal(t, 2, p.Stock)
		case mug.ID:
			assert.Zero(t, p.Stock)
		}
	}

	offers, err := persistence.NewGormOfferRepository(f.db).FindItemsByProductIDs(ctx, []uuid.UUID{kettle.ID})
	require.NoError(t, err)
	require.Len(t, offers[kettle.ID], 1)
	assert.Equal(t, offerItem.ID, offers[kettle.ID][0].ID)
	assert.Equal(t, 2, offers[kettle.ID][0].SoldStock)

	usage, err := persistence.NewGormCouponRepository(f.db).Usage(ctx, coupon.ID, f.userID)
	require.NoError(t, err)
	assert.True(t, usage.UsedByUser)

	items, err := persistence.NewGormCartRepository(f.db).ListItems(ctx, f.cart.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	stats, err := event.NewGormOutboxRepository(f.db).CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats[shared.OutboxStatusPending])
	assert.Equal(t, []float64{250}, f.observer.totals)
	assert.Equal(t, []bool{false}, f.observer.dropped)
}

func TestService_PlaceOrder_DropsUnusableCoupon(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kettle := f.product(t, "Kettle", 100, 5)

	coupon := f.coupon(t, "USED", 30, 5)
	require.NoError(t, persistence.NewGormCouponRepository(f.db).SaveConsume(ctx, promotion.NewCouponConsume(coupon.ID, f.userID)))

	for _, code := range []string{"USED", "MISSING"} {
		t.Run(code, func(t *testing.T) {
			f.addToCart(t, kettle, 1)
			req := f.request()
			req.CouponCode = code

			resp, err := f.service.PlaceOrder(ctx, f.userID, "", req)
			require.NoError(t, err)
			assert.Nil(t, resp.CouponID)
			assert.True(t, resp.CouponTotalDiscount.IsZero())
			assert.True(t, resp.TotalPrice.Equal(decimal.NewFromInt(110)))
		})
	}
	assert.Equal(t, []bool{true, true}, f.observer.dropped)
}

func TestService_PlaceOrder_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	foreign, err := account.NewAddress(uuid.New(), "Office", "54321", "Hamburg", "Dock 2")
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormAddressRepository(f.db).Save(ctx, foreign))

	_, err = f.service.PlaceOrder(ctx, f.userID, "", f.request())
	assert.True(t, hasCode(err, "EMPTY_CART"), "got %v", err)

	soldOut := f.product(t, "Sold Out", 10, 0)
	f.addToCart(t, soldOut, 1)
	_, err = f.service.PlaceOrder(ctx, f.userID, "", f.request())
	assert.True(t, hasCode(err, "EMPTY_CART"), "got %v", err)

	req := f.request()
	req.AddressID = foreign.ID
	_, err = f.service.PlaceOrder(ctx, f.userID, "", req)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	req = f.request()
	req.ShipmentTypeID = uuid.New()
	_, err = f.service.PlaceOrder(ctx, f.userID, "", req)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	stats, err := event.NewGormOutboxRepository(f.db).CountByStatus(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats[shared.OutboxStatusPending])
}

func TestService_PlaceOrder_IdempotencyKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kettle := f.product(t, "Kettle", 100, 5)
	f.addToCart(t, kettle, 1)

	_, err := f.service.PlaceOrder(ctx, f.userID, "key-1", f.request())
	require.NoError(t, err)

	f.addToCart(t, kettle, 1)
	_, err = f.service.PlaceOrder(ctx, f.userID, "key-1", f.request())
	assert.ErrorIs(t, err, shared.ErrDuplicateRequest)

	page, err := f.service.ListOrders(ctx, f.userID, shared.Filter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}

func TestService_OrderQueriesAndTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kettle := f.product(t, "Kettle", 100, 5)
	f.addToCart(t, kettle, 1)

	placed, err := f.service.PlaceOrder(ctx, f.userID, "", f.request())
	require.NoError(t, err)

	got, err := f.service.GetOrder(ctx, f.userID, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, got.ID)

	_, err = f.service.GetOrder(ctx, uuid.New(), placed.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	updated, err := f.service.UpdateStatus(ctx, placed.ID, UpdateStatusRequest{Status: "PRODUCT_PACKAGING"})
	require.NoError(t, err)
	assert.Equal(t, "PRODUCT_PACKAGING", updated.CurrentStatus)
	assert.True(t, updated.Statuses[2].Active)

	_, err = f.service.Cancel(ctx, f.userID, placed.ID)
	assert.True(t, hasCode(err, "INVALID_STATE"), "got %v", err)

	_, err = f.service.UpdateStatus(ctx, placed.ID, UpdateStatusRequest{Status: "LOST"})
	assert.True(t, hasCode(err, "INVALID_STATUS"), "got %v", err)

	page, err := f.service.ListAllOrders(ctx, "PRODUCT_PACKAGING", shared.Filter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	_, err = f.service.ListAllOrders(ctx, "LOST", shared.Filter{Page: 1, PageSize: 10})
	assert.Error(t, err)
}

func TestService_Cancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kettle := f.product(t, "Kettle", 100, 5)
	f.addToCart(t, kettle, 1)

	placed, err := f.service.PlaceOrder(ctx, f.userID, "", f.request())
	require.NoError(t, err)

	_, err = f.service.Cancel(ctx, uuid.New(), placed.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	canceled, err := f.service.Cancel(ctx, f.userID, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, "CANCELED", canceled.CurrentStatus)
	assert.Equal(t, 1, f.observer.cancels)

	_, err = f.service.UpdateStatus(ctx, placed.ID, UpdateStatusRequest{Status: "DELIVERED"})
	assert.True(t, hasCode(err, "INVALID_STATE"), "got %v", err)
}

func (f *fixture) count(t *testing.T, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Table(table).Count(&n).Error)
	return n
}

func TestService_PlaceOrder_CouponAbsorbsShipping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addToCart(t, f.product(t, "Pen", 50, 3), 1)
	f.coupon(t, "HUNDRED", 100, 5)

	req := f.request()
	req.CouponCode = "HUNDRED"
	resp, err := f.service.PlaceOrder(ctx, f.userID, "", req)
	require.NoError(t, err)

	assert.True(t, resp.CouponTotalDiscount.Equal(decimal.NewFromInt(100)), "got %s", resp.CouponTotalDiscount)
	assert.True(t, resp.TotalPrice.IsZero(), "got %s", resp.TotalPrice)
	require.NotNil(t, resp.CouponID)
}

func TestService_PlaceOrder_RollsBackOnFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kettle, mug, _ := f.seedCatalog(t)
	coupon := f.coupon(t, "THIRTY", 30, 5)

	// the order insert fails after the coupon use is recorded
	require.NoError(t, f.db.Exec("DROP TABLE order_statuses").Error)

	req := f.request()
	req.CouponCode = "THIRTY"
	_, err := f.service.PlaceOrder(ctx, f.userID, "", req)
	require.Error(t, err)

	products, err := persistence.NewGormProductRepository(f.db).FindByIDs(ctx, []uuid.UUID{kettle.ID, mug.ID})
	require.NoError(t, err)
	stock := map[uuid.UUID]int{}
	for _, p := range products {
		stock[p.ID] = p.Stock
	}
	assert.Equal(t, 5, stock[kettle.ID])
	assert.Equal(t, 1, stock[mug.ID])

	offers, err := persistence.NewGormOfferRepository(f.db).FindItemsByProductIDs(ctx, []uuid.UUID{kettle.ID})
	require.NoError(t, err)
	require.Len(t, offers[kettle.ID], 1)
	assert.Zero(t, offers[kettle.ID][0].SoldStock)

	usage, err := persistence.NewGormCouponRepository(f.db).Usage(ctx, coupon.ID, f.userID)
	require.NoError(t, err)
	assert.False(t, usage.UsedByUser)
	assert.Zero(t, f.count(t, "coupon_consumes"))

	items, err := persistence.NewGormCartRepository(f.db).ListItems(ctx, f.cart.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Zero(t, f.count(t, "orders"))
	assert.Zero(t, f.count(t, "outbox_events"))
	assert.Empty(t, f.observer.totals)
}

func TestService_PlaceOrder_FailedCouponInsertDropsCoupon(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addToCart(t, f.product(t, "Kettle", 100, 5), 1)
	f.coupon(t, "THIRTY", 30, 5)
	require.NoError(t, f.db.Exec(`CREATE TRIGGER reject_coupon_consume BEFORE INSERT ON coupon_consumes
		BEGIN SELECT RAISE(ABORT, 'coupon consumes closed'); END`).Error)

	req := f.request()
	req.CouponCode = "THIRTY"
	resp, err := f.service.PlaceOrder(ctx, f.userID, "", req)
	require.NoError(t, err)

	assert.Nil(t, resp.CouponID)
	assert.True(t, resp.CouponTotalDiscount.IsZero())
	assert.True(t, resp.TotalPrice.Equal(decimal.NewFromInt(110)), "got %s", resp.TotalPrice)
	assert.Zero(t, f.count(t, "coupon_consumes"))
	assert.Equal(t, int64(1), f.count(t, "orders"))
	assert.Equal(t, []bool{true}, f.observer.dropped)
}
