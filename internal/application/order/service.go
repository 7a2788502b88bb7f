package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/application/pricing"
	apppromotion "github.com/shop/backend/internal/application/promotion"
	appshared "github.com/shop/backend/internal/application/shared"
	"github.com/shop/backend/internal/domain/cart"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/cms"
	"github.com/shop/backend/internal/domain/order"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var errEmptyCart = shared.NewDomainError("EMPTY_CART", "Your cart is empty")

// PlacementObserver is notified of every committed order and of customer
// cancellations
type PlacementObserver interface {
	RecordOrderPlaced(ctx context.Context, total float64, couponDropped bool)
	RecordOrderCanceled(ctx context.Context)
}

// Service places orders and drives their lifecycle
type Service struct {
	orderRepo      order.Repository
	txScope        appshared.TransactionScope
	shippingDelay  time.Duration
	idempotency    shared.IdempotencyStore
	idempotencyTTL time.Duration
	observer       PlacementObserver
	now            func() time.Time
	logger         *zap.Logger
}

// Option configures a Service
type Option func(*Service)

// WithIdempotency enables Idempotency-Key handling for order placement
func WithIdempotency(store shared.IdempotencyStore, ttl time.Duration) Option {
	return func(s *Service) {
		s.idempotency = store
		s.idempotencyTTL = ttl
	}
}

// WithPlacementObserver registers an observer for committed orders
func WithPlacementObserver(o PlacementObserver) Option {
	return func(s *Service) { s.observer = o }
}

// WithShippingDelay sets how long after placement an order ships
func WithShippingDelay(d time.Duration) Option {
	return func(s *Service) { s.shippingDelay = d }
}

// NewService creates a new order Service
func NewService(orderRepo order.Repository, txScope appshared.TransactionScope, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		orderRepo:      orderRepo,
		txScope:        txScope,
		shippingDelay:  72 * time.Hour,
		idempotencyTTL: 24 * time.Hour,
		now:            time.Now,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceOrder turns the user's cart into an order. Everything runs in one
// transaction: stock, offer sales, coupon usage, the order and the emptied
// cart are committed together or not at all.
func (s *Service) PlaceOrder(ctx context.Context, userID uuid.UUID, idempotencyKey string, req PlaceOrderRequest) (_ *OrderResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, "order", "place", attribute.String("user_id", userID.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	var (
		placed        *order.Order
		couponDropped bool
	)
	key := ""
	if idempotencyKey != "" {
		key = "order-place:" + userID.String() + ":" + idempotencyKey
	}

	err = appshared.RunOnce(ctx, s.idempotency, key, s.idempotencyTTL, func() error {
		return s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
			o, dropped, err := s.place(ctx, repos, userID, req)
			if err != nil {
				return err
			}
			placed, couponDropped = o, dropped
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if s.observer != nil {
		total, _ := placed.TotalPrice.Float64()
		s.observer.RecordOrderPlaced(ctx, total, couponDropped)
	}
	s.logger.Info("Order placed",
		zap.String("order_id", placed.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("total", placed.TotalPrice.String()),
		zap.Int("items", placed.ItemCount()),
		zap.Bool("coupon_dropped", couponDropped),
	)
	resp := ToOrderResponse(placed)
	return &resp, nil
}

func (s *Service) place(ctx context.Context, repos appshared.TransactionalRepositories, userID uuid.UUID, req PlaceOrderRequest) (*order.Order, bool, error) {
	now := s.now()

	st, err := repos.ShipmentTypeRepo().FindByID(ctx, req.ShipmentTypeID)
	if err != nil {
		return nil, false, err
	}
	if !st.IsActive {
		return nil, false, shared.ErrNotFound
	}
	address, err := repos.AddressRepo().FindByID(ctx, req.AddressID)
	if err != nil {
		return nil, false, err
	}
	if !address.BelongsTo(userID) {
		return nil, false, shared.ErrNotFound
	}

	c, err := repos.CartRepo().FindLatest(ctx, cart.Owner{UserID: &userID})
	if errors.Is(err, shared.ErrNotFound) {
		return nil, false, errEmptyCart
	}
	if err != nil {
		return nil, false, err
	}
	cartItems, err := repos.CartRepo().ListItems(ctx, c.ID)
	if err != nil {
		return nil, false, err
	}
	if len(cartItems) == 0 {
		return nil, false, errEmptyCart
	}

	reqs, err := lockedRequests(ctx, repos.ProductRepo(), cartItems)
	if err != nil {
		return nil, false, err
	}
	src := pricing.Source{Discounts: repos.DiscountRepo(), Offers: repos.OfferRepo(), LockOffers: true}
	lines, err := src.Price(ctx, reqs, now)
	if err != nil {
		return nil, false, err
	}
	totals := pricing.Summarize(lines)

	o, err := order.NewOrder(userID, address.ID, req.Note)
	if err != nil {
		return nil, false, err
	}

	o.SetPricing(totals.ProductTotalPrice, totals.ProductTotalDiscount, totals.CouponTotalDiscount, st.Price, nil)
	dropped := false
	if req.CouponCode != "" {
		dropped = !s.applyCoupon(ctx, repos, o, userID, req.CouponCode, totals, now)
	}

	products := make([]*catalog.Product, 0, len(lines))
	var soldOnOffer []*cms.ProductOfferItem
	for _, l := range lines {
		if _, err := o.AddItem(l.Product.ID, l.Product.Title, l.Product.Price, l.Quantity, l.Quote.TotalWithDiscount); err != nil {
			return nil, false, err
		}
		if err := l.Product.DecreaseStock(l.Quantity); err != nil {
			return nil, false, err
		}
		products = append(products, l.Product)
		for i := range l.OfferItems {
			item := &l.OfferItems[i]
			if !item.IsLive() {
				continue
			}
			if item.Consume(l.Quantity) > 0 {
				soldOnOffer = append(soldOnOffer, item)
			}
		}
	}

	o.Ship(st.ID, now.Add(s.shippingDelay), st.TotalPrice())
	if err := o.Place(now); err != nil {
		return nil, false, err
	}

	if err := repos.OrderRepo().Create(ctx, o); err != nil {
		return nil, false, err
	}
	if err := repos.ProductRepo().UpdateStock(ctx, products); err != nil {
		return nil, false, err
	}
	if len(soldOnOffer) > 0 {
		if err := repos.OfferRepo().UpdateSoldStock(ctx, soldOnOffer); err != nil {
			return nil, false, err
		}
	}
	if err := repos.CartRepo().Clear(ctx, c.ID); err != nil {
		return nil, false, err
	}
	if err := repos.Outbox().Append(ctx, o.PullDomainEvents()...); err != nil {
		return nil, false, err
	}
	return o, dropped, nil
}

// applyCoupon prices the order with the coupon and records one use of it.
// The use is written behind a savepoint so a failed insert leaves the
// order transaction usable. A coupon that cannot be used is dropped from
// the order and false is returned.
func (s *Service) applyCoupon(ctx context.Context, repos appshared.TransactionalRepositories, o *order.Order, userID uuid.UUID, code string, totals cart.Totals, now time.Time) bool {
	coupon, err := repos.CouponRepo().FindByCode(ctx, code)
	if err == nil {
		priced := pricing.ApplyCoupon(totals, coupon)
		o.SetPricing(priced.ProductTotalPrice, priced.ProductTotalDiscount, priced.CouponTotalDiscount, o.ShipmentPrice, priced.CouponID)
		err = repos.Savepoint("coupon_consume", func() error {
			return apppromotion.Consume(ctx, repos.CouponRepo(), coupon.ID, userID, totals.TotalPrice, now)
		})
	}
	if err != nil {
		s.logger.Info("Coupon dropped from order", zap.String("code", code), zap.Error(err))
		o.DropCoupon()
		return false
	}
	return true
}

// lockedRequests loads the cart products with their rows locked and caps
// every line at the stock on hand. Sold out lines are skipped.
func lockedRequests(ctx context.Context, products catalog.ProductRepository, items []cart.Item) ([]pricing.Request, error) {
	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}
	locked, err := products.FindByIDsForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(locked))
	for i := range locked {
		byID[locked[i].ID] = &locked[i]
	}

	reqs := make([]pricing.Request, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok || !product.IsActive {
			continue
		}
		available := product.AvailableQuantity(item.Quantity)
		if available == 0 {
			continue
		}
		reqs = append(reqs, pricing.Request{Product: product, Quantity: available})
	}
	return reqs, nil
}

// GetOrder returns one of the user's orders
func (s *Service) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, shared.ErrNotFound
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// ListOrders returns the user's orders, newest first
func (s *Service) ListOrders(ctx context.Context, userID uuid.UUID, filter shared.Filter) (shared.Paginated[OrderResponse], error) {
	orders, total, err := s.orderRepo.ListByUser(ctx, userID, filter)
	if err != nil {
		return shared.Paginated[OrderResponse]{}, err
	}
	return shared.NewPaginated(toResponses(orders), total, filter.Page, filter.PageSize), nil
}

// ListAllOrders returns every order, optionally narrowed to a status name
func (s *Service) ListAllOrders(ctx context.Context, status string, filter shared.Filter) (shared.Paginated[OrderResponse], error) {
	var statusFilter *order.Status
	if status != "" {
		parsed, ok := order.ParseStatus(status)
		if !ok {
			return shared.Paginated[OrderResponse]{}, shared.NewDomainError("INVALID_STATUS", "Unknown order status "+status)
		}
		statusFilter = &parsed
	}
	orders, total, err := s.orderRepo.List(ctx, statusFilter, filter)
	if err != nil {
		return shared.Paginated[OrderResponse]{}, err
	}
	return shared.NewPaginated(toResponses(orders), total, filter.Page, filter.PageSize), nil
}

// UpdateStatus moves an order to another status on behalf of staff
func (s *Service) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	status, ok := order.ParseStatus(req.Status)
	if !ok {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown order status "+req.Status)
	}
	return s.transition(ctx, orderID, func(o *order.Order) error {
		return o.UpdateStatus(status)
	})
}

// Cancel cancels one of the user's orders while it has not been packed yet
func (s *Service) Cancel(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	resp, err := s.transition(ctx, orderID, func(o *order.Order) error {
		if o.UserID != userID {
			return shared.ErrNotFound
		}
		return o.Cancel(userID)
	})
	if err == nil && s.observer != nil {
		s.observer.RecordOrderCanceled(ctx)
	}
	return resp, err
}

func (s *Service) transition(ctx context.Context, orderID uuid.UUID, change func(*order.Order) error) (*OrderResponse, error) {
	var changed *order.Order
	err := s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := change(o); err != nil {
			return err
		}
		if err := repos.OrderRepo().UpdateStatus(ctx, o); err != nil {
			return err
		}
		if err := repos.Outbox().Append(ctx, o.PullDomainEvents()...); err != nil {
			return err
		}
		changed = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Order status changed",
		zap.String("order_id", changed.ID.String()),
		zap.String("status", changed.CurrentStatus.String()),
	)
	resp := ToOrderResponse(changed)
	return &resp, nil
}

func toResponses(orders []order.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
	}
	return out
}
