package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/application/pricing"
	apppromotion "github.com/shop/backend/internal/application/promotion"
	"github.com/shop/backend/internal/domain/cart"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/cms"
	"github.com/shop/backend/internal/domain/promotion"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service manages the carts of users and anonymous sessions
type Service struct {
	cartRepo    cart.Repository
	productRepo catalog.ProductRepository
	couponRepo  promotion.CouponRepository
	pricing     pricing.Source
	now         func() time.Time
	logger      *zap.Logger
}

// NewService creates a new cart Service
func NewService(
	cartRepo cart.Repository,
	productRepo catalog.ProductRepository,
	discountRepo catalog.DiscountRepository,
	offerRepo cms.OfferRepository,
	couponRepo promotion.CouponRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		couponRepo:  couponRepo,
		pricing:     pricing.Source{Discounts: discountRepo, Offers: offerRepo},
		now:         time.Now,
		logger:      logger,
	}
}

// GetCart returns the latest cart of the user or the session, creating
// one when neither owns a cart yet
func (s *Service) GetCart(ctx context.Context, owner cart.Owner) (*cart.Cart, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	c, err := s.cartRepo.FindLatest(ctx, owner)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	c, err = cart.NewCart(owner)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddOrUpdateItem sets the quantity of a product in the cart. Nothing is
// stored and nil is returned when the product is out of stock.
func (s *Service) AddOrUpdateItem(ctx context.Context, owner cart.Owner, req AddItemRequest) (*cart.Item, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, shared.ErrNotFound
	}
	if product.AvailableQuantity(req.Quantity) == 0 {
		return nil, nil
	}

	c, err := s.GetCart(ctx, owner)
	if err != nil {
		return nil, err
	}
	item, err := s.cartRepo.FindItem(ctx, c.ID, product.ID)
	switch {
	case err == nil:
		if err := item.SetQuantity(req.Quantity); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		item, err = cart.NewItem(c.ID, product.ID, req.Quantity)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.cartRepo.SaveItem(ctx, item); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Touch(ctx, c.ID); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes the line of a product and reports whether it existed
func (s *Service) RemoveItem(ctx context.Context, owner cart.Owner, productID uuid.UUID) (bool, error) {
	c, err := s.GetCart(ctx, owner)
	if err != nil {
		return false, err
	}
	removed, err := s.cartRepo.DeleteItem(ctx, c.ID, productID)
	if err != nil {
		return false, err
	}
	if removed {
		return true, s.cartRepo.Touch(ctx, c.ID)
	}
	return false, nil
}

// ListItems returns the priced lines of the cart
func (s *Service) ListItems(ctx context.Context, owner cart.Owner) ([]ItemResponse, error) {
	c, err := s.GetCart(ctx, owner)
	if err != nil {
		return nil, err
	}
	lines, err := s.priceCart(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	out := make([]ItemResponse, len(lines))
	for i, l := range lines {
		out[i] = toItemResponse(l)
	}
	return out, nil
}

// ItemCount sums the quantities in the cart
func (s *Service) ItemCount(ctx context.Context, owner cart.Owner) (int, error) {
	c, err := s.GetCart(ctx, owner)
	if err != nil {
		return 0, err
	}
	items, err := s.cartRepo.ListItems(ctx, c.ID)
	if err != nil {
		return 0, err
	}
	return cart.ItemCount(items), nil
}

// QuantityOf returns how many units of a product are in the cart
func (s *Service) QuantityOf(ctx context.Context, owner cart.Owner, productID uuid.UUID) (int, error) {
	c, err := s.GetCart(ctx, owner)
	if err != nil {
		return 0, err
	}
	item, err := s.cartRepo.FindItem(ctx, c.ID, productID)
	if errors.Is(err, shared.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return item.Quantity, nil
}

// SyncQuantities lowers every line to the stock on hand. Lines of sold
// out products are removed.
func (s *Service) SyncQuantities(ctx context.Context, owner cart.Owner) error {
	c, err := s.GetCart(ctx, owner)
	if err != nil {
		return err
	}
	items, products, err := s.load(ctx, c.ID)
	if err != nil {
		return err
	}
	for i := range items {
		item := &items[i]
		product, ok := products[item.ProductID]
		if !ok {
			continue
		}
		if product.Stock >= item.Quantity {
			continue
		}
		if product.Stock <= 0 {
			if _, err := s.cartRepo.DeleteItem(ctx, c.ID, item.ProductID); err != nil {
				return err
			}
			continue
		}
		if err := item.SetQuantity(product.Stock); err != nil {
			return err
		}
		if err := s.cartRepo.SaveItem(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

// Clear empties the cart
func (s *Service) Clear(ctx context.Context, owner cart.Owner) error {
	c, err := s.GetCart(ctx, owner)
	if err != nil {
		return err
	}
	return s.cartRepo.Clear(ctx, c.ID)
}

// Totals prices the cart. A coupon that fails validation is ignored.
func (s *Service) Totals(ctx context.Context, owner cart.Owner, couponCode string) (*CartResponse, error) {
	c, err := s.GetCart(ctx, owner)
	if err != nil {
		return nil, err
	}
	lines, err := s.priceCart(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	totals := pricing.Summarize(lines)
	if couponCode != "" {
		totals = s.withCoupon(ctx, owner, totals, couponCode)
	}

	items := make([]ItemResponse, len(lines))
	count := 0
	for i, l := range lines {
		items[i] = toItemResponse(l)
		count += l.Quantity
	}
	return &CartResponse{
		ID:        c.ID,
		Items:     items,
		ItemCount: count,
		Totals:    ToTotalsResponse(totals),
	}, nil
}

// DiscountedTotal is the cart total after product discounts and offers
func (s *Service) DiscountedTotal(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	c, err := s.GetCart(ctx, cart.Owner{UserID: &userID})
	if err != nil {
		return decimal.Zero, err
	}
	lines, err := s.priceCart(ctx, c.ID)
	if err != nil {
		return decimal.Zero, err
	}
	return pricing.Summarize(lines).TotalPrice, nil
}

func (s *Service) withCoupon(ctx context.Context, owner cart.Owner, totals cart.Totals, code string) cart.Totals {
	coupon, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil {
		return totals
	}
	userID := uuid.Nil
	if owner.UserID != nil {
		userID = *owner.UserID
	}
	if err := apppromotion.Check(ctx, s.couponRepo, coupon, userID, totals.TotalPrice, s.now()); err != nil {
		s.logger.Debug("Coupon ignored for cart totals", zap.String("code", code), zap.Error(err))
		return totals
	}
	return pricing.ApplyCoupon(totals, coupon)
}

func (s *Service) priceCart(ctx context.Context, cartID uuid.UUID) ([]pricing.Line, error) {
	items, products, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	reqs := make([]pricing.Request, 0, len(items))
	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok || !product.IsActive {
			continue
		}
		reqs = append(reqs, pricing.Request{Product: product, Quantity: item.Quantity})
	}
	return s.pricing.Price(ctx, reqs, s.now())
}

func (s *Service) load(ctx context.Context, cartID uuid.UUID) ([]cart.Item, map[uuid.UUID]*catalog.Product, error) {
	items, err := s.cartRepo.ListItems(ctx, cartID)
	if err != nil {
		return nil, nil, err
	}
	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return items, byID, nil
}
