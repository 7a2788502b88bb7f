package promotion

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/promotion"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartTotaler prices the caller's cart before any coupon
type CartTotaler interface {
	DiscountedTotal(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}

// RejectionObserver is told about every refused coupon
type RejectionObserver interface {
	RecordCouponRejected(ctx context.Context, code string)
}

// Service manages coupons
type Service struct {
	couponRepo promotion.CouponRepository
	carts      CartTotaler
	observer   RejectionObserver
	now        func() time.Time
	logger     *zap.Logger
}

// NewService creates a new coupon Service. carts may be nil when
// ApplyCoupon is not used.
func NewService(couponRepo promotion.CouponRepository, carts CartTotaler, observer RejectionObserver, logger *zap.Logger) *Service {
	return &Service{
		couponRepo: couponRepo,
		carts:      carts,
		observer:   observer,
		now:        time.Now,
		logger:     logger,
	}
}

// CreateCoupon creates a coupon
func (s *Service) CreateCoupon(ctx context.Context, req CreateCouponRequest) (*CouponResponse, error) {
	coupon, err := promotion.NewCoupon(req.Title, req.Code, promotion.CouponType(req.Type), req.Amount, req.Total)
	if err != nil {
		return nil, err
	}
	if err := coupon.SetWindow(req.ValidFrom, req.ValidUntil); err != nil {
		return nil, err
	}
	if err := coupon.SetLimits(req.MinCart, req.MaxDiscountTotal); err != nil {
		return nil, err
	}
	if len(req.EligibleUserIDs) > 0 {
		coupon.EligibleUserIDs = req.EligibleUserIDs
	}

	if _, err := s.couponRepo.FindByCode(ctx, coupon.Code); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A coupon with this code already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if err := s.couponRepo.Save(ctx, coupon); err != nil {
		return nil, err
	}
	s.logger.Info("Coupon created", zap.String("coupon_id", coupon.ID.String()), zap.String("code", coupon.Code))
	resp := ToCouponResponse(coupon)
	return &resp, nil
}

// GetCouponByCode returns a coupon by its code
func (s *Service) GetCouponByCode(ctx context.Context, code string) (*CouponResponse, error) {
	coupon, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	resp := ToCouponResponse(coupon)
	return &resp, nil
}

// GetCouponByID returns a coupon by its id
func (s *Service) GetCouponByID(ctx context.Context, id uuid.UUID) (*CouponResponse, error) {
	coupon, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCouponResponse(coupon)
	return &resp, nil
}

// ListCoupons returns a page of coupons
func (s *Service) ListCoupons(ctx context.Context, filter shared.Filter) (shared.Paginated[CouponResponse], error) {
	coupons, total, err := s.couponRepo.List(ctx, filter)
	if err != nil {
		return shared.Paginated[CouponResponse]{}, err
	}
	items := make([]CouponResponse, len(coupons))
	for i := range coupons {
		items[i] = ToCouponResponse(&coupons[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// DeactivateCoupon switches a coupon off
func (s *Service) DeactivateCoupon(ctx context.Context, id uuid.UUID) error {
	coupon, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	coupon.Deactivate()
	return s.couponRepo.Save(ctx, coupon)
}

// ApplyCoupon validates code against the user's current cart and returns
// the discounted total. Nothing is recorded.
func (s *Service) ApplyCoupon(ctx context.Context, userID uuid.UUID, req ApplyCouponRequest) (*ApplyCouponResponse, error) {
	cartTotal, err := s.carts.DiscountedTotal(ctx, userID)
	if err != nil {
		return nil, err
	}
	coupon, err := s.findForUse(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if err := Check(ctx, s.couponRepo, coupon, userID, cartTotal, s.now()); err != nil {
		s.rejected(ctx, req.Code, err)
		return nil, err
	}
	discount := coupon.Discount(cartTotal)
	return &ApplyCouponResponse{
		CouponID:       coupon.ID,
		CartTotal:      cartTotal,
		CouponDiscount: discount,
		TotalPrice:     cartTotal.Sub(discount),
	}, nil
}

// ConsumeCoupon validates the coupon for total and records one use by userID
func (s *Service) ConsumeCoupon(ctx context.Context, userID, couponID uuid.UUID, total decimal.Decimal) error {
	return Consume(ctx, s.couponRepo, couponID, userID, total, s.now())
}

func (s *Service) findForUse(ctx context.Context, code string) (*promotion.Coupon, error) {
	coupon, err := s.couponRepo.FindByCode(ctx, code)
	if errors.Is(err, shared.ErrNotFound) {
		s.rejected(ctx, code, promotion.ErrInvalidCoupon)
		return nil, promotion.ErrInvalidCoupon
	}
	return coupon, err
}

func (s *Service) rejected(ctx context.Context, code string, reason error) {
	s.logger.Info("Coupon rejected", zap.String("code", code), zap.Error(reason))
	if s.observer != nil {
		s.observer.RecordCouponRejected(ctx, code)
	}
}

// Check runs the coupon rules for userID against cartTotal
func Check(ctx context.Context, repo promotion.CouponRepository, coupon *promotion.Coupon, userID uuid.UUID, cartTotal decimal.Decimal, now time.Time) error {
	if coupon == nil {
		return promotion.ErrInvalidCoupon
	}
	usage, err := repo.Usage(ctx, coupon.ID, userID)
	if err != nil {
		return err
	}
	return promotion.ValidateCoupon(coupon, userID, cartTotal, usage, now)
}

// Consume locks the coupon row, validates it and records the use. repo
// should be bound to the caller's transaction.
func Consume(ctx context.Context, repo promotion.CouponRepository, couponID, userID uuid.UUID, total decimal.Decimal, now time.Time) error {
	coupon, err := repo.FindByIDForUpdate(ctx, couponID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return promotion.ErrInvalidCoupon
		}
		return err
	}
	if err := Check(ctx, repo, coupon, userID, total, now); err != nil {
		return err
	}
	return repo.SaveConsume(ctx, promotion.NewCouponConsume(coupon.ID, userID))
}
