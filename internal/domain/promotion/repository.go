package promotion

import (
	"context"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
)

// CouponRepository persists coupons and their consumes
type CouponRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Coupon, error)
	FindByCode(ctx context.Context, code string) (*Coupon, error)
	// FindByIDForUpdate loads the coupon and locks its row until the transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Coupon, error)
	List(ctx context.Context, filter shared.Filter) ([]Coupon, int64, error)
	Save(ctx context.Context, coupon *Coupon) error
	Usage(ctx context.Context, couponID, userID uuid.UUID) (Usage, error)
	SaveConsume(ctx context.Context, consume *CouponConsume) error
}
