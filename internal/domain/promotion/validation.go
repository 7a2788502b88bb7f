package promotion

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Usage is what the store knows about how a coupon was used so far
type Usage struct {
	TotalConsumed int64
	UsedByUser    bool
}

// ValidateCoupon checks whether userID may apply coupon to a cart worth cartTotal.
// The checks run in a fixed order and the first failure is returned.
func ValidateCoupon(coupon *Coupon, userID uuid.UUID, cartTotal decimal.Decimal, usage Usage, now time.Time) error {
	if coupon == nil {
		return ErrInvalidCoupon
	}
	if coupon.ValidUntil != nil && now.After(*coupon.ValidUntil) {
		return ErrCouponExpired
	}
	if coupon.ValidFrom != nil && now.Before(*coupon.ValidFrom) {
		return ErrCouponNotYetValid
	}
	if usage.TotalConsumed >= int64(coupon.Total) {
		return ErrCouponUsageLimit
	}
	if usage.UsedByUser {
		return ErrCouponAlreadyUsed
	}
	if !coupon.IsActive {
		return ErrCouponInactive
	}
	if !coupon.IsEligible(userID) {
		return ErrCouponNotEligible
	}
	if coupon.MinCart != nil && cartTotal.LessThan(*coupon.MinCart) {
		return ErrCouponMinCart
	}
	return nil
}
