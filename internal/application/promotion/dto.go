package promotion

import (
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/promotion"
	"github.com/shopspring/decimal"
)

// CreateCouponRequest creates a coupon
type CreateCouponRequest struct {
	Title            string           `json:"title" binding:"required,max=100"`
	Code             string           `json:"code" binding:"required,max=50"`
	Type             int              `json:"type" binding:"oneof=0 1"`
	Amount           decimal.Decimal  `json:"amount"`
	Total            int              `json:"total" binding:"required,min=1"`
	ValidFrom        *time.Time       `json:"valid_from"`
	ValidUntil       *time.Time       `json:"valid_until"`
	MinCart          *decimal.Decimal `json:"min_cart"`
	MaxDiscountTotal *decimal.Decimal `json:"max_discount_total"`
	EligibleUserIDs  []uuid.UUID      `json:"eligible_user_ids"`
}

// ApplyCouponRequest checks a code against the caller's cart
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required,max=50"`
}

// CouponResponse is the public view of a coupon
type CouponResponse struct {
	ID               uuid.UUID        `json:"id"`
	Title            string           `json:"title"`
	Code             string           `json:"code"`
	Type             int              `json:"type"`
	Amount           decimal.Decimal  `json:"amount"`
	Total            int              `json:"total"`
	ValidFrom        *time.Time       `json:"valid_from"`
	ValidUntil       *time.Time       `json:"valid_until"`
	MinCart          *decimal.Decimal `json:"min_cart"`
	MaxDiscountTotal *decimal.Decimal `json:"max_discount_total"`
	IsActive         bool             `json:"is_active"`
}

// ApplyCouponResponse is the cart total after the coupon
type ApplyCouponResponse struct {
	CouponID       uuid.UUID       `json:"coupon_id"`
	CartTotal      decimal.Decimal `json:"cart_total"`
	CouponDiscount decimal.Decimal `json:"coupon_discount"`
	TotalPrice     decimal.Decimal `json:"total_price"`
}

// ToCouponResponse converts a domain coupon
func ToCouponResponse(c *promotion.Coupon) CouponResponse {
	return CouponResponse{
		ID:               c.ID,
		Title:            c.Title,
		Code:             c.Code,
		Type:             int(c.Type),
		Amount:           c.Amount,
		Total:            c.Total,
		ValidFrom:        c.ValidFrom,
		ValidUntil:       c.ValidUntil,
		MinCart:          c.MinCart,
		MaxDiscountTotal: c.MaxDiscountTotal,
		IsActive:         c.IsActive,
	}
}
