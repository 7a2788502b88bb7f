package promotion

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CouponType selects how the coupon amount is interpreted
type CouponType int

const (
	CouponTypePercent CouponType = 0
	CouponTypeAmount  CouponType = 1
)

// IsValid checks if the coupon type is known
func (t CouponType) IsValid() bool {
	return t == CouponTypePercent || t == CouponTypeAmount
}

// Coupon validation error codes
const (
	CodeInvalidCoupon     = "INVALID_COUPON"
	CodeCouponExpired     = "COUPON_EXPIRED"
	CodeCouponNotYetValid = "COUPON_NOT_YET_VALID"
	CodeCouponUsageLimit  = "COUPON_USAGE_LIMIT"
	CodeCouponAlreadyUsed = "COUPON_ALREADY_USED"
	CodeCouponInactive    = "COUPON_INACTIVE"
	CodeCouponNotEligible = "COUPON_NOT_ELIGIBLE"
	CodeCouponMinCart     = "COUPON_MIN_CART"
)

var (
	ErrInvalidCoupon     = shared.NewDomainError(CodeInvalidCoupon, "Invalid coupon code.")
	ErrCouponExpired     = shared.NewDomainError(CodeCouponExpired, "This coupon has expired.")
	ErrCouponNotYetValid = shared.NewDomainError(CodeCouponNotYetValid, "This coupon is not valid yet.")
	ErrCouponUsageLimit  = shared.NewDomainError(CodeCouponUsageLimit, "This coupon has reached its usage limit.")
	ErrCouponAlreadyUsed = shared.NewDomainError(CodeCouponAlreadyUsed, "You have already used this coupon.")
	ErrCouponInactive    = shared.NewDomainError(CodeCouponInactive, "This coupon is not active.")
	ErrCouponNotEligible = shared.NewDomainError(CodeCouponNotEligible, "You are not eligible to use this coupon.")
	ErrCouponMinCart     = shared.NewDomainError(CodeCouponMinCart, "Your cart total is below the minimum for this coupon.")
)

var hundred = decimal.NewFromInt(100)

// Coupon is a code that takes money off a cart total
type Coupon struct {
	shared.BaseAggregateRoot
	Title            string
	Code             string
	ValidFrom        *time.Time
	ValidUntil       *time.Time
	Total            int
	Type             CouponType
	MinCart          *decimal.Decimal
	Amount           decimal.Decimal
	MaxDiscountTotal *decimal.Decimal
	IsActive         bool
	// EligibleUserIDs restricts the coupon to these users; empty means everyone
	EligibleUserIDs []uuid.UUID
}

// NewCoupon creates an active coupon and validates it
func NewCoupon(title, code string, couponType CouponType, amount decimal.Decimal, total int) (*Coupon, error) {
	c := &Coupon{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             strings.TrimSpace(title),
		Code:              strings.TrimSpace(code),
		Type:              couponType,
		Amount:            amount,
		Total:             total,
		IsActive:          true,
		EligibleUserIDs:   []uuid.UUID{},
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// SetWindow sets the validity window; either end may be open
func (c *Coupon) SetWindow(from, until *time.Time) error {
	c.ValidFrom = from
	c.ValidUntil = until
	return c.Validate()
}

// SetLimits sets the minimum cart total and the discount cap
func (c *Coupon) SetLimits(minCart, maxDiscount *decimal.Decimal) error {
	c.MinCart = minCart
	c.MaxDiscountTotal = maxDiscount
	return c.Validate()
}

// Validate checks the coupon's own consistency
func (c *Coupon) Validate() error {
	if c.Code == "" {
		return shared.NewDomainError("INVALID_CODE", "Coupon code cannot be empty")
	}
	if len(c.Code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Coupon code cannot exceed 50 characters")
	}
	if !c.Type.IsValid() {
		return shared.NewDomainError("INVALID_TYPE", "Unknown coupon type")
	}
	if c.Total < 1 {
		return shared.NewDomainError("INVALID_TOTAL", "Coupon total must be at least 1")
	}
	if c.Amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Coupon amount cannot be negative")
	}
	if c.Type == CouponTypePercent && c.Amount.GreaterThan(hundred) {
		return shared.NewDomainError("INVALID_AMOUNT", "Percent coupon amount must be between 0 and 100")
	}
	if c.ValidFrom != nil && c.ValidUntil != nil && c.ValidFrom.After(*c.ValidUntil) {
		return shared.NewDomainError("INVALID_COUPON_WINDOW", "Coupon start must be before its end")
	}
	if c.MinCart != nil && c.MinCart.IsNegative() {
		return shared.NewDomainError("INVALID_MIN_CART", "Minimum cart total cannot be negative")
	}
	if c.MaxDiscountTotal != nil && c.MaxDiscountTotal.IsNegative() {
		return shared.NewDomainError("INVALID_MAX_DISCOUNT", "Maximum discount cannot be negative")
	}
	return nil
}

// IsEligible reports whether userID may use the coupon
func (c *Coupon) IsEligible(userID uuid.UUID) bool {
	if len(c.EligibleUserIDs) == 0 {
		return true
	}
	for _, id := range c.EligibleUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Deactivate switches the coupon off
func (c *Coupon) Deactivate() {
	c.IsActive = false
	c.Touch()
}

// Discount is the amount the coupon takes off value. An amount coupon may
// exceed value; callers floor the resulting total.
func (c *Coupon) Discount(value decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch c.Type {
	case CouponTypeAmount:
		discount = c.Amount
	default:
		discount = value.Mul(c.Amount).Div(hundred)
		if c.MaxDiscountTotal != nil && discount.GreaterThan(*c.MaxDiscountTotal) {
			discount = *c.MaxDiscountTotal
		}
	}
	if discount.IsNegative() {
		return decimal.Zero
	}
	return discount
}

// ApplyTo returns value less the coupon discount
func (c *Coupon) ApplyTo(value decimal.Decimal) decimal.Decimal {
	return value.Sub(c.Discount(value))
}

// CouponConsume records one use of a coupon by a user
type CouponConsume struct {
	ID        uuid.UUID
	CouponID  uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
}

// NewCouponConsume creates a consume record
func NewCouponConsume(couponID, userID uuid.UUID) *CouponConsume {
	return &CouponConsume{
		ID:        uuid.New(),
		CouponID:  couponID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
}
