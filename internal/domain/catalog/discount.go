package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DiscountType tells how a discount amount is interpreted
type DiscountType int

const (
	DiscountTypePercent DiscountType = 0
	DiscountTypeAmount  DiscountType = 1
)

// IsValid checks if the discount type is known
func (t DiscountType) IsValid() bool {
	return t == DiscountTypePercent || t == DiscountTypeAmount
}

var hundred = decimal.NewFromInt(100)

// ProductDiscount is a general, optionally time-boxed discount on one product.
// At most one discount per product is active at a time.
type ProductDiscount struct {
	shared.BaseEntity
	ProductID   uuid.UUID
	Type        DiscountType
	Amount      decimal.Decimal
	ActiveFrom  *time.Time
	ActiveUntil *time.Time
	IsActive    bool
}

// NewProductDiscount creates an active discount
func NewProductDiscount(productID uuid.UUID, discountType DiscountType, amount decimal.Decimal, from, until *time.Time) (*ProductDiscount, error) {
	if !discountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT_TYPE", "Unknown discount type")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount amount cannot be negative")
	}
	if discountType == DiscountTypePercent && amount.GreaterThan(hundred) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Percent discount must be between 0 and 100")
	}
	if from != nil && until != nil && from.After(*until) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT_WINDOW", "Discount start must be before its end")
	}
	return &ProductDiscount{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   productID,
		Type:        discountType,
		Amount:      amount,
		ActiveFrom:  from,
		ActiveUntil: until,
		IsActive:    true,
	}, nil
}

// IsRunning reports whether the discount applies at the given instant.
// Missing bounds are open.
func (d *ProductDiscount) IsRunning(now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.ActiveFrom != nil && now.Before(*d.ActiveFrom) {
		return false
	}
	if d.ActiveUntil != nil && now.After(*d.ActiveUntil) {
		return false
	}
	return true
}

// PercentOf converts the discount into a percentage of the given price
func (d *ProductDiscount) PercentOf(price decimal.Decimal) decimal.Decimal {
	switch d.Type {
	case DiscountTypeAmount:
		if !price.IsPositive() {
			return decimal.Zero
		}
		return d.Amount.Div(price).Mul(hundred)
	case DiscountTypePercent:
		return d.Amount
	default:
		return decimal.Zero
	}
}

// Deactivate switches the discount off
func (d *ProductDiscount) Deactivate() {
	d.IsActive = false
	d.Touch()
}

// BestDiscount returns the first running discount, or nil
func BestDiscount(discounts []ProductDiscount, now time.Time) *ProductDiscount {
	for i := range discounts {
		if discounts[i].IsRunning(now) {
			return &discounts[i]
		}
	}
	return nil
}
