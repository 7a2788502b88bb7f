package cart

import (
	"github.com/google/uuid"
	"github.com/shop/backend/internal/application/pricing"
	"github.com/shop/backend/internal/domain/cart"
	"github.com/shopspring/decimal"
)

// AddItemRequest sets the quantity of a product in the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1,max=1000"`
}

// TotalsRequest prices the cart, optionally with a coupon code
type TotalsRequest struct {
	CouponCode string `form:"coupon" json:"coupon" binding:"max=50"`
}

// ItemResponse is one priced cart line
type ItemResponse struct {
	ProductID         uuid.UUID       `json:"product_id"`
	Title             string          `json:"title"`
	Slug              string          `json:"slug"`
	Quantity          int             `json:"quantity"`
	Stock             int             `json:"stock"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	UnitFinalPrice    decimal.Decimal `json:"unit_final_price"`
	DiscountPercent   decimal.Decimal `json:"discount_percent"`
	TotalWithDiscount decimal.Decimal `json:"total_with_discount"`
}

// TotalsResponse is the price breakdown of a cart
type TotalsResponse struct {
	ProductTotalPrice    decimal.Decimal `json:"product_total_price"`
	ProductTotalDiscount decimal.Decimal `json:"product_total_discount"`
	CouponTotalDiscount  decimal.Decimal `json:"coupon_total_discount"`
	TotalPrice           decimal.Decimal `json:"total_price"`
	CouponID             *uuid.UUID      `json:"coupon_id"`
}

// CartResponse is a cart with its lines and totals
type CartResponse struct {
	ID        uuid.UUID      `json:"id"`
	Items     []ItemResponse `json:"items"`
	ItemCount int            `json:"item_count"`
	Totals    TotalsResponse `json:"totals"`
}

func toItemResponse(l pricing.Line) ItemResponse {
	return ItemResponse{
		ProductID:         l.Product.ID,
		Title:             l.Product.Title,
		Slug:              l.Product.Slug,
		Quantity:          l.Quantity,
		Stock:             l.Product.Stock,
		UnitPrice:         l.Product.Price,
		UnitFinalPrice:    l.Quote.UnitFinalPrice,
		DiscountPercent:   l.Quote.DiscountPercent,
		TotalWithDiscount: l.Quote.TotalWithDiscount,
	}
}

// ToTotalsResponse converts cart totals
func ToTotalsResponse(t cart.Totals) TotalsResponse {
	return TotalsResponse{
		ProductTotalPrice:    t.ProductTotalPrice,
		ProductTotalDiscount: t.ProductTotalDiscount,
		CouponTotalDiscount:  t.CouponTotalDiscount,
		TotalPrice:           t.TotalPrice,
		CouponID:             t.CouponID,
	}
}
