// Package pricing prices cart lines against running product discounts and
// offers. Catalog pages, cart totals and order placement share it so that
// the buyer sees the same numbers at every step.
package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/cart"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/cms"
	"github.com/shop/backend/internal/domain/promotion"
	"github.com/shopspring/decimal"
)

// Request asks for the price of quantity units of a product
type Request struct {
	Product  *catalog.Product
	Quantity int
}

// Line is a priced request
type Line struct {
	Product  *catalog.Product
	Quantity int
	Quote    catalog.PriceQuote
	Discount *catalog.ProductDiscount
	// OfferItems holds every offer item of the product. Placement counts
	// sold units against the live ones.
	OfferItems []cms.ProductOfferItem
}

// Subtotal is the undiscounted line price
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Source loads the discounts and offers of products
type Source struct {
	Discounts catalog.DiscountRepository
	Offers    cms.OfferRepository
	// LockOffers loads offer items with their rows locked
	LockOffers bool
}

// Price quotes every request at now
func (s Source) Price(ctx context.Context, reqs []Request, now time.Time) ([]Line, error) {
	if len(reqs) == 0 {
		return []Line{}, nil
	}
	ids := make([]uuid.UUID, len(reqs))
	for i, r := range reqs {
		ids[i] = r.Product.ID
	}

	discounts, err := s.Discounts.FindByProductIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	var offers map[uuid.UUID][]cms.ProductOfferItem
	if s.LockOffers {
		offers, err = s.Offers.FindItemsByProductIDsForUpdate(ctx, ids)
	} else {
		offers, err = s.Offers.FindItemsByProductIDs(ctx, ids)
	}
	if err != nil {
		return nil, err
	}

	lines := make([]Line, len(reqs))
	for i, r := range reqs {
		items := offers[r.Product.ID]
		discount := catalog.BestDiscount(discounts[r.Product.ID], now)

		var terms *catalog.OfferTerms
		if best := cms.BestOffer(items, now); best != nil {
			terms = best.Terms()
		}
		lines[i] = Line{
			Product:    r.Product,
			Quantity:   r.Quantity,
			Quote:      catalog.Quote(r.Product.Price, r.Quantity, terms, discount),
			Discount:   discount,
			OfferItems: items,
		}
	}
	return lines, nil
}

// Summarize totals lines without a coupon
func Summarize(lines []Line) cart.Totals {
	totals := cart.Totals{
		ProductTotalPrice:    decimal.Zero,
		ProductTotalDiscount: decimal.Zero,
		CouponTotalDiscount:  decimal.Zero,
		TotalPrice:           decimal.Zero,
	}
	for _, l := range lines {
		totals.ProductTotalPrice = totals.ProductTotalPrice.Add(l.Subtotal())
		totals.ProductTotalDiscount = totals.ProductTotalDiscount.Add(l.Quote.TotalDiscount(l.Product.Price, l.Quantity))
		totals.TotalPrice = totals.TotalPrice.Add(l.Quote.TotalWithDiscount)
	}
	return totals
}

// ApplyCoupon takes the coupon discount off the discounted total
func ApplyCoupon(totals cart.Totals, coupon *promotion.Coupon) cart.Totals {
	discount := coupon.Discount(totals.TotalPrice)
	totals.CouponTotalDiscount = discount
	totals.TotalPrice = totals.TotalPrice.Sub(discount)
	id := coupon.ID
	totals.CouponID = &id
	return totals
}
