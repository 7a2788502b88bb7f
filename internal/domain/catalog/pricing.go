package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OfferTerms describes the offer a product currently takes part in
type OfferTerms struct {
	OfferItemID     uuid.UUID
	DiscountPercent decimal.Decimal
	// Remaining is the offer stock still available; nil means unlimited
	Remaining *int
}

// PriceQuote is the outcome of pricing a quantity of one product
type PriceQuote struct {
	DiscountPercent   decimal.Decimal
	TotalWithDiscount decimal.Decimal
	UnitFinalPrice    decimal.Decimal
	QuantityOnOffer   int
}

// TotalDiscount is the amount saved against the undiscounted price
func (q PriceQuote) TotalDiscount(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity))).Sub(q.TotalWithDiscount)
}

// Quote prices quantity units of a product given its best offer and its
// running general discount (both optional).
//
// The offer is only used when it beats the general discount, and then only
// for as many units as the offer has left; the remaining units are charged
// at the general discount price.
func Quote(price decimal.Decimal, quantity int, offer *OfferTerms, discount *ProductDiscount) PriceQuote {
	if !price.IsPositive() || quantity <= 0 {
		return PriceQuote{
			DiscountPercent:   decimal.Zero,
			TotalWithDiscount: decimal.Zero,
			UnitFinalPrice:    decimal.Zero,
		}
	}

	offerPercent := decimal.Zero
	if offer != nil {
		offerPercent = clampPercent(offer.DiscountPercent)
	}
	discountPercent := decimal.Zero
	if discount != nil {
		discountPercent = clampPercent(discount.PercentOf(price))
	}

	onOffer := 0
	if offer != nil && offerPercent.GreaterThan(discountPercent) {
		remaining := quantity
		if offer.Remaining != nil {
			remaining = max(0, *offer.Remaining)
		}
		onOffer = min(remaining, quantity)
	}
	onDiscount := quantity - onOffer

	unitOffer := price.Mul(decimal.NewFromInt(1).Sub(offerPercent.Div(hundred)))
	unitDiscount := price.Mul(decimal.NewFromInt(1).Sub(discountPercent.Div(hundred)))

	total := unitOffer.Mul(decimal.NewFromInt(int64(onOffer))).
		Add(unitDiscount.Mul(decimal.NewFromInt(int64(onDiscount))))

	return PriceQuote{
		DiscountPercent:   decimal.Max(offerPercent, discountPercent),
		TotalWithDiscount: total,
		UnitFinalPrice:    decimal.Min(unitOffer, unitDiscount),
		QuantityOnOffer:   onOffer,
	}
}

func clampPercent(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}
