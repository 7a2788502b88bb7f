package cms

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductOffer is a time-bounded campaign with per-product, stock-limited discounts
type ProductOffer struct {
	shared.BaseAggregateRoot
	Title       string
	ActiveFrom  time.Time
	ActiveUntil time.Time
	IsActive    bool
	Items       []ProductOfferItem
}

// ProductOfferItem puts one product on offer.
// A product belongs to at most one offer.
type ProductOfferItem struct {
	ID        uuid.UUID
	OfferID   uuid.UUID
	ProductID uuid.UUID
	// Stock is the number of units sold at the offer price; nil means unlimited
	Stock     *int
	SoldStock int
	Discount  decimal.Decimal
	IsActive  bool
	// Offer carries the parent offer window when loaded for pricing
	Offer *ProductOffer
}

// NewProductOffer creates an active offer
func NewProductOffer(title string, from, until time.Time) (*ProductOffer, error) {
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Offer title cannot be empty")
	}
	if from.After(until) {
		return nil, shared.NewDomainError("INVALID_OFFER_WINDOW", "Offer start must be before its end")
	}
	return &ProductOffer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             strings.TrimSpace(title),
		ActiveFrom:        from,
		ActiveUntil:       until,
		IsActive:          true,
		Items:             []ProductOfferItem{},
	}, nil
}

// IsRunning reports whether the offer is switched on and inside its window
func (o *ProductOffer) IsRunning(now time.Time) bool {
	return o.IsActive && !now.Before(o.ActiveFrom) && !now.After(o.ActiveUntil)
}

// IsExpired reports whether the offer window has closed
func (o *ProductOffer) IsExpired(now time.Time) bool {
	return now.After(o.ActiveUntil)
}

// Deactivate switches the offer off
func (o *ProductOffer) Deactivate() {
	o.IsActive = false
	o.Touch()
}

// AddItem puts a product on offer
func (o *ProductOffer) AddItem(productID uuid.UUID, discount decimal.Decimal, stock *int) (*ProductOfferItem, error) {
	if discount.IsNegative() || discount.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Offer discount must be between 0 and 100")
	}
	if stock != nil && *stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Offer stock cannot be negative")
	}
	for _, item := range o.Items {
		if item.ProductID == productID {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Product is already on this offer")
		}
	}
	item := ProductOfferItem{
		ID:        uuid.New(),
		OfferID:   o.ID,
		ProductID: productID,
		Stock:     stock,
		Discount:  discount,
		IsActive:  true,
	}
	o.Items = append(o.Items, item)
	o.Touch()
	return &o.Items[len(o.Items)-1], nil
}

// Remaining is the offer stock left to sell; nil means unlimited
func (i *ProductOfferItem) Remaining() *int {
	if i.Stock == nil {
		return nil
	}
	left := max(0, *i.Stock-i.SoldStock)
	return &left
}

// HasStock reports whether units can still be sold at the offer price
func (i *ProductOfferItem) HasStock() bool {
	return i.Stock == nil || *i.Stock > i.SoldStock
}

// IsLive reports whether the item and its offer are switched on.
// The offer window is not checked.
func (i *ProductOfferItem) IsLive() bool {
	return i.IsActive && i.Offer != nil && i.Offer.IsActive
}

// IsApplicable reports whether the item can price a sale right now
func (i *ProductOfferItem) IsApplicable(now time.Time) bool {
	return i.IsActive && i.Offer != nil && i.Offer.IsRunning(now) && i.HasStock()
}

// Consume records quantity units sold, capped by the remaining offer stock.
// It returns the number of units counted against the offer.
func (i *ProductOfferItem) Consume(quantity int) int {
	if quantity <= 0 {
		return 0
	}
	taken := quantity
	if rem := i.Remaining(); rem != nil {
		taken = min(*rem, quantity)
	}
	i.SoldStock += taken
	return taken
}

// Terms converts the item into pricing terms
func (i *ProductOfferItem) Terms() *catalog.OfferTerms {
	return &catalog.OfferTerms{
		OfferItemID:     i.ID,
		DiscountPercent: i.Discount,
		Remaining:       i.Remaining(),
	}
}

// BestOffer picks the applicable item with the highest discount
func BestOffer(items []ProductOfferItem, now time.Time) *ProductOfferItem {
	var best *ProductOfferItem
	for idx := range items {
		item := &items[idx]
		if !item.IsApplicable(now) {
			continue
		}
		if best == nil || item.Discount.GreaterThan(best.Discount) {
			best = item
		}
	}
	return best
}
