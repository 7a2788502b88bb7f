package order

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MaxNoteLength is the maximum length of the buyer's note
const MaxNoteLength = 1000

// Order is a placed purchase and the aggregate root of its items, shipment and timeline
type Order struct {
	shared.BaseAggregateRoot
	UserID               uuid.UUID
	AddressID            uuid.UUID
	CouponID             *uuid.UUID
	Note                 string
	ProductTotalPrice    decimal.Decimal
	CouponTotalDiscount  decimal.Decimal
	ProductTotalDiscount decimal.Decimal
	// ShipmentPrice is the shipment type's price before VAT
	ShipmentPrice decimal.Decimal
	TotalPrice    decimal.Decimal
	CurrentStatus Status
	Items         []Item
	Shipment      *Shipment
	Statuses      []StatusEntry
}

// Item is a purchased product line, priced at placement time
type Item struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	ProductID    uuid.UUID
	ProductTitle string
	ProductPrice decimal.Decimal
	// ProductDiscount is the final price of a single unit after discounts
	ProductDiscount decimal.Decimal
	Quantity        int
	// Price is the line total after discounts
	Price decimal.Decimal
}

// Shipment records how and when the order leaves the shop
type Shipment struct {
	ID             uuid.UUID
	OrderID        uuid.UUID
	ShipmentTypeID uuid.UUID
	ShippingDate   time.Time
	// Price includes VAT
	Price decimal.Decimal
}

// NewOrder creates an order in ORDER_PLACED status
func NewOrder(userID, addressID uuid.UUID, note string) (*Order, error) {
	if utf8.RuneCountInString(note) > MaxNoteLength {
		return nil, shared.NewDomainError("INVALID_NOTE", "Order note cannot exceed 1000 characters")
	}
	return &Order{
		BaseAggregateRoot:    shared.NewBaseAggregateRoot(),
		UserID:               userID,
		AddressID:            addressID,
		Note:                 note,
		ProductTotalPrice:    decimal.Zero,
		CouponTotalDiscount:  decimal.Zero,
		ProductTotalDiscount: decimal.Zero,
		ShipmentPrice:        decimal.Zero,
		TotalPrice:           decimal.Zero,
		CurrentStatus:        StatusOrderPlaced,
		Items:                []Item{},
	}, nil
}

// SetPricing records the cart totals and the shipment base price, then recomputes the total
func (o *Order) SetPricing(productTotal, productDiscount, couponDiscount, shipmentPrice decimal.Decimal, couponID *uuid.UUID) {
	o.ProductTotalPrice = productTotal
	o.ProductTotalDiscount = productDiscount
	o.CouponTotalDiscount = couponDiscount
	o.ShipmentPrice = shipmentPrice
	o.CouponID = couponID
	o.recalculateTotal()
}

// DropCoupon removes the coupon and its discount from the order
func (o *Order) DropCoupon() {
	o.CouponID = nil
	o.CouponTotalDiscount = decimal.Zero
	o.recalculateTotal()
}

// recalculateTotal applies total = max(products + shipment - discounts, 0)
func (o *Order) recalculateTotal() {
	total := o.ProductTotalPrice.Add(o.ShipmentPrice).
		Sub(o.ProductTotalDiscount.Add(o.CouponTotalDiscount))
	o.TotalPrice = decimal.Max(total, decimal.Zero)
}

// AddItem appends a line for quantity units whose discounted total is lineTotal
func (o *Order) AddItem(productID uuid.UUID, title string, unitPrice decimal.Decimal, quantity int, lineTotal decimal.Decimal) (*Item, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
	}
	item := Item{
		ID:              uuid.New(),
		OrderID:         o.ID,
		ProductID:       productID,
		ProductTitle:    title,
		ProductPrice:    unitPrice,
		ProductDiscount: lineTotal.Div(decimal.NewFromInt(int64(quantity))),
		Quantity:        quantity,
		Price:           lineTotal,
	}
	o.Items = append(o.Items, item)
	return &o.Items[len(o.Items)-1], nil
}

// Ship records the shipment of the order
func (o *Order) Ship(shipmentTypeID uuid.UUID, shippingDate time.Time, price decimal.Decimal) {
	o.Shipment = &Shipment{
		ID:             uuid.New(),
		OrderID:        o.ID,
		ShipmentTypeID: shipmentTypeID,
		ShippingDate:   shippingDate,
		Price:          price,
	}
}

// Place finalizes a new order: it builds the status timeline and raises OrderPlaced
func (o *Order) Place(now time.Time) error {
	if len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_CART", "Your cart is empty")
	}
	o.Statuses = BuildTimeline(now)
	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return nil
}

// ItemCount sums the quantities of all lines
func (o *Order) ItemCount() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// Timeline flags every step the order has reached
func (o *Order) Timeline() []StatusView {
	views := make([]StatusView, len(o.Statuses))
	for i, s := range o.Statuses {
		views[i] = StatusView{
			Type:          s.Type,
			EstimatedTime: s.EstimatedTime,
			Active:        o.CurrentStatus >= s.Type,
		}
	}
	return views
}

// UpdateStatus moves the order to status
func (o *Order) UpdateStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %d", int(status)))
	}
	if o.CurrentStatus.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot change order in %s status", o.CurrentStatus))
	}
	if status == o.CurrentStatus {
		return nil
	}
	from := o.CurrentStatus
	o.CurrentStatus = status
	o.Touch()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from))
	return nil
}

// CanCancel reports whether the buyer may still cancel
func (o *Order) CanCancel() bool {
	return o.CurrentStatus <= StatusOrderPlaced
}

// Cancel cancels the order on behalf of userID
func (o *Order) Cancel(userID uuid.UUID) error {
	if o.UserID != userID {
		return shared.ErrForbidden
	}
	if !o.CanCancel() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.CurrentStatus))
	}
	return o.UpdateStatus(StatusCanceled)
}
