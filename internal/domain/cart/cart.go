package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MaxSessionIDLength bounds the anonymous session identifier
const MaxSessionIDLength = 64

var (
	ErrNoOwner         = shared.NewDomainError("INVALID_CART_OWNER", "A cart needs a user or a session")
	ErrSessionTooLong  = shared.NewDomainError("INVALID_SESSION_ID", "Session id cannot exceed 64 characters")
	ErrEmptyCart       = shared.NewDomainError("EMPTY_CART", "Your cart is empty")
	ErrInvalidQuantity = shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
)

// Cart holds the products a user or an anonymous session is about to buy
type Cart struct {
	shared.BaseEntity
	UserID    *uuid.UUID
	SessionID *string
}

// Owner identifies who a cart belongs to
type Owner struct {
	UserID    *uuid.UUID
	SessionID *string
}

// Validate checks that at least one owner is set
func (o Owner) Validate() error {
	if o.UserID == nil && (o.SessionID == nil || *o.SessionID == "") {
		return ErrNoOwner
	}
	if o.SessionID != nil && len(*o.SessionID) > MaxSessionIDLength {
		return ErrSessionTooLong
	}
	return nil
}

// NewCart creates an empty cart for owner
func NewCart(owner Owner) (*Cart, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	return &Cart{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     owner.UserID,
		SessionID:  owner.SessionID,
	}, nil
}

// IsStale reports whether an anonymous cart has been idle longer than retention
func (c *Cart) IsStale(now time.Time, retention time.Duration) bool {
	return c.UserID == nil && c.UpdatedAt.Before(now.Add(-retention))
}

// Item is one product line in a cart
type Item struct {
	ID        uuid.UUID
	CartID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewItem creates a cart line
func NewItem(cartID, productID uuid.UUID, quantity int) (*Item, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	now := time.Now()
	return &Item{
		ID:        uuid.New(),
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetQuantity replaces the quantity of the line
func (i *Item) SetQuantity(quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	i.Quantity = quantity
	i.UpdatedAt = time.Now()
	return nil
}

// Totals is the priced summary of a cart
type Totals struct {
	ProductTotalPrice    decimal.Decimal
	ProductTotalDiscount decimal.Decimal
	CouponTotalDiscount  decimal.Decimal
	TotalPrice           decimal.Decimal
	CouponID             *uuid.UUID
}

// ItemCount sums the quantities of items
func ItemCount(items []Item) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}
