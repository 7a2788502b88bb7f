package catalog

import (
	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
)

// Toggle results returned by wishlist add-or-remove
const (
	WishlistRemoved = 0
	WishlistAdded   = 1
)

// WishlistItem marks a product as wished for by a user
type WishlistItem struct {
	shared.BaseEntity
	UserID    uuid.UUID
	ProductID uuid.UUID
	IsActive  bool
}

// NewWishlistItem creates an active wishlist entry
func NewWishlistItem(userID, productID uuid.UUID) *WishlistItem {
	return &WishlistItem{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		ProductID:  productID,
		IsActive:   true,
	}
}
