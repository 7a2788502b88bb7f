package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/cart"
)

// CartModel is the persistence model for cart.Cart
type CartModel struct {
	BaseModel
	UserID    *uuid.UUID `gorm:"type:uuid;index"`
	SessionID *string    `gorm:"type:varchar(64);index"`
}

// TableName returns the table name for GORM
func (CartModel) TableName() string { return "carts" }

// ToDomain converts the model to a domain Cart
func (m *CartModel) ToDomain() *cart.Cart {
	return &cart.Cart{BaseEntity: m.BaseModel.ToDomain(), UserID: m.UserID, SessionID: m.SessionID}
}

// CartModelFromDomain creates a model from a domain Cart
func CartModelFromDomain(c *cart.Cart) *CartModel {
	m := &CartModel{UserID: c.UserID, SessionID: c.SessionID}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// CartItemModel is the persistence model for cart.Item
type CartItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CartID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_item_product,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_item_product,priority:2"`
	Quantity  int       `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CartItemModel) TableName() string { return "cart_items" }

// ToDomain converts the model to a domain Item
func (m *CartItemModel) ToDomain() *cart.Item {
	return &cart.Item{
		ID:        m.ID,
		CartID:    m.CartID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// CartItemModelFromDomain creates a model from a domain Item
func CartItemModelFromDomain(i *cart.Item) *CartItemModel {
	return &CartItemModel{
		ID:        i.ID,
		CartID:    i.CartID,
		ProductID: i.ProductID,
		Quantity:  i.Quantity,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}
