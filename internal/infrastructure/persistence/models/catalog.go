package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CategoryModel is the persistence model for catalog.Category
type CategoryModel struct {
	BaseModel
	Title    string     `gorm:"type:varchar(200);not null"`
	Slug     string     `gorm:"type:varchar(200);not null;index"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
	Priority int        `gorm:"not null;default:0"`
	IsActive bool       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string { return "categories" }

// ToDomain converts the model to a domain Category
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseEntity: m.BaseModel.ToDomain(),
		Title:      m.Title,
		Slug:       m.Slug,
		ParentID:   m.ParentID,
		Priority:   m.Priority,
		IsActive:   m.IsActive,
	}
}

// CategoryModelFromDomain creates a model from a domain Category
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{
		Title:    c.Title,
		Slug:     c.Slug,
		ParentID: c.ParentID,
		Priority: c.Priority,
		IsActive: c.IsActive,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// BrandModel is the persistence model for catalog.Brand
type BrandModel struct {
	BaseModel
	Title    string `gorm:"type:varchar(200);not null"`
	Slug     string `gorm:"type:varchar(200);not null;index"`
	IsActive bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BrandModel) TableName() string { return "brands" }

// ToDomain converts the model to a domain Brand
func (m *BrandModel) ToDomain() *catalog.Brand {
	return &catalog.Brand{
		BaseEntity: m.BaseModel.ToDomain(),
		Title:      m.Title,
		Slug:       m.Slug,
		IsActive:   m.IsActive,
	}
}

// BrandModelFromDomain creates a model from a domain Brand
func BrandModelFromDomain(b *catalog.Brand) *BrandModel {
	m := &BrandModel{Title: b.Title, Slug: b.Slug, IsActive: b.IsActive}
	m.FromDomainBaseEntity(b.BaseEntity)
	return m
}

// ProductModel is the persistence model for catalog.Product
type ProductModel struct {
	AggregateModel
	Title       string          `gorm:"type:varchar(200);not null"`
	Slug        string          `gorm:"type:varchar(200);not null;index"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Stock       int             `gorm:"not null;default:0"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	BrandID     *uuid.UUID      `gorm:"type:uuid;index"`
	Tags        []string        `gorm:"serializer:json;type:jsonb"`
	VariantIDs  []uuid.UUID     `gorm:"serializer:json;type:jsonb"`
	ViewCount   int64           `gorm:"not null;default:0"`
	IsActive    bool            `gorm:"not null;index"`

	Images []ProductImageModel `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string { return "products" }

// ToDomain converts the model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Title:             m.Title,
		Slug:              m.Slug,
		Description:       m.Description,
		Price:             m.Price,
		Stock:             m.Stock,
		CategoryID:        m.CategoryID,
		BrandID:           m.BrandID,
		Tags:              m.Tags,
		VariantIDs:        m.VariantIDs,
		ViewCount:         m.ViewCount,
		IsActive:          m.IsActive,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.VariantIDs == nil {
		p.VariantIDs = []uuid.UUID{}
	}
	for i := range m.Images {
		p.Images = append(p.Images, *m.Images[i].ToDomain())
	}
	return p
}

// ProductModelFromDomain creates a model from a domain Product. Images are
// persisted separately.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		BrandID:     p.BrandID,
		Tags:        p.Tags,
		VariantIDs:  p.VariantIDs,
		ViewCount:   p.ViewCount,
		IsActive:    p.IsActive,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}

// ProductImageModel is the persistence model for catalog.ProductImage
type ProductImageModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index"`
	StorageKey string    `gorm:"type:varchar(500);not null"`
	Priority   int       `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductImageModel) TableName() string { return "product_images" }

// ToDomain converts the model to a domain ProductImage
func (m *ProductImageModel) ToDomain() *catalog.ProductImage {
	return &catalog.ProductImage{
		ID:         m.ID,
		ProductID:  m.ProductID,
		StorageKey: m.StorageKey,
		Priority:   m.Priority,
		CreatedAt:  m.CreatedAt,
	}
}

// ProductImageModelFromDomain creates a model from a domain ProductImage
func ProductImageModelFromDomain(img *catalog.ProductImage) *ProductImageModel {
	return &ProductImageModel{
		ID:         img.ID,
		ProductID:  img.ProductID,
		StorageKey: img.StorageKey,
		Priority:   img.Priority,
		CreatedAt:  img.CreatedAt,
	}
}

// ProductDiscountModel is the persistence model for catalog.ProductDiscount
type ProductDiscountModel struct {
	BaseModel
	ProductID   uuid.UUID            `gorm:"type:uuid;not null;index"`
	Type        catalog.DiscountType `gorm:"type:smallint;not null;default:0"`
	Amount      decimal.Decimal      `gorm:"type:decimal(15,2);not null;default:0"`
	IsActive    bool                 `gorm:"not null"`

	ActiveFrom  *time.Time
	ActiveUntil *time.Time
}

// TableName returns the table name for GORM
func (ProductDiscountModel) TableName() string { return "product_discounts" }

// ToDomain converts the model to a domain ProductDiscount
func (m *ProductDiscountModel) ToDomain() *catalog.ProductDiscount {
	return &catalog.ProductDiscount{
		BaseEntity:  m.BaseModel.ToDomain(),
		ProductID:   m.ProductID,
		Type:        m.Type,
		Amount:      m.Amount,
		ActiveFrom:  m.ActiveFrom,
		ActiveUntil: m.ActiveUntil,
		IsActive:    m.IsActive,
	}
}

// ProductDiscountModelFromDomain creates a model from a domain ProductDiscount
func ProductDiscountModelFromDomain(d *catalog.ProductDiscount) *ProductDiscountModel {
	m := &ProductDiscountModel{
		ProductID:   d.ProductID,
		Type:        d.Type,
		Amount:      d.Amount,
		ActiveFrom:  d.ActiveFrom,
		ActiveUntil: d.ActiveUntil,
		IsActive:    d.IsActive,
	}
	m.FromDomainBaseEntity(d.BaseEntity)
	return m
}

// ProductPropertyModel is the persistence model for catalog.Property
type ProductPropertyModel struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_property_product_title_value,priority:1"`
	Title     string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_property_product_title_value,priority:2"`
	Value     string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_property_product_title_value,priority:3"`
	Priority  int       `gorm:"not null;default:0"`
	IsActive  bool      `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductPropertyModel) TableName() string { return "product_properties" }

// ToDomain converts the model to a domain Property
func (m *ProductPropertyModel) ToDomain() *catalog.Property {
	return &catalog.Property{
		BaseEntity: m.BaseModel.ToDomain(),
		ProductID:  m.ProductID,
		Title:      m.Title,
		Value:      m.Value,
		Priority:   m.Priority,
		IsActive:   m.IsActive,
	}
}

// ProductPropertyModelFromDomain creates a model from a domain Property
func ProductPropertyModelFromDomain(p *catalog.Property) *ProductPropertyModel {
	m := &ProductPropertyModel{
		ProductID: p.ProductID,
		Title:     p.Title,
		Value:     p.Value,
		Priority:  p.Priority,
		IsActive:  p.IsActive,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// ReviewModel is the persistence model for catalog.Review
type ReviewModel struct {
	BaseModel
	ProductID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_review_product_user,priority:1"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_review_product_user,priority:2"`
	Rating     catalog.Rating `gorm:"type:smallint;not null"`
	Text       string         `gorm:"type:text"`
	IsAccepted bool           `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReviewModel) TableName() string { return "product_reviews" }

// ToDomain converts the model to a domain Review
func (m *ReviewModel) ToDomain() *catalog.Review {
	return &catalog.Review{
		BaseEntity: m.BaseModel.ToDomain(),
		ProductID:  m.ProductID,
		UserID:     m.UserID,
		Rating:     m.Rating,
		Text:       m.Text,
		IsAccepted: m.IsAccepted,
	}
}

// ReviewModelFromDomain creates a model from a domain Review
func ReviewModelFromDomain(r *catalog.Review) *ReviewModel {
	m := &ReviewModel{
		ProductID:  r.ProductID,
		UserID:     r.UserID,
		Rating:     r.Rating,
		Text:       r.Text,
		IsAccepted: r.IsAccepted,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}

// WishlistModel is the persistence model for catalog.WishlistItem
type WishlistModel struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_product,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_product,priority:2"`
	IsActive  bool      `gorm:"not null"`
}

// TableName returns the table name for GORM
func (WishlistModel) TableName() string { return "wishlists" }

// ToDomain converts the model to a domain WishlistItem
func (m *WishlistModel) ToDomain() *catalog.WishlistItem {
	return &catalog.WishlistItem{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		ProductID:  m.ProductID,
		IsActive:   m.IsActive,
	}
}

// WishlistModelFromDomain creates a model from a domain WishlistItem
func WishlistModelFromDomain(w *catalog.WishlistItem) *WishlistModel {
	m := &WishlistModel{UserID: w.UserID, ProductID: w.ProductID, IsActive: w.IsActive}
	m.FromDomainBaseEntity(w.BaseEntity)
	return m
}
