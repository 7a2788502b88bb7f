package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/cms"
	"github.com/shopspring/decimal"
)

// ProductOfferModel is the persistence model for cms.ProductOffer
type ProductOfferModel struct {
	AggregateModel
	Title       string    `gorm:"type:varchar(200);not null"`
	ActiveFrom  time.Time `gorm:"not null"`
	ActiveUntil time.Time `gorm:"not null;index"`
	IsActive    bool      `gorm:"not null;index"`

	Items []ProductOfferItemModel `gorm:"foreignKey:OfferID"`
}

// TableName returns the table name for GORM
func (ProductOfferModel) TableName() string { return "product_offers" }

// ToDomain converts the model to a domain ProductOffer with its items
func (m *ProductOfferModel) ToDomain() *cms.ProductOffer {
	o := &cms.ProductOffer{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Title:             m.Title,
		ActiveFrom:        m.ActiveFrom,
		ActiveUntil:       m.ActiveUntil,
		IsActive:          m.IsActive,
	}
	for i := range m.Items {
		o.Items = append(o.Items, *m.Items[i].ToDomain())
	}
	return o
}

// ProductOfferModelFromDomain creates a model and its item models from a domain ProductOffer
func ProductOfferModelFromDomain(o *cms.ProductOffer) *ProductOfferModel {
	m := &ProductOfferModel{
		Title:       o.Title,
		ActiveFrom:  o.ActiveFrom,
		ActiveUntil: o.ActiveUntil,
		IsActive:    o.IsActive,
	}
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	for i := range o.Items {
		m.Items = append(m.Items, *ProductOfferItemModelFromDomain(&o.Items[i]))
	}
	return m
}

// ProductOfferItemModel is the persistence model for cms.ProductOfferItem.
// A product takes part in at most one offer.
type ProductOfferItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OfferID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Stock     *int            `gorm:"check:stock >= 0"`
	SoldStock int             `gorm:"not null;default:0"`
	Discount  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	IsActive  bool            `gorm:"not null"`

	Offer *ProductOfferModel `gorm:"foreignKey:OfferID"`
}

// TableName returns the table name for GORM
func (ProductOfferItemModel) TableName() string { return "product_offer_items" }

// ToDomain converts the model to a domain ProductOfferItem, with its offer when preloaded
func (m *ProductOfferItemModel) ToDomain() *cms.ProductOfferItem {
	item := &cms.ProductOfferItem{
		ID:        m.ID,
		OfferID:   m.OfferID,
		ProductID: m.ProductID,
		Stock:     m.Stock,
		SoldStock: m.SoldStock,
		Discount:  m.Discount,
		IsActive:  m.IsActive,
	}
	if m.Offer != nil {
		offer := *m.Offer
		offer.Items = nil
		item.Offer = offer.ToDomain()
	}
	return item
}

// ProductOfferItemModelFromDomain creates a model from a domain ProductOfferItem
func ProductOfferItemModelFromDomain(i *cms.ProductOfferItem) *ProductOfferItemModel {
	return &ProductOfferItemModel{
		ID:        i.ID,
		OfferID:   i.OfferID,
		ProductID: i.ProductID,
		Stock:     i.Stock,
		SoldStock: i.SoldStock,
		Discount:  i.Discount,
		IsActive:  i.IsActive,
	}
}

// SliderModel is the persistence model for cms.Slider
type SliderModel struct {
	BaseModel
	Title    string `gorm:"type:varchar(200);not null"`
	ImageKey string `gorm:"type:varchar(500)"`
	Link     string `gorm:"type:varchar(500)"`
	Priority int    `gorm:"not null;default:0"`
	IsActive bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SliderModel) TableName() string { return "sliders" }

// ToDomain converts the model to a domain Slider
func (m *SliderModel) ToDomain() *cms.Slider {
	return &cms.Slider{
		BaseEntity: m.BaseModel.ToDomain(),
		Title:      m.Title,
		ImageKey:   m.ImageKey,
		Link:       m.Link,
		Priority:   m.Priority,
		IsActive:   m.IsActive,
	}
}

// SliderModelFromDomain creates a model from a domain Slider
func SliderModelFromDomain(s *cms.Slider) *SliderModel {
	m := &SliderModel{Title: s.Title, ImageKey: s.ImageKey, Link: s.Link, Priority: s.Priority, IsActive: s.IsActive}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

// BannerModel is the persistence model for cms.Banner
type BannerModel struct {
	BaseModel
	Title    string           `gorm:"type:varchar(200);not null"`
	ImageKey string           `gorm:"type:varchar(500)"`
	Link     string           `gorm:"type:varchar(500)"`
	Holder   cms.BannerHolder `gorm:"type:smallint;not null;default:0;index"`
	IsActive bool             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BannerModel) TableName() string { return "banners" }

// ToDomain converts the model to a domain Banner
func (m *BannerModel) ToDomain() *cms.Banner {
	return &cms.Banner{
		BaseEntity: m.BaseModel.ToDomain(),
		Title:      m.Title,
		ImageKey:   m.ImageKey,
		Link:       m.Link,
		Holder:     m.Holder,
		IsActive:   m.IsActive,
	}
}

// BannerModelFromDomain creates a model from a domain Banner
func BannerModelFromDomain(b *cms.Banner) *BannerModel {
	m := &BannerModel{Title: b.Title, ImageKey: b.ImageKey, Link: b.Link, Holder: b.Holder, IsActive: b.IsActive}
	m.FromDomainBaseEntity(b.BaseEntity)
	return m
}
