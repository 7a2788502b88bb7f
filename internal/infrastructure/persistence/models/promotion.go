package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/promotion"
	"github.com/shopspring/decimal"
)

// CouponModel is the persistence model for promotion.Coupon
type CouponModel struct {
	AggregateModel
	Title            string               `gorm:"type:varchar(200);not null"`
	Code             string               `gorm:"type:varchar(50);not null;uniqueIndex"`
	Total            int                  `gorm:"not null;default:1"`
	Type             promotion.CouponType `gorm:"type:smallint;not null;default:0"`
	MinCart          *decimal.Decimal     `gorm:"type:decimal(15,2)"`
	Amount           decimal.Decimal      `gorm:"type:decimal(15,2);not null;default:0"`
	MaxDiscountTotal *decimal.Decimal     `gorm:"type:decimal(15,2)"`
	IsActive         bool                 `gorm:"not null"`
	EligibleUserIDs  []uuid.UUID          `gorm:"serializer:json;type:jsonb"`

	ValidFrom  *time.Time
	ValidUntil *time.Time
}

// TableName returns the table name for GORM
func (CouponModel) TableName() string { return "coupons" }

// ToDomain converts the model to a domain Coupon
func (m *CouponModel) ToDomain() *promotion.Coupon {
	return &promotion.Coupon{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Title:             m.Title,
		Code:              m.Code,
		ValidFrom:         m.ValidFrom,
		ValidUntil:        m.ValidUntil,
		Total:             m.Total,
		Type:              m.Type,
		MinCart:           m.MinCart,
		Amount:            m.Amount,
		MaxDiscountTotal:  m.MaxDiscountTotal,
		IsActive:          m.IsActive,
		EligibleUserIDs:   m.EligibleUserIDs,
	}
}

// CouponModelFromDomain creates a model from a domain Coupon
func CouponModelFromDomain(c *promotion.Coupon) *CouponModel {
	m := &CouponModel{
		Title:            c.Title,
		Code:             c.Code,
		ValidFrom:        c.ValidFrom,
		ValidUntil:       c.ValidUntil,
		Total:            c.Total,
		Type:             c.Type,
		MinCart:          c.MinCart,
		Amount:           c.Amount,
		MaxDiscountTotal: c.MaxDiscountTotal,
		IsActive:         c.IsActive,
		EligibleUserIDs:  c.EligibleUserIDs,
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}

// CouponConsumeModel records one use of a coupon; a user uses a coupon once
type CouponConsumeModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CouponID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_coupon_consume_user,priority:1"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_coupon_consume_user,priority:2"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CouponConsumeModel) TableName() string { return "coupon_consumes" }

// CouponConsumeModelFromDomain creates a model from a domain CouponConsume
func CouponConsumeModelFromDomain(c *promotion.CouponConsume) *CouponConsumeModel {
	return &CouponConsumeModel{ID: c.ID, CouponID: c.CouponID, UserID: c.UserID, CreatedAt: c.CreatedAt}
}
