package models

import (
	"github.com/shop/backend/internal/domain/shipment"
	"github.com/shopspring/decimal"
)

// ShipmentTypeModel is the persistence model for shipment.ShipmentType
type ShipmentTypeModel struct {
	BaseModel
	Title       string               `gorm:"type:varchar(200);not null"`
	ServiceType shipment.ServiceType `gorm:"type:smallint;not null;default:0"`
	Description string               `gorm:"type:varchar(500)"`
	Price       decimal.Decimal      `gorm:"type:decimal(15,2);not null;default:0"`
	VAT         decimal.Decimal      `gorm:"column:vat;type:decimal(5,2);not null;default:0"`
	IsActive    bool                 `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ShipmentTypeModel) TableName() string { return "shipment_types" }

// ToDomain converts the model to a domain ShipmentType
func (m *ShipmentTypeModel) ToDomain() *shipment.ShipmentType {
	return &shipment.ShipmentType{
		BaseEntity:  m.BaseModel.ToDomain(),
		Title:       m.Title,
		ServiceType: m.ServiceType,
		Description: m.Description,
		Price:       m.Price,
		VAT:         m.VAT,
		IsActive:    m.IsActive,
	}
}

// ShipmentTypeModelFromDomain creates a model from a domain ShipmentType
func ShipmentTypeModelFromDomain(s *shipment.ShipmentType) *ShipmentTypeModel {
	m := &ShipmentTypeModel{
		Title:       s.Title,
		ServiceType: s.ServiceType,
		Description: s.Description,
		Price:       s.Price,
		VAT:         s.VAT,
		IsActive:    s.IsActive,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}
