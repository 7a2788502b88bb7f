package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for order.Order
type OrderModel struct {
	AggregateModel
	UserID               uuid.UUID       `gorm:"type:uuid;not null;index"`
	AddressID            uuid.UUID       `gorm:"type:uuid;not null"`
	CouponID             *uuid.UUID      `gorm:"type:uuid;index"`
	Note                 string          `gorm:"type:varchar(1000)"`
	ProductTotalPrice    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CouponTotalDiscount  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	ProductTotalDiscount decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	ShipmentPrice        decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalPrice           decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CurrentStatus        order.Status    `gorm:"type:smallint;not null;index"`

	Items    []OrderItemModel   `gorm:"foreignKey:OrderID"`
	Shipment *OrderShipmentModel `gorm:"foreignKey:OrderID"`
	Statuses []OrderStatusModel `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string { return "orders" }

// ToDomain converts the model and its preloaded children to a domain Order
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		BaseAggregateRoot:    m.ToAggregateRoot(),
		UserID:               m.UserID,
		AddressID:            m.AddressID,
		CouponID:             m.CouponID,
		Note:                 m.Note,
		ProductTotalPrice:    m.ProductTotalPrice,
		CouponTotalDiscount:  m.CouponTotalDiscount,
		ProductTotalDiscount: m.ProductTotalDiscount,
		ShipmentPrice:        m.ShipmentPrice,
		TotalPrice:           m.TotalPrice,
		CurrentStatus:        m.CurrentStatus,
	}
	for _, it := range m.Items {
		o.Items = append(o.Items, order.Item{
			ID:              it.ID,
			OrderID:         it.OrderID,
			ProductID:       it.ProductID,
			ProductTitle:    it.ProductTitle,
			ProductPrice:    it.ProductPrice,
			ProductDiscount: it.ProductDiscount,
			Quantity:        it.Quantity,
			Price:           it.Price,
		})
	}
	if m.Shipment != nil {
		o.Shipment = &order.Shipment{
			ID:             m.Shipment.ID,
			OrderID:        m.Shipment.OrderID,
			ShipmentTypeID: m.Shipment.ShipmentTypeID,
			ShippingDate:   m.Shipment.ShippingDate,
			Price:          m.Shipment.ShipmentPrice,
		}
	}
	for _, st := range m.Statuses {
		o.Statuses = append(o.Statuses, order.StatusEntry{Type: st.Type, EstimatedTime: st.EstimatedTime})
	}
	return o
}

// OrderModelFromDomain creates the order model; children are built by the
// dedicated constructors so they can be bulk inserted.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{
		UserID:               o.UserID,
		AddressID:            o.AddressID,
		CouponID:             o.CouponID,
		Note:                 o.Note,
		ProductTotalPrice:    o.ProductTotalPrice,
		CouponTotalDiscount:  o.CouponTotalDiscount,
		ProductTotalDiscount: o.ProductTotalDiscount,
		ShipmentPrice:        o.ShipmentPrice,
		TotalPrice:           o.TotalPrice,
		CurrentStatus:        o.CurrentStatus,
	}
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	return m
}

// OrderItemModel is one ordered product line
type OrderItemModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductTitle    string          `gorm:"type:varchar(200);not null"`
	ProductPrice    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ProductDiscount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Quantity        int             `gorm:"not null"`
	Price           decimal.Decimal `gorm:"type:decimal(15,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string { return "order_items" }

// OrderItemModelsFromDomain converts every item of o
func OrderItemModelsFromDomain(o *order.Order) []OrderItemModel {
	out := make([]OrderItemModel, 0, len(o.Items))
	for _, it := range o.Items {
		out = append(out, OrderItemModel{
			ID:              it.ID,
			OrderID:         o.ID,
			ProductID:       it.ProductID,
			ProductTitle:    it.ProductTitle,
			ProductPrice:    it.ProductPrice,
			ProductDiscount: it.ProductDiscount,
			Quantity:        it.Quantity,
			Price:           it.Price,
		})
	}
	return out
}

// OrderShipmentModel stores how and when an order ships
type OrderShipmentModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	ShipmentTypeID uuid.UUID       `gorm:"type:uuid;not null"`
	ShippingDate   time.Time       `gorm:"not null"`
	ShipmentPrice  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
}

// TableName returns the table name for GORM
func (OrderShipmentModel) TableName() string { return "order_shipments" }

// OrderShipmentModelFromDomain converts the shipment of o, or returns nil
func OrderShipmentModelFromDomain(o *order.Order) *OrderShipmentModel {
	if o.Shipment == nil {
		return nil
	}
	return &OrderShipmentModel{
		ID:             o.Shipment.ID,
		OrderID:        o.ID,
		ShipmentTypeID: o.Shipment.ShipmentTypeID,
		ShippingDate:   o.Shipment.ShippingDate,
		ShipmentPrice:  o.Shipment.Price,
	}
}

// OrderStatusModel is one step of the order timeline
type OrderStatusModel struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_order_status_type,priority:1"`
	Type          order.Status `gorm:"type:smallint;not null;uniqueIndex:idx_order_status_type,priority:2"`
	EstimatedTime time.Time    `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderStatusModel) TableName() string { return "order_statuses" }

// OrderStatusModelsFromDomain converts the timeline of o
func OrderStatusModelsFromDomain(o *order.Order) []OrderStatusModel {
	out := make([]OrderStatusModel, 0, len(o.Statuses))
	for _, st := range o.Statuses {
		out = append(out, OrderStatusModel{
			ID:            uuid.New(),
			OrderID:       o.ID,
			Type:          st.Type,
			EstimatedTime: st.EstimatedTime,
		})
	}
	return out
}
