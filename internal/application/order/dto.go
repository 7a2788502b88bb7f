package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// PlaceOrderRequest turns the caller's cart into an order
type PlaceOrderRequest struct {
	ShipmentTypeID uuid.UUID `json:"shipment_type_id" binding:"required"`
	AddressID      uuid.UUID `json:"address_id" binding:"required"`
	CouponCode     string    `json:"coupon_code" binding:"max=50"`
	Note           string    `json:"note" binding:"max=1000"`
}

// UpdateStatusRequest moves an order to another status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ItemResponse is one order line
type ItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"product_id"`
	ProductTitle    string          `json:"product_title"`
	ProductPrice    decimal.Decimal `json:"product_price"`
	ProductDiscount decimal.Decimal `json:"product_discount"`
	Quantity        int             `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
}

// ShipmentResponse describes the shipment of an order
type ShipmentResponse struct {
	ShipmentTypeID uuid.UUID       `json:"shipment_type_id"`
	ShippingDate   time.Time       `json:"shipping_date"`
	Price          decimal.Decimal `json:"price"`
}

// StatusResponse is one step of the order timeline
type StatusResponse struct {
	Type          int       `json:"type"`
	Name          string    `json:"name"`
	EstimatedTime time.Time `json:"estimated_time"`
	Active        bool      `json:"active"`
}

// OrderResponse is an order with its lines, shipment and timeline
type OrderResponse struct {
	ID                   uuid.UUID         `json:"id"`
	UserID               uuid.UUID         `json:"user_id"`
	AddressID            uuid.UUID         `json:"address_id"`
	CouponID             *uuid.UUID        `json:"coupon_id"`
	Note                 string            `json:"note"`
	ProductTotalPrice    decimal.Decimal   `json:"product_total_price"`
	ProductTotalDiscount decimal.Decimal   `json:"product_total_discount"`
	CouponTotalDiscount  decimal.Decimal   `json:"coupon_total_discount"`
	ShipmentPrice        decimal.Decimal   `json:"shipment_price"`
	TotalPrice           decimal.Decimal   `json:"total_price"`
	CurrentStatus        string            `json:"current_status"`
	Items                []ItemResponse    `json:"items"`
	Shipment             *ShipmentResponse `json:"shipment,omitempty"`
	Statuses             []StatusResponse  `json:"statuses"`
	CreatedAt            time.Time         `json:"created_at"`
}

// ToOrderResponse converts an order
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]ItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = ItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			ProductTitle:    item.ProductTitle,
			ProductPrice:    item.ProductPrice,
			ProductDiscount: item.ProductDiscount,
			Quantity:        item.Quantity,
			Price:           item.Price,
		}
	}
	timeline := o.Timeline()
	statuses := make([]StatusResponse, len(timeline))
	for i, s := range timeline {
		statuses[i] = StatusResponse{
			Type:          int(s.Type),
			Name:          s.Type.String(),
			EstimatedTime: s.EstimatedTime,
			Active:        s.Active,
		}
	}
	resp := OrderResponse{
		ID:                   o.ID,
		UserID:               o.UserID,
		AddressID:            o.AddressID,
		CouponID:             o.CouponID,
		Note:                 o.Note,
		ProductTotalPrice:    o.ProductTotalPrice,
		ProductTotalDiscount: o.ProductTotalDiscount,
		CouponTotalDiscount:  o.CouponTotalDiscount,
		ShipmentPrice:        o.ShipmentPrice,
		TotalPrice:           o.TotalPrice,
		CurrentStatus:        o.CurrentStatus.String(),
		Items:                items,
		Statuses:             statuses,
		CreatedAt:            o.CreatedAt,
	}
	if o.Shipment != nil {
		resp.Shipment = &ShipmentResponse{
			ShipmentTypeID: o.Shipment.ShipmentTypeID,
			ShippingDate:   o.Shipment.ShippingDate,
			Price:          o.Shipment.Price,
		}
	}
	return resp
}
