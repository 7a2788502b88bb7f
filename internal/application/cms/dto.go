package cms

import (
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/cms"
	"github.com/shopspring/decimal"
)

// CreateOfferRequest creates a product offer
type CreateOfferRequest struct {
	Title       string    `json:"title" binding:"required,min=1,max=100"`
	ActiveFrom  time.Time `json:"active_from" binding:"required"`
	ActiveUntil time.Time `json:"active_until" binding:"required"`
}

// AddOfferItemRequest puts a product on an offer
type AddOfferItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Discount  decimal.Decimal `json:"discount" binding:"required"`
	Stock     *int            `json:"stock" binding:"omitempty,min=0"`
}

// CreateSliderRequest creates a home page slider
type CreateSliderRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=100"`
	ImageKey string `json:"image_key" binding:"max=500"`
	Link     string `json:"link" binding:"omitempty,max=500,url"`
	Priority int    `json:"priority"`
}

// CreateBannerRequest creates a banner
type CreateBannerRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=100"`
	ImageKey string `json:"image_key" binding:"max=500"`
	Link     string `json:"link" binding:"omitempty,max=500,url"`
	Holder   int    `json:"holder" binding:"oneof=0 1"`
}

// OfferItemResponse is a product on offer
type OfferItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Discount  decimal.Decimal `json:"discount"`
	Stock     *int            `json:"stock"`
	SoldStock int             `json:"sold_stock"`
	Remaining *int            `json:"remaining"`
	IsActive  bool            `json:"is_active"`
}

// OfferResponse is an offer with its items
type OfferResponse struct {
	ID          uuid.UUID           `json:"id"`
	Title       string              `json:"title"`
	ActiveFrom  time.Time           `json:"active_from"`
	ActiveUntil time.Time           `json:"active_until"`
	IsActive    bool                `json:"is_active"`
	Items       []OfferItemResponse `json:"items"`
}

// SliderResponse is a slider
type SliderResponse struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	ImageURL string    `json:"image_url"`
	Link     string    `json:"link"`
	Priority int       `json:"priority"`
}

// BannerResponse is a banner
type BannerResponse struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	ImageURL string    `json:"image_url"`
	Link     string    `json:"link"`
	Holder   int       `json:"holder"`
}

// ToOfferResponse converts an offer
func ToOfferResponse(o *cms.ProductOffer) OfferResponse {
	items := make([]OfferItemResponse, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items[i] = OfferItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Discount:  item.Discount,
			Stock:     item.Stock,
			SoldStock: item.SoldStock,
			Remaining: item.Remaining(),
			IsActive:  item.IsActive,
		}
	}
	return OfferResponse{
		ID:          o.ID,
		Title:       o.Title,
		ActiveFrom:  o.ActiveFrom,
		ActiveUntil: o.ActiveUntil,
		IsActive:    o.IsActive,
		Items:       items,
	}
}
