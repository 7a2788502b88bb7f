package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductListFilter narrows the public product listing
type ProductListFilter struct {
	Search     string     `form:"search" binding:"max=100"`
	CategoryID *uuid.UUID `form:"category_id"`
	BrandID    *uuid.UUID `form:"brand_id"`
	Sort       string     `form:"sort"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CreateProductRequest creates a product
type CreateProductRequest struct {
	Title       string          `json:"title" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=3000"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock" binding:"min=0"`
	CategoryID  *uuid.UUID      `json:"category_id"`
	BrandID     *uuid.UUID      `json:"brand_id"`
	Tags        []string        `json:"tags" binding:"omitempty,max=20,dive,max=50"`
	VariantIDs  []uuid.UUID     `json:"variant_ids"`
}

// UpdateProductRequest updates a product
type UpdateProductRequest struct {
	Title       string          `json:"title" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=3000"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	CategoryID  *uuid.UUID      `json:"category_id"`
	BrandID     *uuid.UUID      `json:"brand_id"`
	Tags        []string        `json:"tags" binding:"omitempty,max=20,dive,max=50"`
	VariantIDs  []uuid.UUID     `json:"variant_ids"`
	IsActive    *bool           `json:"is_active"`
}

// SetStockRequest overwrites the stock of a product
type SetStockRequest struct {
	Stock int `json:"stock" binding:"min=0"`
}

// CreateDiscountRequest puts a discount on a product
type CreateDiscountRequest struct {
	Type        int             `json:"type" binding:"oneof=0 1"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	ActiveFrom  *time.Time      `json:"active_from"`
	ActiveUntil *time.Time      `json:"active_until"`
}

// AddPropertyRequest adds a property value to a product
type AddPropertyRequest struct {
	Title    string `json:"title" binding:"required,max=100"`
	Value    string `json:"value" binding:"required,max=100"`
	Priority int    `json:"priority"`
}

// ImageUploadRequest asks for a presigned image upload URL
type ImageUploadRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

// AttachImageRequest attaches an uploaded image to a product
type AttachImageRequest struct {
	StorageKey string `json:"storage_key" binding:"required,max=500"`
	Priority   int    `json:"priority"`
}

// CreateCategoryRequest creates a category
type CreateCategoryRequest struct {
	Title    string     `json:"title" binding:"required,min=1,max=100"`
	ParentID *uuid.UUID `json:"parent_id"`
	Priority int        `json:"priority"`
}

// CreateBrandRequest creates a brand
type CreateBrandRequest struct {
	Title string `json:"title" binding:"required,min=1,max=100"`
}

// CreateReviewRequest rates a product
type CreateReviewRequest struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Text   string `json:"text" binding:"max=2000"`
}

// PriceResponse is the price of one unit after discounts
type PriceResponse struct {
	Price           decimal.Decimal `json:"price"`
	FinalPrice      decimal.Decimal `json:"final_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// ImageResponse is a product image with a download URL
type ImageResponse struct {
	ID         uuid.UUID `json:"id"`
	StorageKey string    `json:"storage_key"`
	URL        string    `json:"url"`
	Priority   int       `json:"priority"`
}

// ProductCardResponse is a product as shown in listings
type ProductCardResponse struct {
	ID         uuid.UUID     `json:"id"`
	Title      string        `json:"title"`
	Slug       string        `json:"slug"`
	Stock      int           `json:"stock"`
	CategoryID *uuid.UUID    `json:"category_id"`
	BrandID    *uuid.UUID    `json:"brand_id"`
	ViewCount  int64         `json:"view_count"`
	Pricing    PriceResponse `json:"pricing"`
	ImageURL   string        `json:"image_url,omitempty"`
	InWishlist bool          `json:"in_wishlist"`
}

// ProductDetailResponse is a product page
type ProductDetailResponse struct {
	ProductCardResponse
	Description string                  `json:"description"`
	Tags        []string                `json:"tags"`
	IsActive    bool                    `json:"is_active"`
	Images      []ImageResponse         `json:"images"`
	Variants    []ProductCardResponse   `json:"variants"`
	Properties  []PropertyGroupResponse `json:"properties"`
	Rating      RatingResponse          `json:"rating"`
	CreatedAt   time.Time               `json:"created_at"`
}

// PropertyResponse is one property value
type PropertyResponse struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Value    string    `json:"value"`
	Priority int       `json:"priority"`
}

// PropertyGroupResponse lists the values offered under one property title
type PropertyGroupResponse struct {
	Title  string             `json:"title"`
	Values []PropertyResponse `json:"values"`
}

// RatingResponse summarizes the accepted reviews of a product
type RatingResponse struct {
	Count   int64           `json:"count"`
	Average decimal.Decimal `json:"average"`
	Stars   int             `json:"stars"`
}

// OfferProductsResponse is a running offer with its products
type OfferProductsResponse struct {
	OfferID     uuid.UUID             `json:"offer_id"`
	Title       string                `json:"title"`
	ActiveUntil time.Time             `json:"active_until"`
	Products    []ProductCardResponse `json:"products"`
}

// ImageUploadResponse is a presigned upload URL
type ImageUploadResponse struct {
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// DiscountResponse is a product discount
type DiscountResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	Type        int             `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	ActiveFrom  *time.Time      `json:"active_from"`
	ActiveUntil *time.Time      `json:"active_until"`
	IsActive    bool            `json:"is_active"`
}

// CategoryResponse is a category
type CategoryResponse struct {
	ID       uuid.UUID  `json:"id"`
	Title    string     `json:"title"`
	Slug     string     `json:"slug"`
	ParentID *uuid.UUID `json:"parent_id"`
	Priority int        `json:"priority"`
}

// BrandResponse is a brand
type BrandResponse struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
}

// ReviewResponse is an accepted review
type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// WishlistToggleResponse reports the result of a wishlist toggle
type WishlistToggleResponse struct {
	Status int   `json:"status"`
	Count  int64 `json:"count"`
}

// ToCategoryResponse converts a category
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:       c.ID,
		Title:    c.Title,
		Slug:     c.Slug,
		ParentID: c.ParentID,
		Priority: c.Priority,
	}
}

// ToBrandResponse converts a brand
func ToBrandResponse(b *catalog.Brand) BrandResponse {
	return BrandResponse{ID: b.ID, Title: b.Title, Slug: b.Slug}
}

// ToReviewResponse converts a review
func ToReviewResponse(r *catalog.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		Rating:    int(r.Rating),
		Text:      r.Text,
		CreatedAt: r.CreatedAt,
	}
}

// ToDiscountResponse converts a discount
func ToDiscountResponse(d *catalog.ProductDiscount) DiscountResponse {
	return DiscountResponse{
		ID:          d.ID,
		ProductID:   d.ProductID,
		Type:        int(d.Type),
		Amount:      d.Amount,
		ActiveFrom:  d.ActiveFrom,
		ActiveUntil: d.ActiveUntil,
		IsActive:    d.IsActive,
	}
}

func toRatingResponse(s catalog.RatingSummary) RatingResponse {
	return RatingResponse{Count: s.Count, Average: s.Average, Stars: s.Stars()}
}

func toPropertyResponse(p *catalog.Property) PropertyResponse {
	return PropertyResponse{ID: p.ID, Title: p.Title, Value: p.Value, Priority: p.Priority}
}

func toPropertyGroups(groups []catalog.PropertyGroup) []PropertyGroupResponse {
	out := make([]PropertyGroupResponse, len(groups))
	for i, g := range groups {
		values := make([]PropertyResponse, len(g.Values))
		for j := range g.Values {
			values[j] = toPropertyResponse(&g.Values[j])
		}
		out[i] = PropertyGroupResponse{Title: g.Title, Values: values}
	}
	return out
}
