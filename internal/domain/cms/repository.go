package cms

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OfferRepository persists offers and their items
type OfferRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductOffer, error)
	// FindRunning returns active offers whose window contains now, with items
	FindRunning(ctx context.Context, now time.Time) ([]ProductOffer, error)
	// FindItemsByProductIDs returns every offer item of the products, with its parent offer
	FindItemsByProductIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID][]ProductOfferItem, error)
	// FindItemsByProductIDsForUpdate is FindItemsByProductIDs with the item rows locked
	FindItemsByProductIDsForUpdate(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID][]ProductOfferItem, error)
	ProductOnOffer(ctx context.Context, productID uuid.UUID) (bool, error)
	Save(ctx context.Context, offer *ProductOffer) error
	// UpdateSoldStock writes the sold stock column of every given item
	UpdateSoldStock(ctx context.Context, items []*ProductOfferItem) error
	// DeactivateExpired switches off active offers that ended before now
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

// ContentRepository persists sliders and banners
type ContentRepository interface {
	ListSliders(ctx context.Context) ([]Slider, error)
	ListBanners(ctx context.Context, holder *BannerHolder) ([]Banner, error)
	SaveSlider(ctx context.Context, slider *Slider) error
	SaveBanner(ctx context.Context, banner *Banner) error
}
