package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/cms"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOfferRepository implements cms.OfferRepository using GORM
type GormOfferRepository struct {
	db *gorm.DB
}

// NewGormOfferRepository creates a new GormOfferRepository
func NewGormOfferRepository(db *gorm.DB) *GormOfferRepository {
	return &GormOfferRepository{db: db}
}

// FindByID finds an offer with its items
func (r *GormOfferRepository) FindByID(ctx context.Context, id uuid.UUID) (*cms.ProductOffer, error) {
	var model models.ProductOfferModel
	if err := r.db.WithContext(ctx).Preload("Items").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindRunning returns the active offers whose window contains now
func (r *GormOfferRepository) FindRunning(ctx context.Context, now time.Time) ([]cms.ProductOffer, error) {
	var offerModels []models.ProductOfferModel
	if err := r.db.WithContext(ctx).
		Preload("Items", "is_active = ?", true).
		Where("is_active = ? AND active_from <= ? AND active_until >= ?", true, now, now).
		Order("active_until ASC").
		Find(&offerModels).Error; err != nil {
		return nil, err
	}
	offers := make([]cms.ProductOffer, len(offerModels))
	for i := range offerModels {
		offers[i] = *offerModels[i].ToDomain()
	}
	return offers, nil
}

// FindItemsByProductIDs returns the offer items of the products, each with its offer
func (r *GormOfferRepository) FindItemsByProductIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID][]cms.ProductOfferItem, error) {
	return r.findItems(r.db.WithContext(ctx), productIDs)
}

// FindItemsByProductIDsForUpdate locks the item rows until the transaction ends
func (r *GormOfferRepository) FindItemsByProductIDsForUpdate(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID][]cms.ProductOfferItem, error) {
	return r.findItems(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), productIDs)
}

func (r *GormOfferRepository) findItems(db *gorm.DB, productIDs []uuid.UUID) (map[uuid.UUID][]cms.ProductOfferItem, error) {
	result := make(map[uuid.UUID][]cms.ProductOfferItem)
	if len(productIDs) == 0 {
		return result, nil
	}
	var itemModels []models.ProductOfferItemModel
	if err := db.Preload("Offer").
		Where("product_id IN ?", productIDs).
		Order("id").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}
	for i := range itemModels {
		item := itemModels[i].ToDomain()
		result[item.ProductID] = append(result[item.ProductID], *item)
	}
	return result, nil
}

// ProductOnOffer reports whether the product already belongs to an offer
func (r *GormOfferRepository) ProductOnOffer(ctx context.Context, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProductOfferItemModel{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count > 0, err
}

// Save writes the offer and upserts its items
func (r *GormOfferRepository) Save(ctx context.Context, offer *cms.ProductOffer) error {
	model := models.ProductOfferModelFromDomain(offer)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(model).Error; err != nil {
		return err
	}
	for i := range model.Items {
		if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(&model.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// UpdateSoldStock writes the sold_stock column of each item
func (r *GormOfferRepository) UpdateSoldStock(ctx context.Context, items []*cms.ProductOfferItem) error {
	for _, item := range items {
		if err := r.db.WithContext(ctx).
			Model(&models.ProductOfferItemModel{}).
			Where("id = ?", item.ID).
			UpdateColumn("sold_stock", item.SoldStock).Error; err != nil {
			return err
		}
	}
	return nil
}

// DeactivateExpired switches off active offers that ended before now
func (r *GormOfferRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ProductOfferModel{}).
		Where("is_active = ? AND active_until < ?", true, now).
		Updates(map[string]any{"is_active": false, "updated_at": now})
	return result.RowsAffected, result.Error
}

// GormContentRepository implements cms.ContentRepository using GORM
type GormContentRepository struct {
	db *gorm.DB
}

// NewGormContentRepository creates a new GormContentRepository
func NewGormContentRepository(db *gorm.DB) *GormContentRepository {
	return &GormContentRepository{db: db}
}

// ListSliders returns active sliders by priority
func (r *GormContentRepository) ListSliders(ctx context.Context) ([]cms.Slider, error) {
	var sliderModels []models.SliderModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("priority DESC, created_at DESC").
		Find(&sliderModels).Error; err != nil {
		return nil, err
	}
	sliders := make([]cms.Slider, len(sliderModels))
	for i := range sliderModels {
		sliders[i] = *sliderModels[i].ToDomain()
	}
	return sliders, nil
}

// ListBanners returns active banners, optionally of one holder
func (r *GormContentRepository) ListBanners(ctx context.Context, holder *cms.BannerHolder) ([]cms.Banner, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if holder != nil {
		q = q.Where("holder = ?", *holder)
	}
	var bannerModels []models.BannerModel
	if err := q.Order("holder ASC, created_at DESC").Find(&bannerModels).Error; err != nil {
		return nil, err
	}
	banners := make([]cms.Banner, len(bannerModels))
	for i := range bannerModels {
		banners[i] = *bannerModels[i].ToDomain()
	}
	return banners, nil
}

// SaveSlider creates or updates a slider
func (r *GormContentRepository) SaveSlider(ctx context.Context, slider *cms.Slider) error {
	return r.db.WithContext(ctx).Save(models.SliderModelFromDomain(slider)).Error
}

// SaveBanner creates or updates a banner
func (r *GormContentRepository) SaveBanner(ctx context.Context, banner *cms.Banner) error {
	return r.db.WithContext(ctx).Save(models.BannerModelFromDomain(banner)).Error
}

var (
	_ cms.OfferRepository   = (*GormOfferRepository)(nil)
	_ cms.ContentRepository = (*GormContentRepository)(nil)
)
