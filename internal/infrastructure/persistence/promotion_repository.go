package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/promotion"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCouponRepository implements promotion.CouponRepository using GORM
type GormCouponRepository struct {
	db *gorm.DB
}

// NewGormCouponRepository creates a new GormCouponRepository
func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

func (r *GormCouponRepository) first(db *gorm.DB, query string, args ...any) (*promotion.Coupon, error) {
	var model models.CouponModel
	if err := db.Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByID finds a coupon by its ID
func (r *GormCouponRepository) FindByID(ctx context.Context, id uuid.UUID) (*promotion.Coupon, error) {
	return r.first(r.db.WithContext(ctx), "id = ?", id)
}

// FindByCode finds a coupon by its exact code
func (r *GormCouponRepository) FindByCode(ctx context.Context, code string) (*promotion.Coupon, error) {
	return r.first(r.db.WithContext(ctx), "code = ?", strings.TrimSpace(code))
}

// FindByIDForUpdate finds a coupon and locks its row
func (r *GormCouponRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*promotion.Coupon, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), "id = ?", id)
}

// List returns a page of coupons, optionally searched by code or title
func (r *GormCouponRepository) List(ctx context.Context, filter shared.Filter) ([]promotion.Coupon, int64, error) {
	conditions := func(db *gorm.DB) *gorm.DB {
		if filter.Search != "" {
			pattern := likePattern(filter.Search)
			db = db.Where("LOWER(code) LIKE ? ESCAPE '\\' OR LOWER(title) LIKE ? ESCAPE '\\'", pattern, pattern)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.CouponModel{}).Scopes(conditions).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var couponModels []models.CouponModel
	q := r.db.WithContext(ctx).Scopes(conditions).Order(couponSorts.by(filter))
	if err := paginate(q, filter).Find(&couponModels).Error; err != nil {
		return nil, 0, err
	}
	coupons := make([]promotion.Coupon, len(couponModels))
	for i := range couponModels {
		coupons[i] = *couponModels[i].ToDomain()
	}
	return coupons, total, nil
}

// Save creates or updates a coupon
func (r *GormCouponRepository) Save(ctx context.Context, coupon *promotion.Coupon) error {
	return r.db.WithContext(ctx).Save(models.CouponModelFromDomain(coupon)).Error
}

// Usage counts the consumes of a coupon and whether userID is among them
func (r *GormCouponRepository) Usage(ctx context.Context, couponID, userID uuid.UUID) (promotion.Usage, error) {
	var usage promotion.Usage
	if err := r.db.WithContext(ctx).
		Model(&models.CouponConsumeModel{}).
		Where("coupon_id = ?", couponID).
		Count(&usage.TotalConsumed).Error; err != nil {
		return promotion.Usage{}, err
	}
	var mine int64
	if err := r.db.WithContext(ctx).
		Model(&models.CouponConsumeModel{}).
		Where("coupon_id = ? AND user_id = ?", couponID, userID).
		Count(&mine).Error; err != nil {
		return promotion.Usage{}, err
	}
	usage.UsedByUser = mine > 0
	return usage, nil
}

// SaveConsume records that a user consumed a coupon
func (r *GormCouponRepository) SaveConsume(ctx context.Context, consume *promotion.CouponConsume) error {
	if err := r.db.WithContext(ctx).Create(models.CouponConsumeModelFromDomain(consume)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return promotion.ErrCouponAlreadyUsed
		}
		return err
	}
	return nil
}

var _ promotion.CouponRepository = (*GormCouponRepository)(nil)
