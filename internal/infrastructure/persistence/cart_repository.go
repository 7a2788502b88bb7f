package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/cart"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCartRepository implements cart.Repository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindLatest returns the most recently updated cart owned by the user or the session
func (r *GormCartRepository) FindLatest(ctx context.Context, owner cart.Owner) (*cart.Cart, error) {
	q := r.db.WithContext(ctx)
	switch {
	case owner.UserID != nil && owner.SessionID != nil && *owner.SessionID != "":
		q = q.Where("user_id = ? OR session_id = ?", *owner.UserID, *owner.SessionID)
	case owner.UserID != nil:
		q = q.Where("user_id = ?", *owner.UserID)
	case owner.SessionID != nil && *owner.SessionID != "":
		q = q.Where("session_id = ?", *owner.SessionID)
	default:
		return nil, cart.ErrNoOwner
	}

	var model models.CartModel
	if err := q.Order("updated_at DESC").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a cart
func (r *GormCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	return r.db.WithContext(ctx).Save(models.CartModelFromDomain(c)).Error
}

// Touch bumps updated_at so the cart stays the latest one
func (r *GormCartRepository) Touch(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.CartModel{}).
		Where("id = ?", cartID).
		UpdateColumn("updated_at", time.Now()).Error
}

// ListItems returns the lines of a cart in insertion order
func (r *GormCartRepository) ListItems(ctx context.Context, cartID uuid.UUID) ([]cart.Item, error) {
	var itemModels []models.CartItemModel
	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("created_at ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}
	items := make([]cart.Item, len(itemModels))
	for i := range itemModels {
		items[i] = *itemModels[i].ToDomain()
	}
	return items, nil
}

// FindItem returns the line of a product in a cart
func (r *GormCartRepository) FindItem(ctx context.Context, cartID, productID uuid.UUID) (*cart.Item, error) {
	var model models.CartItemModel
	if err := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SaveItem creates or updates a cart line
func (r *GormCartRepository) SaveItem(ctx context.Context, item *cart.Item) error {
	return r.db.WithContext(ctx).Save(models.CartItemModelFromDomain(item)).Error
}

// DeleteItem removes the line of a product and reports whether one existed
func (r *GormCartRepository) DeleteItem(ctx context.Context, cartID, productID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItemModel{})
	return result.RowsAffected > 0, result.Error
}

// Clear removes every line of a cart
func (r *GormCartRepository) Clear(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItemModel{}).Error
}

// DeleteStaleSessionCarts removes anonymous carts idle since before, with their lines
func (r *GormCartRepository) DeleteStaleSessionCarts(ctx context.Context, before time.Time) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stale := tx.Model(&models.CartModel{}).
			Select("id").
			Where("user_id IS NULL AND updated_at < ?", before)
		if err := tx.Where("cart_id IN (?)", stale).Delete(&models.CartItemModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("user_id IS NULL AND updated_at < ?", before).Delete(&models.CartModel{})
		deleted = result.RowsAffected
		return result.Error
	})
	return deleted, err
}

var _ cart.Repository = (*GormCartRepository)(nil)
