package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/order"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const orderBatchSize = 100

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func preloadOrderChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("product_title ASC") }).
		Preload("Shipment").
		Preload("Statuses", func(tx *gorm.DB) *gorm.DB { return tx.Order("type ASC") })
}

// FindByID finds an order with its items, shipment and timeline
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := preloadOrderChildren(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByUser returns the user's orders newest first
func (r *GormOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, int64, error) {
	filter.OrderBy, filter.OrderDir = "created_at", "desc"
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}, filter)
}

// List returns every order, optionally narrowed to one status
func (r *GormOrderRepository) List(ctx context.Context, status *order.Status, filter shared.Filter) ([]order.Order, int64, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		if status != nil {
			db = db.Where("current_status = ?", *status)
		}
		return db
	}, filter)
}

func (r *GormOrderRepository) list(ctx context.Context, conditions func(*gorm.DB) *gorm.DB, filter shared.Filter) ([]order.Order, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).Scopes(conditions).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orderModels []models.OrderModel
	q := preloadOrderChildren(r.db.WithContext(ctx)).
		Scopes(conditions).
		Order(orderSorts.by(filter))
	if err := paginate(q, filter).Find(&orderModels).Error; err != nil {
		return nil, 0, err
	}
	orders := make([]order.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = *orderModels[i].ToDomain()
	}
	return orders, total, nil
}

// Create inserts the order, then bulk inserts its items, shipment and statuses
func (r *GormOrderRepository) Create(ctx context.Context, o *order.Order) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(models.OrderModelFromDomain(o)).Error; err != nil {
		return err
	}
	if items := models.OrderItemModelsFromDomain(o); len(items) > 0 {
		if err := db.CreateInBatches(items, orderBatchSize).Error; err != nil {
			return err
		}
	}
	if shipment := models.OrderShipmentModelFromDomain(o); shipment != nil {
		if err := db.Create(shipment).Error; err != nil {
			return err
		}
	}
	if statuses := models.OrderStatusModelsFromDomain(o); len(statuses) > 0 {
		if err := db.CreateInBatches(statuses, orderBatchSize).Error; err != nil {
			return err
		}
	}
	return nil
}

// UpdateStatus writes the current status, guarded by the aggregate version
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, o *order.Order) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND version = ?", o.ID, o.Version).
		Updates(map[string]any{
			"current_status": o.CurrentStatus,
			"version":        gorm.Expr("version + 1"),
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	o.IncrementVersion()
	return nil
}

var _ order.Repository = (*GormOrderRepository)(nil)
