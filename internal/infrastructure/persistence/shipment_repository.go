package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/shipment"
	"github.com/shop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormShipmentTypeRepository implements shipment.Repository using GORM
type GormShipmentTypeRepository struct {
	db *gorm.DB
}

// NewGormShipmentTypeRepository creates a new GormShipmentTypeRepository
func NewGormShipmentTypeRepository(db *gorm.DB) *GormShipmentTypeRepository {
	return &GormShipmentTypeRepository{db: db}
}

// FindByID finds a shipment type by its ID
func (r *GormShipmentTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipment.ShipmentType, error) {
	var model models.ShipmentTypeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListActive returns the active shipment types, cheapest first
func (r *GormShipmentTypeRepository) ListActive(ctx context.Context) ([]shipment.ShipmentType, error) {
	var typeModels []models.ShipmentTypeModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("price ASC, title ASC").
		Find(&typeModels).Error; err != nil {
		return nil, err
	}
	types := make([]shipment.ShipmentType, len(typeModels))
	for i := range typeModels {
		types[i] = *typeModels[i].ToDomain()
	}
	return types, nil
}

// Save creates or updates a shipment type
func (r *GormShipmentTypeRepository) Save(ctx context.Context, st *shipment.ShipmentType) error {
	return r.db.WithContext(ctx).Save(models.ShipmentTypeModelFromDomain(st)).Error
}

var _ shipment.Repository = (*GormShipmentTypeRepository)(nil)
