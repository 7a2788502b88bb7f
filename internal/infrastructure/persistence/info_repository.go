package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/info"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInfoRepository implements info.Repository using GORM
type GormInfoRepository struct {
	db *gorm.DB
}

// NewGormInfoRepository creates a new GormInfoRepository
func NewGormInfoRepository(db *gorm.DB) *GormInfoRepository {
	return &GormInfoRepository{db: db}
}

// LatestPage returns the newest active page of a kind
func (r *GormInfoRepository) LatestPage(ctx context.Context, kind info.PageKind) (*info.Page, error) {
	var model models.PageModel
	if err := r.db.WithContext(ctx).
		Where("kind = ? AND is_active = ?", kind, true).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SavePage creates or updates a page
func (r *GormInfoRepository) SavePage(ctx context.Context, page *info.Page) error {
	return r.db.WithContext(ctx).Save(models.PageModelFromDomain(page)).Error
}

// ListFAQGroups returns the groups and their questions, highest priority first
func (r *GormInfoRepository) ListFAQGroups(ctx context.Context) ([]info.FAQGroup, error) {
	var groupModels []models.FAQGroupModel
	if err := r.db.WithContext(ctx).
		Preload("FAQs", func(tx *gorm.DB) *gorm.DB { return tx.Order("priority DESC") }).
		Order("priority DESC").
		Find(&groupModels).Error; err != nil {
		return nil, err
	}
	groups := make([]info.FAQGroup, len(groupModels))
	for i := range groupModels {
		groups[i] = *groupModels[i].ToDomain()
	}
	return groups, nil
}

// SaveFAQGroup writes a group and upserts its questions
func (r *GormInfoRepository) SaveFAQGroup(ctx context.Context, group *info.FAQGroup) error {
	model := models.FAQGroupModelFromDomain(group)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(model).Error; err != nil {
		return err
	}
	for i := range model.FAQs {
		if err := r.db.WithContext(ctx).Save(&model.FAQs[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// ListShopLocations returns every shop location
func (r *GormInfoRepository) ListShopLocations(ctx context.Context) ([]info.ShopLocation, error) {
	var locationModels []models.ShopLocationModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&locationModels).Error; err != nil {
		return nil, err
	}
	locations := make([]info.ShopLocation, len(locationModels))
	for i := range locationModels {
		locations[i] = *locationModels[i].ToDomain()
	}
	return locations, nil
}

// SaveShopLocation creates or updates a shop location
func (r *GormInfoRepository) SaveShopLocation(ctx context.Context, location *info.ShopLocation) error {
	return r.db.WithContext(ctx).Save(models.ShopLocationModelFromDomain(location)).Error
}

// ListStates returns every state by title
func (r *GormInfoRepository) ListStates(ctx context.Context) ([]info.State, error) {
	var stateModels []models.StateModel
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&stateModels).Error; err != nil {
		return nil, err
	}
	states := make([]info.State, len(stateModels))
	for i, m := range stateModels {
		states[i] = info.State{ID: m.ID, Title: m.Title}
	}
	return states, nil
}

// ListCities returns the cities of a state by title
func (r *GormInfoRepository) ListCities(ctx context.Context, stateID uuid.UUID) ([]info.City, error) {
	var cityModels []models.CityModel
	if err := r.db.WithContext(ctx).Where("state_id = ?", stateID).Order("title ASC").Find(&cityModels).Error; err != nil {
		return nil, err
	}
	cities := make([]info.City, len(cityModels))
	for i, m := range cityModels {
		cities[i] = info.City{ID: m.ID, StateID: m.StateID, Title: m.Title}
	}
	return cities, nil
}

// ListInquiryCategories returns the contact form categories by priority
func (r *GormInfoRepository) ListInquiryCategories(ctx context.Context) ([]info.InquiryCategory, error) {
	var categoryModels []models.InquiryCategoryModel
	if err := r.db.WithContext(ctx).Order("priority DESC, title ASC").Find(&categoryModels).Error; err != nil {
		return nil, err
	}
	categories := make([]info.InquiryCategory, len(categoryModels))
	for i, m := range categoryModels {
		categories[i] = info.InquiryCategory{ID: m.ID, Title: m.Title, Priority: m.Priority}
	}
	return categories, nil
}

// SaveContactRequest stores a contact form submission
func (r *GormInfoRepository) SaveContactRequest(ctx context.Context, req *info.ContactRequest) error {
	return r.db.WithContext(ctx).Create(models.ContactRequestModelFromDomain(req)).Error
}

var _ info.Repository = (*GormInfoRepository)(nil)
