package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/messaging"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const messageBatchSize = 200

// GormMessageRepository implements messaging.MessageRepository using GORM
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GormMessageRepository
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// FindByID finds a message by ID
func (r *GormMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*messaging.UserMessage, error) {
	var model models.UserMessageModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListInApp returns the user's in-app messages newest first
func (r *GormMessageRepository) ListInApp(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]messaging.UserMessage, int64, error) {
	inbox := func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ? AND send_in_app = ?", userID, true)
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.UserMessageModel{}).Scopes(inbox).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var messageModels []models.UserMessageModel
	q := r.db.WithContext(ctx).Scopes(inbox).Order("created_at DESC, id DESC")
	if err := paginate(q, filter).Find(&messageModels).Error; err != nil {
		return nil, 0, err
	}
	messages := make([]messaging.UserMessage, len(messageModels))
	for i := range messageModels {
		messages[i] = *messageModels[i].ToDomain()
	}
	return messages, total, nil
}

// CountUnseen counts the in-app messages the user has not opened
func (r *GormMessageRepository) CountUnseen(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserMessageModel{}).
		Where("user_id = ? AND send_in_app = ? AND is_seen = ?", userID, true, false).
		Count(&count).Error
	return count, err
}

// Save creates or updates a message
func (r *GormMessageRepository) Save(ctx context.Context, message *messaging.UserMessage) error {
	return r.db.WithContext(ctx).Save(models.UserMessageModelFromDomain(message)).Error
}

// SaveBatch inserts many messages at once
func (r *GormMessageRepository) SaveBatch(ctx context.Context, messages []messaging.UserMessage) error {
	if len(messages) == 0 {
		return nil
	}
	messageModels := make([]*models.UserMessageModel, len(messages))
	for i := range messages {
		messageModels[i] = models.UserMessageModelFromDomain(&messages[i])
	}
	return r.db.WithContext(ctx).CreateInBatches(messageModels, messageBatchSize).Error
}

// MarkSeen flags a message as opened
func (r *GormMessageRepository) MarkSeen(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.UserMessageModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_seen": true, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormGroupRepository implements messaging.GroupRepository using GORM
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGormGroupRepository creates a new GormGroupRepository
func NewGormGroupRepository(db *gorm.DB) *GormGroupRepository {
	return &GormGroupRepository{db: db}
}

// FindByID finds a group by ID
func (r *GormGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*messaging.Group, error) {
	var model models.GroupModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns every group by title
func (r *GormGroupRepository) List(ctx context.Context) ([]messaging.Group, error) {
	var groupModels []models.GroupModel
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&groupModels).Error; err != nil {
		return nil, err
	}
	groups := make([]messaging.Group, len(groupModels))
	for i := range groupModels {
		groups[i] = *groupModels[i].ToDomain()
	}
	return groups, nil
}

// Save creates or updates a group
func (r *GormGroupRepository) Save(ctx context.Context, group *messaging.Group) error {
	return r.db.WithContext(ctx).Save(models.GroupModelFromDomain(group)).Error
}

// AddMember adds a user to a group; adding an existing member is a no-op
func (r *GormGroupRepository) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	member := &models.GroupUserModel{
		ID:        uuid.New(),
		GroupID:   groupID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(member).Error
}

// MemberIDs returns the user ids of a group's members
func (r *GormGroupRepository) MemberIDs(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.GroupUserModel{}).
		Where("group_id = ?", groupID).
		Order("created_at ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

// FindMessage finds a group message by ID
func (r *GormGroupRepository) FindMessage(ctx context.Context, id uuid.UUID) (*messaging.GroupMessage, error) {
	var model models.GroupMessageModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SaveMessage creates or updates a group message
func (r *GormGroupRepository) SaveMessage(ctx context.Context, message *messaging.GroupMessage) error {
	return r.db.WithContext(ctx).Save(models.GroupMessageModelFromDomain(message)).Error
}

// GormDeviceRepository implements messaging.DeviceRepository using GORM
type GormDeviceRepository struct {
	db *gorm.DB
}

// NewGormDeviceRepository creates a new GormDeviceRepository
func NewGormDeviceRepository(db *gorm.DB) *GormDeviceRepository {
	return &GormDeviceRepository{db: db}
}

// FindByToken finds a device by its push token
func (r *GormDeviceRepository) FindByToken(ctx context.Context, token uuid.UUID) (*messaging.UserDevice, error) {
	var model models.UserDeviceModel
	if err := r.db.WithContext(ctx).First(&model, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByUser returns the devices registered by a user
func (r *GormDeviceRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]messaging.UserDevice, error) {
	var deviceModels []models.UserDeviceModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&deviceModels).Error; err != nil {
		return nil, err
	}
	devices := make([]messaging.UserDevice, len(deviceModels))
	for i := range deviceModels {
		devices[i] = *deviceModels[i].ToDomain()
	}
	return devices, nil
}

// Save creates or updates a device
func (r *GormDeviceRepository) Save(ctx context.Context, device *messaging.UserDevice) error {
	return r.db.WithContext(ctx).Save(models.UserDeviceModelFromDomain(device)).Error
}

var (
	_ messaging.MessageRepository = (*GormMessageRepository)(nil)
	_ messaging.GroupRepository   = (*GormGroupRepository)(nil)
	_ messaging.DeviceRepository  = (*GormDeviceRepository)(nil)
)
