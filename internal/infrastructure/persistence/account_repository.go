package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/account"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUserRepository implements account.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) first(ctx context.Context, query string, args ...any) (*account.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.User, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByIDs returns the users that exist among ids
func (r *GormUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]account.User, error) {
	if len(ids) == 0 {
		return []account.User{}, nil
	}
	var userModels []models.UserModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&userModels).Error; err != nil {
		return nil, err
	}
	return usersToDomain(userModels), nil
}

// FindByEmail finds a user by email, case-insensitively
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*account.User, error) {
	return r.first(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

// FindByWalletID finds the owner of a wallet
func (r *GormUserRepository) FindByWalletID(ctx context.Context, walletID uuid.UUID) (*account.User, error) {
	return r.first(ctx, "wallet_id = ?", walletID)
}

// ExistsByEmail checks if an email is already registered
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count > 0, err
}

// List returns a page of users, optionally searched by email or name
func (r *GormUserRepository) List(ctx context.Context, filter shared.Filter) ([]account.User, int64, error) {
	conditions := func(db *gorm.DB) *gorm.DB {
		if filter.Search != "" {
			pattern := likePattern(filter.Search)
			db = db.Where("LOWER(email) LIKE ? ESCAPE '\\' OR LOWER(full_name) LIKE ? ESCAPE '\\'", pattern, pattern)
		}
		if staff, ok := filter.Filters["is_staff"].(bool); ok {
			db = db.Where("is_staff = ?", staff)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.UserModel{}).Scopes(conditions).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var userModels []models.UserModel
	q := r.db.WithContext(ctx).Scopes(conditions).Order(userSorts.by(filter))
	if err := paginate(q, filter).Find(&userModels).Error; err != nil {
		return nil, 0, err
	}
	return usersToDomain(userModels), total, nil
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, user *account.User) error {
	if err := r.db.WithContext(ctx).Save(models.UserModelFromDomain(user)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError("ALREADY_EXISTS", "A user with this email or phone number already exists")
		}
		return err
	}
	return nil
}

func usersToDomain(userModels []models.UserModel) []account.User {
	users := make([]account.User, len(userModels))
	for i := range userModels {
		users[i] = *userModels[i].ToDomain()
	}
	return users
}

// GormAddressRepository implements account.AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// FindByID finds an address by ID
func (r *GormAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.Address, error) {
	var model models.AddressModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByUser returns the user's addresses, oldest first
func (r *GormAddressRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]account.Address, error) {
	var addressModels []models.AddressModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&addressModels).Error; err != nil {
		return nil, err
	}
	addresses := make([]account.Address, len(addressModels))
	for i := range addressModels {
		addresses[i] = *addressModels[i].ToDomain()
	}
	return addresses, nil
}

// Save creates or updates an address
func (r *GormAddressRepository) Save(ctx context.Context, address *account.Address) error {
	return r.db.WithContext(ctx).Save(models.AddressModelFromDomain(address)).Error
}

// Delete removes an address
func (r *GormAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AddressModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var (
	_ account.UserRepository    = (*GormUserRepository)(nil)
	_ account.AddressRepository = (*GormAddressRepository)(nil)
)
