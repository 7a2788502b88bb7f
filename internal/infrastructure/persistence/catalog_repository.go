package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func preloadImages(db *gorm.DB) *gorm.DB {
	return db.Preload("Images", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("priority DESC, created_at ASC")
	})
}

// FindByID finds a product with its images
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := preloadImages(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs returns the products that exist among ids
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var productModels []models.ProductModel
	if err := preloadImages(r.db.WithContext(ctx)).Where("id IN ?", ids).Find(&productModels).Error; err != nil {
		return nil, err
	}
	return productsToDomain(productModels), nil
}

// FindByIDsForUpdate locks the product rows in id order so concurrent
// checkouts acquire them in the same sequence.
func (r *GormProductRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var productModels []models.ProductModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id").
		Find(&productModels).Error; err != nil {
		return nil, err
	}
	return productsToDomain(productModels), nil
}

// List returns one page of products matching the query and the total count
func (r *GormProductRepository) List(ctx context.Context, query catalog.ProductQuery) ([]catalog.Product, int64, error) {
	conditions := func(db *gorm.DB) *gorm.DB {
		if query.ActiveOnly {
			db = db.Where("products.is_active = ?", true)
		}
		if len(query.CategoryIDs) > 0 {
			db = db.Where("products.category_id IN ?", query.CategoryIDs)
		}
		if query.BrandID != nil {
			db = db.Where("products.brand_id = ?", *query.BrandID)
		}
		if query.Search != "" {
			pattern := likePattern(query.Search)
			db = db.Where(
				"LOWER(products.title) LIKE ? ESCAPE '\\' OR LOWER(products.description) LIKE ? ESCAPE '\\' OR products.category_id IN (?)",
				pattern, pattern,
				r.db.Model(&models.CategoryModel{}).Select("id").Where("LOWER(title) LIKE ? ESCAPE '\\'", pattern),
			)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ProductModel{}).Scopes(conditions).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var productModels []models.ProductModel
	q := preloadImages(r.db.WithContext(ctx)).Scopes(conditions).Order(productOrder(query.Sort))
	if err := paginate(q, query.Filter).Find(&productModels).Error; err != nil {
		return nil, 0, err
	}
	return productsToDomain(productModels), total, nil
}

func productOrder(sort catalog.ProductSort) string {
	switch sort {
	case catalog.SortMostViewed:
		return "products.view_count DESC, products.created_at DESC"
	case catalog.SortPriceAsc:
		return "products.price ASC, products.created_at DESC"
	case catalog.SortPriceDesc:
		return "products.price DESC, products.created_at DESC"
	default:
		return "products.created_at DESC"
	}
}

// Save creates or updates a product; images are stored through AddImage
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(model).Error
}

// UpdateStock writes the stock column of each product
func (r *GormProductRepository) UpdateStock(ctx context.Context, products []*catalog.Product) error {
	now := time.Now()
	for _, p := range products {
		if err := r.db.WithContext(ctx).
			Model(&models.ProductModel{}).
			Where("id = ?", p.ID).
			Updates(map[string]any{"stock": p.Stock, "updated_at": now}).Error; err != nil {
			return err
		}
	}
	return nil
}

// IncrementViewCount bumps the view counter atomically
func (r *GormProductRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AddImage stores an image key for a product
func (r *GormProductRepository) AddImage(ctx context.Context, image *catalog.ProductImage) error {
	return r.db.WithContext(ctx).Create(models.ProductImageModelFromDomain(image)).Error
}

func productsToDomain(productModels []models.ProductModel) []catalog.Product {
	products := make([]catalog.Product, len(productModels))
	for i := range productModels {
		products[i] = *productModels[i].ToDomain()
	}
	return products
}

// GormCategoryRepository implements catalog.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var model models.CategoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every category ordered by priority
func (r *GormCategoryRepository) FindAll(ctx context.Context, activeOnly bool) ([]catalog.Category, error) {
	q := r.db.WithContext(ctx).Order("priority DESC, title ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var categoryModels []models.CategoryModel
	if err := q.Find(&categoryModels).Error; err != nil {
		return nil, err
	}
	categories := make([]catalog.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = *categoryModels[i].ToDomain()
	}
	return categories, nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	return r.db.WithContext(ctx).Save(models.CategoryModelFromDomain(category)).Error
}

// GormBrandRepository implements catalog.BrandRepository using GORM
type GormBrandRepository struct {
	db *gorm.DB
}

// NewGormBrandRepository creates a new GormBrandRepository
func NewGormBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

// FindByID finds a brand by its ID
func (r *GormBrandRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Brand, error) {
	var model models.BrandModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every brand by title
func (r *GormBrandRepository) FindAll(ctx context.Context) ([]catalog.Brand, error) {
	var brandModels []models.BrandModel
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&brandModels).Error; err != nil {
		return nil, err
	}
	brands := make([]catalog.Brand, len(brandModels))
	for i := range brandModels {
		brands[i] = *brandModels[i].ToDomain()
	}
	return brands, nil
}

// Save creates or updates a brand
func (r *GormBrandRepository) Save(ctx context.Context, brand *catalog.Brand) error {
	return r.db.WithContext(ctx).Save(models.BrandModelFromDomain(brand)).Error
}

// GormDiscountRepository implements catalog.DiscountRepository using GORM
type GormDiscountRepository struct {
	db *gorm.DB
}

// NewGormDiscountRepository creates a new GormDiscountRepository
func NewGormDiscountRepository(db *gorm.DB) *GormDiscountRepository {
	return &GormDiscountRepository{db: db}
}

// FindByProductIDs returns the active discounts grouped by product
func (r *GormDiscountRepository) FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID][]catalog.ProductDiscount, error) {
	result := make(map[uuid.UUID][]catalog.ProductDiscount)
	if len(productIDs) == 0 {
		return result, nil
	}
	var discountModels []models.ProductDiscountModel
	if err := r.db.WithContext(ctx).
		Where("product_id IN ? AND is_active = ?", productIDs, true).
		Order("created_at DESC").
		Find(&discountModels).Error; err != nil {
		return nil, err
	}
	for i := range discountModels {
		d := discountModels[i].ToDomain()
		result[d.ProductID] = append(result[d.ProductID], *d)
	}
	return result, nil
}

// Save creates or updates a discount
func (r *GormDiscountRepository) Save(ctx context.Context, discount *catalog.ProductDiscount) error {
	return r.db.WithContext(ctx).Save(models.ProductDiscountModelFromDomain(discount)).Error
}

// DeactivateOthers turns off every discount of the product except keepID
func (r *GormDiscountRepository) DeactivateOthers(ctx context.Context, productID, keepID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.ProductDiscountModel{}).
		Where("product_id = ? AND id <> ? AND is_active = ?", productID, keepID, true).
		Updates(map[string]any{"is_active": false, "updated_at": time.Now()}).Error
}

// GormPropertyRepository implements catalog.PropertyRepository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// ListByProduct returns the product's properties by priority, then title and value
func (r *GormPropertyRepository) ListByProduct(ctx context.Context, productID uuid.UUID, activeOnly bool) ([]catalog.Property, error) {
	q := r.db.WithContext(ctx).Where("product_id = ?", productID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var propertyModels []models.ProductPropertyModel
	if err := q.Order("priority DESC, title ASC, value ASC").Find(&propertyModels).Error; err != nil {
		return nil, err
	}
	props := make([]catalog.Property, len(propertyModels))
	for i := range propertyModels {
		props[i] = *propertyModels[i].ToDomain()
	}
	return props, nil
}

// Save creates or updates a property
func (r *GormPropertyRepository) Save(ctx context.Context, property *catalog.Property) error {
	if err := r.db.WithContext(ctx).Save(models.ProductPropertyModelFromDomain(property)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError("ALREADY_EXISTS", "The product already has this property value")
		}
		return err
	}
	return nil
}

// GormReviewRepository implements catalog.ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Save creates or updates a review
func (r *GormReviewRepository) Save(ctx context.Context, review *catalog.Review) error {
	return r.db.WithContext(ctx).Save(models.ReviewModelFromDomain(review)).Error
}

// ExistsForUser reports whether the user already reviewed the product
func (r *GormReviewRepository) ExistsForUser(ctx context.Context, productID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ReviewModel{}).
		Where("product_id = ? AND user_id = ?", productID, userID).
		Count(&count).Error
	return count > 0, err
}

// ListAccepted returns accepted reviews, newest first
func (r *GormReviewRepository) ListAccepted(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]catalog.Review, int64, error) {
	accepted := func(db *gorm.DB) *gorm.DB {
		return db.Where("product_id = ? AND is_accepted = ?", productID, true)
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ReviewModel{}).Scopes(accepted).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var reviewModels []models.ReviewModel
	q := r.db.WithContext(ctx).Scopes(accepted).Order("created_at DESC")
	if err := paginate(q, filter).Find(&reviewModels).Error; err != nil {
		return nil, 0, err
	}
	reviews := make([]catalog.Review, len(reviewModels))
	for i := range reviewModels {
		reviews[i] = *reviewModels[i].ToDomain()
	}
	return reviews, total, nil
}

// Summary aggregates the accepted ratings of a product
func (r *GormReviewRepository) Summary(ctx context.Context, productID uuid.UUID) (catalog.RatingSummary, error) {
	var row struct {
		Count   int64
		Average *float64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.ReviewModel{}).
		Select("COUNT(*) AS count, AVG(rating) AS average").
		Where("product_id = ? AND is_accepted = ?", productID, true).
		Scan(&row).Error; err != nil {
		return catalog.RatingSummary{}, err
	}
	summary := catalog.RatingSummary{Count: row.Count, Average: decimal.Zero}
	if row.Average != nil {
		summary.Average = decimal.NewFromFloat(*row.Average).Round(2)
	}
	return summary, nil
}

// GormWishlistRepository implements catalog.WishlistRepository using GORM
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewGormWishlistRepository creates a new GormWishlistRepository
func NewGormWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// Find returns the wishlist entry of a user for a product
func (r *GormWishlistRepository) Find(ctx context.Context, userID, productID uuid.UUID) (*catalog.WishlistItem, error) {
	var model models.WishlistModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a wishlist entry
func (r *GormWishlistRepository) Save(ctx context.Context, item *catalog.WishlistItem) error {
	return r.db.WithContext(ctx).Save(models.WishlistModelFromDomain(item)).Error
}

// Delete removes a wishlist entry
func (r *GormWishlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.WishlistModel{}, "id = ?", id).Error
}

// Count returns the number of active wishlist entries of a user
func (r *GormWishlistRepository) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.WishlistModel{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	return count, err
}

// Clear removes every wishlist entry of a user
func (r *GormWishlistRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.WishlistModel{}, "user_id = ?", userID).Error
}

// ProductIDs returns the wishlisted product ids, most recent first
func (r *GormWishlistRepository) ProductIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.WishlistModel{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Pluck("product_id", &ids).Error
	return ids, err
}

// Contains reports which of productIDs are on the user's wishlist
func (r *GormWishlistRepository) Contains(ctx context.Context, userID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	result := make(map[uuid.UUID]bool, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.WishlistModel{}).
		Where("user_id = ? AND is_active = ? AND product_id IN ?", userID, true, productIDs).
		Pluck("product_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

var (
	_ catalog.ProductRepository  = (*GormProductRepository)(nil)
	_ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
	_ catalog.BrandRepository    = (*GormBrandRepository)(nil)
	_ catalog.DiscountRepository = (*GormDiscountRepository)(nil)
	_ catalog.ReviewRepository   = (*GormReviewRepository)(nil)
	_ catalog.PropertyRepository = (*GormPropertyRepository)(nil)
	_ catalog.WishlistRepository = (*GormWishlistRepository)(nil)
)
