package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
)

// ProductSort selects the ordering of product listings
type ProductSort string

const (
	SortNewest     ProductSort = "newest"
	SortMostViewed ProductSort = "most_viewed"
	SortPriceAsc   ProductSort = "price_asc"
	SortPriceDesc  ProductSort = "price_desc"
)

// ParseProductSort maps user input to a sort, defaulting to newest.
// The legacy numeric options "1" and "2" are accepted.
func ParseProductSort(s string) ProductSort {
	switch s {
	case string(SortMostViewed), "2":
		return SortMostViewed
	case string(SortPriceAsc):
		return SortPriceAsc
	case string(SortPriceDesc):
		return SortPriceDesc
	default:
		return SortNewest
	}
}

// ProductQuery narrows a product listing
type ProductQuery struct {
	shared.Filter
	CategoryIDs []uuid.UUID
	BrandID     *uuid.UUID
	Sort        ProductSort
	ActiveOnly  bool
}

// ProductRepository persists products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	// FindByIDsForUpdate loads products and locks their rows until the transaction ends
	FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	List(ctx context.Context, query ProductQuery) ([]Product, int64, error)
	Save(ctx context.Context, product *Product) error
	// UpdateStock writes the stock column of every given product
	UpdateStock(ctx context.Context, products []*Product) error
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
	AddImage(ctx context.Context, image *ProductImage) error
}

// CategoryRepository persists categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindAll(ctx context.Context, activeOnly bool) ([]Category, error)
	Save(ctx context.Context, category *Category) error
}

// BrandRepository persists brands
type BrandRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Brand, error)
	FindAll(ctx context.Context) ([]Brand, error)
	Save(ctx context.Context, brand *Brand) error
}

// DiscountRepository persists product discounts
type DiscountRepository interface {
	FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID][]ProductDiscount, error)
	Save(ctx context.Context, discount *ProductDiscount) error
	// DeactivateOthers switches off every active discount of the product except keepID
	DeactivateOthers(ctx context.Context, productID, keepID uuid.UUID) error
}

// PropertyRepository persists product properties
type PropertyRepository interface {
	// ListByProduct returns the product's properties, highest priority first
	ListByProduct(ctx context.Context, productID uuid.UUID, activeOnly bool) ([]Property, error)
	Save(ctx context.Context, property *Property) error
}

// ReviewRepository persists reviews
type ReviewRepository interface {
	Save(ctx context.Context, review *Review) error
	ExistsForUser(ctx context.Context, productID, userID uuid.UUID) (bool, error)
	ListAccepted(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]Review, int64, error)
	Summary(ctx context.Context, productID uuid.UUID) (RatingSummary, error)
}

// WishlistRepository persists wishlist entries
type WishlistRepository interface {
	Find(ctx context.Context, userID, productID uuid.UUID) (*WishlistItem, error)
	Save(ctx context.Context, item *WishlistItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, userID uuid.UUID) (int64, error)
	Clear(ctx context.Context, userID uuid.UUID) error
	ProductIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	// Contains reports which of the given products the user has wished for
	Contains(ctx context.Context, userID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}
