package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/shared"
)

// WishlistService manages the products a user wishes for
type WishlistService struct {
	products     *ProductService
	wishlistRepo catalog.WishlistRepository
}

// NewWishlistService creates a new WishlistService. Listed products are
// priced by products.
func NewWishlistService(products *ProductService, wishlistRepo catalog.WishlistRepository) *WishlistService {
	return &WishlistService{products: products, wishlistRepo: wishlistRepo}
}

// Toggle adds the product to the wishlist, or removes it when present
func (s *WishlistService) Toggle(ctx context.Context, userID, productID uuid.UUID) (*WishlistToggleResponse, error) {
	if _, err := s.products.activeProduct(ctx, productID); err != nil {
		return nil, err
	}

	status := catalog.WishlistAdded
	item, err := s.wishlistRepo.Find(ctx, userID, productID)
	switch {
	case err == nil:
		if err := s.wishlistRepo.Delete(ctx, item.ID); err != nil {
			return nil, err
		}
		status = catalog.WishlistRemoved
	case errors.Is(err, shared.ErrNotFound):
		if err := s.wishlistRepo.Save(ctx, catalog.NewWishlistItem(userID, productID)); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	count, err := s.wishlistRepo.Count(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &WishlistToggleResponse{Status: status, Count: count}, nil
}

// Count returns the size of the user's wishlist
func (s *WishlistService) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.wishlistRepo.Count(ctx, userID)
}

// Clear empties the user's wishlist
func (s *WishlistService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.wishlistRepo.Clear(ctx, userID)
}

// List returns the wished products that are still active, most recent first
func (s *WishlistService) List(ctx context.Context, userID uuid.UUID) ([]ProductCardResponse, error) {
	ids, err := s.wishlistRepo.ProductIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	products, err := s.products.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	ordered := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok && p.IsActive {
			ordered = append(ordered, p)
		}
	}
	return s.products.cards(ctx, &userID, ordered)
}
