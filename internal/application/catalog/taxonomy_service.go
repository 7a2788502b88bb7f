package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TaxonomyService manages categories and brands
type TaxonomyService struct {
	categoryRepo catalog.CategoryRepository
	brandRepo    catalog.BrandRepository
	logger       *zap.Logger
}

// NewTaxonomyService creates a new TaxonomyService
func NewTaxonomyService(categoryRepo catalog.CategoryRepository, brandRepo catalog.BrandRepository, logger *zap.Logger) *TaxonomyService {
	return &TaxonomyService{categoryRepo: categoryRepo, brandRepo: brandRepo, logger: logger}
}

// ListRootCategories returns the active top level categories, highest priority first
func (s *TaxonomyService) ListRootCategories(ctx context.Context) ([]CategoryResponse, error) {
	all, err := s.categoryRepo.FindAll(ctx, true)
	if err != nil {
		return nil, err
	}
	out := []CategoryResponse{}
	for i := range all {
		if all[i].IsRoot() {
			out = append(out, ToCategoryResponse(&all[i]))
		}
	}
	return out, nil
}

// ListSubcategories returns every active category below parent, highest priority first
func (s *TaxonomyService) ListSubcategories(ctx context.Context, parentID uuid.UUID) ([]CategoryResponse, error) {
	if _, err := s.categoryRepo.FindByID(ctx, parentID); err != nil {
		return nil, err
	}
	all, err := s.categoryRepo.FindAll(ctx, true)
	if err != nil {
		return nil, err
	}
	below := make(map[uuid.UUID]bool)
	for _, id := range catalog.Descendants(parentID, all, false) {
		below[id] = true
	}
	out := []CategoryResponse{}
	for i := range all {
		if below[all[i].ID] {
			out = append(out, ToCategoryResponse(&all[i]))
		}
	}
	return out, nil
}

// GetCategory returns an active category
func (s *TaxonomyService) GetCategory(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	c, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, shared.ErrNotFound
	}
	resp := ToCategoryResponse(c)
	return &resp, nil
}

// CreateCategory creates a category below an existing parent, or a root one
func (s *TaxonomyService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	if req.ParentID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.ParentID); err != nil {
			return nil, err
		}
	}
	c, err := catalog.NewCategory(req.Title, req.ParentID, req.Priority)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("Category created", zap.String("category_id", c.ID.String()), zap.String("slug", c.Slug))
	resp := ToCategoryResponse(c)
	return &resp, nil
}

// ListBrands returns the active brands
func (s *TaxonomyService) ListBrands(ctx context.Context) ([]BrandResponse, error) {
	brands, err := s.brandRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := []BrandResponse{}
	for i := range brands {
		if brands[i].IsActive {
			out = append(out, ToBrandResponse(&brands[i]))
		}
	}
	return out, nil
}

// CreateBrand creates a brand
func (s *TaxonomyService) CreateBrand(ctx context.Context, req CreateBrandRequest) (*BrandResponse, error) {
	b, err := catalog.NewBrand(req.Title)
	if err != nil {
		return nil, err
	}
	if err := s.brandRepo.Save(ctx, b); err != nil {
		return nil, err
	}
	resp := ToBrandResponse(b)
	return &resp, nil
}
