package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/application/pricing"
	appshared "github.com/shop/backend/internal/application/shared"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/cms"
	"github.com/shop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService serves product listings and pages and lets staff manage products
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	offerRepo    cms.OfferRepository
	reviewRepo   catalog.ReviewRepository
	propertyRepo catalog.PropertyRepository
	wishlistRepo catalog.WishlistRepository
	txScope      appshared.TransactionScope
	pricing      pricing.Source
	storage      ObjectStorageService
	images       ImageConfig
	now          func() time.Time
	logger       *zap.Logger
}

// ProductServiceOption configures a ProductService
type ProductServiceOption func(*ProductService)

// WithImageStorage enables product images backed by object storage
func WithImageStorage(storage ObjectStorageService, cfg ImageConfig) ProductServiceOption {
	return func(s *ProductService) {
		s.storage = storage
		s.images = cfg
	}
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	discountRepo catalog.DiscountRepository,
	offerRepo cms.OfferRepository,
	reviewRepo catalog.ReviewRepository,
	propertyRepo catalog.PropertyRepository,
	wishlistRepo catalog.WishlistRepository,
	txScope appshared.TransactionScope,
	logger *zap.Logger,
	opts ...ProductServiceOption,
) *ProductService {
	s := &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		offerRepo:    offerRepo,
		reviewRepo:   reviewRepo,
		propertyRepo: propertyRepo,
		wishlistRepo: wishlistRepo,
		txScope:      txScope,
		pricing:      pricing.Source{Discounts: discountRepo, Offers: offerRepo},
		images:       DefaultImageConfig(),
		now:          time.Now,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListProducts returns one page of active products. A category matches
// its whole subtree. userID, when set, annotates wishlist membership.
func (s *ProductService) ListProducts(ctx context.Context, userID *uuid.UUID, filter ProductListFilter) (shared.Paginated[ProductCardResponse], error) {
	query := catalog.ProductQuery{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			Search:   strings.TrimSpace(filter.Search),
		},
		BrandID:    filter.BrandID,
		Sort:       catalog.ParseProductSort(filter.Sort),
		ActiveOnly: true,
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = 20
	}
	if filter.CategoryID != nil {
		all, err := s.categoryRepo.FindAll(ctx, true)
		if err != nil {
			return shared.Paginated[ProductCardResponse]{}, err
		}
		query.CategoryIDs = catalog.Descendants(*filter.CategoryID, all, true)
	}

	products, total, err := s.productRepo.List(ctx, query)
	if err != nil {
		return shared.Paginated[ProductCardResponse]{}, err
	}
	cards, err := s.cards(ctx, userID, products)
	if err != nil {
		return shared.Paginated[ProductCardResponse]{}, err
	}
	return shared.NewPaginated(cards, total, query.Page, query.PageSize), nil
}

// GetProductDetail returns an active product page and counts the view
func (s *ProductService) GetProductDetail(ctx context.Context, userID *uuid.UUID, productID uuid.UUID) (*ProductDetailResponse, error) {
	product, err := s.activeProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.IncrementViewCount(ctx, productID); err != nil {
		return nil, err
	}
	product.ViewCount++

	cards, err := s.cards(ctx, userID, []catalog.Product{*product})
	if err != nil {
		return nil, err
	}
	variants, err := s.variants(ctx, userID, product)
	if err != nil {
		return nil, err
	}
	summary, err := s.reviewRepo.Summary(ctx, productID)
	if err != nil {
		return nil, err
	}
	props, err := s.propertyRepo.ListByProduct(ctx, productID, true)
	if err != nil {
		return nil, err
	}

	images := make([]ImageResponse, len(product.Images))
	for i, img := range product.Images {
		images[i] = ImageResponse{
			ID:         img.ID,
			StorageKey: img.StorageKey,
			URL:        s.imageURL(ctx, img.StorageKey),
			Priority:   img.Priority,
		}
	}
	return &ProductDetailResponse{
		ProductCardResponse: cards[0],
		Description:         product.Description,
		Tags:                product.Tags,
		IsActive:            product.IsActive,
		Images:              images,
		Variants:            variants,
		Properties:          toPropertyGroups(catalog.GroupProperties(props)),
		Rating:              toRatingResponse(summary),
		CreatedAt:           product.CreatedAt,
	}, nil
}

// ListRelated returns the active variants of a product
func (s *ProductService) ListRelated(ctx context.Context, userID *uuid.UUID, productID uuid.UUID) ([]ProductCardResponse, error) {
	product, err := s.activeProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.variants(ctx, userID, product)
}

// ProductsWithOffers groups the products of every running offer by offer
func (s *ProductService) ProductsWithOffers(ctx context.Context, userID *uuid.UUID) ([]OfferProductsResponse, error) {
	offers, err := s.offerRepo.FindRunning(ctx, s.now())
	if err != nil {
		return nil, err
	}
	var ids []uuid.UUID
	for _, o := range offers {
		for _, item := range o.Items {
			if item.IsActive {
				ids = append(ids, item.ProductID)
			}
		}
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	active := products[:0]
	for _, p := range products {
		if p.IsActive {
			active = append(active, p)
		}
	}
	cards, err := s.cards(ctx, userID, active)
	if err != nil {
		return nil, err
	}
	byProduct := make(map[uuid.UUID]ProductCardResponse, len(cards))
	for _, c := range cards {
		byProduct[c.ID] = c
	}

	out := make([]OfferProductsResponse, 0, len(offers))
	for _, o := range offers {
		group := OfferProductsResponse{
			OfferID:     o.ID,
			Title:       o.Title,
			ActiveUntil: o.ActiveUntil,
			Products:    []ProductCardResponse{},
		}
		for _, item := range o.Items {
			if card, ok := byProduct[item.ProductID]; ok && item.IsActive {
				group.Products = append(group.Products, card)
			}
		}
		if len(group.Products) > 0 {
			out = append(out, group)
		}
	}
	return out, nil
}

// CreateProduct creates a product
func (s *ProductService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductDetailResponse, error) {
	product, err := catalog.NewProduct(req.Title, req.Description, req.Price, req.Stock)
	if err != nil {
		return nil, err
	}
	product.SetCategory(req.CategoryID)
	product.SetBrand(req.BrandID)
	product.SetTags(req.Tags)
	product.SetVariants(req.VariantIDs)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.logger.Info("Product created", zap.String("product_id", product.ID.String()), zap.String("slug", product.Slug))
	return s.staffDetail(ctx, product)
}

// UpdateProduct changes a product
func (s *ProductService) UpdateProduct(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductDetailResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := product.Update(req.Title, req.Description, req.Price); err != nil {
		return nil, err
	}
	product.SetCategory(req.CategoryID)
	product.SetBrand(req.BrandID)
	product.SetTags(req.Tags)
	product.SetVariants(req.VariantIDs)
	if req.IsActive != nil {
		if *req.IsActive {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return s.staffDetail(ctx, product)
}

// SetStock overwrites the stock of a product
func (s *ProductService) SetStock(ctx context.Context, productID uuid.UUID, req SetStockRequest) (*ProductDetailResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := product.SetStock(req.Stock); err != nil {
		return nil, err
	}
	if err := s.productRepo.UpdateStock(ctx, []*catalog.Product{product}); err != nil {
		return nil, err
	}
	return s.staffDetail(ctx, product)
}

// CreateDiscount puts a discount on a product and switches off its other discounts
func (s *ProductService) CreateDiscount(ctx context.Context, productID uuid.UUID, req CreateDiscountRequest) (*DiscountResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	discount, err := catalog.NewProductDiscount(productID, catalog.DiscountType(req.Type), req.Amount, req.ActiveFrom, req.ActiveUntil)
	if err != nil {
		return nil, err
	}
	err = s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		if err := repos.DiscountRepo().Save(ctx, discount); err != nil {
			return err
		}
		return repos.DiscountRepo().DeactivateOthers(ctx, productID, discount.ID)
	})
	if err != nil {
		return nil, err
	}
	resp := ToDiscountResponse(discount)
	return &resp, nil
}

// AddProperty adds a title and value pair to a product
func (s *ProductService) AddProperty(ctx context.Context, productID uuid.UUID, req AddPropertyRequest) (*PropertyResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	prop, err := catalog.NewProperty(productID, req.Title, req.Value, req.Priority)
	if err != nil {
		return nil, err
	}
	if err := s.propertyRepo.Save(ctx, prop); err != nil {
		return nil, err
	}
	resp := toPropertyResponse(prop)
	return &resp, nil
}

// RequestImageUpload returns a presigned URL for a new product image
func (s *ProductService) RequestImageUpload(ctx context.Context, productID uuid.UUID, req ImageUploadRequest) (*ImageUploadResponse, error) {
	if s.storage == nil {
		return nil, shared.NewDomainError("STORAGE_DISABLED", "Image storage is not configured")
	}
	ext, ok := AllowedImageTypes[req.ContentType]
	if !ok {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", fmt.Sprintf("Content type %s is not allowed", req.ContentType))
	}
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(product.Images) >= s.images.MaxImages {
		return nil, shared.NewDomainError("IMAGE_LIMIT_EXCEEDED", fmt.Sprintf("A product can have at most %d images", s.images.MaxImages))
	}

	key := imageKeyPrefix(productID) + uuid.NewString() + ext
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, req.ContentType, s.images.UploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("generate upload url: %w", err)
	}
	return &ImageUploadResponse{StorageKey: key, UploadURL: url, ExpiresAt: expiresAt}, nil
}

// AttachImage attaches an uploaded object to a product
func (s *ProductService) AttachImage(ctx context.Context, productID uuid.UUID, req AttachImageRequest) (*ImageResponse, error) {
	if s.storage == nil {
		return nil, shared.NewDomainError("STORAGE_DISABLED", "Image storage is not configured")
	}
	if !strings.HasPrefix(req.StorageKey, imageKeyPrefix(productID)) {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Storage key does not belong to this product")
	}
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	exists, err := s.storage.ObjectExists(ctx, req.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("check uploaded image: %w", err)
	}
	if !exists {
		return nil, shared.NewDomainError("IMAGE_NOT_UPLOADED", "The image has not been uploaded yet")
	}

	img, err := product.AddImage(req.StorageKey, req.Priority)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.AddImage(ctx, img); err != nil {
		return nil, err
	}
	return &ImageResponse{
		ID:         img.ID,
		StorageKey: img.StorageKey,
		URL:        s.imageURL(ctx, img.StorageKey),
		Priority:   img.Priority,
	}, nil
}

func imageKeyPrefix(productID uuid.UUID) string {
	return "products/" + productID.String() + "/"
}

func (s *ProductService) activeProduct(ctx context.Context, productID uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, shared.ErrNotFound
	}
	return product, nil
}

func (s *ProductService) staffDetail(ctx context.Context, product *catalog.Product) (*ProductDetailResponse, error) {
	cards, err := s.cards(ctx, nil, []catalog.Product{*product})
	if err != nil {
		return nil, err
	}
	return &ProductDetailResponse{
		ProductCardResponse: cards[0],
		Description:         product.Description,
		Tags:                product.Tags,
		IsActive:            product.IsActive,
		Images:              []ImageResponse{},
		Variants:            []ProductCardResponse{},
		Properties:          []PropertyGroupResponse{},
		CreatedAt:           product.CreatedAt,
	}, nil
}

func (s *ProductService) variants(ctx context.Context, userID *uuid.UUID, product *catalog.Product) ([]ProductCardResponse, error) {
	if len(product.VariantIDs) == 0 {
		return []ProductCardResponse{}, nil
	}
	related, err := s.productRepo.FindByIDs(ctx, product.VariantIDs)
	if err != nil {
		return nil, err
	}
	active := related[:0]
	for _, p := range related {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return s.cards(ctx, userID, active)
}

// cards prices products for a single unit and marks wished products
func (s *ProductService) cards(ctx context.Context, userID *uuid.UUID, products []catalog.Product) ([]ProductCardResponse, error) {
	reqs := make([]pricing.Request, len(products))
	ids := make([]uuid.UUID, len(products))
	for i := range products {
		reqs[i] = pricing.Request{Product: &products[i], Quantity: 1}
		ids[i] = products[i].ID
	}
	lines, err := s.pricing.Price(ctx, reqs, s.now())
	if err != nil {
		return nil, err
	}
	wished := map[uuid.UUID]bool{}
	if userID != nil && len(ids) > 0 {
		if wished, err = s.wishlistRepo.Contains(ctx, *userID, ids); err != nil {
			return nil, err
		}
	}

	cards := make([]ProductCardResponse, len(lines))
	for i, l := range lines {
		p := l.Product
		price := PriceResponse{
			Price:           p.Price,
			FinalPrice:      l.Quote.UnitFinalPrice,
			DiscountPercent: l.Quote.DiscountPercent,
		}
		card := ProductCardResponse{
			ID:         p.ID,
			Title:      p.Title,
			Slug:       p.Slug,
			Stock:      p.Stock,
			CategoryID: p.CategoryID,
			BrandID:    p.BrandID,
			ViewCount:  p.ViewCount,
			Pricing:    price,
			InWishlist: wished[p.ID],
		}
		if len(p.Images) > 0 {
			card.ImageURL = s.imageURL(ctx, p.Images[0].StorageKey)
		}
		cards[i] = card
	}
	return cards, nil
}

func (s *ProductService) imageURL(ctx context.Context, key string) string {
	if s.storage == nil || key == "" {
		return ""
	}
	url, _, err := s.storage.GenerateDownloadURL(ctx, key, s.images.DownloadURLExpiry)
	if err != nil {
		s.logger.Warn("Failed to presign image", zap.String("key", key), zap.Error(err))
		return ""
	}
	return url
}
