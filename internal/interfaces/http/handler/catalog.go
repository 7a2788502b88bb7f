package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shop/backend/internal/application/catalog"
	"github.com/shop/backend/internal/interfaces/http/dto"
)

// CatalogHandler serves categories, brands, products and reviews
type CatalogHandler struct {
	BaseHandler
	productService  *catalog.ProductService
	taxonomyService *catalog.TaxonomyService
	reviewService   *catalog.ReviewService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(
	productService *catalog.ProductService,
	taxonomyService *catalog.TaxonomyService,
	reviewService *catalog.ReviewService,
) *CatalogHandler {
	return &CatalogHandler{
		productService:  productService,
		taxonomyService: taxonomyService,
		reviewService:   reviewService,
	}
}

// productListQuery is the query string of the product listing
type productListQuery struct {
	Search     string `form:"search" binding:"max=100"`
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	BrandID    string `form:"brand_id" binding:"omitempty,uuid"`
	Sort       string `form:"sort" binding:"omitempty,oneof=newest most_viewed price_asc price_desc"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func (q productListQuery) filter() catalog.ProductListFilter {
	f := catalog.ProductListFilter{Search: q.Search, Sort: q.Sort, Page: q.Page, PageSize: q.PageSize}
	if id, err := uuid.Parse(q.CategoryID); err == nil {
		f.CategoryID = &id
	}
	if id, err := uuid.Parse(q.BrandID); err == nil {
		f.BrandID = &id
	}
	return f
}

// ListRootCategories godoc
// @ID           listCatalogCategories
// @Summary      List top level categories
// @Tags         catalog
// @Produce      json
// @Success      200 {object} APIResponse[[]catalog.CategoryResponse]
// @Router       /catalog/categories [get]
func (h *CatalogHandler) ListRootCategories(c *gin.Context) {
	categories, err := h.taxonomyService.ListRootCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// GetCategory godoc
// @ID           getCatalogCategory
// @Summary      Get a category
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Success      200 {object} APIResponse[catalog.CategoryResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /catalog/categories/{id} [get]
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	category, err := h.taxonomyService.GetCategory(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// ListSubcategories godoc
// @ID           listCatalogSubcategories
// @Summary      List every descendant of a category
// @Description  Descendants are ordered by priority, highest first
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Success      200 {object} APIResponse[[]catalog.CategoryResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /catalog/categories/{id}/children [get]
func (h *CatalogHandler) ListSubcategories(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	categories, err := h.taxonomyService.ListSubcategories(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// CreateCategory godoc
// @ID           createCatalogCategory
// @Summary      Create a category
// @Tags         catalog-admin
// @Accept       json
// @Produce      json
// @Param        request body catalog.CreateCategoryRequest true "Category"
// @Success      201 {object} APIResponse[catalog.CategoryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req catalog.CreateCategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	category, err := h.taxonomyService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// ListBrands godoc
// @ID           listCatalogBrands
// @Summary      List brands
// @Tags         catalog
// @Produce      json
// @Success      200 {object} APIResponse[[]catalog.BrandResponse]
// @Router       /catalog/brands [get]
func (h *CatalogHandler) ListBrands(c *gin.Context) {
	brands, err := h.taxonomyService.ListBrands(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, brands)
}

// CreateBrand godoc
// @ID           createCatalogBrand
// @Summary      Create a brand
// @Tags         catalog-admin
// @Accept       json
// @Produce      json
// @Param        request body catalog.CreateBrandRequest true "Brand"
// @Success      201 {object} APIResponse[catalog.BrandResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/brands [post]
func (h *CatalogHandler) CreateBrand(c *gin.Context) {
	var req catalog.CreateBrandRequest
	if !h.bindJSON(c, &req) {
		return
	}
	brand, err := h.taxonomyService.CreateBrand(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, brand)
}

// ListProducts godoc
// @ID           listCatalogProducts
// @Summary      List active products
// @Description  Category filters include every descendant category. Search matches title, description and category title.
// @Tags         catalog
// @Produce      json
// @Param        search query string false "Search text"
// @Param        category_id query string false "Category ID" format(uuid)
// @Param        brand_id query string false "Brand ID" format(uuid)
// @Param        sort query string false "Sort order" Enums(newest, most_viewed, price_asc, price_desc)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Success      200 {object} ListResponse[catalog.ProductCardResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /catalog/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var q productListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	products, err := h.productService.ListProducts(c.Request.Context(), optionalUser(c), q.filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writePage(c, products)
}

// GetProduct godoc
// @ID           getCatalogProduct
// @Summary      Get a product page
// @Description  Counts a view and includes images, variants, rating and the best price for one unit
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[catalog.ProductDetailResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /catalog/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.productService.GetProductDetail(c.Request.Context(), optionalUser(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// ListRelated godoc
// @ID           listCatalogRelatedProducts
// @Summary      List the variants of a product
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[[]catalog.ProductCardResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /catalog/products/{id}/related [get]
func (h *CatalogHandler) ListRelated(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	products, err := h.productService.ListRelated(c.Request.Context(), optionalUser(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// ListOffers godoc
// @ID           listCatalogOffers
// @Summary      List products grouped by running offer
// @Tags         catalog
// @Produce      json
// @Success      200 {object} APIResponse[[]catalog.OfferProductsResponse]
// @Router       /catalog/offers [get]
func (h *CatalogHandler) ListOffers(c *gin.Context) {
	offers, err := h.productService.ProductsWithOffers(c.Request.Context(), optionalUser(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, offers)
}

// CreateProduct godoc
// @ID           createCatalogProduct
// @Summary      Create a product
// @Tags         catalog-admin
// @Accept       json
// @Produce      json
// @Param        request body catalog.CreateProductRequest true "Product"
// @Success      201 {object} APIResponse[catalog.ProductDetailResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req catalog.CreateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	product, err := h.productService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// UpdateProduct godoc
// @ID           updateCatalogProduct
// @Summary      Update a product
// @Tags         catalog-admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalog.UpdateProductRequest true "Product"
// @Success      200 {object} APIResponse[catalog.ProductDetailResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalog.UpdateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	product, err := h.productService.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// SetStock godoc
// @ID           setCatalogProductStock
// @Summary      Overwrite the stock of a product
// @Tags         catalog-admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalog.SetStockRequest true "Stock"
// @Success      200 {object} APIResponse[catalog.ProductDetailResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/products/{id}/stock [put]
func (h *CatalogHandler) SetStock(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalog.SetStockRequest
	if !h.bindJSON(c, &req) {
		return
	}
	product, err := h.productService.SetStock(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// CreateDiscount godoc
// @ID           createCatalogProductDiscount
// @Summary      Put a discount on a product
// @Description  The new discount becomes the only active one. Type 0 is percent, 1 is a fixed amount.
// @Tags         catalog-admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalog.CreateDiscountRequest true "Discount"
// @Success      201 {object} APIResponse[catalog.DiscountResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/products/{id}/discounts [post]
func (h *CatalogHandler) CreateDiscount(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalog.CreateDiscountRequest
	if !h.bindJSON(c, &req) {
		return
	}
	discount, err := h.productService.CreateDiscount(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, discount)
}

// AddProperty godoc
// @ID           addCatalogProductProperty
// @Summary      Add a property value to a product
// @Description  Properties are shown on the product page grouped by title. A title and value pair is stored once per product.
// @Tags         catalog-admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalog.AddPropertyRequest true "Property"
// @Success      201 {object} APIResponse[catalog.PropertyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/products/{id}/properties [post]
func (h *CatalogHandler) AddProperty(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalog.AddPropertyRequest
	if !h.bindJSON(c, &req) {
		return
	}
	prop, err := h.productService.AddProperty(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, prop)
}

// RequestImageUpload godoc
// @ID           requestCatalogImageUpload
// @Summary      Get a presigned image upload URL
// @Tags         catalog-admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalog.ImageUploadRequest true "Upload"
// @Success      200 {object} APIResponse[catalog.ImageUploadResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/products/{id}/images/upload-url [post]
func (h *CatalogHandler) RequestImageUpload(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalog.ImageUploadRequest
	if !h.bindJSON(c, &req) {
		return
	}
	upload, err := h.productService.RequestImageUpload(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, upload)
}

// AttachImage godoc
// @ID           attachCatalogImage
// @Summary      Attach an uploaded image to a product
// @Tags         catalog-admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalog.AttachImageRequest true "Image"
// @Success      201 {object} APIResponse[catalog.ImageResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/products/{id}/images [post]
func (h *CatalogHandler) AttachImage(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalog.AttachImageRequest
	if !h.bindJSON(c, &req) {
		return
	}
	image, err := h.productService.AttachImage(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, image)
}

// reviewsResponse is a page of reviews with the rating summary
type reviewsResponse struct {
	Rating  catalog.RatingResponse   `json:"rating"`
	Reviews []catalog.ReviewResponse `json:"reviews"`
}

// ListReviews godoc
// @ID           listCatalogReviews
// @Summary      List accepted reviews of a product
// @Description  Newest first, with the average rating
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Success      200 {object} APIResponse[reviewsResponse]
// @Router       /catalog/products/{id}/reviews [get]
func (h *CatalogHandler) ListReviews(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ListRequest
	if !h.bindQuery(c, &req) {
		return
	}

	ctx := c.Request.Context()
	page, err := h.reviewService.ListReviews(ctx, id, req.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	rating, err := h.reviewService.RatingSummary(ctx, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(
		reviewsResponse{Rating: rating, Reviews: page.Items},
		page.Total, page.Page, page.PageSize,
	))
}

// CreateReview godoc
// @ID           createCatalogReview
// @Summary      Review a product
// @Description  One review per user and product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalog.CreateReviewRequest true "Review"
// @Success      201 {object} APIResponse[catalog.ReviewResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/products/{id}/reviews [post]
func (h *CatalogHandler) CreateReview(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalog.CreateReviewRequest
	if !h.bindJSON(c, &req) {
		return
	}
	review, err := h.reviewService.CreateReview(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, review)
}
