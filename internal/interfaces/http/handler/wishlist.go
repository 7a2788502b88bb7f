package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shop/backend/internal/application/catalog"
)

// WishlistHandler serves the caller's wishlist
type WishlistHandler struct {
	BaseHandler
	wishlistService *catalog.WishlistService
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(wishlistService *catalog.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// List godoc
// @ID           listWishlist
// @Summary      List wishlisted products
// @Tags         wishlist
// @Produce      json
// @Success      200 {object} APIResponse[[]catalog.ProductCardResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /wishlist [get]
func (h *WishlistHandler) List(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	products, err := h.wishlistService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Count godoc
// @ID           countWishlist
// @Summary      Count wishlisted products
// @Tags         wishlist
// @Produce      json
// @Success      200 {object} APIResponse[CountData]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /wishlist/count [get]
func (h *WishlistHandler) Count(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	count, err := h.wishlistService.Count(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, CountData{Count: count})
}

// Toggle godoc
// @ID           toggleWishlist
// @Summary      Add or remove a product
// @Description  status is 1 when the product was added and 0 when it was removed
// @Tags         wishlist
// @Produce      json
// @Param        product_id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[catalog.WishlistToggleResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /wishlist/{product_id} [post]
func (h *WishlistHandler) Toggle(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	productID, ok := h.pathID(c, "product_id")
	if !ok {
		return
	}
	result, err := h.wishlistService.Toggle(c.Request.Context(), userID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Clear godoc
// @ID           clearWishlist
// @Summary      Empty the wishlist
// @Tags         wishlist
// @Success      204
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /wishlist [delete]
func (h *WishlistHandler) Clear(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	if err := h.wishlistService.Clear(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
