package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shop/backend/internal/application/cart"
	"github.com/shop/backend/internal/interfaces/http/middleware"
)

// CartHandler serves the caller's cart. Anonymous callers are identified
// by the X-Session-ID header.
type CartHandler struct {
	BaseHandler
	cartService *cart.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// QuantityData is the quantity of one product in the cart
type QuantityData struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) respondCart(c *gin.Context, couponCode string) {
	resp, err := h.cartService.Totals(c.Request.Context(), middleware.CartOwner(c), couponCode)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetCart godoc
// @ID           getCart
// @Summary      Get the cart with totals
// @Description  An invalid or unusable coupon is ignored and no coupon discount is applied
// @Tags         cart
// @Produce      json
// @Param        X-Session-ID header string false "Anonymous cart session"
// @Param        coupon query string false "Coupon code to preview"
// @Success      200 {object} APIResponse[cart.CartResponse]
// @Router       /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	var req cart.TotalsRequest
	if !h.bindQuery(c, &req) {
		return
	}
	h.respondCart(c, req.CouponCode)
}

// AddItem godoc
// @ID           addCartItem
// @Summary      Set the quantity of a product in the cart
// @Description  The quantity is capped by stock. Out of stock products are not added.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Session-ID header string false "Anonymous cart session"
// @Param        request body cart.AddItemRequest true "Item"
// @Success      200 {object} APIResponse[cart.CartResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req cart.AddItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if _, err := h.cartService.AddOrUpdateItem(c.Request.Context(), middleware.CartOwner(c), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.respondCart(c, "")
}

// RemoveItem godoc
// @ID           removeCartItem
// @Summary      Remove a product from the cart
// @Tags         cart
// @Produce      json
// @Param        X-Session-ID header string false "Anonymous cart session"
// @Param        product_id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[RemovedData]
// @Router       /cart/items/{product_id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, ok := h.pathID(c, "product_id")
	if !ok {
		return
	}
	removed, err := h.cartService.RemoveItem(c.Request.Context(), middleware.CartOwner(c), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, RemovedData{Removed: removed})
}

// GetQuantity godoc
// @ID           getCartItemQuantity
// @Summary      Get the quantity of a product in the cart
// @Tags         cart
// @Produce      json
// @Param        X-Session-ID header string false "Anonymous cart session"
// @Param        product_id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[QuantityData]
// @Router       /cart/items/{product_id} [get]
func (h *CartHandler) GetQuantity(c *gin.Context) {
	productID, ok := h.pathID(c, "product_id")
	if !ok {
		return
	}
	qty, err := h.cartService.QuantityOf(c.Request.Context(), middleware.CartOwner(c), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, QuantityData{Quantity: qty})
}

// Count godoc
// @ID           countCartItems
// @Summary      Sum of the quantities in the cart
// @Tags         cart
// @Produce      json
// @Param        X-Session-ID header string false "Anonymous cart session"
// @Success      200 {object} APIResponse[CountData]
// @Router       /cart/count [get]
func (h *CartHandler) Count(c *gin.Context) {
	count, err := h.cartService.ItemCount(c.Request.Context(), middleware.CartOwner(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, CountData{Count: int64(count)})
}

// Sync godoc
// @ID           syncCart
// @Summary      Clamp cart quantities to the current stock
// @Tags         cart
// @Produce      json
// @Param        X-Session-ID header string false "Anonymous cart session"
// @Success      200 {object} APIResponse[cart.CartResponse]
// @Router       /cart/sync [post]
func (h *CartHandler) Sync(c *gin.Context) {
	if err := h.cartService.SyncQuantities(c.Request.Context(), middleware.CartOwner(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.respondCart(c, "")
}

// Clear godoc
// @ID           clearCart
// @Summary      Empty the cart
// @Tags         cart
// @Param        X-Session-ID header string false "Anonymous cart session"
// @Success      204
// @Router       /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cartService.Clear(c.Request.Context(), middleware.CartOwner(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
