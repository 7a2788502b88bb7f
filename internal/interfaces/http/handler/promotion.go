package handler

import (

	"github.com/gin-gonic/gin"
	"github.com/shop/backend/internal/application/promotion"
	"github.com/shop/backend/internal/interfaces/http/dto"
)

// PromotionHandler serves coupons
type PromotionHandler struct {
	BaseHandler
	promotionService *promotion.Service
}

// NewPromotionHandler creates a new promotion handler
func NewPromotionHandler(promotionService *promotion.Service) *PromotionHandler {
	return &PromotionHandler{promotionService: promotionService}
}

// ApplyCoupon godoc
// @ID           applyCoupon
// @Summary      Check a coupon against the current cart
// @Description  Validates the coupon for the caller and returns the discounted cart total. Nothing is consumed.
// @Tags         coupons
// @Accept       json
// @Produce      json
// @Param        request body promotion.ApplyCouponRequest true "Coupon code"
// @Success      200 {object} APIResponse[promotion.ApplyCouponResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /coupons/apply [post]
func (h *PromotionHandler) ApplyCoupon(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req promotion.ApplyCouponRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.promotionService.ApplyCoupon(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListCoupons godoc
// @ID           listCoupons
// @Summary      List coupons
// @Tags         coupons
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Param        search query string false "Code or title"
// @Success      200 {object} ListResponse[promotion.CouponResponse]
// @Security     BearerAuth
// @Router       /coupons [get]
func (h *PromotionHandler) ListCoupons(c *gin.Context) {
	var req dto.ListRequest
	if !h.bindQuery(c, &req) {
		return
	}
	coupons, err := h.promotionService.ListCoupons(c.Request.Context(), req.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writePage(c, coupons)
}

// GetCoupon godoc
// @ID           getCoupon
// @Summary      Get a coupon
// @Tags         coupons
// @Produce      json
// @Param        id path string true "Coupon ID" format(uuid)
// @Success      200 {object} APIResponse[promotion.CouponResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /coupons/{id} [get]
func (h *PromotionHandler) GetCoupon(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	coupon, err := h.promotionService.GetCouponByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, coupon)
}

// GetCouponByCode godoc
// @ID           getCouponByCode
// @Summary      Look a coupon up by code
// @Tags         coupons
// @Produce      json
// @Param        code path string true "Coupon code"
// @Success      200 {object} APIResponse[promotion.CouponResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /coupons/code/{code} [get]
func (h *PromotionHandler) GetCouponByCode(c *gin.Context) {
	coupon, err := h.promotionService.GetCouponByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, coupon)
}

// CreateCoupon godoc
// @ID           createCoupon
// @Summary      Create a coupon
// @Description  Type 0 is percent, 1 is a fixed amount. An empty eligible_user_ids list means everybody.
// @Tags         coupons
// @Accept       json
// @Produce      json
// @Param        request body promotion.CreateCouponRequest true "Coupon"
// @Success      201 {object} APIResponse[promotion.CouponResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /coupons [post]
func (h *PromotionHandler) CreateCoupon(c *gin.Context) {
	var req promotion.CreateCouponRequest
	if !h.bindJSON(c, &req) {
		return
	}
	coupon, err := h.promotionService.CreateCoupon(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, coupon)
}

// DeactivateCoupon godoc
// @ID           deactivateCoupon
// @Summary      Deactivate a coupon
// @Tags         coupons
// @Param        id path string true "Coupon ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /coupons/{id}/deactivate [post]
func (h *PromotionHandler) DeactivateCoupon(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.promotionService.DeactivateCoupon(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
