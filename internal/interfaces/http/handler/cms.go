package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shop/backend/internal/application/cms"
)

// CMSHandler serves offers, sliders and banners
type CMSHandler struct {
	BaseHandler
	cmsService *cms.Service
}

// NewCMSHandler creates a new CMS handler
func NewCMSHandler(cmsService *cms.Service) *CMSHandler {
	return &CMSHandler{cmsService: cmsService}
}

type bannerQuery struct {
	Holder *int `form:"holder" binding:"omitempty,oneof=0 1"`
}

// ListOffers godoc
// @ID           listCmsOffers
// @Summary      List running offers
// @Tags         cms
// @Produce      json
// @Success      200 {object} APIResponse[[]cms.OfferResponse]
// @Router       /cms/offers [get]
func (h *CMSHandler) ListOffers(c *gin.Context) {
	offers, err := h.cmsService.ListActiveOffers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, offers)
}

// GetOffer godoc
// @ID           getCmsOffer
// @Summary      Get an offer with its items
// @Tags         cms-admin
// @Produce      json
// @Param        id path string true "Offer ID" format(uuid)
// @Success      200 {object} APIResponse[cms.OfferResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cms/offers/{id} [get]
func (h *CMSHandler) GetOffer(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	offer, err := h.cmsService.GetOffer(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, offer)
}

// CreateOffer godoc
// @ID           createCmsOffer
// @Summary      Create an offer
// @Tags         cms-admin
// @Accept       json
// @Produce      json
// @Param        request body cms.CreateOfferRequest true "Offer"
// @Success      201 {object} APIResponse[cms.OfferResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cms/offers [post]
func (h *CMSHandler) CreateOffer(c *gin.Context) {
	var req cms.CreateOfferRequest
	if !h.bindJSON(c, &req) {
		return
	}
	offer, err := h.cmsService.CreateOffer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, offer)
}

// AddOfferItem godoc
// @ID           addCmsOfferItem
// @Summary      Put a product on an offer
// @Tags         cms-admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Offer ID" format(uuid)
// @Param        request body cms.AddOfferItemRequest true "Offer item"
// @Success      201 {object} APIResponse[cms.OfferResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cms/offers/{id}/items [post]
func (h *CMSHandler) AddOfferItem(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req cms.AddOfferItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	offer, err := h.cmsService.AddOfferItem(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, offer)
}

// DeactivateOffer godoc
// @ID           deactivateCmsOffer
// @Summary      End an offer early
// @Tags         cms-admin
// @Produce      json
// @Param        id path string true "Offer ID" format(uuid)
// @Success      200 {object} APIResponse[cms.OfferResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cms/offers/{id}/deactivate [post]
func (h *CMSHandler) DeactivateOffer(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	offer, err := h.cmsService.DeactivateOffer(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, offer)
}

// ListSliders godoc
// @ID           listCmsSliders
// @Summary      List sliders
// @Tags         cms
// @Produce      json
// @Success      200 {object} APIResponse[[]cms.SliderResponse]
// @Router       /cms/sliders [get]
func (h *CMSHandler) ListSliders(c *gin.Context) {
	sliders, err := h.cmsService.ListSliders(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sliders)
}

// CreateSlider godoc
// @ID           createCmsSlider
// @Summary      Create a slider
// @Tags         cms-admin
// @Accept       json
// @Produce      json
// @Param        request body cms.CreateSliderRequest true "Slider"
// @Success      201 {object} APIResponse[cms.SliderResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cms/sliders [post]
func (h *CMSHandler) CreateSlider(c *gin.Context) {
	var req cms.CreateSliderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	slider, err := h.cmsService.CreateSlider(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, slider)
}

// ListBanners godoc
// @ID           listCmsBanners
// @Summary      List banners
// @Tags         cms
// @Produce      json
// @Param        holder query int false "Banner holder" Enums(0, 1)
// @Success      200 {object} APIResponse[[]cms.BannerResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /cms/banners [get]
func (h *CMSHandler) ListBanners(c *gin.Context) {
	var q bannerQuery
	if !h.bindQuery(c, &q) {
		return
	}
	banners, err := h.cmsService.ListBanners(c.Request.Context(), q.Holder)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, banners)
}

// CreateBanner godoc
// @ID           createCmsBanner
// @Summary      Create a banner
// @Tags         cms-admin
// @Accept       json
// @Produce      json
// @Param        request body cms.CreateBannerRequest true "Banner"
// @Success      201 {object} APIResponse[cms.BannerResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cms/banners [post]
func (h *CMSHandler) CreateBanner(c *gin.Context) {
	var req cms.CreateBannerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	banner, err := h.cmsService.CreateBanner(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, banner)
}
