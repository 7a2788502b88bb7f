package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shop/backend/internal/application/info"
	domaininfo "github.com/shop/backend/internal/domain/info"
)

// InfoHandler serves the static shop information pages and the contact form
type InfoHandler struct {
	BaseHandler
	infoService *info.Service
}

// NewInfoHandler creates a new info handler
func NewInfoHandler(infoService *info.Service) *InfoHandler {
	return &InfoHandler{infoService: infoService}
}

// GetAboutUs godoc
// @ID           getInfoAboutUs
// @Summary      Get the about us page
// @Tags         info
// @Produce      json
// @Success      200 {object} APIResponse[info.PageResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /info/about [get]
func (h *InfoHandler) GetAboutUs(c *gin.Context) {
	page, err := h.infoService.GetAboutUs(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// GetPrivacyPolicy godoc
// @ID           getInfoPrivacyPolicy
// @Summary      Get the privacy policy
// @Tags         info
// @Produce      json
// @Success      200 {object} APIResponse[info.PageResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /info/privacy [get]
func (h *InfoHandler) GetPrivacyPolicy(c *gin.Context) {
	page, err := h.infoService.GetPrivacyPolicy(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// PublishAboutUs godoc
// @ID           publishInfoAboutUs
// @Summary      Publish a new about us page
// @Tags         info-admin
// @Accept       json
// @Produce      json
// @Param        request body info.PageRequest true "Page"
// @Success      201 {object} APIResponse[info.PageResponse]
// @Security     BearerAuth
// @Router       /info/about [put]
func (h *InfoHandler) PublishAboutUs(c *gin.Context) {
	h.publish(c, domaininfo.PageAboutUs)
}

// PublishPrivacyPolicy godoc
// @ID           publishInfoPrivacyPolicy
// @Summary      Publish a new privacy policy
// @Tags         info-admin
// @Accept       json
// @Produce      json
// @Param        request body info.PageRequest true "Page"
// @Success      201 {object} APIResponse[info.PageResponse]
// @Security     BearerAuth
// @Router       /info/privacy [put]
func (h *InfoHandler) PublishPrivacyPolicy(c *gin.Context) {
	h.publish(c, domaininfo.PagePrivacyPolicy)
}

func (h *InfoHandler) publish(c *gin.Context, kind domaininfo.PageKind) {
	var req info.PageRequest
	if !h.bindJSON(c, &req) {
		return
	}
	page, err := h.infoService.PublishPage(c.Request.Context(), kind, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, page)
}

// ListFAQ godoc
// @ID           listInfoFaq
// @Summary      List FAQ groups with their questions
// @Tags         info
// @Produce      json
// @Success      200 {object} APIResponse[[]info.FAQGroupResponse]
// @Router       /info/faq [get]
func (h *InfoHandler) ListFAQ(c *gin.Context) {
	groups, err := h.infoService.ListFAQ(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, groups)
}

// CreateFAQGroup godoc
// @ID           createInfoFaqGroup
// @Summary      Create a FAQ group
// @Tags         info-admin
// @Accept       json
// @Produce      json
// @Param        request body info.CreateFAQGroupRequest true "FAQ group"
// @Success      201 {object} APIResponse[info.FAQGroupResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /info/faq [post]
func (h *InfoHandler) CreateFAQGroup(c *gin.Context) {
	var req info.CreateFAQGroupRequest
	if !h.bindJSON(c, &req) {
		return
	}
	group, err := h.infoService.CreateFAQGroup(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, group)
}

// ListShopLocations godoc
// @ID           listInfoLocations
// @Summary      List shop locations
// @Tags         info
// @Produce      json
// @Success      200 {object} APIResponse[[]info.ShopLocationResponse]
// @Router       /info/locations [get]
func (h *InfoHandler) ListShopLocations(c *gin.Context) {
	locations, err := h.infoService.ListShopLocations(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, locations)
}

// CreateShopLocation godoc
// @ID           createInfoLocation
// @Summary      Add a shop location
// @Tags         info-admin
// @Accept       json
// @Produce      json
// @Param        request body info.CreateShopLocationRequest true "Location"
// @Success      201 {object} APIResponse[info.ShopLocationResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /info/locations [post]
func (h *InfoHandler) CreateShopLocation(c *gin.Context) {
	var req info.CreateShopLocationRequest
	if !h.bindJSON(c, &req) {
		return
	}
	location, err := h.infoService.CreateShopLocation(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, location)
}

// ListStates godoc
// @ID           listInfoStates
// @Summary      List states
// @Tags         info
// @Produce      json
// @Success      200 {object} APIResponse[[]info.PlaceResponse]
// @Router       /info/states [get]
func (h *InfoHandler) ListStates(c *gin.Context) {
	states, err := h.infoService.ListStates(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, states)
}

// ListCities godoc
// @ID           listInfoCities
// @Summary      List the cities of a state
// @Tags         info
// @Produce      json
// @Param        id path string true "State ID" format(uuid)
// @Success      200 {object} APIResponse[[]info.PlaceResponse]
// @Router       /info/states/{id}/cities [get]
func (h *InfoHandler) ListCities(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	cities, err := h.infoService.ListCities(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cities)
}

// ListInquiryCategories godoc
// @ID           listInfoInquiryCategories
// @Summary      List contact form categories
// @Tags         info
// @Produce      json
// @Success      200 {object} APIResponse[[]info.PlaceResponse]
// @Router       /info/contact/categories [get]
func (h *InfoHandler) ListInquiryCategories(c *gin.Context) {
	categories, err := h.infoService.ListInquiryCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// SubmitContact godoc
// @ID           submitInfoContact
// @Summary      Send the contact form
// @Tags         info
// @Accept       json
// @Produce      json
// @Param        request body info.ContactRequest true "Contact form"
// @Success      201 {object} APIResponse[info.ContactResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Router       /info/contact [post]
func (h *InfoHandler) SubmitContact(c *gin.Context) {
	var req info.ContactRequest
	if !h.bindJSON(c, &req) {
		return
	}
	contact, err := h.infoService.SubmitContact(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, contact)
}
