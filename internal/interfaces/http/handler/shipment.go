package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shop/backend/internal/application/shipment"
)

// ShipmentHandler serves shipment types
type ShipmentHandler struct {
	BaseHandler
	shipmentService *shipment.Service
}

// NewShipmentHandler creates a new shipment handler
func NewShipmentHandler(shipmentService *shipment.Service) *ShipmentHandler {
	return &ShipmentHandler{shipmentService: shipmentService}
}

// ListTypes godoc
// @ID           listShipmentTypes
// @Summary      List active shipment types
// @Description  Cheapest first. total_price includes VAT.
// @Tags         shipments
// @Produce      json
// @Success      200 {object} APIResponse[[]shipment.ShipmentTypeResponse]
// @Router       /shipments/types [get]
func (h *ShipmentHandler) ListTypes(c *gin.Context) {
	types, err := h.shipmentService.ListActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, types)
}

// GetType godoc
// @ID           getShipmentType
// @Summary      Get a shipment type
// @Tags         shipments
// @Produce      json
// @Param        id path string true "Shipment type ID" format(uuid)
// @Success      200 {object} APIResponse[shipment.ShipmentTypeResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /shipments/types/{id} [get]
func (h *ShipmentHandler) GetType(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	st, err := h.shipmentService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, st)
}

// CreateType godoc
// @ID           createShipmentType
// @Summary      Create a shipment type
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        request body shipment.CreateShipmentTypeRequest true "Shipment type"
// @Success      201 {object} APIResponse[shipment.ShipmentTypeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /shipments/types [post]
func (h *ShipmentHandler) CreateType(c *gin.Context) {
	var req shipment.CreateShipmentTypeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	st, err := h.shipmentService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, st)
}
