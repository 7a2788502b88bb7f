package handler

import (

	"github.com/gin-gonic/gin"
	"github.com/shop/backend/internal/application/order"
	"github.com/shop/backend/internal/interfaces/http/dto"
	"github.com/shop/backend/internal/interfaces/http/middleware"
)

// OrderHandler serves checkout and order tracking
type OrderHandler struct {
	BaseHandler
	orderService *order.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type orderListQuery struct {
	dto.ListRequest
	Status string `form:"status" binding:"max=30"`
}

// PlaceOrder godoc
// @ID           placeOrder
// @Summary      Place an order from the cart
// @Description  Prices the cart, consumes the coupon when usable, decrements stock and clears the cart in one transaction.
// @Description  A coupon that fails validation is dropped and the order is placed without it.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Replay protection key"
// @Param        request body order.PlaceOrderRequest true "Checkout"
// @Success      201 {object} APIResponse[order.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req order.PlaceOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	placed, err := h.orderService.PlaceOrder(c.Request.Context(), userID, middleware.IdempotencyKey(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, placed)
}

// ListOrders godoc
// @ID           listOrders
// @Summary      List the caller's orders
// @Description  Newest first. Each status is flagged active once the order reached it.
// @Tags         orders
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Success      200 {object} ListResponse[order.OrderResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req dto.ListRequest
	if !h.bindQuery(c, &req) {
		return
	}
	orders, err := h.orderService.ListOrders(c.Request.Context(), userID, req.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writePage(c, orders)
}

// GetOrder godoc
// @ID           getOrder
// @Summary      Get one of the caller's orders
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[order.OrderResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	o, err := h.orderService.GetOrder(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}

// CancelOrder godoc
// @ID           cancelOrder
// @Summary      Cancel one of the caller's orders
// @Description  Only orders that are not yet being packaged can be canceled
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[order.OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	o, err := h.orderService.Cancel(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}

// ListAllOrders godoc
// @ID           listAllOrders
// @Summary      List every order
// @Tags         orders-admin
// @Produce      json
// @Param        status query string false "Status name, e.g. ORDER_PLACED"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Success      200 {object} ListResponse[order.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders [get]
func (h *OrderHandler) ListAllOrders(c *gin.Context) {
	var q orderListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	orders, err := h.orderService.ListAllOrders(c.Request.Context(), q.Status, q.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writePage(c, orders)
}

// UpdateStatus godoc
// @ID           updateOrderStatus
// @Summary      Move an order to another status
// @Description  Delivered and canceled orders are final
// @Tags         orders-admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body order.UpdateStatusRequest true "Status"
// @Success      200 {object} APIResponse[order.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req order.UpdateStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	o, err := h.orderService.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}
