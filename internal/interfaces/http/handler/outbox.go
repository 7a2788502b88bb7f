package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shop/backend/internal/application/event"
	"github.com/shop/backend/internal/interfaces/http/dto"
)

// OutboxHandler lets staff watch event delivery and requeue dead events
type OutboxHandler struct {
	BaseHandler
	outboxService *event.OutboxService
}

func NewOutboxHandler(outboxService *event.OutboxService) *OutboxHandler {
	return &OutboxHandler{outboxService: outboxService}
}

// ListDead godoc
// @ID           listOutboxDead
// @Summary      List dead outbox entries
// @Description  Events whose handlers kept failing after every retry, most recently failed first
// @Tags         outbox
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Success      200 {object} ListResponse[event.OutboxEntryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/outbox/dead [get]
func (h *OutboxHandler) ListDead(c *gin.Context) {
	var req dto.ListRequest
	if !h.bindQuery(c, &req) {
		return
	}
	entries, err := h.outboxService.ListDead(c.Request.Context(), req.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writePage(c, entries)
}

// GetEntry godoc
// @ID           getOutboxEntry
// @Summary      Get an outbox entry
// @Tags         outbox
// @Produce      json
// @Param        id path string true "Outbox entry ID" format(uuid)
// @Success      200 {object} APIResponse[event.OutboxEntryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/outbox/{id} [get]
func (h *OutboxHandler) GetEntry(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	entry, err := h.outboxService.GetEntry(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// Requeue godoc
// @ID           requeueOutboxEntry
// @Summary      Requeue a dead outbox entry
// @Description  The entry is delivered again with a fresh retry budget
// @Tags         outbox
// @Produce      json
// @Param        id path string true "Outbox entry ID" format(uuid)
// @Success      200 {object} APIResponse[event.OutboxEntryResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse "Entry is not dead"
// @Security     BearerAuth
// @Router       /admin/outbox/{id}/retry [post]
func (h *OutboxHandler) Requeue(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	entry, err := h.outboxService.Requeue(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// RequeueAllDead godoc
// @ID           requeueAllOutboxDead
// @Summary      Requeue every dead outbox entry
// @Tags         outbox
// @Produce      json
// @Success      200 {object} APIResponse[event.RequeueResponse]
// @Security     BearerAuth
// @Router       /admin/outbox/dead/retry-all [post]
func (h *OutboxHandler) RequeueAllDead(c *gin.Context) {
	count, err := h.outboxService.RequeueAllDead(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, event.RequeueResponse{Count: count})
}

// Stats godoc
// @ID           getOutboxStats
// @Summary      Count outbox entries per status
// @Tags         outbox
// @Produce      json
// @Success      200 {object} APIResponse[event.OutboxStatsResponse]
// @Security     BearerAuth
// @Router       /admin/outbox/stats [get]
func (h *OutboxHandler) Stats(c *gin.Context) {
	stats, err := h.outboxService.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
