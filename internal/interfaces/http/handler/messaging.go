package handler

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shop/backend/internal/application/messaging"
	"github.com/shop/backend/internal/interfaces/http/dto"
)

// MessagingHandler serves the in-app inbox, devices and group messages
type MessagingHandler struct {
	BaseHandler
	messagingService *messaging.Service
}

// NewMessagingHandler creates a new messaging handler
func NewMessagingHandler(messagingService *messaging.Service) *MessagingHandler {
	return &MessagingHandler{messagingService: messagingService}
}

// InboxPage is a page of the inbox with links to its neighbours
type InboxPage struct {
	Count       int64                       `json:"count"`
	UnseenCount int64                       `json:"unseen_count"`
	Next        *string                     `json:"next"`
	Previous    *string                     `json:"previous"`
	Results     []messaging.MessageResponse `json:"results"`
}

// pageLink rewrites the page query parameter of the current request URL
func pageLink(c *gin.Context, page int) *string {
	u := url.URL{Path: c.Request.URL.Path}
	q := c.Request.URL.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	link := u.String()
	return &link
}

// ListInbox godoc
// @ID           listMessages
// @Summary      List the caller's in-app messages
// @Description  Newest first
// @Tags         messages
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Success      200 {object} APIResponse[InboxPage]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /messages [get]
func (h *MessagingHandler) ListInbox(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req dto.ListRequest
	if !h.bindQuery(c, &req) {
		return
	}
	inbox, err := h.messagingService.ListInbox(c.Request.Context(), userID, req.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := InboxPage{
		Count:       inbox.Total,
		UnseenCount: inbox.UnseenCount,
		Results:     inbox.Items,
	}
	if page.Results == nil {
		page.Results = []messaging.MessageResponse{}
	}
	if inbox.HasNext() {
		page.Next = pageLink(c, inbox.Page+1)
	}
	if inbox.HasPrevious() {
		page.Previous = pageLink(c, inbox.Page-1)
	}
	h.Success(c, page)
}

// GetMessage godoc
// @ID           getMessage
// @Summary      Get one of the caller's messages
// @Tags         messages
// @Produce      json
// @Param        id path string true "Message ID" format(uuid)
// @Success      200 {object} APIResponse[messaging.MessageResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /messages/{id} [get]
func (h *MessagingHandler) GetMessage(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	msg, err := h.messagingService.GetMessage(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, msg)
}

// MarkSeen godoc
// @ID           markMessageSeen
// @Summary      Mark a message as read
// @Tags         messages
// @Produce      json
// @Param        id path string true "Message ID" format(uuid)
// @Success      200 {object} APIResponse[messaging.SeenResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /messages/{id}/seen [post]
func (h *MessagingHandler) MarkSeen(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	seen, err := h.messagingService.MarkSeen(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, seen)
}

// SyncDevice godoc
// @ID           syncMessageDevice
// @Summary      Register a push device token
// @Description  A token already registered to another user is moved to the caller
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        request body messaging.SyncDeviceRequest true "Device"
// @Success      202 {object} APIResponse[messaging.DeviceResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /messages/devices/sync [post]
func (h *MessagingHandler) SyncDevice(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req messaging.SyncDeviceRequest
	if !h.bindJSON(c, &req) {
		return
	}
	device, err := h.messagingService.SyncDevice(c.Request.Context(), userID, req.Token)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Accepted(c, device)
}

// SendMessage godoc
// @ID           sendMessage
// @Summary      Send a message to a user
// @Description  send_types: 1 SMS, 2 email, 3 in-app, 4 push notification
// @Tags         messages-admin
// @Accept       json
// @Produce      json
// @Param        request body messaging.SendMessageRequest true "Message"
// @Success      201 {object} APIResponse[messaging.MessageResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/messages [post]
func (h *MessagingHandler) SendMessage(c *gin.Context) {
	var req messaging.SendMessageRequest
	if !h.bindJSON(c, &req) {
		return
	}
	msg, err := h.messagingService.Send(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, msg)
}

// ListGroups godoc
// @ID           listMessageGroups
// @Summary      List message groups
// @Tags         messages-admin
// @Produce      json
// @Success      200 {object} APIResponse[[]messaging.GroupResponse]
// @Security     BearerAuth
// @Router       /admin/groups [get]
func (h *MessagingHandler) ListGroups(c *gin.Context) {
	groups, err := h.messagingService.ListGroups(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, groups)
}

// CreateGroup godoc
// @ID           createMessageGroup
// @Summary      Create a message group
// @Tags         messages-admin
// @Accept       json
// @Produce      json
// @Param        request body messaging.CreateGroupRequest true "Group"
// @Success      201 {object} APIResponse[messaging.GroupResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/groups [post]
func (h *MessagingHandler) CreateGroup(c *gin.Context) {
	var req messaging.CreateGroupRequest
	if !h.bindJSON(c, &req) {
		return
	}
	group, err := h.messagingService.CreateGroup(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, group)
}

// AddMember godoc
// @ID           addMessageGroupMember
// @Summary      Add a user to a group
// @Tags         messages-admin
// @Accept       json
// @Param        id path string true "Group ID" format(uuid)
// @Param        request body messaging.AddMemberRequest true "Member"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/groups/{id}/members [post]
func (h *MessagingHandler) AddMember(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req messaging.AddMemberRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if err := h.messagingService.AddMember(c.Request.Context(), id, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SendGroupMessage godoc
// @ID           sendGroupMessage
// @Summary      Send a message to every group member
// @Description  Members receive their copies asynchronously
// @Tags         messages-admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Group ID" format(uuid)
// @Param        request body messaging.GroupMessageRequest true "Message"
// @Success      202 {object} APIResponse[messaging.GroupMessageResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/groups/{id}/messages [post]
func (h *MessagingHandler) SendGroupMessage(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req messaging.GroupMessageRequest
	if !h.bindJSON(c, &req) {
		return
	}
	msg, err := h.messagingService.SendGroupMessage(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Accepted(c, msg)
}
