package handler

import (

	"github.com/gin-gonic/gin"
	"github.com/shop/backend/internal/application/account"
	"github.com/shop/backend/internal/interfaces/http/dto"
)

// AccountHandler serves the caller's profile and addresses, plus staff user management
type AccountHandler struct {
	BaseHandler
	userService    *account.UserService
	addressService *account.AddressService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(userService *account.UserService, addressService *account.AddressService) *AccountHandler {
	return &AccountHandler{
		userService:    userService,
		addressService: addressService,
	}
}

// GetProfile godoc
// @ID           getAccountProfile
// @Summary      Get the current user's profile
// @Tags         account
// @Produce      json
// @Success      200 {object} APIResponse[account.UserResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /account/profile [get]
func (h *AccountHandler) GetProfile(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// ListAddresses godoc
// @ID           listAccountAddresses
// @Summary      List the current user's addresses
// @Tags         account
// @Produce      json
// @Success      200 {object} APIResponse[[]account.AddressResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /account/addresses [get]
func (h *AccountHandler) ListAddresses(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	addresses, err := h.addressService.ListAddresses(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, addresses)
}

// GetDefaultAddress godoc
// @ID           getAccountDefaultAddress
// @Summary      Get the user's default address
// @Description  The default address is the oldest one
// @Tags         account
// @Produce      json
// @Success      200 {object} APIResponse[account.AddressResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /account/addresses/default [get]
func (h *AccountHandler) GetDefaultAddress(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	address, err := h.addressService.GetDefaultAddress(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, address)
}

// CreateAddress godoc
// @ID           createAccountAddress
// @Summary      Add an address
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request body account.CreateAddressRequest true "Address"
// @Success      201 {object} APIResponse[account.AddressResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /account/addresses [post]
func (h *AccountHandler) CreateAddress(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req account.CreateAddressRequest
	if !h.bindJSON(c, &req) {
		return
	}

	address, err := h.addressService.CreateAddress(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, address)
}

// DeleteAddress godoc
// @ID           deleteAccountAddress
// @Summary      Delete one of the user's addresses
// @Tags         account
// @Param        id path string true "Address ID" format(uuid)
// @Success      204
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /account/addresses/{id} [delete]
func (h *AccountHandler) DeleteAddress(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.addressService.DeleteAddress(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListUsers godoc
// @ID           listUsers
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Param        search query string false "Email or name"
// @Success      200 {object} ListResponse[account.UserResponse]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users [get]
func (h *AccountHandler) ListUsers(c *gin.Context) {
	var req dto.ListRequest
	if !h.bindQuery(c, &req) {
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), req.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	writePage(c, users)
}

// CreateUser godoc
// @ID           createUser
// @Summary      Create a user
// @Description  Creates the user together with an empty wallet
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body account.CreateUserRequest true "User"
// @Success      201 {object} APIResponse[account.UserResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users [post]
func (h *AccountHandler) CreateUser(c *gin.Context) {
	var req account.CreateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

// DeactivateUser godoc
// @ID           deactivateUser
// @Summary      Deactivate a user
// @Description  Blocks the user and revokes every token issued so far
// @Tags         users
// @Param        id path string true "User ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id}/deactivate [post]
func (h *AccountHandler) DeactivateUser(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeactivateUser(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
