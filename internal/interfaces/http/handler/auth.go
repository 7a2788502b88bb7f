package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shop/backend/internal/application/account"
	"github.com/shop/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles token issuing HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *account.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *account.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Token godoc
// @ID           createAuthToken
// @Summary      Obtain a token pair
// @Description  Exchange email and password for an access and refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body account.LoginRequest true "Credentials"
// @Success      200 {object} APIResponse[account.TokenResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Router       /auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var req account.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	tokens, err := h.authService.Authenticate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tokens)
}

// Refresh godoc
// @ID           refreshAuthToken
// @Summary      Refresh a token pair
// @Description  Rotate the refresh token and issue a new access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body account.RefreshRequest true "Refresh token"
// @Success      200 {object} APIResponse[account.TokenResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req account.RefreshRequest
	if !h.bindJSON(c, &req) {
		return
	}

	tokens, err := h.authService.RefreshTokens(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tokens)
}

// Logout godoc
// @ID           logoutAuth
// @Summary      Revoke the current access token
// @Tags         auth
// @Produce      json
// @Success      204
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims.ID, claims.GetRemainingTTL()); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
