package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shop/backend/internal/interfaces/http/dto"
)

// RequireStaff rejects authenticated callers without the is_staff claim.
// It must run after JWTAuthMiddleware.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetJWTClaims(c) == nil {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if !IsStaff(c) {
			abortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden, "Staff access required")
			return
		}
		c.Next()
	}
}
