package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/cart"
)

// Header names understood by the shop API
const (
	SessionHeader        = "X-Session-ID"
	IdempotencyKeyHeader = "Idempotency-Key"
	sessionKey           = "cart_session_id"
)

// CartSession assigns anonymous callers a cart session. A missing
// X-Session-ID gets a fresh id which is echoed back in the response header
// so the client can keep using it. Authenticated callers are left alone.
func CartSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetJWTUserID(c) == "" {
			id := c.GetHeader(SessionHeader)
			if id == "" {
				id = uuid.NewString()
			}
			c.Set(sessionKey, id)
			c.Header(SessionHeader, id)
		}
		c.Next()
	}
}

// CartOwner resolves the cart owner of the request: the user when
// authenticated, otherwise the session assigned by CartSession.
func CartOwner(c *gin.Context) cart.Owner {
	if id, ok := GetUserUUID(c); ok {
		return cart.Owner{UserID: &id}
	}
	session := c.GetString(sessionKey)
	if session == "" {
		session = c.GetHeader(SessionHeader)
	}
	if session == "" {
		return cart.Owner{}
	}
	return cart.Owner{SessionID: &session}
}

// IdempotencyKey returns the Idempotency-Key request header
func IdempotencyKey(c *gin.Context) string {
	return c.GetHeader(IdempotencyKeyHeader)
}
