package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shop/backend/internal/interfaces/http/dto"
)

// BodyLimit rejects requests whose declared length exceeds maxBytes with 413
// and caps the reader for bodies sent without a length. Zero disables it.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 || c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			abortWithError(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
