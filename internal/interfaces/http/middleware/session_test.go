package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartRouter(jwtService gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(jwtService, CartSession())
	r.GET("/cart", func(c *gin.Context) {
		owner := CartOwner(c)
		switch {
		case owner.UserID != nil:
			c.String(http.StatusOK, "user:"+owner.UserID.String())
		case owner.SessionID != nil:
			c.String(http.StatusOK, "session:"+*owner.SessionID)
		default:
			c.String(http.StatusOK, "none")
		}
	})
	return r
}

func TestCartSession(t *testing.T) {
	jwtService := newTestJWTService()
	r := cartRouter(OptionalJWTAuthMiddleware(jwtService, nil))

	t.Run("anonymous without header gets a new session", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/cart", nil)
		id := w.Header().Get(SessionHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, "session:"+id, w.Body.String())
	})

	t.Run("anonymous keeps its session", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/cart", map[string]string{SessionHeader: "abc"})
		assert.Equal(t, "abc", w.Header().Get(SessionHeader))
		assert.Equal(t, "session:abc", w.Body.String())
	})

	t.Run("authenticated user owns the cart", func(t *testing.T) {
		pair, input := newTestTokenPair(t, jwtService, false)
		headers := bearer(pair.AccessToken)
		headers[SessionHeader] = "abc"

		w := serve(r, http.MethodGet, "/cart", headers)
		assert.Empty(t, w.Header().Get(SessionHeader))
		assert.Equal(t, "user:"+input.UserID.String(), w.Body.String())
	})
}

func TestIdempotencyKey(t *testing.T) {
	r := gin.New()
	r.GET("/k", func(c *gin.Context) { c.String(http.StatusOK, IdempotencyKey(c)) })

	assert.Equal(t, "key-1", serve(r, http.MethodGet, "/k", map[string]string{IdempotencyKeyHeader: "key-1"}).Body.String())
	assert.Empty(t, serve(r, http.MethodGet, "/k", nil).Body.String())
}
