package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequireStaff(t *testing.T) {
	jwtService := newTestJWTService()
	staff, _ := newTestTokenPair(t, jwtService, true)
	customer, _ := newTestTokenPair(t, jwtService, false)

	r := gin.New()
	r.GET("/admin", JWTAuthMiddleware(jwtService, nil), RequireStaff(), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/unguarded", RequireStaff(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/admin", bearer(staff.AccessToken)).Code)

	w := serve(r, http.MethodGet, "/admin", bearer(customer.AccessToken))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_FORBIDDEN")

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/admin", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/unguarded", nil).Code)
}
