package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSecure_Defaults(t *testing.T) {
	w := serve(okRouter(Secure()), http.MethodGet, "/test", nil)

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "frame-ancestors 'none'")
	assert.Contains(t, w.Header().Get("Permissions-Policy"), "payment=()")
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestSecureWithConfig_HSTS(t *testing.T) {
	cfg := SecurityConfig{HSTSEnabled: true, HSTSMaxAge: 63072000, HSTSIncludeSubdomains: true, HSTSPreload: true}
	w := serve(okRouter(SecureWithConfig(cfg)), http.MethodGet, "/test", nil)

	assert.Equal(t, "max-age=63072000; includeSubDomains; preload", w.Header().Get("Strict-Transport-Security"))
	assert.Empty(t, w.Header().Get("Content-Security-Policy"))
	assert.Empty(t, w.Header().Get("Permissions-Policy"))
}

func TestSecure_SwaggerHasNoCSP(t *testing.T) {
	r := gin.New()
	r.Use(Secure())
	r.GET("/swagger/*any", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/v1/cart", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/swagger/index.html", nil)
	assert.Empty(t, w.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))

	w = serve(r, http.MethodGet, "/api/v1/cart", nil)
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
}
