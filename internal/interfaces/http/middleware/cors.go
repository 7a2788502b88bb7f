package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// CORSConfig holds CORS middleware configuration
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// DefaultCORSConfig allows no origin; storefront origins must be configured
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders:     []string{"Content-Type", "Authorization", RequestIDHeader, SessionHeader, IdempotencyKeyHeader},
		ExposeHeaders:    []string{RequestIDHeader, SessionHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// CORSWithConfig answers preflight requests with 204 and decorates
// responses to allowed origins. A "*" entry allows every origin but never
// sends credentials.
func CORSWithConfig(cfg CORSConfig) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(cfg.AllowOrigins))
	wildcard := false
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			wildcard = true
		}
		allowed[o] = struct{}{}
	}

	static := http.Header{}
	static.Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowMethods, ", "))
	static.Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowHeaders, ", "))
	if len(cfg.ExposeHeaders) > 0 {
		static.Set("Access-Control-Expose-Headers", strings.Join(cfg.ExposeHeaders, ", "))
	}
	if cfg.MaxAge > 0 {
		static.Set("Access-Control-Max-Age", strconv.Itoa(int(cfg.MaxAge.Seconds())))
	}

	resolve := func(origin string) string {
		if wildcard {
			return "*"
		}
		if _, ok := allowed[origin]; ok && origin != "" {
			return origin
		}
		return ""
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Add("Vary", "Origin")

		if allow := resolve(c.GetHeader("Origin")); allow != "" {
			h.Set("Access-Control-Allow-Origin", allow)
			if cfg.AllowCredentials && allow != "*" {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			for k, v := range static {
				h[k] = v
			}
		}

		// preflight never reaches the routes, allowed or not
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
