package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// SecurityConfig selects the hardening headers sent on every response
type SecurityConfig struct {
	HSTSEnabled           bool
	HSTSMaxAge            int // seconds
	HSTSIncludeSubdomains bool
	HSTSPreload           bool

	CSPDirective string
	// CSPExemptPrefixes are paths served without a Content-Security-Policy,
	// such as the swagger UI which relies on inline scripts
	CSPExemptPrefixes []string

	PermissionsPolicy string
}

// DefaultSecurityConfig returns settings for a JSON API. HSTS is off until
// the deployment terminates TLS.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		HSTSMaxAge:            31536000,
		HSTSIncludeSubdomains: true,
		CSPDirective:          "default-src 'none'; img-src 'self' data: https:; frame-ancestors 'none'; base-uri 'none'; form-action 'none'",
		CSPExemptPrefixes:     []string{"/swagger/"},
		PermissionsPolicy:     "accelerometer=(), camera=(), geolocation=(), gyroscope=(), magnetometer=(), microphone=(), payment=(), usb=()",
	}
}

// Secure adds security headers using DefaultSecurityConfig
func Secure() gin.HandlerFunc {
	return SecureWithConfig(DefaultSecurityConfig())
}

// SecureWithConfig adds security headers to every response
func SecureWithConfig(cfg SecurityConfig) gin.HandlerFunc {
	fixed := map[string]string{
		"X-Frame-Options":        "DENY",
		"X-Content-Type-Options": "nosniff",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	if cfg.PermissionsPolicy != "" {
		fixed["Permissions-Policy"] = cfg.PermissionsPolicy
	}
	if cfg.HSTSEnabled {
		hsts := fmt.Sprintf("max-age=%d", cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubdomains {
			hsts += "; includeSubDomains"
		}
		if cfg.HSTSPreload {
			hsts += "; preload"
		}
		fixed["Strict-Transport-Security"] = hsts
	}

	return func(c *gin.Context) {
		for k, v := range fixed {
			c.Header(k, v)
		}
		if cfg.CSPDirective != "" && !hasAnyPrefix(c.Request.URL.Path, cfg.CSPExemptPrefixes) {
			c.Header("Content-Security-Policy", cfg.CSPDirective)
		}
		c.Next()
	}
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
