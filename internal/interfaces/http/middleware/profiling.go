package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shop/backend/internal/infrastructure/telemetry"
)

// ProfilingConfig holds configuration for the profiling middleware.
type ProfilingConfig struct {
	Enabled bool
	// SkipPathPrefixes are left unlabeled
	SkipPathPrefixes []string
}

// DefaultProfilingConfig returns default profiling middleware configuration.
func DefaultProfilingConfig() ProfilingConfig {
	return ProfilingConfig{
		Enabled:          true,
		SkipPathPrefixes: []string{"/health", "/swagger"},
	}
}

// Profiling labels the request goroutine with method, route and module so
// profiles can be sliced per endpoint in Pyroscope.
func Profiling(cfg ProfilingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		telemetry.WithProfilingLabels(c.Request.Context(), profilingLabels(c), func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

func profilingLabels(c *gin.Context) map[string]string {
	labels := map[string]string{telemetry.ProfilingLabelMethod: c.Request.Method}
	route := c.FullPath()
	if route == "" {
		return labels
	}
	labels[telemetry.ProfilingLabelRoute] = route
	if module := routeModule(route); module != "" {
		labels[telemetry.ProfilingLabelModule] = module
	}
	return labels
}

// routeModule returns the first resource segment of a route pattern,
// e.g. "/api/v1/catalog/products/:id" -> "catalog"
func routeModule(route string) string {
	for _, part := range strings.Split(route, "/") {
		if part == "" || part == "api" || isVersionSegment(part) || strings.HasPrefix(part, ":") || strings.HasPrefix(part, "*") {
			continue
		}
		return part
	}
	return ""
}

// isVersionSegment reports whether segment looks like v1, v2, ...
func isVersionSegment(segment string) bool {
	if len(segment) < 2 || (segment[0] != 'v' && segment[0] != 'V') {
		return false
	}
	for i := 1; i < len(segment); i++ {
		if segment[i] < '0' || segment[i] > '9' {
			return false
		}
	}
	return true
}
