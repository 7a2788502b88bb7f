// Package middleware provides the gin middleware of the shop API.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
	// TracerProvider defaults to the global provider when nil.
	TracerProvider trace.TracerProvider
	// SkipPaths are never traced.
	SkipPaths []string
}

// DefaultTracingConfig returns default tracing configuration.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "shop-backend",
		Enabled:     true,
		SkipPaths:   []string{"/health", "/swagger/"},
	}
}

// Tracing returns OpenTelemetry tracing middleware with default configuration.
func Tracing() gin.HandlerFunc {
	return TracingWithConfig(DefaultTracingConfig())
}

// TracingWithConfig starts one server span per request named
// "METHOD route_pattern", e.g. "GET /api/v1/products/:id".
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	opts := []otelgin.Option{
		otelgin.WithFilter(func(r *http.Request) bool {
			for _, p := range cfg.SkipPaths {
				if strings.HasPrefix(r.URL.Path, p) {
					return false
				}
			}
			return true
		}),
	}
	if cfg.TracerProvider != nil {
		opts = append(opts, otelgin.WithTracerProvider(cfg.TracerProvider))
	}
	return otelgin.Middleware(cfg.ServiceName, opts...)
}

// TracingAttributeInjector tags the request span with the request id.
// Place it after Tracing and RequestID; the user id is added by the JWT
// middleware once the caller is known.
func TracingAttributeInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			if id := GetRequestID(c); id != "" {
				span.SetAttributes(attribute.String("request_id", id))
			}
		}
		c.Next()
	}
}

// SpanErrorMarker marks the request span as failed for 4xx and 5xx
// responses. otelgin alone leaves client errors unset.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			return
		}
		msg := http.StatusText(status)
		if status >= http.StatusInternalServerError {
			msg = "Internal Server Error"
		}
		span.SetStatus(codes.Error, msg)
		span.SetAttributes(attribute.Int("http.status_code", status))
	}
}

func annotateSpanUser(c *gin.Context, userID string, isStaff bool) {
	span := trace.SpanFromContext(c.Request.Context())
	if span.IsRecording() {
		span.SetAttributes(attribute.String("user_id", userID), attribute.Bool("user.is_staff", isStaff))
	}
}
