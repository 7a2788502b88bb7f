package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shop/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var httpDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// httpMetrics holds the HTTP server instruments
type httpMetrics struct {
	requestTotal    *telemetry.Counter
	requestDuration *telemetry.Histogram
	responseSize    *telemetry.Histogram
	activeRequests  metric.Int64UpDownCounter
}

func newHTTPMetrics(meter metric.Meter) (*httpMetrics, error) {
	requestTotal, err := telemetry.NewCounter(meter,
		"http_server_request_total", "Total number of HTTP requests", "{request}")
	if err != nil {
		return nil, err
	}
	requestDuration, err := telemetry.NewHistogram(meter,
		"http_server_request_duration_seconds", "HTTP request latency in seconds", "s", httpDurationBuckets...)
	if err != nil {
		return nil, err
	}
	responseSize, err := telemetry.NewHistogram(meter,
		"http_server_response_size_bytes", "HTTP response body size in bytes", "By",
		100, 1000, 10000, 100000, 1000000)
	if err != nil {
		return nil, err
	}
	activeRequests, err := meter.Int64UpDownCounter("http_server_active_requests",
		metric.WithDescription("Number of in-flight HTTP requests"),
		metric.WithUnit("{request}"))
	if err != nil {
		return nil, err
	}
	return &httpMetrics{
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		responseSize:    responseSize,
		activeRequests:  activeRequests,
	}, nil
}

// HTTPMetrics records request count, latency, response size and in-flight
// requests per route pattern. A disabled provider yields a pass-through.
func HTTPMetrics(mp *telemetry.MeterProvider) gin.HandlerFunc {
	if mp == nil || !mp.IsEnabled() {
		return func(c *gin.Context) { c.Next() }
	}
	return HTTPMetricsWithMeter(mp.Meter("http.server"))
}

// HTTPMetricsWithMeter records HTTP metrics on an explicit meter
func HTTPMetricsWithMeter(meter metric.Meter) gin.HandlerFunc {
	m, err := newHTTPMetrics(meter)
	if err != nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()
		method := attribute.String("method", c.Request.Method)

		m.activeRequests.Add(ctx, 1, metric.WithAttributes(method))
		defer m.activeRequests.Add(ctx, -1, metric.WithAttributes(method))

		c.Next()

		route := routePattern(c)
		status := c.Writer.Status()
		attrs := []attribute.KeyValue{method, attribute.String("route", route)}

		m.requestTotal.Inc(ctx, append(attrs,
			attribute.String("status_code", strconv.Itoa(status)),
			attribute.String("status_class", statusClass(status)))...)
		m.requestDuration.RecordDuration(ctx, time.Since(start), attrs...)
		if size := c.Writer.Size(); size > 0 {
			m.responseSize.Record(ctx, float64(size), attrs...)
		}
	}
}

// routePattern returns the matched route, keeping label cardinality bounded
func routePattern(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
