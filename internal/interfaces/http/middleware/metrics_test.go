package middleware

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shop/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func meteredRouter(t *testing.T) (*gin.Engine, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := telemetry.NewMeterProviderWithReader(reader, zap.NewNop())
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	r := gin.New()
	r.Use(HTTPMetrics(mp))
	r.GET("/products/:id", func(c *gin.Context) { c.String(http.StatusOK, "product") })
	r.POST("/orders", func(c *gin.Context) { c.Status(http.StatusUnprocessableEntity) })
	return r, reader
}

func TestHTTPMetrics_RequestCounter(t *testing.T) {
	r, reader := meteredRouter(t)

	serve(r, http.MethodGet, "/products/1", nil)
	serve(r, http.MethodGet, "/products/2", nil)
	serve(r, http.MethodPost, "/orders", nil)
	serve(r, http.MethodGet, "/missing", nil)

	metrics := collect(t, reader)
	total, ok := metrics["http_server_request_total"]
	require.True(t, ok)
	sum, ok := total.Data.(metricdata.Sum[int64])
	require.True(t, ok)

	counts := map[string]int64{}
	for _, dp := range sum.DataPoints {
		route, _ := dp.Attributes.Value(attribute.Key("route"))
		class, _ := dp.Attributes.Value(attribute.Key("status_class"))
		counts[route.AsString()+" "+class.AsString()] += dp.Value
	}
	assert.Equal(t, map[string]int64{
		"/products/:id 2xx": 2,
		"/orders 4xx":       1,
		"unmatched 4xx":     1,
	}, counts)

	_, ok = metrics["http_server_request_duration_seconds"]
	assert.True(t, ok)
	_, ok = metrics["http_server_response_size_bytes"]
	assert.True(t, ok)

	active, ok := metrics["http_server_active_requests"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	for _, dp := range active.DataPoints {
		assert.Zero(t, dp.Value)
	}
}

func TestHTTPMetrics_Disabled(t *testing.T) {
	r := okRouter(HTTPMetrics(nil))
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/test", nil).Code)

	disabled, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{}, zap.NewNop())
	require.NoError(t, err)
	r = okRouter(HTTPMetrics(disabled))
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/test", nil).Code)
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "2xx", statusClass(http.StatusCreated))
	assert.Equal(t, "3xx", statusClass(http.StatusFound))
	assert.Equal(t, "4xx", statusClass(http.StatusConflict))
	assert.Equal(t, "5xx", statusClass(http.StatusServiceUnavailable))
	assert.Equal(t, "1xx", statusClass(http.StatusContinue))
}
