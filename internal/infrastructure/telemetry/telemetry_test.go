package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shop/backend/internal/domain/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

func TestDisabledProvidersAreNoops(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()

	tp, err := NewTracerProvider(ctx, Config{Enabled: false}, log)
	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	tp.EnableSpanProfiles()
	assert.False(t, tp.SpanProfilesEnabled())
	assert.NotNil(t, tp.Tracer("x"))
	assert.NoError(t, tp.Shutdown(ctx))

	mp, err := NewMeterProvider(ctx, MetricsConfig{Enabled: false}, log)
	require.NoError(t, err)
	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("x"))
	assert.NoError(t, mp.Shutdown(ctx))

	lp, err := NewLoggerProvider(ctx, LogsConfig{Enabled: false}, log)
	require.NoError(t, err)
	assert.False(t, lp.IsEnabled())
	assert.Same(t, log, lp.Bridge(log, zapcore.InfoLevel))
	assert.NoError(t, lp.Shutdown(ctx))

	p, err := NewProfiler(ProfilerConfig{Enabled: false}, log)
	require.NoError(t, err)
	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_RequiresAddress(t *testing.T) {
	_, err := NewProfiler(ProfilerConfig{Enabled: true}, zap.NewNop())
	assert.Error(t, err)
}

func TestSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), sampler(1).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), sampler(0).Description())
	assert.Contains(t, sampler(0.25).Description(), "TraceIDRatioBased")
}

func TestStartSpan_EndSpan(t *testing.T) {
	sr := recordSpans(t)

	ctx, span := StartSpan(context.Background(), "order", "place")
	assert.NotEmpty(t, GetTraceID(ctx))
	EndSpan(span, errors.New("out of stock"))

	_, second := StartSpan(context.Background(), "cart", "add")
	EndSpan(second, nil)

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "order.place", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Len(t, spans[0].Events(), 1)
	assert.Equal(t, codes.Ok, spans[1].Status().Code)
}

func TestGetTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
}

func TestLevelFilterCore(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	filtered := &levelFilterCore{Core: core, minLevel: zapcore.WarnLevel}
	l := zap.New(filtered).With(zap.String("k", "v"))

	l.Info("dropped")
	l.Warn("kept")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "kept", logs.All()[0].Message)
	assert.Equal(t, "v", logs.All()[0].ContextMap()["k"])
}

type tracedRow struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func TestRegisterDBTracing(t *testing.T) {
	sr := recordSpans(t)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedRow{}))

	require.NoError(t, RegisterDBTracing(db, DBTracingConfig{
		Enabled:         true,
		DBName:          "sqlite",
		SlowQueryThresh: time.Nanosecond,
	}, zap.NewNop()))

	require.NoError(t, db.WithContext(context.Background()).Create(&tracedRow{Name: "tea"}).Error)

	assert.NotEmpty(t, sr.Ended())
}

func TestAnnotateSpan(t *testing.T) {
	sr := recordSpans(t)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)

	ctx, span := otel.Tracer("test").Start(context.Background(), "query")
	ctx = context.WithValue(ctx, queryStartKey{}, time.Now().Add(-time.Second))
	tx := db.WithContext(ctx)
	tx.Statement.Table = "products"
	tx.Statement.RowsAffected = 3
	tx.Error = errors.New("deadlock")

	annotateSpan(tx, 100*time.Millisecond)
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	attrs := map[string]any{}
	for _, kv := range ended[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	assert.Equal(t, int64(3), attrs["db.rows_affected"])
	assert.Equal(t, "products", attrs["db.sql.table"])
	assert.Equal(t, true, attrs["db.slow_query"])
	assert.Equal(t, codes.Error, ended[0].Status().Code)
}

func TestRegisterDBTracing_Disabled(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	assert.NoError(t, RegisterDBTracing(db, DBTracingConfig{}, zap.NewNop()))
}

func counterValue(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	return 0
}

func TestShopMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := NewMeterProviderWithReader(reader, zap.NewNop())
	m, err := NewShopMetrics(mp.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordOrderPlaced(ctx, 120, true)
	m.RecordOrderPlaced(ctx, 80, false)
	m.RecordOrderCanceled(ctx)
	m.RecordCouponRejected(ctx, "COUPON_EXPIRED")
	m.RecordWalletTransfer(ctx, 25)
	m.RecordMessageSent(ctx, "email")
	m.RecordMessageSent(ctx, "sms")
	m.RecordEventHandled(ctx, "order-placed-message", "OrderPlaced", "handled")
	m.RecordEventHandled(ctx, "order-placed-message", "OrderPlaced", "duplicate")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	assert.Equal(t, int64(2), counterValue(t, rm, "shop.orders.placed"))
	assert.Equal(t, int64(1), counterValue(t, rm, "shop.orders.canceled"))
	assert.Equal(t, int64(1), counterValue(t, rm, "shop.coupons.rejected"))
	assert.Equal(t, int64(1), counterValue(t, rm, "shop.wallet.transfers"))
	assert.Equal(t, int64(2), counterValue(t, rm, "shop.messages.sent"))
	assert.Equal(t, int64(2), counterValue(t, rm, "shop.events.handled"))
}

func TestNopShopMetrics(t *testing.T) {
	m := NopShopMetrics()
	require.NotNil(t, m)
	assert.NotPanics(t, func() { m.RecordOrderPlaced(context.Background(), 0, false) })
}

type failingNotifier struct{}

func (failingNotifier) Push(context.Context, messaging.UserDevice, messaging.PushPayload) error {
	return nil
}
func (failingNotifier) Email(context.Context, string, string, string) error { return nil }
func (failingNotifier) SMS(context.Context, string, string) error {
	return errors.New("gateway down")
}

func TestInstrumentNotifier(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	m, err := NewShopMetrics(NewMeterProviderWithReader(reader, zap.NewNop()).Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	n := InstrumentNotifier(failingNotifier{}, m)
	require.NoError(t, n.Push(ctx, messaging.UserDevice{}, messaging.PushPayload{}))
	require.NoError(t, n.Email(ctx, "a@example.com", "s", "b"))
	assert.Error(t, n.SMS(ctx, "+1555", "b"))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	assert.Equal(t, int64(2), counterValue(t, rm, "shop.messages.sent"))

	assert.Equal(t, failingNotifier{}, InstrumentNotifier(failingNotifier{}, nil))
}
