package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shopEnv lists every variable these tests touch so each case starts clean
var shopEnv = []string{
	"SHOP_APP_NAME", "SHOP_APP_ENV", "SHOP_APP_PORT",
	"SHOP_DATABASE_HOST", "SHOP_DATABASE_PORT", "SHOP_DATABASE_PASSWORD",
	"SHOP_DATABASE_SSLMODE", "SHOP_DATABASE_MAX_OPEN_CONNS", "SHOP_DATABASE_MAX_IDLE_CONNS",
	"SHOP_JWT_SECRET", "SHOP_REDIS_ENABLED", "SHOP_ORDER_SHIPPING_DELAY",
	"SHOP_STORAGE_ENABLED", "SHOP_STORAGE_BUCKET", "SHOP_OUTBOX_BATCH_SIZE",
	"SHOP_SWAGGER_ENABLED", "SHOP_SWAGGER_REQUIRE_AUTH",
	"SHOP_HTTP_CORS_ALLOW_ORIGINS", "SHOP_TELEMETRY_SAMPLING_RATIO", "SHOP_TELEMETRY_DB_LOG_FULL_SQL",
}

func clearShopEnv(t *testing.T) {
	t.Helper()
	for _, k := range shopEnv {
		t.Setenv(k, "")
	}
}

func setProduction(t *testing.T) {
	t.Helper()
	t.Setenv("SHOP_APP_ENV", "production")
	t.Setenv("SHOP_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
	t.Setenv("SHOP_DATABASE_PASSWORD", "secure-password")
	t.Setenv("SHOP_DATABASE_SSLMODE", "require")
	t.Setenv("SHOP_SWAGGER_ENABLED", "false")
}

func TestLoad_Defaults(t *testing.T) {
	clearShopEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "shop-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "shop", cfg.Database.DBName)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, 72*time.Hour, cfg.Order.ShippingDelay)
	assert.Equal(t, 24*time.Hour, cfg.Order.IdempotencyTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.Scheduler.CartRetention)
	assert.Equal(t, time.Hour, cfg.Scheduler.EventPurgeInterval)
	assert.Equal(t, 2*time.Second, cfg.Outbox.PollInterval)
	assert.Equal(t, 100, cfg.Outbox.BatchSize)
	assert.Equal(t, "shop-backend", cfg.Profiler.ApplicationName)
	assert.Contains(t, cfg.HTTP.CORSAllowHeaders, "Idempotency-Key")
	assert.Contains(t, cfg.HTTP.CORSAllowHeaders, "X-Session-ID")
	assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearShopEnv(t)
	t.Setenv("SHOP_APP_PORT", "9000")
	t.Setenv("SHOP_DATABASE_HOST", "db.internal")
	t.Setenv("SHOP_DATABASE_PORT", "5433")
	t.Setenv("SHOP_REDIS_ENABLED", "true")
	t.Setenv("SHOP_ORDER_SHIPPING_DELAY", "48h")
	t.Setenv("SHOP_OUTBOX_BATCH_SIZE", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 48*time.Hour, cfg.Order.ShippingDelay)
	assert.Equal(t, 25, cfg.Outbox.BatchSize)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "idle conns above open conns",
			env:     map[string]string{"SHOP_DATABASE_MAX_OPEN_CONNS": "10", "SHOP_DATABASE_MAX_IDLE_CONNS": "20"},
			wantErr: "cannot exceed",
		},
		{
			name:    "negative idle conns",
			env:     map[string]string{"SHOP_DATABASE_MAX_IDLE_CONNS": "-1"},
			wantErr: "max_idle_conns cannot be negative",
		},
		{
			name:    "negative shipping delay",
			env:     map[string]string{"SHOP_ORDER_SHIPPING_DELAY": "-1h"},
			wantErr: "order.shipping_delay",
		},
		{
			name:    "sampling ratio out of range",
			env:     map[string]string{"SHOP_TELEMETRY_SAMPLING_RATIO": "1.5"},
			wantErr: "sampling_ratio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearShopEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ProductionValidation(t *testing.T) {
	t.Run("valid production config", func(t *testing.T) {
		clearShopEnv(t)
		setProduction(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})

	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing jwt secret", map[string]string{"SHOP_JWT_SECRET": ""}, "jwt.secret is required"},
		{"short jwt secret", map[string]string{"SHOP_JWT_SECRET": "short"}, "at least 32 characters"},
		{"missing db password", map[string]string{"SHOP_DATABASE_PASSWORD": ""}, "database.password is required"},
		{"ssl disabled", map[string]string{"SHOP_DATABASE_SSLMODE": "disable"}, "sslmode cannot be 'disable'"},
		{"wildcard cors", map[string]string{"SHOP_HTTP_CORS_ALLOW_ORIGINS": "*"}, "cors_allow_origins"},
		{"open swagger", map[string]string{"SHOP_SWAGGER_ENABLED": "true", "SHOP_SWAGGER_REQUIRE_AUTH": "false"}, "swagger endpoint"},
		{"full sql tracing", map[string]string{"SHOP_TELEMETRY_DB_LOG_FULL_SQL": "true"}, "db_log_full_sql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearShopEnv(t)
			setProduction(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "user",
		Password: "pass@word#123",
		DBName:   "shop",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "/shop")
	assert.Contains(t, dsn, "sslmode=disable")
	assert.Contains(t, dsn, "pass%40word%23123")
}
