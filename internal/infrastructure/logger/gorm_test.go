package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	_ gormlogger.Interface = (*GormLogger)(nil)
	_ gorm.ParamsFilter    = (*GormLogger)(nil)
)

func observed(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), logs
}

func TestGormLogger_LogMode(t *testing.T) {
	gl := NewGormLogger(zap.NewNop(), gormlogger.Info, WithSlowThreshold(time.Second))
	clone, ok := gl.LogMode(gormlogger.Error).(*GormLogger)
	require.True(t, ok)

	assert.Equal(t, gormlogger.Info, gl.level)
	assert.Equal(t, gormlogger.Error, clone.level)
	assert.Equal(t, time.Second, clone.slow)
}

func TestGormLogger_Trace(t *testing.T) {
	tests := []struct {
		name  string
		level gormlogger.LogLevel
		took  time.Duration
		err   error
		want  string
		lvl   zapcore.Level
	}{
		{"failure", gormlogger.Error, 0, errors.New("duplicate key"), "Query failed", zapcore.ErrorLevel},
		{"missing row", gormlogger.Info, 0, gormlogger.ErrRecordNotFound, "Query", zapcore.DebugLevel},
		{"slow", gormlogger.Warn, time.Second, nil, "Slow query", zapcore.WarnLevel},
		{"fast under warn", gormlogger.Warn, 0, nil, "", 0},
		{"query", gormlogger.Info, 0, nil, "Query", zapcore.DebugLevel},
		{"silent", gormlogger.Silent, time.Second, errors.New("x"), "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gl, logs := observed(tt.level)
			called := false
			gl.Trace(context.Background(), time.Now().Add(-tt.took), func() (string, int64) {
				called = true
				return "SELECT 1", 1
			}, tt.err)

			if tt.want == "" {
				assert.Zero(t, logs.Len())
				assert.False(t, called, "sql is only rendered when logged")
				return
			}
			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.want, entry.Message)
			assert.Equal(t, tt.lvl, entry.Level)
			assert.Equal(t, "SELECT 1", entry.ContextMap()["sql"])
		})
	}
}

func TestGormLogger_TraceCarriesRequestID(t *testing.T) {
	gl, logs := observed(gormlogger.Info)
	ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-9")

	gl.Trace(ctx, time.Now(), func() (string, int64) { return "SELECT * FROM products", 3 }, nil)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-9", fields["request_id"])
	assert.Equal(t, int64(3), fields["rows"])
}

func TestGormLogger_ParamsFilter(t *testing.T) {
	sql := "SELECT * FROM users WHERE email = ?"

	gotSQL, params := NewGormLogger(zap.NewNop(), gormlogger.Info).ParamsFilter(context.Background(), sql, "a@example.com")
	assert.Equal(t, sql, gotSQL)
	assert.Nil(t, params)

	_, params = NewGormLogger(zap.NewNop(), gormlogger.Info, WithQueryParams(true)).ParamsFilter(context.Background(), sql, "a@example.com")
	assert.Equal(t, []any{"a@example.com"}, params)
}

func TestGormLogger_Printf(t *testing.T) {
	gl, logs := observed(gormlogger.Warn)

	gl.Info(context.Background(), "hidden %d", 1)
	gl.Warn(context.Background(), "migrated %d tables", 4)
	gl.Error(context.Background(), "failed")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "migrated 4 tables", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestMapGormLogLevel(t *testing.T) {
	cases := map[string]gormlogger.LogLevel{
		"silent": gormlogger.Silent,
		"error":  gormlogger.Error,
		"warn":   gormlogger.Warn,
		"info":   gormlogger.Info,
		"debug":  gormlogger.Info,
		"":       gormlogger.Warn,
	}
	for in, want := range cases {
		assert.Equal(t, want, MapGormLogLevel(in), in)
	}
}
