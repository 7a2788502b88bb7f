package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowQuery = 200 * time.Millisecond

// GormLogger routes gorm's query log through zap. Queries are tagged with
// the request id and trace of their context. Bound values are left out of
// the logged SQL unless enabled with WithQueryParams, since they carry
// customer data such as emails and addresses.
type GormLogger struct {
	log       *zap.Logger
	level     gormlogger.LogLevel
	slow      time.Duration
	logParams bool
}

// GormLoggerOption configures a GormLogger
type GormLoggerOption func(*GormLogger)

// WithSlowThreshold sets the duration above which queries are logged as slow
func WithSlowThreshold(threshold time.Duration) GormLoggerOption {
	return func(l *GormLogger) { l.slow = threshold }
}

// WithQueryParams inlines bound values into logged SQL
func WithQueryParams(enabled bool) GormLoggerOption {
	return func(l *GormLogger) { l.logParams = enabled }
}

func NewGormLogger(log *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	l := &GormLogger{log: log.Named("gorm"), level: level, slow: defaultSlowQuery}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Info, msg, data)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Warn, msg, data)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Error, msg, data)
}

func (l *GormLogger) printf(ctx context.Context, level gormlogger.LogLevel, msg string, data []any) {
	if l.level < level {
		return
	}
	log := l.contextual(ctx)
	msg = fmt.Sprintf(msg, data...)
	switch level {
	case gormlogger.Error:
		log.Error(msg)
	case gormlogger.Warn:
		log.Warn(msg)
	default:
		log.Info(msg)
	}
}

// ParamsFilter drops bound values from logged SQL unless they were enabled.
// gorm calls it before rendering the statement for Trace.
func (l *GormLogger) ParamsFilter(_ context.Context, sql string, params ...any) (string, []any) {
	if l.logParams {
		return sql, params
	}
	return sql, nil
}

// Trace logs a finished statement: failures at error, slow queries at warn
// and everything else at debug when the level is Info. Missing rows are an
// expected outcome and never logged.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound)
	slow := l.slow > 0 && elapsed > l.slow

	var write func(string, ...zap.Field)
	var msg string
	log := l.contextual(ctx)
	switch {
	case failed && l.level >= gormlogger.Error:
		write, msg = log.Error, "Query failed"
	case slow && l.level >= gormlogger.Warn:
		write, msg = log.Warn, "Slow query"
	case l.level >= gormlogger.Info:
		write, msg = log.Debug, "Query"
	default:
		return
	}

	sql, rows := fc()
	fields := []zap.Field{
		zap.String("sql", sql),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	}
	if failed {
		fields = append(fields, zap.Error(err))
	}
	if slow {
		fields = append(fields, zap.Duration("threshold", l.slow))
	}
	write(msg, fields...)
}

func (l *GormLogger) contextual(ctx context.Context) *zap.Logger {
	log := WithTraceContext(ctx, l.log)
	if id := GetRequestID(ctx); id != "" {
		log = log.With(zap.String("request_id", id))
	}
	return log
}

// MapGormLogLevel maps an application log level onto a gorm log level
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
