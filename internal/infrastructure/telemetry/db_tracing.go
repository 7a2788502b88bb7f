package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds database tracing configuration
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool
	SlowQueryThresh time.Duration
	DBName          string
}

type queryStartKey struct{}

// RegisterDBTracing installs otelgorm plus callbacks that annotate each
// query span with rows affected, table and a slow-query flag.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBName)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	thresh := cfg.SlowQueryThresh
	if thresh <= 0 {
		thresh = 200 * time.Millisecond
	}
	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey{}, time.Now())
		}
	}
	after := func(tx *gorm.DB) { annotateSpan(tx, thresh) }

	cb := db.Callback()
	registrations := []func() error{
		func() error { return cb.Create().Before("gorm:create").Register("shop:before_create", before) },
		func() error { return cb.Query().Before("gorm:query").Register("shop:before_query", before) },
		func() error { return cb.Update().Before("gorm:update").Register("shop:before_update", before) },
		func() error { return cb.Delete().Before("gorm:delete").Register("shop:before_delete", before) },
		func() error { return cb.Raw().Before("gorm:raw").Register("shop:before_raw", before) },
		func() error { return cb.Row().Before("gorm:row").Register("shop:before_row", before) },
		func() error { return cb.Create().After("gorm:create").Register("shop:after_create", after) },
		func() error { return cb.Query().After("gorm:query").Register("shop:after_query", after) },
		func() error { return cb.Update().After("gorm:update").Register("shop:after_update", after) },
		func() error { return cb.Delete().After("gorm:delete").Register("shop:after_delete", after) },
		func() error { return cb.Raw().After("gorm:raw").Register("shop:after_raw", after) },
		func() error { return cb.Row().After("gorm:row").Register("shop:after_row", after) },
	}
	for _, register := range registrations {
		if err := register(); err != nil {
			return err
		}
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.LogFullSQL),
		zap.Duration("slow_query_threshold", thresh),
	)
	return nil
}

func annotateSpan(tx *gorm.DB, thresh time.Duration) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", tx.Statement.RowsAffected))
	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		span.RecordError(tx.Error)
		span.SetStatus(codes.Error, tx.Error.Error())
	}
	if start, ok := ctx.Value(queryStartKey{}).(time.Time); ok {
		if elapsed := time.Since(start); elapsed > thresh {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
		}
	}
}
