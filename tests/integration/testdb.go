// Package integration runs the shop services against a real PostgreSQL
// started with testcontainers. The schema comes from the embedded
// migrations, so these tests also prove the SQL matches the gorm models.
package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shop/backend/internal/infrastructure/migration"
	"github.com/shop/backend/migrations"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB is a migrated database inside a throwaway container
type TestDB struct {
	DB  *gorm.DB
	DSN string
	t   *testing.T
}

// NewTestDB starts a PostgreSQL container and applies every migration.
// It skips the test in -short mode.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("shop_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("admin123"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: Failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	tdb := &TestDB{DSN: dsn, t: t}
	tdb.Migrator(func(m *migration.Migrator) {
		require.NoError(t, m.Up(), "Failed to run migrations")
	})

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "Failed to connect to database")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(20)
	t.Cleanup(func() { _ = sqlDB.Close() })

	tdb.DB = db
	return tdb
}

// Migrator runs fn with a migrator over the embedded migrations on its own
// connection
func (tdb *TestDB) Migrator(fn func(m *migration.Migrator)) {
	tdb.t.Helper()

	m, err := migration.NewFromURL(tdb.DSN, migration.FromFS(migrations.Files), zap.NewNop())
	require.NoError(tdb.t, err, "Failed to create migrator")
	defer func() {
		if err := m.Close(); err != nil {
			tdb.t.Logf("Warning: Failed to close migrator: %v", err)
		}
	}()
	fn(m)
}

// Count returns the number of rows in table matching where
func (tdb *TestDB) Count(table, where string, args ...any) int64 {
	tdb.t.Helper()

	var n int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	if where != "" {
		query += " WHERE " + where
	}
	require.NoError(tdb.t, tdb.DB.Raw(query, args...).Scan(&n).Error)
	return n
}

// Tables lists the public tables, schema_migrations excluded
func (tdb *TestDB) Tables() []string {
	tdb.t.Helper()

	var tables []string
	require.NoError(tdb.t, tdb.DB.Raw(`
		SELECT tablename FROM pg_tables
		WHERE schemaname = 'public'
		AND tablename != 'schema_migrations'
		ORDER BY tablename
	`).Scan(&tables).Error)
	return tables
}
