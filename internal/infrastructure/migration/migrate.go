package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// Source is a tree of *.up.sql / *.down.sql files
type Source struct {
	fsys fs.FS
	name string
}

// FromDir reads migrations from a directory on disk
func FromDir(path string) Source {
	return Source{fsys: os.DirFS(path), name: path}
}

// FromFS reads migrations from the root of fsys, typically an embed.FS
func FromFS(fsys fs.FS) Source {
	return Source{fsys: fsys, name: "embedded"}
}

// String names the source in logs
func (s Source) String() string { return s.name }

// Migrations lists the migration base names in version order
func (s Source) Migrations() ([]string, error) {
	return listMigrations(s.fsys)
}

func (s Source) driver() (source.Driver, error) {
	d, err := iofs.New(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source %s: %w", s.name, err)
	}
	return d, nil
}

// Migrator handles database migrations using golang-migrate
type Migrator struct {
	migrate *migrate.Migrate
	source  Source
	logger  *zap.Logger
}

// Status describes how far the database is behind its source
type Status struct {
	Current uint
	Latest  uint
	Dirty   bool
	Pending []string
}

// New creates a Migrator on an open connection. Close closes db as well.
func New(db *sql.DB, src Source, logger *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}
	sourceDriver, err := src.driver()
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return &Migrator{migrate: m, source: src, logger: logger}, nil
}

// NewFromURL creates a Migrator with its own connection to databaseURL
func NewFromURL(databaseURL string, src Source, logger *zap.Logger) (*Migrator, error) {
	sourceDriver, err := src.driver()
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return &Migrator{migrate: m, source: src, logger: logger}, nil
}

// Up runs all pending migrations
func (m *Migrator) Up() error {
	m.logger.Info("Running migrations up", zap.Stringer("source", m.source))

	err := m.migrate.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("No migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration up failed: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}

	m.logger.Info("Migrations completed",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)

	return nil
}

// Down rolls back all migrations
func (m *Migrator) Down() error {
	m.logger.Info("Running migrations down")

	err := m.migrate.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("No migrations to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration down failed: %w", err)
	}

	m.logger.Info("All migrations rolled back")
	return nil
}

// Steps applies n migrations (positive = up, negative = down)
func (m *Migrator) Steps(n int) error {
	m.logger.Info("Running migration steps", zap.Int("steps", n))

	err := m.migrate.Steps(n)
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("No migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration steps failed: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}

	m.logger.Info("Migration steps completed",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)

	return nil
}

// GoTo migrates to a specific version
func (m *Migrator) GoTo(version uint) error {
	m.logger.Info("Migrating to version", zap.Uint("target_version", version))

	err := m.migrate.Migrate(version)
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("Already at target version")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration to version %d failed: %w", version, err)
	}

	m.logger.Info("Migration to version completed", zap.Uint("version", version))
	return nil
}

// Version returns the current migration version, 0 when none is applied
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

// Status compares the applied version with the migrations in the source
func (m *Migrator) Status() (*Status, error) {
	current, dirty, err := m.Version()
	if err != nil {
		return nil, err
	}
	names, err := m.source.Migrations()
	if err != nil {
		return nil, err
	}

	status := &Status{Current: current, Dirty: dirty}
	for _, name := range names {
		version, err := parseVersion(name)
		if err != nil {
			return nil, err
		}
		if version > status.Latest {
			status.Latest = version
		}
		if version > current {
			status.Pending = append(status.Pending, name)
		}
	}
	return status, nil
}

// Force sets the migration version without running migrations.
// It is meant for clearing a dirty state after a failed migration.
func (m *Migrator) Force(version int) error {
	m.logger.Warn("Forcing migration version", zap.Int("version", version))

	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("failed to force version %d: %w", version, err)
	}

	m.logger.Info("Migration version forced", zap.Int("version", version))
	return nil
}

// Drop drops every table in the database
func (m *Migrator) Drop() error {
	m.logger.Warn("Dropping database - all data will be lost")

	if err := m.migrate.Drop(); err != nil {
		return fmt.Errorf("failed to drop database: %w", err)
	}

	m.logger.Info("Database dropped")
	return nil
}

// Close closes the migrator and releases resources
func (m *Migrator) Close() error {
	sourceErr, dbErr := m.migrate.Close()
	if sourceErr != nil {
		return fmt.Errorf("failed to close source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("failed to close database: %w", dbErr)
	}
	return nil
}
