// Package migration applies the embedded SQL schema with golang-migrate.
package migration

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
)

// Config points at the migration files.
type Config struct {
	MigrationsFS   fs.FS
	MigrationsPath string
	// LockTimeout bounds the wait for the migration advisory lock. Zero means 30s.
	LockTimeout time.Duration
}

// Migrator runs migrations against a pgx pool.
type Migrator struct {
	config Config
	pool   *pgxpool.Pool
	log    zerolog.Logger
}

// NewMigrator creates a migrator.
func NewMigrator(config Config, pool *pgxpool.Pool, log zerolog.Logger) *Migrator {
	if config.LockTimeout == 0 {
		config.LockTimeout = 30 * time.Second
	}
	return &Migrator{config: config, pool: pool, log: log.With().Str("component", "migrator").Logger()}
}

// Up applies all pending migrations. An up-to-date schema is not an error.
func (m *Migrator) Up(ctx context.Context) error {
	mg, err := m.open(ctx)
	if err != nil {
		return err
	}
	defer m.close(mg)

	if err := mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	// Версия нужна только для лога
	version, dirty, _ := mg.Version()
	m.log.Info().Uint("version", version).Bool("dirty", dirty).Msg("database migrations applied")
	return nil
}

// Down rolls back every migration.
func (m *Migrator) Down(ctx context.Context) error {
	mg, err := m.open(ctx)
	if err != nil {
		return err
	}
	defer m.close(mg)

	if err := mg.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	m.log.Info().Msg("database migrations rolled back")
	return nil
}

// Version returns the current schema version; zero with no error when nothing was applied.
func (m *Migrator) Version(ctx context.Context) (uint, bool, error) {
	mg, err := m.open(ctx)
	if err != nil {
		return 0, false, err
	}
	defer m.close(mg)

	version, dirty, err := mg.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

// open собирает migrate.Migrate поверх пула: database/sql обертка + iofs источник.
func (m *Migrator) open(ctx context.Context) (*migrate.Migrate, error) {
	if err := m.pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database is not reachable: %w", err)
	}

	// golang-migrate работает с *sql.DB, поэтому оборачиваем пул pgx
	db := stdlib.OpenDBFromPool(m.pool)
	driver, err := postgres.WithInstance(db, &postgres.Config{
		MigrationsTable:       "schema_migrations",
		MigrationsTableQuoted: true,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	source, err := iofs.New(m.config.MigrationsFS, m.config.MigrationsPath)
	if err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("failed to create source driver: %w", err)
	}

	mg, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	// Несколько реплик могут стартовать одновременно, advisory lock сериализует их
	mg.LockTimeout = m.config.LockTimeout
	return mg, nil
}

// close закрывает источник и драйвер. Ошибки только логируются.
func (m *Migrator) close(mg *migrate.Migrate) {
	if srcErr, dbErr := mg.Close(); srcErr != nil || dbErr != nil {
		m.log.Warn().AnErr("source", srcErr).AnErr("database", dbErr).Msg("failed to close migrator")
	}
}
