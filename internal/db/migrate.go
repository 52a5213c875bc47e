package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/oguzk/tutorlink/internal/pkg/logger"
	"github.com/pressly/goose/v3"
)

// Migrator wraps goose migrations over the pgx pool
type Migrator struct {
	pool           *pgxpool.Pool
	db             *sql.DB
	migrationsPath string
}

// NewMigrator creates a new migrator
func NewMigrator(pool *pgxpool.Pool, migrationsPath string) (*Migrator, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}

	// Goose works with *sql.DB, so open one from the pool's config
	db := stdlib.OpenDBFromPool(pool)

	return &Migrator{
		pool:           pool,
		db:             db,
		migrationsPath: migrationsPath,
	}, nil
}

// Run applies all pending migrations
func (mg *Migrator) Run(ctx context.Context) error {
	logger.Info().Str("dir", mg.migrationsPath).Msg("Applying database migrations")

	if err := goose.UpContext(ctx, mg.db, mg.migrationsPath); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, mg.db)
	if err != nil {
		return fmt.Errorf("goose version: %w", err)
	}

	logger.Info().Int64("version", version).Msg("Database migrations applied")
	return nil
}

// Close releases the stdlib handle. The underlying pool stays open.
func (mg *Migrator) Close() error {
	return mg.db.Close()
}
