package config

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func newMigrator(cfg *Config) (*migrate.Migrate, func(), error) {
	sqlDB, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("open db for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("create migration driver: %w", err)
	}

	migrationPath, err := filepath.Abs(cfg.MigrationsDir)
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("resolve migration path: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationPath, "postgres", driver)
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("initialize migrator: %w", err)
	}

	closeFn := func() {
		m.Close()
	}
	return m, closeFn, nil
}

// RunMigrations applies every pending up migration.
func RunMigrations(cfg *Config, logger *slog.Logger) error {
	m, closeFn, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	logger.Info("database migrations applied")
	return nil
}

// MigrateDown rolls back the given number of migrations.
func MigrateDown(cfg *Config, steps int, logger *slog.Logger) error {
	if steps <= 0 {
		return errors.New("steps must be positive")
	}

	m, closeFn, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("rollback migrations: %w", err)
	}

	logger.Info("database migrations rolled back", "steps", steps)
	return nil
}
