package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// migrator opens a temporary database/sql connection through the pgx stdlib
// driver and wraps it in a migrate instance.
func migrator(databaseURL, migrationsPath string) (*migrate.Migrate, *sql.DB, error) {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	if err := migrationDB.Ping(); err != nil {
		_ = migrationDB.Close()
		return nil, nil, fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		_ = migrationDB.Close()
		return nil, nil, fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		_ = migrationDB.Close()
		return nil, nil, fmt.Errorf("could not create migrate instance: %w", err)
	}
	return m, migrationDB, nil
}

func closeMigrator(m *migrate.Migrate, db *sql.DB, logger *slog.Logger) {
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
	}
	if err := db.Close(); err != nil {
		logger.Error("Error closing migration DB connection", slog.String("error", err.Error()))
	}
}

// MigrateUp applies every pending up migration.
func MigrateUp(databaseURL, migrationsPath string, logger *slog.Logger) error {
	m, db, err := migrator(databaseURL, migrationsPath)
	if err != nil {
		return err
	}
	defer closeMigrator(m, db, logger)

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	logger.Info("Database migrations applied successfully.")
	return nil
}

// MigrateDown rolls back steps migrations.
func MigrateDown(databaseURL, migrationsPath string, steps int, logger *slog.Logger) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	m, db, err := migrator(databaseURL, migrationsPath)
	if err != nil {
		return err
	}
	defer closeMigrator(m, db, logger)

	err = m.Steps(-steps)
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No migrations to roll back.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	logger.Info("Database migrations rolled back.", slog.Int("steps", steps))
	return nil
}
