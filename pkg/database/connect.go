package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/Ramsey-B/laurel/config"
)

// Connect opens the database, applies the connection pool settings and
// verifies connectivity with a ping.
func Connect(ctx context.Context, cfg *config.Config, logger ectologger.Logger) (DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DatabaseHost, cfg.DatabasePort, cfg.DatabaseUserName, cfg.DatabasePassword, cfg.DatabaseName, cfg.DatabaseSSLMode,
	)

	sqlxDB, err := sqlx.Open(cfg.DatabaseDriver, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database connection")
	}

	sqlxDB.SetMaxOpenConns(cfg.DatabaseMaxOpenConns)
	sqlxDB.SetMaxIdleConns(cfg.DatabaseMaxIdleConns)
	sqlxDB.SetConnMaxLifetime(cfg.DatabaseConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := sqlxDB.PingContext(pingCtx); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	logger.WithFields(map[string]any{
		"host":     cfg.DatabaseHost,
		"database": cfg.DatabaseName,
	}).Info("Connected to database")

	return NewDatabaseInstance(sqlxDB, logger), nil
}

// Migrate runs the SQL migrations against an open database.
func Migrate(db DB, cfg *config.Config, logger ectologger.Logger) error {
	instance, ok := db.(*DatabaseInstance)
	if !ok {
		return errors.New("migrations require a real database instance")
	}

	driver, err := postgres.WithInstance(instance.DB.DB, &postgres.Config{})
	if err != nil {
		return errors.Wrap(err, "failed to create migration driver")
	}

	migrationService := NewMigrationService(logger, &MigrationConfig{
		MigrationFolderPath: cfg.DatabaseMigrationFolderPath,
		Version:             uint(cfg.DatabaseMigrationVersion),
		Force:               cfg.DatabaseMigrationForce,
		AutoRollback:        cfg.DatabaseMigrationAutoRollback,
	})

	return migrationService.Migrate(cfg.DatabaseName, driver)
}
