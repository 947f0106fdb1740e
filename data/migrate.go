package data

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/KotFed0t/portfolio_tracker/config"
	"github.com/KotFed0t/portfolio_tracker/migrations"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
)

// Migrate brings the schema up to date using the migrations embedded for the given driver.
// Running it against an already migrated database is a no-op.
func Migrate(db *sqlx.DB, driver string) error {
	var (
		dbDriver database.Driver
		err      error
	)

	switch driver {
	case config.DriverSQLite:
		dbDriver, err = sqlite.WithInstance(db.DB, &sqlite.Config{})
	case config.DriverPostgres:
		dbDriver, err = postgres.WithInstance(db.DB, &postgres.Config{})
	default:
		return fmt.Errorf("unsupported db driver %q", driver)
	}
	if err != nil {
		return fmt.Errorf("%s.WithInstance: %w", driver, err)
	}

	source, err := iofs.New(migrations.FS, driver)
	if err != nil {
		return fmt.Errorf("iofs.New: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driver, dbDriver)
	if err != nil {
		return fmt.Errorf("migrate.NewWithInstance: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("m.Up: %w", err)
	}

	slog.Info("db migrated successfully", slog.String("driver", driver))

	return nil
}
