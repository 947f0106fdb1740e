package data

import (
	"fmt"

	"github.com/KotFed0t/portfolio_tracker/config"
	"github.com/jmoiron/sqlx"
)

// NewDBClient connects to the database selected by DB_DRIVER.
func NewDBClient(cfg *config.Config) *sqlx.DB {
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		return NewSQLiteClient(cfg)
	case config.DriverPostgres:
		return NewPostgresClient(cfg)
	default:
		panic(fmt.Sprintf("unsupported DB_DRIVER %q", cfg.DB.Driver))
	}
}
