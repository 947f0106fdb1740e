package data

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/KotFed0t/portfolio_tracker/config"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // sqlite driver
)

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

func NewSQLiteClient(cfg *config.Config) *sqlx.DB {
	db, err := OpenSQLite(cfg.DB.SQLitePath)
	if err != nil {
		slog.Error("SQLite open failed", slog.String("path", cfg.DB.SQLitePath), slog.String("err", err.Error()))
		panic(err)
	}
	slog.Info("SQLite connected", slog.String("path", cfg.DB.SQLitePath))

	return db
}

// OpenSQLite opens (creating if needed) the database file at path and migrates it.
// ":memory:" gives a private in-memory database.
func OpenSQLite(path string) (*sqlx.DB, error) {
	dsn := path
	pragmas := sqlitePragmas

	if path == ":memory:" {
		// WAL is not available for memory databases
		pragmas = "_pragma=foreign_keys(1)"
	} else if !strings.HasPrefix(path, "file:") {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		dsn = absPath
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}

	db, err := sqlx.Connect(config.DriverSQLite, dsn+sep+pragmas)
	if err != nil {
		return nil, err
	}

	// a single connection serialises writers and keeps memory databases alive
	db.SetMaxOpenConns(1)

	if err = Migrate(db, config.DriverSQLite); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
