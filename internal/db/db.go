// Package db opens and migrates the application database. The default
// deploy is a single binary writing a local sqlite file; DB_DRIVER=pgx
// points the same code at Postgres.
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Pool sizing for a small single-binary API. sqlite serializes writes
// regardless of pool size, so a large pool only adds lock contention.
const (
	maxOpenConns    = 16
	maxIdleConns    = 4
	connMaxLifetime = 30 * time.Minute
)

func Init(driver, connection string) (*sqlx.DB, error) {
	switch driver {
	case "sqlite":
		// First boot creates the data directory alongside the binary.
		if dir := filepath.Dir(connection); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
			}
		}
	case "pgx":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}

	// Connect pings, so a bad DSN or unreachable server fails here.
	database, err := sqlx.Connect(driver, connection)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	database.SetMaxOpenConns(maxOpenConns)
	database.SetMaxIdleConns(maxIdleConns)
	database.SetConnMaxLifetime(connMaxLifetime)

	slog.Info("database connected", "driver", driver)
	return database, nil
}

func Close(db *sqlx.DB) error {
	if db != nil {
		return db.Close()
	}
	return nil
}
