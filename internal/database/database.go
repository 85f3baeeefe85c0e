// Package database provides database connection management and utilities.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/tursodatabase/go-libsql"
)

// Supported values for Config.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// sqlitePragmas are applied to every libSQL connection pool right after it opens.
var sqlitePragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA foreign_keys=ON",
	"PRAGMA temp_store=MEMORY",
}

// Config holds database configuration settings.
type Config struct {
	Driver             string
	ConnectionString   string
	MaxOpenConnections int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

// Connect establishes a database connection with the given configuration.
//
// The sqlite driver is served by the embedded libSQL engine. Its pool is pinned to a
// single connection so writers serialize on the file, and the directory holding the
// database file is created when missing.
func Connect(cfg Config) (*sql.DB, error) {
	if cfg.Driver == DriverSQLite {
		return connectSQLite(cfg)
	}

	db, err := sql.Open(cfg.Driver, cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func connectSQLite(cfg Config) (*sql.DB, error) {
	if path := SQLiteFilePath(cfg.ConnectionString); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("libsql", cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db, sqlitePragmas); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// applyPragmas runs each statement through QueryRow, since some PRAGMAs answer with
// a row and others with nothing. Only the empty answer is tolerated.
func applyPragmas(db *sql.DB, pragmas []string) error {
	for _, pragma := range pragmas {
		var result any
		if err := db.QueryRow(pragma).Scan(&result); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}
	return nil
}

// SQLiteFilePath extracts the filesystem path from a libSQL "file:" DSN. It returns an
// empty string for anything that is not a local file.
func SQLiteFilePath(dsn string) string {
	path, ok := strings.CutPrefix(dsn, "file:")
	if !ok {
		return ""
	}
	path, _, _ = strings.Cut(path, "?")
	if path == "" || path == ":memory:" {
		return ""
	}
	return path
}
