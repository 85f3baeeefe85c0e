package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/allisson/cachevault/migrations"
)

// migrationsDir maps a driver to its directory inside migrations.FS.
var migrationsDir = map[string]string{
	DriverSQLite:   "sqlite",
	DriverPostgres: "postgresql",
	DriverMySQL:    "mysql",
}

// Migrate applies every pending schema migration for driver on db.
//
// PostgreSQL and MySQL go through golang-migrate. The embedded libSQL engine has no
// golang-migrate driver, so sqlite runs the same embedded files through a small
// versioned runner that records progress in a schema_version table.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	dir, ok := migrationsDir[driver]
	if !ok {
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	if driver == DriverSQLite {
		return migrateSQLite(ctx, db, dir)
	}
	return migrateWithInstance(db, driver, dir)
}

func migrateWithInstance(db *sql.DB, driver, dir string) error {
	source, err := iofs.New(migrations.FS, dir)
	if err != nil {
		return fmt.Errorf("failed to open migration source: %w", err)
	}

	var m *migrate.Migrate
	switch driver {
	case DriverPostgres:
		instance, instanceErr := postgres.WithInstance(db, &postgres.Config{})
		if instanceErr != nil {
			return fmt.Errorf("failed to create migrate instance: %w", instanceErr)
		}
		m, err = migrate.NewWithInstance("iofs", source, driver, instance)
	case DriverMySQL:
		instance, instanceErr := mysql.WithInstance(db, &mysql.Config{})
		if instanceErr != nil {
			return fmt.Errorf("failed to create migrate instance: %w", instanceErr)
		}
		m, err = migrate.NewWithInstance("iofs", source, driver, instance)
	}
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	// m is not closed: closing it would close db, which belongs to the caller.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// sqliteMigration is one versioned up script.
type sqliteMigration struct {
	Version int
	Name    string
	SQL     string
}

func migrateSQLite(ctx context.Context, db *sql.DB, dir string) error {
	pending, err := loadSQLiteMigrations(dir)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("failed to create schema_version: %w", err)
	}

	var current int
	row := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`)
	if err := row.Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema_version: %w", err)
	}

	for _, m := range pending {
		if m.Version <= current {
			continue
		}
		if err := applySQLiteMigration(ctx, db, m); err != nil {
			return err
		}
	}
	return nil
}

func applySQLiteMigration(ctx context.Context, db *sql.DB, m sqliteMigration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
	}

	for _, stmt := range splitStatements(m.SQL) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}
	}
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO schema_version (version, name) VALUES (?, ?)`,
		m.Version,
		m.Name,
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
	}
	return nil
}

// loadSQLiteMigrations reads the *.up.sql files of dir ordered by version.
func loadSQLiteMigrations(dir string) ([]sqliteMigration, error) {
	files, err := fs.Glob(migrations.FS, path.Join(dir, "*.up.sql"))
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}

	result := make([]sqliteMigration, 0, len(files))
	for _, file := range files {
		base := strings.TrimSuffix(path.Base(file), ".up.sql")
		prefix, name, ok := strings.Cut(base, "_")
		if !ok {
			return nil, fmt.Errorf("malformed migration file name %q", file)
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("malformed migration version in %q: %w", file, err)
		}

		content, err := fs.ReadFile(migrations.FS, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %q: %w", file, err)
		}
		result = append(result, sqliteMigration{Version: version, Name: name, SQL: string(content)})
	}

	slices.SortFunc(result, func(a, b sqliteMigration) int { return a.Version - b.Version })
	return result, nil
}

// splitStatements splits a SQL script on semicolons and drops comment-only chunks.
func splitStatements(script string) []string {
	var stmts []string
	for _, raw := range strings.Split(script, ";") {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		hasCode := false
		for _, line := range strings.Split(s, "\n") {
			line = strings.TrimSpace(line)
			if line != "" && !strings.HasPrefix(line, "--") {
				hasCode = true
				break
			}
		}
		if hasCode {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
