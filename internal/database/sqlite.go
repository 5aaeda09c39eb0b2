package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/jsavoy93/time-tracker/internal/domain"

	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
}

// Connect opens the SQLite database at path, creating the parent directory
// if needed.
func Connect(path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("database path is required")
	}

	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	return &DB{DB: sqlDB}, nil
}

func (db *DB) HealthCheck(ctx context.Context) error {
	return db.PingContext(ctx)
}

// RunMigrations creates the schema. Each statement is idempotent.
//
// The partial unique index on sessions is the storage-level guarantee that
// at most one row has a null end_utc: every running row indexes the same
// constant expression, so a second one violates uniqueness.
func (db *DB) RunMigrations() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			is_active INTEGER NOT NULL DEFAULT 1,
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_utc TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			category_id INTEGER REFERENCES categories(id),
			description TEXT NOT NULL DEFAULT '',
			start_utc TEXT NOT NULL,
			end_utc TEXT,
			created_utc TEXT NOT NULL,
			updated_utc TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_start_utc ON sessions(start_utc)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_category_id ON sessions(category_id)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_one_running
			ON sessions ((end_utc IS NULL)) WHERE end_utc IS NULL`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	slog.Info("Database migrations completed")
	return nil
}

// defaultCategories are seeded into an empty catalog on first start.
var defaultCategories = []struct {
	name      string
	sortOrder int
}{
	{"Coding", 10},
	{"Meetings", 20},
	{"Support", 30},
	{"Planning", 40},
	{"Admin", 50},
}

// SeedCategories inserts the default category set when the table is empty.
func (db *DB) SeedCategories(ctx context.Context, clock clockwork.Clock) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}

	created := domain.FormatTimestamp(clock.Now())
	for _, cat := range defaultCategories {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO categories (name, is_active, sort_order, created_utc)
			VALUES (?, 1, ?, ?)
		`, cat.name, cat.sortOrder, created); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("seed category %q: %w", cat.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}

	slog.Info("Seeded default categories", "count", len(defaultCategories))
	return nil
}

// isUniqueViolation reports whether err comes from a UNIQUE constraint.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
