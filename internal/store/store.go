// Package store is a persistence collaborator for the generation engine:
// it owns the "schedules" table collaborators use to track a
// generated program's lifecycle (active flag, start date, current
// week/day). The core itself never reads or writes this table; it only
// hands a *program.Program to whichever collaborator calls SaveProgram.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Config holds connection configuration for a production sqlite database.
type Config struct {
	Path           string
	MigrationsPath string
}

// Open opens a cgo-backed sqlite database connection (via mattn/go-sqlite3)
// and runs pending migrations.
func Open(cfg Config) (*sql.DB, error) {
	dir := filepath.Dir(cfg.Path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("store: failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: failed to ping database: %w", err)
	}

	if cfg.MigrationsPath != "" {
		if err := runMigrations(db, "sqlite3", cfg.MigrationsPath); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}

// OpenInMemory opens an in-memory sqlite database using the pure-Go
// modernc.org/sqlite driver, avoiding cgo so the persistence collaborator's
// tests run anywhere.
func OpenInMemory(migrationsPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("store: failed to open in-memory database: %w", err)
	}
	if migrationsPath != "" {
		if err := runMigrations(db, "sqlite", migrationsPath); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}

func runMigrations(db *sql.DB, dialect, migrationsPath string) error {
	goose.SetBaseFS(nil)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("store: failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, migrationsPath); err != nil {
		return fmt.Errorf("store: failed to run migrations: %w", err)
	}
	return nil
}
