// filepath: internal/repository/schema.go
package repository

import (
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/Popap2/forymusic/internal/db/migrations"
)

// EnsureSchema brings the database up to the current shape. It runs the
// embedded migrations on every process start; applied versions are
// no-ops, and the column migrations check for presence themselves, so
// restarts and pre-goose database files are both safe. Any DDL failure
// here must abort startup: the rest of the system assumes the tables
// and columns exist.
func (s *Repository) EnsureSchema() error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(s.DB, "."); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}

	s.Logger.Debug("EnsureSchema: database schema is up to date")
	return nil
}

// MigrateUp applies all pending migrations. Used by the migrate CLI.
func (s *Repository) MigrateUp() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.Up(s.DB, ".")
}

// MigrateDown rolls the schema back by one version.
func (s *Repository) MigrateDown() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.Down(s.DB, ".")
}

// MigrationStatus prints the per-migration status for the current file.
func (s *Repository) MigrationStatus() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.Status(s.DB, ".")
}
