// filepath: internal/repository/repository.go
// Package repository implements the persistence layer on SQLite.
package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	_ "modernc.org/sqlite"

	"github.com/Popap2/forymusic/internal/config"
)

// cacheTTL is how long read results stay valid before the next DB hit.
const cacheTTL = 5 * time.Minute

// Repository bundles the database handle with its cache and query builder.
// All components receive it at construction time; there is no package-level
// connection state.
type Repository struct {
	DB      *sql.DB
	Cache   *cache.Cache
	Builder squirrel.StatementBuilderType
	Logger  *logrus.Logger
}

// New opens the SQLite database and prepares the repository.
// WAL mode plus a busy timeout lets parallel request handlers share the
// single database file without sqlite_busy failures.
func New(cfg *config.Config, logger *logrus.Logger) (*Repository, error) {
	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Database.Path, err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{
		DB:      db,
		Cache:   cache.New(cacheTTL, 10*time.Minute),
		Builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		Logger:  logger,
	}, nil
}

// Close releases the underlying database handle.
func (s *Repository) Close() error {
	return s.DB.Close()
}
