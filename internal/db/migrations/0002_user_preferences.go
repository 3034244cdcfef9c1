package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upUserPreferences, downUserPreferences)
}

// upUserPreferences adds the JSON-valued preference columns to users.
func upUserPreferences(ctx context.Context, tx *sql.Tx) error {
	if err := addColumnIfMissing(ctx, tx, "users", "likes", "TEXT NOT NULL DEFAULT '[]'"); err != nil {
		return err
	}
	return addColumnIfMissing(ctx, tx, "users", "playlists", "TEXT NOT NULL DEFAULT '[]'")
}

func downUserPreferences(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `ALTER TABLE "users" DROP COLUMN playlists`); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `ALTER TABLE "users" DROP COLUMN likes`)
	return err
}
