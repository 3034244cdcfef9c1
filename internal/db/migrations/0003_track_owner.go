package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upTrackOwner, downTrackOwner)
}

// upTrackOwner adds the advisory ownership tag to tracks. The column is
// informational: nothing authorizes against it.
func upTrackOwner(ctx context.Context, tx *sql.Tx) error {
	return addColumnIfMissing(ctx, tx, "tracks", "owner_email", "TEXT NOT NULL DEFAULT ''")
}

func downTrackOwner(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `ALTER TABLE "tracks" DROP COLUMN owner_email`)
	return err
}
