// filepath: internal/db/migrations/embed.go
package migrations

import "embed"

// FS embeds all SQL migration files in this directory. The additive
// column migrations live next to them as Go migrations (0002, 0003)
// because SQLite has no ADD COLUMN IF NOT EXISTS.
//
//go:embed *.sql
var FS embed.FS
