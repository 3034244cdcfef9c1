// filepath: internal/cli/reconcile_test.go
package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Popap2/forymusic/internal/config"
	"github.com/Popap2/forymusic/internal/logging"
)

func TestRunReconcileOnFreshDatabase(t *testing.T) {
	dir, err := os.MkdirTemp("", "forymusic_reconcile_")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	// A database file the serve command has never touched: the sweep
	// must bootstrap the schema itself instead of failing on a missing
	// pending_uploads table.
	cfg := &config.Config{
		Database: config.DatabaseConfig{Path: filepath.Join(dir, "fresh.db")},
		Storage: config.StorageConfig{
			StagingDir: filepath.Join(dir, "staging"),
			UploadsDir: filepath.Join(dir, "uploads"),
		},
	}
	assert.NoError(t, cfg.ParseAndValidate())

	options := &GlobalOptions{Conf: cfg, Logger: logging.NewLogger("error")}

	assert.NoError(t, runReconcile(options))
}

func TestRunReconcileRequiresDatabasePath(t *testing.T) {
	cfg := &config.Config{}
	assert.NoError(t, cfg.ParseAndValidate())

	options := &GlobalOptions{Conf: cfg, Logger: logging.NewLogger("error")}

	err := runReconcile(options)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database path")
}
