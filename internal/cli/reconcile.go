// filepath: internal/cli/reconcile.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Popap2/forymusic/internal/audit"
	"github.com/Popap2/forymusic/internal/objectstore"
	"github.com/Popap2/forymusic/internal/repository"
	"github.com/Popap2/forymusic/internal/services"
)

func NewReconcileCommand(globalOptions *GlobalOptions) *cobra.Command {

	reconcileCommand := &cobra.Command{
		Use:   "reconcile",
		Short: "Run one reconciliation sweep over the pending-upload ledger",
		Long: `Scans the pending-upload ledger for rows left behind by interrupted uploads
(e.g., due to a server crash after bytes were offloaded). Completed uploads are
settled, orphaned bytes are removed. This does not start the HTTP server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconcile(globalOptions)
		},
	}

	return reconcileCommand
}

func runReconcile(globalOptions *GlobalOptions) error {
	cfg := globalOptions.Conf
	logger := globalOptions.Logger

	if cfg.Database.Path == "" {
		return fmt.Errorf("database path is required (config file or FORY_DATABASE_PATH)")
	}

	repo, err := repository.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer repo.Close()

	// The sweep may be the first thing ever run against this database.
	if err := repo.EnsureSchema(); err != nil {
		logger.Errorf("Failed to bootstrap database: %v", err)
		return err
	}

	storageService := services.NewStorageService(cfg, logger)

	var store objectstore.Store
	if cfg.ObjectStorage.Enabled() {
		store = objectstore.New(cfg.ObjectStorage.BaseURL, cfg.ObjectStorage.APIKey, cfg.ObjectStorage.Bucket, logger)
	}

	auditor := audit.NewLoggerAuditor(logger, cfg.Logging.AuditEnabled)
	reconcileService := services.NewReconcileService(repo, storageService, store, auditor, logger, cfg.Reconcile.Schedule, cfg.ReconcileGracePeriod)

	logger.Info("Starting reconciliation sweep...")

	report, err := reconcileService.SweepOnce()
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	logger.Infof("Sweep complete. Scanned: %d, Completed: %d, Orphans removed: %d, Staged files purged: %d, Failures: %d",
		report.Scanned, report.Completed, report.Orphans, report.StagingPurged, report.Failures)

	if report.Failures > 0 {
		return fmt.Errorf("%d ledger row(s) could not be resolved, see log for details", report.Failures)
	}
	return nil
}
