// filepath: internal/cli/server.go
package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Popap2/forymusic/internal/api/handlers"
	"github.com/Popap2/forymusic/internal/audit"
	"github.com/Popap2/forymusic/internal/auth"
	"github.com/Popap2/forymusic/internal/httpserver"
	"github.com/Popap2/forymusic/internal/initconfig"
	"github.com/Popap2/forymusic/internal/objectstore"
	"github.com/Popap2/forymusic/internal/repository"
	"github.com/Popap2/forymusic/internal/services"
)

// serve wires the full service graph and runs the HTTP server with
// graceful shutdown.
func serve(globalOptions *GlobalOptions, serveOptions *ServeOptions, cmd *cobra.Command) error {
	if err := serveOptions.applyTo(globalOptions, cmd); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	cfg := globalOptions.Conf
	logger := globalOptions.Logger
	startTime := time.Now()

	if err := cfg.ValidateServe(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	repo, err := repository.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize repository: %w", err)
	}
	defer repo.Close()

	// Auto-migrate on startup so a fresh database is usable immediately.
	if err := repo.EnsureSchema(); err != nil {
		logger.Errorf("Failed to bootstrap database: %v", err)
		return err
	}

	storageService := services.NewStorageService(cfg, logger)
	if err := storageService.EnsureLayout(); err != nil {
		return fmt.Errorf("failed to prepare storage directories: %w", err)
	}

	// Object storage is optional. A nil store keeps uploads on local disk.
	var store objectstore.Store
	if cfg.ObjectStorage.Enabled() {
		store = objectstore.New(cfg.ObjectStorage.BaseURL, cfg.ObjectStorage.APIKey, cfg.ObjectStorage.Bucket, logger)
		logger.Infof("Object storage enabled, bucket %q at %s", cfg.ObjectStorage.Bucket, cfg.ObjectStorage.BaseURL)
	} else {
		logger.Info("Object storage not configured, serving uploads from local disk")
	}

	// Service Initialization
	infoService := services.NewInfoService(Version, startTime, cfg.ObjectStorage.Enabled())
	accountService := services.NewAccountService(repo, logger)
	trackService := services.NewTrackService(repo, storageService, logger)
	uploadService := services.NewUploadService(repo, storageService, store, logger)

	// Auditor Initialization
	loggerAuditor := audit.NewLoggerAuditor(logger, cfg.Logging.AuditEnabled)

	reconcileService := services.NewReconcileService(repo, storageService, store, loggerAuditor, logger, cfg.Reconcile.Schedule, cfg.ReconcileGracePeriod)

	guard := auth.NewSecretAuthorizer(cfg.Auth.AdminSecret)

	if serveOptions.SeedConfig != "" {
		logger.Infof("Found seed config, running initialization from: %s", serveOptions.SeedConfig)
		initconfig.Run(serveOptions.SeedConfig, accountService, trackService, logger)
	}

	if err := reconcileService.Start(); err != nil {
		return fmt.Errorf("failed to start reconciliation sweep: %w", err)
	}
	// No defer stop here, we stop explicitly during graceful shutdown

	h := handlers.NewHandlers(
		infoService,
		accountService,
		trackService,
		uploadService,
		guard,
		loggerAuditor,
		cfg,
		logger,
	)

	r := httpserver.SetupRouter(h, cfg.Storage.UploadsDir)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	// --- Graceful Shutdown Setup ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Infof("Server starting on %s (Max Upload: %s)", serverAddr, cfg.Storage.MaxUploadSize)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-stop
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop background services
	reconcileService.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	logger.Info("Server exiting")
	return nil
}
