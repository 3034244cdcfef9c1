// filepath: internal/services/reconcile_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/Popap2/forymusic/internal/housekeeping"
	"github.com/Popap2/forymusic/internal/models"
	"github.com/Popap2/forymusic/internal/objectstore"
	"github.com/Popap2/forymusic/internal/repository"
	"github.com/Popap2/forymusic/internal/storage"
)

// Compile-time check to ensure interface is implemented
var _ ReconcileService = (*reconcileService)(nil)

// reconcileService resolves pending-upload ledger rows that outlived
// their grace period. A row whose track made it into the catalog is
// simply settled; anything else is an orphan whose bytes get removed.
type reconcileService struct {
	Repo    *repository.Repository
	Storage *StorageService
	Store   objectstore.Store
	Auditor Auditor
	Logger  *logrus.Logger

	schedule string
	grace    time.Duration
	cron     *cron.Cron
	janitor  *housekeeping.StagingJanitor
}

// NewReconcileService creates a new ReconcileService.
func NewReconcileService(repo *repository.Repository, storageSvc *StorageService, store objectstore.Store, auditor Auditor, logger *logrus.Logger, schedule string, grace time.Duration) *reconcileService {
	return &reconcileService{
		Repo:     repo,
		Storage:  storageSvc,
		Store:    store,
		Auditor:  auditor,
		Logger:   logger,
		schedule: schedule,
		grace:    grace,
		janitor:  &housekeeping.StagingJanitor{Dir: storageSvc.StagingDir, Logger: logger},
	}
}

// Start schedules the periodic sweep.
func (s *reconcileService) Start() error {
	c := cron.New()
	if _, err := c.AddFunc(s.schedule, func() {
		if _, err := s.SweepOnce(); err != nil {
			s.Logger.Errorf("ReconcileService: sweep failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid reconcile schedule %q: %w", s.schedule, err)
	}
	c.Start()
	s.cron = c
	s.Logger.Infof("ReconcileService: sweeping on schedule %q (grace %s)", s.schedule, s.grace)
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *reconcileService) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// SweepOnce processes every ledger row older than the grace period.
// Individual failures are counted and retried on the next sweep, they
// never abort the pass.
func (s *reconcileService) SweepOnce() (*models.ReconcileReport, error) {
	cutoff := time.Now().Add(-s.grace)
	pending, err := s.Repo.StalePendingUploads(cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale pending uploads: %w", err)
	}

	report := &models.ReconcileReport{}
	for _, p := range pending {
		report.Scanned++

		recorded, err := s.Repo.TrackExistsByURL(p.URL)
		if err != nil {
			report.Failures++
			s.Logger.Errorf("ReconcileService: failed to check track for ledger row %d: %v", p.ID, err)
			continue
		}

		if recorded {
			// The upload finished; only the ledger row was stranded.
			if err := s.Repo.DeletePendingUpload(p.ID); err != nil {
				report.Failures++
				s.Logger.Errorf("ReconcileService: failed to settle ledger row %d: %v", p.ID, err)
				continue
			}
			report.Completed++
			s.audit("upload.reconciled", p)
			continue
		}

		if err := s.removeOrphanBytes(p); err != nil {
			report.Failures++
			s.Logger.Warnf("ReconcileService: failed to remove orphaned bytes for ledger row %d: %v", p.ID, err)
			continue
		}
		if err := s.Repo.DeletePendingUpload(p.ID); err != nil {
			report.Failures++
			s.Logger.Errorf("ReconcileService: failed to delete ledger row %d after cleanup: %v", p.ID, err)
			continue
		}
		report.Orphans++
		s.audit("upload.purged", p)
	}

	s.sweepStaging(cutoff, report)

	if report.Scanned > 0 || report.StagingPurged > 0 {
		s.Logger.Infof("ReconcileService: sweep done: %d scanned, %d completed, %d orphans, %d staged files purged, %d failures",
			report.Scanned, report.Completed, report.Orphans, report.StagingPurged, report.Failures)
	}
	return report, nil
}

// sweepStaging removes staged files no ledger row references. Such
// files exist when the process died after staging the upload but
// before recording it.
func (s *reconcileService) sweepStaging(cutoff time.Time, report *models.ReconcileReport) {
	remaining, err := s.Repo.StalePendingUploads(time.Now())
	if err != nil {
		report.Failures++
		s.Logger.Errorf("ReconcileService: failed to list ledger rows for the staging sweep: %v", err)
		return
	}

	referenced := make(map[string]bool, len(remaining))
	for _, p := range remaining {
		referenced[p.ObjectKey] = true
	}

	removed, err := s.janitor.Sweep(cutoff, func(name string) bool { return referenced[name] })
	if err != nil {
		report.Failures++
		s.Logger.Errorf("ReconcileService: staging sweep failed: %v", err)
		return
	}
	report.StagingPurged = removed
}

// removeOrphanBytes deletes whatever the failed upload left behind:
// the staged temp file, the published local file, or the remote
// object. Files already gone count as removed.
func (s *reconcileService) removeOrphanBytes(p models.PendingUpload) error {
	if p.StagedPath != "" {
		if err := storage.RemoveFile(p.StagedPath); err != nil {
			return err
		}
	}

	switch p.Location {
	case models.UploadLocationRemote:
		if s.Store == nil {
			return fmt.Errorf("ledger row %d references a remote object but no object storage is configured", p.ID)
		}
		return s.Store.Remove(p.ObjectKey)
	case models.UploadLocationLocal:
		return s.Storage.DeleteUploadByURL(p.URL)
	default:
		return fmt.Errorf("ledger row %d has unknown location %q", p.ID, p.Location)
	}
}

func (s *reconcileService) audit(action string, p models.PendingUpload) {
	s.Auditor.Log(context.Background(), action, "reconciler", fmt.Sprintf("PendingUpload:%d", p.ID), map[string]interface{}{
		"object_key": p.ObjectKey,
		"location":   p.Location,
		"url":        p.URL,
	})
}
