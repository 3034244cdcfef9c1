// filepath: internal/services/reconcile_service_test.go
package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Popap2/forymusic/internal/logging"
	"github.com/Popap2/forymusic/internal/models"
	"github.com/Popap2/forymusic/internal/repository"
)

type recordingAuditor struct {
	actions []string
}

func (a *recordingAuditor) Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{}) {
	a.actions = append(a.actions, action)
}

func seedPendingUpload(t *testing.T, repo *repository.Repository, p models.PendingUpload, age time.Duration) int64 {
	t.Helper()
	p.CreatedAt = time.Now().Add(-age).UTC()
	id, err := repo.CreatePendingUpload(&p)
	assert.NoError(t, err)
	return id
}

func TestSweepSettlesCompletedUploads(t *testing.T) {
	repo, storageSvc, _, cleanup := setupIntegrationTest(t)
	defer cleanup()

	url := "/uploads/01DONE_song.mp3"
	_, err := repo.CreateTrack(&repository.TrackCreateArgs{Title: "Done", URL: url})
	assert.NoError(t, err)

	seedPendingUpload(t, repo, models.PendingUpload{
		ObjectKey: "01DONE_song.mp3",
		Location:  models.UploadLocationLocal,
		URL:       url,
	}, time.Hour)

	auditor := &recordingAuditor{}
	svc := NewReconcileService(repo, storageSvc, nil, auditor, logging.NewLogger("error"), "@every 10m", 30*time.Minute)

	report, err := svc.SweepOnce()

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Scanned)
	assert.Equal(t, 1, report.Completed)
	assert.Zero(t, report.Orphans)
	assert.Zero(t, report.Failures)
	assert.Equal(t, []string{"upload.reconciled"}, auditor.actions)

	pending, err := repo.StalePendingUploads(time.Now().Add(time.Hour))
	assert.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSweepRemovesLocalOrphans(t *testing.T) {
	repo, storageSvc, cfg, cleanup := setupIntegrationTest(t)
	defer cleanup()

	orphanFile := filepath.Join(cfg.Storage.UploadsDir, "01LOST_song.mp3")
	assert.NoError(t, os.WriteFile(orphanFile, []byte("stranded"), 0644))

	seedPendingUpload(t, repo, models.PendingUpload{
		ObjectKey: "01LOST_song.mp3",
		Location:  models.UploadLocationLocal,
		URL:       "/uploads/01LOST_song.mp3",
	}, time.Hour)

	auditor := &recordingAuditor{}
	svc := NewReconcileService(repo, storageSvc, nil, auditor, logging.NewLogger("error"), "@every 10m", 30*time.Minute)

	report, err := svc.SweepOnce()

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Orphans)
	assert.Equal(t, []string{"upload.purged"}, auditor.actions)

	_, statErr := os.Stat(orphanFile)
	assert.True(t, os.IsNotExist(statErr), "orphaned file must be removed")

	pending, err := repo.StalePendingUploads(time.Now().Add(time.Hour))
	assert.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSweepRemovesRemoteOrphansAndStagedLeftovers(t *testing.T) {
	repo, storageSvc, cfg, cleanup := setupIntegrationTest(t)
	defer cleanup()

	stagedLeftover := filepath.Join(cfg.Storage.StagingDir, "01REM_song.mp3")
	assert.NoError(t, os.WriteFile(stagedLeftover, []byte("staged"), 0644))

	store := newFakeStore()
	store.objects["01REM_song.mp3"] = []byte("remote")

	seedPendingUpload(t, repo, models.PendingUpload{
		ObjectKey:  "01REM_song.mp3",
		Location:   models.UploadLocationRemote,
		URL:        store.PublicURL("01REM_song.mp3"),
		StagedPath: stagedLeftover,
	}, time.Hour)

	auditor := &recordingAuditor{}
	svc := NewReconcileService(repo, storageSvc, store, auditor, logging.NewLogger("error"), "@every 10m", 30*time.Minute)

	report, err := svc.SweepOnce()

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Orphans)
	assert.Equal(t, []string{"01REM_song.mp3"}, store.removed)

	_, statErr := os.Stat(stagedLeftover)
	assert.True(t, os.IsNotExist(statErr), "staged leftover must be removed")
}

func TestSweepHonorsGracePeriod(t *testing.T) {
	repo, storageSvc, _, cleanup := setupIntegrationTest(t)
	defer cleanup()

	// Fresh row: the request path may still be working on it.
	seedPendingUpload(t, repo, models.PendingUpload{
		ObjectKey: "01NEW_song.mp3",
		Location:  models.UploadLocationLocal,
		URL:       "/uploads/01NEW_song.mp3",
	}, time.Minute)

	auditor := &recordingAuditor{}
	svc := NewReconcileService(repo, storageSvc, nil, auditor, logging.NewLogger("error"), "@every 10m", 30*time.Minute)

	report, err := svc.SweepOnce()

	assert.NoError(t, err)
	assert.Zero(t, report.Scanned)
	assert.Empty(t, auditor.actions)

	pending, err := repo.StalePendingUploads(time.Now().Add(time.Hour))
	assert.NoError(t, err)
	assert.Len(t, pending, 1, "rows inside the grace period stay put")
}

func TestSweepPurgesUnrecordedStagedFiles(t *testing.T) {
	repo, storageSvc, cfg, cleanup := setupIntegrationTest(t)
	defer cleanup()

	// A crash between staging and recording leaves a file with no
	// ledger row. Only age can tell it apart from an active upload.
	abandoned := filepath.Join(cfg.Storage.StagingDir, "01GONE_song.mp3")
	assert.NoError(t, os.WriteFile(abandoned, []byte("unrecorded"), 0644))
	old := time.Now().Add(-2 * time.Hour)
	assert.NoError(t, os.Chtimes(abandoned, old, old))

	active := filepath.Join(cfg.Storage.StagingDir, "01BUSY_song.mp3")
	assert.NoError(t, os.WriteFile(active, []byte("in flight"), 0644))

	auditor := &recordingAuditor{}
	svc := NewReconcileService(repo, storageSvc, nil, auditor, logging.NewLogger("error"), "@every 10m", 30*time.Minute)

	report, err := svc.SweepOnce()

	assert.NoError(t, err)
	assert.Equal(t, 1, report.StagingPurged)
	assert.Zero(t, report.Failures)

	_, statErr := os.Stat(abandoned)
	assert.True(t, os.IsNotExist(statErr), "abandoned staged file must be removed")
	_, statErr = os.Stat(active)
	assert.NoError(t, statErr, "fresh staged files stay put")
}

func TestStartRejectsBadSchedule(t *testing.T) {
	repo, storageSvc, _, cleanup := setupIntegrationTest(t)
	defer cleanup()

	svc := NewReconcileService(repo, storageSvc, nil, &recordingAuditor{}, logging.NewLogger("error"), "not a schedule", 30*time.Minute)

	assert.Error(t, svc.Start())
}
