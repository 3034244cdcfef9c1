// filepath: internal/services/upload_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Popap2/forymusic/internal/media"
	"github.com/Popap2/forymusic/internal/models"
	"github.com/Popap2/forymusic/internal/objectstore"
	"github.com/Popap2/forymusic/internal/repository"
	"github.com/Popap2/forymusic/internal/shared"
	"github.com/Popap2/forymusic/internal/storage"
)

// Compile-time check to ensure interface is implemented
var _ UploadService = (*uploadService)(nil)

// uploadService moves uploaded audio through staging into its final
// home and records the catalog row. Every step either completes or
// leaves a pending-upload ledger row the reconciliation sweep can act
// on.
type uploadService struct {
	Repo    *repository.Repository
	Storage *StorageService
	Store   objectstore.Store
	Logger  *logrus.Logger
}

// NewUploadService creates a new UploadService. A nil store selects
// local mode: published files land in the uploads directory instead of
// a remote bucket.
func NewUploadService(repo *repository.Repository, storageSvc *StorageService, store objectstore.Store, logger *logrus.Logger) *uploadService {
	return &uploadService{
		Repo:    repo,
		Storage: storageSvc,
		Store:   store,
		Logger:  logger,
	}
}

// Upload runs the full pipeline for one file: validate, stage to disk,
// offload or publish, then record the track row while settling the
// ledger in the same transaction.
func (s *uploadService) Upload(file multipart.File, header *multipart.FileHeader, meta UploadMeta) (*models.Track, error) {
	meta.Title = strings.TrimSpace(meta.Title)
	meta.Artist = strings.TrimSpace(meta.Artist)
	if meta.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if file == nil || header == nil || header.Filename == "" {
		return nil, fmt.Errorf("%w: an audio file is required", ErrValidation)
	}

	// Unknown extensions normalize to .mp3 so the served content type
	// stays predictable.
	filename := header.Filename
	if !media.IsAudioFileName(filename) {
		filename = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)) + ".mp3"
	}
	stagedName := storage.StagedName(filename)

	stagedPath, size, err := s.Storage.SaveStagedFile(file, stagedName)
	if err != nil {
		if errors.Is(err, shared.ErrEmptyPayload) {
			return nil, fmt.Errorf("%w: uploaded file is empty", ErrValidation)
		}
		s.Logger.Errorf("UploadService: staging failed for '%s': %v", header.Filename, err)
		return nil, fmt.Errorf("%w: could not stage upload", ErrStorage)
	}
	s.Logger.Debugf("UploadService: staged '%s' as %s (%d bytes)", header.Filename, stagedName, size)

	cleanupStaged := func() {
		if err := s.Storage.DeleteStagedFile(stagedName); err != nil {
			s.Logger.Warnf("UploadService: failed to clean up staged file %s: %v", stagedName, err)
		}
	}

	// A missing artist falls back to the file's own tag. Probe failures
	// only cost us the fallback, never the upload.
	if meta.Artist == "" {
		tags, tagErr := media.ReadTags(stagedPath)
		if tagErr != nil {
			s.Logger.Debugf("UploadService: tag probe failed for %s: %v", stagedName, tagErr)
		} else if tags.Artist != "" {
			meta.Artist = tags.Artist
		}
	}

	// Bytes are durable from here on, so open a ledger row before any
	// step that could strand them.
	pending := &models.PendingUpload{
		ObjectKey:  stagedName,
		StagedPath: stagedPath,
	}
	if s.Store != nil {
		pending.Location = models.UploadLocationRemote
		pending.URL = s.Store.PublicURL(stagedName)
	} else {
		pending.Location = models.UploadLocationLocal
		pending.URL = s.Storage.PublicURL(stagedName)
	}
	if _, err := s.Repo.CreatePendingUpload(pending); err != nil {
		cleanupStaged()
		s.Logger.Errorf("UploadService: failed to open ledger row for %s: %v", stagedName, err)
		return nil, fmt.Errorf("%w: could not record pending upload", ErrStorage)
	}

	cleanupLedger := func() {
		if err := s.Repo.DeletePendingUpload(pending.ID); err != nil {
			s.Logger.Warnf("UploadService: failed to remove ledger row %d: %v", pending.ID, err)
		}
	}

	var trackURL string
	if s.Store != nil {
		trackURL, err = s.offload(stagedPath, stagedName, size)
		if err != nil {
			cleanupStaged()
			cleanupLedger()
			s.Logger.Errorf("UploadService: offload failed for %s: %v", stagedName, err)
			return nil, fmt.Errorf("%w: object upload failed", ErrStorage)
		}
		// The remote copy is authoritative now.
		cleanupStaged()
	} else {
		trackURL, err = s.Storage.Promote(stagedName)
		if err != nil {
			cleanupStaged()
			cleanupLedger()
			s.Logger.Errorf("UploadService: failed to publish %s: %v", stagedName, err)
			return nil, fmt.Errorf("%w: could not publish upload", ErrStorage)
		}
	}

	track, err := s.record(meta, trackURL, pending.ID)
	if err != nil {
		// The bytes made it but the catalog row did not. The ledger row
		// stays behind so the sweep can reconcile the stranded object.
		s.Logger.Errorf("UploadService: failed to record track for %s: %v", stagedName, err)
		return nil, fmt.Errorf("%w: could not record uploaded track", ErrStorage)
	}

	s.Logger.Infof("UploadService: upload complete: track %d (%s)", track.ID, track.URL)
	return track, nil
}

// offload streams the staged file to the remote object store.
func (s *uploadService) offload(stagedPath, stagedName string, size int64) (string, error) {
	f, err := os.Open(stagedPath)
	if err != nil {
		return "", fmt.Errorf("failed to open staged file: %w", err)
	}
	defer f.Close()
	return s.Store.Upload(stagedName, f, size, media.ContentTypeForName(stagedName))
}

// record inserts the track row and settles the ledger row in a single
// transaction so the catalog and the ledger never disagree about a
// finished upload.
func (s *uploadService) record(meta UploadMeta, trackURL string, pendingID int64) (*models.Track, error) {
	tx, err := s.Repo.BeginTx()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	track, err := tx.CreateTrackInTx(&repository.TrackCreateArgs{
		Title:      meta.Title,
		Artist:     meta.Artist,
		URL:        trackURL,
		OwnerEmail: meta.OwnerEmail,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create track record in transaction: %w", err)
	}

	if err := tx.DeletePendingUploadInTx(pendingID); err != nil {
		return nil, fmt.Errorf("failed to settle pending upload in transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return track, nil
}
