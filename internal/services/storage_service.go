// filepath: internal/services/storage_service.go
package services

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Popap2/forymusic/internal/config"
	"github.com/Popap2/forymusic/internal/storage"
)

// LocalURLPrefix is the path under which locally stored uploads are
// served. Track URLs starting with it reference files in UploadsDir.
const LocalURLPrefix = "/uploads/"

// StorageService provides an interface for interacting with the file system.
// It wraps the 'internal/storage' package to be injectable.
type StorageService struct {
	StagingDir string
	UploadsDir string
	Logger     *logrus.Logger
}

// NewStorageService creates a new StorageService.
func NewStorageService(cfg *config.Config, logger *logrus.Logger) *StorageService {
	return &StorageService{
		StagingDir: cfg.Storage.StagingDir,
		UploadsDir: cfg.Storage.UploadsDir,
		Logger:     logger,
	}
}

// EnsureLayout creates the staging and uploads directories.
func (s *StorageService) EnsureLayout() error {
	return storage.EnsureDirs(s.StagingDir, s.UploadsDir)
}

// StagedPath resolves a file name inside the staging directory.
func (s *StorageService) StagedPath(name string) (string, error) {
	return storage.SafeJoin(s.StagingDir, name)
}

// UploadPath resolves a file name inside the public uploads directory.
func (s *StorageService) UploadPath(name string) (string, error) {
	return storage.SafeJoin(s.UploadsDir, name)
}

// PublicURL returns the URL path a locally stored upload is served
// under.
func (s *StorageService) PublicURL(name string) string {
	return LocalURLPrefix + name
}

// SaveStagedFile streams upload data into the staging directory and
// returns the absolute path of the staged file.
func (s *StorageService) SaveStagedFile(fileData io.Reader, name string) (string, int64, error) {
	path, err := s.StagedPath(name)
	if err != nil {
		return "", 0, err
	}
	size, err := storage.SaveFile(fileData, path)
	if err != nil {
		return "", 0, err
	}
	return path, size, nil
}

// Promote moves a staged file into the public uploads directory. Both
// directories live on the same filesystem so this is a rename, not a
// copy.
func (s *StorageService) Promote(name string) (string, error) {
	src, err := s.StagedPath(name)
	if err != nil {
		return "", err
	}
	dst, err := s.UploadPath(name)
	if err != nil {
		return "", err
	}
	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("failed to move staged file into uploads: %w", err)
	}
	return s.PublicURL(name), nil
}

// DeleteStagedFile removes a staged file, tolerating one that is
// already gone.
func (s *StorageService) DeleteStagedFile(name string) error {
	path, err := s.StagedPath(name)
	if err != nil {
		return err
	}
	return storage.RemoveFile(path)
}

// DeleteUploadByURL removes the local file backing a track URL. URLs
// outside the local uploads prefix are not ours to delete.
func (s *StorageService) DeleteUploadByURL(url string) error {
	if !strings.HasPrefix(url, LocalURLPrefix) {
		return nil
	}
	path, err := s.UploadPath(strings.TrimPrefix(url, LocalURLPrefix))
	if err != nil {
		s.Logger.Warnf("StorageService: blocked suspicious upload path in URL %q: %v", url, err)
		return err
	}
	return storage.RemoveFile(path)
}
