// filepath: internal/services/account_service_test.go
package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Popap2/forymusic/internal/config"
	"github.com/Popap2/forymusic/internal/logging"
	"github.com/Popap2/forymusic/internal/models"
	"github.com/Popap2/forymusic/internal/repository"
)

// setupIntegrationTest creates a real Repo and StorageService backed by temp files.
func setupIntegrationTest(t *testing.T) (*repository.Repository, *StorageService, *config.Config, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "forymusic_integration_")
	assert.NoError(t, err)

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Path: filepath.Join(tmpDir, "test.db"),
		},
		Storage: config.StorageConfig{
			StagingDir: filepath.Join(tmpDir, "staging"),
			UploadsDir: filepath.Join(tmpDir, "uploads"),
		},
	}

	logger := logging.NewLogger("error")

	repo, err := repository.New(cfg, logger)
	assert.NoError(t, err)
	if err := repo.EnsureSchema(); err != nil {
		t.Fatalf("Failed to migrate integration DB: %v", err)
	}

	storageSvc := NewStorageService(cfg, logger)
	assert.NoError(t, storageSvc.EnsureLayout())

	cleanup := func() {
		repo.Close()
		os.RemoveAll(tmpDir)
	}

	return repo, storageSvc, cfg, cleanup
}

func TestAccountRegisterAndAuthenticate(t *testing.T) {
	repo, _, _, cleanup := setupIntegrationTest(t)
	defer cleanup()

	svc := NewAccountService(repo, logging.NewLogger("error"))

	account, err := svc.Register("Listener@Example.com ", "correct horse")
	assert.NoError(t, err)
	assert.Equal(t, "listener@example.com", account.Email)
	assert.Empty(t, account.Likes)
	assert.Empty(t, account.Playlists)

	// Login works with any casing of the same address.
	got, err := svc.Authenticate("LISTENER@example.COM", "correct horse")
	assert.NoError(t, err)
	assert.Equal(t, account.ID, got.ID)
}

func TestAccountRegisterValidation(t *testing.T) {
	repo, _, _, cleanup := setupIntegrationTest(t)
	defer cleanup()

	svc := NewAccountService(repo, logging.NewLogger("error"))

	_, err := svc.Register("", "pw")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register("listener@example.com", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register("not-an-address", "pw")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register("@example.com", "pw")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAccountRegisterDuplicate(t *testing.T) {
	repo, _, _, cleanup := setupIntegrationTest(t)
	defer cleanup()

	svc := NewAccountService(repo, logging.NewLogger("error"))

	_, err := svc.Register("listener@example.com", "pw1")
	assert.NoError(t, err)

	_, err = svc.Register("LISTENER@example.com", "pw2")
	assert.ErrorIs(t, err, ErrDuplicateAccount, "normalized duplicate must be rejected")
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	repo, _, _, cleanup := setupIntegrationTest(t)
	defer cleanup()

	svc := NewAccountService(repo, logging.NewLogger("error"))

	_, err := svc.Register("listener@example.com", "right-password")
	assert.NoError(t, err)

	_, err = svc.Authenticate("listener@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// An unknown account answers exactly like a wrong password.
	_, err = svc.Authenticate("nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestReplaceLikesAndPlaylists(t *testing.T) {
	repo, _, _, cleanup := setupIntegrationTest(t)
	defer cleanup()

	svc := NewAccountService(repo, logging.NewLogger("error"))

	account, err := svc.Register("listener@example.com", "pw")
	assert.NoError(t, err)

	updated, err := svc.ReplaceLikes(account.ID, models.Likes{"track:1", "track:9"})
	assert.NoError(t, err)
	assert.Equal(t, models.Likes{"track:1", "track:9"}, updated.Likes)

	// Replacement is wholesale, not a merge.
	updated, err = svc.ReplaceLikes(account.ID, models.Likes{"track:9"})
	assert.NoError(t, err)
	assert.Equal(t, models.Likes{"track:9"}, updated.Likes)

	updated, err = svc.ReplacePlaylists(account.ID, models.Playlists{
		{Name: "Morgenlauf", Tracks: []string{"track:9", "track:4"}},
	})
	assert.NoError(t, err)
	assert.Len(t, updated.Playlists, 1)
	assert.Equal(t, "Morgenlauf", updated.Playlists[0].Name)
	assert.Equal(t, models.Likes{"track:9"}, updated.Likes, "likes survive playlist replacement")

	// Clearing with an empty list is legitimate.
	updated, err = svc.ReplaceLikes(account.ID, models.Likes{})
	assert.NoError(t, err)
	assert.Empty(t, updated.Likes)
}

func TestReplaceLikesUnknownAccount(t *testing.T) {
	repo, _, _, cleanup := setupIntegrationTest(t)
	defer cleanup()

	svc := NewAccountService(repo, logging.NewLogger("error"))

	_, err := svc.ReplaceLikes(9999, models.Likes{"track:1"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.ReplacePlaylists(9999, models.Playlists{{Name: "x"}})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReplacePlaylistsValidatesNames(t *testing.T) {
	repo, _, _, cleanup := setupIntegrationTest(t)
	defer cleanup()

	svc := NewAccountService(repo, logging.NewLogger("error"))

	account, err := svc.Register("listener@example.com", "pw")
	assert.NoError(t, err)

	_, err = svc.ReplacePlaylists(account.ID, models.Playlists{{Name: "  "}})
	assert.ErrorIs(t, err, ErrValidation)
}
