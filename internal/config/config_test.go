// filepath: internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ParseAndValidate(t *testing.T) {
	t.Run("Valid Config", func(t *testing.T) {
		cfg := &Config{
			Storage: StorageConfig{
				MaxUploadSize: "10MB",
			},
			Reconcile: ReconcileConfig{
				GracePeriod: "45m",
			},
		}
		err := cfg.ParseAndValidate()
		assert.NoError(t, err)
		assert.Equal(t, int64(10485760), cfg.MaxUploadSizeBytes)
		assert.Equal(t, "45m0s", cfg.ReconcileGracePeriod.String())
	})

	t.Run("Default Fallback", func(t *testing.T) {
		cfg := &Config{}
		err := cfg.ParseAndValidate()
		assert.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "data/staging", cfg.Storage.StagingDir)
		assert.Equal(t, "data/uploads", cfg.Storage.UploadsDir)
		assert.Equal(t, "64MB", cfg.Storage.MaxUploadSize)
		assert.Equal(t, int64(67108864), cfg.MaxUploadSizeBytes)
		assert.Equal(t, "@every 10m", cfg.Reconcile.Schedule)
		assert.Equal(t, "30m0s", cfg.ReconcileGracePeriod.String())
		assert.Equal(t, "info", cfg.Logging.Level)
	})

	t.Run("Invalid Size", func(t *testing.T) {
		cfg := &Config{
			Storage: StorageConfig{
				MaxUploadSize: "NotASize",
			},
		}
		err := cfg.ParseAndValidate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid max_upload_size")
	})

	t.Run("Invalid Grace Period", func(t *testing.T) {
		cfg := &Config{
			Reconcile: ReconcileConfig{
				GracePeriod: "whenever",
			},
		}
		err := cfg.ParseAndValidate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid grace_period")
	})

	t.Run("Partial Object Storage", func(t *testing.T) {
		cfg := &Config{
			ObjectStorage: ObjectStorageConfig{
				BaseURL: "https://objects.example.com",
			},
		}
		err := cfg.ParseAndValidate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "object_storage")
	})

	t.Run("Full Object Storage", func(t *testing.T) {
		cfg := &Config{
			ObjectStorage: ObjectStorageConfig{
				BaseURL: "https://objects.example.com",
				APIKey:  "key-123",
				Bucket:  "music",
			},
		}
		err := cfg.ParseAndValidate()
		assert.NoError(t, err)
		assert.True(t, cfg.ObjectStorage.Enabled())
	})
}

func TestConfig_ValidateServe(t *testing.T) {
	t.Run("Missing Database Path", func(t *testing.T) {
		cfg := &Config{
			Auth: AuthConfig{AdminSecret: "sesam"},
		}
		err := cfg.ValidateServe()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "database path")
	})

	t.Run("Missing Admin Secret", func(t *testing.T) {
		cfg := &Config{
			Database: DatabaseConfig{Path: "forymusic.db"},
		}
		err := cfg.ValidateServe()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "admin_secret")
	})

	t.Run("Complete", func(t *testing.T) {
		cfg := &Config{
			Database: DatabaseConfig{Path: "forymusic.db"},
			Auth:     AuthConfig{AdminSecret: "sesam"},
		}
		assert.NoError(t, cfg.ValidateServe())
	})
}

func TestObjectStorageEnabled(t *testing.T) {
	assert.False(t, ObjectStorageConfig{}.Enabled())
	assert.False(t, ObjectStorageConfig{BaseURL: "https://objects.example.com", Bucket: "music"}.Enabled())
	assert.True(t, ObjectStorageConfig{BaseURL: "https://objects.example.com", APIKey: "k", Bucket: "music"}.Enabled())
}
