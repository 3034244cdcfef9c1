// filepath: internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Popap2/forymusic/internal/shared"
)

// Config holds the application's configuration.
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Storage       StorageConfig       `toml:"storage"`
	ObjectStorage ObjectStorageConfig `toml:"object_storage"`
	Auth          AuthConfig          `toml:"auth"`
	Logging       LoggingConfig       `toml:"logging"`
	Reconcile     ReconcileConfig     `toml:"reconcile"`

	MaxUploadSizeBytes   int64         `toml:"-"` // Runtime computed value
	ReconcileGracePeriod time.Duration `toml:"-"` // Runtime computed value
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// DatabaseConfig holds the relational store configuration.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// StorageConfig holds the local file layout for staged and served uploads.
type StorageConfig struct {
	StagingDir    string `toml:"staging_dir"`
	UploadsDir    string `toml:"uploads_dir"`
	MaxUploadSize string `toml:"max_upload_size"` // e.g. "64MB", "512KB"
}

// ObjectStorageConfig holds the optional remote object-storage backend.
// Leaving all three fields empty selects local-file serving.
type ObjectStorageConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Bucket  string `toml:"bucket"`
}

// Enabled reports whether the remote backend is fully configured.
func (o ObjectStorageConfig) Enabled() bool {
	return o.BaseURL != "" && o.APIKey != "" && o.Bucket != ""
}

// partial reports a half-configured remote backend, which is always a
// deployment mistake rather than a mode.
func (o ObjectStorageConfig) partial() bool {
	any := o.BaseURL != "" || o.APIKey != "" || o.Bucket != ""
	return any && !o.Enabled()
}

// AuthConfig holds the shared admin secret gating mutations.
type AuthConfig struct {
	AdminSecret string `toml:"admin_secret"`
}

// LoggingConfig holds the logging configuration.
type LoggingConfig struct {
	Level        string `toml:"level"`
	AuditEnabled bool   `toml:"audit_enabled"`
}

// ReconcileConfig holds the pending-upload sweep settings.
type ReconcileConfig struct {
	Schedule    string `toml:"schedule"`     // cron spec, e.g. "@every 10m"
	GracePeriod string `toml:"grace_period"` // e.g. "30m"
}

// LoadConfig loads the configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// ParseAndValidate fills defaults and processes configuration strings
// into runtime values.
func (c *Config) ParseAndValidate() error {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Storage.StagingDir == "" {
		c.Storage.StagingDir = "data/staging"
	}
	if c.Storage.UploadsDir == "" {
		c.Storage.UploadsDir = "data/uploads"
	}
	if c.Storage.MaxUploadSize == "" {
		c.Storage.MaxUploadSize = "64MB"
	}
	if c.Reconcile.Schedule == "" {
		c.Reconcile.Schedule = "@every 10m"
	}
	if c.Reconcile.GracePeriod == "" {
		c.Reconcile.GracePeriod = "30m"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	sizeBytes, err := shared.ParseSize(c.Storage.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	c.MaxUploadSizeBytes = sizeBytes

	grace, err := time.ParseDuration(c.Reconcile.GracePeriod)
	if err != nil {
		return fmt.Errorf("invalid grace_period: %w", err)
	}
	c.ReconcileGracePeriod = grace

	if c.ObjectStorage.partial() {
		return fmt.Errorf("object_storage needs base_url, api_key and bucket together, or none of them")
	}

	return nil
}

// ValidateServe checks the requirements that only the serve command has.
func (c *Config) ValidateServe() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	if c.Auth.AdminSecret == "" {
		return fmt.Errorf("admin_secret is required to gate mutating endpoints")
	}
	return nil
}
