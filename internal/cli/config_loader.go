// filepath: internal/cli/config_loader.go
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Popap2/forymusic/internal/config"
	"github.com/Popap2/forymusic/internal/logging"
)

// initializeConfig loads the configuration file, applies environment and
// global-flag overrides and builds the logger from the result.
func initializeConfig(options *GlobalOptions) error {
	// The config path itself can come from the environment.
	if envPath := os.Getenv("FORY_CONFIG_PATH"); envPath != "" && options.CfgFilePath == "config.toml" {
		options.CfgFilePath = envPath
	}

	conf, err := config.LoadConfig(options.CfgFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			// Rely on defaults, env vars and flags.
			conf = &config.Config{}
		} else {
			return fmt.Errorf("failed to load configuration from %s: %w", options.CfgFilePath, err)
		}
	}

	applyOverrides(conf, options)

	if err := conf.ParseAndValidate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	options.Conf = conf
	options.Logger = logging.NewLogger(conf.Logging.Level)

	return nil
}

// applyOverrides layers environment variables over file values, then the
// global flags over both. Serve-only flags are applied by the serve command.
func applyOverrides(c *config.Config, options *GlobalOptions) {
	getEnv := func(key string) string { return os.Getenv(key) }

	// --- Environment Variables ---
	if v := getEnv("FORY_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := getEnv("FORY_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := getEnv("FORY_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := getEnv("FORY_AUDIT_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.AuditEnabled = b
		}
	}
	if v := getEnv("FORY_DATABASE_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := getEnv("FORY_STAGING_DIR"); v != "" {
		c.Storage.StagingDir = v
	}
	if v := getEnv("FORY_UPLOADS_DIR"); v != "" {
		c.Storage.UploadsDir = v
	}
	if v := getEnv("FORY_MAX_UPLOAD_SIZE"); v != "" {
		c.Storage.MaxUploadSize = v
	}
	if v := getEnv("FORY_ADMIN_SECRET"); v != "" {
		c.Auth.AdminSecret = v
	}
	if v := getEnv("FORY_OBJECT_STORAGE_URL"); v != "" {
		c.ObjectStorage.BaseURL = v
	}
	if v := getEnv("FORY_OBJECT_STORAGE_KEY"); v != "" {
		c.ObjectStorage.APIKey = v
	}
	if v := getEnv("FORY_OBJECT_STORAGE_BUCKET"); v != "" {
		c.ObjectStorage.Bucket = v
	}
	if v := getEnv("FORY_RECONCILE_SCHEDULE"); v != "" {
		c.Reconcile.Schedule = v
	}
	if v := getEnv("FORY_RECONCILE_GRACE"); v != "" {
		c.Reconcile.GracePeriod = v
	}

	// --- CLI Flags (take precedence) ---
	if options.LogLevel != "" {
		c.Logging.Level = options.LogLevel
	}
}
