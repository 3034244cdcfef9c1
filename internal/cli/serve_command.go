// Currently the code uses simple if then statements. If more options are added,
// swapping to github.com/spf13/viper could be helpful. For now, I like simplicity.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

type ServeOptions struct {
	Port         int
	AdminSecret  string
	MaxUpload    string
	SeedConfig   string
	AuditEnabled bool
}

func NewServeCommand(globalOptions *GlobalOptions) *cobra.Command {
	serveOptions := &ServeOptions{}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(globalOptions, serveOptions, cmd)
		},
	}

	serveOptions.registerFlags(serveCmd)
	serveOptions.registerEnvVars()

	return serveCmd
}

func (options *ServeOptions) registerFlags(cmd *cobra.Command) {
	// flags for the serve command only
	cmd.Flags().IntVar(&options.Port, "port", 0, "Port for the HTTP server. (Env: FORY_PORT)")
	cmd.Flags().StringVar(&options.AdminSecret, "admin-secret", "", "Shared secret gating track mutations. (Env: FORY_ADMIN_SECRET)")
	cmd.Flags().StringVar(&options.MaxUpload, "max-upload-size", "", "Max size for uploaded audio files (e.g. '64MB'). (Env: FORY_MAX_UPLOAD_SIZE)")
	cmd.Flags().StringVar(&options.SeedConfig, "seed-config", "", "Path to a TOML file with accounts and tracks to create on startup. (Env: FORY_SEED_CONFIG)")
	cmd.Flags().BoolVar(&options.AuditEnabled, "audit-enabled", false, "Enable detailed audit logging. (Env: FORY_AUDIT_ENABLED=true)")
}

// In case a variable was not defined in the cli arguments, we check for env variables
func (options *ServeOptions) registerEnvVars() {
	getEnv := func(key string) string { return os.Getenv(key) }

	if options.SeedConfig == "" {
		options.SeedConfig = getEnv("FORY_SEED_CONFIG")
	}
}

// applyTo layers the serve flags over the loaded configuration.
func (options *ServeOptions) applyTo(globalOptions *GlobalOptions, cmd *cobra.Command) error {
	conf := globalOptions.Conf

	if options.Port != 0 {
		conf.Server.Port = options.Port
	}
	if options.AdminSecret != "" {
		conf.Auth.AdminSecret = options.AdminSecret
	}
	if options.MaxUpload != "" {
		conf.Storage.MaxUploadSize = options.MaxUpload
	}
	if cmd.Flags().Changed("audit-enabled") {
		conf.Logging.AuditEnabled = options.AuditEnabled
	}

	// Re-derive the runtime values the overrides may have touched.
	return conf.ParseAndValidate()
}
