// filepath: internal/cli/initconfig.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Popap2/forymusic/internal/shared"
)

// configTemplate is the commented starter configuration written by the
// init-config command. Secrets stay empty on purpose.
const configTemplate = `# ForyMusic configuration

[server]
host = "0.0.0.0"
port = 8080

[database]
# SQLite database file. Created and migrated automatically on first start.
path = "forymusic.db"

[storage]
# Uploads are staged here before they reach their final location.
staging_dir = "data/staging"
# Locally stored audio, served under /uploads/.
uploads_dir = "data/uploads"
max_upload_size = "64MB"

[object_storage]
# Optional. Set all three values to offload audio to a remote bucket,
# leave all empty to keep files on local disk.
base_url = ""
api_key = ""
bucket = ""

[auth]
# Required for serve. Presented via the X-Admin-Token header or a
# 'token' body field on mutating track endpoints.
admin_secret = ""

[logging]
level = "info"
audit_enabled = false

[reconcile]
# How often the pending-upload sweep runs, and how old a ledger row must
# be before the sweep touches it.
schedule = "@every 10m"
grace_period = "30m"
`

type InitConfigOptions struct {
	Output string
	Force  bool
}

func NewInitConfigCommand(globalOptions *GlobalOptions) *cobra.Command {
	initConfigOptions := &InitConfigOptions{}

	initConfigCmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write a commented starter configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInitConfig(globalOptions, initConfigOptions)
		},
	}

	initConfigCmd.Flags().StringVar(&initConfigOptions.Output, "output", "config.toml", "Where to write the starter configuration.")
	initConfigCmd.Flags().BoolVar(&initConfigOptions.Force, "force", false, "Overwrite the output file if it already exists.")

	return initConfigCmd
}

func runInitConfig(globalOptions *GlobalOptions, options *InitConfigOptions) error {
	if !options.Force {
		if _, err := os.Stat(options.Output); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", options.Output)
		}
	}

	f, err := os.Create(options.Output)
	if err != nil {
		return fmt.Errorf("writing starter config: %w", shared.ErrorCreateFile)
	}
	defer f.Close()

	if _, err := f.WriteString(configTemplate); err != nil {
		return fmt.Errorf("writing starter config: %w", shared.ErrorEncodeFile)
	}

	globalOptions.Logger.Infof("Starter configuration written to %s", options.Output)
	return nil
}
