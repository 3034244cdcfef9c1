// filepath: internal/cli/migrate.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Popap2/forymusic/internal/repository"
)

func NewMigrateCommand(globalOptions *GlobalOptions) *cobra.Command {

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database schema versions. Use subcommands 'up', 'down', or 'status'.`,
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Migrate the database to the most recent version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration("up", globalOptions)
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the database by one version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration("down", globalOptions)
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Dump the migration status for the current DB",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration("status", globalOptions)
		},
	}

	migrateCmd.AddCommand(upCmd)
	migrateCmd.AddCommand(downCmd)
	migrateCmd.AddCommand(statusCmd)

	return migrateCmd
}

// runMigration opens the repository after the root command has loaded the
// configuration, then dispatches to the matching schema operation.
func runMigration(command string, globalOptions *GlobalOptions) error {
	if globalOptions.Conf.Database.Path == "" {
		return fmt.Errorf("database path is required (config file or FORY_DATABASE_PATH)")
	}

	repo, err := repository.New(globalOptions.Conf, globalOptions.Logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer repo.Close()

	globalOptions.Logger.Infof("Running migration command: %s", command)

	var migrateErr error
	switch command {
	case "up":
		migrateErr = repo.MigrateUp()
	case "down":
		migrateErr = repo.MigrateDown()
	case "status":
		migrateErr = repo.MigrationStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}

	if migrateErr != nil {
		return fmt.Errorf("migration failed: %w", migrateErr)
	}

	globalOptions.Logger.Info("Migration operation completed successfully.")
	return nil
}
