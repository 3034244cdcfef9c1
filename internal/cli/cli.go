package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Popap2/forymusic/internal/config"
)

// Version of the build, overridable via -ldflags.
var Version = "1.1.0"

// GlobalOptions carries the state shared by every subcommand. Conf and
// Logger are populated by the root PersistentPreRunE before any RunE fires.
type GlobalOptions struct {
	CfgFilePath string
	LogLevel    string

	Logger *logrus.Logger
	Conf   *config.Config
}

func NewRootCMD() *cobra.Command {

	globalOptions := &GlobalOptions{}

	rootCMD := &cobra.Command{
		Use:   "forymusic",
		Short: "ForyMusic API",
		Long:  "A music catalog server with listener accounts, direct audio uploads and optional object storage offloading.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeConfig(globalOptions)
		},
	}

	// register global flags
	globalOptions.registerFlags(rootCMD)

	// add subcommands
	rootCMD.AddCommand(NewServeCommand(globalOptions))
	rootCMD.AddCommand(NewMigrateCommand(globalOptions))
	rootCMD.AddCommand(NewReconcileCommand(globalOptions))
	rootCMD.AddCommand(NewInitConfigCommand(globalOptions))

	return rootCMD
}

func (options *GlobalOptions) registerFlags(cmd *cobra.Command) {
	// flags that can be used for each command
	cmd.PersistentFlags().StringVar(&options.CfgFilePath, "config_path", "config.toml", "Path to the base configuration file. (Env: FORY_CONFIG_PATH)")
	cmd.PersistentFlags().StringVar(&options.LogLevel, "log-level", "", "Logging level (debug, info, warn, error). (Env: FORY_LOG_LEVEL)")
}

func Execute() {

	rootCmd := NewRootCMD()

	// Run the command based on os.Args
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
