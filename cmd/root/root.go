// Package root contains the root command for the application
package root

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mduarte/cca-audit/internal/config"
	"mduarte/cca-audit/internal/logging"
	"mduarte/cca-audit/internal/report"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Identity string
	DataDir  string
	Output   string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the resolved application configuration
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "cca-audit",
		Short: "A CLI tool to reconcile exchange-control declarations against XML records and bank movements.",
		Long: `cca-audit keeps one working session per auditor identity: ingested XML
record files, extracted declarations, bank movements and the links between
them. Every command loads the session, applies its changes and saves it back.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to cca-audit!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.WithError(err).Warn("Falling back to default configuration")
				cfg = config.Default()
			}
			Cfg = cfg

			if SharedFlags.DataDir != "" {
				Cfg.Data.Directory = SharedFlags.DataDir
			}

			// Hand the configured logger to the export layer.
			report.SetLogger(logging.NewLogrusAdapterFromLogger(Log))

			if delim := os.Getenv("CSV_DELIMITER"); delim != "" {
				Log.WithField("delimiter", delim).Debug("Setting CSV delimiter from environment")
				report.SetDelimiter([]rune(delim)[0])
			}
		},
	}

	// SharedFlags holds the common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// Specific search command flags
	Term string
	Page int

	// Specific resolve command flags
	Number string
	Amount string

	// Specific extract command flags
	Category string
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Identity, "user", "u", "", "Auditor identity the session is keyed by")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.DataDir, "data-dir", "d", "", "Directory holding the session database")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
}
