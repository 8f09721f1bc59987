package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"mduarte/cca-audit/cmd/analyze"
	"mduarte/cca-audit/cmd/comment"
	"mduarte/cca-audit/cmd/extract"
	"mduarte/cca-audit/cmd/ingest"
	"mduarte/cca-audit/cmd/report"
	"mduarte/cca-audit/cmd/resolve"
	"mduarte/cca-audit/cmd/root"
	"mduarte/cca-audit/cmd/search"
	"mduarte/cca-audit/cmd/sessioncmd"
	"mduarte/cca-audit/cmd/template"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	loadEnvSilently()

	// 2. Configure global log level directly - this affects ALL new loggers
	configureLogLevelDirectly()

	// 3. Now that logging is properly configured, initialize root command
	root.Init()

	// 4. Add all subcommands
	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(search.Cmd)
	root.Cmd.AddCommand(comment.Cmd)
	root.Cmd.AddCommand(resolve.Cmd)
	root.Cmd.AddCommand(extract.Cmd)
	root.Cmd.AddCommand(template.Cmd)
	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(sessioncmd.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// configureLogLevelDirectly sets the global log level for all logrus
// instances before any logging happens
func configureLogLevelDirectly() {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}

	logrus.SetLevel(logLevel)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
