package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/wonny/twdiff/pkg/config"
	"github.com/wonny/twdiff/pkg/logger"
)

var (
	// Global flags
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "twdiff",
	Short: "Taiwan stock monthly open/close difference report",
	Long: `twdiff - 台股每月開盤收盤差值

For a bare Taiwan stock code, fetches the full daily history (.TW first, then .TWO),
computes last close - first open for every calendar month and shows a Year × Month
table with a Total row.

Usage:
  go run ./cmd/twdiff [command]

Examples:
  go run ./cmd/twdiff serve
  go run ./cmd/twdiff serve --port 9000
  go run ./cmd/twdiff report 2399
  go run ./cmd/twdiff report 6488 --no-color`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file (env and .env override it)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// loadConfig reads config and applies global flags
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// newLogger builds the command logger writing to w
func newLogger(cfg *config.Config, w io.Writer) *logger.Logger {
	return logger.NewWithWriter(cfg, w)
}
