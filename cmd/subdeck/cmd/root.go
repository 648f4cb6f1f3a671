// Package cmd provides the CLI commands for SubDeck.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nzemmouri/subdeck/internal/logging"
	"github.com/nzemmouri/subdeck/pkg/version"
)

// Debug logging flag
var (
	debugMode      bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the subdeck CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subdeck",
		Short: "Search across platforms, products, sales, and credit movements",
		Long: `SubDeck indexes the business-management dataset (supplier platforms,
digital products, sales, credit ledger movements) and serves ranked
full-text search, typeahead suggestions, and facet counts over it.

The index lives in memory and is rebuilt from the record source on a
fixed interval; 'subdeck watch' keeps it fresh continuously.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.SetVersionTemplate("subdeck version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.subdeck/logs/")
	cmd.PersistentPreRun = startLogging
	cmd.PersistentPostRun = stopLogging

	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newSuggestCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newRefreshCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newSeedCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging configures file-based logging for every command. Stdout
// stays reserved for command output; logs go to the log file, plus
// stderr in debug mode.
func startLogging(cmd *cobra.Command, args []string) {
	cfg := logging.DefaultConfig()
	cfg.WriteToStderr = debugMode
	if debugMode {
		cfg.Level = "debug"
	}

	logger, cleanup, err := logging.Setup(cfg)
	if err != nil {
		// Fall back to stderr-only logging rather than failing the command.
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
		cleanup = func() {}
	}
	slog.SetDefault(logger)
	loggingCleanup = cleanup
}

func stopLogging(cmd *cobra.Command, args []string) {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
}
