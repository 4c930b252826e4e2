// Package cmd provides the CLI commands for Loupe.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/loupe-search/loupe/internal/logging"
	"github.com/loupe-search/loupe/pkg/version"
)

var (
	debugMode      bool
	noColor        bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the loupe CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loupe",
		Short: "Adaptive local file-content search",
		Long: `Loupe searches file contents with the technique that fits the
query: keyword, fuzzy, regex, tf-idf, or neural-embedding similarity.

In auto mode the query is analyzed and the best strategy is picked
for you; an explicit --mode forces one technique.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("loupe version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.loupe/logs/")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRun = stopLogging

	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func startLogging(_ *cobra.Command, _ []string) error {
	cfg := logging.DefaultConfig()
	if debugMode {
		cfg = logging.DebugConfig()
	}

	cleanup, err := logging.SetupDefault(cfg)
	if err != nil {
		// Logging must never block the search itself.
		return nil
	}
	loggingCleanup = cleanup
	return nil
}

func stopLogging(_ *cobra.Command, _ []string) {
	if loggingCleanup != nil {
		loggingCleanup()
	}
}

// Execute runs the root command and reports errors on stderr.
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil {
		renderError(os.Stderr, stderrStyles(), err)
	}
	return err
}
