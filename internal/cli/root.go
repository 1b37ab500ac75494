package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clif-consortium/clifdict/internal/logging"
	"github.com/clif-consortium/clifdict/pkg/clifdict"
)

var rootCmd = &cobra.Command{
	Use:   "clifdict",
	Short: "CLIF data dictionary toolchain",
	Long: `clifdict turns a CLIF schema definition (DDL plus mCIDE vocabulary
files) into a versioned data dictionary document, and computes structural
changelogs between dictionary versions.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Precondition violation or invalid configuration
  11 - Input path missing or unreadable`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for clifdict")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

// newLogger builds the console logger for a command, writing to stderr so
// document output on stdout stays machine-parseable.
func newLogger(cmd *cobra.Command) clifdict.Logger {
	return logging.NewConsoleLoggerTo(os.Stderr, getVerboseFlag(cmd))
}

// reportWarnings logs every build warning. Warnings never change the exit
// code; they exist so a degraded build is visible, not silent.
func reportWarnings(logger clifdict.Logger, warnings []clifdict.Warning) {
	for _, w := range warnings {
		logger.Info("warning: %s", w)
	}
}
