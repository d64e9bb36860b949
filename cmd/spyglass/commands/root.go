package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "spyglass",
	Short: "S&P 500 fundamentals scanner",
	Long: `Spyglass scans the S&P 500 universe, derives ranked fundamental
tables, and suggests a fixed-weight allocation.

Usage:
  go run ./cmd/spyglass [command]

Examples:
  go run ./cmd/spyglass api
  go run ./cmd/spyglass scan --years 3 --min-growth 20
  go run ./cmd/spyglass cache clear`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
