package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Cache maintenance",
}

// cacheClearCmd represents the clear subcommand
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached entry",
	Long: `Invalidates the constituent list and all fetched fundamentals.
The next scan refetches everything from source.

Example:
  go run ./cmd/spyglass cache clear`,
	RunE: runCacheClear,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.cache.InvalidateAll(cmd.Context()); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	fmt.Println("Cache cleared")
	return nil
}
