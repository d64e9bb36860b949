package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mkale/spyglass/internal/contracts"
	"github.com/mkale/spyglass/internal/format"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run one scan and print the derived tables",
	Long: `Fetches the constituent list, pulls fundamentals for every ticker,
and prints the ranked tables and the suggested allocation.

Example:
  go run ./cmd/spyglass scan
  go run ./cmd/spyglass scan --years 4 --min-growth 25`,
	RunE: runScan,
}

var (
	scanYears     int
	scanMinGrowth float64
)

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().IntVar(&scanYears, "years", 0, "CAGR and screener lookback in years (default from config)")
	scanCmd.Flags().Float64Var(&scanMinGrowth, "min-growth", 0, "required annual growth in percent (default from config)")
}

func runScan(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	bounds := a.config.Pipeline
	params := contracts.ScanParams{
		Years:     bounds.DefaultYears,
		MinGrowth: bounds.DefaultMinGrowth / 100,
	}
	if scanYears != 0 {
		if scanYears < bounds.MinYears || scanYears > bounds.MaxYears {
			return fmt.Errorf("--years must be between %d and %d", bounds.MinYears, bounds.MaxYears)
		}
		params.Years = scanYears
	}
	if scanMinGrowth != 0 {
		if scanMinGrowth < bounds.MinGrowthFloor || scanMinGrowth > bounds.MinGrowthCeil {
			return fmt.Errorf("--min-growth must be between %.0f and %.0f percent", bounds.MinGrowthFloor, bounds.MinGrowthCeil)
		}
		params.MinGrowth = scanMinGrowth / 100
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	progress := func(done, total int, ticker string) {
		fmt.Fprintf(os.Stderr, "\r[%d/%d] %-8s", done, total, ticker)
		if done == total {
			fmt.Fprintln(os.Stderr)
		}
	}

	dashboard, err := a.pipeline.Run(ctx, params, progress)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	printDashboard(dashboard)
	return nil
}

func printDashboard(d *contracts.Dashboard) {
	fmt.Printf("Scan of %d tickers (%d admitted, %d failed), lookback %d years, required growth %s\n",
		d.Stats.Tickers, d.Stats.Admitted, d.Stats.Failed,
		d.Params.Years, format.Percent(d.Params.MinGrowth))
	fmt.Printf("Total market cap: %s\n\n", format.MarketCap(d.TotalMarketCap))

	fmt.Println("Top 10 by market cap")
	fmt.Printf("%-4s %-8s %-28s %12s %8s\n", "#", "Ticker", "Name", "Market Cap", "Weight")
	for _, e := range d.MarketCapTop {
		fmt.Printf("%-4d %-8s %-28s %12s %8s\n",
			e.Rank, e.Ticker, truncate(e.Name, 28), format.MarketCap(e.MarketCap), format.Percent(e.IndexWeight))
	}
	fmt.Println()

	fmt.Println("Top 10 by quarterly revenue growth")
	fmt.Printf("%-4s %-8s %-28s %10s\n", "#", "Ticker", "Name", "Growth")
	for _, e := range d.RevenueGrowthTop {
		fmt.Printf("%-4d %-8s %-28s %10s\n",
			e.Rank, e.Ticker, truncate(e.Name, 28), format.Percent(e.QuarterlyGrowth))
	}
	fmt.Println()

	fmt.Printf("Consistent growers (>= %s every year)\n", format.Percent(d.Params.MinGrowth))
	fmt.Printf("%-4s %-8s %-28s %10s %8s\n", "#", "Ticker", "Name", "CAGR", "P/E")
	for _, e := range d.ConsistentGrowth {
		fmt.Printf("%-4d %-8s %-28s %10s %8s\n",
			e.Rank, e.Ticker, truncate(e.Name, 28), format.Percent(e.CAGR), format.PE(e.TrailingPE))
	}
	fmt.Println()

	fmt.Printf("Growth at a reasonable price (%d matches)\n", d.GARPMatches)
	fmt.Printf("%-4s %-8s %-28s %10s %8s %8s\n", "#", "Ticker", "Name", "CAGR", "P/E", "Ratio")
	for _, e := range d.GARPTop {
		fmt.Printf("%-4d %-8s %-28s %10s %8s %8s\n",
			e.Rank, e.Ticker, truncate(e.Name, 28), format.Percent(e.CAGR), format.PE(e.TrailingPE), format.GARP(e.GARPRatio))
	}
	fmt.Println()

	fmt.Printf("Suggested allocation (%.1f%% total)\n", d.Portfolio.TotalPercent)
	fmt.Printf("%-8s %-28s %8s  %s\n", "Ticker", "Name", "Alloc", "Reason")
	for _, h := range d.Portfolio.Holdings {
		fmt.Printf("%-8s %-28s %7.1f%%  %s\n",
			h.Ticker, truncate(h.Name, 28), h.AllocationPercent, h.Reason)
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
