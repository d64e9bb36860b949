// Package format renders derived metrics as display strings.
package format

import (
	"fmt"
	"math"
)

// Percent renders a fractional rate as a percentage with two decimals,
// e.g. 0.1696 -> "16.96%".
func Percent(rate float64) string {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", rate*100)
}

// PE renders a trailing P/E ratio; non-positive or undefined ratios are
// shown as absent rather than as numbers.
func PE(ratio float64) string {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", ratio)
}

// GARP renders a growth/value ratio with three decimals. A zero ratio is
// a real rank-last value in the tables, but displays as absent.
func GARP(ratio float64) string {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return "N/A"
	}
	return fmt.Sprintf("%.3f", ratio)
}

// MarketCap renders a dollar market cap with a scale suffix.
func MarketCap(cap float64) string {
	switch {
	case cap >= 1e12:
		return fmt.Sprintf("$%.2fT", cap/1e12)
	case cap >= 1e9:
		return fmt.Sprintf("$%.2fB", cap/1e9)
	case cap >= 1e6:
		return fmt.Sprintf("$%.2fM", cap/1e6)
	default:
		return fmt.Sprintf("$%.0f", cap)
	}
}
