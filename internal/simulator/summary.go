package simulator

import (
	"fmt"
	"io"
)

// PrintSummary writes a human readable summary of a report
func PrintSummary(w io.Writer, report *Report) {
	stats := report.Statistics
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== FINAL RESULTS (seed %d) ===\n", report.Seed)
	fmt.Fprintf(w, "Matches played: %d\n", stats.Matches)
	fmt.Fprintf(w, "Player wins: %d (%.1f%%)\n", stats.PlayerWins, stats.PlayerWinRate()*100)
	fmt.Fprintf(w, "AI wins: %d\n", stats.AIWins)
	fmt.Fprintf(w, "Points: %d-%d, shutouts: %d\n", stats.PlayerPoints, stats.AIPoints, stats.Shutouts)

	fmt.Fprintf(w, "\n=== MATCH LENGTH (frames) ===\n")
	fmt.Fprintf(w, "Mean: %.1f\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.1f\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.1f\n", stats.StdDev())
	fmt.Fprintf(w, "95%% CI: [%.1f, %.1f]\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.0f, P25=%.0f, P75=%.0f, P95=%.0f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Fprintf(w, "\n=== RALLIES ===\n")
	fmt.Fprintf(w, "Paddle hits: %d (%.2f per point)\n", stats.PaddleHits, stats.HitsPerPoint())
	fmt.Fprintf(w, "Longest rally: %d hits\n", stats.LongestRally)
	fmt.Fprintf(w, "Peak speed: %.2f\n", stats.PeakSpeed)
}
