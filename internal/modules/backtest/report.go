package backtest

import (
	"fmt"
	"sort"
	"strings"
)

// FormatReport renders a run as the plain-text report served by the
// API and printed by the comparison tooling. Metric keys print in
// sorted order so the same run always renders the same text.
func FormatReport(result Result) string {
	var b strings.Builder
	bar := strings.Repeat("=", 80)
	rule := strings.Repeat("-", 40)

	fmt.Fprintln(&b, bar)
	fmt.Fprintln(&b, "GAFFER BACKTEST REPORT")
	fmt.Fprintln(&b, bar)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "SUMMARY")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Period: GW%d - GW%d\n", result.StartGameweek, result.EndGameweek)
	fmt.Fprintf(&b, "Strategy: %s\n", result.Strategy.Strategy)
	fmt.Fprintf(&b, "Total Points: %.1f\n", result.TotalPoints)
	fmt.Fprintf(&b, "Average Points per Gameweek: %.1f\n", result.AveragePoints)
	fmt.Fprintf(&b, "Total Transfers: %d\n", result.TotalTransfers)
	fmt.Fprintf(&b, "Total Transfer Hits: %d\n", result.TotalTransferHits)
	fmt.Fprintf(&b, "Final Squad Value: £%.1fm\n", result.FinalSquadValue)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "PERFORMANCE METRICS")
	fmt.Fprintln(&b, rule)
	keys := make([]string, 0, len(result.PerformanceMetrics))
	for key := range result.PerformanceMetrics {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(&b, "%s: %.3f\n", metricLabel(key), result.PerformanceMetrics[key])
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "GAMEWEEK BREAKDOWN")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "%-4s %-8s %-8s %-8s %-8s %-10s\n", "GW", "Points", "Squad", "Bench", "Captain", "Transfers")
	fmt.Fprintln(&b, strings.Repeat("-", 50))
	for _, gw := range result.GameweekResults {
		fmt.Fprintf(&b, "%-4d %-8.1f %-8.1f %-8.1f %-8.1f %-10d\n",
			gw.Gameweek, gw.TotalPoints, gw.SquadPoints, gw.BenchPoints, gw.CaptainPoints, gw.TransfersMade)
	}
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, bar)

	return b.String()
}

// metricLabel turns a snake_case metric key into a report heading.
func metricLabel(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
