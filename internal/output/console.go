// Package output renders run progress, comparison tables, and summary
// reports to the terminal.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/kressler/fast-containers/internal/config"
	"github.com/kressler/fast-containers/internal/sampler"
	"github.com/kressler/fast-containers/internal/stats"
)

// lineWidth is the width of section rules in table output.
const lineWidth = 100

// Console renders harness output to a writer, with color when the
// writer is a terminal.
type Console struct {
	w       io.Writer
	scheme  *ColorScheme
	noColor bool
}

// NewConsole creates a console renderer. Color is enabled only when the
// writer is a TTY.
func NewConsole(w io.Writer) *Console {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}
	return NewConsoleWithOptions(w, noColor)
}

// NewConsoleWithOptions creates a console renderer with explicit color
// control.
func NewConsoleWithOptions(w io.Writer, noColor bool) *Console {
	scheme := DefaultColorScheme()
	if noColor {
		scheme = NoColorScheme()
	}
	return &Console{w: w, scheme: scheme, noColor: noColor}
}

func (c *Console) rule() {
	fmt.Fprintln(c.w, strings.Repeat("=", lineWidth))
}

// PrintRunHeader prints the run-configuration banner shown before the
// first pass.
func (c *Console) PrintRunHeader(cfg *config.RunConfig) {
	c.rule()
	c.scheme.Title.Fprintln(c.w, "INTERLEAVED BENCHMARK CONFIGURATION")
	c.rule()
	fmt.Fprintf(c.w, "Binary:       %s\n", cfg.Binary)
	fmt.Fprintf(c.w, "Configs:      %s\n", strings.Join(cfg.Configs, ", "))
	fmt.Fprintf(c.w, "Passes:       %d\n", cfg.Passes)
	fmt.Fprintf(c.w, "Iterations:   %d\n", cfg.Iterations)
	fmt.Fprintf(c.w, "Tree size:    %d\n", cfg.TreeSize)
	fmt.Fprintf(c.w, "Batches:      %d\n", cfg.Batches)
	fmt.Fprintf(c.w, "Batch size:   %d\n", cfg.BatchSize)
	fmt.Fprintf(c.w, "Seed:         %d\n", cfg.Seed)
	if cfg.PinCPU >= 0 {
		fmt.Fprintf(c.w, "CPU core:     %d (pinned with taskset)\n", cfg.PinCPU)
	}
	c.rule()
}

// PrintResultsHeader prints the banner separating progress output from
// the comparison tables.
func (c *Console) PrintResultsHeader() {
	fmt.Fprintln(c.w)
	c.rule()
	c.scheme.Title.Fprintln(c.w, "INTERLEAVED BENCHMARK RESULTS")
	c.rule()
}

// ComparisonTitle returns the table title for one tracked metric, e.g.
// "INSERT P99.9 LATENCY COMPARISON".
func ComparisonTitle(metric stats.Metric) string {
	op := strings.ToUpper(string(metric.Op))
	if metric.Pct == sampler.P50 {
		return fmt.Sprintf("%s P50 (MEDIAN) LATENCY COMPARISON", op)
	}
	return fmt.Sprintf("%s %s LATENCY COMPARISON", op, metric.Pct.Label())
}

// PrintComparison renders one ranked comparison table for a tracked
// metric, followed by a variance analysis of the winner.
func (c *Console) PrintComparison(metric stats.Metric, rows []stats.Row) {
	fmt.Fprintln(c.w)
	c.rule()
	c.scheme.Title.Fprintln(c.w, ComparisonTitle(metric))
	c.rule()

	label := metric.Pct.Label() + " Median (ns)"
	c.scheme.Header.Fprintf(c.w, "\n%-30s %-8s %-16s %-10s %-10s %-10s %-10s\n",
		"Config", "Passes", label, "Min", "Max", "StdDev", "vs Best")
	fmt.Fprintln(c.w, strings.Repeat("-", lineWidth))

	for _, row := range rows {
		marker := "  "
		if row.Baseline {
			marker = SuccessIcon(c.noColor) + " "
		}
		fmt.Fprintf(c.w, "%s%-28s %-8d %-16.1f %-10.1f %-10.1f %-10.2f %-10s\n",
			marker, row.Config, row.Passes,
			row.Summary.Median, row.Summary.Min, row.Summary.Max, row.Summary.StdDev,
			FormatDeviation(row))
	}
	c.rule()

	// Variance analysis of the winning configuration
	winner := rows[0]
	fmt.Fprintf(c.w, "\nWinner: %s\n", c.scheme.Winner.Sprint(winner.Config))
	fmt.Fprintln(c.w, "Variance analysis:")
	rangeNs := winner.Summary.Max - winner.Summary.Min
	fmt.Fprintf(c.w, "  Range:  %.1f ns (%.2f%%)\n",
		rangeNs, rangeNs/winner.Summary.Median*100)
	fmt.Fprintf(c.w, "  StdDev: %.2f ns (%.2f%%)\n",
		winner.Summary.StdDev, winner.Summary.StdDev/winner.Summary.Median*100)
}

// FormatDeviation renders a row's deviation from the baseline median.
// The baseline row is always "baseline", never a signed percentage.
func FormatDeviation(row stats.Row) string {
	if row.Baseline {
		return "baseline"
	}
	return fmt.Sprintf("%+.2f%%", row.DeltaPct)
}

// PrintWinnerDetail renders the full percentile ladder of the
// high-tail winner for one operation, taken from its representative
// run.
func (c *Console) PrintWinnerDetail(rep *stats.WinnerReport) {
	fmt.Fprintln(c.w)
	c.rule()
	c.scheme.Title.Fprintf(c.w, "DETAILED PERCENTILES - %s (P99.9 Winner for %s)\n",
		rep.Config, strings.ToUpper(string(rep.Op)))
	c.rule()

	fmt.Fprintf(c.w, "\n%s latencies (from median run):\n", capitalize(string(rep.Op)))
	for _, pct := range sampler.Percentiles() {
		v, _ := rep.Latencies.At(pct)
		fmt.Fprintf(c.w, "  %-7s %10.2f ns\n", pct.Label()+":", v)
	}
	c.rule()
}

// PrintTiming renders the harness-side invocation timing summary.
func (c *Console) PrintTiming(ts sampler.TimingSummary) {
	fmt.Fprintln(c.w)
	fmt.Fprintln(c.w, "Harness timing:")
	fmt.Fprintf(c.w, "  Invocations: %d\n", ts.Invocations)
	fmt.Fprintf(c.w, "  Total:       %s\n", ts.Total.Round(time.Millisecond))
	fmt.Fprintf(c.w, "  P50:         %s\n", ts.P50.Round(time.Millisecond))
	fmt.Fprintf(c.w, "  P95:         %s\n", ts.P95.Round(time.Millisecond))
	fmt.Fprintf(c.w, "  Max:         %s\n", ts.Max.Round(time.Millisecond))
}

// Warnf prints a warning line.
func (c *Console) Warnf(format string, args ...interface{}) {
	fmt.Fprintf(c.w, "%s %s\n", WarningIcon(c.noColor),
		c.scheme.Warning.Sprintf(format, args...))
}

// Successf prints a success line.
func (c *Console) Successf(format string, args ...interface{}) {
	fmt.Fprintf(c.w, "%s %s\n", SuccessIcon(c.noColor), fmt.Sprintf(format, args...))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
