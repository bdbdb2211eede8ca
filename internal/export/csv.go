// Package export writes aggregated statistics to CSV and archives raw
// result sequences as JSON for later re-aggregation.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/kressler/fast-containers/internal/sampler"
	"github.com/kressler/fast-containers/internal/stats"
)

// WriteCSV exports one row per configuration with the median/min/max/
// stdev of every tracked metric, sorted by ascending insert p99_9
// median (best first).
func WriteCSV(path string, aggs []*stats.Aggregate) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	metrics := stats.TrackedMetrics()
	header := []string{"config", "passes"}
	for _, m := range metrics {
		header = append(header,
			m.Key()+"_median", m.Key()+"_min", m.Key()+"_max", m.Key()+"_stdev")
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	sortKey := stats.Metric{Op: sampler.OpInsert, Pct: sampler.P999}
	sorted := make([]*stats.Aggregate, len(aggs))
	copy(sorted, aggs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Metrics[sortKey].Median < sorted[j].Metrics[sortKey].Median
	})

	for _, agg := range sorted {
		row := []string{agg.Config, strconv.Itoa(agg.Passes)}
		for _, m := range metrics {
			s := agg.Metrics[m]
			row = append(row,
				formatFloat(s.Median), formatFloat(s.Min), formatFloat(s.Max), formatFloat(s.StdDev))
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", agg.Config, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
