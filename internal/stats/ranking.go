package stats

import (
	"fmt"
	"sort"

	"github.com/kressler/fast-containers/internal/sampler"
)

// Row is one entry in a per-metric comparison: a configuration paired
// with its summary statistics, ordered best (lowest median) first.
type Row struct {
	// Config is the configuration name
	Config string

	// Passes is the number of collected results behind the statistics
	Passes int

	// Summary holds the configuration's statistics for the ranked metric
	Summary Summary

	// Baseline marks the first (lowest-median) row
	Baseline bool

	// DeltaPct is the percentage deviation of this row's median from
	// the baseline median. Zero for the baseline row itself, which is
	// reported as "baseline" rather than a signed percentage.
	DeltaPct float64
}

// Rank orders configurations by ascending median for the given metric.
//
// The sort is stable, so ties keep the input configuration order; there
// is no secondary tie-break metric. A baseline median of exactly zero
// makes percentage deviation undefined for every other row and is
// returned as an error rather than emitting infinities.
func Rank(aggs []*Aggregate, metric Metric) ([]Row, error) {
	if len(aggs) == 0 {
		return nil, fmt.Errorf("no configurations to rank for metric %s", metric.Key())
	}

	rows := make([]Row, len(aggs))
	for i, agg := range aggs {
		rows[i] = Row{
			Config:  agg.Config,
			Passes:  agg.Passes,
			Summary: agg.Metrics[metric],
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Summary.Median < rows[j].Summary.Median
	})

	baseline := rows[0].Summary.Median
	if baseline == 0 {
		return nil, fmt.Errorf("baseline median is zero for metric %s (configuration %s): percentage deviation is undefined",
			metric.Key(), rows[0].Config)
	}

	rows[0].Baseline = true
	for i := 1; i < len(rows); i++ {
		rows[i].DeltaPct = (rows[i].Summary.Median - baseline) / baseline * 100
	}

	return rows, nil
}

// WinnerReport is the detailed percentile breakdown for the
// configuration that wins one operation at the high-tail percentile.
type WinnerReport struct {
	// Config is the winning configuration
	Config string

	// Op is the operation the winner was selected for
	Op sampler.Operation

	// Latencies is the full percentile ladder (p0 through p99_99) from
	// the winner's representative run, verbatim
	Latencies sampler.Latencies
}

// Winner selects the configuration with the best p99_9 median for the
// given operation and reports its representative run's full percentile
// ladder. Ranking by the tail percentile, not the central one, surfaces
// tail behavior the summary tables' single-percentile columns cannot
// show.
func Winner(aggs []*Aggregate, op sampler.Operation) (*WinnerReport, error) {
	rows, err := Rank(aggs, Metric{Op: op, Pct: sampler.P999})
	if err != nil {
		return nil, err
	}

	var winner *Aggregate
	for _, agg := range aggs {
		if agg.Config == rows[0].Config {
			winner = agg
			break
		}
	}
	if winner == nil {
		return nil, fmt.Errorf("winner %s has no aggregate", rows[0].Config)
	}

	lats, ok := winner.MedianRun.Operation(op)
	if !ok {
		return nil, fmt.Errorf("unknown operation: %s", op)
	}

	return &WinnerReport{
		Config:    winner.Config,
		Op:        op,
		Latencies: lats,
	}, nil
}
