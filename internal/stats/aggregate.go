// Package stats aggregates raw interleaved benchmark results into
// per-configuration summary statistics and ranks configurations per
// tracked metric.
package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/kressler/fast-containers/internal/sampler"
)

// Metric identifies one tracked (operation, percentile) pair.
type Metric struct {
	Op  sampler.Operation
	Pct sampler.Percentile
}

// Key returns the flat metric name used in exports, e.g. "insert_p99_9".
func (m Metric) Key() string {
	return string(m.Op) + "_" + string(m.Pct)
}

// TrackedMetrics returns the fixed set of metrics whose full summary
// statistics are computed: {insert, find, erase} x {p99_9, p50}.
// The remaining percentiles are reported from the representative run
// only (see Aggregate.MedianRun).
func TrackedMetrics() []Metric {
	var metrics []Metric
	for _, op := range sampler.Operations() {
		metrics = append(metrics,
			Metric{Op: op, Pct: sampler.P999},
			Metric{Op: op, Pct: sampler.P50},
		)
	}
	return metrics
}

// Summary holds spread statistics for one metric across all passes of
// one configuration. Values are nanoseconds.
type Summary struct {
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"stdev"`

	// Values is the raw value sequence in pass order
	Values []float64 `json:"values"`
}

// Aggregate holds the derived statistics for one configuration.
// It is never mutated after creation.
type Aggregate struct {
	// Config is the configuration name
	Config string

	// Passes is the number of collected results
	Passes int

	// Metrics holds one Summary per tracked metric
	Metrics map[Metric]Summary

	// MedianRun is the raw measurement document at the positional
	// median index (floor(len/2) in pass order). It supplies the
	// percentiles not otherwise tracked (p0, p95, p99, p99_99) for
	// detailed reporting. Note this is a positional pick, not the
	// run whose values are closest to the per-metric medians.
	MedianRun *sampler.Measurement
}

// Summarize computes one Aggregate per configuration from the collected
// result sequences, preserving the input configuration order.
//
// Configurations with zero collected results are excluded and returned
// in skipped so the caller can warn about them. A document missing an
// expected field is a contract violation by the external process and
// fails the whole aggregation, identifying the configuration.
func Summarize(rs *sampler.ResultSet) (aggs []*Aggregate, skipped []string, err error) {
	for _, config := range rs.Configs() {
		seq := rs.Sequence(config)
		if len(seq) == 0 {
			skipped = append(skipped, config)
			continue
		}

		agg := &Aggregate{
			Config:    config,
			Passes:    len(seq),
			Metrics:   make(map[Metric]Summary, len(TrackedMetrics())),
			MedianRun: seq[len(seq)/2],
		}

		for _, metric := range TrackedMetrics() {
			values := make([]float64, len(seq))
			for i, m := range seq {
				v, verr := m.Value(metric.Op, metric.Pct)
				if verr != nil {
					return nil, nil, fmt.Errorf("configuration %s: metric %s: %w", config, metric.Key(), verr)
				}
				values[i] = v
			}
			agg.Metrics[metric] = summarize(values)
		}

		aggs = append(aggs, agg)
	}

	return aggs, skipped, nil
}

func summarize(values []float64) Summary {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return Summary{
		Median: Median(values),
		Min:    lo,
		Max:    hi,
		StdDev: SampleStdDev(values),
		Values: values,
	}
}

// Median returns the statistical median: the middle element for odd
// lengths, the mean of the two middle elements for even lengths.
// The input slice is not modified.
func Median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// SampleStdDev returns the sample standard deviation (n-1 denominator).
// It is defined as 0 for fewer than two samples, where the sample
// variance would otherwise be undefined.
func SampleStdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(n-1))
}
