// Package sampler implements the interleaved sampling protocol: it
// schedules forward/reverse passes over a set of benchmark
// configurations, drives the external measurement binary once per
// (pass, configuration) pair, and collects the raw measurement
// documents grouped by configuration.
package sampler

import (
	"context"
	"fmt"
	"time"
)

// Invoker runs the external measurement process once for one
// configuration and returns the parsed measurement document.
//
// BinaryRunner is the production implementation; tests substitute
// their own.
type Invoker interface {
	Invoke(ctx context.Context, config string) (*Measurement, error)
}

// Progress receives run-progress callbacks from the sampler.
//
// The sampler is strictly sequential; implementations are called from a
// single goroutine and should not block.
type Progress interface {
	// PassStarted is called before the first invocation of each pass.
	PassStarted(pass, passes int, order []string, reversed bool)

	// InvocationStarted is called immediately before one invocation.
	InvocationStarted(config string)

	// InvocationFinished is called when one invocation completes,
	// with its wall-clock duration and error, if any.
	InvocationFinished(config string, elapsed time.Duration, err error)
}

// noopProgress is used when the caller does not want progress output.
type noopProgress struct{}

func (noopProgress) PassStarted(int, int, []string, bool)            {}
func (noopProgress) InvocationStarted(string)                        {}
func (noopProgress) InvocationFinished(string, time.Duration, error) {}

// ResultSet maps each configuration to its result sequence: the raw
// measurement documents in ascending pass order, regardless of the
// direction the pass traversed.
//
// It is only ever appended to during a run and is handed to the
// aggregator read-only afterwards.
type ResultSet struct {
	order   []string
	results map[string][]*Measurement
}

// NewResultSet creates an empty result set for the given configuration
// order. A name appearing more than once keeps a single merged
// sequence; the first occurrence fixes its position in the order.
func NewResultSet(configs []string) *ResultSet {
	rs := &ResultSet{results: make(map[string][]*Measurement, len(configs))}
	for _, c := range configs {
		if _, ok := rs.results[c]; ok {
			continue
		}
		rs.results[c] = nil
		rs.order = append(rs.order, c)
	}
	return rs
}

// Add appends one measurement to a configuration's result sequence.
// Sequences are append-only; measurements are never removed or reordered.
func (rs *ResultSet) Add(config string, m *Measurement) {
	if _, ok := rs.results[config]; !ok {
		rs.order = append(rs.order, config)
	}
	rs.results[config] = append(rs.results[config], m)
}

// Configs returns the configuration names in their original input order.
func (rs *ResultSet) Configs() []string {
	out := make([]string, len(rs.order))
	copy(out, rs.order)
	return out
}

// Sequence returns the result sequence for one configuration.
func (rs *ResultSet) Sequence(config string) []*Measurement {
	return rs.results[config]
}

// Map returns the underlying config → sequence mapping, for raw export.
func (rs *ResultSet) Map() map[string][]*Measurement {
	out := make(map[string][]*Measurement, len(rs.results))
	for k, v := range rs.results {
		out[k] = v
	}
	return out
}

// Options configures a Sampler.
type Options struct {
	// Configs is the ordered list of configuration names. The given
	// order defines the forward traversal order.
	Configs []string

	// Passes is the number of interleaved passes. Minimum 2: a single
	// pass cannot be compared against its own reverse.
	Passes int

	// Progress receives run-progress callbacks (optional).
	Progress Progress
}

// Sampler runs the interleaved sampling protocol.
type Sampler struct {
	configs  []string
	passes   int
	invoker  Invoker
	progress Progress
	timing   *timingRecorder
}

// New creates a sampler for the given invoker and options.
func New(invoker Invoker, opts Options) (*Sampler, error) {
	if invoker == nil {
		return nil, fmt.Errorf("invoker is required")
	}
	if len(opts.Configs) == 0 {
		return nil, fmt.Errorf("at least one configuration is required")
	}
	if opts.Passes < 2 {
		return nil, fmt.Errorf("need at least 2 passes for interleaved testing, got %d", opts.Passes)
	}

	progress := opts.Progress
	if progress == nil {
		progress = noopProgress{}
	}

	configs := make([]string, len(opts.Configs))
	copy(configs, opts.Configs)

	return &Sampler{
		configs:  configs,
		passes:   opts.Passes,
		invoker:  invoker,
		progress: progress,
		timing:   newTimingRecorder(),
	}, nil
}

// Run executes the full interleaved schedule and returns the collected
// results grouped by configuration.
//
// Execution is strictly sequential: one invocation is outstanding at a
// time, since concurrent invocations would contend for the CPU and
// cache resources being measured. The first failed invocation aborts
// the remaining schedule immediately; partial interleaved data cannot
// be fairly compared, and a retry could reintroduce the ordering bias
// the protocol exists to eliminate.
func (s *Sampler) Run(ctx context.Context) (*ResultSet, error) {
	results := NewResultSet(s.configs)

	for pass := 1; pass <= s.passes; pass++ {
		order := PassOrder(s.configs, pass)
		s.progress.PassStarted(pass, s.passes, order, Reversed(pass))

		for _, config := range order {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			s.progress.InvocationStarted(config)
			start := time.Now()
			m, err := s.invoker.Invoke(ctx, config)
			elapsed := time.Since(start)
			s.progress.InvocationFinished(config, elapsed, err)

			if err != nil {
				return nil, fmt.Errorf("pass %d/%d: %w", pass, s.passes, err)
			}

			s.timing.record(elapsed)
			results.Add(config, m)
		}
	}

	return results, nil
}

// Timing returns a summary of harness-side invocation wall times for
// the run so far.
func (s *Sampler) Timing() TimingSummary {
	return s.timing.summary()
}
