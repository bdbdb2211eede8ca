package sampler

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// timingRecorder tracks harness-side wall-clock time per invocation.
//
// This measures the cost of driving the external binary (process spawn,
// the benchmark itself, output parsing), not the workload's latencies;
// those come from the binary's own histogram. It is useful for spotting
// passes that ran abnormally long.
//
// The sampler is strictly single-threaded, so no locking is needed.
type timingRecorder struct {
	// Range: 1 microsecond to 1 hour, 3 significant figures
	hist  *hdrhistogram.Histogram
	total time.Duration
}

const (
	timingHistMin     = 1          // 1 microsecond
	timingHistMax     = 3600000000 // 1 hour in microseconds
	timingHistSigFigs = 3
)

func newTimingRecorder() *timingRecorder {
	return &timingRecorder{
		hist: hdrhistogram.New(timingHistMin, timingHistMax, timingHistSigFigs),
	}
}

func (t *timingRecorder) record(d time.Duration) {
	micros := d.Microseconds()
	if micros < timingHistMin {
		micros = timingHistMin
	}
	if micros > timingHistMax {
		micros = timingHistMax
	}
	t.hist.RecordValue(micros)
	t.total += d
}

// TimingSummary is a point-in-time summary of invocation wall times.
type TimingSummary struct {
	Invocations int64         `json:"invocations"`
	Total       time.Duration `json:"total"`
	P50         time.Duration `json:"p50"`
	P95         time.Duration `json:"p95"`
	Max         time.Duration `json:"max"`
}

func (t *timingRecorder) summary() TimingSummary {
	return TimingSummary{
		Invocations: t.hist.TotalCount(),
		Total:       t.total,
		P50:         time.Duration(t.hist.ValueAtQuantile(50)) * time.Microsecond,
		P95:         time.Duration(t.hist.ValueAtQuantile(95)) * time.Microsecond,
		Max:         time.Duration(t.hist.Max()) * time.Microsecond,
	}
}
