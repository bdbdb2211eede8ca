package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kressler/fast-containers/internal/config"
	"github.com/kressler/fast-containers/internal/sampler"
	"github.com/kressler/fast-containers/internal/stats"
)

func newTestConsole() (*Console, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewConsoleWithOptions(buf, true), buf
}

func TestFormatDeviation(t *testing.T) {
	tests := []struct {
		name string
		row  stats.Row
		want string
	}{
		{
			name: "baseline row",
			row:  stats.Row{Baseline: true, DeltaPct: 0},
			want: "baseline",
		},
		{
			name: "slower than baseline",
			row:  stats.Row{DeltaPct: 6.8627},
			want: "+6.86%",
		},
		{
			name: "faster on a non-ranked metric",
			row:  stats.Row{DeltaPct: -2.5},
			want: "-2.50%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDeviation(tt.row); got != tt.want {
				t.Errorf("FormatDeviation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComparisonTitle(t *testing.T) {
	tests := []struct {
		metric stats.Metric
		want   string
	}{
		{stats.Metric{Op: sampler.OpInsert, Pct: sampler.P999}, "INSERT P99.9 LATENCY COMPARISON"},
		{stats.Metric{Op: sampler.OpInsert, Pct: sampler.P50}, "INSERT P50 (MEDIAN) LATENCY COMPARISON"},
		{stats.Metric{Op: sampler.OpFind, Pct: sampler.P999}, "FIND P99.9 LATENCY COMPARISON"},
		{stats.Metric{Op: sampler.OpErase, Pct: sampler.P50}, "ERASE P50 (MEDIAN) LATENCY COMPARISON"},
	}

	for _, tt := range tests {
		if got := ComparisonTitle(tt.metric); got != tt.want {
			t.Errorf("ComparisonTitle(%s) = %q, want %q", tt.metric.Key(), got, tt.want)
		}
	}
}

func TestPrintRunHeader(t *testing.T) {
	c, buf := newTestConsole()
	cfg := config.DefaultRunConfig()
	cfg.Binary = "./btree_benchmark"
	cfg.Configs = []string{"btree_linear", "btree_simd"}

	c.PrintRunHeader(cfg)
	out := buf.String()

	for _, want := range []string{
		"INTERLEAVED BENCHMARK CONFIGURATION",
		"Binary:       ./btree_benchmark",
		"Configs:      btree_linear, btree_simd",
		"Passes:       10",
		"Tree size:    1000000",
		"Seed:         42",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "pinned") {
		t.Error("header mentions pinning with PinCPU=-1")
	}
}

func TestPrintRunHeader_Pinned(t *testing.T) {
	c, buf := newTestConsole()
	cfg := config.DefaultRunConfig()
	cfg.Binary = "b"
	cfg.Configs = []string{"a"}
	cfg.PinCPU = 7

	c.PrintRunHeader(cfg)
	if !strings.Contains(buf.String(), "CPU core:     7 (pinned with taskset)") {
		t.Errorf("header missing pinning line:\n%s", buf.String())
	}
}

func TestPrintComparison(t *testing.T) {
	c, buf := newTestConsole()

	rows := []stats.Row{
		{
			Config:   "btree_simd",
			Passes:   10,
			Summary:  stats.Summary{Median: 102, Min: 100, Max: 104, StdDev: 2.83},
			Baseline: true,
		},
		{
			Config:   "btree_linear",
			Passes:   10,
			Summary:  stats.Summary{Median: 109, Min: 108, Max: 110, StdDev: 1.41},
			DeltaPct: 6.8627,
		},
	}

	c.PrintComparison(stats.Metric{Op: sampler.OpInsert, Pct: sampler.P999}, rows)
	out := buf.String()

	for _, want := range []string{
		"INSERT P99.9 LATENCY COMPARISON",
		"P99.9 Median (ns)",
		"vs Best",
		"btree_simd",
		"btree_linear",
		"baseline",
		"+6.86%",
		"Winner: btree_simd",
		"Variance analysis:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("comparison output missing %q:\n%s", want, out)
		}
	}

	// Winner range 4 ns over median 102 is 3.92%
	if !strings.Contains(out, "Range:  4.0 ns (3.92%)") {
		t.Errorf("variance analysis range wrong:\n%s", out)
	}
}

func TestPrintWinnerDetail(t *testing.T) {
	c, buf := newTestConsole()

	rep := &stats.WinnerReport{
		Config: "btree_simd",
		Op:     sampler.OpFind,
		Latencies: sampler.Latencies{
			P0: 10, P50: 20, P95: 30, P99: 40, P999: 50, P9999: 60,
		},
	}
	c.PrintWinnerDetail(rep)
	out := buf.String()

	if !strings.Contains(out, "DETAILED PERCENTILES - btree_simd (P99.9 Winner for FIND)") {
		t.Errorf("detail header missing:\n%s", out)
	}
	if !strings.Contains(out, "Find latencies (from median run):") {
		t.Errorf("ladder intro missing:\n%s", out)
	}
	for _, want := range []string{"P0:", "P50:", "P95:", "P99:", "P99.9:", "P99.99:"} {
		if !strings.Contains(out, want) {
			t.Errorf("ladder missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "60.00 ns") {
		t.Errorf("ladder missing p99_99 value:\n%s", out)
	}
}

func TestPrintTiming(t *testing.T) {
	c, buf := newTestConsole()

	c.PrintTiming(sampler.TimingSummary{
		Invocations: 20,
		Total:       41*time.Second + 500*time.Millisecond,
		P50:         2 * time.Second,
		P95:         3 * time.Second,
		Max:         3*time.Second + 100*time.Millisecond,
	})
	out := buf.String()

	for _, want := range []string{
		"Harness timing:",
		"Invocations: 20",
		"Total:       41.5s",
		"P50:         2s",
		"Max:         3.1s",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("timing output missing %q:\n%s", want, out)
		}
	}
}

func TestProgressRendering(t *testing.T) {
	c, buf := newTestConsole()
	p := c.Progress()

	p.PassStarted(1, 2, []string{"a", "b"}, false)
	p.InvocationStarted("a")
	p.InvocationFinished("a", 1200*time.Millisecond, nil)
	p.PassStarted(2, 2, []string{"b", "a"}, true)
	p.InvocationStarted("b")
	p.InvocationFinished("b", 0, errors.New("exited with code 1"))

	out := buf.String()
	for _, want := range []string{
		"Pass 1/2 (forward: a → b)",
		"Running: a...",
		"(1.2s)",
		"Pass 2/2 (reverse: b → a)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("progress output missing %q:\n%s", want, out)
		}
	}
}
