package sampler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// RunnerConfig describes how the external benchmark binary is invoked.
//
// Every invocation in a run uses the same iteration count, sizes, and
// seed; only the configuration name changes. Reusing the seed means
// sample-to-sample variance reflects timing noise, not differing input
// sequences.
type RunnerConfig struct {
	// Binary is the path to the benchmark executable
	Binary string

	// Iterations is the iteration count per invocation
	Iterations int

	// TreeSize is the minimum number of keys to target in the tree
	TreeSize int

	// Batches is the number of erase/insert batches
	Batches int

	// BatchSize is the size of one erase/insert batch
	BatchSize int

	// RecordRampup controls whether samples taken while the tree is
	// still growing to TreeSize are recorded
	RecordRampup bool

	// Seed is the deterministic random seed
	Seed int64

	// PinCPU restricts the invocation to one logical CPU via taskset.
	// -1 disables pinning.
	PinCPU int
}

// BinaryRunner invokes the benchmark binary once per call and parses
// its JSON output into a Measurement.
//
// It implements Invoker.
type BinaryRunner struct {
	cfg RunnerConfig
}

// NewBinaryRunner creates a runner for the given invocation settings.
func NewBinaryRunner(cfg RunnerConfig) *BinaryRunner {
	return &BinaryRunner{cfg: cfg}
}

// Invoke runs the binary once for the given configuration name.
//
// A non-zero exit or output that does not parse into the measurement
// document shape is returned as an error; the caller treats either as
// fatal for the whole run.
func (r *BinaryRunner) Invoke(ctx context.Context, config string) (*Measurement, error) {
	name, args := r.command(config)

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("configuration %s: binary exited with code %d: %s",
				config, exitErr.ExitCode(), stderrExcerpt(&stderr))
		}
		return nil, fmt.Errorf("configuration %s: failed to run binary: %w", config, err)
	}

	m, err := ParseMeasurement(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("configuration %s: %w", config, err)
	}
	return m, nil
}

// command builds the executable name and argument list for one
// invocation. When CPU pinning is requested the whole invocation is
// wrapped in taskset without changing the binary's own arguments.
func (r *BinaryRunner) command(config string) (name string, args []string) {
	name = r.cfg.Binary
	if r.cfg.PinCPU >= 0 {
		name = "taskset"
		args = append(args, "-c", strconv.Itoa(r.cfg.PinCPU), r.cfg.Binary)
	}

	args = append(args,
		"-j", // machine-readable JSON output
		"-i", strconv.Itoa(r.cfg.Iterations),
		"-t", strconv.Itoa(r.cfg.TreeSize),
		"-b", strconv.Itoa(r.cfg.Batches),
		"-s", strconv.Itoa(r.cfg.BatchSize),
		"-d", strconv.FormatInt(r.cfg.Seed, 10),
		config,
	)

	if !r.cfg.RecordRampup {
		args = append(args, "-r", "false")
	}

	return name, args
}

// stderrExcerpt trims the binary's stderr down to something that fits
// in a one-line diagnostic.
func stderrExcerpt(buf *bytes.Buffer) string {
	s := strings.TrimSpace(buf.String())
	if s == "" {
		return "(no error output)"
	}
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx] + " ..."
	}
	const maxLen = 200
	if len(s) > maxLen {
		s = s[:maxLen] + "..."
	}
	return s
}
