// Package config provides run-configuration parsing and validation for
// the interleaved benchmark harness.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunConfig is the fully resolved configuration for one interleaved
// benchmark run.
//
// Zero values are meaningful here (passes 0 must be refused by
// Validate, a zero seed is a real seed), so nothing treats zero as
// "unset". Programmatic callers start from DefaultRunConfig and
// overwrite fields; the CLI resolves flag defaults, file values, and
// explicitly set flags before validating.
type RunConfig struct {
	// Binary is the path to the benchmark executable
	Binary string

	// Configs are the benchmark configuration names to compare.
	// Their order defines the forward traversal order.
	Configs []string

	// Passes is the number of interleaved passes (minimum 2)
	Passes int

	// Iterations is the iteration count handed to each invocation
	Iterations int

	// TreeSize is the minimum number of keys to target in the tree
	TreeSize int

	// Batches is the number of erase/insert batches per invocation
	Batches int

	// BatchSize is the size of one erase/insert batch
	BatchSize int

	// RecordRampup controls whether the binary records samples while
	// the tree is still ramping up to TreeSize (nil = on)
	RecordRampup *bool

	// Seed is the random seed reused for every invocation, so
	// run-to-run variance reflects timing noise, not input sequences
	Seed int64

	// PinCPU pins every invocation to one logical CPU (-1 = no pinning)
	PinCPU int

	// CSVPath, if set, is where the aggregated stats are exported
	CSVPath string

	// JSONPath, if set, is where the raw per-pass results are exported
	JSONPath string
}

// Default values for RunConfig fields.
const (
	DefaultPasses     = 10
	DefaultIterations = 1
	DefaultTreeSize   = 1000000
	DefaultBatches    = 100
	DefaultBatchSize  = 1000
	DefaultSeed       = 42
)

// DefaultRunConfig returns a RunConfig with every knob at its default.
// Binary and Configs have no defaults and must be filled in.
func DefaultRunConfig() *RunConfig {
	on := true
	return &RunConfig{
		Passes:       DefaultPasses,
		Iterations:   DefaultIterations,
		TreeSize:     DefaultTreeSize,
		Batches:      DefaultBatches,
		BatchSize:    DefaultBatchSize,
		RecordRampup: &on,
		Seed:         DefaultSeed,
		PinCPU:       -1,
	}
}

// RampupEnabled reports whether ramp-up recording is on (the default).
func (c *RunConfig) RampupEnabled() bool {
	return c.RecordRampup == nil || *c.RecordRampup
}

// FileConfig is the YAML file form of a run configuration. Every knob
// is a pointer so a field absent from the file can be told apart from
// one explicitly set to a zero value: passes: 0 must reach validation,
// not be re-defaulted away.
//
// Example:
//
//	binary: ./cmake-build-release/src/binary/btree_benchmark
//	configs:
//	  - btree_8_32_96_128_linear
//	  - btree_8_32_96_128_simd
//	passes: 10
//	treeSize: 1000000
//	csv: results.csv
type FileConfig struct {
	Binary       string   `yaml:"binary"`
	Configs      []string `yaml:"configs"`
	Passes       *int     `yaml:"passes"`
	Iterations   *int     `yaml:"iterations"`
	TreeSize     *int     `yaml:"treeSize"`
	Batches      *int     `yaml:"batches"`
	BatchSize    *int     `yaml:"batchSize"`
	RecordRampup *bool    `yaml:"recordRampup"`
	Seed         *int64   `yaml:"seed"`
	PinCPU       *int     `yaml:"pinCpu"`
	CSVPath      string   `yaml:"csv"`
	JSONPath     string   `yaml:"json"`
}

// LoadFile reads a FileConfig from a YAML file.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &FileConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}
