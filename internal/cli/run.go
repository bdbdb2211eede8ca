package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kressler/fast-containers/internal/config"
	"github.com/kressler/fast-containers/internal/export"
	"github.com/kressler/fast-containers/internal/output"
	"github.com/kressler/fast-containers/internal/sampler"
	"github.com/kressler/fast-containers/internal/stats"
)

// defaultBinary is where a release build of the benchmark lands.
const defaultBinary = "./cmake-build-release/src/binary/btree_benchmark"

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interleaved benchmark comparison",
	Long: `Run every named configuration once per pass, alternating the traversal
direction between passes (odd passes forward, even passes reverse), and
aggregate the collected samples into ranked comparison tables.

Examples:
  # Compare 3 configs with 10 interleaved passes
  fcbench run -c btree_8_32_96_128_linear,btree_8_32_96_128_simd,btree_8_32_96_128_linear_hp -p 10

  # Quick test with fewer iterations
  fcbench run -c btree_8_32_96_128_linear,btree_8_32_96_128_simd -p 3 -i 100 -t 10000

  # Pin to an isolated CPU core for reduced variance
  fcbench run -c btree_8_32_96_128_linear,btree_8_32_96_128_simd -p 10 --taskset 7

  # Export results to CSV
  fcbench run -c btree_8_32_96_128_linear,btree_8_32_96_128_simd -p 10 --csv results.csv

  # Load the run configuration from a file
  fcbench run --config bench.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		runBenchmark(cmd, args)
	},
}

// runBenchmark executes the full interleaved run: sample, aggregate,
// rank, print, export. Every fatal condition exits non-zero with a
// diagnostic; there is no partial-results mode.
func runBenchmark(cmd *cobra.Command, args []string) {
	quiet, _ := cmd.Flags().GetBool("quiet")
	noColor, _ := cmd.Flags().GetBool("no-color")

	cfg, err := buildRunConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var console *output.Console
	if noColor {
		console = output.NewConsoleWithOptions(os.Stdout, true)
	} else {
		console = output.NewConsole(os.Stdout)
	}

	if !quiet {
		console.PrintRunHeader(cfg)
	}

	runner := sampler.NewBinaryRunner(sampler.RunnerConfig{
		Binary:       cfg.Binary,
		Iterations:   cfg.Iterations,
		TreeSize:     cfg.TreeSize,
		Batches:      cfg.Batches,
		BatchSize:    cfg.BatchSize,
		RecordRampup: cfg.RampupEnabled(),
		Seed:         cfg.Seed,
		PinCPU:       cfg.PinCPU,
	})

	opts := sampler.Options{
		Configs: cfg.Configs,
		Passes:  cfg.Passes,
	}
	if !quiet {
		opts.Progress = console.Progress()
	}

	smp, err := sampler.New(runner, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	results, err := smp.Run(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	aggs, skipped, err := stats.Summarize(results)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, name := range skipped {
		console.Warnf("No results collected for configuration %q", name)
	}

	console.PrintResultsHeader()

	for _, metric := range stats.TrackedMetrics() {
		rows, err := stats.Rank(aggs, metric)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		console.PrintComparison(metric, rows)
	}

	for _, op := range sampler.Operations() {
		rep, err := stats.Winner(aggs, op)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		console.PrintWinnerDetail(rep)
	}

	console.PrintTiming(smp.Timing())

	if cfg.CSVPath != "" {
		if err := export.WriteCSV(cfg.CSVPath, aggs); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		console.Successf("Exported CSV to %s", cfg.CSVPath)
	}
	if cfg.JSONPath != "" {
		if err := export.WriteRawJSON(cfg.JSONPath, results); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		console.Successf("Exported raw JSON to %s", cfg.JSONPath)
	}

	console.Successf("Benchmark complete!")
}

// buildRunConfig resolves the run configuration from flag values, an
// optional YAML file, and explicitly set flags. Precedence, lowest to
// highest: flag defaults, file values, flags the user actually set.
//
// An explicitly set flag wins even at a zero value: -p 0 must reach
// validation and be refused there, not be quietly re-defaulted to 10,
// and -d 0 is a real seed the runner has to honor.
func buildRunConfig(cmd *cobra.Command) (*config.RunConfig, error) {
	flags := cmd.Flags()

	cfg := &config.RunConfig{}
	cfg.Binary, _ = flags.GetString("binary")
	cfg.Configs, _ = flags.GetStringSlice("configs")
	cfg.Passes, _ = flags.GetInt("passes")
	cfg.Iterations, _ = flags.GetInt("iterations")
	cfg.TreeSize, _ = flags.GetInt("tree-size")
	cfg.Batches, _ = flags.GetInt("batches")
	cfg.BatchSize, _ = flags.GetInt("batch-size")
	cfg.Seed, _ = flags.GetInt64("seed")
	cfg.PinCPU, _ = flags.GetInt("taskset")
	cfg.CSVPath, _ = flags.GetString("csv")
	cfg.JSONPath, _ = flags.GetString("json")
	if flags.Changed("no-record-rampup") {
		noRampup, _ := flags.GetBool("no-record-rampup")
		rampup := !noRampup
		cfg.RecordRampup = &rampup
	}

	configFile, _ := flags.GetString("config")
	if configFile == "" {
		return cfg, nil
	}

	file, err := config.LoadFile(configFile)
	if err != nil {
		return nil, err
	}

	// File values fill in wherever the corresponding flag was not
	// explicitly set. FileConfig's pointer fields distinguish an absent
	// key from an explicit zero, so passes: 0 or seed: 0 survive to
	// validation and the runner just like their flag equivalents.
	if !flags.Changed("binary") && file.Binary != "" {
		cfg.Binary = file.Binary
	}
	if !flags.Changed("configs") && len(file.Configs) > 0 {
		cfg.Configs = file.Configs
	}
	if !flags.Changed("passes") && file.Passes != nil {
		cfg.Passes = *file.Passes
	}
	if !flags.Changed("iterations") && file.Iterations != nil {
		cfg.Iterations = *file.Iterations
	}
	if !flags.Changed("tree-size") && file.TreeSize != nil {
		cfg.TreeSize = *file.TreeSize
	}
	if !flags.Changed("batches") && file.Batches != nil {
		cfg.Batches = *file.Batches
	}
	if !flags.Changed("batch-size") && file.BatchSize != nil {
		cfg.BatchSize = *file.BatchSize
	}
	if !flags.Changed("no-record-rampup") && file.RecordRampup != nil {
		cfg.RecordRampup = file.RecordRampup
	}
	if !flags.Changed("seed") && file.Seed != nil {
		cfg.Seed = *file.Seed
	}
	if !flags.Changed("taskset") && file.PinCPU != nil {
		cfg.PinCPU = *file.PinCPU
	}
	if !flags.Changed("csv") && file.CSVPath != "" {
		cfg.CSVPath = file.CSVPath
	}
	if !flags.Changed("json") && file.JSONPath != "" {
		cfg.JSONPath = file.JSONPath
	}

	return cfg, nil
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("binary", "b", defaultBinary, "Path to the benchmark binary")
	cmd.Flags().StringSliceP("configs", "c", nil, "Configurations to benchmark (comma-separated or repeated)")
	cmd.Flags().IntP("passes", "p", config.DefaultPasses, "Number of interleaved passes (minimum 2)")
	cmd.Flags().IntP("iterations", "i", config.DefaultIterations, "Number of iterations per run")
	cmd.Flags().IntP("tree-size", "t", config.DefaultTreeSize, "Minimum keys to target in the tree")
	cmd.Flags().Int("batches", config.DefaultBatches, "Number of erase/insert batches to run")
	cmd.Flags().Int("batch-size", config.DefaultBatchSize, "Size of an erase/insert batch")
	cmd.Flags().Bool("no-record-rampup", false, "Don't record stats while the tree ramps up in size")
	cmd.Flags().Int64P("seed", "d", config.DefaultSeed, "Random seed (reused for every invocation)")
	cmd.Flags().Int("taskset", -1, "Pin every invocation to this CPU core (-1 = no pinning)")
	cmd.Flags().String("csv", "", "Export aggregated results to a CSV file")
	cmd.Flags().String("json", "", "Export raw per-pass results to a JSON file")
	cmd.Flags().String("config", "", "Load run configuration from a YAML file")
	cmd.Flags().BoolP("quiet", "q", false, "Suppress the configuration banner and per-pass progress")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
}

func init() {
	addRunFlags(runCmd)
}
