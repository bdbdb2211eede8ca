package cli

import (
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "fcbench",
	Short:   "Interleaved A/B benchmark runner for fast-containers",
	Version: version,
	Long: `Fcbench drives the fast-containers benchmark binary through multiple
named configurations in an interleaved forward/reverse pass pattern,
then aggregates the per-pass results into ranked latency comparison
tables. Interleaving cancels out systematic drift (thermal throttling,
cache warm-up, scheduler noise) that would otherwise correlate with
whichever configuration happens to run first.`,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print help
		cmd.Help()
	},
}

// Execute runs the root command. It is called by main.main().
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	// Add subcommands to root command
	RootCmd.AddCommand(runCmd)
}
