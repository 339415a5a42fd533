// Package cmd wires the cobra CLI: a "schedule" subcommand for ad hoc runs
// against a chosen heuristic/flavor, and a "bench" subcommand that times all
// six façades over the same parsed input.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "paragraph-schedulers",
	Short: "DAG task-scheduling heuristics (HEFT, Buyya greedy list-scheduling)",
}

// Execute runs the root command, exiting the process with status 1 on
// failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(benchCmd)
}
