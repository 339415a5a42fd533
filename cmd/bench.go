package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/emachad0/paragraph-schedulers/parser"
	"github.com/emachad0/paragraph-schedulers/scheduler"
)

var (
	benchTaskXML     string
	benchTopologyXML string
	benchLogLevel    string
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time all six scheduler façades over one parsed input",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(benchLogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", benchLogLevel, err)
		}
		logrus.SetLevel(level)

		taskXML, err := os.ReadFile(benchTaskXML)
		if err != nil {
			return fmt.Errorf("reading task xml: %w", err)
		}
		taskGraph, err := parser.ParseTaskXML(taskXML)
		if err != nil {
			return fmt.Errorf("parsing task xml: %w", err)
		}

		topologyXML, err := os.ReadFile(benchTopologyXML)
		if err != nil {
			return fmt.Errorf("reading topology xml: %w", err)
		}
		topologyGraph, err := parser.ParseTopologyXML(topologyXML)
		if err != nil {
			return fmt.Errorf("parsing topology xml: %w", err)
		}

		logrus.Infof("benchmarking %d tasks over %d devices", taskGraph.TaskCount(), topologyGraph.DeviceCount())

		fmt.Printf("%-8s %-7s %12s\n", "heuristic", "flavor", "elapsed")
		for _, heuristic := range scheduler.Heuristics() {
			for _, flavor := range scheduler.Flavors() {
				facade, err := scheduler.Lookup(heuristic, flavor)
				if err != nil {
					return err
				}
				start := time.Now()
				if _, err := facade(topologyGraph, taskGraph); err != nil {
					return fmt.Errorf("%s/%s failed: %w", heuristic, flavor, err)
				}
				elapsed := time.Since(start)
				fmt.Printf("%-8s %-7s %12s\n", heuristic, flavor, elapsed)
			}
		}
		return nil
	},
}

func init() {
	benchCmd.Flags().StringVar(&benchTaskXML, "task-xml", "", "Path to the task-graph XML file")
	benchCmd.Flags().StringVar(&benchTopologyXML, "topology-xml", "", "Path to the topology XML file")
	benchCmd.Flags().StringVar(&benchLogLevel, "log", "info", "Log level (debug, info, warn, error)")
}
