package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/emachad0/paragraph-schedulers/config"
	"github.com/emachad0/paragraph-schedulers/parser"
	"github.com/emachad0/paragraph-schedulers/scheduler"
)

var (
	scheduleHeuristic   string
	scheduleFlavor      string
	scheduleTaskXML     string
	scheduleTopologyXML string
	scheduleConfigFile  string
	scheduleLogLevel    string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run one scheduler heuristic/flavor over a task graph and topology",
	RunE: func(cmd *cobra.Command, args []string) error {
		heuristic, flavor := scheduleHeuristic, scheduleFlavor
		taskXMLPath, topologyXMLPath := scheduleTaskXML, scheduleTopologyXML
		logLevel := scheduleLogLevel

		if scheduleConfigFile != "" {
			spec, err := config.Load(scheduleConfigFile)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			spec.ApplyDefaults(heuristic, flavor, taskXMLPath, topologyXMLPath, logLevel)
			heuristic, flavor = spec.Heuristic, spec.Flavor
			taskXMLPath, topologyXMLPath = spec.TaskXML, spec.TopologyXML
			logLevel = spec.LogLevel
		}

		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logrus.SetLevel(level)

		facade, err := scheduler.Lookup(heuristic, flavor)
		if err != nil {
			return err
		}

		taskXML, err := os.ReadFile(taskXMLPath)
		if err != nil {
			return fmt.Errorf("reading task xml: %w", err)
		}
		taskGraph, err := parser.ParseTaskXML(taskXML)
		if err != nil {
			return fmt.Errorf("parsing task xml: %w", err)
		}

		topologyXML, err := os.ReadFile(topologyXMLPath)
		if err != nil {
			return fmt.Errorf("reading topology xml: %w", err)
		}
		topologyGraph, err := parser.ParseTopologyXML(topologyXML)
		if err != nil {
			return fmt.Errorf("parsing topology xml: %w", err)
		}

		logrus.Infof("scheduling %d tasks over %d devices with %s/%s",
			taskGraph.TaskCount(), topologyGraph.DeviceCount(), heuristic, flavor)

		matchings, err := facade(topologyGraph, taskGraph)
		if err != nil {
			return fmt.Errorf("scheduling failed: %w", err)
		}
		for i, m := range matchings {
			fmt.Printf("%2d: %s\n", i, m)
		}
		return nil
	},
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleHeuristic, "heuristic", "heft", "Scheduling heuristic: heft, buyya")
	scheduleCmd.Flags().StringVar(&scheduleFlavor, "flavor", "serial", "Execution flavor: serial, cpu, gpu")
	scheduleCmd.Flags().StringVar(&scheduleTaskXML, "task-xml", "", "Path to the task-graph XML file")
	scheduleCmd.Flags().StringVar(&scheduleTopologyXML, "topology-xml", "", "Path to the topology XML file")
	scheduleCmd.Flags().StringVar(&scheduleConfigFile, "config", "", "Optional YAML config overriding the flags above")
	scheduleCmd.Flags().StringVar(&scheduleLogLevel, "log", "info", "Log level (debug, info, warn, error)")
}
