// Command schedexample is the literal example driver from spec.md §6: a
// two-argument, flag-free binary that parses a task graph and a topology,
// runs the Buyya scheduler, prints the matchings, and emits Graphviz DOT
// files. It is the Go port of original_source/examples/buyya.rs, kept as a
// separate binary the way the Rust workspace keeps examples/buyya.rs
// outside the benchmarked library.
package main

import (
	"fmt"
	"os"

	"github.com/emachad0/paragraph-schedulers/dot"
	"github.com/emachad0/paragraph-schedulers/parser"
	"github.com/emachad0/paragraph-schedulers/scheduler"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <task_xml> <topology_xml>\n", os.Args[0])
		os.Exit(1)
	}

	taskXMLFile, topologyXMLFile := os.Args[1], os.Args[2]

	taskXML, err := os.ReadFile(taskXMLFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read XML file: %v\n", err)
		os.Exit(1)
	}
	taskGraph, err := parser.ParseTaskXML(taskXML)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse task XML: %v\n", err)
		os.Exit(1)
	}

	topologyXML, err := os.ReadFile(topologyXMLFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read XML file: %v\n", err)
		os.Exit(1)
	}
	topologyGraph, err := parser.ParseTopologyXML(topologyXML)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse topology XML: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Task graph: Nodes=%d Edges=%d\n", taskGraph.TaskCount(), taskGraph.EdgeCount())
	fmt.Printf("Topology graph: Nodes=%d Edges=%d\n", topologyGraph.DeviceCount(), topologyGraph.EdgeCount())

	matching, err := scheduler.BuyyaParallelCPU(topologyGraph, taskGraph)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Scheduling failed: %v\n", err)
		os.Exit(1)
	}
	for i, m := range matching {
		fmt.Printf("%2d: %s\n", i, m)
	}

	if err := dot.WriteTaskDOT("task", taskGraph); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write task.dot: %v\n", err)
		os.Exit(1)
	}
	if err := dot.WriteTopologyDOT("topology", topologyGraph); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write topology.dot: %v\n", err)
		os.Exit(1)
	}
}
