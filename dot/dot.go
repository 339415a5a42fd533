// Package dot renders the task DAG and the topology graph as Graphviz DOT
// files, standing in for the original implementation's
// para_graph::graph::dot::to_dot collaborator (rebuilt from how the example
// driver calls it, not ported line by line).
package dot

import (
	"fmt"
	"os"
	"strings"

	"github.com/emachad0/paragraph-schedulers/graph"
)

// WriteTaskDOT renders the task DAG as a directed graph to "<name>.dot".
func WriteTaskDOT(name string, g *graph.TaskGraph) error {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %s {\n", name)
	for u := 0; u < g.TaskCount(); u++ {
		fmt.Fprintf(&b, "    %d;\n", u)
	}
	for u := 0; u < g.TaskCount(); u++ {
		for _, e := range g.Successors(u) {
			fmt.Fprintf(&b, "    %d -> %d [label=%q];\n", u, e.To, fmt.Sprintf("%d", e.Dep.DataSize))
		}
	}
	b.WriteString("}\n")
	return os.WriteFile(name+".dot", []byte(b.String()), 0o644)
}

// WriteTopologyDOT renders the topology as an undirected graph to
// "<name>.dot".
func WriteTopologyDOT(name string, g *graph.TopologyGraph) error {
	var b strings.Builder
	fmt.Fprintf(&b, "graph %s {\n", name)
	for d := 0; d < g.DeviceCount(); d++ {
		fmt.Fprintf(&b, "    %d;\n", d)
	}
	seen := make(map[[2]int]bool)
	// AdjMatrix already materializes the full symmetric weight table; reuse
	// it so the rendered edges match what the scheduler actually sees
	// instead of re-walking the underlying graph structure.
	adj := g.AdjMatrix()
	for a := 0; a < g.DeviceCount(); a++ {
		row := adj[a]
		for bIdx, w := range row {
			if a == bIdx || w >= graph.Inf/2 {
				continue
			}
			key := [2]int{a, bIdx}
			if a > bIdx {
				key = [2]int{bIdx, a}
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			fmt.Fprintf(&b, "    %d -- %d;\n", key[0], key[1])
		}
	}
	b.WriteString("}\n")
	return os.WriteFile(name+".dot", []byte(b.String()), 0o644)
}
