// Package scheduler implements C5: the six scheduler façades
// ({heft,buyya} x {serial,parallel-cpu,parallel-gpu}), each a pure,
// synchronous function of its two graph inputs (spec.md §5, "Global
// state: none").
package scheduler

import (
	"errors"
	"fmt"

	"github.com/emachad0/paragraph-schedulers/assign"
	"github.com/emachad0/paragraph-schedulers/delay"
	"github.com/emachad0/paragraph-schedulers/graph"
	"github.com/emachad0/paragraph-schedulers/model"
	"github.com/emachad0/paragraph-schedulers/rank"
)

// ErrEmptyTopology is returned when the topology has no devices.
var ErrEmptyTopology = errors.New("scheduling requires at least one device")

// ErrUnreachablePartition is returned when the chosen assignment would
// require a communication delay the topology cannot provide (an
// inter-dependent task pair landed on disconnected partitions).
var ErrUnreachablePartition = errors.New("task depends on an unreachable device partition")

// delayFunc normalizes the three Floyd-Warshall flavors (Serial has no
// failure mode; the parallel ones can fail if a worker panics) to one
// signature the façades below can share.
type delayFunc func(adj [][]float64) ([][]float64, error)

func serialDelay(adj [][]float64) ([][]float64, error) { return delay.Serial(adj), nil }

func validate(topology *graph.TopologyGraph) error {
	if topology.DeviceCount() == 0 {
		return ErrEmptyTopology
	}
	return nil
}

func checkReachable(matchings []model.Matching) error {
	for _, m := range matchings {
		if m.FinishTime >= graph.Inf/2 {
			return ErrUnreachablePartition
		}
	}
	return nil
}

func heft(topology *graph.TopologyGraph, tasks *graph.TaskGraph, df delayFunc, scan assign.Scanner) ([]model.Matching, error) {
	if err := validate(topology); err != nil {
		return nil, err
	}
	dist, err := df(topology.AdjMatrix())
	if err != nil {
		return nil, fmt.Errorf("computing delay matrix: %w", err)
	}
	ranks, err := rank.Upward(topology, tasks, dist)
	if err != nil {
		return nil, fmt.Errorf("computing upward rank: %w", err)
	}
	order := rank.PrioritizedOrder(ranks)
	matchings, err := assign.Run(topology, tasks, dist, order, scan)
	if err != nil {
		return nil, fmt.Errorf("assigning tasks: %w", err)
	}
	if err := checkReachable(matchings); err != nil {
		return nil, err
	}
	return matchings, nil
}

func buyya(topology *graph.TopologyGraph, tasks *graph.TaskGraph, df delayFunc, scan assign.Scanner) ([]model.Matching, error) {
	if err := validate(topology); err != nil {
		return nil, err
	}
	dist, err := df(topology.AdjMatrix())
	if err != nil {
		return nil, fmt.Errorf("computing delay matrix: %w", err)
	}
	order, err := tasks.Toposort()
	if err != nil {
		return nil, fmt.Errorf("ordering tasks: %w", err)
	}
	matchings, err := assign.Run(topology, tasks, dist, order, scan)
	if err != nil {
		return nil, fmt.Errorf("assigning tasks: %w", err)
	}
	if err := checkReachable(matchings); err != nil {
		return nil, err
	}
	return matchings, nil
}

// HEFTSerial runs HEFT with a single-threaded Floyd-Warshall and scan.
func HEFTSerial(topology *graph.TopologyGraph, tasks *graph.TaskGraph) ([]model.Matching, error) {
	return heft(topology, tasks, serialDelay, assign.SerialScan)
}

// HEFTParallelCPU runs HEFT with a thread-pool Floyd-Warshall and
// per-device scan.
func HEFTParallelCPU(topology *graph.TopologyGraph, tasks *graph.TaskGraph) ([]model.Matching, error) {
	return heft(topology, tasks, delay.ParallelCPU, assign.ParallelScan)
}

// HEFTParallelGPU runs HEFT with the GPU-launch-simulated Floyd-Warshall;
// C3 and C4 still run on the host, per spec.md §4.6.
func HEFTParallelGPU(topology *graph.TopologyGraph, tasks *graph.TaskGraph) ([]model.Matching, error) {
	return heft(topology, tasks, delay.ParallelGPU, assign.SerialScan)
}

// BuyyaSerial runs the Buyya greedy assignment with a single-threaded
// Floyd-Warshall and scan.
func BuyyaSerial(topology *graph.TopologyGraph, tasks *graph.TaskGraph) ([]model.Matching, error) {
	return buyya(topology, tasks, serialDelay, assign.SerialScan)
}

// BuyyaParallelCPU runs the Buyya greedy assignment with a thread-pool
// Floyd-Warshall and per-device scan.
func BuyyaParallelCPU(topology *graph.TopologyGraph, tasks *graph.TaskGraph) ([]model.Matching, error) {
	return buyya(topology, tasks, delay.ParallelCPU, assign.ParallelScan)
}

// BuyyaParallelGPU runs the Buyya greedy assignment with the
// GPU-launch-simulated Floyd-Warshall.
func BuyyaParallelGPU(topology *graph.TopologyGraph, tasks *graph.TaskGraph) ([]model.Matching, error) {
	return buyya(topology, tasks, delay.ParallelGPU, assign.SerialScan)
}

// Facade is the common signature of all six scheduler entry points.
type Facade func(topology *graph.TopologyGraph, tasks *graph.TaskGraph) ([]model.Matching, error)

// facades indexes the six entry points by heuristic and flavor, so the CLI
// and benchmark harness can drive all of them without duplicating a
// switch statement.
var facades = map[string]map[string]Facade{
	"heft": {
		"serial": HEFTSerial,
		"cpu":    HEFTParallelCPU,
		"gpu":    HEFTParallelGPU,
	},
	"buyya": {
		"serial": BuyyaSerial,
		"cpu":    BuyyaParallelCPU,
		"gpu":    BuyyaParallelGPU,
	},
}

// Lookup resolves a (heuristic, flavor) pair to its façade, e.g.
// Lookup("heft", "gpu") -> HEFTParallelGPU.
func Lookup(heuristic, flavor string) (Facade, error) {
	byFlavor, ok := facades[heuristic]
	if !ok {
		return nil, fmt.Errorf("unknown heuristic %q; valid options: heft, buyya", heuristic)
	}
	f, ok := byFlavor[flavor]
	if !ok {
		return nil, fmt.Errorf("unknown flavor %q; valid options: serial, cpu, gpu", flavor)
	}
	return f, nil
}

// Heuristics lists the valid heuristic names, in stable iteration order.
func Heuristics() []string { return []string{"heft", "buyya"} }

// Flavors lists the valid flavor names, in stable iteration order.
func Flavors() []string { return []string{"serial", "cpu", "gpu"} }
