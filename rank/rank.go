// Package rank implements C3: the HEFT upward-ranking pass and the
// resulting priority ordering used to drive C4.
package rank

import (
	"math"
	"sort"

	"github.com/emachad0/paragraph-schedulers/computing"
	"github.com/emachad0/paragraph-schedulers/graph"
	"github.com/emachad0/paragraph-schedulers/model"
)

// MeanCompute is the arithmetic mean of computing.Time(d, t) over every
// device in topology.
func MeanCompute(topology *graph.TopologyGraph, t model.Task) float64 {
	sum := 0.0
	for _, d := range topology.Devices() {
		sum += computing.Time(d, t)
	}
	return sum / float64(topology.DeviceCount())
}

// MeanDistFactor sums dist[i][j] over every ordered device pair, including
// the zero diagonal. This is not actually divided by anything despite the
// name (spec.md §4.3, §9): it is reused unscaled as a single "average
// network" figure for every task edge.
func MeanDistFactor(dist [][]float64) float64 {
	sum := 0.0
	for _, row := range dist {
		for _, v := range row {
			sum += v
		}
	}
	return sum
}

// Upward computes the per-task upward rank: mean_compute(u) plus the
// longest weighted path to any sink, iterating a topological order of the
// task DAG in reverse so every successor of u is finished before u.
func Upward(topology *graph.TopologyGraph, tasks *graph.TaskGraph, dist [][]float64) ([]float64, error) {
	n := tasks.TaskCount()
	ranks := make([]float64, n)
	for u := 0; u < n; u++ {
		ranks[u] = MeanCompute(topology, tasks.Task(u))
	}

	order, err := tasks.Toposort()
	if err != nil {
		return nil, err
	}
	meanDist := MeanDistFactor(dist)

	for i := len(order) - 1; i >= 0; i-- {
		u := order[i]
		succs := tasks.Successors(u)
		best := 0.0
		for i, e := range succs {
			v := ranks[e.To] + meanDist*float64(e.Dep.DataSize)
			if i == 0 || v > best {
				best = v
			}
		}
		ranks[u] += best
	}
	return ranks, nil
}

// roundedRank pairs a task index with its rank rounded to the nearest
// integer, coarsening floating-point ties ahead of the sort below.
type roundedRank struct {
	rank int
	task int
}

// saturatingRound rounds to the nearest int, saturating instead of
// overflowing when a rank has gone to +/-Inf (e.g. an unreachable device
// partition drives mean_dist, and so every downstream rank, to infinity).
// Go's int(math.Round(r)) is undefined for out-of-range r; this keeps
// PrioritizedOrder well-defined even on inputs the scheduler will
// ultimately reject as unreachable.
func saturatingRound(r float64) int {
	switch {
	case math.IsInf(r, 1):
		return math.MaxInt
	case math.IsInf(r, -1):
		return math.MinInt
	default:
		return int(math.Round(r))
	}
}

// PrioritizedOrder sorts tasks by descending priority: ranks are rounded to
// the nearest integer, tasks are stable-sorted ascending by that integer,
// and the result is reversed. The sort input is in task-index order, so
// equal-rank ties come out in descending task index — this rounding step
// must be preserved exactly, or the reference fixtures drift (spec.md §9).
func PrioritizedOrder(ranks []float64) []int {
	items := make([]roundedRank, len(ranks))
	for u, r := range ranks {
		items[u] = roundedRank{rank: saturatingRound(r), task: u}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].rank < items[j].rank })

	order := make([]int, len(items))
	for i, it := range items {
		order[len(items)-1-i] = it.task
	}
	return order
}
