package rank

import (
	"math"
	"testing"

	"github.com/emachad0/paragraph-schedulers/graph"
	"github.com/emachad0/paragraph-schedulers/model"
)

func TestMeanCompute_AveragesAcrossDevices(t *testing.T) {
	topo := graph.NewTopologyGraph()
	topo.AddDevice(model.Device{NumberOfCores: 1, CPUFrequency: 1})
	topo.AddDevice(model.Device{NumberOfCores: 1, CPUFrequency: 2})

	task := model.Task{DataSize: 1, ProcessingDensity: 1e8, ParallelFraction: 0}
	// device 0 takes 1s, device 1 takes 0.5s
	got := MeanCompute(topo, task)
	want := (1.0 + 0.5) / 2
	if got != want {
		t.Errorf("MeanCompute() = %v, want %v", got, want)
	}
}

func TestMeanDistFactor_SumsEveryPairIncludingDiagonal(t *testing.T) {
	dist := [][]float64{
		{0, 1, 2},
		{1, 0, 3},
		{2, 3, 0},
	}
	got := MeanDistFactor(dist)
	want := 0. + 1 + 2 + 1 + 0 + 3 + 2 + 3 + 0
	if got != want {
		t.Errorf("MeanDistFactor() = %v, want %v (unscaled sum, not an average)", got, want)
	}
}

// buildChain builds a 3-task linear chain A -> B -> C on a single device, so
// every mean_compute and mean_dist term is trivially known by hand.
func buildChain(t *testing.T) (*graph.TopologyGraph, *graph.TaskGraph) {
	t.Helper()
	topo := graph.NewTopologyGraph()
	topo.AddDevice(model.Device{NumberOfCores: 1, CPUFrequency: 1})

	tasks := graph.NewTaskGraph()
	a := tasks.AddTask(model.Task{DataSize: 1, ProcessingDensity: 1e8, ParallelFraction: 0})
	b := tasks.AddTask(model.Task{DataSize: 1, ProcessingDensity: 1e8, ParallelFraction: 0})
	c := tasks.AddTask(model.Task{DataSize: 1, ProcessingDensity: 1e8, ParallelFraction: 0})
	if err := tasks.AddDependency(a, b, model.Dependency{DataSize: 2}); err != nil {
		t.Fatal(err)
	}
	if err := tasks.AddDependency(b, c, model.Dependency{DataSize: 2}); err != nil {
		t.Fatal(err)
	}
	return topo, tasks
}

func TestUpward_SinkRankIsJustItsOwnComputeTime(t *testing.T) {
	topo, tasks := buildChain(t)
	dist := [][]float64{{0}}

	ranks, err := Upward(topo, tasks, dist)
	if err != nil {
		t.Fatalf("Upward: %v", err)
	}
	// task C (index 2) has no successors: its rank is exactly its own
	// mean_compute (1 second on the single device).
	if ranks[2] != 1 {
		t.Errorf("sink rank = %v, want 1", ranks[2])
	}
	// task A's rank must be strictly greater than task C's: it sits upstream
	// of two more seconds of compute plus communication.
	if ranks[0] <= ranks[2] {
		t.Errorf("upstream rank %v should exceed downstream rank %v", ranks[0], ranks[2])
	}
}

func TestPrioritizedOrder_DescendingByRoundedRank(t *testing.T) {
	ranks := []float64{1.0, 5.0, 3.0}
	order := PrioritizedOrder(ranks)
	want := []int{1, 2, 0}
	if len(order) != len(want) {
		t.Fatalf("PrioritizedOrder() = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("PrioritizedOrder() = %v, want %v", order, want)
			break
		}
	}
}

func TestPrioritizedOrder_RoundingCoarsensTies(t *testing.T) {
	// 1.4 and 1.6 both round to the nearest integers 1 and 2 respectively,
	// but 1.49 and 1.51 straddle the 1/2 boundary too: the point of this
	// test is that two ranks within the same rounded bucket keep their
	// relative (stable-sort) order rather than being re-sorted by the raw
	// float value.
	ranks := []float64{2.49, 2.4}
	order := PrioritizedOrder(ranks)
	// both round to 2, so the stable sort preserves [0, 1], reversed to [1, 0]
	// (a descending sort on the raw floats would give [0, 1])
	want := []int{1, 0}
	if order[0] != want[0] || order[1] != want[1] {
		t.Errorf("PrioritizedOrder() = %v, want %v", order, want)
	}
}

func TestPrioritizedOrder_InfiniteRankDoesNotPanicOrOverflow(t *testing.T) {
	// An unreachable partition can drive a rank to +Inf; PrioritizedOrder
	// must still return a well-defined order instead of relying on Go's
	// undefined int(+Inf) conversion.
	ranks := []float64{1.0, math.Inf(1), 2.0}
	order := PrioritizedOrder(ranks)
	if order[0] != 1 {
		t.Errorf("PrioritizedOrder() = %v, want the +Inf rank task (1) to sort first", order)
	}
}
