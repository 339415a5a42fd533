// Package assign implements C4: the greedy earliest-finish-time placement
// shared by both heuristics, driven by an externally supplied task order.
package assign

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/emachad0/paragraph-schedulers/computing"
	"github.com/emachad0/paragraph-schedulers/graph"
	"github.com/emachad0/paragraph-schedulers/model"
)

// ErrPinOutOfRange is returned when a task is pinned to a nonexistent
// device.
var ErrPinOutOfRange = fmt.Errorf("pin out of range")

// Scanner picks the device index in [0, n) minimizing trial, given the
// trial function for this task. It must break ties by preferring the
// lowest device index, matching a single left-to-right scan.
type Scanner func(n int, trial func(mu int) float64) (int, error)

// SerialScan evaluates every device in index order and keeps the first
// strictly-smaller trial value it sees.
func SerialScan(n int, trial func(mu int) float64) (int, error) {
	best := 0
	bestVal := trial(0)
	for mu := 1; mu < n; mu++ {
		v := trial(mu)
		if less(v, bestVal) {
			best, bestVal = mu, v
		}
	}
	return best, nil
}

// ParallelScan evaluates every device's trial value concurrently, then
// reduces sequentially in index order — identical tie-break behavior to
// SerialScan regardless of which goroutine finishes first. The candidate
// set is small, so this mainly demonstrates that the reduction is safe to
// parallelize; it still collapses any worker panic into a single error.
func ParallelScan(n int, trial func(mu int) float64) (int, error) {
	values := make([]float64, n)
	var g errgroup.Group
	for mu := 0; mu < n; mu++ {
		mu := mu
		g.Go(func() (err error) {
			defer recoverInto(&err)
			values[mu] = trial(mu)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	best := 0
	for mu := 1; mu < n; mu++ {
		if less(values[mu], values[best]) {
			best = mu
		}
	}
	return best, nil
}

func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("assign worker panic: %v", r)
	}
}

// less is a total order over finite floats, treating -0 < +0 (no NaNs are
// expected to reach here, per spec.md's NaN-free assumption).
func less(a, b float64) bool {
	if a != b {
		return a < b
	}
	return math.Signbit(a) && !math.Signbit(b)
}

// Run executes C4: for each task in order, pick the device minimizing the
// trial finish time (or honor task.Pin), record the matching, and advance
// that device's entry in the delay table. The delay table is read and
// written strictly sequentially in task order — only the per-device scan
// inside a single task is handed to scan.
func Run(topology *graph.TopologyGraph, tasks *graph.TaskGraph, dist [][]float64, order []int, scan Scanner) ([]model.Matching, error) {
	nDevices := topology.DeviceCount()
	assignments := make([]model.Matching, tasks.TaskCount())
	delayTable := make([]float64, nDevices)

	for _, u := range order {
		task := tasks.Task(u)
		preds := tasks.Predecessors(u)

		trial := func(mu int) float64 {
			ready := 0.0
			for i, e := range preds {
				mv := assignments[e.From].Node
				v := delayTable[mv] + dist[mu][mv]*float64(e.Dep.DataSize)
				if i == 0 || v > ready {
					ready = v
				}
			}
			start := ready
			if delayTable[mu] > start {
				start = delayTable[mu]
			}
			return start + computing.Time(topology.Device(mu), task)
		}

		var chosen int
		if task.Pin != nil {
			chosen = *task.Pin
			if chosen < 0 || chosen >= nDevices {
				return nil, fmt.Errorf("%w: task %d pinned to device %d, have %d devices", ErrPinOutOfRange, u, chosen, nDevices)
			}
		} else {
			var err error
			chosen, err = scan(nDevices, trial)
			if err != nil {
				return nil, err
			}
		}

		finish := trial(chosen)
		delayTable[chosen] = finish
		assignments[u] = model.Matching{Node: chosen, FinishTime: finish}
	}

	return assignments, nil
}
