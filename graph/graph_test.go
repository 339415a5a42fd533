package graph

import (
	"errors"
	"testing"

	"github.com/emachad0/paragraph-schedulers/model"
)

func TestTaskGraph_PredecessorsAndSuccessors(t *testing.T) {
	g := NewTaskGraph()
	a := g.AddTask(model.Task{DataSize: 1})
	b := g.AddTask(model.Task{DataSize: 2})
	c := g.AddTask(model.Task{DataSize: 3})
	if err := g.AddDependency(a, b, model.Dependency{DataSize: 10}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddDependency(a, c, model.Dependency{DataSize: 20}); err != nil {
		t.Fatal(err)
	}

	succ := g.Successors(a)
	if len(succ) != 2 {
		t.Fatalf("Successors(a) = %v, want 2 entries", succ)
	}
	pred := g.Predecessors(b)
	if len(pred) != 1 || pred[0].From != a || pred[0].Dep.DataSize != 10 {
		t.Errorf("Predecessors(b) = %v, want [{From: a, Dep: {10}}]", pred)
	}

	if g.TaskCount() != 3 {
		t.Errorf("TaskCount() = %d, want 3", g.TaskCount())
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestTaskGraph_AddDependencyOutOfRange(t *testing.T) {
	g := NewTaskGraph()
	g.AddTask(model.Task{})
	if err := g.AddDependency(0, 5, model.Dependency{}); err == nil {
		t.Errorf("AddDependency with out-of-range target should error")
	}
}

func TestTaskGraph_ToposortDetectsCycle(t *testing.T) {
	g := NewTaskGraph()
	a := g.AddTask(model.Task{})
	b := g.AddTask(model.Task{})
	if err := g.AddDependency(a, b, model.Dependency{}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddDependency(b, a, model.Dependency{}); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Toposort(); !errors.Is(err, ErrCyclic) {
		t.Errorf("Toposort() error = %v, want ErrCyclic", err)
	}
}

func TestTaskGraph_ToposortOrdersSourceBeforeSink(t *testing.T) {
	g := NewTaskGraph()
	a := g.AddTask(model.Task{})
	b := g.AddTask(model.Task{})
	if err := g.AddDependency(a, b, model.Dependency{}); err != nil {
		t.Fatal(err)
	}
	order, err := g.Toposort()
	if err != nil {
		t.Fatalf("Toposort: %v", err)
	}
	posA, posB := -1, -1
	for i, u := range order {
		if u == a {
			posA = i
		}
		if u == b {
			posB = i
		}
	}
	if posA >= posB {
		t.Errorf("Toposort() = %v, want %d before %d", order, a, b)
	}
}

func TestTopologyGraph_AdjMatrix(t *testing.T) {
	g := NewTopologyGraph()
	d0 := g.AddDevice(model.Device{NumberOfCores: 1, CPUFrequency: 1})
	d1 := g.AddDevice(model.Device{NumberOfCores: 1, CPUFrequency: 1})
	d2 := g.AddDevice(model.Device{NumberOfCores: 1, CPUFrequency: 1})
	if err := g.AddTransmission(d0, d1, model.Transmission{TransmissionRate: 1}); err != nil {
		t.Fatal(err)
	}

	adj := g.AdjMatrix()
	if adj[d0][d0] != 0 {
		t.Errorf("adj[d0][d0] = %v, want 0", adj[d0][d0])
	}
	want := 1. / (1 * 1e9)
	if adj[d0][d1] != want || adj[d1][d0] != want {
		t.Errorf("adj[d0][d1]/[d1][d0] = %v/%v, want %v (symmetric)", adj[d0][d1], adj[d1][d0], want)
	}
	if adj[d0][d2] != Inf {
		t.Errorf("adj[d0][d2] = %v, want Inf (no edge)", adj[d0][d2])
	}

	if g.DeviceCount() != 3 {
		t.Errorf("DeviceCount() = %d, want 3", g.DeviceCount())
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}
