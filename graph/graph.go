// Package graph models the task DAG and the device topology as
// integer-indexed graphs (node ids 0..N-1, stable across a scheduling call),
// built on top of gonum's graph/simple containers the way the original
// implementation built them on petgraph.
package graph

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/emachad0/paragraph-schedulers/model"
)

// Inf is the sentinel "unreachable" distance, strictly larger than any
// representable finite path sum in this benchmark's inputs.
const Inf = math.MaxFloat64 / 4

// taskEdge carries a Dependency payload on a directed task-graph edge.
type taskEdge struct {
	f, t graph.Node
	Dep  model.Dependency
}

func (e taskEdge) From() graph.Node         { return e.f }
func (e taskEdge) To() graph.Node           { return e.t }
func (e taskEdge) ReversedEdge() graph.Edge { return taskEdge{f: e.t, t: e.f, Dep: e.Dep} }

// TaskGraph is the task DAG: node attributes are Tasks, edge attributes are
// Dependencies. Node ids are dense integers assigned in AddTask order.
type TaskGraph struct {
	g     *simple.DirectedGraph
	tasks []model.Task
}

// NewTaskGraph returns an empty task DAG.
func NewTaskGraph() *TaskGraph {
	return &TaskGraph{g: simple.NewDirectedGraph()}
}

// AddTask appends a task and returns its node index.
func (tg *TaskGraph) AddTask(t model.Task) int {
	id := int64(len(tg.tasks))
	tg.g.AddNode(simple.Node(id))
	tg.tasks = append(tg.tasks, t)
	return int(id)
}

// AddDependency adds the directed edge from -> to, carrying dep.
func (tg *TaskGraph) AddDependency(from, to int, dep model.Dependency) error {
	if err := tg.checkNode(from); err != nil {
		return err
	}
	if err := tg.checkNode(to); err != nil {
		return err
	}
	tg.g.SetEdge(taskEdge{f: simple.Node(from), t: simple.Node(to), Dep: dep})
	return nil
}

func (tg *TaskGraph) checkNode(id int) error {
	if id < 0 || id >= len(tg.tasks) {
		return fmt.Errorf("task index %d out of range [0,%d)", id, len(tg.tasks))
	}
	return nil
}

// TaskCount returns the number of task nodes.
func (tg *TaskGraph) TaskCount() int { return len(tg.tasks) }

// EdgeCount returns the number of dependency edges.
func (tg *TaskGraph) EdgeCount() int { return tg.g.Edges().Len() }

// Task returns the attributes of task u.
func (tg *TaskGraph) Task(u int) model.Task { return tg.tasks[u] }

// Tasks returns all task attributes, indexed by node id.
func (tg *TaskGraph) Tasks() []model.Task { return tg.tasks }

// PredEdge is one predecessor edge v -> u, from the perspective of u.
type PredEdge struct {
	From int
	Dep  model.Dependency
}

// Predecessors returns, snapshotted into a slice, every edge v -> u.
func (tg *TaskGraph) Predecessors(u int) []PredEdge {
	it := tg.g.To(int64(u))
	var out []PredEdge
	for it.Next() {
		v := it.Node().ID()
		e := tg.g.Edge(v, int64(u)).(taskEdge)
		out = append(out, PredEdge{From: int(v), Dep: e.Dep})
	}
	return out
}

// SuccEdge is one successor edge u -> v, from the perspective of u.
type SuccEdge struct {
	To  int
	Dep model.Dependency
}

// Successors returns, snapshotted into a slice, every edge u -> v.
func (tg *TaskGraph) Successors(u int) []SuccEdge {
	it := tg.g.From(int64(u))
	var out []SuccEdge
	for it.Next() {
		v := it.Node().ID()
		e := tg.g.Edge(int64(u), v).(taskEdge)
		out = append(out, SuccEdge{To: int(v), Dep: e.Dep})
	}
	return out
}

// ErrCyclic is returned by Toposort when the task graph is not a DAG.
var ErrCyclic = fmt.Errorf("task graph contains a cycle")

// Toposort returns a topological order of the task DAG, sources first.
// Ties are resolved by node id, so the same graph always yields the same
// order.
func (tg *TaskGraph) Toposort() ([]int, error) {
	nodes, err := topo.SortStabilized(tg.g, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCyclic, err)
	}
	out := make([]int, len(nodes))
	for i, n := range nodes {
		out[i] = int(n.ID())
	}
	return out, nil
}

// topoEdge carries a Transmission payload on an undirected topology edge.
type topoEdge struct {
	f, t  graph.Node
	Trans model.Transmission
}

func (e topoEdge) From() graph.Node         { return e.f }
func (e topoEdge) To() graph.Node           { return e.t }
func (e topoEdge) ReversedEdge() graph.Edge { return topoEdge{f: e.t, t: e.f, Trans: e.Trans} }

// TopologyGraph is the undirected device network: node attributes are
// Devices, edge attributes are Transmissions.
type TopologyGraph struct {
	g       *simple.UndirectedGraph
	devices []model.Device
}

// NewTopologyGraph returns an empty topology graph.
func NewTopologyGraph() *TopologyGraph {
	return &TopologyGraph{g: simple.NewUndirectedGraph()}
}

// AddDevice appends a device and returns its node index.
func (tp *TopologyGraph) AddDevice(d model.Device) int {
	id := int64(len(tp.devices))
	tp.g.AddNode(simple.Node(id))
	tp.devices = append(tp.devices, d)
	return int(id)
}

// AddTransmission adds the undirected edge between a and b, carrying t.
func (tp *TopologyGraph) AddTransmission(a, b int, t model.Transmission) error {
	if err := tp.checkNode(a); err != nil {
		return err
	}
	if err := tp.checkNode(b); err != nil {
		return err
	}
	tp.g.SetEdge(topoEdge{f: simple.Node(a), t: simple.Node(b), Trans: t})
	return nil
}

func (tp *TopologyGraph) checkNode(id int) error {
	if id < 0 || id >= len(tp.devices) {
		return fmt.Errorf("device index %d out of range [0,%d)", id, len(tp.devices))
	}
	return nil
}

// DeviceCount returns the number of device nodes.
func (tp *TopologyGraph) DeviceCount() int { return len(tp.devices) }

// EdgeCount returns the number of transmission edges.
func (tp *TopologyGraph) EdgeCount() int { return tp.g.Edges().Len() }

// Device returns the attributes of device d.
func (tp *TopologyGraph) Device(d int) model.Device { return tp.devices[d] }

// Devices returns all device attributes, indexed by node id.
func (tp *TopologyGraph) Devices() []model.Device { return tp.devices }

// AdjMatrix builds the N x N seconds-per-byte weight matrix that C2 (package
// delay) runs Floyd-Warshall over: self-loops are 0, missing edges are Inf,
// present edges are 1/(transmission_rate*1e9).
func (tp *TopologyGraph) AdjMatrix() [][]float64 {
	n := tp.DeviceCount()
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		for j := range m[i] {
			if i == j {
				m[i][j] = 0
			} else {
				m[i][j] = Inf
			}
		}
	}
	for i := 0; i < n; i++ {
		it := tp.g.From(int64(i))
		for it.Next() {
			j := int(it.Node().ID())
			e := tp.g.Edge(int64(i), int64(j)).(topoEdge)
			w := 1. / (e.Trans.TransmissionRate * 1e9)
			m[i][j] = w
		}
	}
	return m
}
