// Package model holds the immutable attribute types attached to task-DAG
// and topology-graph nodes and edges, plus the per-task output record.
package model

import "fmt"

// Task is one node of the task DAG. Built once by a parser collaborator and
// never mutated afterward.
type Task struct {
	// DataSize is the aggregate input size in bytes.
	DataSize uint64
	// ProcessingDensity is seconds-equivalent per (byte x unit frequency).
	ProcessingDensity float64
	// ParallelFraction is the Amdahl parallelizable share, in [0,1].
	ParallelFraction float64
	// Pin optionally forces placement onto a specific device index.
	Pin *int
}

// Dependency is one directed edge of the task DAG, producer to consumer.
type Dependency struct {
	// DataSize is the number of bytes transferred along the edge.
	DataSize uint64
}

// Device is one node of the topology graph.
type Device struct {
	// NumberOfCores is the core count, always >= 1.
	NumberOfCores int
	// CPUFrequency, scaled so CPUFrequency*1e8 yields ops/sec under the
	// computing-time formula.
	CPUFrequency float64
}

// Transmission is one undirected edge of the topology graph.
type Transmission struct {
	// TransmissionRate, scaled so TransmissionRate*1e9 is the raw bytes/sec.
	TransmissionRate float64
}

// Matching is the per-task output record.
type Matching struct {
	// Node is the device index the task was assigned to.
	Node int
	// FinishTime is the time, in seconds, at which the task completes.
	FinishTime float64
}

// String renders a Matching the way the reference implementation does:
// "Node {d:2} Finish Time {t:8.5}".
func (m Matching) String() string {
	return fmt.Sprintf("Node %2d Finish Time %8.5f", m.Node, m.FinishTime)
}
