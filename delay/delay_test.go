package delay

import (
	"math"
	"testing"

	"github.com/emachad0/paragraph-schedulers/graph"
)

func testAdj() [][]float64 {
	inf := graph.Inf
	return [][]float64{
		{0, 1, inf},
		{1, 0, 1},
		{inf, 1, 0},
	}
}

func TestSerial_ShortestPathThroughMiddleNode(t *testing.T) {
	dist := Serial(testAdj())
	if dist[0][2] != 2 {
		t.Errorf("dist[0][2] = %v, want 2", dist[0][2])
	}
	if dist[2][0] != 2 {
		t.Errorf("dist[2][0] = %v, want 2", dist[2][0])
	}
}

func TestSerial_DoesNotMutateInput(t *testing.T) {
	adj := testAdj()
	_ = Serial(adj)
	if adj[0][2] != graph.Inf {
		t.Errorf("Serial mutated its input matrix")
	}
}

func TestFlavorsAgree(t *testing.T) {
	adj := testAdj()
	serial := Serial(adj)
	cpu, err := ParallelCPU(adj)
	if err != nil {
		t.Fatalf("ParallelCPU: %v", err)
	}
	gpu, err := ParallelGPU(adj)
	if err != nil {
		t.Fatalf("ParallelGPU: %v", err)
	}
	for i := range serial {
		for j := range serial[i] {
			if serial[i][j] != cpu[i][j] {
				t.Errorf("serial[%d][%d]=%v cpu[%d][%d]=%v", i, j, serial[i][j], i, j, cpu[i][j])
			}
			if serial[i][j] != gpu[i][j] {
				t.Errorf("serial[%d][%d]=%v gpu[%d][%d]=%v", i, j, serial[i][j], i, j, gpu[i][j])
			}
		}
	}
}

func TestFlavorsAgree_LargerPatternedGraph(t *testing.T) {
	// GIVEN a larger, denser weight matrix with a deterministic pattern
	// (avoiding math/rand keeps this test itself deterministic)
	const n = 12
	adj := make([][]float64, n)
	for i := range adj {
		adj[i] = make([]float64, n)
		for j := range adj[i] {
			switch {
			case i == j:
				adj[i][j] = 0
			case (i+j)%3 == 0:
				adj[i][j] = math.Abs(float64(i-j)) + 0.5
			default:
				adj[i][j] = graph.Inf
			}
		}
	}

	serial := Serial(adj)
	cpu, err := ParallelCPU(adj)
	if err != nil {
		t.Fatalf("ParallelCPU: %v", err)
	}
	gpu, err := ParallelGPU(adj)
	if err != nil {
		t.Fatalf("ParallelGPU: %v", err)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if serial[i][j] != cpu[i][j] || serial[i][j] != gpu[i][j] {
				t.Fatalf("flavor mismatch at [%d][%d]: serial=%v cpu=%v gpu=%v", i, j, serial[i][j], cpu[i][j], gpu[i][j])
			}
		}
	}
}

func TestEmptyMatrix(t *testing.T) {
	dist := Serial(nil)
	if len(dist) != 0 {
		t.Errorf("Serial(nil) = %v, want empty", dist)
	}
	if _, err := ParallelCPU(nil); err != nil {
		t.Errorf("ParallelCPU(nil) returned error: %v", err)
	}
	if _, err := ParallelGPU(nil); err != nil {
		t.Errorf("ParallelGPU(nil) returned error: %v", err)
	}
}
