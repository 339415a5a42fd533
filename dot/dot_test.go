package dot

import (
	"os"
	"strings"
	"testing"

	"github.com/emachad0/paragraph-schedulers/graph"
	"github.com/emachad0/paragraph-schedulers/model"
)

func TestWriteTaskDOT(t *testing.T) {
	g := graph.NewTaskGraph()
	a := g.AddTask(model.Task{})
	b := g.AddTask(model.Task{})
	if err := g.AddDependency(a, b, model.Dependency{DataSize: 42}); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	name := dir + "/task"
	if err := WriteTaskDOT(name, g); err != nil {
		t.Fatalf("WriteTaskDOT: %v", err)
	}
	data, err := os.ReadFile(name + ".dot")
	if err != nil {
		t.Fatalf("reading dot file: %v", err)
	}
	contents := string(data)
	if !strings.HasPrefix(contents, "digraph") {
		t.Errorf("expected a digraph declaration, got:\n%s", contents)
	}
	if !strings.Contains(contents, "0 -> 1") {
		t.Errorf("expected edge 0 -> 1, got:\n%s", contents)
	}
	if !strings.Contains(contents, `"42"`) {
		t.Errorf("expected DataSize label 42, got:\n%s", contents)
	}
}

func TestWriteTopologyDOT_DedupsUndirectedEdges(t *testing.T) {
	g := graph.NewTopologyGraph()
	d0 := g.AddDevice(model.Device{NumberOfCores: 1, CPUFrequency: 1})
	d1 := g.AddDevice(model.Device{NumberOfCores: 1, CPUFrequency: 1})
	if err := g.AddTransmission(d0, d1, model.Transmission{TransmissionRate: 1}); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	name := dir + "/topology"
	if err := WriteTopologyDOT(name, g); err != nil {
		t.Fatalf("WriteTopologyDOT: %v", err)
	}
	data, err := os.ReadFile(name + ".dot")
	if err != nil {
		t.Fatalf("reading dot file: %v", err)
	}
	contents := string(data)
	if strings.Count(contents, "--") != 1 {
		t.Errorf("expected exactly one undirected edge line, got:\n%s", contents)
	}
}
