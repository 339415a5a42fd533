package parser

import (
	"fmt"
	"strconv"

	"github.com/emachad0/paragraph-schedulers/graph"
	"github.com/emachad0/paragraph-schedulers/model"
)

// ParseTaskXML builds the task DAG from a Pegasus-DAX-like document: root
// <job> elements (id, runtime -> processing_density) with nested <uses
// link="input|output" size="..."> children, followed by <child ref="...">
// elements whose nested <parent ref="..."> children are paired positionally
// with that job's input uses to create dependency edges.
func ParseTaskXML(data []byte) (*graph.TaskGraph, error) {
	root, err := parseRoot(data)
	if err != nil {
		return nil, err
	}

	g := graph.NewTaskGraph()
	indexes := map[string]int{}
	jobDeps := map[string][]model.Dependency{}

	for _, child := range root.Nodes {
		switch child.XMLName.Local {
		case "job":
			id, err := child.requireAttr("id")
			if err != nil {
				return nil, err
			}
			runtimeStr, err := child.requireAttr("runtime")
			if err != nil {
				return nil, err
			}
			processingDensity, err := strconv.ParseFloat(runtimeStr, 64)
			if err != nil {
				return nil, fmt.Errorf("job %q: invalid runtime %q: %w", id, runtimeStr, err)
			}

			var deps []model.Dependency
			var totalDataSize uint64
			for _, uses := range child.Nodes {
				if uses.XMLName.Local != "uses" {
					return nil, fmt.Errorf("job %q: unexpected tag <%s>", id, uses.XMLName.Local)
				}
				link, err := uses.requireAttr("link")
				if err != nil {
					return nil, err
				}
				sizeStr, err := uses.requireAttr("size")
				if err != nil {
					return nil, err
				}
				size, err := strconv.ParseUint(sizeStr, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("job %q: invalid size %q: %w", id, sizeStr, err)
				}
				if link == "input" {
					totalDataSize += size
					deps = append(deps, model.Dependency{DataSize: size})
				}
			}

			idx := g.AddTask(model.Task{
				DataSize:          totalDataSize,
				ProcessingDensity: processingDensity,
				ParallelFraction:  0,
				Pin:               nil,
			})
			indexes[id] = idx
			jobDeps[id] = deps

		case "child":
			childID, err := child.requireAttr("ref")
			if err != nil {
				return nil, err
			}
			childIdx, ok := indexes[childID]
			if !ok {
				return nil, fmt.Errorf("<child ref=%q>: job not found", childID)
			}
			deps, ok := jobDeps[childID]
			if !ok {
				return nil, fmt.Errorf("<child ref=%q>: no recorded dependencies", childID)
			}

			var parents []node
			for _, parent := range child.Nodes {
				if parent.XMLName.Local != "parent" {
					return nil, fmt.Errorf("<child ref=%q>: unexpected tag <%s>", childID, parent.XMLName.Local)
				}
				parents = append(parents, parent)
			}
			// The i-th <parent> is paired with the child's i-th input <uses>
			// by position. The XML format never documents that parent order
			// matches input-use order (spec.md §9 Open Question); a count
			// mismatch is treated as a hard error rather than silently
			// producing misaligned edge weights.
			if len(parents) != len(deps) {
				return nil, fmt.Errorf("<child ref=%q>: %d parents but %d input uses, cannot align positionally", childID, len(parents), len(deps))
			}
			for i, parent := range parents {
				parentID, err := parent.requireAttr("ref")
				if err != nil {
					return nil, err
				}
				parentIdx, ok := indexes[parentID]
				if !ok {
					return nil, fmt.Errorf("<parent ref=%q>: job not found", parentID)
				}
				if err := g.AddDependency(parentIdx, childIdx, deps[i]); err != nil {
					return nil, err
				}
			}

		default:
			return nil, fmt.Errorf("unexpected tag <%s>", child.XMLName.Local)
		}
	}

	return g, nil
}
