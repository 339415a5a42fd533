package parser

import (
	"fmt"
	"strconv"

	"github.com/emachad0/paragraph-schedulers/graph"
	"github.com/emachad0/paragraph-schedulers/model"
)

// ParseTopologyXML builds the device topology from the same job/uses/
// child/parent document shape ParseTaskXML consumes (the production format
// reuses one workflow schema for both task and topology descriptions): a
// job's runtime/1000 becomes cpu_frequency, every device has exactly one
// core, and a use's size becomes transmission_rate (size/1e9).
func ParseTopologyXML(data []byte) (*graph.TopologyGraph, error) {
	root, err := parseRoot(data)
	if err != nil {
		return nil, err
	}

	g := graph.NewTopologyGraph()
	indexes := map[string]int{}
	edgeDeps := map[string][]model.Transmission{}

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
			runtime, err := strconv.ParseFloat(runtimeStr, 64)
			if err != nil {
				return nil, fmt.Errorf("job %q: invalid runtime %q: %w", id, runtimeStr, err)
			}

			var deps []model.Transmission
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
				size, err := strconv.ParseFloat(sizeStr, 64)
				if err != nil {
					return nil, fmt.Errorf("job %q: invalid size %q: %w", id, sizeStr, err)
				}
				if link == "input" {
					deps = append(deps, model.Transmission{TransmissionRate: size / 1e9})
				}
			}

			idx := g.AddDevice(model.Device{
				NumberOfCores: 1,
				CPUFrequency:  runtime / 1000.,
			})
			indexes[id] = idx
			edgeDeps[id] = deps

		case "child":
			childID, err := child.requireAttr("ref")
			if err != nil {
				return nil, err
			}
			childIdx, ok := indexes[childID]
			if !ok {
				return nil, fmt.Errorf("<child ref=%q>: device not found", childID)
			}
			deps, ok := edgeDeps[childID]
			if !ok {
				return nil, fmt.Errorf("<child ref=%q>: no recorded transmissions", childID)
			}

			var parents []node
			for _, parent := range child.Nodes {
				if parent.XMLName.Local != "parent" {
					return nil, fmt.Errorf("<child ref=%q>: unexpected tag <%s>", childID, parent.XMLName.Local)
				}
				parents = append(parents, parent)
			}
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
					return nil, fmt.Errorf("<parent ref=%q>: device not found", parentID)
				}
				if err := g.AddTransmission(parentIdx, childIdx, deps[i]); err != nil {
					return nil, err
				}
			}

		default:
			return nil, fmt.Errorf("unexpected tag <%s>", child.XMLName.Local)
		}
	}

	return g, nil
}
