// Package parser implements the XML ingestion collaborators named in
// spec.md §6: thin adapters that build the in-memory task DAG and topology
// graph the scheduling kernel consumes. They are not part of the kernel's
// core budget, but a complete benchmark ships them.
package parser

import (
	"encoding/xml"
	"fmt"
)

// node is a generic XML element: any tag name, any attributes, any
// children, decoded without a fixed schema so the job/uses/child/parent
// structure can be walked the way the original parser walks a DOM tree.
type node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Nodes   []node     `xml:",any"`
}

func (n node) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n node) requireAttr(name string) (string, error) {
	v, ok := n.attr(name)
	if !ok {
		return "", fmt.Errorf("<%s>: missing %q attribute", n.XMLName.Local, name)
	}
	return v, nil
}

func parseRoot(data []byte) (node, error) {
	var root node
	if err := xml.Unmarshal(data, &root); err != nil {
		return node{}, fmt.Errorf("parsing XML: %w", err)
	}
	return root, nil
}
