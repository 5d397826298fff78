package graph

import (
	"github.com/heap-analysis/internal/parser/heapdump"
	"github.com/heap-analysis/pkg/model"
)

// Build constructs the reference graph from parsed dump records.
//
// Three passes over the records:
//  1. node creation: the synthetic root goes in first; every root record's
//     reference list is merged into it instead of becoming a node.
//  2. edge resolution: references to addresses never seen as nodes are
//     dangling and dropped silently.
//  3. kind rewrite: an object that declared a class address takes over
//     that class node's declared name as its kind, so instances report
//     their runtime class instead of a generic tag.
func Build(records []*heapdump.ParsedRecord) *ReferenceGraph {
	g := NewReferenceGraph()
	g.AddNode(model.NewRootObject())

	references := make(map[uint64][]uint64, len(records))
	modules := make(map[uint64]uint64)
	names := make(map[uint64]string)

	for _, record := range records {
		if record.IsRoot() {
			references[model.RootAddress] = append(references[model.RootAddress], record.References...)
			continue
		}

		address := record.Object.Address
		g.AddNode(record.Object)

		if len(record.References) > 0 {
			references[address] = record.References
		}
		if record.HasModule {
			modules[address] = record.Module
		}
		if record.Name != "" {
			names[address] = record.Name
		}
	}

	for address, refs := range references {
		from, ok := g.Lookup(address)
		if !ok {
			continue
		}
		for _, ref := range refs {
			if to, ok := g.Lookup(ref); ok {
				g.AddEdge(from, to)
			}
		}
	}

	for i := 0; i < g.NodeCount(); i++ {
		obj := g.Node(i)
		if module, ok := modules[obj.Address]; ok {
			if name, ok := names[module]; ok {
				obj.Kind = name
			}
		}
	}

	return g
}
