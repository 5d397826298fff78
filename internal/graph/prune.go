package graph

import (
	"fmt"
	"math"

	"github.com/heap-analysis/pkg/model"
)

// Prune filters the graph down to a relevance subgraph for visualization.
//
// A node survives when its retained bytes are at least
// floor(root_retained_bytes * threshold). Self-loops are removed and
// parallel edges between the same ordered pair are collapsed to one;
// node filtering surfaces redundant edges, so deduplication is a required
// step here regardless of how removal is implemented. Surviving nodes get
// fresh copies with the retained-size summary folded into their label;
// the input graph is left untouched.
func Prune(g *ReferenceGraph, retained map[uint64]model.Stats, threshold float64) *ReferenceGraph {
	var rootRetained model.Stats
	if root := g.Root(); root >= 0 {
		rootRetained = retained[g.Node(root).Address]
	}
	thresholdBytes := uint64(math.Floor(float64(rootRetained.Bytes) * threshold))

	pruned := NewReferenceGraph()
	kept := make([]int, len(g.nodes)) // old index -> new index, -1 = removed
	for i := range kept {
		kept[i] = -1
	}

	for i := 0; i < g.NodeCount(); i++ {
		obj := g.Node(i)
		stats := retained[obj.Address]
		if stats.Bytes < thresholdBytes {
			continue
		}
		kept[i] = pruned.AddNode(&model.MemoryObject{
			Address: obj.Address,
			Bytes:   obj.Bytes,
			Kind:    obj.Kind,
			Label: fmt.Sprintf("%s: %db self, %db refs, %d objects",
				obj.Display(), obj.Bytes, stats.Bytes-obj.Bytes, stats.Count),
		})
	}

	type edge struct{ from, to int }
	seen := make(map[edge]bool)

	for from := 0; from < g.NodeCount(); from++ {
		newFrom := kept[from]
		if newFrom < 0 {
			continue
		}
		for _, to := range g.Successors(from) {
			newTo := kept[to]
			if newTo < 0 || newFrom == newTo {
				continue
			}
			e := edge{from: newFrom, to: newTo}
			if seen[e] {
				continue
			}
			seen[e] = true
			pruned.AddEdge(newFrom, newTo)
		}
	}

	return pruned
}
