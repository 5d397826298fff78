// Package graph builds and analyzes the object reference graph: an
// address-keyed directed graph of memory objects with a single synthetic
// root, plus dominator-based retained-size analysis and relevance pruning.
package graph

import (
	"github.com/heap-analysis/pkg/model"
)

// ReferenceGraph is an arena-style directed graph. Nodes are stored in a
// flat slice and referenced by index; an address index maps object
// addresses to node indices. Parallel edges and self-loops are permitted.
//
// The graph is built once and then only read; no component mutates it
// after the builder's final rewrite pass.
type ReferenceGraph struct {
	nodes []*model.MemoryObject
	index map[uint64]int
	out   [][]int32
	edges int
}

// NewReferenceGraph creates an empty graph.
func NewReferenceGraph() *ReferenceGraph {
	return &ReferenceGraph{
		index: make(map[uint64]int),
	}
}

// AddNode inserts a node and returns its index. The caller must not add
// two nodes with the same address.
func (g *ReferenceGraph) AddNode(obj *model.MemoryObject) int {
	idx := len(g.nodes)
	g.nodes = append(g.nodes, obj)
	g.out = append(g.out, nil)
	g.index[obj.Address] = idx
	return idx
}

// AddEdge inserts a directed edge between two node indices. Duplicate
// edges are kept.
func (g *ReferenceGraph) AddEdge(from, to int) {
	g.out[from] = append(g.out[from], int32(to))
	g.edges++
}

// Node returns the node at the given index.
func (g *ReferenceGraph) Node(idx int) *model.MemoryObject {
	return g.nodes[idx]
}

// Lookup returns the node index for an address.
func (g *ReferenceGraph) Lookup(address uint64) (int, bool) {
	idx, ok := g.index[address]
	return idx, ok
}

// Root returns the index of the synthetic root node, or -1 if the graph
// has none (possible only for pruned subgraphs).
func (g *ReferenceGraph) Root() int {
	if idx, ok := g.index[model.RootAddress]; ok {
		return idx
	}
	return -1
}

// Successors returns the out-neighbors of a node, in insertion order.
func (g *ReferenceGraph) Successors(idx int) []int32 {
	return g.out[idx]
}

// NodeCount returns the number of nodes.
func (g *ReferenceGraph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges, counting parallel edges.
func (g *ReferenceGraph) EdgeCount() int {
	return g.edges
}
