package graph

import (
	"github.com/heap-analysis/pkg/model"
)

// ComputeRetainedStats builds the retained-size table: address -> Stats,
// where an entry holds the node's own stats plus the stats of every node
// it dominates. The root's entry therefore sums every reachable node's
// stats exactly once.
//
// Every node seeds the table with its own stats, reachable or not, so
// orphaned objects still show up in reporting with their self size.
// Propagation happens only along the dominator tree.
func ComputeRetainedStats(g *ReferenceGraph, tree *DominatorTree) map[uint64]model.Stats {
	n := g.NodeCount()

	acc := make([]model.Stats, n)
	for i := 0; i < n; i++ {
		acc[i] = g.Node(i).Stats()
	}

	// Children have strictly larger DFS numbers than their immediate
	// dominator, so a reverse sweep accumulates the dominator tree
	// bottom-up in one pass.
	for i := tree.n; i >= 2; i-- {
		v := tree.vertex[i]
		if dom := tree.idom[v]; dom >= 0 {
			acc[dom] = acc[dom].Add(acc[v])
		}
	}

	retained := make(map[uint64]model.Stats, n)
	for i := 0; i < n; i++ {
		retained[g.Node(i).Address] = acc[i]
	}
	return retained
}
