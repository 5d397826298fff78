// Package statistics aggregates per-object stats into the ranked reports
// the analyzer emits.
package statistics

import (
	"sort"

	"github.com/heap-analysis/internal/graph"
	"github.com/heap-analysis/pkg/model"
)

// StatsByKind folds every node's stats into a per-kind table. The fold is
// order-independent and total over all nodes regardless of reachability.
func StatsByKind(g *graph.ReferenceGraph) map[string]model.Stats {
	byKind := make(map[string]model.Stats)
	for i := 0; i < g.NodeCount(); i++ {
		obj := g.Node(i)
		byKind[obj.Kind] = byKind[obj.Kind].Add(obj.Stats())
	}
	return byKind
}

// RetainedEntries renders the retained table as one entry per node,
// keyed by the node's display label. The key is presentation only:
// nodes sharing a label stay separate entries, since one node's retained
// stats can already contain another's and merging would double-count.
func RetainedEntries(g *graph.ReferenceGraph, retained map[uint64]model.Stats) []model.StatsEntry {
	entries := make([]model.StatsEntry, 0, g.NodeCount())
	for i := 0; i < g.NodeCount(); i++ {
		obj := g.Node(i)
		entries = append(entries, model.StatsEntry{Key: obj.Display(), Stats: retained[obj.Address]})
	}
	return entries
}

// TopN orders a stats table descending by byte count and returns the top
// k entries plus the aggregated remainder. Ties break arbitrarily. With k
// or fewer entries the remainder is the zero Stats.
func TopN(table map[string]model.Stats, k int) ([]model.StatsEntry, model.Stats) {
	entries := make([]model.StatsEntry, 0, len(table))
	for key, stats := range table {
		entries = append(entries, model.StatsEntry{Key: key, Stats: stats})
	}
	return TopNEntries(entries, k)
}

// TopNEntries ranks entries descending by byte count and returns the top
// k plus the aggregated remainder. The input slice is left untouched.
func TopNEntries(entries []model.StatsEntry, k int) ([]model.StatsEntry, model.Stats) {
	ranked := make([]model.StatsEntry, len(entries))
	copy(ranked, entries)

	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].Stats.Bytes > ranked[j].Stats.Bytes
	})

	if k > len(ranked) {
		k = len(ranked)
	}

	remainder := model.ZeroStats
	for _, entry := range ranked[k:] {
		remainder = remainder.Add(entry.Stats)
	}

	return ranked[:k], remainder
}
