package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heap-analysis/internal/parser/heapdump"
	"github.com/heap-analysis/pkg/model"
)

func object(address, bytes uint64, kind string, refs ...uint64) *heapdump.ParsedRecord {
	return &heapdump.ParsedRecord{
		Object:     &model.MemoryObject{Address: address, Bytes: bytes, Kind: kind},
		References: refs,
	}
}

func rootRecord(refs ...uint64) *heapdump.ParsedRecord {
	return &heapdump.ParsedRecord{
		Object:     model.NewRootObject(),
		References: refs,
	}
}

func TestBuild_NodesAndEdges(t *testing.T) {
	records := []*heapdump.ParsedRecord{
		rootRecord(0x1000),
		object(0x1000, 40, "OBJECT", 0x2000),
		object(0x2000, 80, "STRING"),
	}

	g := Build(records)

	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount())

	root := g.Root()
	require.Equal(t, 0, root)
	assert.True(t, g.Node(root).IsRoot())

	i, ok := g.Lookup(0x1000)
	require.True(t, ok)
	assert.Equal(t, []int32{int32(mustLookup(t, g, 0x2000))}, g.Successors(i))
}

func TestBuild_MergesRootRecords(t *testing.T) {
	records := []*heapdump.ParsedRecord{
		rootRecord(0x1000),
		rootRecord(0x2000),
		object(0x1000, 40, "OBJECT"),
		object(0x2000, 80, "STRING"),
	}

	g := Build(records)

	// Both root records collapse into the single synthetic root.
	assert.Equal(t, 3, g.NodeCount())
	assert.Len(t, g.Successors(g.Root()), 2)
}

func TestBuild_DropsDanglingReferences(t *testing.T) {
	records := []*heapdump.ParsedRecord{
		rootRecord(0x1000, 0x9999),
		object(0x1000, 40, "OBJECT", 0xdead),
	}

	g := Build(records)

	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.EdgeCount())
}

func TestBuild_KeepsParallelEdgesAndSelfLoops(t *testing.T) {
	records := []*heapdump.ParsedRecord{
		rootRecord(0x1000),
		object(0x1000, 40, "OBJECT", 0x2000, 0x2000, 0x1000),
		object(0x2000, 80, "STRING"),
	}

	g := Build(records)

	// The full graph preserves duplicates and self-loops; only the
	// pruner removes them.
	assert.Equal(t, 4, g.EdgeCount())
}

func TestBuild_KindRewriteFromClassName(t *testing.T) {
	records := []*heapdump.ParsedRecord{
		rootRecord(0x1000, 0x2000),
		{
			Object: &model.MemoryObject{Address: 0x1000, Bytes: 192, Kind: "CLASS", Label: "Widget[CLASS]"},
			Name:   "Widget",
		},
		{
			Object:    &model.MemoryObject{Address: 0x2000, Bytes: 40, Kind: "OBJECT"},
			Module:    0x1000,
			HasModule: true,
		},
	}

	g := Build(records)

	i := mustLookup(t, g, 0x2000)
	assert.Equal(t, "Widget", g.Node(i).Kind)

	// The class node itself keeps its kind.
	j := mustLookup(t, g, 0x1000)
	assert.Equal(t, "CLASS", g.Node(j).Kind)
}

func TestBuild_KindRewriteSkipsNamelessModule(t *testing.T) {
	records := []*heapdump.ParsedRecord{
		rootRecord(0x1000, 0x2000),
		{
			Object:    &model.MemoryObject{Address: 0x1000, Bytes: 40, Kind: "OBJECT"},
			Module:    0x2000,
			HasModule: true,
		},
		object(0x2000, 160, "HASH"),
	}

	g := Build(records)

	i := mustLookup(t, g, 0x1000)
	assert.Equal(t, "OBJECT", g.Node(i).Kind)
}

func mustLookup(t *testing.T, g *ReferenceGraph, address uint64) int {
	t.Helper()
	i, ok := g.Lookup(address)
	require.True(t, ok)
	return i
}
