package formatter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heap-analysis/pkg/model"
)

func TestConsoleFormatter_Format(t *testing.T) {
	resp := &model.AnalysisResponse{
		TopKinds: []model.StatsEntry{
			{Key: "STRING", Stats: model.Stats{Count: 2, Bytes: 136}},
			{Key: "ARRAY", Stats: model.Stats{Count: 1, Bytes: 120}},
			{Key: "...", Stats: model.Stats{Count: 3, Bytes: 42}},
		},
		TopRetainers: []model.StatsEntry{
			{Key: "root", Stats: model.Stats{Count: 5, Bytes: 432}},
			{Key: "...", Stats: model.Stats{}},
		},
	}

	var buf bytes.Buffer
	err := NewConsoleFormatter().Format(resp, &buf)
	require.NoError(t, err)

	expected := `Object types using the most memory:
STRING: 136 bytes (2 objects)
ARRAY: 120 bytes (1 objects)
...: 42 bytes (3 objects)

Objects retaining the most memory:
root: 432 bytes (5 objects)
...: 0 bytes (0 objects)
`
	assert.Equal(t, expected, buf.String())
}

func TestConsoleFormatter_FormatSummary(t *testing.T) {
	resp := &model.AnalysisResponse{
		TaskUUID:     "abc",
		NodeCount:    8,
		EdgeCount:    8,
		RootRetained: model.Stats{Count: 5, Bytes: 432},
	}

	summary := NewConsoleFormatter().FormatSummary(resp)

	assert.Equal(t, "abc", summary["task_uuid"])
	assert.Equal(t, 8, summary["node_count"])
	assert.Equal(t, uint64(432), summary["root_retained_bytes"])
	assert.NotContains(t, summary, "dot_file")
}

func TestConsoleFormatter_FormatSummary_WithDotExport(t *testing.T) {
	resp := &model.AnalysisResponse{
		DotFile:         "/tmp/out.dot",
		PrunedNodeCount: 7,
		PrunedEdgeCount: 6,
	}

	summary := NewConsoleFormatter().FormatSummary(resp)

	assert.Equal(t, "/tmp/out.dot", summary["dot_file"])
	assert.Equal(t, 7, summary["pruned_node_count"])
	assert.Equal(t, 6, summary["pruned_edge_count"])
}
