package dot

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heap-analysis/internal/graph"
	"github.com/heap-analysis/pkg/model"
)

func buildTestGraph() *graph.ReferenceGraph {
	g := graph.NewReferenceGraph()
	root := g.AddNode(model.NewRootObject())
	a := g.AddNode(&model.MemoryObject{Address: 0x1000, Bytes: 40, Kind: "OBJECT", Label: "Widget: 40b self, 0b refs, 1 objects"})
	g.AddEdge(root, a)
	return g
}

func TestWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	err := NewWriter().Write(buildTestGraph(), &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.True(t, strings.HasPrefix(output, "digraph retention {"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(output), "}"))
	assert.Contains(t, output, `0 [label="root"];`)
	assert.Contains(t, output, `4096 [label="Widget: 40b self, 0b refs, 1 objects"];`)
	assert.Contains(t, output, "0 -> 4096;")
}

func TestWriter_Write_EscapesQuotes(t *testing.T) {
	g := graph.NewReferenceGraph()
	g.AddNode(&model.MemoryObject{Address: 1, Kind: "STRING", Label: `say "hi"`})

	var buf bytes.Buffer
	err := NewWriter().Write(g, &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `[label="say \"hi\""];`)
}

func TestWriter_WriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.dot")

	err := NewWriter().WriteToFile(buildTestGraph(), path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph retention {")
}
