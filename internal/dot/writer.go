// Package dot renders a reference graph in Graphviz DOT format for
// external rendering tools.
package dot

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/heap-analysis/internal/graph"
)

// Writer writes a reference graph in DOT format. Nodes are identified by
// address and rendered with their display label; edges are unlabeled.
type Writer struct{}

// NewWriter creates a new DOT format writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write writes the graph in DOT format.
func (w *Writer) Write(g *graph.ReferenceGraph, writer io.Writer) error {
	if _, err := fmt.Fprintln(writer, "digraph retention {"); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(writer, "  node [shape=box];"); err != nil {
		return err
	}

	for i := 0; i < g.NodeCount(); i++ {
		obj := g.Node(i)
		if _, err := fmt.Fprintf(writer, "  %d [label=\"%s\"];\n",
			obj.Address, escapeLabel(obj.Display())); err != nil {
			return err
		}
	}

	for from := 0; from < g.NodeCount(); from++ {
		fromAddr := g.Node(from).Address
		for _, to := range g.Successors(from) {
			if _, err := fmt.Fprintf(writer, "  %d -> %d;\n",
				fromAddr, g.Node(int(to)).Address); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintln(writer, "}"); err != nil {
		return err
	}

	return nil
}

// WriteToFile writes the graph in DOT format to a file.
func (w *Writer) WriteToFile(g *graph.ReferenceGraph, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return w.Write(g, file)
}

// escapeLabel escapes quotes in a label for DOT output. Backslashes were
// already replaced with a placeholder glyph at parse time.
func escapeLabel(label string) string {
	return strings.ReplaceAll(label, `"`, `\"`)
}
