// Package formatter renders analysis results for the console and for the
// machine-readable run summary.
package formatter

import (
	"fmt"
	"io"

	"github.com/heap-analysis/pkg/model"
)

// ConsoleFormatter writes the two ranked reports to a writer, one row per
// entry in "<label>: <bytes> bytes (<count> objects)" form.
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter.
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// Format writes both reports to the writer.
func (f *ConsoleFormatter) Format(resp *model.AnalysisResponse, w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Object types using the most memory:"); err != nil {
		return err
	}
	if err := f.writeReport(w, resp.TopKinds); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "Objects retaining the most memory:"); err != nil {
		return err
	}
	return f.writeReport(w, resp.TopRetainers)
}

func (f *ConsoleFormatter) writeReport(w io.Writer, entries []model.StatsEntry) error {
	for _, entry := range entries {
		if _, err := fmt.Fprintf(w, "%s: %d bytes (%d objects)\n",
			entry.Key, entry.Stats.Bytes, entry.Stats.Count); err != nil {
			return err
		}
	}
	return nil
}

// FormatSummary returns a summary map for serialization.
func (f *ConsoleFormatter) FormatSummary(resp *model.AnalysisResponse) map[string]interface{} {
	summary := map[string]interface{}{
		"task_uuid":           resp.TaskUUID,
		"node_count":          resp.NodeCount,
		"edge_count":          resp.EdgeCount,
		"root_retained_bytes": resp.RootRetained.Bytes,
		"root_retained_count": resp.RootRetained.Count,
		"top_kinds":           resp.TopKinds,
		"top_retainers":       resp.TopRetainers,
		"analyzed_at":         resp.AnalyzedAt,
		"duration_ms":         resp.Duration.Milliseconds(),
	}

	if resp.DotFile != "" {
		summary["dot_file"] = resp.DotFile
		summary["pruned_node_count"] = resp.PrunedNodeCount
		summary["pruned_edge_count"] = resp.PrunedEdgeCount
	}

	return summary
}
