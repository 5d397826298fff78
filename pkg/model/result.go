package model

import "time"

// AnalysisRequest describes one heap dump analysis run.
type AnalysisRequest struct {
	TaskUUID  string `json:"task_uuid"`
	InputFile string `json:"input_file"`
	OutputDir string `json:"output_dir"`

	// DotFile is the optional path for the pruned-subgraph DOT export.
	// Empty means no export.
	DotFile string `json:"dot_file,omitempty"`

	// RelevanceThreshold is the minimum fraction of root retained bytes a
	// node must retain to survive pruning for the DOT export.
	RelevanceThreshold float64 `json:"relevance_threshold"`

	// TopKinds and TopRetainers size the two ranked console reports.
	TopKinds     int `json:"top_kinds"`
	TopRetainers int `json:"top_retainers"`
}

// AnalysisResponse holds the outcome of a heap dump analysis run.
type AnalysisResponse struct {
	TaskUUID string `json:"task_uuid"`

	// Graph shape after construction.
	NodeCount int `json:"node_count"`
	EdgeCount int `json:"edge_count"`

	// RootRetained is the retained Stats of the synthetic root: the sum of
	// every root-reachable object's own Stats.
	RootRetained Stats `json:"root_retained"`

	// TopKinds ranks raw per-kind aggregates descending by bytes; TopRetainers
	// ranks per-object retained Stats. Each ends with a "..." remainder entry.
	TopKinds     []StatsEntry `json:"top_kinds"`
	TopRetainers []StatsEntry `json:"top_retainers"`

	// Pruned subgraph shape, populated only when a DOT export was requested.
	PrunedNodeCount int    `json:"pruned_node_count,omitempty"`
	PrunedEdgeCount int    `json:"pruned_edge_count,omitempty"`
	DotFile         string `json:"dot_file,omitempty"`

	AnalyzedAt time.Time     `json:"analyzed_at"`
	Duration   time.Duration `json:"duration"`
}

// AnalysisRun is the persisted record of a completed analysis, stored by the
// repository layer when a database is configured.
type AnalysisRun struct {
	ID                int64     `json:"id"`
	TaskUUID          string    `json:"task_uuid"`
	InputFile         string    `json:"input_file"`
	NodeCount         int       `json:"node_count"`
	EdgeCount         int       `json:"edge_count"`
	RootRetainedBytes uint64    `json:"root_retained_bytes"`
	RootRetainedCount uint64    `json:"root_retained_count"`
	DotFile           string    `json:"dot_file,omitempty"`
	DurationMs        int64     `json:"duration_ms"`
	CreatedAt         time.Time `json:"created_at"`
}
