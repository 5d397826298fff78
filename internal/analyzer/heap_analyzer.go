package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/heap-analysis/internal/dot"
	"github.com/heap-analysis/internal/formatter"
	"github.com/heap-analysis/internal/graph"
	"github.com/heap-analysis/internal/parser/heapdump"
	"github.com/heap-analysis/internal/statistics"
	"github.com/heap-analysis/pkg/config"
	"github.com/heap-analysis/pkg/model"
	"github.com/heap-analysis/pkg/utils"
)

const (
	// DefaultTopKinds is the default size of the per-kind report.
	DefaultTopKinds = 10
	// DefaultTopRetainers is the default size of the retainer report.
	DefaultTopRetainers = 25

	// RemainderKey labels the trailing entry that aggregates everything
	// below the report cutoff.
	RemainderKey = "..."
)

// HeapAnalyzerConfig holds configuration for the heap analyzer.
type HeapAnalyzerConfig struct {
	Logger utils.Logger
}

// DefaultHeapAnalyzerConfig returns the default configuration.
func DefaultHeapAnalyzerConfig() *HeapAnalyzerConfig {
	return &HeapAnalyzerConfig{
		Logger: &utils.NullLogger{},
	}
}

// HeapAnalyzer analyzes heap dumps for memory retention.
type HeapAnalyzer struct {
	config *HeapAnalyzerConfig
	parser *heapdump.Parser
	logger utils.Logger
}

// NewHeapAnalyzer creates a new heap analyzer.
func NewHeapAnalyzer(cfg *HeapAnalyzerConfig) *HeapAnalyzer {
	if cfg == nil {
		cfg = DefaultHeapAnalyzerConfig()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = &utils.NullLogger{}
	}

	return &HeapAnalyzer{
		config: cfg,
		parser: heapdump.NewParser(),
		logger: logger,
	}
}

// Name returns the analyzer name.
func (a *HeapAnalyzer) Name() string {
	return "heap_analyzer"
}

// Analyze performs heap retention analysis using an input file.
func (a *HeapAnalyzer) Analyze(ctx context.Context, req *model.AnalysisRequest) (*model.AnalysisResponse, error) {
	file, err := os.Open(req.InputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return a.AnalyzeFromReader(ctx, req, file)
}

// AnalyzeFromReader performs heap retention analysis from a reader.
func (a *HeapAnalyzer) AnalyzeFromReader(ctx context.Context, req *model.AnalysisRequest, dataReader io.Reader) (*model.AnalysisResponse, error) {
	topKinds := req.TopKinds
	if topKinds <= 0 {
		topKinds = DefaultTopKinds
	}
	topRetainers := req.TopRetainers
	if topRetainers <= 0 {
		topRetainers = DefaultTopRetainers
	}
	threshold := req.RelevanceThreshold
	if threshold <= 0 {
		threshold = config.DefaultRelevanceThreshold
	}

	ctx, span := otel.Tracer("heap-analyzer").Start(ctx, "analyze",
		trace.WithAttributes(attribute.String("task.uuid", req.TaskUUID)))
	defer span.End()

	timer := utils.NewTimer(req.TaskUUID)
	log := a.logger.WithField("task_uuid", req.TaskUUID)

	// Step 1: Parse the dump into object records
	parsePhase := timer.Start("parse")
	records, err := a.parser.Parse(ctx, dataReader)
	parsePhase.Stop()
	if err != nil {
		return nil, err
	}
	log.Info("parsed dump: %d records", len(records))

	// Step 2: Build the reference graph
	buildPhase := timer.Start("build_graph")
	g := graph.Build(records)
	buildPhase.Stop()
	log.Info("built reference graph: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())

	// Step 3: Aggregate raw sizes by object kind
	kindsPhase := timer.Start("kind_stats")
	kindTable := statistics.StatsByKind(g)
	kindsPhase.Stop()

	// Step 4: Dominator tree and retained sizes
	domPhase := timer.Start("dominators")
	tree := graph.ComputeDominatorTree(g)
	retained := graph.ComputeRetainedStats(g, tree)
	domPhase.Stop()

	rootRetained := retained[model.RootAddress]
	log.Info("root retains %d bytes across %d objects", rootRetained.Bytes, rootRetained.Count)

	// Step 5: Ranked reports with the trailing remainder entry
	topKindEntries, kindRemainder := statistics.TopN(kindTable, topKinds)
	topKindEntries = append(topKindEntries, model.StatsEntry{Key: RemainderKey, Stats: kindRemainder})

	retainerEntries := statistics.RetainedEntries(g, retained)
	topRetainerEntries, retainerRemainder := statistics.TopNEntries(retainerEntries, topRetainers)
	topRetainerEntries = append(topRetainerEntries, model.StatsEntry{Key: RemainderKey, Stats: retainerRemainder})

	resp := &model.AnalysisResponse{
		TaskUUID:     req.TaskUUID,
		NodeCount:    g.NodeCount(),
		EdgeCount:    g.EdgeCount(),
		RootRetained: rootRetained,
		TopKinds:     topKindEntries,
		TopRetainers: topRetainerEntries,
		AnalyzedAt:   time.Now(),
	}

	// Step 6: Optional relevance pruning and DOT export
	if req.DotFile != "" {
		prunePhase := timer.Start("prune_export")
		pruned := graph.Prune(g, retained, threshold)

		if err := dot.NewWriter().WriteToFile(pruned, req.DotFile); err != nil {
			prunePhase.Stop()
			return nil, fmt.Errorf("failed to write dot file: %w", err)
		}
		prunePhase.Stop()

		resp.PrunedNodeCount = pruned.NodeCount()
		resp.PrunedEdgeCount = pruned.EdgeCount()
		resp.DotFile = req.DotFile
		log.Info("exported pruned subgraph to %s: %d nodes, %d edges",
			req.DotFile, pruned.NodeCount(), pruned.EdgeCount())
	}

	resp.Duration = timer.TotalDuration()

	// Step 7: Per-run summary file
	if req.OutputDir != "" {
		if err := a.writeSummary(req.OutputDir, resp); err != nil {
			return nil, err
		}
	}

	timer.PrintSummary(log)

	return resp, nil
}

// writeSummary writes the run summary as JSON into the output directory.
func (a *HeapAnalyzer) writeSummary(outputDir string, resp *model.AnalysisResponse) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	summary := formatter.NewConsoleFormatter().FormatSummary(resp)
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	summaryFile := filepath.Join(outputDir, "summary.json")
	if err := os.WriteFile(summaryFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	return nil
}
