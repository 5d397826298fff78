package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/heap-analysis/internal/analyzer"
	"github.com/heap-analysis/internal/formatter"
	"github.com/heap-analysis/internal/repository"
	"github.com/heap-analysis/internal/storage"
	"github.com/heap-analysis/pkg/config"
	"github.com/heap-analysis/pkg/model"
)

var (
	// Analyze command flags
	dotFile      string
	threshold    float64
	topKinds     int
	topRetainers int
	taskUUID     string
	fromStorage  bool
	uploadDot    bool
	saveRun      bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <dump>",
	Short: "Analyze a heap dump for memory retention",
	Long: `Analyze an object space heap dump and report where memory is retained.

The analyze command parses a JSON-lines dump, builds the reference graph,
computes dominator-based retained sizes and prints two reports:
  - the object kinds using the most memory (raw self sizes)
  - the individual objects retaining the most memory (retained sizes)

With --dot it additionally prunes the graph down to the nodes retaining a
relevant share of the total and writes the result in Graphviz DOT format.

The dump argument is a local file path, or a storage key when --from-storage
is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	binName := BinName()
	analyzeCmd.Example = `  # Analyze a local dump
  ` + binName + ` analyze ./heap.json

  # Export the dominant subgraph with a custom relevance threshold
  ` + binName + ` analyze ./heap.json --dot ./graph.dot --threshold 0.01

  # Larger reports
  ` + binName + ` analyze ./heap.json --top-kinds 20 --top-retainers 50

  # Persist the run history (requires a configured database)
  ` + binName + ` analyze ./heap.json --save`

	analyzeCmd.Flags().StringVar(&dotFile, "dot", "", "Write the pruned graph in DOT format to this path")
	analyzeCmd.Flags().Float64Var(&threshold, "threshold", 0, "Relevance threshold as a fraction of root retained bytes (default from config)")
	analyzeCmd.Flags().IntVar(&topKinds, "top-kinds", 0, "Number of kinds in the memory-by-kind report (default from config)")
	analyzeCmd.Flags().IntVar(&topRetainers, "top-retainers", 0, "Number of objects in the retainer report (default from config)")
	analyzeCmd.Flags().StringVar(&taskUUID, "uuid", "", "Task UUID (auto-generated if empty)")
	analyzeCmd.Flags().BoolVar(&fromStorage, "from-storage", false, "Treat the dump argument as a key in the configured storage backend")
	analyzeCmd.Flags().BoolVar(&uploadDot, "upload", false, "Upload the DOT export back to the storage backend")
	analyzeCmd.Flags().BoolVar(&saveRun, "save", false, "Save the run to the configured database")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := GetLogger()
	conf := GetConfig()
	ctx := cmd.Context()

	uuid := taskUUID
	if uuid == "" {
		uuid = generateUUID()
	}

	if err := conf.EnsureDataDir(); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	runDir := conf.GetRunDir(uuid)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var store storage.Storage
	if fromStorage || uploadDot {
		s, err := newStorage(conf)
		if err != nil {
			return err
		}
		store = s
	}

	inputFile := args[0]
	if fromStorage {
		localPath := filepath.Join(runDir, filepath.Base(inputFile))
		log.Info("Fetching dump %s from storage...", inputFile)
		if err := store.DownloadFile(ctx, inputFile, localPath); err != nil {
			return err
		}
		inputFile = localPath
	} else if _, err := os.Stat(inputFile); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputFile)
	}

	relevance := threshold
	if relevance <= 0 {
		relevance = conf.Analysis.RelevanceThreshold
	}
	kinds := topKinds
	if kinds <= 0 {
		kinds = conf.Analysis.TopKinds
	}
	retainers := topRetainers
	if retainers <= 0 {
		retainers = conf.Analysis.TopRetainers
	}

	log.Info("=== Heap Analysis ===")
	log.Info("Input file: %s", inputFile)
	log.Info("Output dir: %s", runDir)
	log.Info("Task UUID:  %s", uuid)

	req := &model.AnalysisRequest{
		TaskUUID:           uuid,
		InputFile:          inputFile,
		OutputDir:          runDir,
		DotFile:            dotFile,
		RelevanceThreshold: relevance,
		TopKinds:           kinds,
		TopRetainers:       retainers,
	}

	a := analyzer.NewHeapAnalyzer(&analyzer.HeapAnalyzerConfig{Logger: log})

	startTime := time.Now()
	resp, err := a.Analyze(ctx, req)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	log.Info("Analysis completed in %v", time.Since(startTime))

	if err := formatter.NewConsoleFormatter().Format(resp, os.Stdout); err != nil {
		return err
	}

	if resp.DotFile != "" {
		log.Info("DOT export: %s (%d nodes, %d edges)",
			resp.DotFile, resp.PrunedNodeCount, resp.PrunedEdgeCount)

		if uploadDot {
			key := uuid + "/" + filepath.Base(resp.DotFile)
			log.Info("Uploading DOT export to storage key %s...", key)
			if err := store.UploadFile(ctx, key, resp.DotFile); err != nil {
				return err
			}
		}
	}

	if saveRun {
		if err := persistRun(cmd, resp, req.InputFile); err != nil {
			return err
		}
	}

	return nil
}

// persistRun saves the run history when a database is configured.
func persistRun(cmd *cobra.Command, resp *model.AnalysisResponse, inputFile string) error {
	conf := GetConfig()
	log := GetLogger()

	if !conf.PersistenceEnabled() {
		return fmt.Errorf("cannot save run: no database configured")
	}

	db, err := repository.NewGormDB(&conf.Database)
	if err != nil {
		return err
	}
	repos, err := repository.NewRepositories(db, conf.Database.Type)
	if err != nil {
		return err
	}
	defer repos.Close()

	run := &model.AnalysisRun{
		TaskUUID:          resp.TaskUUID,
		InputFile:         inputFile,
		NodeCount:         resp.NodeCount,
		EdgeCount:         resp.EdgeCount,
		RootRetainedBytes: resp.RootRetained.Bytes,
		RootRetainedCount: resp.RootRetained.Count,
		DotFile:           resp.DotFile,
		DurationMs:        resp.Duration.Milliseconds(),
	}

	if err := repos.Run.SaveRun(cmd.Context(), run); err != nil {
		return err
	}
	log.Info("Saved run %s (id %d)", run.TaskUUID, run.ID)

	return nil
}

// newStorage builds the configured storage backend.
func newStorage(conf *config.Config) (storage.Storage, error) {
	if err := storage.ValidateConfig(&conf.Storage); err != nil {
		return nil, err
	}
	return storage.NewStorage(&conf.Storage)
}

func generateUUID() string {
	return fmt.Sprintf("run-%d", time.Now().UnixNano())
}
