package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/heap-analysis/pkg/config"
	"github.com/heap-analysis/pkg/telemetry"
	"github.com/heap-analysis/pkg/utils"
)

var (
	// Global flags
	verbose    bool
	configFile string

	logger utils.Logger
	cfg    *config.Config

	telemetryShutdown telemetry.ShutdownFunc
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "heap-analysis",
	Short: "A heap dump retention analysis tool",
	Long: `heap-analysis is a CLI tool for analyzing object space heap dumps.

It builds a reference graph from a JSON-lines dump, computes dominator-based
retained sizes, reports the object kinds and individual objects holding the
most memory, and can export the dominant part of the graph in Graphviz DOT
format.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Setup logger based on verbose flag
		logLevel := utils.LevelInfo
		if verbose {
			logLevel = utils.LevelDebug
		}
		logger = utils.NewDefaultLogger(logLevel, os.Stderr)

		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded

		shutdown, err := telemetry.Init(cmd.Context())
		if err != nil {
			return err
		}
		telemetryShutdown = shutdown

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if telemetryShutdown != nil {
			return telemetryShutdown(context.Background())
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to config file")

	binName := BinName()
	rootCmd.Example = `  # Analyze a heap dump
  ` + binName + ` analyze ./heap.json

  # Analyze and export the dominant subgraph
  ` + binName + ` analyze ./heap.json --dot ./graph.dot

  # Fetch the dump through the configured storage backend
  ` + binName + ` analyze dumps/service-42/heap.json --from-storage`
}

// GetLogger returns the configured logger
func GetLogger() utils.Logger {
	return logger
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	return cfg
}

// BinName returns the base name of the current executable
func BinName() string {
	return filepath.Base(os.Args[0])
}
