package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/heap-analysis/internal/repository"
)

var runsLimit int

// runsCmd represents the runs command
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List saved analysis runs",
	Long: `List the analysis runs saved to the configured database, newest first.

Runs are saved by "analyze --save" and track how a process's retained memory
develops across dumps.`,
	RunE: runRuns,
}

func init() {
	rootCmd.AddCommand(runsCmd)

	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "Maximum number of runs to list")
}

func runRuns(cmd *cobra.Command, args []string) error {
	conf := GetConfig()

	if !conf.PersistenceEnabled() {
		return fmt.Errorf("no database configured")
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

	runs, err := repos.Run.ListRecentRuns(cmd.Context(), runsLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No saved runs.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "UUID\tCREATED\tNODES\tEDGES\tRETAINED\tDURATION")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d bytes (%d objects)\t%dms\n",
			run.TaskUUID,
			run.CreatedAt.Format(time.RFC3339),
			run.NodeCount,
			run.EdgeCount,
			run.RootRetainedBytes,
			run.RootRetainedCount,
			run.DurationMs,
		)
	}
	return w.Flush()
}
