// Package repository persists completed analysis runs so memory growth
// can be tracked across dumps of the same process over time.
package repository

import (
	"context"

	"github.com/heap-analysis/pkg/model"
)

// RunRepository defines the database operations for analysis runs.
type RunRepository interface {
	// SaveRun stores a completed analysis run.
	SaveRun(ctx context.Context, run *model.AnalysisRun) error

	// GetRunByTaskUUID retrieves a run by its task UUID.
	GetRunByTaskUUID(ctx context.Context, taskUUID string) (*model.AnalysisRun, error)

	// ListRecentRuns retrieves the most recent runs, newest first.
	ListRecentRuns(ctx context.Context, limit int) ([]*model.AnalysisRun, error)

	// DeleteRun removes a run by its task UUID.
	DeleteRun(ctx context.Context, taskUUID string) error
}
