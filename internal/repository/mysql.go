package repository

import (
	"context"
	"database/sql"
	"fmt"

	apperrors "github.com/heap-analysis/pkg/errors"
	"github.com/heap-analysis/pkg/model"
)

// MySQLRunRepository implements RunRepository for MySQL using raw SQL.
type MySQLRunRepository struct {
	db *sql.DB
}

// NewMySQLRunRepository creates a new MySQLRunRepository.
func NewMySQLRunRepository(db *sql.DB) *MySQLRunRepository {
	return &MySQLRunRepository{db: db}
}

// SaveRun stores a completed analysis run.
func (r *MySQLRunRepository) SaveRun(ctx context.Context, run *model.AnalysisRun) error {
	query := `
		INSERT INTO analysis_runs
			(task_uuid, input_file, node_count, edge_count,
			 root_retained_bytes, root_retained_count, dot_file, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		run.TaskUUID, run.InputFile, run.NodeCount, run.EdgeCount,
		run.RootRetainedBytes, run.RootRetainedCount, run.DotFile, run.DurationMs,
	)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeDatabaseError, "failed to save run", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		run.ID = id
	}

	return nil
}

// GetRunByTaskUUID retrieves a run by its task UUID.
func (r *MySQLRunRepository) GetRunByTaskUUID(ctx context.Context, taskUUID string) (*model.AnalysisRun, error) {
	query := `
		SELECT id, task_uuid, COALESCE(input_file, ''), node_count, edge_count,
			   root_retained_bytes, root_retained_count, COALESCE(dot_file, ''),
			   duration_ms, created_at
		FROM analysis_runs
		WHERE task_uuid = ?
	`

	run := &model.AnalysisRun{}
	err := r.db.QueryRowContext(ctx, query, taskUUID).Scan(
		&run.ID, &run.TaskUUID, &run.InputFile, &run.NodeCount, &run.EdgeCount,
		&run.RootRetainedBytes, &run.RootRetainedCount, &run.DotFile,
		&run.DurationMs, &run.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("run not found: %s", taskUUID))
		}
		return nil, apperrors.Wrap(apperrors.CodeDatabaseError, "failed to get run", err)
	}

	return run, nil
}

// ListRecentRuns retrieves the most recent runs, newest first.
func (r *MySQLRunRepository) ListRecentRuns(ctx context.Context, limit int) ([]*model.AnalysisRun, error) {
	query := `
		SELECT id, task_uuid, COALESCE(input_file, ''), node_count, edge_count,
			   root_retained_bytes, root_retained_count, COALESCE(dot_file, ''),
			   duration_ms, created_at
		FROM analysis_runs
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDatabaseError, "failed to list runs", err)
	}
	defer rows.Close()

	var runs []*model.AnalysisRun
	for rows.Next() {
		run := &model.AnalysisRun{}
		err := rows.Scan(
			&run.ID, &run.TaskUUID, &run.InputFile, &run.NodeCount, &run.EdgeCount,
			&run.RootRetainedBytes, &run.RootRetainedCount, &run.DotFile,
			&run.DurationMs, &run.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeDatabaseError, "failed to scan run", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDatabaseError, "failed to iterate runs", err)
	}

	return runs, nil
}

// DeleteRun removes a run by its task UUID.
func (r *MySQLRunRepository) DeleteRun(ctx context.Context, taskUUID string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM analysis_runs WHERE task_uuid = ?", taskUUID)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeDatabaseError, "failed to delete run", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(apperrors.CodeDatabaseError, "failed to delete run", err)
	}
	if affected == 0 {
		return apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("run not found: %s", taskUUID))
	}

	return nil
}
