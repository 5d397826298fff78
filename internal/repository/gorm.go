package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "github.com/heap-analysis/pkg/errors"
	"github.com/heap-analysis/pkg/model"
)

// GormRunRepository implements RunRepository using GORM.
type GormRunRepository struct {
	db *gorm.DB
}

// NewGormRunRepository creates a new GormRunRepository.
func NewGormRunRepository(db *gorm.DB) *GormRunRepository {
	return &GormRunRepository{db: db}
}

// AutoMigrate creates or updates the analysis_runs table.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&AnalysisRunRecord{}); err != nil {
		return fmt.Errorf("failed to migrate analysis_runs: %w", err)
	}
	return nil
}

// SaveRun stores a completed analysis run.
func (r *GormRunRepository) SaveRun(ctx context.Context, run *model.AnalysisRun) error {
	record := FromModel(run)

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return apperrors.Wrap(apperrors.CodeDatabaseError, "failed to save run", err)
	}

	run.ID = record.ID
	run.CreatedAt = record.CreatedAt
	return nil
}

// GetRunByTaskUUID retrieves a run by its task UUID.
func (r *GormRunRepository) GetRunByTaskUUID(ctx context.Context, taskUUID string) (*model.AnalysisRun, error) {
	var record AnalysisRunRecord

	err := r.db.WithContext(ctx).Where("task_uuid = ?", taskUUID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("run not found: %s", taskUUID))
		}
		return nil, apperrors.Wrap(apperrors.CodeDatabaseError, "failed to get run", err)
	}

	return record.ToModel(), nil
}

// ListRecentRuns retrieves the most recent runs, newest first.
func (r *GormRunRepository) ListRecentRuns(ctx context.Context, limit int) ([]*model.AnalysisRun, error) {
	var records []AnalysisRunRecord

	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDatabaseError, "failed to list runs", err)
	}

	runs := make([]*model.AnalysisRun, len(records))
	for i, rec := range records {
		runs[i] = rec.ToModel()
	}

	return runs, nil
}

// DeleteRun removes a run by its task UUID.
func (r *GormRunRepository) DeleteRun(ctx context.Context, taskUUID string) error {
	result := r.db.WithContext(ctx).Where("task_uuid = ?", taskUUID).Delete(&AnalysisRunRecord{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.CodeDatabaseError, "failed to delete run", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("run not found: %s", taskUUID))
	}
	return nil
}
