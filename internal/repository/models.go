package repository

import (
	"time"

	"github.com/heap-analysis/pkg/model"
)

// AnalysisRunRecord represents the analysis_runs table.
type AnalysisRunRecord struct {
	ID                int64     `gorm:"column:id;primaryKey;autoIncrement"`
	TaskUUID          string    `gorm:"column:task_uuid;type:varchar(64);uniqueIndex"`
	InputFile         string    `gorm:"column:input_file;type:varchar(512)"`
	NodeCount         int       `gorm:"column:node_count"`
	EdgeCount         int       `gorm:"column:edge_count"`
	RootRetainedBytes uint64    `gorm:"column:root_retained_bytes"`
	RootRetainedCount uint64    `gorm:"column:root_retained_count"`
	DotFile           string    `gorm:"column:dot_file;type:varchar(512)"`
	DurationMs        int64     `gorm:"column:duration_ms"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for AnalysisRunRecord.
func (AnalysisRunRecord) TableName() string {
	return "analysis_runs"
}

// ToModel converts AnalysisRunRecord to model.AnalysisRun.
func (r *AnalysisRunRecord) ToModel() *model.AnalysisRun {
	return &model.AnalysisRun{
		ID:                r.ID,
		TaskUUID:          r.TaskUUID,
		InputFile:         r.InputFile,
		NodeCount:         r.NodeCount,
		EdgeCount:         r.EdgeCount,
		RootRetainedBytes: r.RootRetainedBytes,
		RootRetainedCount: r.RootRetainedCount,
		DotFile:           r.DotFile,
		DurationMs:        r.DurationMs,
		CreatedAt:         r.CreatedAt,
	}
}

// FromModel converts model.AnalysisRun to AnalysisRunRecord.
func FromModel(run *model.AnalysisRun) *AnalysisRunRecord {
	return &AnalysisRunRecord{
		ID:                run.ID,
		TaskUUID:          run.TaskUUID,
		InputFile:         run.InputFile,
		NodeCount:         run.NodeCount,
		EdgeCount:         run.EdgeCount,
		RootRetainedBytes: run.RootRetainedBytes,
		RootRetainedCount: run.RootRetainedCount,
		DotFile:           run.DotFile,
		DurationMs:        run.DurationMs,
		CreatedAt:         run.CreatedAt,
	}
}
