package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heap-analysis/pkg/config"
)

func TestNewGormDB_UnsupportedType(t *testing.T) {
	_, err := NewGormDB(&config.DatabaseConfig{Type: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}

func TestNewRepositories(t *testing.T) {
	db := setupTestDB(t)

	repos, err := NewRepositories(db, "sqlite")
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	assert.NotNil(t, repos.Run)
	assert.NotNil(t, repos.DB())
	assert.Same(t, db, repos.GormDB())

	require.NoError(t, repos.HealthCheck(context.Background()))

	require.NoError(t, repos.Run.SaveRun(context.Background(), testRun("uuid-factory")))
	run, err := repos.Run.GetRunByTaskUUID(context.Background(), "uuid-factory")
	require.NoError(t, err)
	assert.Equal(t, "uuid-factory", run.TaskUUID)
}
