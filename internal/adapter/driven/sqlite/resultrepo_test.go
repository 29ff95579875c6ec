package sqlite

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/keypanel/internal/domain/model"
)

func TestResultRepo_AppendAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewResultRepo(db)
	ctx := context.Background()

	rec, err := repo.Append(ctx, model.TestResult{
		Service: "YouTube",
		Success: true,
		Message: "Successfully retrieved YouTube channel data",
		Details: `{"items":[]}`,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())

	results, err := repo.ListRecent(ctx, 50)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, rec.ID, results[0].ID)
	assert.True(t, results[0].Success)
}

func TestResultRepo_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewResultRepo(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Append(ctx, model.TestResult{
			Service: "Drive",
			Success: true,
			Message: fmt.Sprintf("run %d", i),
		})
		require.NoError(t, err)
	}

	results, err := repo.ListRecent(ctx, 50)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "run 2", results[0].Message)
	assert.Equal(t, "run 1", results[1].Message)
	assert.Equal(t, "run 0", results[2].Message)
}

func TestResultRepo_ListCap(t *testing.T) {
	db := setupTestDB(t)
	repo := NewResultRepo(db)
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		_, err := repo.Append(ctx, model.TestResult{
			Service: "Sheets",
			Success: i%2 == 0,
			Message: fmt.Sprintf("run %d", i),
		})
		require.NoError(t, err)
	}

	results, err := repo.ListRecent(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, results, 50)
	assert.Equal(t, "run 59", results[0].Message)
}

func TestErrorLogRepo_AppendAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewErrorLogRepo(db)
	ctx := context.Background()

	rec, err := repo.Append(ctx, model.ErrorLog{
		Service: "Gmail",
		Error:   "API test failed",
		Details: "invalid grant",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)

	logs, err := repo.ListRecent(ctx, 50)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "API test failed", logs[0].Error)
}

func TestErrorLogRepo_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewErrorLogRepo(db)
	ctx := context.Background()

	_, err := repo.Append(ctx, model.ErrorLog{Service: "Drive", Error: "older"})
	require.NoError(t, err)
	_, err = repo.Append(ctx, model.ErrorLog{Service: "Drive", Error: "newer"})
	require.NoError(t, err)

	logs, err := repo.ListRecent(ctx, 50)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "newer", logs[0].Error)
}
