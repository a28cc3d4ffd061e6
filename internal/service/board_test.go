package service

import (
	"context"
	"testing"

	"github.com/mfurukawa/girder/internal/domain"
	"github.com/mfurukawa/girder/internal/repository"
	"github.com/mfurukawa/girder/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBoard(t *testing.T) (*Board, repository.TaskRepo, string) {
	t.Helper()
	db := testutil.NewTestDB(t)
	projRepo := repository.NewSQLiteProjectRepo(db)
	taskRepo := repository.NewSQLiteTaskRepo(db)
	svc := NewTaskService(taskRepo)

	ctx := context.Background()
	proj := testutil.NewTestProject("Board")
	require.NoError(t, projRepo.Create(ctx, proj))
	return NewBoard(svc, proj.ID), taskRepo, proj.ID
}

func TestBoard_RefreshLoadsTasks(t *testing.T) {
	board, taskRepo, projectID := setupBoard(t)
	ctx := context.Background()

	task := testutil.NewTestTask(projectID, "Excavation")
	require.NoError(t, taskRepo.Create(ctx, task))

	require.NoError(t, board.Refresh(ctx))
	assert.Equal(t, 1, board.Len())
	got, ok := board.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, "Excavation", got.Name)
}

func TestBoard_ShiftUpdatesLocalAndStored(t *testing.T) {
	board, taskRepo, projectID := setupBoard(t)
	ctx := context.Background()

	task := testutil.NewTestTask(projectID, "Excavation",
		testutil.WithPlan(date(2024, 1, 8), date(2024, 1, 12)))
	require.NoError(t, taskRepo.Create(ctx, task))
	require.NoError(t, board.Refresh(ctx))

	require.NoError(t, board.Shift(ctx, task.ID, 2))

	local, _ := board.Get(task.ID)
	assert.Equal(t, date(2024, 1, 10), local.PlanStartDate)

	stored, err := taskRepo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 10), stored.PlanStartDate)
	assert.Equal(t, date(2024, 1, 14), stored.PlanEndDate)
}

func TestBoard_SetProgressSyncsDerivedFields(t *testing.T) {
	board, taskRepo, projectID := setupBoard(t)
	ctx := context.Background()

	task := testutil.NewTestTask(projectID, "Excavation",
		testutil.WithPlan(date(2024, 1, 1), date(2024, 1, 31)))
	require.NoError(t, taskRepo.Create(ctx, task))
	require.NoError(t, board.Refresh(ctx))

	require.NoError(t, board.SetProgress(ctx, task.ID, ProgressUpdate{
		Progress: 50, Date: date(2024, 1, 10),
	}))

	local, _ := board.Get(task.ID)
	assert.Equal(t, domain.StatusInProgress, local.Status)
	require.NotNil(t, local.ActualStartDate, "local copy reflects the persisted derivation")
	assert.Equal(t, date(2024, 1, 1), *local.ActualStartDate)
}

func TestBoard_PersistFailureRefreshesFromStorage(t *testing.T) {
	board, taskRepo, projectID := setupBoard(t)
	ctx := context.Background()

	task := testutil.NewTestTask(projectID, "Excavation")
	require.NoError(t, taskRepo.Create(ctx, task))
	require.NoError(t, board.Refresh(ctx))

	// Another writer deletes the task; local mutation then fails to persist
	// and the board falls back to the authoritative set.
	require.NoError(t, taskRepo.Delete(ctx, task.ID))

	err := board.Shift(ctx, task.ID, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "board reloaded")
	assert.Equal(t, 0, board.Len())
	_, ok := board.Get(task.ID)
	assert.False(t, ok)
}

func TestBoard_AddSubtaskAppearsLocally(t *testing.T) {
	board, taskRepo, projectID := setupBoard(t)
	ctx := context.Background()

	parent := testutil.NewTestTask(projectID, "Phase 1",
		testutil.WithType(domain.TypeGroup),
		testutil.WithPlan(date(2024, 1, 1), date(2024, 1, 31)))
	require.NoError(t, taskRepo.Create(ctx, parent))
	require.NoError(t, board.Refresh(ctx))

	child, err := board.AddSubtask(ctx, parent.ID, "Survey")
	require.NoError(t, err)
	assert.Equal(t, 2, board.Len())
	got, ok := board.Get(child.ID)
	require.True(t, ok)
	assert.Equal(t, "Survey", got.Name)
}
