package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mfurukawa/girder/internal/domain"
	"github.com/mfurukawa/girder/internal/importer"
	"github.com/mfurukawa/girder/internal/repository"
	"github.com/mfurukawa/girder/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupImport(t *testing.T) (ImportService, ExportService, repository.TaskRepo, string) {
	t.Helper()
	db := testutil.NewTestDB(t)
	projRepo := repository.NewSQLiteProjectRepo(db)
	taskRepo := repository.NewSQLiteTaskRepo(db)

	proj := testutil.NewTestProject("Import")
	require.NoError(t, projRepo.Create(context.Background(), proj))
	return NewImportService(projRepo, taskRepo), NewExportService(taskRepo), taskRepo, proj.ID
}

func TestImportService_ImportsIntoProject(t *testing.T) {
	impSvc, _, taskRepo, projectID := setupImport(t)
	ctx := context.Background()

	csv := `Type,Task Name,Category,Plan Start,Plan End,Progress
group,Earthworks,civil,2024-01-08,2024-01-19,0
task,Excavation,civil,2024-01-08,2024-01-12,100
task,Backfill,civil,2024-01-15,2024-01-19,30
`
	res, err := impSvc.ImportReader(ctx, projectID, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Created)
	assert.Equal(t, 0, res.SkippedRows)

	stored, err := taskRepo.ListByProject(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, stored, 3)

	// Completed rows get their actual dates defaulted so stored tasks
	// always satisfy the completed invariant.
	var excavation *domain.Task
	for _, task := range stored {
		if task.Name == "Excavation" {
			excavation = task
		}
	}
	require.NotNil(t, excavation)
	assert.Equal(t, domain.StatusCompleted, excavation.Status)
	assert.NotNil(t, excavation.ActualEndDate)
	assert.NotNil(t, excavation.ActualStartDate)
	assert.Equal(t, projectID, excavation.ProjectID)
}

func TestImportService_UnknownProject(t *testing.T) {
	impSvc, _, _, _ := setupImport(t)
	_, err := impSvc.ImportReader(context.Background(), "missing", strings.NewReader("Name\nA\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestImportService_ZeroValidRows(t *testing.T) {
	impSvc, _, _, projectID := setupImport(t)
	_, err := impSvc.ImportReader(context.Background(), projectID, strings.NewReader("Name\n\n"))
	assert.ErrorIs(t, err, importer.ErrNoValidRows)
}

func TestExportService_RoundTripThroughStorage(t *testing.T) {
	impSvc, expSvc, _, projectID := setupImport(t)
	ctx := context.Background()

	csv := `Type,Task Name,Category,Plan Start,Plan End,Progress
group,Earthworks,civil,2024-01-08,2024-01-19,0
task,Excavation,civil,2024-01-08,2024-01-12,60
`
	_, err := impSvc.ImportReader(ctx, projectID, strings.NewReader(csv))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, expSvc.ExportWriter(ctx, projectID, &buf))

	res, err := importer.Parse(&buf, importDate())
	require.NoError(t, err)
	require.Len(t, res.Tasks, 2)
	assert.Equal(t, "Earthworks", res.Tasks[0].Name)
	assert.Equal(t, "Excavation", res.Tasks[1].Name)
	assert.Equal(t, 60, res.Tasks[1].Progress)
	assert.Equal(t, date(2024, 1, 8), res.Tasks[1].PlanStartDate)
	assert.Equal(t, date(2024, 1, 12), res.Tasks[1].PlanEndDate)
	assert.Equal(t, "civil", res.Tasks[1].Category)
}

func importDate() time.Time {
	return date(2024, 6, 1)
}
