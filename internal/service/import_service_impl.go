package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mfurukawa/girder/internal/domain"
	"github.com/mfurukawa/girder/internal/importer"
	"github.com/mfurukawa/girder/internal/repository"
)

type importService struct {
	projects repository.ProjectRepo
	tasks    repository.TaskRepo
	now      func() time.Time
}

func NewImportService(projects repository.ProjectRepo, tasks repository.TaskRepo) ImportService {
	return &importService{projects: projects, tasks: tasks, now: time.Now}
}

func (s *importService) ImportFile(ctx context.Context, projectID, path string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return s.ImportReader(ctx, projectID, f)
}

func (s *importService) ImportReader(ctx context.Context, projectID string, r io.Reader) (*ImportResult, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, fmt.Errorf("project %s: %w", projectID, err)
	}

	today := domain.Date(s.now().UTC())
	parsed, err := importer.Parse(r, today)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	for _, t := range parsed.Tasks {
		t.ProjectID = projectID
		normalizeTask(t, today)
		t.CreatedAt = now
		t.UpdatedAt = now
	}

	created, err := s.tasks.BatchCreate(ctx, projectID, parsed.Tasks)
	res := &ImportResult{ProjectID: projectID, Created: created, SkippedRows: parsed.SkippedRows}
	if err != nil {
		// Earlier chunks are already committed; report what landed.
		return res, fmt.Errorf("failed to import: %w", err)
	}
	return res, nil
}

type exportService struct {
	tasks repository.TaskRepo
}

func NewExportService(tasks repository.TaskRepo) ExportService {
	return &exportService{tasks: tasks}
}

func (s *exportService) ExportFile(ctx context.Context, projectID, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := s.ExportWriter(ctx, projectID, f); err != nil {
		return err
	}
	return f.Close()
}

func (s *exportService) ExportWriter(ctx context.Context, projectID string, w io.Writer) error {
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	return importer.Export(w, tasks)
}
