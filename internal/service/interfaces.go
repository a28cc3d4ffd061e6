package service

import (
	"context"
	"io"
	"time"

	"github.com/mfurukawa/girder/internal/domain"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// ProgressUpdate carries one progress report against a task. Date is the day
// the work state was observed, not the wall-clock time of the call.
type ProgressUpdate struct {
	Progress     int
	Date         time.Time
	Note         string
	StartingWork bool
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error

	// UpdateSchedule moves the plan interval of a task.
	UpdateSchedule(ctx context.Context, id string, newStart, newEnd time.Time) (*domain.Task, error)
	// ShiftSchedule moves both plan dates by days, preserving duration.
	ShiftSchedule(ctx context.Context, id string, days int) (*domain.Task, error)
	// UpdateProgress applies a progress report and keeps status and the
	// actual dates synchronized with it.
	UpdateProgress(ctx context.Context, id string, u ProgressUpdate) (*domain.Task, error)
	// AddSubtask creates a child task under parentID, chained after the
	// parent's last existing child.
	AddSubtask(ctx context.Context, parentID, name string) (*domain.Task, error)
	// Reorder rewrites display order so tasks appear in the given sequence.
	Reorder(ctx context.Context, orderedIDs []string) error
}

// ImportResult reports what one CSV import did.
type ImportResult struct {
	ProjectID   string
	Created     int
	SkippedRows int
}

type ImportService interface {
	// ImportFile loads a task CSV into the project. Writes are chunked;
	// a mid-sequence failure leaves earlier chunks committed and Created
	// reflects what landed.
	ImportFile(ctx context.Context, projectID, path string) (*ImportResult, error)
	ImportReader(ctx context.Context, projectID string, r io.Reader) (*ImportResult, error)
}

type ExportService interface {
	ExportFile(ctx context.Context, projectID, path string) error
	ExportWriter(ctx context.Context, projectID string, w io.Writer) error
}

type EmployeeService interface {
	Create(ctx context.Context, e *domain.Employee) error
	List(ctx context.Context) ([]*domain.Employee, error)
	Delete(ctx context.Context, id string) error
	Members(ctx context.Context) ([]*domain.Member, error)
}
