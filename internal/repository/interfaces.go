package repository

import (
	"context"
	"errors"

	"github.com/mfurukawa/girder/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// BatchChunkSize bounds the number of rows written per transaction during
// bulk import. Batches are independent: a failure mid-sequence leaves prior
// batches committed.
const BatchChunkSize = 450

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	// UpdateFields applies a partial merge of the given column values.
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	BatchCreate(ctx context.Context, projectID string, tasks []*domain.Task) (int, error)
	Delete(ctx context.Context, id string) error
	// NewTaskID allocates an identifier for a task created by the caller.
	NewTaskID() string
}

type EmployeeRepo interface {
	Create(ctx context.Context, e *domain.Employee) error
	List(ctx context.Context) ([]*domain.Employee, error)
	Delete(ctx context.Context, id string) error
}

type MemberRepo interface {
	Create(ctx context.Context, m *domain.Member) error
	List(ctx context.Context) ([]*domain.Member, error)
	Delete(ctx context.Context, id string) error
}
