package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/mfurukawa/girder/internal/domain"
)

// TaskOption mutates a fixture task before it is returned.
type TaskOption func(*domain.Task)

func WithPlan(start, end time.Time) TaskOption {
	return func(t *domain.Task) {
		t.PlanStartDate = domain.Date(start)
		t.PlanEndDate = domain.Date(end)
	}
}

func WithParent(parentID string) TaskOption {
	return func(t *domain.Task) {
		t.ParentTaskID = &parentID
	}
}

func WithType(tt domain.TaskType) TaskOption {
	return func(t *domain.Task) {
		t.Type = tt
	}
}

func WithProgress(progress int, updatedAt time.Time) TaskOption {
	return func(t *domain.Task) {
		t.Progress = progress
		t.Status = domain.StatusForProgress(progress)
		d := domain.Date(updatedAt)
		t.ProgressUpdatedAt = &d
	}
}

func WithActuals(start, end *time.Time) TaskOption {
	return func(t *domain.Task) {
		t.ActualStartDate = start
		t.ActualEndDate = end
	}
}

func WithCost(cost float64) TaskOption {
	return func(t *domain.Task) {
		t.Cost = cost
	}
}

func WithOrder(order int) TaskOption {
	return func(t *domain.Task) {
		t.Order = order
	}
}

func WithCategory(category string) TaskOption {
	return func(t *domain.Task) {
		t.Category = category
	}
}

// NewTestTask returns a leaf task planned for a five-day window in January 2024.
func NewTestTask(projectID, name string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:            uuid.New().String(),
		ProjectID:     projectID,
		Type:          domain.TypeTask,
		Name:          name,
		PlanStartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PlanEndDate:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Status:        domain.StatusNotStarted,
		Quantity:      1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewTestProject returns a project spanning the first quarter of 2024.
func NewTestProject(name string) *domain.Project {
	now := time.Now().UTC()
	return &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.ProjectActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
