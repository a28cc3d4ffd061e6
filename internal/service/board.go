package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mfurukawa/girder/internal/domain"
)

// Board holds the in-memory task set for one project during an interactive
// session. Mutations apply to the local copy first so the view updates
// immediately, then persist through the task service. When a persist fails
// the local state may have diverged from storage, so the board re-fetches
// the authoritative set instead of attempting a field-by-field rollback.
type Board struct {
	svc       TaskService
	projectID string
	tasks     []*domain.Task
	byID      map[string]*domain.Task
}

func NewBoard(svc TaskService, projectID string) *Board {
	return &Board{
		svc:       svc,
		projectID: projectID,
		byID:      make(map[string]*domain.Task),
	}
}

// Refresh replaces the local task set with the stored one.
func (b *Board) Refresh(ctx context.Context) error {
	tasks, err := b.svc.ListByProject(ctx, b.projectID)
	if err != nil {
		return err
	}
	b.tasks = tasks
	b.byID = make(map[string]*domain.Task, len(tasks))
	for _, t := range tasks {
		b.byID[t.ID] = t
	}
	return nil
}

// Tasks returns the local task set in storage order. Callers must not hold
// the slice across mutations.
func (b *Board) Tasks() []*domain.Task {
	return b.tasks
}

func (b *Board) Get(id string) (*domain.Task, bool) {
	t, ok := b.byID[id]
	return t, ok
}

func (b *Board) Len() int {
	return len(b.tasks)
}

// Shift moves a task's plan interval by days, locally then persisted.
func (b *Board) Shift(ctx context.Context, id string, days int) error {
	t, ok := b.byID[id]
	if !ok {
		return fmt.Errorf("task %s not on board", id)
	}
	t.ShiftPlan(days)
	if _, err := b.svc.ShiftSchedule(ctx, id, days); err != nil {
		return b.reconcile(ctx, err)
	}
	return nil
}

// Reschedule sets a task's plan interval, locally then persisted.
func (b *Board) Reschedule(ctx context.Context, id string, start, end time.Time) error {
	t, ok := b.byID[id]
	if !ok {
		return fmt.Errorf("task %s not on board", id)
	}
	t.PlanStartDate = domain.Date(start)
	t.PlanEndDate = domain.Date(end)
	updated, err := b.svc.UpdateSchedule(ctx, id, start, end)
	if err != nil {
		return b.reconcile(ctx, err)
	}
	*t = *updated
	return nil
}

// SetProgress applies a progress report, locally then persisted.
func (b *Board) SetProgress(ctx context.Context, id string, u ProgressUpdate) error {
	t, ok := b.byID[id]
	if !ok {
		return fmt.Errorf("task %s not on board", id)
	}
	t.Progress = u.Progress
	t.Status = domain.StatusForProgress(u.Progress)
	updated, err := b.svc.UpdateProgress(ctx, id, u)
	if err != nil {
		return b.reconcile(ctx, err)
	}
	*t = *updated
	return nil
}

// AddSubtask creates a child under parentID and inserts it into the local
// set at its stored position.
func (b *Board) AddSubtask(ctx context.Context, parentID, name string) (*domain.Task, error) {
	if _, ok := b.byID[parentID]; !ok {
		return nil, fmt.Errorf("task %s not on board", parentID)
	}
	t, err := b.svc.AddSubtask(ctx, parentID, name)
	if err != nil {
		return nil, b.reconcile(ctx, err)
	}
	if err := b.Refresh(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// reconcile restores the board from storage after a failed persist. The
// original error is surfaced; a refresh failure on top of it is appended.
func (b *Board) reconcile(ctx context.Context, cause error) error {
	if err := b.Refresh(ctx); err != nil {
		return fmt.Errorf("update failed: %w (refresh also failed: %v)", cause, err)
	}
	return fmt.Errorf("update failed, board reloaded: %w", cause)
}
