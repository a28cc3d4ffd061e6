package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mfurukawa/girder/internal/domain"
	"github.com/mfurukawa/girder/internal/repository"
)

type taskService struct {
	tasks repository.TaskRepo
	now   func() time.Time
}

func NewTaskService(tasks repository.TaskRepo) TaskService {
	return &taskService{tasks: tasks, now: time.Now}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Type == "" {
		t.Type = domain.TypeTask
	}
	today := domain.Date(s.now().UTC())

	// Predecessors seed a default start on creation only. An explicit start
	// wins; otherwise the task begins the day after its latest predecessor.
	if t.PlanStartDate.IsZero() {
		start := today
		if len(t.Predecessors) > 0 {
			if seeded, ok := s.seedFromPredecessors(ctx, t.Predecessors); ok {
				start = seeded
			}
		}
		t.PlanStartDate = start
	}
	if t.PlanEndDate.IsZero() {
		t.PlanEndDate = t.PlanStartDate
	}
	normalizeTask(t, today)
	if err := t.Validate(); err != nil {
		return err
	}
	now := s.now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.tasks.Create(ctx, t)
}

// seedFromPredecessors returns the day after the latest predecessor plan end.
// Unknown predecessor ids are ignored; if none resolve, ok is false.
func (s *taskService) seedFromPredecessors(ctx context.Context, predecessors []string) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, id := range predecessors {
		p, err := s.tasks.GetByID(ctx, id)
		if err != nil {
			continue
		}
		if !found || p.PlanEndDate.After(latest) {
			latest = p.PlanEndDate
			found = true
		}
	}
	if !found {
		return time.Time{}, false
	}
	return domain.Date(latest).AddDate(0, 0, 1), true
}

// normalizeTask keeps the denormalized fields consistent before a write:
// status always matches progress, and a completed task always carries an
// actual end. Shared with the import path.
func normalizeTask(t *domain.Task, today time.Time) {
	t.PlanStartDate = domain.Date(t.PlanStartDate)
	t.PlanEndDate = domain.Date(t.PlanEndDate)
	t.Status = domain.StatusForProgress(t.Progress)
	if t.Progress >= 100 && t.ActualEndDate == nil {
		end := t.PlanEndDate
		if today.Before(end) {
			end = today
		}
		t.ActualEndDate = &end
	}
	if t.Progress >= 100 && t.ActualStartDate == nil {
		start := t.PlanStartDate
		t.ActualStartDate = &start
	}
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.ParentTaskID != nil {
		all, err := s.tasks.ListByProject(ctx, t.ProjectID)
		if err != nil {
			return err
		}
		byID := make(map[string]*domain.Task, len(all))
		for _, other := range all {
			byID[other.ID] = other
		}
		if domain.WouldCreateCycle(byID, t.ID, *t.ParentTaskID) {
			return fmt.Errorf("task %s cannot be its own ancestor", t.ID)
		}
	}
	t.UpdatedAt = s.now().UTC()
	return s.tasks.Update(ctx, t)
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

func (s *taskService) UpdateSchedule(ctx context.Context, id string, newStart, newEnd time.Time) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	newStart = domain.Date(newStart)
	newEnd = domain.Date(newEnd)
	if newEnd.Before(newStart) {
		return nil, fmt.Errorf("plan end %s is before plan start %s",
			newEnd.Format("2006-01-02"), newStart.Format("2006-01-02"))
	}
	t.PlanStartDate = newStart
	t.PlanEndDate = newEnd
	t.UpdatedAt = s.now().UTC()
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *taskService) ShiftSchedule(ctx context.Context, id string, days int) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.ShiftPlan(days)
	t.UpdatedAt = s.now().UTC()
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateProgress applies a progress report and re-derives status and the
// actual dates from it.
//
// Derivation rules:
//   - progress 100: status completed, actualEnd = report date.
//   - progress 0 with StartingWork: status in_progress, actualStart = report
//     date, actualEnd cleared.
//   - progress 0 otherwise: status not_started, both actual dates cleared.
//   - 0 < progress < 100: status in_progress, actualEnd cleared; if
//     actualStart is unset it defaults to the plan start.
//   - once work has started, actualStart is the minimum of all recorded
//     report dates: an earlier report pulls it back.
func (s *taskService) UpdateProgress(ctx context.Context, id string, u ProgressUpdate) (*domain.Task, error) {
	if u.Progress < 0 || u.Progress > 100 {
		return nil, fmt.Errorf("progress %d out of range 0..100", u.Progress)
	}
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	date := u.Date
	if date.IsZero() {
		date = s.now().UTC()
	}
	date = domain.Date(date)

	t.Progress = u.Progress
	switch {
	case u.Progress >= 100:
		t.Status = domain.StatusCompleted
		end := date
		t.ActualEndDate = &end
		if t.ActualStartDate == nil {
			start := domain.Date(t.PlanStartDate)
			t.ActualStartDate = &start
		}
	case u.Progress == 0 && u.StartingWork:
		t.Status = domain.StatusInProgress
		start := date
		t.ActualStartDate = &start
		t.ActualEndDate = nil
	case u.Progress == 0:
		t.Status = domain.StatusNotStarted
		t.ActualStartDate = nil
		t.ActualEndDate = nil
	default:
		t.Status = domain.StatusInProgress
		t.ActualEndDate = nil
		if t.ActualStartDate == nil {
			start := domain.Date(t.PlanStartDate)
			t.ActualStartDate = &start
		}
	}
	if t.ActualStartDate != nil && date.Before(*t.ActualStartDate) {
		start := date
		t.ActualStartDate = &start
	}
	stamp := date
	t.ProgressUpdatedAt = &stamp
	t.ProgressNote = u.Note
	t.UpdatedAt = s.now().UTC()
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *taskService) AddSubtask(ctx context.Context, parentID, name string) (*domain.Task, error) {
	if name == "" {
		return nil, fmt.Errorf("task name is required")
	}
	parent, err := s.tasks.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	siblings, err := s.tasks.ListChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}

	t := &domain.Task{
		ID:           s.tasks.NewTaskID(),
		ProjectID:    parent.ProjectID,
		ParentTaskID: &parent.ID,
		Type:         domain.TypeTask,
		Name:         name,
		Category:     parent.Category,
		Status:       domain.StatusNotStarted,
	}

	// Chain after the last sibling when one exists, otherwise start with
	// the parent.
	if last := lastSibling(siblings); last != nil {
		t.Predecessors = []string{last.ID}
		t.PlanStartDate = domain.Date(last.PlanEndDate).AddDate(0, 0, 1)
		t.Order = last.Order + 1
	} else {
		t.PlanStartDate = domain.Date(parent.PlanStartDate)
		t.Order = 0
	}
	t.PlanEndDate = t.PlanStartDate

	now := s.now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func lastSibling(siblings []*domain.Task) *domain.Task {
	if len(siblings) == 0 {
		return nil
	}
	sorted := make([]*domain.Task, len(siblings))
	copy(sorted, siblings)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	return sorted[len(sorted)-1]
}

func (s *taskService) Reorder(ctx context.Context, orderedIDs []string) error {
	for i, id := range orderedIDs {
		err := s.tasks.UpdateFields(ctx, id, map[string]any{"display_order": i})
		if err != nil {
			return fmt.Errorf("reorder %s: %w", id, err)
		}
	}
	return nil
}
