package domain

import (
	"fmt"
	"time"
)

// Task is a single row on the Gantt chart: either a leaf task with its own
// schedule, or a group that aggregates its children for rendering.
type Task struct {
	ID           string
	ProjectID    string
	ParentTaskID *string
	Type         TaskType
	Name         string

	// Secondary grouping, orthogonal to the parent/child tree. Used for row
	// grouping and the CSV round-trip.
	Category       string
	Subcategory    string
	SubSubcategory string

	// Plan dates form a closed, inclusive interval: a task planned for a
	// single day has PlanStartDate == PlanEndDate.
	PlanStartDate time.Time
	PlanEndDate   time.Time

	ActualStartDate *time.Time
	ActualEndDate   *time.Time

	Progress          int // 0..100
	ProgressUpdatedAt *time.Time
	ProgressNote      string
	Status            TaskStatus

	// Predecessors seed a default start date on creation; they are not a
	// hard scheduling constraint afterward.
	Predecessors []string

	Order       int
	Color       string
	Cost        float64
	Quantity    float64
	Responsible string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Date truncates t to midnight UTC. All schedule fields are date-valued;
// comparisons must not be sensitive to the time of day.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// PlanDuration returns the planned duration in whole days, end inclusive.
func (t *Task) PlanDuration() int {
	return int(Date(t.PlanEndDate).Sub(Date(t.PlanStartDate)).Hours()/24) + 1
}

// SetPlanStart moves the plan start date. If the new start passes the end,
// the end is dragged along so the interval keeps its invariant, not its
// duration.
func (t *Task) SetPlanStart(d time.Time) {
	d = Date(d)
	t.PlanStartDate = d
	if t.PlanEndDate.Before(d) {
		t.PlanEndDate = d
	}
}

// SetPlanEnd moves the plan end date, dragging the start forward if needed.
func (t *Task) SetPlanEnd(d time.Time) {
	d = Date(d)
	t.PlanEndDate = d
	if t.PlanStartDate.After(d) {
		t.PlanStartDate = d
	}
}

// ShiftPlan moves both plan dates by the given number of days, preserving
// duration. Used by drag-to-reschedule.
func (t *Task) ShiftPlan(days int) {
	t.PlanStartDate = t.PlanStartDate.AddDate(0, 0, days)
	t.PlanEndDate = t.PlanEndDate.AddDate(0, 0, days)
}

func (t *Task) IsGroup() bool {
	return t.Type == TypeGroup
}

// Validate checks the schedule and progress invariants.
func (t *Task) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("task name is required")
	}
	if t.Type != TypeTask && t.Type != TypeGroup {
		return fmt.Errorf("invalid task type %q", t.Type)
	}
	if t.PlanEndDate.Before(t.PlanStartDate) {
		return fmt.Errorf("plan end %s is before plan start %s",
			t.PlanEndDate.Format("2006-01-02"), t.PlanStartDate.Format("2006-01-02"))
	}
	if t.Progress < 0 || t.Progress > 100 {
		return fmt.Errorf("progress %d out of range 0..100", t.Progress)
	}
	if t.ActualStartDate != nil && t.ActualEndDate != nil && t.ActualEndDate.Before(*t.ActualStartDate) {
		return fmt.Errorf("actual end %s is before actual start %s",
			t.ActualEndDate.Format("2006-01-02"), t.ActualStartDate.Format("2006-01-02"))
	}
	if t.Progress >= 100 && t.ActualEndDate == nil {
		return fmt.Errorf("completed task must have an actual end date")
	}
	return nil
}

// WouldCreateCycle reports whether reparenting taskID under newParentID would
// place the task in its own ancestor chain. byID must contain every task of
// the project.
func WouldCreateCycle(byID map[string]*Task, taskID, newParentID string) bool {
	seen := make(map[string]bool)
	cur := newParentID
	for cur != "" {
		if cur == taskID {
			return true
		}
		if seen[cur] {
			// Pre-existing corruption; treat as a cycle rather than loop.
			return true
		}
		seen[cur] = true
		parent, ok := byID[cur]
		if !ok || parent.ParentTaskID == nil {
			return false
		}
		cur = *parent.ParentTaskID
	}
	return false
}
