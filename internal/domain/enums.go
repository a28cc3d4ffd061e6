package domain

type TaskType string

const (
	TypeTask  TaskType = "task"
	TypeGroup TaskType = "group"
)

type TaskStatus string

const (
	StatusNotStarted TaskStatus = "not_started"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectPaused   ProjectStatus = "paused"
	ProjectDone     ProjectStatus = "done"
	ProjectArchived ProjectStatus = "archived"
)

// ValidTaskTypes is the canonical set of accepted task type strings.
var ValidTaskTypes = map[string]bool{
	"task": true, "group": true,
}

// StatusForProgress derives the task status from a progress percentage.
// Stored status is denormalized and must be recomputed on every progress
// mutation so the two never drift apart.
func StatusForProgress(progress int) TaskStatus {
	switch {
	case progress <= 0:
		return StatusNotStarted
	case progress >= 100:
		return StatusCompleted
	default:
		return StatusInProgress
	}
}
