package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mfurukawa/girder/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, project_id, parent_task_id, type, name,
		category, subcategory, subsubcategory,
		plan_start_date, plan_end_date, actual_start_date, actual_end_date,
		progress, progress_updated_at, progress_note, status, predecessors,
		display_order, color, cost, quantity, responsible,
		created_at, updated_at`

// updatableTaskColumns is the allowlist for partial-merge updates.
var updatableTaskColumns = map[string]bool{
	"parent_task_id": true, "type": true, "name": true,
	"category": true, "subcategory": true, "subsubcategory": true,
	"plan_start_date": true, "plan_end_date": true,
	"actual_start_date": true, "actual_end_date": true,
	"progress": true, "progress_updated_at": true, "progress_note": true, "status": true,
	"predecessors": true, "display_order": true, "color": true,
	"cost": true, "quantity": true, "responsible": true,
}

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db *sql.DB
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(db *sql.DB) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

func (r *SQLiteTaskRepo) NewTaskID() string {
	return uuid.New().String()
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	return r.create(ctx, r.db, t)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *SQLiteTaskRepo) create(ctx context.Context, ex execer, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var parentID interface{}
	if t.ParentTaskID != nil {
		parentID = *t.ParentTaskID
	}
	_, err := ex.ExecContext(ctx, query,
		t.ID,
		t.ProjectID,
		parentID,
		string(t.Type),
		t.Name,
		t.Category,
		t.Subcategory,
		t.SubSubcategory,
		t.PlanStartDate.Format(dateLayout),
		t.PlanEndDate.Format(dateLayout),
		nullableTimeToString(t.ActualStartDate, dateLayout),
		nullableTimeToString(t.ActualEndDate, dateLayout),
		t.Progress,
		nullableTimeToString(t.ProgressUpdatedAt, dateLayout),
		t.ProgressNote,
		string(t.Status),
		joinIDs(t.Predecessors),
		t.Order,
		t.Color,
		t.Cost,
		t.Quantity,
		t.Responsible,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

// BatchCreate inserts tasks in chunks of at most BatchChunkSize rows, one
// transaction per chunk. It returns the number of rows committed; on error,
// rows from fully committed chunks remain in place.
func (r *SQLiteTaskRepo) BatchCreate(ctx context.Context, projectID string, tasks []*domain.Task) (int, error) {
	committed := 0
	for start := 0; start < len(tasks); start += BatchChunkSize {
		end := start + BatchChunkSize
		if end > len(tasks) {
			end = len(tasks)
		}
		if err := r.createChunk(ctx, projectID, tasks[start:end]); err != nil {
			return committed, fmt.Errorf("batch chunk starting at %d: %w", start, err)
		}
		committed += end - start
	}
	return committed, nil
}

func (r *SQLiteTaskRepo) createChunk(ctx context.Context, projectID string, chunk []*domain.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	for _, t := range chunk {
		t.ProjectID = projectID
		if err := r.create(ctx, tx, t); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanTask(row)
}

func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = ?
		ORDER BY display_order, created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by project: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (r *SQLiteTaskRepo) ListChildren(ctx context.Context, parentID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE parent_task_id = ?
		ORDER BY display_order, created_at`
	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("listing child tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET parent_task_id = ?, type = ?, name = ?,
		category = ?, subcategory = ?, subsubcategory = ?,
		plan_start_date = ?, plan_end_date = ?, actual_start_date = ?, actual_end_date = ?,
		progress = ?, progress_updated_at = ?, progress_note = ?, status = ?, predecessors = ?,
		display_order = ?, color = ?, cost = ?, quantity = ?, responsible = ?,
		updated_at = ?
		WHERE id = ?`
	var parentID interface{}
	if t.ParentTaskID != nil {
		parentID = *t.ParentTaskID
	}
	_, err := r.db.ExecContext(ctx, query,
		parentID,
		string(t.Type),
		t.Name,
		t.Category,
		t.Subcategory,
		t.SubSubcategory,
		t.PlanStartDate.Format(dateLayout),
		t.PlanEndDate.Format(dateLayout),
		nullableTimeToString(t.ActualStartDate, dateLayout),
		nullableTimeToString(t.ActualEndDate, dateLayout),
		t.Progress,
		nullableTimeToString(t.ProgressUpdatedAt, dateLayout),
		t.ProgressNote,
		string(t.Status),
		joinIDs(t.Predecessors),
		t.Order,
		t.Color,
		t.Cost,
		t.Quantity,
		t.Responsible,
		time.Now().UTC().Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return nil
}

// UpdateFields applies a partial merge. Column names outside the allowlist
// are rejected so callers cannot smuggle arbitrary SQL.
func (r *SQLiteTaskRepo) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	query := "UPDATE tasks SET "
	args := make([]any, 0, len(fields)+2)
	for col, val := range fields {
		if !updatableTaskColumns[col] {
			return fmt.Errorf("column %q is not updatable", col)
		}
		query += col + " = ?, "
		args = append(args, val)
	}
	query += "updated_at = ? WHERE id = ?"
	args = append(args, time.Now().UTC().Format(time.RFC3339), id)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating task fields: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

// scanTask scans a single task from a *sql.Row.
func scanTask(row *sql.Row) (*domain.Task, error) {
	var t domain.Task
	var parentID sql.NullString
	var typeStr, statusStr, predecessors string
	var planStartStr, planEndStr string
	var actualStartStr, actualEndStr, progressUpdatedStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&t.ID, &t.ProjectID, &parentID, &typeStr, &t.Name,
		&t.Category, &t.Subcategory, &t.SubSubcategory,
		&planStartStr, &planEndStr, &actualStartStr, &actualEndStr,
		&t.Progress, &progressUpdatedStr, &t.ProgressNote, &statusStr, &predecessors,
		&t.Order, &t.Color, &t.Cost, &t.Quantity, &t.Responsible,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	return populateTask(&t, parentID, typeStr, statusStr, predecessors,
		planStartStr, planEndStr, actualStartStr, actualEndStr, progressUpdatedStr,
		createdAtStr, updatedAtStr)
}

// scanTasks scans multiple tasks from *sql.Rows.
func scanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		var t domain.Task
		var parentID sql.NullString
		var typeStr, statusStr, predecessors string
		var planStartStr, planEndStr string
		var actualStartStr, actualEndStr, progressUpdatedStr sql.NullString
		var createdAtStr, updatedAtStr string

		err := rows.Scan(
			&t.ID, &t.ProjectID, &parentID, &typeStr, &t.Name,
			&t.Category, &t.Subcategory, &t.SubSubcategory,
			&planStartStr, &planEndStr, &actualStartStr, &actualEndStr,
			&t.Progress, &progressUpdatedStr, &t.ProgressNote, &statusStr, &predecessors,
			&t.Order, &t.Color, &t.Cost, &t.Quantity, &t.Responsible,
			&createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		task, err := populateTask(&t, parentID, typeStr, statusStr, predecessors,
			planStartStr, planEndStr, actualStartStr, actualEndStr, progressUpdatedStr,
			createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// populateTask fills in parsed fields on a Task after scanning raw values.
func populateTask(
	t *domain.Task,
	parentID sql.NullString,
	typeStr, statusStr, predecessors string,
	planStartStr, planEndStr string,
	actualStartStr, actualEndStr, progressUpdatedStr sql.NullString,
	createdAtStr, updatedAtStr string,
) (*domain.Task, error) {
	if parentID.Valid && parentID.String != "" {
		v := parentID.String
		t.ParentTaskID = &v
	}
	t.Type = domain.TaskType(typeStr)
	t.Status = domain.TaskStatus(statusStr)
	t.Predecessors = splitIDs(predecessors)

	var parseErr error
	t.PlanStartDate, parseErr = time.Parse(dateLayout, planStartStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing plan_start_date: %w", parseErr)
	}
	t.PlanEndDate, parseErr = time.Parse(dateLayout, planEndStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing plan_end_date: %w", parseErr)
	}
	t.ActualStartDate = parseNullableTime(actualStartStr, dateLayout)
	t.ActualEndDate = parseNullableTime(actualEndStr, dateLayout)
	t.ProgressUpdatedAt = parseNullableTime(progressUpdatedStr, dateLayout)

	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return t, nil
}
