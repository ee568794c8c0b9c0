package repositories

import (
	"database/sql"
	"fmt"

	"github.com/gitelweb/ossync/internal/models"
	"github.com/gitelweb/ossync/internal/shared"
)

// TaskRepository handles task persistence, keyed by the upstream task id.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new TaskRepository with the given database connection
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `
	remote_id, folio, asset_text, technician_text, task_plan, task_type_text,
	duration_minutes, task_status, failure_type, failure_cause, detection_method,
	technician_group, task_type_group
`

// Upsert inserts or fully replaces a task by its upstream id and reports
// whether the row was newly created. The parent work order must exist.
func (r *TaskRepository) Upsert(task *models.Task) (bool, error) {
	if task.RemoteID == 0 || task.Folio == "" {
		return false, fmt.Errorf("%w: task without remote id or folio", shared.ErrInvalidInput)
	}

	var exists bool
	err := r.db.QueryRow("SELECT EXISTS(SELECT 1 FROM work_order_tasks WHERE remote_id = ?)", task.RemoteID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check task existence: %w", err)
	}

	query := `
		INSERT INTO work_order_tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(remote_id) DO UPDATE SET
			folio = excluded.folio,
			asset_text = excluded.asset_text,
			technician_text = excluded.technician_text,
			task_plan = excluded.task_plan,
			task_type_text = excluded.task_type_text,
			duration_minutes = excluded.duration_minutes,
			task_status = excluded.task_status,
			failure_type = COALESCE(excluded.failure_type, failure_type),
			failure_cause = COALESCE(excluded.failure_cause, failure_cause),
			detection_method = COALESCE(excluded.detection_method, detection_method),
			technician_group = excluded.technician_group,
			task_type_group = excluded.task_type_group
	`

	_, err = r.db.Exec(query,
		task.RemoteID, task.Folio, task.AssetText, task.TechnicianText, task.TaskPlan, task.TaskTypeText,
		task.DurationMinutes, task.TaskStatus, task.FailureType, task.FailureCause, task.DetectionMethod,
		task.TechnicianGroup, task.TaskTypeGroup,
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert task %d: %w", task.RemoteID, err)
	}

	return !exists, nil
}

// ListByFolio retrieves every task of one work order.
func (r *TaskRepository) ListByFolio(folio string) ([]*models.Task, error) {
	return r.query("SELECT "+taskColumns+" FROM work_order_tasks WHERE folio = ? ORDER BY remote_id", folio)
}

// All retrieves every stored task ordered by upstream id.
func (r *TaskRepository) All() ([]*models.Task, error) {
	return r.query("SELECT " + taskColumns + " FROM work_order_tasks ORDER BY remote_id")
}

// UpdateGroups rewrites the derived classification columns of one task.
func (r *TaskRepository) UpdateGroups(remoteID int64, technicianGroup, taskTypeGroup string) error {
	result, err := r.db.Exec(
		"UPDATE work_order_tasks SET technician_group = ?, task_type_group = ? WHERE remote_id = ?",
		technicianGroup, taskTypeGroup, remoteID,
	)
	if err != nil {
		return fmt.Errorf("failed to update groups of task %d: %w", remoteID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: task %d", shared.ErrNotFound, remoteID)
	}
	return nil
}

func (r *TaskRepository) query(query string, args ...any) ([]*models.Task, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return tasks, nil
}

func scanTask(rows *sql.Rows) (*models.Task, error) {
	var (
		task            models.Task
		technicianGroup sql.NullString
		taskTypeGroup   sql.NullString
	)

	err := rows.Scan(
		&task.RemoteID, &task.Folio, &task.AssetText, &task.TechnicianText, &task.TaskPlan, &task.TaskTypeText,
		&task.DurationMinutes, &task.TaskStatus, &task.FailureType, &task.FailureCause, &task.DetectionMethod,
		&technicianGroup, &taskTypeGroup,
	)
	if err != nil {
		return nil, err
	}

	task.TechnicianGroup = technicianGroup.String
	task.TaskTypeGroup = taskTypeGroup.String
	return &task, nil
}
