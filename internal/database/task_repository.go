package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/studysprint/pkg/models"
	"github.com/google/uuid"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct{}

// NewTaskRepository creates a new repository instance
func NewTaskRepository() *TaskRepository {
	return &TaskRepository{}
}

const taskColumns = `id, plan_day_id, title, description, category,
	estimated_minutes, required, tags, task_order, created_at, updated_at`

// taskRow mirrors the tasks table with tags still in their JSON form
type taskRow struct {
	models.Task
	TagsJSON string `db:"tags"`
}

func (tr *taskRow) toTask() (models.Task, error) {
	task := tr.Task
	if tr.TagsJSON != "" {
		if err := json.Unmarshal([]byte(tr.TagsJSON), &task.Tags); err != nil {
			return task, fmt.Errorf("failed to parse task tags: %v", err)
		}
	}
	return task, nil
}

func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to marshal task tags: %v", err)
	}
	return string(data), nil
}

// GetByID returns one task
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	var row taskRow
	query := rebind("SELECT " + taskColumns + " FROM tasks WHERE id = ?")
	if err := DB.GetContext(ctx, &row, query, id); err != nil {
		return nil, fmt.Errorf("failed to get task: %v", err)
	}
	task, err := row.toTask()
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetByDay returns a day's tasks in display order
func (r *TaskRepository) GetByDay(ctx context.Context, planDayID string) ([]models.Task, error) {
	var rows []taskRow
	query := rebind("SELECT " + taskColumns + " FROM tasks WHERE plan_day_id = ? ORDER BY task_order ASC")
	if err := DB.SelectContext(ctx, &rows, query, planDayID); err != nil {
		return nil, fmt.Errorf("failed to get tasks: %v", err)
	}

	tasks := make([]models.Task, 0, len(rows))
	for _, row := range rows {
		task, err := row.toTask()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// GetByPlan returns every task of a plan keyed by its day id
func (r *TaskRepository) GetByPlan(ctx context.Context, planID string) (map[string][]models.Task, error) {
	var rows []taskRow
	query := rebind(`
		SELECT t.id, t.plan_day_id, t.title, t.description, t.category,
		       t.estimated_minutes, t.required, t.tags, t.task_order,
		       t.created_at, t.updated_at
		FROM tasks t
		JOIN plan_days d ON d.id = t.plan_day_id
		WHERE d.plan_id = ?
		ORDER BY d.day_index ASC, t.task_order ASC
	`)
	if err := DB.SelectContext(ctx, &rows, query, planID); err != nil {
		return nil, fmt.Errorf("failed to get plan tasks: %v", err)
	}

	byDay := make(map[string][]models.Task)
	for _, row := range rows {
		task, err := row.toTask()
		if err != nil {
			return nil, err
		}
		byDay[task.PlanDayID] = append(byDay[task.PlanDayID], task)
	}
	return byDay, nil
}

// Create inserts a new task at the end of its day
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	tagsJSON, err := marshalTags(task.Tags)
	if err != nil {
		return err
	}

	var order int
	err = DB.QueryRowContext(ctx,
		rebind("SELECT COALESCE(MAX(task_order) + 1, 0) FROM tasks WHERE plan_day_id = ?"),
		task.PlanDayID,
	).Scan(&order)
	if err != nil {
		return fmt.Errorf("failed to get next task order: %v", err)
	}
	task.Order = order

	query := rebind(`
		INSERT INTO tasks (
			id, plan_day_id, title, description, category,
			estimated_minutes, required, tags, task_order
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err = DB.ExecContext(ctx, query,
		task.ID,
		task.PlanDayID,
		task.Title,
		task.Description,
		task.Category,
		task.EstimatedMinutes,
		task.Required,
		tagsJSON,
		task.Order,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %v", err)
	}
	return nil
}

// Update modifies a task's editable fields
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	tagsJSON, err := marshalTags(task.Tags)
	if err != nil {
		return err
	}

	query := rebind(`
		UPDATE tasks SET
			title = ?,
			description = ?,
			category = ?,
			estimated_minutes = ?,
			required = ?,
			tags = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`)
	_, err = DB.ExecContext(ctx, query,
		task.Title,
		task.Description,
		task.Category,
		task.EstimatedMinutes,
		task.Required,
		tagsJSON,
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %v", err)
	}
	return nil
}

// Reorder rewrites the 0-based order of a day's tasks to match the
// given id sequence
func (r *TaskRepository) Reorder(ctx context.Context, planDayID string, orderedIDs []string) error {
	tx, err := DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	query := rebind("UPDATE tasks SET task_order = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND plan_day_id = ?")
	for i, id := range orderedIDs {
		if _, err := tx.ExecContext(ctx, query, i, id, planDayID); err != nil {
			return fmt.Errorf("failed to reorder task %s: %v", id, err)
		}
	}

	return tx.Commit()
}

// Delete removes a task
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	query := rebind("DELETE FROM tasks WHERE id = ?")
	_, err := DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %v", err)
	}
	return nil
}
