package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/untibullet/syncflow/internal/models"
)

const taskColumns = `id, title, description, tag, priority, column_id, assigned_to, active_viewers, comments, created_at, updated_at`

func scanTask(row pgx.Row, t *models.Task) error {
	return row.Scan(&t.ID, &t.Title, &t.Description, &t.Tag, &t.Priority, &t.ColumnID,
		&t.AssignedTo, &t.ActiveViewers, &t.Comments, &t.CreatedAt, &t.UpdatedAt)
}

// GetAllTasks returns every task, newest first
func (r *Repository) GetAllTasks(ctx context.Context) ([]models.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks ORDER BY created_at DESC`, taskColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// GetTasksByColumn returns the tasks owned by one column, newest first
func (r *Repository) GetTasksByColumn(ctx context.Context, columnID string) ([]models.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE column_id = $1 ORDER BY created_at DESC`, taskColumns)

	rows, err := r.pool.Query(ctx, query, columnID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks by column: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// CreateTask persists a new task. The owning column must exist. When actorID is
// set, a "created" activity is written in the same transaction, so a failed
// audit write rolls the task back.
func (r *Repository) CreateTask(ctx context.Context, task models.Task, actorID string) (*models.Task, error) {
	task.ID = uuid.NewString()
	if task.AssignedTo == nil {
		task.AssignedTo = []string{}
	}
	if task.ActiveViewers == nil {
		task.ActiveViewers = []string{}
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
        INSERT INTO tasks (id, title, description, tag, priority, column_id, assigned_to, active_viewers, comments)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING created_at, updated_at
    `
	err = tx.QueryRow(ctx, query, task.ID, task.Title, task.Description, task.Tag,
		task.Priority, task.ColumnID, task.AssignedTo, task.ActiveViewers, task.Comments).
		Scan(&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrInvalidInput
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if actorID != "" {
		if err := insertActivity(ctx, tx, actorID, "created", task.Title); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &task, nil
}

// UpdateTask merges the supplied fields into an existing task and refreshes
// updated_at. When movedBy is set, a "moved" activity is written in the same
// transaction.
func (r *Repository) UpdateTask(ctx context.Context, id string, upd models.TaskUpdate, movedBy string) (*models.Task, error) {
	set := []string{"updated_at = NOW()"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if upd.Title != nil {
		set = append(set, "title = "+arg(*upd.Title))
	}
	if upd.Description != nil {
		set = append(set, "description = "+arg(*upd.Description))
	}
	if upd.Tag != nil {
		set = append(set, "tag = "+arg(*upd.Tag))
	}
	if upd.Priority != nil {
		set = append(set, "priority = "+arg(*upd.Priority))
	}
	if upd.ColumnID != nil {
		set = append(set, "column_id = "+arg(*upd.ColumnID))
	}
	if upd.AssignedTo != nil {
		set = append(set, "assigned_to = "+arg(*upd.AssignedTo))
	}
	if upd.ActiveViewers != nil {
		set = append(set, "active_viewers = "+arg(*upd.ActiveViewers))
	}
	if upd.Comments != nil {
		set = append(set, "comments = "+arg(*upd.Comments))
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE id = %s RETURNING %s`,
		strings.Join(set, ", "), arg(id), taskColumns)

	var task models.Task
	err = scanTask(tx.QueryRow(ctx, query, args...), &task)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrInvalidInput
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if movedBy != "" {
		if err := insertActivity(ctx, tx, movedBy, "moved", task.Title); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &task, nil
}

// DeleteTask removes a task. Deleting a missing id is a no-op.
func (r *Repository) DeleteTask(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// UpdateTaskViewers replaces the active-viewer list as a whole, last writer
// wins. This is an advisory presence signal; stale viewers never self-clear.
func (r *Repository) UpdateTaskViewers(ctx context.Context, id string, viewerIDs []string) error {
	if viewerIDs == nil {
		viewerIDs = []string{}
	}

	query := `UPDATE tasks SET active_viewers = $1 WHERE id = $2`
	tag, err := r.pool.Exec(ctx, query, viewerIDs, id)
	if err != nil {
		return fmt.Errorf("failed to update task viewers: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
