package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Juggernaut2105/AI-CONNECTOR/internal/models"
)

const taskColumns = `id, title, description, status, created_at, updated_at, assignee_id`

// GetTask retrieves a task by id with its assignee and suggestions resolved.
func (s *Store) GetTask(ctx context.Context, id int64) (models.Task, error) {
	var t models.Task
	err := s.db.GetContext(ctx, &t, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrTaskNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}
	if err := s.hydrateTask(ctx, &t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// ListTasks returns tasks in creation (id) order within a skip/limit window.
func (s *Store) ListTasks(ctx context.Context, skip, limit int) ([]models.Task, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 100
	}

	var tasks []models.Task
	err := s.db.SelectContext(ctx, &tasks,
		`SELECT `+taskColumns+` FROM tasks ORDER BY id LIMIT ? OFFSET ?`, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	for i := range tasks {
		if err := s.hydrateTask(ctx, &tasks[i]); err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

// CreateTask inserts a new task, applying the default status when none is
// given, and returns the persisted entity.
func (s *Store) CreateTask(ctx context.Context, in models.TaskCreate) (models.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Task{}, ErrTitleRequired
	}
	status := in.Status
	if status == "" {
		status = models.DefaultTaskStatus
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks(title, description, status, created_at, updated_at, assignee_id) VALUES(?, ?, ?, ?, ?, ?)`,
		title, in.Description, status, now, now, in.AssigneeID)
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Task{}, fmt.Errorf("task id: %w", err)
	}
	return s.GetTask(ctx, id)
}

// UpdateTask applies only the fields explicitly present in the partial
// update inside one transaction. A field set to JSON null overwrites the
// column; an omitted field leaves it untouched.
func (s *Store) UpdateTask(ctx context.Context, id int64, changes models.TaskUpdate) (models.Task, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Task{}, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	var current models.Task
	err = tx.GetContext(ctx, &current, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrTaskNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}

	title := current.Title
	description := current.Description
	status := current.Status
	assigneeID := current.AssigneeID

	if changes.Title.Present {
		v := strings.TrimSpace(changes.Title.Value)
		if !changes.Title.Valid || v == "" {
			return models.Task{}, ErrTitleRequired
		}
		title = v
	}
	if changes.Description.Present {
		if changes.Description.Valid {
			v := changes.Description.Value
			description = &v
		} else {
			description = nil
		}
	}
	if changes.Status.Present {
		if changes.Status.Valid {
			status = changes.Status.Value
		} else {
			status = models.DefaultTaskStatus
		}
	}
	if changes.AssigneeID.Present {
		if changes.AssigneeID.Valid {
			v := changes.AssigneeID.Value
			assigneeID = &v
		} else {
			assigneeID = nil
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, status = ?, assignee_id = ?, updated_at = ? WHERE id = ?`,
		title, description, status, assigneeID, time.Now().UTC(), id)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Task{}, fmt.Errorf("commit update: %w", err)
	}
	return s.GetTask(ctx, id)
}

// DeleteTask removes a task; its suggestions go with it via the cascade.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// hydrateTask resolves the assignee reference and loads the suggestion
// children for a scanned task row.
func (s *Store) hydrateTask(ctx context.Context, t *models.Task) error {
	t.Suggestions = []models.AISuggestion{}

	if t.AssigneeID != nil {
		u, err := s.GetUser(ctx, *t.AssigneeID)
		if err != nil && !errors.Is(err, ErrUserNotFound) {
			return err
		}
		if err == nil {
			t.Assignee = &u
		}
	}

	suggestions, err := s.ListSuggestions(ctx, t.ID)
	if err != nil {
		return err
	}
	t.Suggestions = suggestions
	return nil
}
