// Package service owns the task lifecycle rules that sit between the HTTP
// handlers and the store: assignee references must resolve to existing
// users before a mutation, and suggestion generation is attached to tasks
// synchronously, storing whatever text comes back.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Juggernaut2105/AI-CONNECTOR/internal/models"
	"github.com/Juggernaut2105/AI-CONNECTOR/internal/storage/sqlite"
	"github.com/Juggernaut2105/AI-CONNECTOR/internal/suggest"
)

// Generator produces a suggestion for a task. It never fails; degraded
// results carry fallback text.
type Generator interface {
	Generate(ctx context.Context, title string, description *string) suggest.Result
}

// Tasks implements the task lifecycle on top of the store.
type Tasks struct {
	store     *sqlite.Store
	generator Generator
	logger    *slog.Logger
}

// New constructs the task service.
func New(store *sqlite.Store, generator Generator, logger *slog.Logger) *Tasks {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tasks{store: store, generator: generator, logger: logger}
}

// Create persists a new task. A supplied assignee id must reference an
// existing user; otherwise sqlite.ErrUserNotFound is returned before any
// row is written.
func (t *Tasks) Create(ctx context.Context, in models.TaskCreate) (models.Task, error) {
	if in.AssigneeID != nil {
		if err := t.checkAssignee(ctx, *in.AssigneeID); err != nil {
			return models.Task{}, err
		}
	}
	return t.store.CreateTask(ctx, in)
}

// Get retrieves one task by id.
func (t *Tasks) Get(ctx context.Context, id int64) (models.Task, error) {
	return t.store.GetTask(ctx, id)
}

// List returns tasks in creation order within a skip/limit window.
func (t *Tasks) List(ctx context.Context, skip, limit int) ([]models.Task, error) {
	return t.store.ListTasks(ctx, skip, limit)
}

// Update applies a partial update. The assignee check runs only when the
// update explicitly sets a non-null assignee id; an explicit null clears
// the assignment without a lookup.
func (t *Tasks) Update(ctx context.Context, id int64, changes models.TaskUpdate) (models.Task, error) {
	if changes.AssigneeID.Present && changes.AssigneeID.Valid {
		if err := t.checkAssignee(ctx, changes.AssigneeID.Value); err != nil {
			return models.Task{}, err
		}
	}
	return t.store.UpdateTask(ctx, id, changes)
}

// Delete removes a task and, by cascade, all of its suggestions.
func (t *Tasks) Delete(ctx context.Context, id int64) error {
	return t.store.DeleteTask(ctx, id)
}

// AttachSuggestion generates a suggestion for an existing task and stores
// the result. Degraded fallback text is persisted and returned exactly
// like a genuine model response.
func (t *Tasks) AttachSuggestion(ctx context.Context, taskID int64) (models.AISuggestion, error) {
	task, err := t.store.GetTask(ctx, taskID)
	if err != nil {
		return models.AISuggestion{}, err
	}

	result := t.generator.Generate(ctx, task.Title, task.Description)
	if result.Degraded {
		t.logger.Warn("storing degraded suggestion",
			slog.Int64("task_id", taskID), slog.String("reason", string(result.Reason)))
	}

	return t.store.CreateSuggestion(ctx, taskID, result.Text)
}

func (t *Tasks) checkAssignee(ctx context.Context, userID int64) error {
	if _, err := t.store.GetUser(ctx, userID); err != nil {
		return fmt.Errorf("assignee %d: %w", userID, err)
	}
	return nil
}
