package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Juggernaut2105/AI-CONNECTOR/internal/models"
)

// CreateSuggestion persists a generated suggestion for a task and returns
// the stored row. Suggestion rows are immutable after this point.
func (s *Store) CreateSuggestion(ctx context.Context, taskID int64, text string) (models.AISuggestion, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO ai_suggestions(suggestion_text, created_at, task_id) VALUES(?, ?, ?)`,
		text, time.Now().UTC(), taskID)
	if err != nil {
		return models.AISuggestion{}, fmt.Errorf("insert suggestion: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.AISuggestion{}, fmt.Errorf("suggestion id: %w", err)
	}

	var sg models.AISuggestion
	err = s.db.GetContext(ctx, &sg,
		`SELECT id, suggestion_text, created_at, task_id FROM ai_suggestions WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AISuggestion{}, fmt.Errorf("suggestion %d vanished after insert", id)
	}
	if err != nil {
		return models.AISuggestion{}, fmt.Errorf("get suggestion: %w", err)
	}
	return sg, nil
}

// ListSuggestions returns all suggestions for a task in creation order.
func (s *Store) ListSuggestions(ctx context.Context, taskID int64) ([]models.AISuggestion, error) {
	suggestions := []models.AISuggestion{}
	err := s.db.SelectContext(ctx, &suggestions,
		`SELECT id, suggestion_text, created_at, task_id FROM ai_suggestions WHERE task_id = ? ORDER BY id`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list suggestions: %w", err)
	}
	return suggestions, nil
}

// CountSuggestions reports how many suggestions a task owns.
func (s *Store) CountSuggestions(ctx context.Context, taskID int64) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM ai_suggestions WHERE task_id = ?`, taskID)
	if err != nil {
		return 0, fmt.Errorf("count suggestions: %w", err)
	}
	return n, nil
}
