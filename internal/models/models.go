package models

import "time"

// User is an account that tasks can be assigned to. Users are created by
// the startup bootstrap, not through the public API.
type User struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Email    string `db:"email" json:"email"`
}

// Task is the primary trackable work item.
type Task struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
	AssigneeID  *int64    `db:"assignee_id" json:"assignee_id"`

	// Assignee and Suggestions are resolved by lookup, not stored columns.
	Assignee    *User          `db:"-" json:"assignee"`
	Suggestions []AISuggestion `db:"-" json:"suggestions"`
}

// DefaultTaskStatus is applied when a task is created without a status.
// Status is otherwise a free-form string; the service does not validate
// transitions.
const DefaultTaskStatus = "pending"

// AISuggestion is one generated suggestion attached to a task. Rows are
// immutable and removed only when the owning task is deleted.
type AISuggestion struct {
	ID             int64     `db:"id" json:"id"`
	SuggestionText string    `db:"suggestion_text" json:"suggestion_text"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	TaskID         int64     `db:"task_id" json:"task_id"`
}

// TaskCreate is the payload for creating a task.
type TaskCreate struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	AssigneeID  *int64  `json:"assignee_id"`
}

// TaskUpdate is a partial update. Every field records whether it appeared
// in the request body, so an omitted field leaves the column untouched
// while an explicit null overwrites it.
type TaskUpdate struct {
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
	Status      Optional[string] `json:"status"`
	AssigneeID  Optional[int64]  `json:"assignee_id"`
}

// Empty reports whether the update carries no fields at all.
func (u TaskUpdate) Empty() bool {
	return !u.Title.Present && !u.Description.Present && !u.Status.Present && !u.AssigneeID.Present
}
