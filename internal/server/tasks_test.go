package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Juggernaut2105/AI-CONNECTOR/internal/models"
	"github.com/Juggernaut2105/AI-CONNECTOR/internal/suggest"
)

func TestCreateTaskDefaultsOverHTTP(t *testing.T) {
	env := setupServer(t)

	rec := env.do(t, http.MethodPost, "/tasks/", gin.H{"title": "First task"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var task models.Task
	decodeJSON(t, rec, &task)
	assert.Equal(t, "First task", task.Title)
	assert.Equal(t, "pending", task.Status)
	assert.Nil(t, task.AssigneeID)
	assert.Nil(t, task.Assignee)
	assert.Empty(t, task.Suggestions)
}

func TestCreateTaskUnknownAssignee(t *testing.T) {
	env := setupServer(t)

	rec := env.do(t, http.MethodPost, "/tasks/", gin.H{"title": "Orphan", "assignee_id": 9999}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateTaskWithAssignee(t *testing.T) {
	env := setupServer(t)

	user, err := env.store.CreateUser(context.Background(), "frank", "frank@example.com")
	require.NoError(t, err)

	rec := env.do(t, http.MethodPost, "/tasks/", gin.H{"title": "Assigned", "assignee_id": user.ID}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var task models.Task
	decodeJSON(t, rec, &task)
	require.NotNil(t, task.Assignee)
	assert.Equal(t, "frank", task.Assignee.Username)
}

func TestCreateTaskMissingTitle(t *testing.T) {
	env := setupServer(t)

	rec := env.do(t, http.MethodPost, "/tasks/", gin.H{"description": "no title"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTaskNotFoundOverHTTP(t *testing.T) {
	env := setupServer(t)

	rec := env.do(t, http.MethodGet, "/tasks/9999", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTaskPartialOverHTTP(t *testing.T) {
	env := setupServer(t)

	created, err := env.store.CreateTask(context.Background(), models.TaskCreate{
		Title:       "Keep the rest",
		Description: strPtr("original description"),
	})
	require.NoError(t, err)

	rec := env.do(t, http.MethodPut, fmt.Sprintf("/tasks/%d", created.ID), gin.H{"status": "done"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var task models.Task
	decodeJSON(t, rec, &task)
	assert.Equal(t, "done", task.Status)
	assert.Equal(t, "Keep the rest", task.Title)
	require.NotNil(t, task.Description)
	assert.Equal(t, "original description", *task.Description)
}

func TestUpdateTaskExplicitNullAssignee(t *testing.T) {
	env := setupServer(t)
	ctx := context.Background()

	user, err := env.store.CreateUser(ctx, "grace", "grace@example.com")
	require.NoError(t, err)
	created, err := env.store.CreateTask(ctx, models.TaskCreate{Title: "Unassign me", AssigneeID: &user.ID})
	require.NoError(t, err)

	// Raw JSON null must clear the assignment, unlike an omitted field.
	rec := env.do(t, http.MethodPut, fmt.Sprintf("/tasks/%d", created.ID),
		map[string]any{"assignee_id": nil}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var task models.Task
	decodeJSON(t, rec, &task)
	assert.Nil(t, task.AssigneeID)
	assert.Nil(t, task.Assignee)
}

func TestUpdateTaskNotFoundOverHTTP(t *testing.T) {
	env := setupServer(t)

	rec := env.do(t, http.MethodPut, "/tasks/9999", gin.H{"status": "done"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTaskOverHTTP(t *testing.T) {
	env := setupServer(t)
	ctx := context.Background()

	created, err := env.store.CreateTask(ctx, models.TaskCreate{Title: "Delete me"})
	require.NoError(t, err)
	_, err = env.store.CreateSuggestion(ctx, created.ID, "some advice")
	require.NoError(t, err)

	rec := env.do(t, http.MethodDelete, fmt.Sprintf("/tasks/%d", created.ID), nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	n, err := env.store.CountSuggestions(ctx, created.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/tasks/%d", created.ID), nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListTasksWindowOverHTTP(t *testing.T) {
	env := setupServer(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		_, err := env.store.CreateTask(ctx, models.TaskCreate{Title: fmt.Sprintf("task %d", i)})
		require.NoError(t, err)
	}

	rec := env.do(t, http.MethodGet, "/tasks/?skip=0&limit=2", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var tasks []models.Task
	decodeJSON(t, rec, &tasks)
	require.Len(t, tasks, 2)
	assert.Equal(t, "task 1", tasks[0].Title)
	assert.Equal(t, "task 2", tasks[1].Title)
}

func TestListTasksEmpty(t *testing.T) {
	env := setupServer(t)

	rec := env.do(t, http.MethodGet, "/tasks/", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestCreateSuggestionOverHTTP(t *testing.T) {
	env := setupServer(t)

	created, err := env.store.CreateTask(context.Background(), models.TaskCreate{Title: "Advise me"})
	require.NoError(t, err)

	rec := env.do(t, http.MethodPost, fmt.Sprintf("/tasks/%d/suggestions", created.ID), nil, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var sg models.AISuggestion
	decodeJSON(t, rec, &sg)
	assert.Equal(t, created.ID, sg.TaskID)
	assert.Equal(t, "Add acceptance criteria.", sg.SuggestionText)
	assert.NotZero(t, sg.ID)
}

func TestCreateSuggestionDegradedStillStored(t *testing.T) {
	env := setupServer(t)
	env.gen.result = suggest.Result{
		Text:     "Optimize this task for better efficiency. (AI unavailable)",
		Degraded: true,
		Reason:   suggest.ReasonMissingCredential,
	}

	created, err := env.store.CreateTask(context.Background(), models.TaskCreate{Title: "Degraded"})
	require.NoError(t, err)

	rec := env.do(t, http.MethodPost, fmt.Sprintf("/tasks/%d/suggestions", created.ID), nil, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var sg models.AISuggestion
	decodeJSON(t, rec, &sg)
	assert.Equal(t, env.gen.result.Text, sg.SuggestionText)
}

func TestCreateSuggestionTaskNotFound(t *testing.T) {
	env := setupServer(t)

	rec := env.do(t, http.MethodPost, "/tasks/9999/suggestions", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func strPtr(s string) *string { return &s }
