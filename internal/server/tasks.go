package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Juggernaut2105/AI-CONNECTOR/internal/models"
	"github.com/Juggernaut2105/AI-CONNECTOR/internal/storage/sqlite"
)

// handleCreateTask creates a new task, optionally assigned to a user.
func (s *Server) handleCreateTask(c *gin.Context) {
	var req models.TaskCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	task, err := s.tasks.Create(c.Request.Context(), req)
	if err != nil {
		s.respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// handleListTasks returns tasks in creation order within a skip/limit
// window.
func (s *Server) handleListTasks(c *gin.Context) {
	skip := queryInt(c, "skip", 0)
	limit := queryInt(c, "limit", 100)

	tasks, err := s.tasks.List(c.Request.Context(), skip, limit)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

// handleGetTask fetches one task with its assignee and suggestions.
func (s *Server) handleGetTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	task, err := s.tasks.Get(c.Request.Context(), id)
	if err != nil {
		s.respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// handleUpdateTask applies a partial update; only fields present in the
// request body change.
func (s *Server) handleUpdateTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.TaskUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	task, err := s.tasks.Update(c.Request.Context(), id, req)
	if err != nil {
		s.respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// handleDeleteTask removes a task and all of its suggestions.
func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := s.tasks.Delete(c.Request.Context(), id); err != nil {
		s.respondTaskError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleCreateSuggestion generates and stores an AI suggestion for the
// task. Provider failures never surface here; only a missing task or a
// storage failure can make this endpoint fail.
func (s *Server) handleCreateSuggestion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	suggestion, err := s.tasks.AttachSuggestion(c.Request.Context(), id)
	if err != nil {
		s.respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusCreated, suggestion)
}

// respondTaskError maps service errors onto client-facing status codes.
func (s *Server) respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sqlite.ErrTaskNotFound), errors.Is(err, sqlite.ErrUserNotFound):
		s.respondError(c, http.StatusNotFound, err)
	case errors.Is(err, sqlite.ErrTitleRequired):
		s.respondError(c, http.StatusBadRequest, err)
	default:
		s.respondError(c, http.StatusInternalServerError, err)
	}
}

// queryInt reads an integer query parameter with a fallback default.
func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
