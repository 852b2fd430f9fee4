package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Juggernaut2105/AI-CONNECTOR/internal/config"
	"github.com/Juggernaut2105/AI-CONNECTOR/internal/service"
	"github.com/Juggernaut2105/AI-CONNECTOR/internal/storage/sqlite"
)

const requestIDKey = "request_id"

// Server provides the HTTP surface of the task management API.
type Server struct {
	engine *gin.Engine
	tasks  *service.Tasks
	store  *sqlite.Store
	cfg    config.Config
	logger *slog.Logger
}

// New constructs the HTTP server with routes and middleware configured.
func New(cfg config.Config, tasks *service.Tasks, store *sqlite.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())

	srv := &Server{
		engine: router,
		tasks:  tasks,
		store:  store,
		cfg:    cfg,
		logger: logger,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires the public endpoints and the authenticated task
// group together.
func (s *Server) registerRoutes() {
	s.engine.GET("/", s.handleRoot)
	s.engine.GET("/health", s.handleHealth)

	tasks := s.engine.Group("/tasks", s.requireBearerToken())
	{
		tasks.POST("/", s.handleCreateTask)
		tasks.GET("/", s.handleListTasks)
		tasks.GET("/:id", s.handleGetTask)
		tasks.PUT("/:id", s.handleUpdateTask)
		tasks.DELETE("/:id", s.handleDeleteTask)
		tasks.POST("/:id/suggestions", s.handleCreateSuggestion)
	}
}

// requestID tags every request with a correlation id that is echoed back
// to the client and attached to error logs.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// handleRoot answers with a welcome message so a bare GET confirms the
// service is up.
func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Task Management API!"})
}

// handleHealth reports database connectivity and whether the auth token
// and provider key file are configured. It is deliberately unauthenticated.
func (s *Server) handleHealth(c *gin.Context) {
	dbStatus := "connected"
	if err := s.store.Ping(c.Request.Context()); err != nil {
		s.logger.Error("health check database ping failed", slog.String("error", err.Error()))
		dbStatus = "error"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":              "ok",
		"database":            dbStatus,
		"auth_token_loaded":   s.cfg.APIAuthToken != "",
		"openai_key_file_set": s.cfg.OpenAIAPIKeyFile != "",
	})
}

// parseID converts a path parameter to int64 with error handling.
func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid identifier"})
		return 0, false
	}
	return id, true
}

// respondError logs the error and returns a JSON payload.
func (s *Server) respondError(c *gin.Context, status int, err error) {
	if err != nil {
		s.logger.Error("request failed",
			slog.String("path", c.FullPath()),
			slog.String("request_id", c.GetString(requestIDKey)),
			slog.String("error", err.Error()))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
