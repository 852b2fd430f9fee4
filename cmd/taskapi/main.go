package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Juggernaut2105/AI-CONNECTOR/internal/config"
	"github.com/Juggernaut2105/AI-CONNECTOR/internal/server"
	"github.com/Juggernaut2105/AI-CONNECTOR/internal/service"
	"github.com/Juggernaut2105/AI-CONNECTOR/internal/storage/sqlite"
	"github.com/Juggernaut2105/AI-CONNECTOR/internal/suggest"
	"github.com/Juggernaut2105/AI-CONNECTOR/internal/util"
)

func main() {
	configFlag := flag.String("config", util.EnvOrDefault("TASKAPI_CONFIG", ""), "Path to optional YAML config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configFlag)
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store, err := sqlite.Open(cfg.DatabasePath, logger)
	if err != nil {
		logger.Error("unable to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	// Bootstrap creates the default user. The original deployment treated
	// failures here as best effort; strict_init makes them fatal instead.
	if err := store.Bootstrap(context.Background()); err != nil {
		if cfg.StrictInit {
			logger.Error("database bootstrap failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Warn("database bootstrap failed, continuing", slog.String("error", err.Error()))
	}

	generator := suggest.New(cfg.OpenAIAPIKeyFile, cfg.OpenAIModel, logger)
	tasks := service.New(store, generator, logger)
	srv := server.New(cfg, tasks, store, logger)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Engine(),
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}
