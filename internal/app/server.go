package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vcward/freecodecamp-exercise-tracker/internal/config"
	"github.com/vcward/freecodecamp-exercise-tracker/internal/handler"
	"github.com/vcward/freecodecamp-exercise-tracker/internal/usecase"
)

// runServer запускает HTTP сервер трекера.
func runServer(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	trackerUseCase usecase.TrackerUseCase,
) error {
	trackerHandler := handler.NewTrackerHandler(trackerUseCase, cfg.StaticDir, logger)

	r := chi.NewRouter()
	r.Use(handler.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Get("/", trackerHandler.Index)
	r.Get("/api/users", trackerHandler.ListUsers)
	r.Post("/api/users", trackerHandler.CreateUser)
	// ловушка для маршрута без сегмента id — регистрируется до {id}-маршрутов
	r.Get("/api/users/exercises", trackerHandler.MissingUserID)
	r.Post("/api/users/{id}/exercises", trackerHandler.AddExercise)
	r.Get("/api/users/{id}/logs", trackerHandler.GetLog)

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("ошибка при запуске сервера: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received, stopping server")

	ctxServer, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxServer); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}
