package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/vcward/freecodecamp-exercise-tracker/internal/config"
	"github.com/vcward/freecodecamp-exercise-tracker/internal/core/ports"
	"github.com/vcward/freecodecamp-exercise-tracker/internal/usecase"
)

// App собирает зависимости приложения и управляет их жизненным циклом:
// инициализация до старта, корректное закрытие при завершении.
type App struct {
	Config         *config.Config
	logger         *slog.Logger
	storeCloser    io.Closer
	trackerUseCase usecase.TrackerUseCase
	publisher      ports.ExerciseEventPublisher
	consumer       ports.ExerciseEventConsumer
}

func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	storeCloser io.Closer,
	trackerUseCase usecase.TrackerUseCase,
	publisher ports.ExerciseEventPublisher,
	consumer ports.ExerciseEventConsumer,
) *App {
	return &App{
		Config:         cfg,
		logger:         logger,
		storeCloser:    storeCloser,
		trackerUseCase: trackerUseCase,
		publisher:      publisher,
		consumer:       consumer,
	}
}

// LoggerIns возвращает основной логгер приложения.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

func (a *App) Run(ctx context.Context, mode *string) error {
	// контекст для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("application starting", "mode", *mode)

	var err error

	switch *mode {
	case "server":
		err = runServer(ctx, a.Config, a.logger, a.trackerUseCase)

	case "worker":
		err = runWorker(ctx, a.logger, a.trackerUseCase, a.consumer)

	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server' или 'worker')", *mode)
	}

	if err != nil {
		return err
	}

	// аккуратно закрываем ресурсы
	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown error", "error", closeErr)
	}

	a.logger.Info("application resources released")
	return nil
}

// Shutdown закрывает все ресурсы приложения.
func (a *App) Shutdown() error {
	if a.storeCloser != nil {
		if err := a.storeCloser.Close(); err != nil {
			return fmt.Errorf("ошибка закрытия хранилища: %w", err)
		}
	}

	// если publisher/consumer имеют методы Close — вызываем их
	if closer, ok := a.publisher.(io.Closer); ok {
		_ = closer.Close()
	}
	// publisher и consumer могут быть одним клиентом — не закрываем дважды
	if closer, ok := a.consumer.(io.Closer); ok && any(a.consumer) != any(a.publisher) {
		_ = closer.Close()
	}

	return nil
}
