package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vcward/freecodecamp-exercise-tracker/internal/core/ports"
	"github.com/vcward/freecodecamp-exercise-tracker/internal/messaging/payloads"
	"github.com/vcward/freecodecamp-exercise-tracker/internal/usecase"
)

// runWorker запускает потребителя очереди: на каждое событие о записанном
// упражнении обновляет архив журнала пользователя в объектном хранилище.
func runWorker(
	ctx context.Context,
	logger *slog.Logger,
	trackerUseCase usecase.TrackerUseCase,
	consumer ports.ExerciseEventConsumer,
) error {
	if consumer == nil {
		return fmt.Errorf("режим worker требует RABBITMQ_URL")
	}
	// Без архивного хранилища каждое событие завершалось бы ошибкой
	// и возвращалось в очередь — бесконечный цикл redelivery.
	if !trackerUseCase.ArchivingEnabled() {
		return fmt.Errorf("режим worker требует MINIO_ENDPOINT: архивное хранилище не сконфигурировано")
	}

	logger.Info("worker started, waiting for exercise events")

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	messageHandler := func(ctx context.Context, payload payloads.ExerciseLoggedPayload) error {
		logger.Info("processing exercise event",
			"user_id", payload.UserID,
			"username", payload.Username,
			"date", payload.Date,
		)

		url, err := trackerUseCase.ArchiveLog(ctx, payload.UserID)
		if err != nil {
			logger.Error("failed to refresh log archive", "user_id", payload.UserID, "error", err)
			return err
		}

		logger.Info("log archive refreshed", "user_id", payload.UserID, "url", url)
		return nil
	}

	if err := consumer.StartConsumingExerciseLogged(workerCtx, messageHandler); err != nil {
		return fmt.Errorf("ошибка при запуске потребителя очереди: %w", err)
	}

	<-ctx.Done()
	logger.Info("shutdown signal received, stopping worker")

	cancelWorker()
	logger.Info("worker stopped gracefully")
	return nil
}
