package ports

import (
	"context"

	"github.com/vcward/freecodecamp-exercise-tracker/internal/messaging/payloads"
)

// ExerciseEventPublisher определяет методы для публикации событий
// о записанных упражнениях. Используется usecase после успешного сохранения.
type ExerciseEventPublisher interface {
	PublishExerciseLogged(ctx context.Context, payload payloads.ExerciseLoggedPayload) error
}

// ExerciseEventConsumer определяет методы для потребления событий об упражнениях.
// Используется воркером для получения задач из очереди.
type ExerciseEventConsumer interface {
	// StartConsumingExerciseLogged начинает прослушивание очереди.
	// Принимает функцию-обработчик, вызываемую для каждого события.
	StartConsumingExerciseLogged(ctx context.Context, handler func(context.Context, payloads.ExerciseLoggedPayload) error) error
}
